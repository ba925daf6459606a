package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/stafflow-hr/workforce-backend-go/internal/domain/tenant"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/database"
)

type tenantSettingsRepositoryImpl struct {
	db       *database.DB
	defaults tenant.Settings
}

// NewTenantSettingsRepository resolves per-tenant policy rows, answering with
// the configured defaults for tenants that never customized anything.
func NewTenantSettingsRepository(db *database.DB, defaults tenant.Settings) tenant.SettingsRepository {
	return &tenantSettingsRepositoryImpl{db: db, defaults: defaults}
}

// Get implements tenant.SettingsRepository.
func (r *tenantSettingsRepositoryImpl) Get(ctx context.Context, tenantID string) (tenant.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT tenant_id, late_grace_minutes, geofence_radius_meters
		FROM tenant_settings
		WHERE tenant_id = $1
	`

	var settings tenant.Settings
	err := q.QueryRow(ctx, query, tenantID).Scan(
		&settings.TenantID, &settings.LateGraceMinutes, &settings.GeofenceRadiusMeters,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			settings = r.defaults
			settings.TenantID = tenantID
			return settings, nil
		}
		return tenant.Settings{}, err
	}

	return settings, nil
}

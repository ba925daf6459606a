package tenant

import "context"

// Settings holds per-tenant attendance policy values.
type Settings struct {
	TenantID             string
	LateGraceMinutes     int
	GeofenceRadiusMeters float64
}

// SettingsRepository resolves tenant settings, falling back to the configured
// defaults when a tenant has no explicit row.
type SettingsRepository interface {
	Get(ctx context.Context, tenantID string) (Settings, error)
}

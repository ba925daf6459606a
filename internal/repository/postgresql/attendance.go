package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/stafflow-hr/workforce-backend-go/internal/domain/attendance"
	"github.com/stafflow-hr/workforce-backend-go/internal/domain/tenant"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepositoryImpl{db: db}
}

const dayRecordColumns = `
	dr.id, dr.tenant_id, dr.worker_id, dr.date,
	dr.login_time, dr.login_latitude, dr.login_longitude, dr.login_address,
	dr.login_image_ref, dr.login_device_id, dr.login_os, dr.login_agent, dr.login_ip,
	dr.logout_time, dr.logout_latitude, dr.logout_longitude, dr.logout_address,
	dr.logout_image_ref, dr.logout_device_id, dr.logout_os, dr.logout_agent, dr.logout_ip,
	dr.login_verified, dr.login_confidence, dr.logout_verified, dr.logout_confidence, dr.failure_reason,
	dr.is_late, dr.is_early_logout, dr.is_on_leave, dr.is_holiday, dr.is_working_day,
	dr.total_hours, dr.overtime_hours, dr.status_flag,
	dr.created_by, dr.updated_by, dr.creator_ip, dr.updator_ip, dr.created_at, dr.updated_at`

func scanDayRecord(row pgx.Row, withWorkerName bool) (attendance.DayRecord, error) {
	var record attendance.DayRecord
	dest := []interface{}{
		&record.ID, &record.TenantID, &record.WorkerID, &record.Date,
		&record.LoginTime, &record.LoginLocation.Latitude, &record.LoginLocation.Longitude, &record.LoginLocation.Address,
		&record.LoginImageRef, &record.LoginDevice.DeviceID, &record.LoginDevice.OS, &record.LoginDevice.Agent, &record.LoginDevice.IP,
		&record.LogoutTime, &record.LogoutLocation.Latitude, &record.LogoutLocation.Longitude, &record.LogoutLocation.Address,
		&record.LogoutImageRef, &record.LogoutDevice.DeviceID, &record.LogoutDevice.OS, &record.LogoutDevice.Agent, &record.LogoutDevice.IP,
		&record.Verification.LoginVerified, &record.Verification.LoginConfidence,
		&record.Verification.LogoutVerified, &record.Verification.LogoutConfidence, &record.Verification.FailureReason,
		&record.IsLate, &record.IsEarlyLogout, &record.IsOnLeave, &record.IsHoliday, &record.IsWorkingDay,
		&record.TotalHours, &record.OvertimeHours, &record.StatusFlag,
		&record.CreatedBy, &record.UpdatedBy, &record.CreatorIP, &record.UpdatorIP, &record.CreatedAt, &record.UpdatedAt,
	}
	if withWorkerName {
		dest = append(dest, &record.WorkerName)
	}
	if err := row.Scan(dest...); err != nil {
		return attendance.DayRecord{}, err
	}
	return record, nil
}

// Create implements attendance.Repository. The unique key on
// (tenant_id, worker_id, date) turns a concurrent double-create into
// ErrDuplicateDay for the loser.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.DayRecord) (attendance.DayRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO day_records (
			id, tenant_id, worker_id, date,
			login_time, login_latitude, login_longitude, login_address,
			login_image_ref, login_device_id, login_os, login_agent, login_ip,
			login_verified, login_confidence, failure_reason,
			is_late, is_early_logout, is_on_leave, is_holiday, is_working_day,
			total_hours, overtime_hours, status_flag,
			created_by, creator_ip, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8,
			$9, $10, $11, $12, $13,
			$14, $15, $16,
			$17, $18, $19, $20, $21,
			$22, $23, $24,
			$25, $26, NOW(), NOW()
		)
		ON CONFLICT (tenant_id, worker_id, date) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	record.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		record.ID, record.TenantID, record.WorkerID, record.Date,
		record.LoginTime, record.LoginLocation.Latitude, record.LoginLocation.Longitude, record.LoginLocation.Address,
		record.LoginImageRef, record.LoginDevice.DeviceID, record.LoginDevice.OS, record.LoginDevice.Agent, record.LoginDevice.IP,
		record.Verification.LoginVerified, record.Verification.LoginConfidence, record.Verification.FailureReason,
		record.IsLate, record.IsEarlyLogout, record.IsOnLeave, record.IsHoliday, record.IsWorkingDay,
		record.TotalHours, record.OvertimeHours, record.StatusFlag,
		record.CreatedBy, record.CreatorIP,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.DayRecord{}, attendance.ErrDuplicateDay
		}
		return attendance.DayRecord{}, err
	}

	return record, nil
}

// ApplyLogout implements attendance.Repository. COALESCE keeps stored values
// for every patch field the caller left nil.
func (r *attendanceRepositoryImpl) ApplyLogout(ctx context.Context, tenantID, workerID string, date time.Time, patch attendance.LogoutPatch) (attendance.DayRecord, error) {
	q := GetQuerier(ctx, r.db)

	var (
		logoutLat, logoutLon  *float64
		logoutAddr            *string
		deviceID, deviceOS    *string
		deviceAgent, deviceIP *string
	)
	if patch.LogoutLocation != nil {
		logoutLat = patch.LogoutLocation.Latitude
		logoutLon = patch.LogoutLocation.Longitude
		logoutAddr = patch.LogoutLocation.Address
	}
	if patch.LogoutDevice != nil {
		deviceID = patch.LogoutDevice.DeviceID
		deviceOS = patch.LogoutDevice.OS
		deviceAgent = patch.LogoutDevice.Agent
		deviceIP = patch.LogoutDevice.IP
	}

	query := `
		UPDATE day_records dr SET
			logout_time = COALESCE($4, dr.logout_time),
			logout_latitude = COALESCE($5, dr.logout_latitude),
			logout_longitude = COALESCE($6, dr.logout_longitude),
			logout_address = COALESCE($7, dr.logout_address),
			logout_image_ref = COALESCE($8, dr.logout_image_ref),
			logout_device_id = COALESCE($9, dr.logout_device_id),
			logout_os = COALESCE($10, dr.logout_os),
			logout_agent = COALESCE($11, dr.logout_agent),
			logout_ip = COALESCE($12, dr.logout_ip),
			logout_verified = COALESCE($13, dr.logout_verified),
			logout_confidence = COALESCE($14, dr.logout_confidence),
			failure_reason = COALESCE($15, dr.failure_reason),
			is_early_logout = COALESCE($16, dr.is_early_logout),
			overtime_hours = COALESCE($17, dr.overtime_hours),
			total_hours = COALESCE($18, dr.total_hours),
			updated_by = $19,
			updator_ip = $20,
			updated_at = NOW()
		WHERE dr.tenant_id = $1 AND dr.worker_id = $2 AND dr.date = $3
		RETURNING ` + dayRecordColumns

	row := q.QueryRow(ctx, query,
		tenantID, workerID, date,
		patch.LogoutTime, logoutLat, logoutLon, logoutAddr,
		patch.LogoutImageRef, deviceID, deviceOS, deviceAgent, deviceIP,
		patch.LogoutVerified, patch.LogoutConfidence, patch.FailureReason,
		patch.IsEarlyLogout, patch.OvertimeHours, patch.TotalHours,
		patch.UpdatedBy, patch.UpdatorIP,
	)

	record, err := scanDayRecord(row, false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.DayRecord{}, attendance.ErrRecordNotFound
		}
		return attendance.DayRecord{}, err
	}

	return record, nil
}

// GetByWorkerAndDate implements attendance.Repository.
func (r *attendanceRepositoryImpl) GetByWorkerAndDate(ctx context.Context, tenantID, workerID string, date time.Time) (*attendance.DayRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + dayRecordColumns + `
		FROM day_records dr
		WHERE dr.tenant_id = $1 AND dr.worker_id = $2 AND dr.date = $3
	`

	record, err := scanDayRecord(q.QueryRow(ctx, query, tenantID, workerID, date), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &record, nil
}

// GetByID implements attendance.Repository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string, scope tenant.Scope) (attendance.DayRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + dayRecordColumns + `,
			w.first_name || ' ' || w.last_name AS worker_name
		FROM day_records dr
		JOIN workers w ON dr.worker_id = w.id
		WHERE dr.id = $1
		AND ($3 OR dr.tenant_id = $2)
	`

	tenantID, all := scope.ForRead()
	record, err := scanDayRecord(q.QueryRow(ctx, query, id, tenantID, all), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.DayRecord{}, attendance.ErrRecordNotFound
		}
		return attendance.DayRecord{}, err
	}

	return record, nil
}

// ListByWorkerAndRange implements attendance.Repository.
func (r *attendanceRepositoryImpl) ListByWorkerAndRange(ctx context.Context, workerID string, from, to time.Time, scope tenant.Scope) ([]attendance.DayRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + dayRecordColumns + `
		FROM day_records dr
		WHERE dr.worker_id = $1 AND dr.date BETWEEN $2 AND $3
		AND ($5 OR dr.tenant_id = $4)
		ORDER BY dr.date
	`

	tenantID, all := scope.ForRead()
	rows, err := q.Query(ctx, query, workerID, from, to, tenantID, all)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDayRecords(rows, false)
}

// ListByDate implements attendance.Repository.
func (r *attendanceRepositoryImpl) ListByDate(ctx context.Context, tenantID string, date time.Time) ([]attendance.DayRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + dayRecordColumns + `
		FROM day_records dr
		WHERE dr.tenant_id = $1 AND dr.date = $2
	`

	rows, err := q.Query(ctx, query, tenantID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDayRecords(rows, false)
}

// List implements attendance.Repository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, scope tenant.Scope) ([]attendance.DayRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + dayRecordColumns + `,
			w.first_name || ' ' || w.last_name AS worker_name
		FROM day_records dr
		JOIN workers w ON dr.worker_id = w.id
		WHERE ($2 OR dr.tenant_id = $1)
		ORDER BY dr.date DESC, dr.created_at DESC
	`

	tenantID, all := scope.ForRead()
	rows, err := q.Query(ctx, query, tenantID, all)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDayRecords(rows, true)
}

func collectDayRecords(rows pgx.Rows, withWorkerName bool) ([]attendance.DayRecord, error) {
	records := make([]attendance.DayRecord, 0)
	for rows.Next() {
		record, err := scanDayRecord(rows, withWorkerName)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

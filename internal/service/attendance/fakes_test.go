package attendance

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stafflow-hr/workforce-backend-go/internal/domain/attendance"
	"github.com/stafflow-hr/workforce-backend-go/internal/domain/shift"
	"github.com/stafflow-hr/workforce-backend-go/internal/domain/tenant"
	"github.com/stafflow-hr/workforce-backend-go/internal/domain/worker"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/facematch"
)

type fakeAttendanceRepo struct {
	mu      sync.Mutex
	records map[string]attendance.DayRecord
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.DayRecord)}
}

func recordKey(tenantID, workerID string, date time.Time) string {
	return tenantID + "|" + workerID + "|" + date.Format("2006-01-02")
}

func (r *fakeAttendanceRepo) Create(_ context.Context, record attendance.DayRecord) (attendance.DayRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := recordKey(record.TenantID, record.WorkerID, record.Date)
	if _, exists := r.records[key]; exists {
		return attendance.DayRecord{}, attendance.ErrDuplicateDay
	}

	record.ID = uuid.NewString()
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	r.records[key] = record
	return record, nil
}

func (r *fakeAttendanceRepo) ApplyLogout(_ context.Context, tenantID, workerID string, date time.Time, patch attendance.LogoutPatch) (attendance.DayRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := recordKey(tenantID, workerID, date)
	record, exists := r.records[key]
	if !exists {
		return attendance.DayRecord{}, attendance.ErrRecordNotFound
	}

	if patch.LogoutTime != nil {
		record.LogoutTime = patch.LogoutTime
	}
	if patch.LogoutLocation != nil {
		if patch.LogoutLocation.Latitude != nil {
			record.LogoutLocation.Latitude = patch.LogoutLocation.Latitude
		}
		if patch.LogoutLocation.Longitude != nil {
			record.LogoutLocation.Longitude = patch.LogoutLocation.Longitude
		}
		if patch.LogoutLocation.Address != nil {
			record.LogoutLocation.Address = patch.LogoutLocation.Address
		}
	}
	if patch.LogoutImageRef != nil {
		record.LogoutImageRef = patch.LogoutImageRef
	}
	if patch.LogoutDevice != nil {
		if patch.LogoutDevice.DeviceID != nil {
			record.LogoutDevice.DeviceID = patch.LogoutDevice.DeviceID
		}
		if patch.LogoutDevice.OS != nil {
			record.LogoutDevice.OS = patch.LogoutDevice.OS
		}
		if patch.LogoutDevice.Agent != nil {
			record.LogoutDevice.Agent = patch.LogoutDevice.Agent
		}
		if patch.LogoutDevice.IP != nil {
			record.LogoutDevice.IP = patch.LogoutDevice.IP
		}
	}
	if patch.LogoutVerified != nil {
		record.Verification.LogoutVerified = *patch.LogoutVerified
	}
	if patch.LogoutConfidence != nil {
		record.Verification.LogoutConfidence = *patch.LogoutConfidence
	}
	if patch.FailureReason != nil {
		record.Verification.FailureReason = patch.FailureReason
	}
	if patch.IsEarlyLogout != nil {
		record.IsEarlyLogout = *patch.IsEarlyLogout
	}
	if patch.OvertimeHours != nil {
		record.OvertimeHours = *patch.OvertimeHours
	}
	if patch.TotalHours != nil {
		record.TotalHours = *patch.TotalHours
	}
	record.UpdatedBy = &patch.UpdatedBy
	record.UpdatorIP = &patch.UpdatorIP
	record.UpdatedAt = time.Now()

	r.records[key] = record
	return record, nil
}

func (r *fakeAttendanceRepo) GetByWorkerAndDate(_ context.Context, tenantID, workerID string, date time.Time) (*attendance.DayRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, exists := r.records[recordKey(tenantID, workerID, date)]
	if !exists {
		return nil, nil
	}
	return &record, nil
}

func (r *fakeAttendanceRepo) GetByID(_ context.Context, id string, scope tenant.Scope) (attendance.DayRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tenantID, all := scope.ForRead()
	for _, record := range r.records {
		if record.ID == id && (all || record.TenantID == tenantID) {
			return record, nil
		}
	}
	return attendance.DayRecord{}, attendance.ErrRecordNotFound
}

func (r *fakeAttendanceRepo) ListByWorkerAndRange(_ context.Context, workerID string, from, to time.Time, scope tenant.Scope) ([]attendance.DayRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tenantID, all := scope.ForRead()
	records := make([]attendance.DayRecord, 0)
	for _, record := range r.records {
		if record.WorkerID != workerID || (!all && record.TenantID != tenantID) {
			continue
		}
		if record.Date.Before(from) || record.Date.After(to) {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (r *fakeAttendanceRepo) ListByDate(_ context.Context, tenantID string, date time.Time) ([]attendance.DayRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := make([]attendance.DayRecord, 0)
	for _, record := range r.records {
		if record.TenantID == tenantID && record.Date.Equal(date) {
			records = append(records, record)
		}
	}
	return records, nil
}

func (r *fakeAttendanceRepo) List(_ context.Context, scope tenant.Scope) ([]attendance.DayRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tenantID, all := scope.ForRead()
	records := make([]attendance.DayRecord, 0)
	for _, record := range r.records {
		if all || record.TenantID == tenantID {
			records = append(records, record)
		}
	}
	return records, nil
}

func (r *fakeAttendanceRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

type fakeWorkerRepo struct {
	workers map[string]worker.Worker
}

func newFakeWorkerRepo(workers ...worker.Worker) *fakeWorkerRepo {
	m := make(map[string]worker.Worker, len(workers))
	for _, w := range workers {
		m[w.TenantID+"|"+w.ID] = w
	}
	return &fakeWorkerRepo{workers: m}
}

func (r *fakeWorkerRepo) GetByID(_ context.Context, id, tenantID string) (worker.Worker, error) {
	w, exists := r.workers[tenantID+"|"+id]
	if !exists {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	return w, nil
}

func (r *fakeWorkerRepo) Find(_ context.Context, id string, scope tenant.Scope) (worker.Worker, error) {
	tenantID, all := scope.ForRead()
	for _, w := range r.workers {
		if w.ID == id && (all || w.TenantID == tenantID) {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (r *fakeWorkerRepo) ListActive(_ context.Context, tenantID string) ([]worker.Worker, error) {
	workers := make([]worker.Worker, 0)
	for _, w := range r.workers {
		if w.TenantID == tenantID && w.IsActive {
			workers = append(workers, w)
		}
	}
	return workers, nil
}

func (r *fakeWorkerRepo) ListActiveAll(_ context.Context) ([]worker.Worker, error) {
	workers := make([]worker.Worker, 0)
	for _, w := range r.workers {
		if w.IsActive {
			workers = append(workers, w)
		}
	}
	return workers, nil
}

type fakeShiftRepo struct {
	shifts map[string]shift.Definition
}

func newFakeShiftRepo(shifts ...shift.Definition) *fakeShiftRepo {
	m := make(map[string]shift.Definition, len(shifts))
	for _, sh := range shifts {
		m[sh.TenantID+"|"+sh.Name] = sh
	}
	return &fakeShiftRepo{shifts: m}
}

func (r *fakeShiftRepo) GetByName(_ context.Context, tenantID, name string) (shift.Definition, error) {
	sh, exists := r.shifts[tenantID+"|"+name]
	if !exists {
		return shift.Definition{}, shift.ErrShiftNotFound
	}
	return sh, nil
}

type fakeSettingsRepo struct {
	settings tenant.Settings
}

func (r *fakeSettingsRepo) Get(_ context.Context, tenantID string) (tenant.Settings, error) {
	s := r.settings
	s.TenantID = tenantID
	return s, nil
}

type failingVerifier struct{}

func (failingVerifier) Verify(_, _ string) (facematch.Match, error) {
	return facematch.Match{}, errors.New("matcher offline")
}

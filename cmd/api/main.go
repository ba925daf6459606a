package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/stafflow-hr/workforce-backend-go/internal/config"
	"github.com/stafflow-hr/workforce-backend-go/internal/domain/leave"
	"github.com/stafflow-hr/workforce-backend-go/internal/domain/tenant"
	appHTTP "github.com/stafflow-hr/workforce-backend-go/internal/handler/http"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/cron"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/database"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/email"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/facematch"
	"github.com/stafflow-hr/workforce-backend-go/internal/repository/postgresql"
	attendanceService "github.com/stafflow-hr/workforce-backend-go/internal/service/attendance"
	leaveService "github.com/stafflow-hr/workforce-backend-go/internal/service/leave"
	reportService "github.com/stafflow-hr/workforce-backend-go/internal/service/report"
	tripService "github.com/stafflow-hr/workforce-backend-go/internal/service/trip"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	workerRepo := postgresql.NewWorkerRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	tripRepo := postgresql.NewTripRepository(db)
	settingsRepo := postgresql.NewTenantSettingsRepository(db, tenant.Settings{
		LateGraceMinutes:     cfg.Attendance.LateGraceMinutes,
		GeofenceRadiusMeters: cfg.Attendance.GeofenceRadiusMeters,
	})

	tokenAuth := jwtauth.New("HS256", []byte(cfg.JWT.Secret), nil)
	emailService := email.NewEmailService(cfg.SMTP)
	verifier := facematch.NewHashVerifier()

	attendanceSvc := attendanceService.NewService(
		attendanceRepo,
		workerRepo,
		shiftRepo,
		settingsRepo,
		verifier,
		cfg.Tenant.MasterTenantID,
	)
	accrualSvc := leaveService.NewAccrualService(
		db,
		leaveBalanceRepo,
		workerRepo,
		leave.Increments{
			EarnedLeave: cfg.Accrual.EarnedLeave,
			SickLeave:   cfg.Accrual.SickLeave,
			CasualLeave: cfg.Accrual.CasualLeave,
		},
		cfg.Tenant.MasterTenantID,
	)
	tripSvc := tripService.NewService(tripRepo, cfg.Tenant.MasterTenantID)
	reportSvc := reportService.NewService(attendanceRepo, emailService, cfg.Tenant.MasterTenantID)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(accrualSvc)
	tripHandler := appHTTP.NewTripHandler(tripSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		tokenAuth,
		cfg.App.Env,
		attendanceHandler,
		leaveHandler,
		tripHandler,
		reportHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewLeaveJobs(accrualSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

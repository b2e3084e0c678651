package main

import (
	"fmt"
	"net/http"

	"github.com/Durgaram26/hrms-sub000/internal/config"
	appHTTP "github.com/Durgaram26/hrms-sub000/internal/handler/http"
	"github.com/Durgaram26/hrms-sub000/internal/pkg/cron"
	"github.com/Durgaram26/hrms-sub000/internal/pkg/database"
	"github.com/Durgaram26/hrms-sub000/internal/pkg/jwt"
	"github.com/Durgaram26/hrms-sub000/internal/repository/postgresql"
	attendanceService "github.com/Durgaram26/hrms-sub000/internal/service/attendance"
	auditService "github.com/Durgaram26/hrms-sub000/internal/service/audit"
	leaveService "github.com/Durgaram26/hrms-sub000/internal/service/leave"
	reportService "github.com/Durgaram26/hrms-sub000/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.Database.DSN(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	geofenceRepo := postgresql.NewGeofenceRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	txManager := postgresql.NewTxManager(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)

	auditSvc := auditService.NewService(auditRepo)
	attendanceSvc := attendanceService.NewService(attendanceRepo, employeeRepo, geofenceRepo, auditSvc)
	leaveSvc := leaveService.NewService(txManager, leaveRequestRepo, leaveBalanceRepo, auditSvc)
	reportSvc := reportService.NewService(reportRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	auditHandler := appHTTP.NewAuditHandler(auditSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AppName:        cfg.App.Name,
			AppEnv:         cfg.App.Env,
			AllowedOrigins: cfg.App.AllowedOrigins,
		},
		jwtService,
		attendanceHandler,
		leaveHandler,
		reportHandler,
		auditHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

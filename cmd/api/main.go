package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/hrpulse-id/payroll-backend-go/internal/config"
	appHTTP "github.com/hrpulse-id/payroll-backend-go/internal/handler/http"
	"github.com/hrpulse-id/payroll-backend-go/internal/pkg/cron"
	"github.com/hrpulse-id/payroll-backend-go/internal/pkg/database"
	"github.com/hrpulse-id/payroll-backend-go/internal/repository/postgresql"
	attendanceService "github.com/hrpulse-id/payroll-backend-go/internal/service/attendance"
	dashboardService "github.com/hrpulse-id/payroll-backend-go/internal/service/dashboard"
	employeeService "github.com/hrpulse-id/payroll-backend-go/internal/service/employee"
	"github.com/hrpulse-id/payroll-backend-go/internal/service/leave"
	payrollService "github.com/hrpulse-id/payroll-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	sequenceRepo := postgresql.NewCodeSequenceRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	timeOffRepo := postgresql.NewTimeOffRepository(db)
	payrunRepo := postgresql.NewPayrunRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)
	companySource := postgresql.NewCompanySourceRepository(db)

	aggregator := attendanceService.NewAggregatorService(attendanceRepo)
	balanceService := leave.NewBalanceService(timeOffRepo, cfg.Payroll.AnnualLeaveEntitlement)
	requestService := leave.NewRequestService(timeOffRepo)
	provisioningService := employeeService.NewProvisioningService(
		db,
		employeeRepo,
		employeeService.NewCodeGenerator(sequenceRepo),
		auditRepo,
	)
	payrunEngine := payrollService.NewPayrunEngine(
		payrunRepo,
		employeeRepo,
		auditRepo,
		aggregator,
		payrollService.Rates{
			PFRate:          cfg.Payroll.PFRate,
			ProfessionalTax: cfg.Payroll.ProfessionalTax,
		},
		cfg.Payroll.MaterializeParallelism,
	)
	payslipGenerator := payrollService.NewPayslipGenerator(payrunRepo, employeeRepo)
	dashboardSvc := dashboardService.NewService(dashboardRepo)

	autorunInterval, err := time.ParseDuration(cfg.Payroll.AutorunInterval)
	if err != nil {
		log.Fatal("Invalid PAYROLL_AUTORUN_INTERVAL: ", err)
	}
	scheduler := cron.NewScheduler()
	cron.NewPayrollJobs(payrunEngine, companySource, autorunInterval).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	healthHandler := appHTTP.NewHealthHandler(db)
	employeeHandler := appHTTP.NewEmployeeHandler(provisioningService)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceRepo, aggregator)
	timeOffHandler := appHTTP.NewTimeOffHandler(requestService, balanceService)
	payrollHandler := appHTTP.NewPayrollHandler(payrunEngine, payslipGenerator)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)

	router := appHTTP.NewRouter(
		healthHandler,
		employeeHandler,
		attendanceHandler,
		timeOffHandler,
		payrollHandler,
		dashboardHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(
	healthHandler HealthHandler,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	timeOffHandler TimeOffHandler,
	payrollHandler PayrollHandler,
	dashboardHandler DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrpulse-payroll"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Company-ID"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/health", healthHandler.Check)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Post("/", employeeHandler.Provision)
			r.Get("/{id}", employeeHandler.GetByID)
			r.Patch("/{id}/status", employeeHandler.UpdateStatus)
		})

		r.Route("/attendances", func(r chi.Router) {
			r.Post("/", attendanceHandler.Record)
			r.Get("/{employeeID}/summary", attendanceHandler.Summary)
		})

		r.Route("/time-off", func(r chi.Router) {
			r.Post("/", timeOffHandler.Submit)
			r.Patch("/{id}/decision", timeOffHandler.Decide)
			r.Get("/{employeeID}/balance", timeOffHandler.Balance)
		})

		r.Route("/payruns", func(r chi.Router) {
			r.Post("/", payrollHandler.Generate)
			r.Get("/{id}", payrollHandler.Get)
			r.Get("/{id}/lines", payrollHandler.Lines)
			r.Get("/{id}/employees/{employeeID}/line", payrollHandler.EmployeeLine)
			r.Post("/{id}/finalize", payrollHandler.Finalize)
			r.Post("/lines/{lineID}/payslip", payrollHandler.GeneratePayslip)
		})

		r.Route("/payslips", func(r chi.Router) {
			r.Get("/{id}", payrollHandler.GetPayslip)
			r.Get("/{id}/pdf", payrollHandler.DownloadPayslip)
		})

		r.Get("/dashboard", dashboardHandler.Overview)
	})

	return r
}

/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/employees/*            Directory, balances, requests, timesheets, rates
  /api/leave-requests/*       Request filing and the approval queue
  /api/cost-centers/*         Reference data
  /api/timesheets/*           CSV ingestion
  /api/payroll/*              Calculation triggers
  /api/payroll-calculations/* Payslip rendering

SECURITY NOTE:
  No authentication middleware. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Employee routes
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
			r.Get("/{id}/leave-balance", h.GetLeaveBalance)
			r.Get("/{id}/leave-accruals", h.ListLeaveAccruals)
			r.Post("/{id}/accruals/process", h.ProcessAccruals)
			r.Get("/{id}/leave-requests", h.ListLeaveRequests)
			r.Get("/{id}/timesheets", h.ListTimesheets)
			r.Get("/{id}/payroll-components", h.ListPayrollComponents)
			r.Post("/{id}/payroll-components", h.CreatePayrollComponent)
			r.Get("/{id}/payroll-calculations", h.ListPayrollCalculations)
		})

		// Leave request routes
		r.Route("/leave-requests", func(r chi.Router) {
			r.Post("/", h.CreateLeaveRequest)
			r.Get("/pending", h.ListPendingRequests)
			r.Post("/{id}/approve", h.ApproveRequest)
			r.Post("/{id}/deny", h.DenyRequest)
		})

		// Cost center routes
		r.Route("/cost-centers", func(r chi.Router) {
			r.Get("/", h.ListCostCenters)
			r.Post("/", h.CreateCostCenter)
		})

		// Timesheet routes
		r.Post("/timesheets/upload", h.UploadTimesheets)
		r.Get("/timesheet-uploads", h.ListTimesheetUploads)

		// Payroll routes
		r.Route("/payroll", func(r chi.Router) {
			r.Post("/calculate", h.CalculatePayroll)
			r.Post("/bulk-calculate", h.BulkCalculatePayroll)
		})
		r.Get("/payroll-calculations/{id}/payslip", h.GetPayslip)
	})

	return r
}

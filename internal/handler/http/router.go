package http

import (
	"log/slog"
	"os"

	"github.com/brightmind-academy/payroll-engine/internal/handler/http/middleware"
	"github.com/brightmind-academy/payroll-engine/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	Env            string
	Version        string
	AllowedOrigins []string
}

type Handlers struct {
	Staff   StaffHandler
	Shift   ShiftHandler
	PaySlip PaySlipHandler
	Filing  FilingHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "academy-payroll"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(JWTService))

		r.Route("/staff", func(r chi.Router) {
			r.Get("/", h.Staff.List)
			r.Get("/{id}", h.Staff.GetByID)
			r.Get("/{id}/timesheet", h.Shift.MonthlySummary)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(jwt.RoleAdmin))
				r.Post("/", h.Staff.Create)
				r.Put("/{id}/policy", h.Staff.UpdatePolicy)
				r.Post("/{id}/deactivate", h.Staff.Deactivate)
			})
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Post("/", h.Shift.Log)
			r.Post("/{id}/corrections", h.Shift.Correct)
		})

		r.Route("/payslips", func(r chi.Router) {
			r.Get("/", h.PaySlip.List)
			r.Get("/export", h.PaySlip.Export)
			r.Get("/{id}", h.PaySlip.GetByID)
			r.Post("/", h.PaySlip.Issue)
			r.Post("/batch", h.PaySlip.IssueBatch)
		})

		r.Route("/filings", func(r chi.Router) {
			r.Get("/upcoming", h.Filing.ListUpcoming)
			r.Get("/{year}", h.Filing.GetSchedule)
			r.Get("/{year}/export", h.Filing.Export)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(jwt.RoleAdmin))
				r.Post("/{year}", h.Filing.EnsureSchedule)
				r.Patch("/obligations/{id}", h.Filing.UpdateStatus)
			})
		})

		r.With(middleware.RequireRole(jwt.RoleAdmin)).
			Post("/tokens/revoke", NewTokenHandler(JWTService).Revoke)
	})
	return r
}

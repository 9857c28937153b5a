package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/workpulse-hr/attendance-engine-go/internal/handler/http/middleware"
	"github.com/workpulse-hr/attendance-engine-go/internal/pkg/jwt"
)

func NewRouter(JWTService jwt.Service, shiftHandler ShiftHandler, attendanceHandler AttendanceHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-engine"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
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

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", shiftHandler.List)
				r.Get("/{id}", shiftHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", shiftHandler.Create)
					r.Delete("/{id}", shiftHandler.Delete)
				})
			})

			r.Route("/shift-assignments", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Put("/default-shift", shiftHandler.SetDefaultShift)
				r.Put("/flexible-permanent", shiftHandler.SetFlexiblePermanent)
				r.Put("/pattern", shiftHandler.SetPatternEntry)
				r.Post("/permanent-overrides", shiftHandler.AddPermanentOverride)
				r.Put("/day-overrides", shiftHandler.SetDayOverride)
				r.Delete("/day-overrides/{employeeID}/{date}", shiftHandler.ClearDayOverride)
			})

			r.Route("/shift-change-requests", func(r chi.Router) {
				r.Post("/", shiftHandler.SubmitChangeRequest)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", shiftHandler.ListChangeRequests)
					r.Post("/{id}/approve", shiftHandler.ApproveChangeRequest)
					r.Post("/{id}/reject", shiftHandler.RejectChangeRequest)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/events", attendanceHandler.RecordEvent)
				r.Get("/my/day", attendanceHandler.GetMyDay)
				r.Get("/my/days", attendanceHandler.ListMyDays)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/employees/{employeeID}/day", attendanceHandler.GetEmployeeDay)
					r.Get("/employees/{employeeID}/timeline", attendanceHandler.GetTimeline)
					r.Get("/employees/{employeeID}/shift", shiftHandler.Resolve)
				})
			})
		})
	})
	return r
}

package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/stafflow-hr/workforce-backend-go/internal/handler/http/middleware"
)

func NewRouter(
	tokenAuth *jwtauth.JWTAuth,
	env string,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	tripHandler TripHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workforce-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
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
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(tokenAuth))
			r.Use(middleware.AuthRequired(tokenAuth))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/events", attendanceHandler.RecordEvent)
				r.Get("/grid", attendanceHandler.MonthlyGrid)
				r.Get("/roster", attendanceHandler.Roster)
				r.Post("/export", reportHandler.ExportAttendance)
				r.Get("/{id}", attendanceHandler.GetRecord)
			})

			r.Route("/leave", func(r chi.Router) {
				r.Get("/balances", leaveHandler.ListBalances)
				r.Post("/accrual/run", leaveHandler.RunAccrual)
			})

			r.Route("/trips", func(r chi.Router) {
				r.Get("/{id}/distance", tripHandler.GetDistance)
			})
		})
	})
	return r
}

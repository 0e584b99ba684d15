package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/inzone-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/inzone-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Attendance AttendanceHandler
	Report     ReportHandler
	Geofence   GeofenceHandler
	Signup     SignupHandler
}

type RouterOptions struct {
	AllowedOrigins []string
	Env            string
	Version        string
}

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "inzone"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w, r.Method+" is not allowed on "+r.URL.Path)
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)
			r.Use(chiMiddleware.AllowContentType("application/json"))

			// Employee routes; handlers check the caller owns employeeId
			r.Post("/mark-attendance", h.Attendance.MarkAttendance)
			r.Post("/get-attendance-by-status", h.Attendance.GetByStatus)
			r.Post("/get-today-attendance", h.Attendance.GetToday)
			r.Get("/get-geofences", h.Geofence.List)
			r.Post("/get-dept-geofence", h.Geofence.GetByDepartment)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Post("/get-attendance-for-date", h.Attendance.GetForDate)
				r.Post("/update-attendance-time", h.Attendance.UpdateAttendanceTime)
				r.Post("/run-absence-sweep", h.Attendance.RunAbsenceSweep)

				r.Post("/monthly-stats", h.Report.MonthlyStats)
				r.Get("/monthly-stats/export", h.Report.ExportMonthlyStats)

				r.Post("/save-geofence", h.Geofence.Save)
				r.Post("/delete-geofence", h.Geofence.Delete)

				r.Get("/pending-requests", h.Signup.PendingRequests)
				r.Post("/handle-request", h.Signup.HandleRequest)
				r.Get("/approved-users", h.Signup.ApprovedUsers)
				r.Post("/get-admin-stats", h.Signup.AdminStats)
			})
		})
	})
	return r
}

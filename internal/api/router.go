package api

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"careconnect/internal/api/handler"
	"careconnect/internal/api/middleware"
	"careconnect/internal/app/service"
	"careconnect/internal/common"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

type Services struct {
	Auth       *service.AuthService
	Patients   *service.PatientService
	Volunteers *service.VolunteerService
	Dashboard  *service.DashboardService
}

type Options struct {
	AuthRateLimit float64
	AuthRateBurst int
	// StaticDir holds the built web client; empty disables static serving.
	StaticDir string
}

func NewRouter(svc Services, opts Options, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authenticated := middleware.Authenticator(svc.Auth)

	r.Route("/api", func(api chi.Router) {
		authHandler := handler.NewAuthHandler(svc.Auth)
		api.Route("/auth", func(ar chi.Router) {
			ar.Use(middleware.RateLimitByIP(opts.AuthRateLimit, opts.AuthRateBurst))
			authHandler.RegisterRoutes(ar)
		})

		api.Post("/chat", handler.Chat)

		patientHandler := handler.NewPatientHandler(svc.Patients, log)
		api.Route("/patients", func(pr chi.Router) {
			pr.Use(authenticated)
			patientHandler.RegisterRoutes(pr)
		})

		volunteerHandler := handler.NewVolunteerHandler(svc.Volunteers, log)
		api.Route("/volunteers", func(vr chi.Router) {
			vr.Use(authenticated)
			volunteerHandler.RegisterRoutes(vr)
		})

		statsHandler := handler.NewStatsHandler(svc.Dashboard, log)
		api.With(authenticated, middleware.AdminOnly).Get("/stats", statsHandler.GetStats)

		api.NotFound(func(w http.ResponseWriter, r *http.Request) {
			common.RespondWithError(w, http.StatusNotFound, "API route not found")
		})
	})

	if opts.StaticDir != "" {
		r.NotFound(staticHandler(opts.StaticDir))
	}

	return r
}

// staticHandler serves the web client, falling back to index.html so
// client-side routes resolve.
func staticHandler(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.NotFound(w, r)
			return
		}
		path := filepath.Join(dir, filepath.FromSlash(filepath.Clean("/"+r.URL.Path)))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, filepath.Join(dir, "index.html"))
	}
}

package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/phrazzld/astral-api/internal/api"
	apiMiddleware "github.com/phrazzld/astral-api/internal/api/middleware"
	"github.com/phrazzld/astral-api/internal/api/shared"
)

const slowRequestThreshold = 2 * time.Second

// setupRouter creates the router with all middleware and routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(apiMiddleware.NewHTTPMetrics(app.registry, slowRequestThreshold).Handler)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.AllowedOrigins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", shared.TraceIDHeader},
		ExposedHeaders:   []string{shared.TraceIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	chartHandler := api.NewChartHandler(app.chartService, app.profileService, app.logger)
	profileHandler := api.NewProfileHandler(app.profileService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/charts", chartHandler.ComputeChart)
		r.Post("/charts/batch", chartHandler.ComputeBatch)
		r.Post("/compatibility", chartHandler.Compatibility)
		r.Get("/transits", chartHandler.CurrentTransits)
		r.Post("/transits/personal", chartHandler.PersonalTransits)
		r.Get("/horoscopes/{sign}", chartHandler.DailyHoroscope)

		r.Route("/profiles", func(r chi.Router) {
			r.Post("/", profileHandler.CreateProfile)
			r.Get("/", profileHandler.ListProfiles)
			r.Get("/{id}", profileHandler.GetProfile)
			r.Get("/{id}/chart", profileHandler.ProfileChart)
			r.Get("/{id}/transits", profileHandler.ProfileTransits)
			r.Delete("/{id}", profileHandler.DeleteProfile)
		})
	})

	r.Get("/health", app.health)
	r.Handle("/metrics", promhttp.HandlerFor(app.gatherer, promhttp.HandlerOpts{}))

	return r
}

// health reports liveness plus the state of the backing store. A database
// that stops answering pings turns the response into a 503.
func (app *application) health(w http.ResponseWriter, r *http.Request) {
	resp := api.HealthResponse{Status: "ok", Cache: app.chartCache.Kind(), Store: "memory"}
	status := http.StatusOK

	if app.db != nil {
		resp.Store = "postgres"
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := app.db.PingContext(ctx); err != nil {
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
	}

	shared.RespondWithJSON(w, r, status, resp)
}

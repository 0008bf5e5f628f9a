package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/adapter/rest/middleware"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/adapter/rest/response"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/platform/logger"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/platform/metrics"
)

// HealthCheck reports whether a backing service is reachable.
type HealthCheck func(ctx context.Context) error

type RouterConfig struct {
	ServiceName    string
	JWTSecret      string
	AllowedOrigins []string
}

type Handlers struct {
	Listings      *ListingHandler
	Enquiries     *EnquiryHandler
	Subscriptions *SubscriptionHandler
	Health        HealthCheck
	Metrics       *metrics.MetricsManager
}

// NewRouter wires middleware and routes. Nil Enquiries or Subscriptions
// handlers leave their routes unmounted.
func NewRouter(cfg RouterConfig, h Handlers, appLogger *logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP, middleware.Logging(appLogger.Named("http")), chimw.Recoverer)
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.Metrics(h.Metrics))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authenticate := middleware.JWTAuth(cfg.JWTSecret, appLogger.Named("auth"))
	dealerOnly := middleware.RequireRole(middleware.RoleDealer, middleware.RoleAdmin)

	r.Get("/healthz", healthHandler(h.Health, appLogger))
	if h.Metrics != nil {
		r.Handle("/metrics", h.Metrics.Handler())
	}

	r.Route("/properties", func(r chi.Router) {
		r.Get("/", h.Listings.List)
		r.With(authenticate).Get("/my-properties", h.Listings.Mine)
		r.Get("/{id}", h.Listings.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.With(dealerOnly).Post("/", h.Listings.Create)
			r.Put("/{id}", h.Listings.Update)
			r.Delete("/{id}", h.Listings.Delete)
		})
	})

	if h.Enquiries != nil {
		r.Route("/enquiries", func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", h.Enquiries.Create)
			r.With(middleware.RequireRole(middleware.RoleAdmin)).Get("/", h.Enquiries.ListAll)
			r.With(dealerOnly).Get("/received", h.Enquiries.ListReceived)
			r.Get("/mine", h.Enquiries.ListSent)
			r.Get("/{id}", h.Enquiries.Get)
			r.Patch("/{id}/status", h.Enquiries.UpdateStatus)
			r.Delete("/{id}", h.Enquiries.Delete)
		})
	}

	if h.Subscriptions != nil {
		r.Route("/subscriptions", func(r chi.Router) {
			r.Get("/plans", h.Subscriptions.Plans)
			r.Group(func(r chi.Router) {
				r.Use(authenticate, dealerOnly)
				r.Get("/me", h.Subscriptions.Mine)
				r.Post("/", h.Subscriptions.Subscribe)
				r.Delete("/me", h.Subscriptions.Cancel)
			})
		})
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotFound, "route not found")
	})
	return r
}

func healthHandler(check HealthCheck, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				log.Warn("Health check failed", zap.Error(err))
				response.Error(w, http.StatusServiceUnavailable, "database unavailable")
				return
			}
		}
		response.JSON(w, http.StatusOK, response.Envelope{Success: true, Message: "ok"})
	}
}

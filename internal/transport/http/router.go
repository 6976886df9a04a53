package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/crowdfund-dashboard/internal/application/investment"
	"github.com/crowdfund-dashboard/internal/application/navigation"
	"github.com/crowdfund-dashboard/internal/application/notification"
	"github.com/crowdfund-dashboard/internal/config"
	"github.com/crowdfund-dashboard/internal/domain"
	"github.com/crowdfund-dashboard/internal/transport/http/handler"
	appmiddleware "github.com/crowdfund-dashboard/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router. ctx bounds the
// lifetime of background workers such as the rate limiter cleanup.
func NewRouter(ctx context.Context, cfg *config.Config, deps *Deps) (http.Handler, error) {
	if deps.Verifier == nil {
		return nil, fmt.Errorf("router: token verifier is required")
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(appmiddleware.RequestLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	trusted, err := appmiddleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}
	// 1 export every 2 seconds per client, burst of 3.
	exportRL := appmiddleware.NewRateLimiter(ctx, rate.Limit(0.5), 3, trusted)

	navSvc, err := navigation.NewService()
	if err != nil {
		return nil, err
	}
	notifSvc := notification.NewService(notification.ServiceDeps{
		Repo:      deps.NotificationRepo,
		Publisher: deps.Publisher,
		Logger:    log.Named("notification"),
		Now:       deps.Now,
	})
	investSvc := investment.NewService(investment.ServiceDeps{
		Repo:         deps.InvestmentRepo,
		ObjectStore:  deps.ObjectStore,
		ExportURLTTL: cfg.ExportURLTTL,
		Logger:       log.Named("investment"),
		Now:          deps.Now,
	})

	healthH := handler.NewHealthHandler(deps.Now)
	notifH := handler.NewNotificationHandler(notifSvc)
	investH := handler.NewInvestmentHandler(investSvc)
	navH := handler.NewNavigationHandler(navSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Auth(deps.Verifier))

			r.Get("/navigation", navH.Menu)
			r.Get("/notifications", notifH.Feed)
			r.Get("/notifications/personal", notifH.ListPersonal)
			r.Get("/notifications/broadcast", notifH.ListBroadcast)
			r.Put("/notifications/{id}", notifH.MarkAsRead)
			r.Get("/investments", investH.Dashboard)

			r.With(
				appmiddleware.RequireRole(log, domain.RoleAdmin, domain.RoleBusiness),
				exportRL.Limit,
			).Post("/investments/export", investH.Export)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(log, domain.RoleAdmin))

				r.Post("/notifications/broadcast", notifH.PublishBroadcast)
			})
		})
	})

	return r, nil
}

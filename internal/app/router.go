package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/speedbike/speedbike/internal/auth"
	"github.com/speedbike/speedbike/internal/clients"
	"github.com/speedbike/speedbike/internal/notifications"
	"github.com/speedbike/speedbike/internal/orders"
	"github.com/speedbike/speedbike/internal/reservations"
	"github.com/speedbike/speedbike/internal/sales"
	"github.com/speedbike/speedbike/internal/shared"
	"github.com/speedbike/speedbike/internal/stock/divers"
	"github.com/speedbike/speedbike/internal/stock/helmets"
	"github.com/speedbike/speedbike/internal/stock/oil"
	"github.com/speedbike/speedbike/internal/stock/saddles"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager

	AuthHandler          *auth.Handler
	SalesHandler         *sales.Handler
	OilHandler           *oil.Handler
	HelmetsHandler       *helmets.Handler
	SaddlesHandler       *saddles.Handler
	DiversHandler        *divers.Handler
	ClientsHandler       *clients.Handler
	OrdersHandler        *orders.Handler
	ReservationsHandler  *reservations.Handler
	NotificationsHandler *notifications.Handler
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", params.AuthHandler.MountRoutes)

		r.Group(func(r chi.Router) {
			r.Use(RequireSession)

			r.Route("/sales", params.SalesHandler.MountRoutes)
			r.Route("/oil", params.OilHandler.MountRoutes)
			r.Route("/helmets", params.HelmetsHandler.MountRoutes)
			r.Route("/saddles", params.SaddlesHandler.MountRoutes)
			r.Route("/divers", params.DiversHandler.MountRoutes)
			r.Route("/clients", params.ClientsHandler.MountRoutes)
			r.Route("/orders", params.OrdersHandler.MountRoutes)
			r.Route("/reservations", params.ReservationsHandler.MountRoutes)
			r.Route("/notifications", params.NotificationsHandler.MountRoutes)
		})
	})

	return r
}

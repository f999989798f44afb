package http

import (
	"github.com/MarcJHerz/hoodfy-payments-service/pkg/httputil"
	"github.com/fasthttp/router"
	"github.com/rs/zerolog"
)

// Router registers payment HTTP routes
type Router struct {
	webhook  *WebhookHandler
	payments *PaymentsHandler
	health   *HealthHandler
	logger   zerolog.Logger
}

// NewRouter creates a new payments router
func NewRouter(
	webhook *WebhookHandler,
	payments *PaymentsHandler,
	health *HealthHandler,
	logger zerolog.Logger,
) *Router {
	return &Router{
		webhook:  webhook,
		payments: payments,
		health:   health,
		logger:   logger,
	}
}

// RegisterRoutes registers payment routes on the router
func (r *Router) RegisterRoutes(rt *router.Router) {
	rt.GET("/health", r.health.Handle)

	api := httputil.NewMiddlewareGroup(rt.Group("/api/v1/payments")).
		Use(httputil.RequestLogging(r.logger))

	api.POST("/webhook", r.webhook.Handle)
	api.POST("/checkout-session", r.payments.CreateCheckoutSession)
	api.POST("/portal-session", r.payments.CreatePortalSession)
	api.GET("/earnings/{creatorID}", r.payments.GetEarnings)
}

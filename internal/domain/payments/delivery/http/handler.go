package http

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/deps"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/entities"
	payerrors "github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/errors"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/infrastructure/metrics"
	pkgerrors "github.com/MarcJHerz/hoodfy-payments-service/pkg/errors"
	"github.com/MarcJHerz/hoodfy-payments-service/pkg/httputil"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

type checkoutSessionRequest struct {
	UserID      uint `json:"user_id"`
	CommunityID uint `json:"community_id"`
}

type portalSessionRequest struct {
	UserID         uint  `json:"user_id"`
	SubscriptionID *uint `json:"subscription_id,omitempty"`
}

type sessionResponse struct {
	URL string `json:"url"`
}

type earningsResponse struct {
	CreatorID     uint  `json:"creator_id"`
	CommunityID   *uint `json:"community_id,omitempty"`
	TotalEarnings int64 `json:"total_earnings"`
	PendingAmount int64 `json:"pending_amount"`
}

// PaymentsHandler handles the initiation and earnings endpoints
type PaymentsHandler struct {
	checkout deps.CheckoutUseCase
	ledger   deps.PayoutLedger
	mapper   *pkgerrors.Mapper
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

func NewPaymentsHandler(
	checkout deps.CheckoutUseCase,
	ledger deps.PayoutLedger,
	mapper *pkgerrors.Mapper,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *PaymentsHandler {
	return &PaymentsHandler{
		checkout: checkout,
		ledger:   ledger,
		mapper:   mapper,
		metrics:  m,
		logger:   logger,
	}
}

// CreateCheckoutSession handles POST /api/v1/payments/checkout-session
func (h *PaymentsHandler) CreateCheckoutSession(ctx *fasthttp.RequestCtx) {
	var req checkoutSessionRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		httputil.WriteErrorResponse(ctx, "invalid request body", fasthttp.StatusBadRequest)
		return
	}

	if req.UserID == 0 || req.CommunityID == 0 {
		httputil.WriteErrorResponse(ctx, "user_id and community_id are required", fasthttp.StatusBadRequest)
		return
	}

	url, err := h.checkout.CreateCheckoutSession(ctx, req.UserID, req.CommunityID)
	if err != nil {
		status, message := h.mapper.MapErrorToHTTP(h.toHTTPError(err))
		h.logger.Warn().Err(err).
			Uint("user_id", req.UserID).
			Uint("community_id", req.CommunityID).
			Msg("checkout session creation failed")
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	h.metrics.CheckoutSessions.Inc()
	httputil.WriteResponse(ctx, sessionResponse{URL: url})
}

// CreatePortalSession handles POST /api/v1/payments/portal-session
func (h *PaymentsHandler) CreatePortalSession(ctx *fasthttp.RequestCtx) {
	var req portalSessionRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		httputil.WriteErrorResponse(ctx, "invalid request body", fasthttp.StatusBadRequest)
		return
	}

	if req.UserID == 0 {
		httputil.WriteErrorResponse(ctx, "user_id is required", fasthttp.StatusBadRequest)
		return
	}

	url, err := h.checkout.CreatePortalSession(ctx, req.UserID, req.SubscriptionID)
	if err != nil {
		status, message := h.mapper.MapErrorToHTTP(h.toHTTPError(err))
		h.logger.Warn().Err(err).
			Uint("user_id", req.UserID).
			Msg("portal session creation failed")
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	h.metrics.PortalSessions.Inc()
	httputil.WriteResponse(ctx, sessionResponse{URL: url})
}

// GetEarnings handles GET /api/v1/payments/earnings/{creatorID}
func (h *PaymentsHandler) GetEarnings(ctx *fasthttp.RequestCtx) {
	creatorID, err := pathID(ctx, "creatorID")
	if err != nil {
		httputil.WriteErrorResponse(ctx, "invalid creator id", fasthttp.StatusBadRequest)
		return
	}

	var communityID *uint
	if raw := string(ctx.QueryArgs().Peek("community_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			httputil.WriteErrorResponse(ctx, "invalid community id", fasthttp.StatusBadRequest)
			return
		}
		parsed := uint(id)
		communityID = &parsed
	}

	total, err := h.ledger.TotalEarnings(ctx, creatorID, communityID)
	if err != nil {
		status, message := h.mapper.MapErrorToHTTP(h.toHTTPError(err))
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	pending, err := h.ledger.PendingBalance(ctx, creatorID, communityID)
	if err != nil {
		status, message := h.mapper.MapErrorToHTTP(h.toHTTPError(err))
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	httputil.WriteResponse(ctx, earningsResponse{
		CreatorID:     creatorID,
		CommunityID:   communityID,
		TotalEarnings: total,
		PendingAmount: pending,
	})
}

func (h *PaymentsHandler) toHTTPError(err error) error {
	switch {
	case errors.Is(err, payerrors.ErrUserNotFound):
		return pkgerrors.NewNotFoundError("user not found")
	case errors.Is(err, payerrors.ErrCommunityNotFound):
		return pkgerrors.NewNotFoundError("community not found")
	case errors.Is(err, payerrors.ErrNoManageableSubscription):
		return pkgerrors.NewNotFoundError("no manageable subscription")
	case errors.Is(err, payerrors.ErrInvalidAmount):
		return pkgerrors.NewValidationError("community price is not billable")
	case errors.Is(err, payerrors.ErrNoValidPrice):
		return pkgerrors.NewValidationError("no valid price for community")
	default:
		return pkgerrors.NewInternalError("payment provider request failed")
	}
}

var errInvalidPathParam = errors.New("invalid path parameter")

func pathID(ctx *fasthttp.RequestCtx, name string) (uint, error) {
	raw, ok := ctx.UserValue(name).(string)
	if !ok {
		return 0, errInvalidPathParam
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidPathParam
	}

	return uint(id), nil
}

// HealthHandler reports the health of the service's dependencies
type HealthHandler struct {
	subscriptions deps.SubscriptionRepository
	producer      HealthReporter
	metrics       *metrics.Metrics
	logger        zerolog.Logger
}

// HealthReporter is implemented by infrastructure components that can report
// their own liveness
type HealthReporter interface {
	IsHealthy() bool
}

// ComponentHealth represents health status of a single component
type ComponentHealth struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// HealthResponse represents the JSON response for health check
type HealthResponse struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components []ComponentHealth `json:"components"`
}

func NewHealthHandler(
	subscriptions deps.SubscriptionRepository,
	producer HealthReporter,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *HealthHandler {
	return &HealthHandler{
		subscriptions: subscriptions,
		producer:      producer,
		metrics:       m,
		logger:        logger,
	}
}

// Handle handles the health check request
func (h *HealthHandler) Handle(ctx *fasthttp.RequestCtx) {
	components := make([]ComponentHealth, 0, 2)

	dbHealthy := true
	dbMsg := ""
	activeCount, err := h.subscriptions.CountByStatus(ctx, entities.SubscriptionActive)
	if err != nil {
		dbHealthy = false
		dbMsg = "database query failed"
	} else {
		h.metrics.ActiveSubscriptions.Set(float64(activeCount))
	}
	components = append(components, ComponentHealth{
		Name:    "database",
		Healthy: dbHealthy,
		Message: dbMsg,
	})

	producerHealthy := h.producer != nil && h.producer.IsHealthy()
	producerMsg := ""
	if !producerHealthy {
		producerMsg = "kafka producer is not healthy"
	}
	components = append(components, ComponentHealth{
		Name:    "kafka_producer",
		Healthy: producerHealthy,
		Message: producerMsg,
	})

	healthy := dbHealthy && producerHealthy
	status := "healthy"
	if !healthy {
		status = "unhealthy"
		h.logger.Warn().Interface("components", components).Msg("health check failed")
	}

	httputil.WriteHealthResponse(ctx, HealthResponse{
		Status:     status,
		Timestamp:  time.Now().UTC(),
		Components: components,
	}, healthy)
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/consts"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/deps"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/dto"
	payerrors "github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/errors"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/infrastructure/metrics"
	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82"
	"github.com/valyala/fasthttp"
)

const webhookBodyLimit = 1 << 20 // 1MiB

type eventHandlerFunc func(ctx context.Context, event *stripe.Event) error

// WebhookHandler is the inbound webhook surface: verification, then routing
// over a closed set of event types. Unrecognized types are acknowledged and
// dropped so the provider never retries an event we intentionally ignore.
type WebhookHandler struct {
	verifier   *WebhookVerifier
	reconciler deps.SubscriptionReconciler
	metrics    *metrics.Metrics
	logger     zerolog.Logger

	handlers map[string]eventHandlerFunc
}

func NewWebhookHandler(
	verifier *WebhookVerifier,
	reconciler deps.SubscriptionReconciler,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *WebhookHandler {
	h := &WebhookHandler{
		verifier:   verifier,
		reconciler: reconciler,
		metrics:    m,
		logger:     logger,
	}

	h.handlers = map[string]eventHandlerFunc{
		consts.EventCheckoutCompleted:   h.onCheckoutCompleted,
		consts.EventSubscriptionUpdated: h.onSubscriptionUpdated,
		consts.EventSubscriptionDeleted: h.onSubscriptionDeleted,
		consts.EventPaymentFailed:       h.onPaymentFailed,
		consts.EventPaymentSucceeded:    h.onPaymentSucceeded,
	}

	return h
}

// Handle processes one webhook delivery. Non-2xx responses trigger a
// provider-side retry, so only verification failures and genuine storage
// faults produce one; semantically-understood-but-inapplicable events are
// acknowledged.
func (h *WebhookHandler) Handle(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	defer func() {
		h.metrics.WebhookDuration.Observe(time.Since(start).Seconds())
	}()

	body := ctx.PostBody()
	if len(body) == 0 || len(body) > webhookBodyLimit {
		h.metrics.WebhookErrors.WithLabelValues("bad_body").Inc()
		h.respondError(ctx, fasthttp.StatusBadRequest, "invalid request body")
		return
	}

	signature := string(ctx.Request.Header.Peek("Stripe-Signature"))
	host := string(ctx.Request.Header.Peek("X-Forwarded-Host"))
	if host == "" {
		host = string(ctx.Host())
	}

	event, err := h.verifier.Verify(body, signature, host)
	if err != nil {
		h.metrics.WebhookErrors.WithLabelValues("verification").Inc()
		h.logger.Warn().
			Str("host", host).
			Msg("webhook signature verification failed")
		h.respondError(ctx, fasthttp.StatusBadRequest, "invalid signature")
		return
	}

	eventType := string(event.Type)
	handler, ok := h.handlers[eventType]
	if !ok {
		h.metrics.WebhookEventsIgnored.Inc()
		h.logger.Debug().
			Str("event_type", eventType).
			Str("event_id", event.ID).
			Msg("unhandled event type acknowledged")
		h.respondReceived(ctx)
		return
	}

	h.metrics.WebhookEvents.WithLabelValues(eventType).Inc()

	err = handler(ctx, &event)
	switch {
	case err == nil:
		h.respondReceived(ctx)

	case errors.Is(err, payerrors.ErrMalformedEvent),
		errors.Is(err, payerrors.ErrSubscriptionNotFound),
		errors.Is(err, payerrors.ErrCommunityNotFound),
		errors.Is(err, payerrors.ErrUserNotFound):
		// Retrying will not repair a permanently malformed or dangling
		// event; acknowledge to stop the retry loop.
		h.metrics.WebhookErrors.WithLabelValues("dropped").Inc()
		h.logger.Warn().Err(err).
			Str("event_type", eventType).
			Str("event_id", event.ID).
			Msg("event acknowledged without effect")
		h.respondReceived(ctx)

	default:
		h.metrics.WebhookErrors.WithLabelValues("internal").Inc()
		h.logger.Error().Err(err).
			Str("event_type", eventType).
			Str("event_id", event.ID).
			Msg("webhook handling failed, provider will retry")
		h.respondError(ctx, fasthttp.StatusInternalServerError, "internal error")
	}
}

func (h *WebhookHandler) onCheckoutCompleted(ctx context.Context, event *stripe.Event) error {
	var session dto.CheckoutSessionObject
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return payerrors.ErrMalformedEvent
	}

	userID, err := parseMetadataID(session.Metadata, "userId")
	if err != nil {
		return err
	}
	communityID, err := parseMetadataID(session.Metadata, "communityId")
	if err != nil {
		return err
	}

	return h.reconciler.HandleCheckoutCompleted(ctx, dto.CheckoutCompleted{
		SessionID:            session.ID,
		UserID:               userID,
		CommunityID:          communityID,
		StripeSubscriptionID: session.Subscription,
		StripeCustomerID:     session.Customer,
		StripeInvoiceID:      session.Invoice,
		AmountTotal:          session.AmountTotal,
		PaymentStatus:        session.PaymentStatus,
	})
}

func (h *WebhookHandler) onSubscriptionUpdated(ctx context.Context, event *stripe.Event) error {
	var sub dto.SubscriptionObject
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil || sub.ID == "" {
		return payerrors.ErrMalformedEvent
	}

	updated := dto.SubscriptionUpdated{
		StripeSubscriptionID: sub.ID,
		Status:               sub.Status,
	}
	if sub.CurrentPeriodEnd > 0 {
		updated.CurrentPeriodEnd = time.Unix(sub.CurrentPeriodEnd, 0).UTC()
	}

	return h.reconciler.HandleSubscriptionUpdated(ctx, updated)
}

func (h *WebhookHandler) onSubscriptionDeleted(ctx context.Context, event *stripe.Event) error {
	var sub dto.SubscriptionObject
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil || sub.ID == "" {
		return payerrors.ErrMalformedEvent
	}

	return h.reconciler.HandleSubscriptionDeleted(ctx, dto.SubscriptionDeleted{
		StripeSubscriptionID: sub.ID,
	})
}

func (h *WebhookHandler) onPaymentFailed(ctx context.Context, event *stripe.Event) error {
	var invoice dto.InvoiceObject
	if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil || invoice.Subscription == "" {
		return payerrors.ErrMalformedEvent
	}

	return h.reconciler.HandlePaymentFailed(ctx, dto.PaymentFailed{
		StripeSubscriptionID: invoice.Subscription,
		StripeInvoiceID:      invoice.ID,
		AmountDue:            invoice.AmountDue,
	})
}

func (h *WebhookHandler) onPaymentSucceeded(ctx context.Context, event *stripe.Event) error {
	var invoice dto.InvoiceObject
	if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil || invoice.Subscription == "" {
		return payerrors.ErrMalformedEvent
	}

	return h.reconciler.HandlePaymentSucceeded(ctx, dto.PaymentSucceeded{
		StripeSubscriptionID: invoice.Subscription,
		StripeInvoiceID:      invoice.ID,
		AmountPaid:           invoice.AmountPaid,
	})
}

func (h *WebhookHandler) respondReceived(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody([]byte(`{"received":true}`))
}

func (h *WebhookHandler) respondError(ctx *fasthttp.RequestCtx, status int, message string) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody([]byte(`{"error":"` + message + `"}`))
}

func parseMetadataID(metadata map[string]string, key string) (uint, error) {
	raw, ok := metadata[key]
	if !ok || raw == "" {
		return 0, payerrors.ErrMalformedEvent
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, payerrors.ErrMalformedEvent
	}

	return uint(id), nil
}

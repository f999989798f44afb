package business

import (
	"context"
	"errors"
	"time"

	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/consts"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/deps"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/dto"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/entities"
	payerrors "github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/errors"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/infrastructure/metrics"
	"github.com/rs/zerolog"
)

const sideEffectTimeout = 5 * time.Second

// Reconciler applies provider webhook events to local subscription state.
//
// Deliveries are at-least-once, unordered, and possibly concurrent; every
// transition is gated on a precondition that makes a duplicate or stale
// delivery a no-op. No dedup log is kept: the provider carries a stable
// identifier per logical change, so "does a matching record already reflect
// this change" is the idempotency check.
//
// Side effects (membership, ally graph, notifications) are best-effort:
// their failure is logged and swallowed, never rolling back the primary
// transition or failing the webhook response.
type Reconciler struct {
	subscriptions deps.SubscriptionRepository
	communities   deps.CommunityRepository
	membership    deps.MembershipSynchronizer
	ledger        deps.PayoutLedger
	sink          deps.NotificationSink
	metrics       *metrics.Metrics
	logger        zerolog.Logger
	now           func() time.Time
}

func NewReconciler(
	subscriptions deps.SubscriptionRepository,
	communities deps.CommunityRepository,
	membership deps.MembershipSynchronizer,
	ledger deps.PayoutLedger,
	sink deps.NotificationSink,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *Reconciler {
	return &Reconciler{
		subscriptions: subscriptions,
		communities:   communities,
		membership:    membership,
		ledger:        ledger,
		sink:          sink,
		metrics:       m,
		logger:        logger,
		now:           time.Now,
	}
}

// HandleCheckoutCompleted creates the subscription, the payout record and
// the membership for a completed checkout session. A replayed delivery finds
// the active subscription already in place and returns without effect.
func (r *Reconciler) HandleCheckoutCompleted(ctx context.Context, event dto.CheckoutCompleted) error {
	if event.UserID == 0 || event.CommunityID == 0 {
		return payerrors.ErrMalformedEvent
	}

	existing, err := r.subscriptions.GetActiveByUserAndCommunity(ctx, event.UserID, event.CommunityID)
	if err != nil && !errors.Is(err, payerrors.ErrSubscriptionNotFound) {
		return err
	}
	if existing != nil {
		r.logger.Info().
			Uint("user_id", event.UserID).
			Uint("community_id", event.CommunityID).
			Str("session_id", event.SessionID).
			Msg("checkout replay ignored, active subscription exists")
		return nil
	}

	community, err := r.communities.GetByID(ctx, event.CommunityID)
	if err != nil {
		return err
	}

	subscription := &entities.Subscription{
		UserID:               event.UserID,
		CommunityID:          event.CommunityID,
		Status:               entities.SubscriptionActive,
		Amount:               event.AmountTotal,
		PaymentMethod:        "stripe",
		StartDate:            r.now(),
		StripeSubscriptionID: event.StripeSubscriptionID,
		StripeCustomerID:     event.StripeCustomerID,
	}

	if err := r.subscriptions.Create(ctx, subscription); err != nil {
		return err
	}

	r.metrics.SubscriptionsCreated.Inc()

	if community.PayoutAccountStatus == entities.PayoutAccountActive {
		r.recordPayout(ctx, community, subscription, event)
	}

	if err := r.membership.Join(ctx, event.UserID, event.CommunityID); err != nil {
		r.logger.Error().Err(err).
			Uint("user_id", event.UserID).
			Uint("community_id", event.CommunityID).
			Msg("membership join failed, subscription kept")
	}

	r.notifyAsync(consts.NotificationSubscriptionSuccess, event.UserID, dto.NotificationPayload{
		CommunityID:    event.CommunityID,
		SubscriptionID: subscription.ID,
		Amount:         event.AmountTotal,
	})

	r.logger.Info().
		Uint("user_id", event.UserID).
		Uint("community_id", event.CommunityID).
		Uint("subscription_id", subscription.ID).
		Int64("amount", event.AmountTotal).
		Msg("subscription activated from checkout")

	return nil
}

// HandleSubscriptionUpdated overwrites the cached provider-side status and
// period fields. Stale overwrites are harmless; no precondition is needed.
func (r *Reconciler) HandleSubscriptionUpdated(ctx context.Context, event dto.SubscriptionUpdated) error {
	subscription, err := r.subscriptions.GetByStripeSubscriptionID(ctx, event.StripeSubscriptionID)
	if err != nil {
		if errors.Is(err, payerrors.ErrSubscriptionNotFound) {
			r.logger.Warn().
				Str("stripe_subscription_id", event.StripeSubscriptionID).
				Msg("subscription update for unknown subscription ignored")
		}
		return err
	}

	if !event.CurrentPeriodEnd.IsZero() {
		periodEnd := event.CurrentPeriodEnd
		subscription.CurrentPeriodEnd = &periodEnd
	}
	if event.Status != "" {
		subscription.StripeStatus = event.Status
	}

	if err := r.subscriptions.Update(ctx, subscription); err != nil {
		return err
	}

	r.logger.Debug().
		Uint("subscription_id", subscription.ID).
		Str("provider_status", event.Status).
		Msg("subscription provider fields refreshed")

	return nil
}

// HandleSubscriptionDeleted cancels an active subscription: terminal status,
// end date stamp, roster removal and ally prune. Already-canceled is a no-op.
func (r *Reconciler) HandleSubscriptionDeleted(ctx context.Context, event dto.SubscriptionDeleted) error {
	subscription, err := r.subscriptions.GetByStripeSubscriptionID(ctx, event.StripeSubscriptionID)
	if err != nil {
		return err
	}

	if subscription.Status != entities.SubscriptionActive {
		r.logger.Info().
			Uint("subscription_id", subscription.ID).
			Str("status", string(subscription.Status)).
			Msg("delete replay ignored, subscription not active")
		return nil
	}

	endDate := r.now()
	subscription.Status = entities.SubscriptionCanceled
	subscription.EndDate = &endDate

	if err := r.subscriptions.Update(ctx, subscription); err != nil {
		return err
	}

	r.metrics.SubscriptionsCanceled.Inc()

	if err := r.membership.Leave(ctx, subscription.UserID, subscription.CommunityID); err != nil {
		r.logger.Error().Err(err).
			Uint("user_id", subscription.UserID).
			Uint("community_id", subscription.CommunityID).
			Msg("membership leave failed, cancellation kept")
	}

	r.notifyAsync(consts.NotificationSubscriptionCanceled, subscription.UserID, dto.NotificationPayload{
		CommunityID:    subscription.CommunityID,
		SubscriptionID: subscription.ID,
	})

	r.logger.Info().
		Uint("subscription_id", subscription.ID).
		Uint("user_id", subscription.UserID).
		Uint("community_id", subscription.CommunityID).
		Msg("subscription canceled")

	return nil
}

// HandlePaymentFailed marks an active subscription as payment_failed.
// Not-active is a no-op so a late retry after recovery cannot regress state,
// and a failure for an invoice that already succeeded is stale regardless of
// delivery order and is dropped.
func (r *Reconciler) HandlePaymentFailed(ctx context.Context, event dto.PaymentFailed) error {
	subscription, err := r.subscriptions.GetByStripeSubscriptionID(ctx, event.StripeSubscriptionID)
	if err != nil {
		return err
	}

	if event.StripeInvoiceID != "" && event.StripeInvoiceID == subscription.LastPaidInvoiceID {
		r.logger.Info().
			Uint("subscription_id", subscription.ID).
			Str("invoice_id", event.StripeInvoiceID).
			Msg("payment failure ignored, invoice already paid")
		return nil
	}

	if subscription.Status != entities.SubscriptionActive {
		r.logger.Info().
			Uint("subscription_id", subscription.ID).
			Str("status", string(subscription.Status)).
			Msg("payment failure ignored, subscription not active")
		return nil
	}

	attempt := r.now()
	subscription.Status = entities.SubscriptionPaymentFailed
	subscription.LastPaymentAttempt = &attempt

	if err := r.subscriptions.Update(ctx, subscription); err != nil {
		return err
	}

	r.metrics.PaymentFailures.Inc()

	r.notifyAsync(consts.NotificationPaymentFailed, subscription.UserID, dto.NotificationPayload{
		CommunityID:    subscription.CommunityID,
		SubscriptionID: subscription.ID,
		Amount:         event.AmountDue,
	})

	r.logger.Warn().
		Uint("subscription_id", subscription.ID).
		Int64("amount_due", event.AmountDue).
		Msg("subscription payment failed")

	return nil
}

// HandlePaymentSucceeded stamps the payment attempt and records the paid
// invoice. When the subscription was in payment_failed it recovers it to
// active and restores the membership.
func (r *Reconciler) HandlePaymentSucceeded(ctx context.Context, event dto.PaymentSucceeded) error {
	subscription, err := r.subscriptions.GetByStripeSubscriptionID(ctx, event.StripeSubscriptionID)
	if err != nil {
		return err
	}

	attempt := r.now()
	subscription.LastPaymentAttempt = &attempt
	if event.StripeInvoiceID != "" {
		subscription.LastPaidInvoiceID = event.StripeInvoiceID
	}

	recovered := subscription.Status == entities.SubscriptionPaymentFailed
	if recovered {
		subscription.Status = entities.SubscriptionActive
	}

	if err := r.subscriptions.Update(ctx, subscription); err != nil {
		return err
	}

	if recovered {
		r.metrics.PaymentRecoveries.Inc()

		if err := r.membership.Join(ctx, subscription.UserID, subscription.CommunityID); err != nil {
			r.logger.Error().Err(err).
				Uint("user_id", subscription.UserID).
				Uint("community_id", subscription.CommunityID).
				Msg("membership rejoin failed, recovery kept")
		}
	}

	r.notifyAsync(consts.NotificationPaymentSucceeded, subscription.UserID, dto.NotificationPayload{
		CommunityID:    subscription.CommunityID,
		SubscriptionID: subscription.ID,
		Amount:         event.AmountPaid,
	})

	r.logger.Info().
		Uint("subscription_id", subscription.ID).
		Bool("recovered", recovered).
		Int64("amount_paid", event.AmountPaid).
		Msg("subscription payment succeeded")

	return nil
}

// recordPayout computes the split and appends the ledger entry. A payout
// failure is logged but does not undo the subscription.
func (r *Reconciler) recordPayout(ctx context.Context, community *entities.Community, subscription *entities.Subscription, event dto.CheckoutCompleted) {
	split, err := Split(event.AmountTotal, community.PlatformFeePercentage)
	if err != nil {
		r.logger.Error().Err(err).
			Uint("community_id", community.ID).
			Int64("amount", event.AmountTotal).
			Msg("failed to compute payment split")
		return
	}

	details := entities.PaymentDetails{
		TotalAmount:           split.Total,
		PlatformFee:           split.PlatformFee,
		CreatorAmount:         split.CreatorAmount,
		PlatformFeePercentage: community.PlatformFeePercentage,
		CreatorFeePercentage:  community.CreatorFeePercentage,
	}

	if _, err := r.ledger.Record(ctx, community, subscription, details, event); err != nil {
		r.logger.Error().Err(err).
			Uint("subscription_id", subscription.ID).
			Msg("failed to record payout, subscription kept")
		return
	}

	r.metrics.PayoutRecords.Inc()
}

// notifyAsync dispatches a notification without awaiting completion so a
// slow or failing sink can never delay the webhook response
func (r *Reconciler) notifyAsync(kind string, userID uint, payload dto.NotificationPayload) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
		defer cancel()

		if err := r.sink.Notify(ctx, kind, userID, payload); err != nil {
			r.logger.Warn().Err(err).
				Str("kind", kind).
				Uint("user_id", userID).
				Msg("notification dropped")
		}
	}()
}

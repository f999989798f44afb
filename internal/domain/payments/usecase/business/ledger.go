package business

import (
	"context"
	"fmt"

	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/deps"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/dto"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/entities"
	"github.com/rs/zerolog"
)

// Ledger owns the append-only payout records. PaymentDetails are written
// once and never rewritten; settlement progress is a status change.
type Ledger struct {
	payouts deps.PayoutRepository
	logger  zerolog.Logger
}

func NewLedger(payouts deps.PayoutRepository, logger zerolog.Logger) *Ledger {
	return &Ledger{
		payouts: payouts,
		logger:  logger,
	}
}

// Record appends one payout record for a successfully split payment
func (l *Ledger) Record(
	ctx context.Context,
	community *entities.Community,
	subscription *entities.Subscription,
	split entities.PaymentDetails,
	meta dto.CheckoutCompleted,
) (*entities.PayoutRecord, error) {
	record := &entities.PayoutRecord{
		CreatorID:            community.CreatorID,
		CommunityID:          community.ID,
		SubscriptionID:       subscription.ID,
		PaymentDetails:       split,
		Status:               entities.PayoutPending,
		StripeInvoiceID:      meta.StripeInvoiceID,
		StripeSubscriptionID: meta.StripeSubscriptionID,
		StripeCustomerID:     meta.StripeCustomerID,
		Currency:             "usd",
		Description:          fmt.Sprintf("Subscription payment for community %s", community.Name),
	}

	if err := l.payouts.Create(ctx, record); err != nil {
		l.logger.Error().Err(err).
			Uint("creator_id", community.CreatorID).
			Uint("community_id", community.ID).
			Msg("failed to append payout record")
		return nil, err
	}

	l.logger.Info().
		Uint("creator_id", community.CreatorID).
		Uint("community_id", community.ID).
		Int64("creator_amount", split.CreatorAmount).
		Int64("platform_fee", split.PlatformFee).
		Msg("payout record appended")

	return record, nil
}

// TotalEarnings sums the creator amounts of paid records, optionally scoped
// to one community
func (l *Ledger) TotalEarnings(ctx context.Context, creatorID uint, communityID *uint) (int64, error) {
	return l.payouts.SumCreatorAmount(ctx, creatorID, communityID, entities.PayoutPaid)
}

// PendingBalance sums the creator amounts of records still awaiting payout
func (l *Ledger) PendingBalance(ctx context.Context, creatorID uint, communityID *uint) (int64, error) {
	return l.payouts.SumCreatorAmount(ctx, creatorID, communityID, entities.PayoutPending)
}

package business

import (
	"context"
	"errors"

	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/deps"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/dto"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/entities"
	payerrors "github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/errors"
	"github.com/rs/zerolog"
)

// CheckoutConfig carries the redirect targets for provider-hosted pages
type CheckoutConfig struct {
	SuccessURL      string
	CancelURL       string
	PortalReturnURL string
}

// Checkout builds provider checkout and billing-portal sessions at
// subscription-initiation time. Webhook handling never goes through here.
type Checkout struct {
	users         deps.UserRepository
	communities   deps.CommunityRepository
	subscriptions deps.SubscriptionRepository
	catalog       deps.PriceCatalog
	gateway       deps.ProviderGateway
	cfg           CheckoutConfig
	logger        zerolog.Logger
}

func NewCheckout(
	users deps.UserRepository,
	communities deps.CommunityRepository,
	subscriptions deps.SubscriptionRepository,
	catalog deps.PriceCatalog,
	gateway deps.ProviderGateway,
	cfg CheckoutConfig,
	logger zerolog.Logger,
) *Checkout {
	return &Checkout{
		users:         users,
		communities:   communities,
		subscriptions: subscriptions,
		catalog:       catalog,
		gateway:       gateway,
		cfg:           cfg,
		logger:        logger,
	}
}

// CreateCheckoutSession builds a provider checkout session for the (user,
// community) pair. The community's price reference is validated and repaired
// first; split-payment routing is attached only when the creator's payout
// account is active.
func (c *Checkout) CreateCheckoutSession(ctx context.Context, userID, communityID uint) (string, error) {
	if _, err := c.users.GetByID(ctx, userID); err != nil {
		return "", err
	}

	community, err := c.communities.GetByID(ctx, communityID)
	if err != nil {
		return "", err
	}

	priceID, err := c.resolvePrice(ctx, community)
	if err != nil {
		return "", err
	}

	spec := dto.CheckoutSessionSpec{
		PriceID:     priceID,
		UserID:      userID,
		CommunityID: communityID,
		SuccessURL:  c.cfg.SuccessURL,
		CancelURL:   c.cfg.CancelURL,
	}

	if community.PayoutAccountStatus == entities.PayoutAccountActive {
		spec.Split = &dto.SplitRouting{
			DestinationAccountID:  community.PayoutAccountID,
			PlatformFeePercentage: community.PlatformFeePercentage,
		}
	}

	url, err := c.gateway.CreateCheckoutSession(ctx, spec)
	if err != nil {
		c.logger.Error().Err(err).
			Uint("user_id", userID).
			Uint("community_id", communityID).
			Msg("failed to create checkout session")
		return "", err
	}

	c.logger.Info().
		Uint("user_id", userID).
		Uint("community_id", communityID).
		Bool("split", spec.Split != nil).
		Msg("checkout session created")

	return url, nil
}

// CreatePortalSession builds a billing-portal session. When no specific
// subscription is given, the most recently created one with a valid customer
// reference is selected.
func (c *Checkout) CreatePortalSession(ctx context.Context, userID uint, subscriptionID *uint) (string, error) {
	var subscription *entities.Subscription
	var err error

	if subscriptionID != nil {
		subscription, err = c.subscriptions.GetByID(ctx, *subscriptionID)
	} else {
		subscription, err = c.subscriptions.GetLatestWithCustomer(ctx, userID)
	}
	if err != nil {
		if errors.Is(err, payerrors.ErrSubscriptionNotFound) {
			return "", payerrors.ErrNoManageableSubscription
		}
		return "", err
	}

	if subscription.UserID != userID || subscription.StripeCustomerID == "" {
		return "", payerrors.ErrNoManageableSubscription
	}

	url, err := c.gateway.CreatePortalSession(ctx, subscription.StripeCustomerID, c.cfg.PortalReturnURL)
	if err != nil {
		c.logger.Error().Err(err).
			Uint("user_id", userID).
			Msg("failed to create portal session")
		return "", err
	}

	return url, nil
}

// resolvePrice validates the community's cached price reference and repairs
// it through the catalog when stale, persisting the repaired identifier
func (c *Checkout) resolvePrice(ctx context.Context, community *entities.Community) (string, error) {
	if community.StripePriceID != "" && c.catalog.Validate(ctx, community.StripePriceID) {
		return community.StripePriceID, nil
	}

	priceID, err := c.catalog.Resolve(ctx, community.Price)
	if err != nil {
		return "", err
	}

	if err := c.communities.UpdateStripePriceID(ctx, community.ID, priceID); err != nil {
		c.logger.Warn().Err(err).
			Uint("community_id", community.ID).
			Str("price_id", priceID).
			Msg("failed to persist repaired price reference")
	}

	return priceID, nil
}

package stripeclient

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/dto"
	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// Gateway wraps the Stripe API surface used at subscription-initiation
// time: product/price management, checkout sessions and the billing portal.
// Webhook verification does not go through here; it happens at the
// delivery boundary against the raw request body.
type Gateway struct {
	api    *client.API
	logger zerolog.Logger
}

func NewGateway(secretKey string, requestTimeout time.Duration, logger zerolog.Logger) *Gateway {
	api := &client.API{}
	api.Init(secretKey, stripe.NewBackends(&http.Client{Timeout: requestTimeout}))

	return &Gateway{
		api:    api,
		logger: logger,
	}
}

// CreatePrice creates a provider-side product plus recurring monthly price
// for the given amount in minor units and returns the price identifier
func (g *Gateway) CreatePrice(ctx context.Context, amount int64) (string, error) {
	product, err := g.api.Products.New(&stripe.ProductParams{
		Params: stripe.Params{Context: ctx},
		Name:   stripe.String(fmt.Sprintf("Community subscription (%d)", amount)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create product: %w", err)
	}

	price, err := g.api.Prices.New(&stripe.PriceParams{
		Params:     stripe.Params{Context: ctx},
		Product:    stripe.String(product.ID),
		UnitAmount: stripe.Int64(amount),
		Currency:   stripe.String(string(stripe.CurrencyUSD)),
		Recurring: &stripe.PriceRecurringParams{
			Interval: stripe.String(string(stripe.PriceRecurringIntervalMonth)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create price: %w", err)
	}

	return price.ID, nil
}

// ValidatePrice reports whether the identifier still resolves to an active
// price on the provider side
func (g *Gateway) ValidatePrice(ctx context.Context, priceID string) bool {
	price, err := g.api.Prices.Get(priceID, &stripe.PriceParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		g.logger.Debug().Err(err).
			Str("price_id", priceID).
			Msg("price failed provider-side validation")
		return false
	}

	return price.Active
}

// CreateCheckoutSession builds a subscription-mode checkout session. When
// split routing is present the charge carries a transfer destination and the
// platform's application fee percentage.
func (g *Gateway) CreateCheckoutSession(ctx context.Context, spec dto.CheckoutSessionSpec) (string, error) {
	metadata := map[string]string{
		"userId":      strconv.FormatUint(uint64(spec.UserID), 10),
		"communityId": strconv.FormatUint(uint64(spec.CommunityID), 10),
	}

	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
		Mode:   stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(spec.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(spec.SuccessURL),
		CancelURL:  stripe.String(spec.CancelURL),
		Metadata:   metadata,
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: metadata,
		},
	}

	if spec.Split != nil {
		params.SubscriptionData.TransferData = &stripe.CheckoutSessionSubscriptionDataTransferDataParams{
			Destination: stripe.String(spec.Split.DestinationAccountID),
		}
		params.SubscriptionData.ApplicationFeePercent = stripe.Float64(float64(spec.Split.PlatformFeePercentage))
	}

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	return session.URL, nil
}

// CreatePortalSession builds a billing portal session for the customer
func (g *Gateway) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	session, err := g.api.BillingPortalSessions.New(&stripe.BillingPortalSessionParams{
		Params:    stripe.Params{Context: ctx},
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create portal session: %w", err)
	}

	return session.URL, nil
}

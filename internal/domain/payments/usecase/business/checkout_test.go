package business

import (
	"context"
	"errors"
	"testing"

	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/entities"
	payerrors "github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/errors"
	"github.com/rs/zerolog"
)

type checkoutFixture struct {
	users         *mockUserRepo
	communities   *mockCommunityRepo
	subscriptions *mockSubscriptionRepo
	gateway       *mockGateway
	checkout      *Checkout
}

func newCheckoutFixture() *checkoutFixture {
	f := &checkoutFixture{
		users:         &mockUserRepo{},
		communities:   &mockCommunityRepo{},
		subscriptions: &mockSubscriptionRepo{},
		gateway:       &mockGateway{},
	}
	catalog := NewPriceCatalog(f.gateway, zerolog.Nop())
	f.checkout = NewCheckout(
		f.users,
		f.communities,
		f.subscriptions,
		catalog,
		f.gateway,
		CheckoutConfig{
			SuccessURL:      "https://app.example/success",
			CancelURL:       "https://app.example/cancel",
			PortalReturnURL: "https://app.example/settings",
		},
		zerolog.Nop(),
	)
	return f
}

func TestCreateCheckoutSession(t *testing.T) {
	ctx := context.Background()

	t.Run("SplitAttachedForActivePayoutAccount", func(t *testing.T) {
		f := newCheckoutFixture()
		f.communities.getByIDFunc = func(ctx context.Context, id uint) (*entities.Community, error) {
			return &entities.Community{
				ID:                    7,
				CreatorID:             3,
				Price:                 1000,
				PlatformFeePercentage: 12,
				StripePriceID:         "price_existing",
				PayoutAccountID:       "acct_123",
				PayoutAccountStatus:   entities.PayoutAccountActive,
			}, nil
		}

		url, err := f.checkout.CreateCheckoutSession(ctx, 42, 7)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if url == "" {
			t.Error("Expected a session url")
		}

		if len(f.gateway.checkoutSessionCalls) != 1 {
			t.Fatalf("Expected 1 session call, got %d", len(f.gateway.checkoutSessionCalls))
		}
		spec := f.gateway.checkoutSessionCalls[0]
		if spec.Split == nil {
			t.Fatal("Expected split routing to be attached")
		}
		if spec.Split.DestinationAccountID != "acct_123" {
			t.Errorf("Expected destination acct_123, got %s", spec.Split.DestinationAccountID)
		}
		if spec.Split.PlatformFeePercentage != 12 {
			t.Errorf("Expected fee percentage 12, got %d", spec.Split.PlatformFeePercentage)
		}
		if spec.PriceID != "price_existing" {
			t.Errorf("Expected cached price reused, got %s", spec.PriceID)
		}
	})

	t.Run("NoSplitWithoutActivePayoutAccount", func(t *testing.T) {
		f := newCheckoutFixture()
		f.communities.getByIDFunc = func(ctx context.Context, id uint) (*entities.Community, error) {
			return &entities.Community{
				ID:                  7,
				CreatorID:           3,
				Price:               1000,
				StripePriceID:       "price_existing",
				PayoutAccountStatus: entities.PayoutAccountPending,
			}, nil
		}

		if _, err := f.checkout.CreateCheckoutSession(ctx, 42, 7); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if f.gateway.checkoutSessionCalls[0].Split != nil {
			t.Error("Expected no split routing for a pending payout account")
		}
	})

	t.Run("StalePriceReferenceRepaired", func(t *testing.T) {
		f := newCheckoutFixture()
		f.communities.getByIDFunc = func(ctx context.Context, id uint) (*entities.Community, error) {
			return &entities.Community{
				ID:            7,
				CreatorID:     3,
				Price:         1000,
				StripePriceID: "price_stale",
			}, nil
		}
		f.gateway.validatePriceFunc = func(ctx context.Context, priceID string) bool {
			return priceID != "price_stale"
		}

		if _, err := f.checkout.CreateCheckoutSession(ctx, 42, 7); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if len(f.gateway.createPriceCalls) != 1 {
			t.Fatalf("Expected a replacement price, got %d create calls", len(f.gateway.createPriceCalls))
		}
		if len(f.communities.priceIDUpdates) != 1 || f.communities.priceIDUpdates[0] != "price_mock" {
			t.Errorf("Expected repaired identifier persisted, got %v", f.communities.priceIDUpdates)
		}
	})

	t.Run("UnknownUser", func(t *testing.T) {
		f := newCheckoutFixture()
		f.users.getByIDFunc = func(ctx context.Context, id uint) (*entities.User, error) {
			return nil, payerrors.ErrUserNotFound
		}

		_, err := f.checkout.CreateCheckoutSession(ctx, 42, 7)
		if !errors.Is(err, payerrors.ErrUserNotFound) {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("UnknownCommunity", func(t *testing.T) {
		f := newCheckoutFixture()

		_, err := f.checkout.CreateCheckoutSession(ctx, 42, 7)
		if !errors.Is(err, payerrors.ErrCommunityNotFound) {
			t.Errorf("Expected ErrCommunityNotFound, got %v", err)
		}
	})
}

func TestCreatePortalSession(t *testing.T) {
	ctx := context.Background()

	t.Run("LatestSubscriptionSelected", func(t *testing.T) {
		f := newCheckoutFixture()
		f.subscriptions.getLatestWithCustomerFunc = func(ctx context.Context, userID uint) (*entities.Subscription, error) {
			return &entities.Subscription{ID: 5, UserID: 42, StripeCustomerID: "cus_abc"}, nil
		}

		url, err := f.checkout.CreatePortalSession(ctx, 42, nil)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if url == "" {
			t.Error("Expected a portal url")
		}
	})

	t.Run("SpecificSubscriptionOwnershipEnforced", func(t *testing.T) {
		f := newCheckoutFixture()
		subID := uint(5)
		f.subscriptions.getByIDFunc = func(ctx context.Context, id uint) (*entities.Subscription, error) {
			return &entities.Subscription{ID: id, UserID: 99, StripeCustomerID: "cus_abc"}, nil
		}

		_, err := f.checkout.CreatePortalSession(ctx, 42, &subID)
		if !errors.Is(err, payerrors.ErrNoManageableSubscription) {
			t.Errorf("Expected ErrNoManageableSubscription, got %v", err)
		}
	})

	t.Run("MissingCustomerReference", func(t *testing.T) {
		f := newCheckoutFixture()
		f.subscriptions.getLatestWithCustomerFunc = func(ctx context.Context, userID uint) (*entities.Subscription, error) {
			return &entities.Subscription{ID: 5, UserID: 42}, nil
		}

		_, err := f.checkout.CreatePortalSession(ctx, 42, nil)
		if !errors.Is(err, payerrors.ErrNoManageableSubscription) {
			t.Errorf("Expected ErrNoManageableSubscription, got %v", err)
		}
	})

	t.Run("NoSubscriptionAtAll", func(t *testing.T) {
		f := newCheckoutFixture()

		_, err := f.checkout.CreatePortalSession(ctx, 42, nil)
		if !errors.Is(err, payerrors.ErrNoManageableSubscription) {
			t.Errorf("Expected ErrNoManageableSubscription, got %v", err)
		}
	})
}

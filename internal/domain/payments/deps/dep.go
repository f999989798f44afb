package deps

import (
	"context"

	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/dto"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/entities"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *entities.Subscription) error
	Update(ctx context.Context, subscription *entities.Subscription) error
	GetByID(ctx context.Context, id uint) (*entities.Subscription, error)
	GetActiveByUserAndCommunity(ctx context.Context, userID, communityID uint) (*entities.Subscription, error)
	GetByStripeSubscriptionID(ctx context.Context, stripeSubscriptionID string) (*entities.Subscription, error)
	GetLatestWithCustomer(ctx context.Context, userID uint) (*entities.Subscription, error)
	CountByStatus(ctx context.Context, status entities.SubscriptionStatus) (int64, error)
}

type PayoutRepository interface {
	Create(ctx context.Context, record *entities.PayoutRecord) error
	UpdateStatus(ctx context.Context, id uint, status entities.PayoutStatus) error
	SumCreatorAmount(ctx context.Context, creatorID uint, communityID *uint, status entities.PayoutStatus) (int64, error)
}

type CommunityRepository interface {
	GetByID(ctx context.Context, id uint) (*entities.Community, error)
	UpdateStripePriceID(ctx context.Context, communityID uint, stripePriceID string) error
	AddMember(ctx context.Context, communityID, userID uint) error
	RemoveMember(ctx context.Context, communityID, userID uint) error
	GetMemberIDs(ctx context.Context, communityID uint) ([]uint, error)
	IsMember(ctx context.Context, communityID, userID uint) (bool, error)
}

type AllyRepository interface {
	Exists(ctx context.Context, userA, userB uint) (bool, error)
	Create(ctx context.Context, userA, userB uint) error
	Delete(ctx context.Context, userA, userB uint) error
	SharedCommunityCount(ctx context.Context, userA, userB uint) (int64, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*entities.User, error)
}

// NotificationSink is the boundary to the notification subsystem. Calls are
// fire-and-forget from the caller's point of view: failures are logged by the
// caller and never propagated into a state transition.
type NotificationSink interface {
	Notify(ctx context.Context, kind string, userID uint, payload dto.NotificationPayload) error
}

// ProviderGateway wraps the payment provider API surface used at
// subscription-initiation time
type ProviderGateway interface {
	CreatePrice(ctx context.Context, amount int64) (string, error)
	ValidatePrice(ctx context.Context, priceID string) bool
	CreateCheckoutSession(ctx context.Context, spec dto.CheckoutSessionSpec) (string, error)
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error)
}

// MembershipSynchronizer keeps the community roster and the ally graph in
// step with subscription transitions
type MembershipSynchronizer interface {
	Join(ctx context.Context, userID, communityID uint) error
	Leave(ctx context.Context, userID, communityID uint) error
}

// PayoutLedger owns append-only payout records and their aggregates
type PayoutLedger interface {
	Record(ctx context.Context, community *entities.Community, subscription *entities.Subscription, split entities.PaymentDetails, meta dto.CheckoutCompleted) (*entities.PayoutRecord, error)
	TotalEarnings(ctx context.Context, creatorID uint, communityID *uint) (int64, error)
	PendingBalance(ctx context.Context, creatorID uint, communityID *uint) (int64, error)
}

// SubscriptionReconciler is the webhook-driven state machine
type SubscriptionReconciler interface {
	HandleCheckoutCompleted(ctx context.Context, event dto.CheckoutCompleted) error
	HandleSubscriptionUpdated(ctx context.Context, event dto.SubscriptionUpdated) error
	HandleSubscriptionDeleted(ctx context.Context, event dto.SubscriptionDeleted) error
	HandlePaymentFailed(ctx context.Context, event dto.PaymentFailed) error
	HandlePaymentSucceeded(ctx context.Context, event dto.PaymentSucceeded) error
}

// CheckoutUseCase is the authenticated initiation surface
type CheckoutUseCase interface {
	CreateCheckoutSession(ctx context.Context, userID, communityID uint) (string, error)
	CreatePortalSession(ctx context.Context, userID uint, subscriptionID *uint) (string, error)
}

// PriceCatalog resolves nominal amounts to valid provider price identifiers
type PriceCatalog interface {
	Resolve(ctx context.Context, amount int64) (string, error)
	Validate(ctx context.Context, priceID string) bool
}

package business

import (
	"context"

	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/dto"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/entities"
	payerrors "github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/errors"
)

// mockSubscriptionRepo is a mock implementation of deps.SubscriptionRepository
type mockSubscriptionRepo struct {
	createFunc                func(ctx context.Context, subscription *entities.Subscription) error
	updateFunc                func(ctx context.Context, subscription *entities.Subscription) error
	getByIDFunc               func(ctx context.Context, id uint) (*entities.Subscription, error)
	getActiveFunc             func(ctx context.Context, userID, communityID uint) (*entities.Subscription, error)
	getByStripeIDFunc         func(ctx context.Context, stripeSubscriptionID string) (*entities.Subscription, error)
	getLatestWithCustomerFunc func(ctx context.Context, userID uint) (*entities.Subscription, error)

	createCalls []*entities.Subscription
	updateCalls []*entities.Subscription
}

func (m *mockSubscriptionRepo) Create(ctx context.Context, subscription *entities.Subscription) error {
	m.createCalls = append(m.createCalls, subscription)
	if m.createFunc != nil {
		return m.createFunc(ctx, subscription)
	}
	return nil
}

func (m *mockSubscriptionRepo) Update(ctx context.Context, subscription *entities.Subscription) error {
	m.updateCalls = append(m.updateCalls, subscription)
	if m.updateFunc != nil {
		return m.updateFunc(ctx, subscription)
	}
	return nil
}

func (m *mockSubscriptionRepo) GetByID(ctx context.Context, id uint) (*entities.Subscription, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, payerrors.ErrSubscriptionNotFound
}

func (m *mockSubscriptionRepo) GetActiveByUserAndCommunity(ctx context.Context, userID, communityID uint) (*entities.Subscription, error) {
	if m.getActiveFunc != nil {
		return m.getActiveFunc(ctx, userID, communityID)
	}
	return nil, payerrors.ErrSubscriptionNotFound
}

func (m *mockSubscriptionRepo) GetByStripeSubscriptionID(ctx context.Context, stripeSubscriptionID string) (*entities.Subscription, error) {
	if m.getByStripeIDFunc != nil {
		return m.getByStripeIDFunc(ctx, stripeSubscriptionID)
	}
	return nil, payerrors.ErrSubscriptionNotFound
}

func (m *mockSubscriptionRepo) GetLatestWithCustomer(ctx context.Context, userID uint) (*entities.Subscription, error) {
	if m.getLatestWithCustomerFunc != nil {
		return m.getLatestWithCustomerFunc(ctx, userID)
	}
	return nil, payerrors.ErrSubscriptionNotFound
}

func (m *mockSubscriptionRepo) CountByStatus(ctx context.Context, status entities.SubscriptionStatus) (int64, error) {
	return 0, nil
}

// mockCommunityRepo is a mock implementation of deps.CommunityRepository
type mockCommunityRepo struct {
	getByIDFunc             func(ctx context.Context, id uint) (*entities.Community, error)
	updateStripePriceIDFunc func(ctx context.Context, communityID uint, stripePriceID string) error
	addMemberFunc           func(ctx context.Context, communityID, userID uint) error
	removeMemberFunc        func(ctx context.Context, communityID, userID uint) error
	getMemberIDsFunc        func(ctx context.Context, communityID uint) ([]uint, error)
	isMemberFunc            func(ctx context.Context, communityID, userID uint) (bool, error)

	addMemberCalls    []memberCall
	removeMemberCalls []memberCall
	priceIDUpdates    []string
}

type memberCall struct {
	communityID uint
	userID      uint
}

func (m *mockCommunityRepo) GetByID(ctx context.Context, id uint) (*entities.Community, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, payerrors.ErrCommunityNotFound
}

func (m *mockCommunityRepo) UpdateStripePriceID(ctx context.Context, communityID uint, stripePriceID string) error {
	m.priceIDUpdates = append(m.priceIDUpdates, stripePriceID)
	if m.updateStripePriceIDFunc != nil {
		return m.updateStripePriceIDFunc(ctx, communityID, stripePriceID)
	}
	return nil
}

func (m *mockCommunityRepo) AddMember(ctx context.Context, communityID, userID uint) error {
	m.addMemberCalls = append(m.addMemberCalls, memberCall{communityID: communityID, userID: userID})
	if m.addMemberFunc != nil {
		return m.addMemberFunc(ctx, communityID, userID)
	}
	return nil
}

func (m *mockCommunityRepo) RemoveMember(ctx context.Context, communityID, userID uint) error {
	m.removeMemberCalls = append(m.removeMemberCalls, memberCall{communityID: communityID, userID: userID})
	if m.removeMemberFunc != nil {
		return m.removeMemberFunc(ctx, communityID, userID)
	}
	return nil
}

func (m *mockCommunityRepo) GetMemberIDs(ctx context.Context, communityID uint) ([]uint, error) {
	if m.getMemberIDsFunc != nil {
		return m.getMemberIDsFunc(ctx, communityID)
	}
	return nil, nil
}

func (m *mockCommunityRepo) IsMember(ctx context.Context, communityID, userID uint) (bool, error) {
	if m.isMemberFunc != nil {
		return m.isMemberFunc(ctx, communityID, userID)
	}
	return false, nil
}

// mockAllyRepo is a mock implementation of deps.AllyRepository
type mockAllyRepo struct {
	existsFunc               func(ctx context.Context, userA, userB uint) (bool, error)
	createFunc               func(ctx context.Context, userA, userB uint) error
	deleteFunc               func(ctx context.Context, userA, userB uint) error
	sharedCommunityCountFunc func(ctx context.Context, userA, userB uint) (int64, error)

	createCalls []allyPair
	deleteCalls []allyPair
}

type allyPair struct {
	userA uint
	userB uint
}

func (m *mockAllyRepo) Exists(ctx context.Context, userA, userB uint) (bool, error) {
	if m.existsFunc != nil {
		return m.existsFunc(ctx, userA, userB)
	}
	return false, nil
}

func (m *mockAllyRepo) Create(ctx context.Context, userA, userB uint) error {
	m.createCalls = append(m.createCalls, allyPair{userA: userA, userB: userB})
	if m.createFunc != nil {
		return m.createFunc(ctx, userA, userB)
	}
	return nil
}

func (m *mockAllyRepo) Delete(ctx context.Context, userA, userB uint) error {
	m.deleteCalls = append(m.deleteCalls, allyPair{userA: userA, userB: userB})
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, userA, userB)
	}
	return nil
}

func (m *mockAllyRepo) SharedCommunityCount(ctx context.Context, userA, userB uint) (int64, error) {
	if m.sharedCommunityCountFunc != nil {
		return m.sharedCommunityCountFunc(ctx, userA, userB)
	}
	return 0, nil
}

// mockPayoutRepo is a mock implementation of deps.PayoutRepository
type mockPayoutRepo struct {
	createFunc func(ctx context.Context, record *entities.PayoutRecord) error
	sumFunc    func(ctx context.Context, creatorID uint, communityID *uint, status entities.PayoutStatus) (int64, error)

	createCalls []*entities.PayoutRecord
}

func (m *mockPayoutRepo) Create(ctx context.Context, record *entities.PayoutRecord) error {
	m.createCalls = append(m.createCalls, record)
	if m.createFunc != nil {
		return m.createFunc(ctx, record)
	}
	return nil
}

func (m *mockPayoutRepo) UpdateStatus(ctx context.Context, id uint, status entities.PayoutStatus) error {
	return nil
}

func (m *mockPayoutRepo) SumCreatorAmount(ctx context.Context, creatorID uint, communityID *uint, status entities.PayoutStatus) (int64, error) {
	if m.sumFunc != nil {
		return m.sumFunc(ctx, creatorID, communityID, status)
	}
	return 0, nil
}

// mockUserRepo is a mock implementation of deps.UserRepository
type mockUserRepo struct {
	getByIDFunc func(ctx context.Context, id uint) (*entities.User, error)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*entities.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &entities.User{ID: id}, nil
}

// mockMembership is a mock implementation of deps.MembershipSynchronizer
type mockMembership struct {
	joinFunc  func(ctx context.Context, userID, communityID uint) error
	leaveFunc func(ctx context.Context, userID, communityID uint) error

	joinCalls  []memberCall
	leaveCalls []memberCall
}

func (m *mockMembership) Join(ctx context.Context, userID, communityID uint) error {
	m.joinCalls = append(m.joinCalls, memberCall{communityID: communityID, userID: userID})
	if m.joinFunc != nil {
		return m.joinFunc(ctx, userID, communityID)
	}
	return nil
}

func (m *mockMembership) Leave(ctx context.Context, userID, communityID uint) error {
	m.leaveCalls = append(m.leaveCalls, memberCall{communityID: communityID, userID: userID})
	if m.leaveFunc != nil {
		return m.leaveFunc(ctx, userID, communityID)
	}
	return nil
}

// mockLedger is a mock implementation of deps.PayoutLedger
type mockLedger struct {
	recordFunc func(ctx context.Context, community *entities.Community, subscription *entities.Subscription, split entities.PaymentDetails, meta dto.CheckoutCompleted) (*entities.PayoutRecord, error)

	recordCalls []entities.PaymentDetails
}

func (m *mockLedger) Record(ctx context.Context, community *entities.Community, subscription *entities.Subscription, split entities.PaymentDetails, meta dto.CheckoutCompleted) (*entities.PayoutRecord, error) {
	m.recordCalls = append(m.recordCalls, split)
	if m.recordFunc != nil {
		return m.recordFunc(ctx, community, subscription, split, meta)
	}
	return &entities.PayoutRecord{}, nil
}

func (m *mockLedger) TotalEarnings(ctx context.Context, creatorID uint, communityID *uint) (int64, error) {
	return 0, nil
}

func (m *mockLedger) PendingBalance(ctx context.Context, creatorID uint, communityID *uint) (int64, error) {
	return 0, nil
}

// mockSink is a mock implementation of deps.NotificationSink. Notifications
// are dispatched asynchronously, so delivered kinds are exposed through a
// buffered channel the test can await.
type mockSink struct {
	notifyFunc func(ctx context.Context, kind string, userID uint, payload dto.NotificationPayload) error

	notified chan string
}

func newMockSink() *mockSink {
	return &mockSink{notified: make(chan string, 8)}
}

func (m *mockSink) Notify(ctx context.Context, kind string, userID uint, payload dto.NotificationPayload) error {
	if m.notified != nil {
		m.notified <- kind
	}
	if m.notifyFunc != nil {
		return m.notifyFunc(ctx, kind, userID, payload)
	}
	return nil
}

// mockGateway is a mock implementation of deps.ProviderGateway
type mockGateway struct {
	createPriceFunc           func(ctx context.Context, amount int64) (string, error)
	validatePriceFunc         func(ctx context.Context, priceID string) bool
	createCheckoutSessionFunc func(ctx context.Context, spec dto.CheckoutSessionSpec) (string, error)
	createPortalSessionFunc   func(ctx context.Context, customerID, returnURL string) (string, error)

	createPriceCalls     []int64
	checkoutSessionCalls []dto.CheckoutSessionSpec
}

func (m *mockGateway) CreatePrice(ctx context.Context, amount int64) (string, error) {
	m.createPriceCalls = append(m.createPriceCalls, amount)
	if m.createPriceFunc != nil {
		return m.createPriceFunc(ctx, amount)
	}
	return "price_mock", nil
}

func (m *mockGateway) ValidatePrice(ctx context.Context, priceID string) bool {
	if m.validatePriceFunc != nil {
		return m.validatePriceFunc(ctx, priceID)
	}
	return true
}

func (m *mockGateway) CreateCheckoutSession(ctx context.Context, spec dto.CheckoutSessionSpec) (string, error) {
	m.checkoutSessionCalls = append(m.checkoutSessionCalls, spec)
	if m.createCheckoutSessionFunc != nil {
		return m.createCheckoutSessionFunc(ctx, spec)
	}
	return "https://checkout.example/session", nil
}

func (m *mockGateway) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	if m.createPortalSessionFunc != nil {
		return m.createPortalSessionFunc(ctx, customerID, returnURL)
	}
	return "https://billing.example/portal", nil
}

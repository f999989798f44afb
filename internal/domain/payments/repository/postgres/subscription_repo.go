package postgres

import (
	"context"
	"errors"

	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/deps"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/entities"
	payerrors "github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/errors"
	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) deps.SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(ctx context.Context, subscription *entities.Subscription) error {
	result := r.db.WithContext(ctx).Create(subscription)
	if result.Error != nil {
		return payerrors.ErrDatabaseOperation
	}
	return nil
}

func (r *SubscriptionRepository) Update(ctx context.Context, subscription *entities.Subscription) error {
	result := r.db.WithContext(ctx).Save(subscription)
	if result.Error != nil {
		return payerrors.ErrDatabaseOperation
	}
	return nil
}

func (r *SubscriptionRepository) GetByID(ctx context.Context, id uint) (*entities.Subscription, error) {
	var subscription entities.Subscription
	result := r.db.WithContext(ctx).First(&subscription, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, payerrors.ErrSubscriptionNotFound
		}
		return nil, payerrors.ErrDatabaseOperation
	}
	return &subscription, nil
}

func (r *SubscriptionRepository) GetActiveByUserAndCommunity(ctx context.Context, userID, communityID uint) (*entities.Subscription, error) {
	var subscription entities.Subscription
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND community_id = ? AND status = ?", userID, communityID, entities.SubscriptionActive).
		First(&subscription)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, payerrors.ErrSubscriptionNotFound
		}
		return nil, payerrors.ErrDatabaseOperation
	}

	return &subscription, nil
}

func (r *SubscriptionRepository) GetByStripeSubscriptionID(ctx context.Context, stripeSubscriptionID string) (*entities.Subscription, error) {
	var subscription entities.Subscription
	result := r.db.WithContext(ctx).
		Where("stripe_subscription_id = ?", stripeSubscriptionID).
		First(&subscription)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, payerrors.ErrSubscriptionNotFound
		}
		return nil, payerrors.ErrDatabaseOperation
	}

	return &subscription, nil
}

func (r *SubscriptionRepository) GetLatestWithCustomer(ctx context.Context, userID uint) (*entities.Subscription, error) {
	var subscription entities.Subscription
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND stripe_customer_id <> ''", userID).
		Order("created_at DESC").
		First(&subscription)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, payerrors.ErrSubscriptionNotFound
		}
		return nil, payerrors.ErrDatabaseOperation
	}

	return &subscription, nil
}

func (r *SubscriptionRepository) CountByStatus(ctx context.Context, status entities.SubscriptionStatus) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&entities.Subscription{}).
		Where("status = ?", status).
		Count(&count)

	if result.Error != nil {
		return 0, payerrors.ErrDatabaseOperation
	}

	return count, nil
}

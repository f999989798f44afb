package postgres

import (
	"context"
	"errors"

	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/deps"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/entities"
	payerrors "github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommunityRepository struct {
	db *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) deps.CommunityRepository {
	return &CommunityRepository{db: db}
}

func (r *CommunityRepository) GetByID(ctx context.Context, id uint) (*entities.Community, error) {
	var community entities.Community
	result := r.db.WithContext(ctx).First(&community, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, payerrors.ErrCommunityNotFound
		}
		return nil, payerrors.ErrDatabaseOperation
	}
	return &community, nil
}

func (r *CommunityRepository) UpdateStripePriceID(ctx context.Context, communityID uint, stripePriceID string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Community{}).
		Where("id = ?", communityID).
		Update("stripe_price_id", stripePriceID)

	if result.Error != nil {
		return payerrors.ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return payerrors.ErrCommunityNotFound
	}

	return nil
}

// AddMember inserts a roster row; duplicate joins are a no-op
func (r *CommunityRepository) AddMember(ctx context.Context, communityID, userID uint) error {
	member := &entities.CommunityMember{
		CommunityID: communityID,
		UserID:      userID,
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(member)

	if result.Error != nil {
		return payerrors.ErrDatabaseOperation
	}

	return nil
}

// RemoveMember deletes the roster row; removing an absent member is a no-op
func (r *CommunityRepository) RemoveMember(ctx context.Context, communityID, userID uint) error {
	result := r.db.WithContext(ctx).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		Delete(&entities.CommunityMember{})

	if result.Error != nil {
		return payerrors.ErrDatabaseOperation
	}

	return nil
}

func (r *CommunityRepository) GetMemberIDs(ctx context.Context, communityID uint) ([]uint, error) {
	var ids []uint
	result := r.db.WithContext(ctx).
		Model(&entities.CommunityMember{}).
		Where("community_id = ?", communityID).
		Pluck("user_id", &ids)

	if result.Error != nil {
		return nil, payerrors.ErrDatabaseOperation
	}

	return ids, nil
}

func (r *CommunityRepository) IsMember(ctx context.Context, communityID, userID uint) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&entities.CommunityMember{}).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		Count(&count)

	if result.Error != nil {
		return false, payerrors.ErrDatabaseOperation
	}

	return count > 0, nil
}

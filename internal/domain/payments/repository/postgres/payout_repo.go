package postgres

import (
	"context"

	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/deps"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/entities"
	payerrors "github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/errors"
	"gorm.io/gorm"
)

type PayoutRepository struct {
	db *gorm.DB
}

func NewPayoutRepository(db *gorm.DB) deps.PayoutRepository {
	return &PayoutRepository{db: db}
}

func (r *PayoutRepository) Create(ctx context.Context, record *entities.PayoutRecord) error {
	result := r.db.WithContext(ctx).Create(record)
	if result.Error != nil {
		return payerrors.ErrDatabaseOperation
	}
	return nil
}

// UpdateStatus moves a record through its settlement lifecycle; payment
// details are never touched
func (r *PayoutRepository) UpdateStatus(ctx context.Context, id uint, status entities.PayoutStatus) error {
	result := r.db.WithContext(ctx).
		Model(&entities.PayoutRecord{}).
		Where("id = ?", id).
		Update("status", status)

	if result.Error != nil {
		return payerrors.ErrDatabaseOperation
	}

	return nil
}

func (r *PayoutRepository) SumCreatorAmount(ctx context.Context, creatorID uint, communityID *uint, status entities.PayoutStatus) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&entities.PayoutRecord{}).
		Where("creator_id = ? AND status = ?", creatorID, status)

	if communityID != nil {
		query = query.Where("community_id = ?", *communityID)
	}

	var total int64
	result := query.Select("COALESCE(SUM(creator_amount), 0)").Scan(&total)
	if result.Error != nil {
		return 0, payerrors.ErrDatabaseOperation
	}

	return total, nil
}

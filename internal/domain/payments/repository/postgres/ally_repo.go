package postgres

import (
	"context"

	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/deps"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/entities"
	payerrors "github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AllyRepository struct {
	db *gorm.DB
}

func NewAllyRepository(db *gorm.DB) deps.AllyRepository {
	return &AllyRepository{db: db}
}

// orderPair normalizes an undirected edge to (low, high)
func orderPair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

func (r *AllyRepository) Exists(ctx context.Context, userA, userB uint) (bool, error) {
	a, b := orderPair(userA, userB)

	var count int64
	result := r.db.WithContext(ctx).
		Model(&entities.AllyRelation{}).
		Where("user_a = ? AND user_b = ?", a, b).
		Count(&count)

	if result.Error != nil {
		return false, payerrors.ErrDatabaseOperation
	}

	return count > 0, nil
}

// Create inserts the edge; the unique index on the normalized pair absorbs
// a concurrent duplicate insert
func (r *AllyRepository) Create(ctx context.Context, userA, userB uint) error {
	a, b := orderPair(userA, userB)

	relation := &entities.AllyRelation{UserA: a, UserB: b}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(relation)

	if result.Error != nil {
		return payerrors.ErrDatabaseOperation
	}

	return nil
}

func (r *AllyRepository) Delete(ctx context.Context, userA, userB uint) error {
	a, b := orderPair(userA, userB)

	result := r.db.WithContext(ctx).
		Where("user_a = ? AND user_b = ?", a, b).
		Delete(&entities.AllyRelation{})

	if result.Error != nil {
		return payerrors.ErrDatabaseOperation
	}

	return nil
}

// SharedCommunityCount counts communities both users currently occupy,
// counting creators as members of their own communities
func (r *AllyRepository) SharedCommunityCount(ctx context.Context, userA, userB uint) (int64, error) {
	const query = `
		SELECT COUNT(*) FROM (
			SELECT community_id FROM community_members WHERE user_id = @a
			UNION
			SELECT id FROM communities WHERE creator_id = @a
		) ca
		JOIN (
			SELECT community_id FROM community_members WHERE user_id = @b
			UNION
			SELECT id FROM communities WHERE creator_id = @b
		) cb ON ca.community_id = cb.community_id`

	var count int64
	result := r.db.WithContext(ctx).Raw(query,
		map[string]interface{}{"a": userA, "b": userB},
	).Scan(&count)

	if result.Error != nil {
		return 0, payerrors.ErrDatabaseOperation
	}

	return count, nil
}

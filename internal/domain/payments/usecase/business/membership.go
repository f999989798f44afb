package business

import (
	"context"
	"fmt"

	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/deps"
	"github.com/rs/zerolog"
)

// Membership keeps the community roster and the ally graph consistent.
// Every join/leave fans out over the current member set; this O(members)
// cost is accepted for correctness and deliberately not batched.
type Membership struct {
	communities deps.CommunityRepository
	allies      deps.AllyRepository
	logger      zerolog.Logger
}

func NewMembership(
	communities deps.CommunityRepository,
	allies deps.AllyRepository,
	logger zerolog.Logger,
) *Membership {
	return &Membership{
		communities: communities,
		allies:      allies,
		logger:      logger,
	}
}

// Join adds the user to the community roster and creates an ally edge to
// every current co-member. Both operations are idempotent: duplicate joins
// are a set no-op and edge creation is guarded by an existence check with a
// uniqueness constraint as the storage-level backstop.
func (m *Membership) Join(ctx context.Context, userID, communityID uint) error {
	peers, err := m.coMembers(ctx, userID, communityID)
	if err != nil {
		return err
	}

	if err := m.communities.AddMember(ctx, communityID, userID); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	for _, peer := range peers {
		exists, err := m.allies.Exists(ctx, userID, peer)
		if err != nil {
			m.logger.Error().Err(err).
				Uint("user_id", userID).
				Uint("peer_id", peer).
				Msg("failed to check ally edge")
			continue
		}
		if exists {
			continue
		}

		if err := m.allies.Create(ctx, userID, peer); err != nil {
			m.logger.Error().Err(err).
				Uint("user_id", userID).
				Uint("peer_id", peer).
				Msg("failed to create ally edge")
		}
	}

	m.logger.Info().
		Uint("user_id", userID).
		Uint("community_id", communityID).
		Int("peers", len(peers)).
		Msg("user joined community")

	return nil
}

// Leave removes the user from the roster and prunes ally edges to former
// co-members, but only where no other shared community remains.
func (m *Membership) Leave(ctx context.Context, userID, communityID uint) error {
	peers, err := m.coMembers(ctx, userID, communityID)
	if err != nil {
		return err
	}

	if err := m.communities.RemoveMember(ctx, communityID, userID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	for _, peer := range peers {
		shared, err := m.allies.SharedCommunityCount(ctx, userID, peer)
		if err != nil {
			m.logger.Error().Err(err).
				Uint("user_id", userID).
				Uint("peer_id", peer).
				Msg("failed to count shared communities")
			continue
		}
		if shared > 0 {
			continue
		}

		if err := m.allies.Delete(ctx, userID, peer); err != nil {
			m.logger.Error().Err(err).
				Uint("user_id", userID).
				Uint("peer_id", peer).
				Msg("failed to delete ally edge")
		}
	}

	m.logger.Info().
		Uint("user_id", userID).
		Uint("community_id", communityID).
		Msg("user left community")

	return nil
}

// coMembers returns every other current member of the community, including
// the creator, who is a member whether or not a roster row exists.
func (m *Membership) coMembers(ctx context.Context, userID, communityID uint) ([]uint, error) {
	community, err := m.communities.GetByID(ctx, communityID)
	if err != nil {
		return nil, err
	}

	memberIDs, err := m.communities.GetMemberIDs(ctx, communityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	peers := make([]uint, 0, len(memberIDs)+1)
	seenCreator := false
	for _, id := range memberIDs {
		if id == userID {
			continue
		}
		if id == community.CreatorID {
			seenCreator = true
		}
		peers = append(peers, id)
	}

	if !seenCreator && community.CreatorID != userID {
		peers = append(peers, community.CreatorID)
	}

	return peers, nil
}

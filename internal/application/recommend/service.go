package recommend

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/loanlink/loanlink/internal/domain/friend"
	"github.com/loanlink/loanlink/internal/domain/listing"
)

// maxResults caps every recommendation response.
const maxResults = 3

// Service selects candidate lend offers for a borrow listing. It is a
// pure filter+sort+limit over the listing store and the friend graph;
// it owns no state.
type Service struct {
	listingRepo listing.Repository
	friends     friend.Graph
	logger      zerolog.Logger
}

// NewService creates a recommendation service.
func NewService(listingRepo listing.Repository, friends friend.Graph, logger zerolog.Logger) *Service {
	return &Service{
		listingRepo: listingRepo,
		friends:     friends,
		logger:      logger.With().Str("service", "recommend").Logger(),
	}
}

// Recommend returns up to three lend offers for the borrow listing:
// owned by a friend of the actor, not by the actor themselves, with a
// deadline no earlier than the borrow's. Results are sorted by
// descending max amount; ties keep store insertion order.
func (s *Service) Recommend(ctx context.Context, borrowID, actorID uuid.UUID) ([]*listing.Lend, error) {
	borrow, err := s.listingRepo.GetBorrow(ctx, borrowID)
	if err != nil {
		return nil, err
	}
	if borrow == nil {
		return nil, listing.ErrNotFound
	}

	lends, err := s.listingRepo.ListLends(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]*listing.Lend, 0, len(lends))
	for _, l := range lends {
		if l.OwnerID == actorID {
			continue
		}
		if l.Deadline.Before(borrow.Deadline) {
			continue
		}
		isFriend, err := s.friends.Contains(ctx, actorID, l.OwnerID)
		if err != nil {
			return nil, err
		}
		if !isFriend {
			continue
		}
		candidates = append(candidates, l)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MaxAmount > candidates[j].MaxAmount
	})
	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}
	return candidates, nil
}

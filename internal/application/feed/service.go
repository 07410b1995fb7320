package feed

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/loanlink/loanlink/internal/domain/feed"
	"github.com/loanlink/loanlink/internal/domain/friend"
)

// Service maintains the social timeline and pushes live feed events.
// Everything here is fire-and-forget: a feed failure never fails the
// operation that triggered it.
type Service struct {
	timelineRepo feed.Repository
	friendRepo   friend.Repository
	hub          feed.Hub
	logger       zerolog.Logger
}

// NewService creates a feed service.
func NewService(timelineRepo feed.Repository, friendRepo friend.Repository, hub feed.Hub, logger zerolog.Logger) *Service {
	return &Service{
		timelineRepo: timelineRepo,
		friendRepo:   friendRepo,
		hub:          hub,
		logger:       logger.With().Str("service", "feed").Logger(),
	}
}

// AnnounceBorrow records a timeline entry for a published borrow and
// notifies the owner's friends over SSE.
func (s *Service) AnnounceBorrow(ctx context.Context, ownerID, borrowID uuid.UUID) {
	item := feed.NewTimelineItem(ownerID, feed.KindBorrow)
	item.BorrowID = &borrowID
	if err := s.timelineRepo.Create(ctx, item); err != nil {
		s.logger.Warn().Err(err).Str("borrowId", borrowID.String()).Msg("failed to write timeline item")
		return
	}
	s.pushToFriends(ctx, ownerID, "borrow-published", map[string]string{
		"ownerId":  ownerID.String(),
		"borrowId": borrowID.String(),
	})
}

// NotifyTransaction pushes a protocol event to one user.
func (s *Service) NotifyTransaction(userID uuid.UUID, event string, transactionID uuid.UUID) {
	payload, err := json.Marshal(map[string]string{
		"transactionId": transactionID.String(),
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to marshal transaction event")
		return
	}
	s.hub.BroadcastToUser(userID.String(), feed.NewSSEMessage(event, payload))
}

// Timeline returns the newest items published by the user's friends.
func (s *Service) Timeline(ctx context.Context, userID uuid.UUID, limit int) ([]*feed.TimelineItem, error) {
	friends, err := s.friendRepo.ListFriends(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(friends) == 0 {
		return []*feed.TimelineItem{}, nil
	}
	if limit <= 0 {
		limit = 50
	}
	return s.timelineRepo.ListForOwners(ctx, friends, limit)
}

func (s *Service) pushToFriends(ctx context.Context, ownerID uuid.UUID, event string, data map[string]string) {
	friends, err := s.friendRepo.ListFriends(ctx, ownerID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to list friends for feed push")
		return
	}
	payload, err := json.Marshal(data)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to marshal feed event")
		return
	}
	msg := feed.NewSSEMessage(event, payload)
	for _, id := range friends {
		s.hub.BroadcastToUser(id.String(), msg)
	}
}

package friend

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	domain "github.com/loanlink/loanlink/internal/domain/friend"
)

// Service manages friend requests and the friendship graph.
type Service struct {
	repo   domain.Repository
	logger zerolog.Logger
}

// NewService creates a friend service.
func NewService(repo domain.Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("service", "friend").Logger(),
	}
}

// Request files a friend request from one user to another.
func (s *Service) Request(ctx context.Context, fromID, toID uuid.UUID) (*domain.Request, error) {
	if fromID == uuid.Nil || toID == uuid.Nil {
		return nil, domain.ErrNotFound
	}
	if fromID == toID {
		return nil, domain.ErrSelfFriend
	}
	already, err := s.repo.Contains(ctx, fromID, toID)
	if err != nil {
		return nil, err
	}
	if already {
		return nil, domain.ErrAlreadyFriends
	}
	req := domain.NewRequest(fromID, toID)
	if err := s.repo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Accept settles a pending request and creates the friendship. Only
// the request's recipient may accept it.
func (s *Service) Accept(ctx context.Context, actorID, requestID uuid.UUID) error {
	req, err := s.pendingRequest(ctx, actorID, requestID)
	if err != nil {
		return err
	}
	ok, err := s.repo.SettleRequest(ctx, requestID, domain.RequestAccepted)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotPending
	}
	return s.repo.AddFriendship(ctx, req.FromID, req.ToID)
}

// Refuse settles a pending request without creating a friendship.
func (s *Service) Refuse(ctx context.Context, actorID, requestID uuid.UUID) error {
	if _, err := s.pendingRequest(ctx, actorID, requestID); err != nil {
		return err
	}
	ok, err := s.repo.SettleRequest(ctx, requestID, domain.RequestRefused)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotPending
	}
	return nil
}

// Remove deletes a friendship in both directions.
func (s *Service) Remove(ctx context.Context, userID, friendID uuid.UUID) error {
	return s.repo.RemoveFriendship(ctx, userID, friendID)
}

// List returns the user's friends.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.ListFriends(ctx, userID)
}

// PendingRequests returns pending requests addressed to the user.
func (s *Service) PendingRequests(ctx context.Context, userID uuid.UUID) ([]*domain.Request, error) {
	return s.repo.ListRequestsTo(ctx, userID, domain.RequestPending)
}

func (s *Service) pendingRequest(ctx context.Context, actorID, requestID uuid.UUID) (*domain.Request, error) {
	req, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	if req.ToID != actorID {
		return nil, domain.ErrNotFound
	}
	if req.Status != domain.RequestPending {
		return nil, domain.ErrNotPending
	}
	return req, nil
}

package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/loanlink/loanlink/internal/domain/friend"
)

type pair struct {
	a, b uuid.UUID
}

func orderedPair(x, y uuid.UUID) pair {
	if x.String() < y.String() {
		return pair{x, y}
	}
	return pair{y, x}
}

// FriendStore implements friend.Repository.
type FriendStore struct {
	mu          sync.Mutex
	requests    map[uuid.UUID]*friend.Request
	friendships map[pair]struct{}
	nextID      int64
}

func NewFriendStore() *FriendStore {
	return &FriendStore{
		requests:    make(map[uuid.UUID]*friend.Request),
		friendships: make(map[pair]struct{}),
	}
}

func (s *FriendStore) Contains(ctx context.Context, userID, candidateID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.friendships[orderedPair(userID, candidateID)]
	return ok, nil
}

func (s *FriendStore) CreateRequest(ctx context.Context, req *friend.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	req.ID = s.nextID
	stored := *req
	s.requests[req.RequestID] = &stored
	return nil
}

func (s *FriendStore) GetRequest(ctx context.Context, requestID uuid.UUID) (*friend.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[requestID]
	if !ok {
		return nil, nil
	}
	copied := *r
	return &copied, nil
}

func (s *FriendStore) ListRequestsTo(ctx context.Context, userID uuid.UUID, status friend.RequestStatus) ([]*friend.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*friend.Request
	for _, r := range s.requests {
		if r.ToID == userID && r.Status == status {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *FriendStore) SettleRequest(ctx context.Context, requestID uuid.UUID, status friend.RequestStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[requestID]
	if !ok || r.Status != friend.RequestPending {
		return false, nil
	}
	now := time.Now().UTC()
	r.Status = status
	r.HandledAt = &now
	return true, nil
}

func (s *FriendStore) AddFriendship(ctx context.Context, userID, friendID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.friendships[orderedPair(userID, friendID)] = struct{}{}
	return nil
}

func (s *FriendStore) RemoveFriendship(ctx context.Context, userID, friendID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.friendships, orderedPair(userID, friendID))
	return nil
}

func (s *FriendStore) ListFriends(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []uuid.UUID
	for p := range s.friendships {
		switch userID {
		case p.a:
			out = append(out, p.b)
		case p.b:
			out = append(out, p.a)
		}
	}
	return out, nil
}

package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/loanlink/loanlink/internal/domain/listing"
)

// ListingStore implements listing.Repository.
type ListingStore struct {
	mu      sync.RWMutex
	borrows []*listing.Borrow
	lends   []*listing.Lend
	nextID  int64
}

func NewListingStore() *ListingStore {
	return &ListingStore{}
}

func (s *ListingStore) CreateBorrow(ctx context.Context, b *listing.Borrow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	b.ID = s.nextID
	stored := *b
	s.borrows = append(s.borrows, &stored)
	return nil
}

func (s *ListingStore) GetBorrow(ctx context.Context, borrowID uuid.UUID) (*listing.Borrow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.borrows {
		if b.BorrowID == borrowID {
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *ListingStore) ListBorrowsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*listing.Borrow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*listing.Borrow
	for _, b := range s.borrows {
		if b.OwnerID == ownerID {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *ListingStore) CreateLend(ctx context.Context, l *listing.Lend) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	l.ID = s.nextID
	stored := *l
	s.lends = append(s.lends, &stored)
	return nil
}

func (s *ListingStore) GetLend(ctx context.Context, lendID uuid.UUID) (*listing.Lend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.lends {
		if l.LendID == lendID {
			copied := *l
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *ListingStore) ListLendsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*listing.Lend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*listing.Lend
	for _, l := range s.lends {
		if l.OwnerID == ownerID {
			copied := *l
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *ListingStore) ListLends(ctx context.Context) ([]*listing.Lend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*listing.Lend, 0, len(s.lends))
	for _, l := range s.lends {
		copied := *l
		out = append(out, &copied)
	}
	return out, nil
}

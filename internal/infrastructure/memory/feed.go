package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/loanlink/loanlink/internal/domain/audit"
	"github.com/loanlink/loanlink/internal/domain/feed"
)

// TimelineStore implements feed.Repository.
type TimelineStore struct {
	mu     sync.Mutex
	items  []*feed.TimelineItem
	nextID int64
}

func NewTimelineStore() *TimelineStore {
	return &TimelineStore{}
}

func (s *TimelineStore) Create(ctx context.Context, item *feed.TimelineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	item.ID = s.nextID
	stored := *item
	s.items = append(s.items, &stored)
	return nil
}

func (s *TimelineStore) ListForOwners(ctx context.Context, ownerIDs []uuid.UUID, limit int) ([]*feed.TimelineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	owners := make(map[uuid.UUID]struct{}, len(ownerIDs))
	for _, id := range ownerIDs {
		owners[id] = struct{}{}
	}
	var out []*feed.TimelineItem
	for i := len(s.items) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if _, ok := owners[s.items[i].OwnerID]; ok {
			copied := *s.items[i]
			out = append(out, &copied)
		}
	}
	return out, nil
}

// AuditStore implements audit.Repository.
type AuditStore struct {
	mu      sync.Mutex
	entries []*audit.Entry
	nextID  int64
}

func NewAuditStore() *AuditStore {
	return &AuditStore{}
}

func (s *AuditStore) Create(ctx context.Context, entry *audit.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	entry.ID = s.nextID
	stored := *entry
	s.entries = append(s.entries, &stored)
	return nil
}

func (s *AuditStore) ListByEntity(ctx context.Context, entityType audit.EntityType, entityID string, limit int) ([]*audit.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*audit.Entry
	for i := len(s.entries) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		e := s.entries[i]
		if e.EntityType == entityType && e.EntityID == entityID {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

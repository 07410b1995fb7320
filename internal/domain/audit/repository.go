package audit

import "context"

// Repository defines persistence for audit entries.
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	ListByEntity(ctx context.Context, entityType EntityType, entityID string, limit int) ([]*Entry, error)
}

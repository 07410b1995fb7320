package feed

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence for timeline items.
type Repository interface {
	Create(ctx context.Context, item *TimelineItem) error

	// ListForOwners returns items published by any of the owners,
	// newest first.
	ListForOwners(ctx context.Context, ownerIDs []uuid.UUID, limit int) ([]*TimelineItem, error)
}

// Hub delivers SSE messages to connected clients.
type Hub interface {
	BroadcastToUser(userID string, message *SSEMessage)
	BroadcastToAll(message *SSEMessage)
}

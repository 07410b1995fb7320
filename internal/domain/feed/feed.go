package feed

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Kind represents the kind of listing a timeline item announces.
type Kind string

const (
	KindBorrow Kind = "Borrow"
	KindLend   Kind = "Lend"
)

var (
	ErrClientNotFound = errors.New("SSE client not found")
	ErrChannelFull    = errors.New("SSE message channel full")
)

// TimelineItem is a fire-and-forget feed entry announcing a published
// listing to the owner's friends.
type TimelineItem struct {
	ID        int64      `json:"id"`
	ItemID    uuid.UUID  `json:"itemId"`
	OwnerID   uuid.UUID  `json:"ownerId"`
	Kind      Kind       `json:"kind"`
	BorrowID  *uuid.UUID `json:"borrowId,omitempty"`
	LendID    *uuid.UUID `json:"lendId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// NewTimelineItem creates a timeline entry.
func NewTimelineItem(ownerID uuid.UUID, kind Kind) *TimelineItem {
	return &TimelineItem{
		ItemID:    uuid.New(),
		OwnerID:   ownerID,
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
	}
}

// SSEClient represents an active SSE connection.
type SSEClient struct {
	ClientID    string
	UserID      *string
	ConnectedAt time.Time
	MessageChan chan *SSEMessage
}

// NewSSEClient creates a new SSE client.
func NewSSEClient(clientID string, userID *string) *SSEClient {
	return &SSEClient{
		ClientID:    clientID,
		UserID:      userID,
		ConnectedAt: time.Now().UTC(),
		MessageChan: make(chan *SSEMessage, 100),
	}
}

// Close closes the client's message channel.
func (c *SSEClient) Close() {
	close(c.MessageChan)
}

// SSEMessage represents a message to be sent via SSE.
type SSEMessage struct {
	ID        string          `json:"id"`
	Event     string          `json:"event"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewSSEMessage creates a new SSE message.
func NewSSEMessage(event string, data json.RawMessage) *SSEMessage {
	return &SSEMessage{
		ID:        uuid.New().String(),
		Event:     event,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

package friend

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// RequestStatus represents the state of a friend request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "Pending"
	RequestAccepted RequestStatus = "Accepted"
	RequestRefused  RequestStatus = "Refused"
)

var (
	ErrNotFound       = errors.New("friend request not found")
	ErrSelfFriend     = errors.New("cannot befriend yourself")
	ErrAlreadyFriends = errors.New("already friends")
	ErrNotPending     = errors.New("friend request already handled")
)

// Request is a pending or handled friend request.
type Request struct {
	ID        int64         `json:"id"`
	RequestID uuid.UUID     `json:"requestId"`
	FromID    uuid.UUID     `json:"fromId"`
	ToID      uuid.UUID     `json:"toId"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	HandledAt *time.Time    `json:"handledAt,omitempty"`
}

// NewRequest creates a pending friend request.
func NewRequest(fromID, toID uuid.UUID) *Request {
	return &Request{
		RequestID: uuid.New(),
		FromID:    fromID,
		ToID:      toID,
		Status:    RequestPending,
		CreatedAt: time.Now().UTC(),
	}
}

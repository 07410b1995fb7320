package friend

import (
	"context"

	"github.com/google/uuid"
)

// Graph is the friendship predicate consumed by the recommendation
// matcher.
type Graph interface {
	Contains(ctx context.Context, userID, candidateID uuid.UUID) (bool, error)
}

// Repository defines persistence for friend requests and friendships.
// Friendship is symmetric. GetRequest returns (nil, nil) when no
// request exists.
type Repository interface {
	Graph

	CreateRequest(ctx context.Context, req *Request) error
	GetRequest(ctx context.Context, requestID uuid.UUID) (*Request, error)
	ListRequestsTo(ctx context.Context, userID uuid.UUID, status RequestStatus) ([]*Request, error)

	// SettleRequest moves a request from Pending to the given status,
	// reporting whether the request was still pending at write time.
	SettleRequest(ctx context.Context, requestID uuid.UUID, status RequestStatus) (bool, error)

	AddFriendship(ctx context.Context, userID, friendID uuid.UUID) error
	RemoveFriendship(ctx context.Context, userID, friendID uuid.UUID) error
	ListFriends(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence for users. Get methods return
// (nil, nil) when no user exists.
type Repository interface {
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Count(ctx context.Context) (int, error)
}

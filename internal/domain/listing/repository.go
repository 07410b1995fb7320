package listing

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence for borrow and lend listings.
//
// GetBorrow and GetLend return (nil, nil) when no listing exists for
// the given id.
type Repository interface {
	CreateBorrow(ctx context.Context, b *Borrow) error
	GetBorrow(ctx context.Context, borrowID uuid.UUID) (*Borrow, error)
	ListBorrowsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Borrow, error)

	CreateLend(ctx context.Context, l *Lend) error
	GetLend(ctx context.Context, lendID uuid.UUID) (*Lend, error)
	ListLendsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Lend, error)

	// ListLends returns all lend listings in insertion order. The
	// recommendation matcher relies on that order for tie-breaking.
	ListLends(ctx context.Context) ([]*Lend, error)
}

package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loanlink/loanlink/internal/domain/feed"
)

// TimelineRepository implements feed.Repository.
type TimelineRepository struct {
	pool *pgxpool.Pool
}

func NewTimelineRepository(pool *pgxpool.Pool) *TimelineRepository {
	return &TimelineRepository{pool: pool}
}

func (r *TimelineRepository) Create(ctx context.Context, item *feed.TimelineItem) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO timeline_items
		(item_id, owner_id, kind, borrow_id, lend_id, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, item.ItemID, item.OwnerID, item.Kind, item.BorrowID, item.LendID, item.CreatedAt)
	return err
}

func (r *TimelineRepository) ListForOwners(ctx context.Context, ownerIDs []uuid.UUID, limit int) ([]*feed.TimelineItem, error) {
	if len(ownerIDs) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, item_id, owner_id, kind, borrow_id, lend_id, created_at
		FROM timeline_items WHERE owner_id = ANY($1)
		ORDER BY id DESC LIMIT $2
	`, ownerIDs, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*feed.TimelineItem
	for rows.Next() {
		item, err := scanTimelineItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanTimelineItem(row pgx.Row) (*feed.TimelineItem, error) {
	var item feed.TimelineItem
	if err := row.Scan(&item.ID, &item.ItemID, &item.OwnerID, &item.Kind, &item.BorrowID, &item.LendID, &item.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

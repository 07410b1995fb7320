package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loanlink/loanlink/internal/domain/friend"
)

// FriendRepository implements friend.Repository. Friendships are
// stored once per pair with user_a < user_b.
type FriendRepository struct {
	pool *pgxpool.Pool
}

func NewFriendRepository(pool *pgxpool.Pool) *FriendRepository {
	return &FriendRepository{pool: pool}
}

func (r *FriendRepository) CreateRequest(ctx context.Context, req *friend.Request) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO friend_requests
		(request_id, from_id, to_id, status, created_at, handled_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, req.RequestID, req.FromID, req.ToID, req.Status, req.CreatedAt, req.HandledAt)
	return err
}

func (r *FriendRepository) GetRequest(ctx context.Context, requestID uuid.UUID) (*friend.Request, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, request_id, from_id, to_id, status, created_at, handled_at
		FROM friend_requests WHERE request_id=$1
	`, requestID)
	return scanFriendRequest(row)
}

func (r *FriendRepository) ListRequestsTo(ctx context.Context, userID uuid.UUID, status friend.RequestStatus) ([]*friend.Request, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, request_id, from_id, to_id, status, created_at, handled_at
		FROM friend_requests WHERE to_id=$1 AND status=$2 ORDER BY id DESC
	`, userID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var requests []*friend.Request
	for rows.Next() {
		req, err := scanFriendRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (r *FriendRepository) SettleRequest(ctx context.Context, requestID uuid.UUID, status friend.RequestStatus) (bool, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE friend_requests SET status=$1, handled_at=$2
		WHERE request_id=$3 AND status=$4
	`, status, time.Now().UTC(), requestID, friend.RequestPending)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (r *FriendRepository) AddFriendship(ctx context.Context, userID, friendID uuid.UUID) error {
	a, b := orderedPair(userID, friendID)
	_, err := r.pool.Exec(ctx, `
		INSERT INTO friendships (user_a, user_b) VALUES ($1,$2)
		ON CONFLICT DO NOTHING
	`, a, b)
	return err
}

func (r *FriendRepository) RemoveFriendship(ctx context.Context, userID, friendID uuid.UUID) error {
	a, b := orderedPair(userID, friendID)
	_, err := r.pool.Exec(ctx, `DELETE FROM friendships WHERE user_a=$1 AND user_b=$2`, a, b)
	return err
}

func (r *FriendRepository) ListFriends(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT CASE WHEN user_a=$1 THEN user_b ELSE user_a END
		FROM friendships WHERE user_a=$1 OR user_b=$1 ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var friends []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		friends = append(friends, id)
	}
	return friends, rows.Err()
}

func (r *FriendRepository) Contains(ctx context.Context, userID, candidateID uuid.UUID) (bool, error) {
	a, b := orderedPair(userID, candidateID)
	row := r.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM friendships WHERE user_a=$1 AND user_b=$2)
	`, a, b)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanFriendRequest(row pgx.Row) (*friend.Request, error) {
	var req friend.Request
	var handledAt *time.Time
	if err := row.Scan(&req.ID, &req.RequestID, &req.FromID, &req.ToID, &req.Status, &req.CreatedAt, &handledAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	req.HandledAt = handledAt
	return &req, nil
}

func orderedPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if a.String() < b.String() {
		return a, b
	}
	return b, a
}

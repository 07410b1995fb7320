package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loanlink/loanlink/internal/domain/loan"
)

// TransactionRepository implements loan.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

func (r *TransactionRepository) Create(ctx context.Context, t *loan.Transaction) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO transactions
		(transaction_id, initiator_id, borrow_id, lend_id, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, t.TransactionID, t.InitiatorID, t.BorrowID, t.LendID, t.Status, t.CreatedAt, t.UpdatedAt)
	return err
}

func (r *TransactionRepository) GetByID(ctx context.Context, transactionID uuid.UUID) (*loan.Transaction, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, transaction_id, initiator_id, borrow_id, lend_id, status, created_at, updated_at
		FROM transactions WHERE transaction_id=$1
	`, transactionID)
	return scanTransaction(row)
}

func (r *TransactionRepository) CompareAndSetStatus(ctx context.Context, transactionID uuid.UUID, expected, next loan.Status) (bool, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE transactions SET status=$1, updated_at=$2 WHERE transaction_id=$3 AND status=$4
	`, next, time.Now().UTC(), transactionID, expected)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func scanTransaction(row pgx.Row) (*loan.Transaction, error) {
	var t loan.Transaction
	if err := row.Scan(&t.ID, &t.TransactionID, &t.InitiatorID, &t.BorrowID, &t.LendID, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

package postgres

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loanlink/loanlink/internal/domain/loan"
)

// MessageRepository implements loan.MessageRepository.
type MessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

const messageColumns = `id, message_id, type, from_id, to_id, transaction_id, borrow_id, lend_id, created_at`

func (r *MessageRepository) Create(ctx context.Context, m *loan.Message) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO messages
		(message_id, type, from_id, to_id, transaction_id, borrow_id, lend_id, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, m.MessageID, m.Type, m.FromID, m.ToID, m.TransactionID, m.BorrowID, m.LendID, m.CreatedAt)
	return err
}

func (r *MessageRepository) GetByID(ctx context.Context, messageID uuid.UUID) (*loan.Message, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+messageColumns+`
		FROM messages WHERE message_id=$1
	`, messageID)
	return scanMessage(row)
}

// CompareAndSetType is the race gate of the negotiation protocol. The
// WHERE clause carries the expected type, so under concurrent
// consumers the database lets exactly one update through.
func (r *MessageRepository) CompareAndSetType(ctx context.Context, messageID uuid.UUID, expected, next loan.MessageType) (bool, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE messages SET type=$1 WHERE message_id=$2 AND type=$3
	`, next, messageID, expected)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (r *MessageRepository) ExistsByTypeAndTransaction(ctx context.Context, t loan.MessageType, transactionID uuid.UUID) (bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM messages WHERE type=$1 AND transaction_id=$2)
	`, t, transactionID)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *MessageRepository) AddToMailbox(ctx context.Context, userID, messageID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO mailbox_entries (user_id, message_id) VALUES ($1,$2)
	`, userID, messageID)
	return err
}

func (r *MessageRepository) ListMailbox(ctx context.Context, userID uuid.UUID, typePrefixes []string) ([]*loan.Message, error) {
	query := `
		SELECT m.id, m.message_id, m.type, m.from_id, m.to_id, m.transaction_id, m.borrow_id, m.lend_id, m.created_at
		FROM mailbox_entries e
		JOIN messages m ON m.message_id = e.message_id
		WHERE e.user_id=$1`
	args := []interface{}{userID}
	if len(typePrefixes) > 0 {
		patterns := make([]string, 0, len(typePrefixes))
		for _, p := range typePrefixes {
			patterns = append(patterns, escapeLike(p)+"%")
		}
		query += ` AND m.type LIKE ANY($2)`
		args = append(args, patterns)
	}
	query += ` ORDER BY e.id DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var messages []*loan.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func scanMessage(row pgx.Row) (*loan.Message, error) {
	var m loan.Message
	if err := row.Scan(&m.ID, &m.MessageID, &m.Type, &m.FromID, &m.ToID, &m.TransactionID, &m.BorrowID, &m.LendID, &m.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

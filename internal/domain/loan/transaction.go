package loan

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the aggregate state of a negotiation.
type Status string

const (
	StatusRequested   Status = "Requested"
	StatusProgressing Status = "Progressing"
	StatusCompleted   Status = "Completed"
)

// Transaction is the aggregate record of one borrower/lender
// negotiation. Created once by Request, never deleted; its status moves
// monotonically Requested -> Progressing -> Completed.
type Transaction struct {
	ID            int64     `json:"id"`
	TransactionID uuid.UUID `json:"transactionId"`
	InitiatorID   uuid.UUID `json:"initiatorId"`
	BorrowID      uuid.UUID `json:"borrowId"`
	LendID        uuid.UUID `json:"lendId"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewTransaction creates a transaction in the Requested state.
func NewTransaction(initiatorID, borrowID, lendID uuid.UUID) *Transaction {
	now := time.Now().UTC()
	return &Transaction{
		TransactionID: uuid.New(),
		InitiatorID:   initiatorID,
		BorrowID:      borrowID,
		LendID:        lendID,
		Status:        StatusRequested,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// CanTransitionTo validates a status transition. No state may be
// skipped or revisited.
func (t *Transaction) CanTransitionTo(target Status) bool {
	transitions := map[Status][]Status{
		StatusRequested:   {StatusProgressing},
		StatusProgressing: {StatusCompleted},
		StatusCompleted:   {},
	}
	for _, s := range transitions[t.Status] {
		if s == target {
			return true
		}
	}
	return false
}

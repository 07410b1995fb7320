package listing

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("listing not found")

// Borrow is a published loan request. Read-only to the negotiation
// protocol; only ownership and deadline matter there.
type Borrow struct {
	ID              int64     `json:"id"`
	BorrowID        uuid.UUID `json:"borrowId"`
	OwnerID         uuid.UUID `json:"ownerId"`
	City            string    `json:"city,omitempty"`
	Project         string    `json:"project,omitempty"`
	MaxAmount       int64     `json:"maxAmount"`
	MaxRate         float64   `json:"maxRate"`
	Reason          string    `json:"reason,omitempty"`
	Deadline        time.Time `json:"deadline"`
	OtherDetail     string    `json:"otherDetail,omitempty"`
	Mortgage        bool      `json:"mortgage"`
	MortgageFixed   bool      `json:"mortgageFixed"`
	MortgageOther   bool      `json:"mortgageOther"`
	MortgageValue   float64   `json:"mortgageValue,omitempty"`
	Guarantee       bool      `json:"guarantee"`
	GuaranteeAmount float64   `json:"guaranteeAmount,omitempty"`
	RiskFactor      float64   `json:"riskFactor"`
	TotalRiskFactor float64   `json:"totalRiskFactor"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Lend is a published loan offer.
type Lend struct {
	ID        int64     `json:"id"`
	LendID    uuid.UUID `json:"lendId"`
	OwnerID   uuid.UUID `json:"ownerId"`
	MaxAmount int64     `json:"maxAmount"`
	Deadline  time.Time `json:"deadline"`
	CreatedAt time.Time `json:"createdAt"`
}

// ValidateBorrow checks a borrow listing before any store write.
func ValidateBorrow(b *Borrow) error {
	if b.OwnerID == uuid.Nil {
		return errors.New("owner is required")
	}
	if b.MaxAmount <= 0 {
		return errors.New("max amount must be positive")
	}
	if b.MaxRate < 0 {
		return errors.New("max rate must not be negative")
	}
	if b.Deadline.IsZero() {
		return errors.New("deadline is required")
	}
	if b.MortgageValue < 0 || b.GuaranteeAmount < 0 {
		return errors.New("mortgage value and guarantee amount must not be negative")
	}
	return nil
}

// ValidateLend checks a lend listing before any store write.
func ValidateLend(l *Lend) error {
	if l.OwnerID == uuid.Nil {
		return errors.New("owner is required")
	}
	if l.MaxAmount <= 0 {
		return errors.New("max amount must be positive")
	}
	if l.Deadline.IsZero() {
		return errors.New("deadline is required")
	}
	return nil
}

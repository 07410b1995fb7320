package loan

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewTransactionStartsRequested(t *testing.T) {
	tx := NewTransaction(uuid.New(), uuid.New(), uuid.New())
	if tx.Status != StatusRequested {
		t.Fatalf("expected Requested, got %s", tx.Status)
	}
	if tx.TransactionID == uuid.Nil {
		t.Fatal("expected non-nil transaction id")
	}
	if tx.CreatedAt.IsZero() {
		t.Fatal("expected created timestamp")
	}
}

func TestTransactionTransitionsAreMonotonic(t *testing.T) {
	cases := []struct {
		from   Status
		to     Status
		expect bool
	}{
		{StatusRequested, StatusProgressing, true},
		{StatusProgressing, StatusCompleted, true},
		{StatusRequested, StatusCompleted, false},
		{StatusProgressing, StatusRequested, false},
		{StatusCompleted, StatusProgressing, false},
		{StatusCompleted, StatusRequested, false},
		{StatusRequested, StatusRequested, false},
		{StatusCompleted, StatusCompleted, false},
	}
	for _, c := range cases {
		tx := &Transaction{Status: c.from}
		if got := tx.CanTransitionTo(c.to); got != c.expect {
			t.Fatalf("%s -> %s: expected %v, got %v", c.from, c.to, c.expect, got)
		}
	}
}

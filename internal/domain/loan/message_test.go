package loan

import (
	"testing"

	"github.com/google/uuid"
)

func TestMessageTypeConsumed(t *testing.T) {
	consumed := TypeRequestReceived.Consumed()
	if consumed != MessageType("BorrowRequest-Received&Accepted") {
		t.Fatalf("unexpected consumed type: %s", consumed)
	}
	if !consumed.IsConsumed() {
		t.Fatal("consumed type should report consumed")
	}
	if TypeRequestReceived.IsConsumed() {
		t.Fatal("fresh type should not report consumed")
	}
}

func TestMessageAddressedTo(t *testing.T) {
	lender := uuid.New()
	borrower := uuid.New()
	m := NewMessage(TypeRequestReceived, &borrower, &lender, uuid.New())
	if !m.AddressedTo(lender) {
		t.Fatal("expected message addressed to lender")
	}
	if m.AddressedTo(borrower) {
		t.Fatal("message must not authorize the sender")
	}

	broadcast := NewMessage(TypeCompleted, nil, nil, uuid.New())
	if broadcast.AddressedTo(lender) {
		t.Fatal("broadcast authorizes nobody")
	}
}

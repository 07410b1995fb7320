package loan

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MessageType is the protocol tag carried by a message. The current
// type of a message is the protocol state it encodes: each negotiation
// step requires an exact type as its precondition and consuming a
// message rewrites its type with the ConsumedSuffix so it can never
// trigger the same transition twice.
type MessageType string

const (
	TypePublishBorrow MessageType = "Publish-Borrow"
	TypePublishLend   MessageType = "Publish-Lend"

	TypeRequestReceived  MessageType = "BorrowRequest-Received"
	TypeRequestSent      MessageType = "BorrowRequest-Sent"
	TypeRequestAccepted  MessageType = "BorrowRequest-Accepted"
	TypeContractReceived MessageType = "BorrowContract-Received"
	TypeContractSent     MessageType = "BorrowContract-Sent"
	TypeContractAccepted MessageType = "BorrowContract-Accepted"
	TypeCompleted        MessageType = "Borrow-Completed"
)

// ConsumedSuffix marks a message type as historical.
const ConsumedSuffix = "&Accepted"

// Consumed returns the historical form of the type.
func (t MessageType) Consumed() MessageType {
	return t + MessageType(ConsumedSuffix)
}

// IsConsumed reports whether the type has already been consumed.
func (t MessageType) IsConsumed() bool {
	return strings.HasSuffix(string(t), ConsumedSuffix)
}

// Message is a typed, directed record. It carries protocol state in its
// Type and, for actionable messages, authorizes its recipient to drive
// the next negotiation step.
//
// FromID is nil for mailbox notes the system writes to the acting
// user's own mailbox. ToID is nil only on the terminal Borrow-Completed
// broadcast, which is a single record delivered to both parties'
// mailboxes.
type Message struct {
	ID            int64       `json:"id"`
	MessageID     uuid.UUID   `json:"messageId"`
	Type          MessageType `json:"type"`
	FromID        *uuid.UUID  `json:"fromId,omitempty"`
	ToID          *uuid.UUID  `json:"toId,omitempty"`
	TransactionID *uuid.UUID  `json:"transactionId,omitempty"`
	BorrowID      *uuid.UUID  `json:"borrowId,omitempty"`
	LendID        *uuid.UUID  `json:"lendId,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// NewMessage creates a protocol message for a transaction.
func NewMessage(t MessageType, from, to *uuid.UUID, transactionID uuid.UUID) *Message {
	return &Message{
		MessageID:     uuid.New(),
		Type:          t,
		FromID:        from,
		ToID:          to,
		TransactionID: &transactionID,
		CreatedAt:     time.Now().UTC(),
	}
}

// NewPublishMessage creates the mailbox note announcing a freshly
// published listing to its owner.
func NewPublishMessage(t MessageType, to uuid.UUID, borrowID, lendID *uuid.UUID) *Message {
	return &Message{
		MessageID: uuid.New(),
		Type:      t,
		ToID:      &to,
		BorrowID:  borrowID,
		LendID:    lendID,
		CreatedAt: time.Now().UTC(),
	}
}

// AddressedTo reports whether the message authorizes the given user to
// act on it.
func (m *Message) AddressedTo(userID uuid.UUID) bool {
	return m.ToID != nil && *m.ToID == userID
}

package loan

import (
	"context"

	"github.com/google/uuid"
)

// MessageRepository defines persistence for protocol messages and
// mailbox delivery. GetByID returns (nil, nil) when no message exists.
type MessageRepository interface {
	Create(ctx context.Context, m *Message) error
	GetByID(ctx context.Context, messageID uuid.UUID) (*Message, error)

	// CompareAndSetType updates the message type only if the stored
	// type equals expected at write time. It reports whether the
	// update was applied. This is the protocol's single race gate:
	// under concurrent consumers exactly one caller may win.
	CompareAndSetType(ctx context.Context, messageID uuid.UUID, expected, next MessageType) (bool, error)

	// ExistsByTypeAndTransaction reports whether any message of the
	// given type exists for the transaction.
	ExistsByTypeAndTransaction(ctx context.Context, t MessageType, transactionID uuid.UUID) (bool, error)

	// AddToMailbox associates a message with a user's mailbox. One
	// message may appear in several mailboxes.
	AddToMailbox(ctx context.Context, userID, messageID uuid.UUID) error

	// ListMailbox returns the user's mailbox newest first, keeping
	// only messages whose type starts with one of the prefixes. An
	// empty prefix list keeps everything.
	ListMailbox(ctx context.Context, userID uuid.UUID, typePrefixes []string) ([]*Message, error)
}

// TransactionRepository defines persistence for transactions.
// GetByID returns (nil, nil) when no transaction exists.
type TransactionRepository interface {
	Create(ctx context.Context, t *Transaction) error
	GetByID(ctx context.Context, transactionID uuid.UUID) (*Transaction, error)

	// CompareAndSetStatus updates the status only if the stored status
	// equals expected at write time, reporting whether the update was
	// applied.
	CompareAndSetStatus(ctx context.Context, transactionID uuid.UUID, expected, next Status) (bool, error)
}

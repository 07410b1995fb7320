package loan

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appAudit "github.com/loanlink/loanlink/internal/application/audit"
	"github.com/loanlink/loanlink/internal/domain/listing"
	domainLoan "github.com/loanlink/loanlink/internal/domain/loan"
	"github.com/loanlink/loanlink/internal/infrastructure/memory"
)

type fixture struct {
	svc      *Service
	messages *memory.MessageStore
	txs      *memory.TransactionStore
	listings *memory.ListingStore

	borrower uuid.UUID
	lender   uuid.UUID
	borrowID uuid.UUID
	lendID   uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		messages: memory.NewMessageStore(),
		txs:      memory.NewTransactionStore(),
		listings: memory.NewListingStore(),
		borrower: uuid.New(),
		lender:   uuid.New(),
	}
	auditSvc := appAudit.NewService(memory.NewAuditStore(), zerolog.Nop(), nil)
	f.svc = NewService(f.messages, f.txs, f.listings, auditSvc, zerolog.Nop())

	ctx := context.Background()
	borrow := &listing.Borrow{
		BorrowID:  uuid.New(),
		OwnerID:   f.borrower,
		MaxAmount: 50000,
		Deadline:  time.Now().AddDate(0, 6, 0),
	}
	require.NoError(t, f.listings.CreateBorrow(ctx, borrow))
	lend := &listing.Lend{
		LendID:    uuid.New(),
		OwnerID:   f.lender,
		MaxAmount: 80000,
		Deadline:  time.Now().AddDate(1, 0, 0),
	}
	require.NoError(t, f.listings.CreateLend(ctx, lend))
	f.borrowID = borrow.BorrowID
	f.lendID = lend.LendID
	return f
}

// mailboxMessage finds the newest message of the given type in a
// user's mailbox.
func (f *fixture) mailboxMessage(t *testing.T, userID uuid.UUID, mt domainLoan.MessageType) *domainLoan.Message {
	t.Helper()
	msgs, err := f.messages.ListMailbox(context.Background(), userID, nil)
	require.NoError(t, err)
	for _, m := range msgs {
		if m.Type == mt {
			return m
		}
	}
	t.Fatalf("no %s message in mailbox of %s", mt, userID)
	return nil
}

func (f *fixture) mailboxSize(t *testing.T, userID uuid.UUID) int {
	t.Helper()
	msgs, err := f.messages.ListMailbox(context.Background(), userID, nil)
	require.NoError(t, err)
	return len(msgs)
}

func TestRequestCreatesTransactionAndMessagePair(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	txID, err := f.svc.Request(ctx, f.borrower, f.borrowID, f.lendID)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, txID)

	tx, err := f.txs.GetByID(ctx, txID)
	require.NoError(t, err)
	require.NotNil(t, tx)
	assert.Equal(t, domainLoan.StatusRequested, tx.Status)
	assert.Equal(t, f.borrower, tx.InitiatorID)

	received := f.mailboxMessage(t, f.lender, domainLoan.TypeRequestReceived)
	require.NotNil(t, received.FromID)
	assert.Equal(t, f.borrower, *received.FromID)
	require.NotNil(t, received.TransactionID)
	assert.Equal(t, txID, *received.TransactionID)

	sent := f.mailboxMessage(t, f.borrower, domainLoan.TypeRequestSent)
	assert.Nil(t, sent.FromID, "own-mailbox note has implicit author")

	assert.Equal(t, 1, f.mailboxSize(t, f.lender))
	assert.Equal(t, 1, f.mailboxSize(t, f.borrower))
}

func TestRequestRejectsSelfDealing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ownLend := &listing.Lend{
		LendID:    uuid.New(),
		OwnerID:   f.borrower,
		MaxAmount: 1000,
		Deadline:  time.Now().AddDate(1, 0, 0),
	}
	require.NoError(t, f.listings.CreateLend(ctx, ownLend))

	_, err := f.svc.Request(ctx, f.borrower, f.borrowID, ownLend.LendID)
	require.ErrorIs(t, err, domainLoan.ErrSelfRequest)

	assert.Equal(t, 0, f.mailboxSize(t, f.borrower), "failed request leaves no records")
}

func TestRequestValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("missing ids", func(t *testing.T) {
		_, err := f.svc.Request(ctx, f.borrower, uuid.Nil, f.lendID)
		assert.ErrorIs(t, err, domainLoan.ErrInvalidInput)
	})

	t.Run("unknown borrow", func(t *testing.T) {
		_, err := f.svc.Request(ctx, f.borrower, uuid.New(), f.lendID)
		assert.ErrorIs(t, err, domainLoan.ErrNotFound)
	})

	t.Run("unknown lend", func(t *testing.T) {
		_, err := f.svc.Request(ctx, f.borrower, f.borrowID, uuid.New())
		assert.ErrorIs(t, err, domainLoan.ErrNotFound)
	})

	t.Run("actor does not own the borrow", func(t *testing.T) {
		_, err := f.svc.Request(ctx, uuid.New(), f.borrowID, f.lendID)
		assert.ErrorIs(t, err, domainLoan.ErrUnauthorized)
	})
}

func TestAcceptRequestConsumesMessageOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	txID, err := f.svc.Request(ctx, f.borrower, f.borrowID, f.lendID)
	require.NoError(t, err)
	received := f.mailboxMessage(t, f.lender, domainLoan.TypeRequestReceived)

	_, err = f.svc.AcceptRequest(ctx, f.lender, received.MessageID)
	require.NoError(t, err)

	tx, err := f.txs.GetByID(ctx, txID)
	require.NoError(t, err)
	assert.Equal(t, domainLoan.StatusProgressing, tx.Status)

	consumed, err := f.messages.GetByID(ctx, received.MessageID)
	require.NoError(t, err)
	assert.Equal(t, domainLoan.TypeRequestReceived.Consumed(), consumed.Type)

	accepted := f.mailboxMessage(t, f.borrower, domainLoan.TypeRequestAccepted)
	require.NotNil(t, accepted.FromID)
	assert.Equal(t, f.lender, *accepted.FromID)

	// Replaying the consumed message fails and changes nothing.
	_, err = f.svc.AcceptRequest(ctx, f.lender, received.MessageID)
	require.ErrorIs(t, err, domainLoan.ErrInvalidState)

	tx, err = f.txs.GetByID(ctx, txID)
	require.NoError(t, err)
	assert.Equal(t, domainLoan.StatusProgressing, tx.Status)
	assert.Equal(t, 2, f.mailboxSize(t, f.borrower))
}

func TestAcceptRequestRejectsWrongRecipient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Request(ctx, f.borrower, f.borrowID, f.lendID)
	require.NoError(t, err)
	received := f.mailboxMessage(t, f.lender, domainLoan.TypeRequestReceived)

	_, err = f.svc.AcceptRequest(ctx, f.borrower, received.MessageID)
	require.ErrorIs(t, err, domainLoan.ErrUnauthorized)

	_, err = f.svc.AcceptRequest(ctx, uuid.New(), received.MessageID)
	require.ErrorIs(t, err, domainLoan.ErrUnauthorized)

	msg, err := f.messages.GetByID(ctx, received.MessageID)
	require.NoError(t, err)
	assert.Equal(t, domainLoan.TypeRequestReceived, msg.Type, "message stays unconsumed")
}

func TestAcceptRequestWrongMessageType(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Request(ctx, f.borrower, f.borrowID, f.lendID)
	require.NoError(t, err)
	sent := f.mailboxMessage(t, f.borrower, domainLoan.TypeRequestSent)

	// The borrower presents their own copy, which has the wrong type.
	_, err = f.svc.AcceptRequest(ctx, f.borrower, sent.MessageID)
	require.ErrorIs(t, err, domainLoan.ErrInvalidState)

	_, err = f.svc.AcceptRequest(ctx, f.lender, uuid.New())
	require.ErrorIs(t, err, domainLoan.ErrNotFound)
}

func TestSendContractDuplicateRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Request(ctx, f.borrower, f.borrowID, f.lendID)
	require.NoError(t, err)
	received := f.mailboxMessage(t, f.lender, domainLoan.TypeRequestReceived)
	_, err = f.svc.AcceptRequest(ctx, f.lender, received.MessageID)
	require.NoError(t, err)

	accepted := f.mailboxMessage(t, f.borrower, domainLoan.TypeRequestAccepted)
	_, err = f.svc.SendContract(ctx, f.borrower, accepted.MessageID)
	require.NoError(t, err)

	_, err = f.svc.SendContract(ctx, f.borrower, accepted.MessageID)
	require.ErrorIs(t, err, domainLoan.ErrDuplicateSubmission)
}

func TestFullHappyPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	txID, err := f.svc.Request(ctx, f.borrower, f.borrowID, f.lendID)
	require.NoError(t, err)

	received := f.mailboxMessage(t, f.lender, domainLoan.TypeRequestReceived)
	_, err = f.svc.AcceptRequest(ctx, f.lender, received.MessageID)
	require.NoError(t, err)

	accepted := f.mailboxMessage(t, f.borrower, domainLoan.TypeRequestAccepted)
	_, err = f.svc.SendContract(ctx, f.borrower, accepted.MessageID)
	require.NoError(t, err)

	contract := f.mailboxMessage(t, f.lender, domainLoan.TypeContractReceived)
	_, err = f.svc.AcceptContract(ctx, f.lender, contract.MessageID)
	require.NoError(t, err)

	tx, err := f.txs.GetByID(ctx, txID)
	require.NoError(t, err)
	assert.Equal(t, domainLoan.StatusCompleted, tx.Status)

	// One shared completion broadcast, visible from both mailboxes.
	borrowerDone := f.mailboxMessage(t, f.borrower, domainLoan.TypeCompleted)
	lenderDone := f.mailboxMessage(t, f.lender, domainLoan.TypeCompleted)
	assert.Equal(t, borrowerDone.MessageID, lenderDone.MessageID)
	assert.Nil(t, borrowerDone.ToID)

	consumedContract, err := f.messages.GetByID(ctx, contract.MessageID)
	require.NoError(t, err)
	assert.Equal(t, domainLoan.TypeContractReceived.Consumed(), consumedContract.Type)
}

func TestAcceptContractReplayRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	txID, err := f.svc.Request(ctx, f.borrower, f.borrowID, f.lendID)
	require.NoError(t, err)
	received := f.mailboxMessage(t, f.lender, domainLoan.TypeRequestReceived)
	_, err = f.svc.AcceptRequest(ctx, f.lender, received.MessageID)
	require.NoError(t, err)
	accepted := f.mailboxMessage(t, f.borrower, domainLoan.TypeRequestAccepted)
	_, err = f.svc.SendContract(ctx, f.borrower, accepted.MessageID)
	require.NoError(t, err)
	contract := f.mailboxMessage(t, f.lender, domainLoan.TypeContractReceived)
	_, err = f.svc.AcceptContract(ctx, f.lender, contract.MessageID)
	require.NoError(t, err)

	before := f.mailboxSize(t, f.borrower)
	_, err = f.svc.AcceptContract(ctx, f.lender, contract.MessageID)
	require.ErrorIs(t, err, domainLoan.ErrInvalidState)
	assert.Equal(t, before, f.mailboxSize(t, f.borrower))

	tx, err := f.txs.GetByID(ctx, txID)
	require.NoError(t, err)
	assert.Equal(t, domainLoan.StatusCompleted, tx.Status)
}

func TestConcurrencyConflictMapsToInvalidState(t *testing.T) {
	assert.ErrorIs(t, domainLoan.ErrConcurrencyConflict, domainLoan.ErrInvalidState)
}

func TestRelatedMessagesFiltersMailbox(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Request(ctx, f.borrower, f.borrowID, f.lendID)
	require.NoError(t, err)

	// An unrelated message type never shows up in the business mailbox.
	other := domainLoan.NewMessage("FriendRequest-Received", nil, &f.borrower, uuid.New())
	require.NoError(t, f.messages.Create(ctx, other))
	require.NoError(t, f.messages.AddToMailbox(ctx, f.borrower, other.MessageID))

	msgs, err := f.svc.RelatedMessages(ctx, f.borrower)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, domainLoan.TypeRequestSent, msgs[0].Type)
}

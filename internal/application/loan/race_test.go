package loan

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appAudit "github.com/loanlink/loanlink/internal/application/audit"
	domainLoan "github.com/loanlink/loanlink/internal/domain/loan"
	"github.com/loanlink/loanlink/internal/domain/loan/mocks"
	"github.com/loanlink/loanlink/internal/infrastructure/memory"
)

// These tests pin the lost-race paths the in-memory fixture cannot
// reach deterministically: the conditional writes report no match even
// though the earlier read passed validation.

func raceService(msgRepo *mocks.MockMessageRepository, txRepo *mocks.MockTransactionRepository) *Service {
	auditSvc := appAudit.NewService(memory.NewAuditStore(), zerolog.Nop(), nil)
	return NewService(msgRepo, txRepo, memory.NewListingStore(), auditSvc, zerolog.Nop())
}

func TestAcceptRequestLostConsumeRace(t *testing.T) {
	msgRepo := new(mocks.MockMessageRepository)
	txRepo := new(mocks.MockTransactionRepository)
	svc := raceService(msgRepo, txRepo)

	lender := uuid.New()
	borrower := uuid.New()
	txID := uuid.New()
	msg := domainLoan.NewMessage(domainLoan.TypeRequestReceived, &borrower, &lender, txID)

	msgRepo.On("GetByID", mock.Anything, msg.MessageID).Return(msg, nil)
	msgRepo.On("CompareAndSetType", mock.Anything, msg.MessageID, domainLoan.TypeRequestReceived, domainLoan.TypeRequestReceived.Consumed()).
		Return(false, nil)

	_, err := svc.AcceptRequest(context.Background(), lender, msg.MessageID)
	require.ErrorIs(t, err, domainLoan.ErrConcurrencyConflict)
	assert.ErrorIs(t, err, domainLoan.ErrInvalidState)

	// No status update and no sibling messages after a lost race.
	txRepo.AssertNotCalled(t, "CompareAndSetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	msgRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAcceptContractStatusConflictAfterConsume(t *testing.T) {
	msgRepo := new(mocks.MockMessageRepository)
	txRepo := new(mocks.MockTransactionRepository)
	svc := raceService(msgRepo, txRepo)

	lender := uuid.New()
	borrower := uuid.New()
	txID := uuid.New()
	msg := domainLoan.NewMessage(domainLoan.TypeContractReceived, &borrower, &lender, txID)

	msgRepo.On("GetByID", mock.Anything, msg.MessageID).Return(msg, nil)
	msgRepo.On("CompareAndSetType", mock.Anything, msg.MessageID, domainLoan.TypeContractReceived, domainLoan.TypeContractReceived.Consumed()).
		Return(true, nil)
	txRepo.On("CompareAndSetStatus", mock.Anything, txID, domainLoan.StatusProgressing, domainLoan.StatusCompleted).
		Return(false, nil)

	_, err := svc.AcceptContract(context.Background(), lender, msg.MessageID)
	require.ErrorIs(t, err, domainLoan.ErrConcurrencyConflict)

	msgRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

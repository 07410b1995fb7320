package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/loanlink/loanlink/internal/domain/loan"
)

// MockMessageRepository is a mock implementation of loan.MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *loan.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepository) GetByID(ctx context.Context, messageID uuid.UUID) (*loan.Message, error) {
	args := m.Called(ctx, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loan.Message), args.Error(1)
}

func (m *MockMessageRepository) CompareAndSetType(ctx context.Context, messageID uuid.UUID, expected, next loan.MessageType) (bool, error) {
	args := m.Called(ctx, messageID, expected, next)
	return args.Bool(0), args.Error(1)
}

func (m *MockMessageRepository) ExistsByTypeAndTransaction(ctx context.Context, t loan.MessageType, transactionID uuid.UUID) (bool, error) {
	args := m.Called(ctx, t, transactionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMessageRepository) AddToMailbox(ctx context.Context, userID, messageID uuid.UUID) error {
	args := m.Called(ctx, userID, messageID)
	return args.Error(0)
}

func (m *MockMessageRepository) ListMailbox(ctx context.Context, userID uuid.UUID, typePrefixes []string) ([]*loan.Message, error) {
	args := m.Called(ctx, userID, typePrefixes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*loan.Message), args.Error(1)
}

// MockTransactionRepository is a mock implementation of loan.TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, t *loan.Transaction) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, transactionID uuid.UUID) (*loan.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loan.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) CompareAndSetStatus(ctx context.Context, transactionID uuid.UUID, expected, next loan.Status) (bool, error) {
	args := m.Called(ctx, transactionID, expected, next)
	return args.Bool(0), args.Error(1)
}

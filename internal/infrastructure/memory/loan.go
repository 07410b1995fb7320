// Package memory provides mutex-guarded in-memory implementations of
// the domain repositories. They are the reference implementation for
// the store contracts (notably compare-and-set atomicity) and back the
// test suite; the postgres package provides the durable equivalents.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/loanlink/loanlink/internal/domain/loan"
)

// MessageStore implements loan.MessageRepository.
type MessageStore struct {
	mu        sync.Mutex
	messages  map[uuid.UUID]*loan.Message
	mailboxes map[uuid.UUID][]uuid.UUID
	nextID    int64
}

func NewMessageStore() *MessageStore {
	return &MessageStore{
		messages:  make(map[uuid.UUID]*loan.Message),
		mailboxes: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (s *MessageStore) Create(ctx context.Context, m *loan.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	m.ID = s.nextID
	stored := *m
	s.messages[m.MessageID] = &stored
	return nil
}

func (s *MessageStore) GetByID(ctx context.Context, messageID uuid.UUID) (*loan.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.messages[messageID]
	if !ok {
		return nil, nil
	}
	copied := *m
	return &copied, nil
}

// CompareAndSetType holds the store lock across compare and set, so
// under concurrent consumers exactly one caller observes a match.
func (s *MessageStore) CompareAndSetType(ctx context.Context, messageID uuid.UUID, expected, next loan.MessageType) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.messages[messageID]
	if !ok || m.Type != expected {
		return false, nil
	}
	m.Type = next
	return true, nil
}

func (s *MessageStore) ExistsByTypeAndTransaction(ctx context.Context, t loan.MessageType, transactionID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.messages {
		if m.Type == t && m.TransactionID != nil && *m.TransactionID == transactionID {
			return true, nil
		}
	}
	return false, nil
}

func (s *MessageStore) AddToMailbox(ctx context.Context, userID, messageID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mailboxes[userID] = append(s.mailboxes[userID], messageID)
	return nil
}

func (s *MessageStore) ListMailbox(ctx context.Context, userID uuid.UUID, typePrefixes []string) ([]*loan.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.mailboxes[userID]
	out := make([]*loan.Message, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		m, ok := s.messages[ids[i]]
		if !ok || !matchesPrefix(m.Type, typePrefixes) {
			continue
		}
		copied := *m
		out = append(out, &copied)
	}
	return out, nil
}

func matchesPrefix(t loan.MessageType, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, p := range prefixes {
		if strings.HasPrefix(string(t), p) {
			return true
		}
	}
	return false
}

// TransactionStore implements loan.TransactionRepository.
type TransactionStore struct {
	mu           sync.Mutex
	transactions map[uuid.UUID]*loan.Transaction
	nextID       int64
}

func NewTransactionStore() *TransactionStore {
	return &TransactionStore{transactions: make(map[uuid.UUID]*loan.Transaction)}
}

func (s *TransactionStore) Create(ctx context.Context, t *loan.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	t.ID = s.nextID
	stored := *t
	s.transactions[t.TransactionID] = &stored
	return nil
}

func (s *TransactionStore) GetByID(ctx context.Context, transactionID uuid.UUID) (*loan.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[transactionID]
	if !ok {
		return nil, nil
	}
	copied := *t
	return &copied, nil
}

func (s *TransactionStore) CompareAndSetStatus(ctx context.Context, transactionID uuid.UUID, expected, next loan.Status) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[transactionID]
	if !ok || t.Status != expected {
		return false, nil
	}
	t.Status = next
	return true, nil
}

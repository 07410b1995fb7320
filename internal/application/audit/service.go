package audit

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/loanlink/loanlink/internal/domain/audit"
)

// Service records audit entries.
type Service struct {
	repo    audit.Repository
	logger  zerolog.Logger
	signKey []byte
}

// NewService creates an audit service. signKey may be empty, in which
// case entries are stored unsigned.
func NewService(repo audit.Repository, logger zerolog.Logger, signKey []byte) *Service {
	return &Service{
		repo:    repo,
		logger:  logger.With().Str("service", "audit").Logger(),
		signKey: signKey,
	}
}

// Log records an entry asynchronously. Failures are logged, never
// surfaced to the triggering operation.
func (s *Service) Log(ctx context.Context, entry *audit.Entry) {
	go func() {
		if err := s.LogSync(context.Background(), entry); err != nil {
			s.logger.Error().Err(err).
				Str("entityType", string(entry.EntityType)).
				Str("entityId", entry.EntityID).
				Str("action", string(entry.Action)).
				Msg("failed to create audit entry")
		}
	}()
}

// LogSync signs and stores an entry.
func (s *Service) LogSync(ctx context.Context, entry *audit.Entry) error {
	if len(s.signKey) > 0 {
		sig, err := audit.SignEntry(entry, s.signKey)
		if err != nil {
			return fmt.Errorf("failed to sign audit entry: %w", err)
		}
		entry.Signature = sig
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to save audit entry: %w", err)
	}
	s.logger.Debug().
		Str("entryId", entry.EntryID.String()).
		Str("entityType", string(entry.EntityType)).
		Str("entityId", entry.EntityID).
		Str("action", string(entry.Action)).
		Str("actor", entry.Actor).
		Msg("audit entry created")
	return nil
}

// ListByEntity returns the newest entries for an entity.
func (s *Service) ListByEntity(ctx context.Context, entityType audit.EntityType, entityID string, limit int) ([]*audit.Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListByEntity(ctx, entityType, entityID, limit)
}

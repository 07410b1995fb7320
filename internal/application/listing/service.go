package listing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appFeed "github.com/loanlink/loanlink/internal/application/feed"
	domain "github.com/loanlink/loanlink/internal/domain/listing"
	domainLoan "github.com/loanlink/loanlink/internal/domain/loan"
)

// Service publishes and reads borrow and lend listings. Publishing
// also drops a mailbox note for the owner and, for borrows, pushes a
// timeline entry to the owner's friends.
type Service struct {
	listingRepo domain.Repository
	messageRepo domainLoan.MessageRepository
	feedSvc     *appFeed.Service
	riskExpr    string
	logger      zerolog.Logger
}

// NewService creates a listing service.
func NewService(
	listingRepo domain.Repository,
	messageRepo domainLoan.MessageRepository,
	feedSvc *appFeed.Service,
	riskExpr string,
	logger zerolog.Logger,
) *Service {
	if riskExpr == "" {
		riskExpr = DefaultRiskExpression
	}
	return &Service{
		listingRepo: listingRepo,
		messageRepo: messageRepo,
		feedSvc:     feedSvc,
		riskExpr:    riskExpr,
		logger:      logger.With().Str("service", "listing").Logger(),
	}
}

// PublishBorrowInput defines borrow listing creation input.
type PublishBorrowInput struct {
	City            string
	Project         string
	MaxAmount       int64
	MaxRate         float64
	Reason          string
	Deadline        string
	OtherDetail     string
	Mortgage        bool
	MortgageFixed   bool
	MortgageOther   bool
	MortgageValue   float64
	Guarantee       bool
	GuaranteeAmount float64
	RiskFactor      float64
	TotalRiskFactor float64
}

// PublishBorrow validates and stores a borrow listing.
func (s *Service) PublishBorrow(ctx context.Context, ownerID uuid.UUID, input PublishBorrowInput) (*domain.Borrow, error) {
	deadline, err := ParseDeadline(input.Deadline)
	if err != nil {
		return nil, err
	}
	b := &domain.Borrow{
		BorrowID:        uuid.New(),
		OwnerID:         ownerID,
		City:            input.City,
		Project:         input.Project,
		MaxAmount:       input.MaxAmount,
		MaxRate:         input.MaxRate,
		Reason:          input.Reason,
		Deadline:        deadline,
		OtherDetail:     input.OtherDetail,
		Mortgage:        input.Mortgage,
		MortgageFixed:   input.MortgageFixed,
		MortgageOther:   input.MortgageOther,
		MortgageValue:   input.MortgageValue,
		Guarantee:       input.Guarantee,
		GuaranteeAmount: input.GuaranteeAmount,
		RiskFactor:      input.RiskFactor,
		TotalRiskFactor: input.TotalRiskFactor,
		CreatedAt:       nowUTC(),
	}
	if err := domain.ValidateBorrow(b); err != nil {
		return nil, err
	}
	if b.TotalRiskFactor == 0 {
		score, err := EvaluateRisk(s.riskExpr, b)
		if err != nil {
			return nil, err
		}
		b.TotalRiskFactor = score
	}
	if err := s.listingRepo.CreateBorrow(ctx, b); err != nil {
		return nil, err
	}

	note := domainLoan.NewPublishMessage(domainLoan.TypePublishBorrow, ownerID, &b.BorrowID, nil)
	if err := s.messageRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	if err := s.messageRepo.AddToMailbox(ctx, ownerID, note.MessageID); err != nil {
		return nil, err
	}

	s.feedSvc.AnnounceBorrow(ctx, ownerID, b.BorrowID)
	s.logger.Info().Str("borrowId", b.BorrowID.String()).Msg("borrow listing published")
	return b, nil
}

// PublishLendInput defines lend listing creation input.
type PublishLendInput struct {
	MaxAmount int64
	Deadline  string
}

// PublishLend validates and stores a lend listing.
func (s *Service) PublishLend(ctx context.Context, ownerID uuid.UUID, input PublishLendInput) (*domain.Lend, error) {
	deadline, err := ParseDeadline(input.Deadline)
	if err != nil {
		return nil, err
	}
	l := &domain.Lend{
		LendID:    uuid.New(),
		OwnerID:   ownerID,
		MaxAmount: input.MaxAmount,
		Deadline:  deadline,
		CreatedAt: nowUTC(),
	}
	if err := domain.ValidateLend(l); err != nil {
		return nil, err
	}
	if err := s.listingRepo.CreateLend(ctx, l); err != nil {
		return nil, err
	}

	note := domainLoan.NewPublishMessage(domainLoan.TypePublishLend, ownerID, nil, &l.LendID)
	if err := s.messageRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	if err := s.messageRepo.AddToMailbox(ctx, ownerID, note.MessageID); err != nil {
		return nil, err
	}

	s.logger.Info().Str("lendId", l.LendID.String()).Msg("lend listing published")
	return l, nil
}

// GetBorrow returns a borrow listing by id.
func (s *Service) GetBorrow(ctx context.Context, borrowID uuid.UUID) (*domain.Borrow, error) {
	b, err := s.listingRepo.GetBorrow(ctx, borrowID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

// GetLend returns a lend listing by id.
func (s *Service) GetLend(ctx context.Context, lendID uuid.UUID) (*domain.Lend, error) {
	l, err := s.listingRepo.GetLend(ctx, lendID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	return l, nil
}

// MyBorrows returns the user's own borrow listings.
func (s *Service) MyBorrows(ctx context.Context, ownerID uuid.UUID) ([]*domain.Borrow, error) {
	return s.listingRepo.ListBorrowsByOwner(ctx, ownerID)
}

// MyLends returns the user's own lend listings.
func (s *Service) MyLends(ctx context.Context, ownerID uuid.UUID) ([]*domain.Lend, error) {
	return s.listingRepo.ListLendsByOwner(ctx, ownerID)
}

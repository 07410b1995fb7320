package loan

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appAudit "github.com/loanlink/loanlink/internal/application/audit"
	"github.com/loanlink/loanlink/internal/domain/audit"
	"github.com/loanlink/loanlink/internal/domain/listing"
	domainLoan "github.com/loanlink/loanlink/internal/domain/loan"
)

// Service is the negotiation protocol engine. It holds no mutable
// state of its own: every operation is a read-validate-write cycle
// against the stores, gated by the consumed message's compare-and-set.
type Service struct {
	messageRepo domainLoan.MessageRepository
	txRepo      domainLoan.TransactionRepository
	listingRepo listing.Repository
	auditSvc    *appAudit.Service
	logger      zerolog.Logger
}

// NewService creates the protocol engine.
func NewService(
	messageRepo domainLoan.MessageRepository,
	txRepo domainLoan.TransactionRepository,
	listingRepo listing.Repository,
	auditSvc *appAudit.Service,
	logger zerolog.Logger,
) *Service {
	return &Service{
		messageRepo: messageRepo,
		txRepo:      txRepo,
		listingRepo: listingRepo,
		auditSvc:    auditSvc,
		logger:      logger.With().Str("service", "loan").Logger(),
	}
}

// delivery is one new message together with the mailboxes it lands in.
type delivery struct {
	message    *domainLoan.Message
	recipients []uuid.UUID
}

// transition is the fixed-shape effect list of one protocol step: at
// most one consumed-message mutation, at most one status mutation, and
// up to two new messages. The conditional writes run first, so a lost
// race leaves the stores untouched.
type transition struct {
	consumeID   uuid.UUID
	consumeFrom domainLoan.MessageType
	statusTxID  uuid.UUID
	statusFrom  domainLoan.Status
	statusTo    domainLoan.Status
	deliveries  []delivery
}

func (s *Service) apply(ctx context.Context, tr transition) error {
	if tr.consumeID != uuid.Nil {
		ok, err := s.messageRepo.CompareAndSetType(ctx, tr.consumeID, tr.consumeFrom, tr.consumeFrom.Consumed())
		if err != nil {
			return err
		}
		if !ok {
			s.logger.Debug().
				Str("messageId", tr.consumeID.String()).
				Str("expectedType", string(tr.consumeFrom)).
				Msg("lost consume race")
			return domainLoan.ErrConcurrencyConflict
		}
	}
	if tr.statusTxID != uuid.Nil {
		ok, err := s.txRepo.CompareAndSetStatus(ctx, tr.statusTxID, tr.statusFrom, tr.statusTo)
		if err != nil {
			return err
		}
		if !ok {
			// The consumed message is already rewritten; this is the
			// detectable partial-write anomaly, not silent data loss.
			s.logger.Warn().
				Str("transactionId", tr.statusTxID.String()).
				Str("messageId", tr.consumeID.String()).
				Str("expectedStatus", string(tr.statusFrom)).
				Msg("transaction status conflict after message consumption")
			return domainLoan.ErrConcurrencyConflict
		}
	}
	for _, d := range tr.deliveries {
		if err := s.messageRepo.Create(ctx, d.message); err != nil {
			return err
		}
		for _, userID := range d.recipients {
			if err := s.messageRepo.AddToMailbox(ctx, userID, d.message.MessageID); err != nil {
				return err
			}
		}
	}
	return nil
}

// Request files a loan request from the borrower who owns borrowID
// against the lend listing lendID. It creates the transaction in the
// Requested state and a message pair: BorrowRequest-Received for the
// lender and BorrowRequest-Sent for the borrower's own mailbox.
func (s *Service) Request(ctx context.Context, actorID, borrowID, lendID uuid.UUID) (uuid.UUID, error) {
	if actorID == uuid.Nil || borrowID == uuid.Nil || lendID == uuid.Nil {
		return uuid.Nil, domainLoan.ErrInvalidInput
	}
	borrow, err := s.listingRepo.GetBorrow(ctx, borrowID)
	if err != nil {
		return uuid.Nil, err
	}
	if borrow == nil {
		return uuid.Nil, domainLoan.ErrNotFound
	}
	lend, err := s.listingRepo.GetLend(ctx, lendID)
	if err != nil {
		return uuid.Nil, err
	}
	if lend == nil {
		return uuid.Nil, domainLoan.ErrNotFound
	}
	if borrow.OwnerID == lend.OwnerID {
		return uuid.Nil, domainLoan.ErrSelfRequest
	}
	if borrow.OwnerID != actorID {
		return uuid.Nil, domainLoan.ErrUnauthorized
	}

	tx := domainLoan.NewTransaction(actorID, borrowID, lendID)
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return uuid.Nil, err
	}

	toLender := domainLoan.NewMessage(domainLoan.TypeRequestReceived, &tx.InitiatorID, &lend.OwnerID, tx.TransactionID)
	toBorrower := domainLoan.NewMessage(domainLoan.TypeRequestSent, nil, &tx.InitiatorID, tx.TransactionID)
	err = s.apply(ctx, transition{deliveries: []delivery{
		{message: toLender, recipients: []uuid.UUID{lend.OwnerID}},
		{message: toBorrower, recipients: []uuid.UUID{actorID}},
	}})
	if err != nil {
		return uuid.Nil, err
	}

	s.auditSvc.Log(ctx, audit.NewEntry(audit.EntityTypeTransaction, tx.TransactionID.String(), audit.ActionRequest, actorID.String(), "loan requested"))
	s.logger.Info().
		Str("transactionId", tx.TransactionID.String()).
		Str("borrowId", borrowID.String()).
		Str("lendId", lendID.String()).
		Msg("loan request filed")
	return tx.TransactionID, nil
}

// AcceptRequest lets the lender accept a BorrowRequest-Received
// message. The message is consumed, the transaction moves to
// Progressing and the borrower receives BorrowRequest-Accepted.
func (s *Service) AcceptRequest(ctx context.Context, actorID, messageID uuid.UUID) (uuid.UUID, error) {
	msg, err := s.presentedMessage(ctx, actorID, messageID, domainLoan.TypeRequestReceived)
	if err != nil {
		return uuid.Nil, err
	}
	borrowerID := *msg.FromID

	accepted := domainLoan.NewMessage(domainLoan.TypeRequestAccepted, &actorID, &borrowerID, *msg.TransactionID)
	err = s.apply(ctx, transition{
		consumeID:   msg.MessageID,
		consumeFrom: domainLoan.TypeRequestReceived,
		statusTxID:  *msg.TransactionID,
		statusFrom:  domainLoan.StatusRequested,
		statusTo:    domainLoan.StatusProgressing,
		deliveries: []delivery{
			{message: accepted, recipients: []uuid.UUID{borrowerID}},
		},
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.auditSvc.Log(ctx, audit.NewEntry(audit.EntityTypeTransaction, msg.TransactionID.String(), audit.ActionAcceptRequest, actorID.String(), "request accepted"))
	return *msg.TransactionID, nil
}

// SendContract lets the borrower answer a BorrowRequest-Accepted
// message with the contract. The transaction stays Progressing; a
// second contract for the same transaction is rejected.
func (s *Service) SendContract(ctx context.Context, actorID, messageID uuid.UUID) (uuid.UUID, error) {
	msg, err := s.presentedMessage(ctx, actorID, messageID, domainLoan.TypeRequestAccepted)
	if err != nil {
		return uuid.Nil, err
	}
	lenderID := *msg.FromID

	exists, err := s.messageRepo.ExistsByTypeAndTransaction(ctx, domainLoan.TypeContractSent, *msg.TransactionID)
	if err != nil {
		return uuid.Nil, err
	}
	if exists {
		return uuid.Nil, domainLoan.ErrDuplicateSubmission
	}

	toLender := domainLoan.NewMessage(domainLoan.TypeContractReceived, &actorID, &lenderID, *msg.TransactionID)
	toBorrower := domainLoan.NewMessage(domainLoan.TypeContractSent, nil, &actorID, *msg.TransactionID)
	err = s.apply(ctx, transition{deliveries: []delivery{
		{message: toLender, recipients: []uuid.UUID{lenderID}},
		{message: toBorrower, recipients: []uuid.UUID{actorID}},
	}})
	if err != nil {
		return uuid.Nil, err
	}

	s.auditSvc.Log(ctx, audit.NewEntry(audit.EntityTypeTransaction, msg.TransactionID.String(), audit.ActionSendContract, actorID.String(), "contract sent"))
	return *msg.TransactionID, nil
}

// AcceptContract lets the lender accept a BorrowContract-Received
// message. The message is consumed, the transaction completes, the
// borrower receives BorrowContract-Accepted, and a single
// Borrow-Completed broadcast lands in both mailboxes.
func (s *Service) AcceptContract(ctx context.Context, actorID, messageID uuid.UUID) (uuid.UUID, error) {
	msg, err := s.presentedMessage(ctx, actorID, messageID, domainLoan.TypeContractReceived)
	if err != nil {
		return uuid.Nil, err
	}
	borrowerID := *msg.FromID

	accepted := domainLoan.NewMessage(domainLoan.TypeContractAccepted, &actorID, &borrowerID, *msg.TransactionID)
	completed := domainLoan.NewMessage(domainLoan.TypeCompleted, nil, nil, *msg.TransactionID)
	err = s.apply(ctx, transition{
		consumeID:   msg.MessageID,
		consumeFrom: domainLoan.TypeContractReceived,
		statusTxID:  *msg.TransactionID,
		statusFrom:  domainLoan.StatusProgressing,
		statusTo:    domainLoan.StatusCompleted,
		deliveries: []delivery{
			{message: accepted, recipients: []uuid.UUID{borrowerID}},
			{message: completed, recipients: []uuid.UUID{borrowerID, actorID}},
		},
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.auditSvc.Log(ctx, audit.NewEntry(audit.EntityTypeTransaction, msg.TransactionID.String(), audit.ActionAcceptContract, actorID.String(), "contract accepted"))
	s.logger.Info().
		Str("transactionId", msg.TransactionID.String()).
		Msg("loan negotiation completed")
	return *msg.TransactionID, nil
}

// GetTransaction returns a transaction by id.
func (s *Service) GetTransaction(ctx context.Context, transactionID uuid.UUID) (*domainLoan.Transaction, error) {
	if transactionID == uuid.Nil {
		return nil, domainLoan.ErrInvalidInput
	}
	tx, err := s.txRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domainLoan.ErrNotFound
	}
	return tx, nil
}

// RelatedMessages returns the user's business mailbox: protocol
// messages plus listing publications.
func (s *Service) RelatedMessages(ctx context.Context, userID uuid.UUID) ([]*domainLoan.Message, error) {
	if userID == uuid.Nil {
		return nil, domainLoan.ErrInvalidInput
	}
	return s.messageRepo.ListMailbox(ctx, userID, []string{"Borrow", "Publish-Borrow", "Publish-Lend"})
}

// presentedMessage loads the message the caller claims to hold and
// checks recipient and precondition type. Validation happens before
// any write; the type check here is advisory only, the authoritative
// check is the compare-and-set at write time.
func (s *Service) presentedMessage(ctx context.Context, actorID, messageID uuid.UUID, required domainLoan.MessageType) (*domainLoan.Message, error) {
	if actorID == uuid.Nil || messageID == uuid.Nil {
		return nil, domainLoan.ErrInvalidInput
	}
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, domainLoan.ErrNotFound
	}
	if !msg.AddressedTo(actorID) {
		return nil, domainLoan.ErrUnauthorized
	}
	if msg.Type != required {
		return nil, domainLoan.ErrInvalidState
	}
	if msg.TransactionID == nil || msg.FromID == nil {
		return nil, domainLoan.ErrInvalidState
	}
	return msg, nil
}

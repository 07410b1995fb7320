package httpapi

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/loanlink/loanlink/internal/domain/audit"
	"github.com/loanlink/loanlink/internal/domain/loan"
)

type loanRequestRequest struct {
	BorrowID uuid.UUID `json:"borrowId"`
	LendID   uuid.UUID `json:"lendId"`
}

type messageActionRequest struct {
	MessageID uuid.UUID `json:"messageId"`
}

// respondLoanError maps the negotiation error taxonomy onto HTTP
// status codes. A lost concurrency race wraps ErrInvalidState, so both
// land on 409.
func respondLoanError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, loan.ErrNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, loan.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
	case errors.Is(err, loan.ErrSelfRequest):
		respondError(w, http.StatusBadRequest, "SELF_REQUEST", err.Error())
	case errors.Is(err, loan.ErrUnauthorized):
		respondError(w, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, loan.ErrDuplicateSubmission):
		respondError(w, http.StatusConflict, "DUPLICATE_SUBMISSION", err.Error())
	case errors.Is(err, loan.ErrInvalidState):
		respondError(w, http.StatusConflict, "INVALID_STATE", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

// notifyParticipants pushes a protocol event to both sides of a
// transaction. Delivery is best effort.
func (s *Server) notifyParticipants(r *http.Request, transactionID uuid.UUID, event string) {
	tx, err := s.loanSvc.GetTransaction(r.Context(), transactionID)
	if err != nil {
		return
	}
	s.feedSvc.NotifyTransaction(tx.InitiatorID, event, transactionID)
	if lend, err := s.listingSvc.GetLend(r.Context(), tx.LendID); err == nil {
		s.feedSvc.NotifyTransaction(lend.OwnerID, event, transactionID)
	}
}

func (s *Server) requestLoan(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	var req loanRequestRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	txID, err := s.loanSvc.Request(r.Context(), u.UserID, req.BorrowID, req.LendID)
	if err != nil {
		respondLoanError(w, err)
		return
	}
	s.notifyParticipants(r, txID, "loan-requested")
	respondJSON(w, http.StatusOK, map[string]interface{}{"transactionId": txID})
}

func (s *Server) acceptRequest(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	var req messageActionRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	txID, err := s.loanSvc.AcceptRequest(r.Context(), u.UserID, req.MessageID)
	if err != nil {
		respondLoanError(w, err)
		return
	}
	s.notifyParticipants(r, txID, "request-accepted")
	respondJSON(w, http.StatusOK, map[string]interface{}{"transactionId": txID})
}

func (s *Server) sendContract(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	var req messageActionRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	txID, err := s.loanSvc.SendContract(r.Context(), u.UserID, req.MessageID)
	if err != nil {
		respondLoanError(w, err)
		return
	}
	s.notifyParticipants(r, txID, "contract-sent")
	respondJSON(w, http.StatusOK, map[string]interface{}{"transactionId": txID})
}

func (s *Server) acceptContract(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	var req messageActionRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	txID, err := s.loanSvc.AcceptContract(r.Context(), u.UserID, req.MessageID)
	if err != nil {
		respondLoanError(w, err)
		return
	}
	s.notifyParticipants(r, txID, "loan-completed")
	respondJSON(w, http.StatusOK, map[string]interface{}{"transactionId": txID})
}

func (s *Server) relatedMessages(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	msgs, err := s.loanSvc.RelatedMessages(r.Context(), u.UserID)
	if err != nil {
		respondLoanError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"messages": msgs})
}

func (s *Server) getTransactionAudit(w http.ResponseWriter, r *http.Request) {
	transactionID, err := parseUUIDParam(r, "transactionId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid transaction id")
		return
	}
	entries, err := s.auditSvc.ListByEntity(r.Context(), audit.EntityTypeTransaction, transactionID.String(), 50)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID, err := parseUUIDParam(r, "transactionId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid transaction id")
		return
	}
	tx, err := s.loanSvc.GetTransaction(r.Context(), transactionID)
	if err != nil {
		respondLoanError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tx)
}

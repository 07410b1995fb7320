package httpapi

import (
	"errors"
	"net/http"

	appListing "github.com/loanlink/loanlink/internal/application/listing"
	"github.com/loanlink/loanlink/internal/domain/listing"
)

type publishBorrowRequest struct {
	City            string  `json:"city,omitempty"`
	Project         string  `json:"project,omitempty"`
	MaxAmount       int64   `json:"maxAmount"`
	MaxRate         float64 `json:"maxRate"`
	Reason          string  `json:"reason,omitempty"`
	Deadline        string  `json:"deadline"`
	OtherDetail     string  `json:"otherDetail,omitempty"`
	Mortgage        bool    `json:"mortgage,omitempty"`
	MortgageFixed   bool    `json:"mortgageFixed,omitempty"`
	MortgageOther   bool    `json:"mortgageOther,omitempty"`
	MortgageValue   float64 `json:"mortgageValue,omitempty"`
	Guarantee       bool    `json:"guarantee,omitempty"`
	GuaranteeAmount float64 `json:"guaranteeAmount,omitempty"`
	RiskFactor      float64 `json:"riskFactor,omitempty"`
	TotalRiskFactor float64 `json:"totalRiskFactor,omitempty"`
}

type publishLendRequest struct {
	MaxAmount int64  `json:"maxAmount"`
	Deadline  string `json:"deadline"`
}

func (s *Server) publishBorrow(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	var req publishBorrowRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	b, err := s.listingSvc.PublishBorrow(r.Context(), u.UserID, appListing.PublishBorrowInput{
		City:            req.City,
		Project:         req.Project,
		MaxAmount:       req.MaxAmount,
		MaxRate:         req.MaxRate,
		Reason:          req.Reason,
		Deadline:        req.Deadline,
		OtherDetail:     req.OtherDetail,
		Mortgage:        req.Mortgage,
		MortgageFixed:   req.MortgageFixed,
		MortgageOther:   req.MortgageOther,
		MortgageValue:   req.MortgageValue,
		Guarantee:       req.Guarantee,
		GuaranteeAmount: req.GuaranteeAmount,
		RiskFactor:      req.RiskFactor,
		TotalRiskFactor: req.TotalRiskFactor,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, b)
}

func (s *Server) publishLend(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	var req publishLendRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	l, err := s.listingSvc.PublishLend(r.Context(), u.UserID, appListing.PublishLendInput{
		MaxAmount: req.MaxAmount,
		Deadline:  req.Deadline,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, l)
}

func (s *Server) getBorrow(w http.ResponseWriter, r *http.Request) {
	borrowID, err := parseUUIDParam(r, "borrowId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid borrow id")
		return
	}
	b, err := s.listingSvc.GetBorrow(r.Context(), borrowID)
	if err != nil {
		if errors.Is(err, listing.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, b)
}

func (s *Server) getLend(w http.ResponseWriter, r *http.Request) {
	lendID, err := parseUUIDParam(r, "lendId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid lend id")
		return
	}
	l, err := s.listingSvc.GetLend(r.Context(), lendID)
	if err != nil {
		if errors.Is(err, listing.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, l)
}

func (s *Server) myBorrows(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	borrows, err := s.listingSvc.MyBorrows(r.Context(), u.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"borrows": borrows})
}

func (s *Server) myLends(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	lends, err := s.listingSvc.MyLends(r.Context(), u.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"lends": lends})
}

func (s *Server) recommendLends(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	borrowID, err := parseUUIDParam(r, "borrowId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid borrow id")
		return
	}
	lends, err := s.recommendSvc.Recommend(r.Context(), borrowID, u.UserID)
	if err != nil {
		if errors.Is(err, listing.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"lends": lends})
}

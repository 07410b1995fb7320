package httpapi

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/loanlink/loanlink/internal/domain/friend"
)

type friendRequestRequest struct {
	ToID uuid.UUID `json:"toId"`
}

func respondFriendError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, friend.ErrNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, friend.ErrSelfFriend), errors.Is(err, friend.ErrAlreadyFriends):
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
	case errors.Is(err, friend.ErrNotPending):
		respondError(w, http.StatusConflict, "INVALID_STATE", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

func (s *Server) listFriends(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	friends, err := s.friendSvc.List(r.Context(), u.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if friends == nil {
		friends = []uuid.UUID{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"friends": friends})
}

func (s *Server) createFriendRequest(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	var req friendRequestRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	created, err := s.friendSvc.Request(r.Context(), u.UserID, req.ToID)
	if err != nil {
		respondFriendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, created)
}

func (s *Server) listFriendRequests(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	requests, err := s.friendSvc.PendingRequests(r.Context(), u.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

func (s *Server) acceptFriendRequest(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	requestID, err := parseUUIDParam(r, "requestId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid request id")
		return
	}
	if err := s.friendSvc.Accept(r.Context(), u.UserID, requestID); err != nil {
		respondFriendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"status": "OK"})
}

func (s *Server) refuseFriendRequest(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	requestID, err := parseUUIDParam(r, "requestId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid request id")
		return
	}
	if err := s.friendSvc.Refuse(r.Context(), u.UserID, requestID); err != nil {
		respondFriendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"status": "OK"})
}

func (s *Server) removeFriend(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	friendID, err := parseUUIDParam(r, "friendId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid friend id")
		return
	}
	if err := s.friendSvc.Remove(r.Context(), u.UserID, friendID); err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"status": "OK"})
}

package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	appAudit "github.com/loanlink/loanlink/internal/application/audit"
	appAuth "github.com/loanlink/loanlink/internal/application/auth"
	appFeed "github.com/loanlink/loanlink/internal/application/feed"
	appFriend "github.com/loanlink/loanlink/internal/application/friend"
	appListing "github.com/loanlink/loanlink/internal/application/listing"
	appLoan "github.com/loanlink/loanlink/internal/application/loan"
	appRecommend "github.com/loanlink/loanlink/internal/application/recommend"
	appUser "github.com/loanlink/loanlink/internal/application/user"
	"github.com/loanlink/loanlink/internal/infrastructure/sse"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	loanSvc             *appLoan.Service
	listingSvc          *appListing.Service
	recommendSvc        *appRecommend.Service
	friendSvc           *appFriend.Service
	feedSvc             *appFeed.Service
	auditSvc            *appAudit.Service
	authSvc             *appAuth.Service
	userSvc             *appUser.Service
	sseHub              *sse.Hub
	sessionCookieName   string
	sessionCookieSecure bool
}

func NewServer(
	loanSvc *appLoan.Service,
	listingSvc *appListing.Service,
	recommendSvc *appRecommend.Service,
	friendSvc *appFriend.Service,
	feedSvc *appFeed.Service,
	auditSvc *appAudit.Service,
	authSvc *appAuth.Service,
	userSvc *appUser.Service,
	sseHub *sse.Hub,
	sessionCookieName string,
	sessionCookieSecure bool,
) *Server {
	return &Server{
		loanSvc:             loanSvc,
		listingSvc:          listingSvc,
		recommendSvc:        recommendSvc,
		friendSvc:           friendSvc,
		feedSvc:             feedSvc,
		auditSvc:            auditSvc,
		authSvc:             authSvc,
		userSvc:             userSvc,
		sseHub:              sseHub,
		sessionCookieName:   sessionCookieName,
		sessionCookieSecure: sessionCookieSecure,
	}
}

// Router builds the HTTP router.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.register)
			r.Post("/login", s.login)
			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Post("/logout", s.logout)
				r.Get("/me", s.me)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Route("/listings", func(r chi.Router) {
				r.Post("/borrow", s.publishBorrow)
				r.Get("/borrow/mine", s.myBorrows)
				r.Get("/borrow/{borrowId}", s.getBorrow)
				r.Get("/borrow/{borrowId}/recommend", s.recommendLends)
				r.Post("/lend", s.publishLend)
				r.Get("/lend/mine", s.myLends)
				r.Get("/lend/{lendId}", s.getLend)
			})

			r.Route("/loans", func(r chi.Router) {
				r.Post("/request", s.requestLoan)
				r.Post("/accept-request", s.acceptRequest)
				r.Post("/send-contract", s.sendContract)
				r.Post("/accept-contract", s.acceptContract)
				r.Get("/messages", s.relatedMessages)
				r.Get("/transactions/{transactionId}", s.getTransaction)
				r.Get("/transactions/{transactionId}/audit", s.getTransactionAudit)
			})

			r.Route("/friends", func(r chi.Router) {
				r.Get("/", s.listFriends)
				r.Post("/requests", s.createFriendRequest)
				r.Get("/requests", s.listFriendRequests)
				r.Post("/requests/{requestId}/accept", s.acceptFriendRequest)
				r.Post("/requests/{requestId}/refuse", s.refuseFriendRequest)
				r.Delete("/{friendId}", s.removeFriend)
			})

			r.Route("/feed", func(r chi.Router) {
				r.Get("/timeline", s.timeline)
				r.Get("/sse", s.sseEndpoint)
			})
		})
	})

	return r
}

// Helpers
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, map[string]interface{}{
		"error":   code,
		"message": message,
	})
}

func parseUUIDParam(r *http.Request, key string) (uuid.UUID, error) {
	val := chi.URLParam(r, key)
	return uuid.Parse(val)
}

func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

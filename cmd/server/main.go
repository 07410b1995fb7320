package main

import (
	"context"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	httpapi "github.com/loanlink/loanlink/internal/api/http"
	"github.com/loanlink/loanlink/internal/application/audit"
	"github.com/loanlink/loanlink/internal/application/auth"
	"github.com/loanlink/loanlink/internal/application/feed"
	"github.com/loanlink/loanlink/internal/application/friend"
	"github.com/loanlink/loanlink/internal/application/listing"
	"github.com/loanlink/loanlink/internal/application/loan"
	"github.com/loanlink/loanlink/internal/application/recommend"
	"github.com/loanlink/loanlink/internal/application/user"
	"github.com/loanlink/loanlink/internal/config"
	"github.com/loanlink/loanlink/internal/infrastructure/postgres"
	"github.com/loanlink/loanlink/internal/infrastructure/sse"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db error: %v", err)
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool, "internal/migrations"); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	// repositories
	userRepo := postgres.NewUserRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	listingRepo := postgres.NewListingRepository(pool)
	messageRepo := postgres.NewMessageRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	friendRepo := postgres.NewFriendRepository(pool)
	timelineRepo := postgres.NewTimelineRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)

	// infrastructure
	sseHub := sse.NewHub()

	// services
	auditKey := loadHexKey(cfg.AuditSigningKey)
	auditSvc := audit.NewService(auditRepo, logger, auditKey)
	feedSvc := feed.NewService(timelineRepo, friendRepo, sseHub, logger)
	listingSvc := listing.NewService(listingRepo, messageRepo, feedSvc, cfg.RiskExpression, logger)
	loanSvc := loan.NewService(messageRepo, txRepo, listingRepo, auditSvc, logger)
	recommendSvc := recommend.NewService(listingRepo, friendRepo, logger)
	friendSvc := friend.NewService(friendRepo, logger)
	userSvc := user.NewService(userRepo, logger)
	authSvc := auth.NewService(userRepo, sessionRepo, auditSvc, cfg.SessionTTL, logger)

	// API server
	apiServer := httpapi.NewServer(loanSvc, listingSvc, recommendSvc, friendSvc, feedSvc, auditSvc, authSvc, userSvc, sseHub, cfg.SessionCookieName, cfg.SessionCookieSecure)

	httpServer := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      apiServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// background loops
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if n, err := sessionRepo.DeleteExpired(context.Background()); err == nil && n > 0 {
				logger.Debug().Int("count", n).Msg("expired sessions removed")
			}
		}
	}()

	// start server
	go func() {
		logger.Info().Str("addr", cfg.ServerAddr).Msg("http server started")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctxShutdown)
	sseHub.Stop()
}

func loadHexKey(hexStr string) []byte {
	if hexStr == "" {
		return nil
	}
	b, err := hex.DecodeString(hexStr)
	if err != nil {
		return nil
	}
	return b
}

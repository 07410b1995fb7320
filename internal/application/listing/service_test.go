package listing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appFeed "github.com/loanlink/loanlink/internal/application/feed"
	domain "github.com/loanlink/loanlink/internal/domain/listing"
	"github.com/loanlink/loanlink/internal/infrastructure/memory"
	"github.com/loanlink/loanlink/internal/infrastructure/sse"
)

func newListingService(t *testing.T) (*Service, *memory.ListingStore, *memory.MessageStore, *memory.TimelineStore, *memory.FriendStore) {
	t.Helper()
	listings := memory.NewListingStore()
	messages := memory.NewMessageStore()
	timeline := memory.NewTimelineStore()
	friends := memory.NewFriendStore()
	feedSvc := appFeed.NewService(timeline, friends, sse.NewHub(), zerolog.Nop())
	svc := NewService(listings, messages, feedSvc, DefaultRiskExpression, zerolog.Nop())
	return svc, listings, messages, timeline, friends
}

func TestPublishBorrow(t *testing.T) {
	svc, listings, messages, timeline, _ := newListingService(t)
	ctx := context.Background()
	owner := uuid.New()

	b, err := svc.PublishBorrow(ctx, owner, PublishBorrowInput{
		City:       "Shanghai",
		Project:    "warehouse refit",
		MaxAmount:  50000,
		MaxRate:    0.08,
		Deadline:   "2026-12-31",
		RiskFactor: 4,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, b.BorrowID)
	assert.NotZero(t, b.TotalRiskFactor, "risk score computed at publish time")

	stored, err := listings.GetBorrow(ctx, b.BorrowID)
	require.NoError(t, err)
	require.NotNil(t, stored)

	mailbox, err := messages.ListMailbox(ctx, owner, []string{"Publish-Borrow"})
	require.NoError(t, err)
	require.Len(t, mailbox, 1)
	require.NotNil(t, mailbox[0].BorrowID)
	assert.Equal(t, b.BorrowID, *mailbox[0].BorrowID)

	items, err := timeline.ListForOwners(ctx, []uuid.UUID{owner}, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestPublishBorrowValidation(t *testing.T) {
	svc, _, _, _, _ := newListingService(t)
	ctx := context.Background()

	_, err := svc.PublishBorrow(ctx, uuid.New(), PublishBorrowInput{MaxAmount: 0, Deadline: "2026-12-31"})
	require.Error(t, err)

	_, err = svc.PublishBorrow(ctx, uuid.New(), PublishBorrowInput{MaxAmount: 100, Deadline: "soon"})
	require.Error(t, err)
}

func TestPublishLend(t *testing.T) {
	svc, listings, messages, _, _ := newListingService(t)
	ctx := context.Background()
	owner := uuid.New()

	l, err := svc.PublishLend(ctx, owner, PublishLendInput{MaxAmount: 80000, Deadline: "2027-01-01"})
	require.NoError(t, err)

	stored, err := listings.GetLend(ctx, l.LendID)
	require.NoError(t, err)
	require.NotNil(t, stored)

	mailbox, err := messages.ListMailbox(ctx, owner, []string{"Publish-Lend"})
	require.NoError(t, err)
	require.Len(t, mailbox, 1)
}

func TestGetListingNotFound(t *testing.T) {
	svc, _, _, _, _ := newListingService(t)
	ctx := context.Background()

	_, err := svc.GetBorrow(ctx, uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.GetLend(ctx, uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

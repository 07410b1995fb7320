package recommend

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanlink/loanlink/internal/domain/listing"
	"github.com/loanlink/loanlink/internal/infrastructure/memory"
)

type matcherFixture struct {
	svc      *Service
	listings *memory.ListingStore
	friends  *memory.FriendStore

	borrower uuid.UUID
	borrowID uuid.UUID
	deadline time.Time
}

func newMatcherFixture(t *testing.T) *matcherFixture {
	t.Helper()
	f := &matcherFixture{
		listings: memory.NewListingStore(),
		friends:  memory.NewFriendStore(),
		borrower: uuid.New(),
		deadline: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	f.svc = NewService(f.listings, f.friends, zerolog.Nop())

	borrow := &listing.Borrow{
		BorrowID:  uuid.New(),
		OwnerID:   f.borrower,
		MaxAmount: 10000,
		Deadline:  f.deadline,
	}
	require.NoError(t, f.listings.CreateBorrow(context.Background(), borrow))
	f.borrowID = borrow.BorrowID
	return f
}

func (f *matcherFixture) addFriend(t *testing.T) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, f.friends.AddFriendship(context.Background(), f.borrower, id))
	return id
}

func (f *matcherFixture) addLend(t *testing.T, owner uuid.UUID, amount int64, deadline time.Time) uuid.UUID {
	t.Helper()
	l := &listing.Lend{
		LendID:    uuid.New(),
		OwnerID:   owner,
		MaxAmount: amount,
		Deadline:  deadline,
	}
	require.NoError(t, f.listings.CreateLend(context.Background(), l))
	return l.LendID
}

func TestRecommendFiltersAndSorts(t *testing.T) {
	f := newMatcherFixture(t)
	ctx := context.Background()
	later := f.deadline.AddDate(0, 1, 0)

	f1, f2, f3, f4 := f.addFriend(t), f.addFriend(t), f.addFriend(t), f.addFriend(t)
	stranger := uuid.New()

	f.addLend(t, f1, 100, later)
	f.addLend(t, f2, 900, later)
	f.addLend(t, f3, 500, later)
	f.addLend(t, f4, 700, later)
	f.addLend(t, stranger, 9999, later)                      // not a friend
	f.addLend(t, f.addFriend(t), 8888, f.deadline.AddDate(0, 0, -1)) // deadline too early

	got, err := f.svc.Recommend(ctx, f.borrowID, f.borrower)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, int64(900), got[0].MaxAmount)
	assert.Equal(t, int64(700), got[1].MaxAmount)
	assert.Equal(t, int64(500), got[2].MaxAmount)
	for _, l := range got {
		assert.NotEqual(t, stranger, l.OwnerID)
	}
}

func TestRecommendDeadlineBoundaryInclusive(t *testing.T) {
	f := newMatcherFixture(t)
	friendID := f.addFriend(t)
	f.addLend(t, friendID, 100, f.deadline)

	got, err := f.svc.Recommend(context.Background(), f.borrowID, f.borrower)
	require.NoError(t, err)
	require.Len(t, got, 1, "deadline equal to the borrow's is acceptable")
}

func TestRecommendExcludesOwnListings(t *testing.T) {
	f := newMatcherFixture(t)
	// A user can never be matched with their own offer, even if the
	// graph somehow contains a self edge.
	require.NoError(t, f.friends.AddFriendship(context.Background(), f.borrower, f.borrower))
	f.addLend(t, f.borrower, 100, f.deadline.AddDate(1, 0, 0))

	got, err := f.svc.Recommend(context.Background(), f.borrowID, f.borrower)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecommendTiesAreStable(t *testing.T) {
	f := newMatcherFixture(t)
	later := f.deadline.AddDate(0, 1, 0)

	first := f.addLend(t, f.addFriend(t), 500, later)
	second := f.addLend(t, f.addFriend(t), 500, later)

	// Ties keep insertion order; the relative order of equal amounts
	// never flips between calls.
	for i := 0; i < 5; i++ {
		got, err := f.svc.Recommend(context.Background(), f.borrowID, f.borrower)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, first, got[0].LendID)
		assert.Equal(t, second, got[1].LendID)
	}
}

func TestRecommendUnknownBorrow(t *testing.T) {
	f := newMatcherFixture(t)
	_, err := f.svc.Recommend(context.Background(), uuid.New(), f.borrower)
	require.ErrorIs(t, err, listing.ErrNotFound)
}

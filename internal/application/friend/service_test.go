package friend

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/loanlink/loanlink/internal/domain/friend"
	"github.com/loanlink/loanlink/internal/infrastructure/memory"
)

func TestFriendRequestAcceptFlow(t *testing.T) {
	ctx := context.Background()
	store := memory.NewFriendStore()
	svc := NewService(store, zerolog.Nop())

	alice, bob := uuid.New(), uuid.New()

	req, err := svc.Request(ctx, alice, bob)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestPending, req.Status)

	pending, err := svc.PendingRequests(ctx, bob)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, svc.Accept(ctx, bob, req.RequestID))

	isFriend, err := store.Contains(ctx, alice, bob)
	require.NoError(t, err)
	assert.True(t, isFriend)

	// Accepting twice fails: the request is no longer pending.
	err = svc.Accept(ctx, bob, req.RequestID)
	require.ErrorIs(t, err, domain.ErrNotPending)
}

func TestFriendRequestRefuse(t *testing.T) {
	ctx := context.Background()
	store := memory.NewFriendStore()
	svc := NewService(store, zerolog.Nop())

	alice, bob := uuid.New(), uuid.New()
	req, err := svc.Request(ctx, alice, bob)
	require.NoError(t, err)

	require.NoError(t, svc.Refuse(ctx, bob, req.RequestID))

	isFriend, err := store.Contains(ctx, alice, bob)
	require.NoError(t, err)
	assert.False(t, isFriend)
}

func TestFriendRequestGuards(t *testing.T) {
	ctx := context.Background()
	store := memory.NewFriendStore()
	svc := NewService(store, zerolog.Nop())

	alice, bob := uuid.New(), uuid.New()

	_, err := svc.Request(ctx, alice, alice)
	require.ErrorIs(t, err, domain.ErrSelfFriend)

	require.NoError(t, store.AddFriendship(ctx, alice, bob))
	_, err = svc.Request(ctx, alice, bob)
	require.ErrorIs(t, err, domain.ErrAlreadyFriends)

	// Only the recipient may settle a request.
	carol := uuid.New()
	req, err := svc.Request(ctx, alice, carol)
	require.NoError(t, err)
	err = svc.Accept(ctx, bob, req.RequestID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveFriendship(t *testing.T) {
	ctx := context.Background()
	store := memory.NewFriendStore()
	svc := NewService(store, zerolog.Nop())

	alice, bob := uuid.New(), uuid.New()
	require.NoError(t, store.AddFriendship(ctx, alice, bob))

	require.NoError(t, svc.Remove(ctx, bob, alice))
	isFriend, err := store.Contains(ctx, alice, bob)
	require.NoError(t, err)
	assert.False(t, isFriend)
}

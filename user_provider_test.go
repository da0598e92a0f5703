package messagely_test

import (
	"context"
	"errors"
	"testing"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	messagely "github.com/kneyzberg/messagely"
)

func TestUsersRepositorySatisfiesUserTracker(t *testing.T) {
	db := setupTestDB(t)
	repo := messagely.NewRepositoryManager(db)

	var store messagely.UserTracker = repo.Users()
	provider := messagely.NewUserProvider(store)
	require.NotNil(t, provider)

	registerTestUser(t, repo, "alice")

	identity, err := provider.VerifyIdentity(context.Background(), "alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.Username())
}

func TestVerifyIdentitySuccess(t *testing.T) {
	ctx := context.Background()
	hash, err := messagely.HashPassword("password123")
	require.NoError(t, err)

	user := &messagely.User{Username: "alice", PasswordHash: hash}

	store := new(MockUserTracker)
	store.On("GetByUsername", ctx, "alice").Return(user, nil).Once()
	store.On("TrackSuccessfulLogin", ctx, user).Return(nil).Once()

	provider := messagely.NewUserProvider(store)

	identity, err := provider.VerifyIdentity(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.Username())

	store.AssertExpectations(t)
}

func TestVerifyIdentityUnknownUserLooksLikeBadPassword(t *testing.T) {
	ctx := context.Background()

	store := new(MockUserTracker)
	store.On("GetByUsername", ctx, "ghost").
		Return(nil, repository.NewRecordNotFound()).Once()

	provider := messagely.NewUserProvider(store)

	_, err := provider.VerifyIdentity(ctx, "ghost", "password123")
	require.ErrorIs(t, err, messagely.ErrMismatchedHashAndPassword)

	store.AssertNotCalled(t, "TrackSuccessfulLogin", mock.Anything, mock.Anything)
}

func TestVerifyIdentityWrongPassword(t *testing.T) {
	ctx := context.Background()
	hash, err := messagely.HashPassword("password123")
	require.NoError(t, err)

	user := &messagely.User{Username: "alice", PasswordHash: hash}

	store := new(MockUserTracker)
	store.On("GetByUsername", ctx, "alice").Return(user, nil).Once()

	provider := messagely.NewUserProvider(store)

	_, err = provider.VerifyIdentity(ctx, "alice", "wrongpass")
	require.ErrorIs(t, err, messagely.ErrMismatchedHashAndPassword)

	store.AssertNotCalled(t, "TrackSuccessfulLogin", mock.Anything, mock.Anything)
}

func TestVerifyIdentityStoreFailure(t *testing.T) {
	ctx := context.Background()

	store := new(MockUserTracker)
	store.On("GetByUsername", ctx, "alice").
		Return(nil, errors.New("connection refused")).Once()

	provider := messagely.NewUserProvider(store)

	_, err := provider.VerifyIdentity(ctx, "alice", "password123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, messagely.ErrMismatchedHashAndPassword)
}

func TestVerifyIdentityTrackFailureIsBestEffort(t *testing.T) {
	ctx := context.Background()
	hash, err := messagely.HashPassword("password123")
	require.NoError(t, err)

	user := &messagely.User{Username: "alice", PasswordHash: hash}

	store := new(MockUserTracker)
	store.On("GetByUsername", ctx, "alice").Return(user, nil).Once()
	store.On("TrackSuccessfulLogin", ctx, user).
		Return(errors.New("disk full")).Once()

	provider := messagely.NewUserProvider(store)

	identity, err := provider.VerifyIdentity(ctx, "alice", "password123")
	require.NoError(t, err, "a failed last login touch must not block the login")
	assert.Equal(t, "alice", identity.Username())
}

package messagely_test

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	messagely "github.com/kneyzberg/messagely"
)

func TestLoginIssuesDecodableToken(t *testing.T) {
	ctx := context.Background()
	provider := new(MockIdentityProvider)
	provider.On("VerifyIdentity", ctx, "alice", "password123").
		Return(TestIdentity{username: "alice"}, nil).Once()

	auther := messagely.NewAuthenticator(provider, newMockConfig())

	token, err := auther.Login(ctx, "alice", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, ok := auther.TokenService().Decode(token)
	require.True(t, ok)
	assert.Equal(t, "alice", claims.Username())

	provider.AssertExpectations(t)
}

func TestLoginPropagatesVerifyError(t *testing.T) {
	ctx := context.Background()
	provider := new(MockIdentityProvider)
	provider.On("VerifyIdentity", ctx, "alice", "wrongpass").
		Return(nil, messagely.ErrMismatchedHashAndPassword).Once()

	auther := messagely.NewAuthenticator(provider, newMockConfig())

	token, err := auther.Login(ctx, "alice", "wrongpass")
	require.ErrorIs(t, err, messagely.ErrMismatchedHashAndPassword)
	assert.Empty(t, token)

	provider.AssertExpectations(t)
}

func TestLoginRejectsZeroIdentity(t *testing.T) {
	ctx := context.Background()
	provider := new(MockIdentityProvider)
	provider.On("VerifyIdentity", ctx, "alice", "password123").
		Return(TestIdentity{}, nil).Once()

	auther := messagely.NewAuthenticator(provider, newMockConfig())

	token, err := auther.Login(ctx, "alice", "password123")
	require.Error(t, err)
	assert.Empty(t, token)

	var richErr *goerrors.Error
	require.ErrorAs(t, err, &richErr)
	assert.Equal(t, goerrors.CategoryAuth, richErr.Category)
}

func TestLoginTokenCarriesExpiry(t *testing.T) {
	ctx := context.Background()
	provider := new(MockIdentityProvider)
	provider.On("VerifyIdentity", ctx, "alice", "password123").
		Return(TestIdentity{username: "alice"}, nil).Once()

	auther := messagely.NewAuthenticator(provider, newMockConfig())

	token, err := auther.Login(ctx, "alice", "password123")
	require.NoError(t, err)

	claims, err := auther.TokenService().Validate(token)
	require.NoError(t, err)
	assert.False(t, claims.Expires().IsZero())
	assert.True(t, claims.Expires().After(claims.IssuedAt()))
}

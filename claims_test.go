package messagely_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	messagely "github.com/kneyzberg/messagely"
)

func TestJWTClaimsUsername(t *testing.T) {
	claims := &messagely.JWTClaims{UserName: "alice"}
	assert.Equal(t, "alice", claims.Username())
}

func TestJWTClaimsUsernameFallsBackToSubject(t *testing.T) {
	claims := &messagely.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "bob"},
	}
	assert.Equal(t, "bob", claims.Username())
	assert.Equal(t, "bob", claims.Subject())
}

func TestJWTClaimsTimes(t *testing.T) {
	now := time.Now()
	claims := &messagely.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}

	assert.WithinDuration(t, now, claims.IssuedAt(), time.Second)
	assert.WithinDuration(t, now.Add(time.Hour), claims.Expires(), time.Second)
}

func TestJWTClaimsTimesZeroWhenUnset(t *testing.T) {
	claims := &messagely.JWTClaims{}
	assert.True(t, claims.IssuedAt().IsZero())
	assert.True(t, claims.Expires().IsZero())
}

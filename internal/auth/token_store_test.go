package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenStore_WithoutRedisNothingIsRevoked(t *testing.T) {
	store := NewTokenStore(nil)
	ctx := context.Background()

	assert.NoError(t, store.RevokeAccessToken(ctx, "jti-1", time.Minute))
	assert.False(t, store.IsAccessTokenRevoked(ctx, "jti-1"))
}

func TestTokenStore_ExpiredTokenIsNotStored(t *testing.T) {
	store := NewTokenStore(nil)
	assert.NoError(t, store.RevokeAccessToken(context.Background(), "jti-1", -time.Second))
}

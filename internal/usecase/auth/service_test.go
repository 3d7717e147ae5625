package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/cache"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/security"
	"github.com/BruksfildServices01/salon-scheduler/internal/testutil"
)

const refreshTTL = 14 * 24 * time.Hour

type fixture struct {
	svc   *Service
	cache *cache.Cache
	clock *testutil.Clock
	user  *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clk := testutil.NewClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	store := memory.NewStore(clk.Now)
	c, _ := testutil.NewCache(t)

	hash, err := security.HashPassword("secret-pass")
	require.NoError(t, err)

	u := &models.User{Email: "owner@salon.kr", Name: "Owner", PasswordHash: hash, Role: models.RoleMaster}
	require.NoError(t, store.Users().Create(context.Background(), u, nil))

	tokens := security.NewTokenService("test-secret", 30*time.Minute, refreshTTL, clk.Now)
	return &fixture{
		svc:   NewService(store.Users(), c, tokens, zap.NewNop()),
		cache: c,
		clock: clk,
		user:  u,
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tokens, u, err := f.svc.Login(ctx, "owner@salon.kr", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, f.user.ID, u.ID)
	assert.Equal(t, "bearer", tokens.TokenType)

	stored, ok, err := f.cache.GetString(ctx, cache.RefreshTokenKey(u.ID))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, tokens.RefreshToken, stored)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		email, password string
	}{
		{"owner@salon.kr", "wrong"},
		{"nobody@salon.kr", "secret-pass"},
	}
	for _, tc := range cases {
		_, _, err := f.svc.Login(ctx, tc.email, tc.password)
		assert.True(t, httperr.Is(err, http.StatusUnauthorized, "AUTH_UNAUTHORIZED"), tc.email)
	}
}

func TestRefreshKeepsTokenUntilHalfLife(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, _, err := f.svc.Login(ctx, "owner@salon.kr", "secret-pass")
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	again, err := f.svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, first.RefreshToken, again.RefreshToken)
	assert.NotEmpty(t, again.AccessToken)

	f.clock.Advance(refreshTTL / 2)
	rotated, err := f.svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, rotated.RefreshToken)

	// The old token is no longer the stored one.
	_, err = f.svc.Refresh(ctx, first.RefreshToken)
	assert.True(t, httperr.Is(err, http.StatusUnauthorized, "AUTH_UNAUTHORIZED"))

	_, err = f.svc.Refresh(ctx, rotated.RefreshToken)
	assert.NoError(t, err)
}

func TestRefreshRejectsExpiredAndTampered(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tokens, _, err := f.svc.Login(ctx, "owner@salon.kr", "secret-pass")
	require.NoError(t, err)

	tampered := tokens.RefreshToken[:len(tokens.RefreshToken)-2] + "xx"
	_, err = f.svc.Refresh(ctx, tampered)
	assert.Equal(t, http.StatusUnauthorized, httperr.StatusOf(err))

	_, err = f.svc.Refresh(ctx, tokens.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, httperr.StatusOf(err))

	f.clock.Advance(refreshTTL + time.Second)
	_, err = f.svc.Refresh(ctx, tokens.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, httperr.StatusOf(err))
}

func TestLogoutRevokes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tokens, u, err := f.svc.Login(ctx, "owner@salon.kr", "secret-pass")
	require.NoError(t, err)
	require.NoError(t, f.cache.SetJSON(ctx, cache.UserKey(u.ID), map[string]any{"id": u.ID}, time.Hour))

	assert.True(t, f.svc.Logout(ctx, tokens.RefreshToken))

	_, ok, err := f.cache.GetString(ctx, cache.UserKey(u.ID))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.svc.Refresh(ctx, tokens.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, httperr.StatusOf(err))

	assert.False(t, f.svc.Logout(ctx, tokens.RefreshToken))
	assert.False(t, f.svc.Logout(ctx, "not-a-token"))
}

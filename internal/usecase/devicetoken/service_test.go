package devicetoken

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/push"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase"
)

type fakeSender struct {
	sent      []string
	multicast [][]string
	fail      error
	failures  int
}

func (f *fakeSender) Send(_ context.Context, token string, _ push.Message) (string, error) {
	if f.fail != nil {
		return "", f.fail
	}
	f.sent = append(f.sent, token)
	return fmt.Sprintf("msg-%d", len(f.sent)), nil
}

func (f *fakeSender) SendMulticast(_ context.Context, tokens []string, _ push.Message) (int, int, error) {
	if f.fail != nil {
		return 0, 0, f.fail
	}
	f.multicast = append(f.multicast, tokens)
	return len(tokens) - f.failures, f.failures, nil
}

func newService(t *testing.T) (*Service, *memory.Store, *fakeSender) {
	t.Helper()
	store := memory.NewStore(func() time.Time { return time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC) })
	sender := &fakeSender{}
	return NewService(store.DeviceTokens(), store.Shops(), sender, zap.NewNop()), store, sender
}

func shopPtr(id uint) *uint { return &id }

func TestRegisterMovesTokenToCaller(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	alice := usecase.Actor{UserID: 1, Role: models.RoleMaster}
	bob := usecase.Actor{UserID: 2, Role: models.RoleManager}

	first, err := svc.Register(ctx, alice, RegisterInput{Token: " tok-1 ", Platform: "IOS"})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", first.Token)
	assert.Equal(t, "ios", first.Platform)

	second, err := svc.Register(ctx, bob, RegisterInput{Token: "tok-1", Platform: "android"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	mine, err := svc.Mine(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, mine)

	mine, err = svc.Mine(ctx, bob)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "android", mine[0].Platform)
}

func TestOnlyOwnerOrAdminMayModify(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	owner := usecase.Actor{UserID: 1, Role: models.RoleManager}
	other := usecase.Actor{UserID: 2, Role: models.RoleManager}
	admin := usecase.Actor{UserID: 3, Role: models.RoleAdmin}

	tok, err := svc.Register(ctx, owner, RegisterInput{Token: "tok", Platform: "web"})
	require.NoError(t, err)

	inactive := false
	_, err = svc.Update(ctx, other, tok.ID, UpdateInput{IsActive: &inactive})
	assert.True(t, httperr.Is(err, http.StatusForbidden, "DEVICE_TOKEN_FORBIDDEN"))

	updated, err := svc.Update(ctx, admin, tok.ID, UpdateInput{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	assert.True(t, httperr.Is(svc.Delete(ctx, other, tok.ID), http.StatusForbidden, "DEVICE_TOKEN_FORBIDDEN"))
	require.NoError(t, svc.Delete(ctx, owner, tok.ID))
	assert.True(t, httperr.Is(svc.Delete(ctx, owner, tok.ID), http.StatusNotFound, "DEVICE_TOKEN_NOT_FOUND"))
}

func TestSendToSingleTokenReturnsMessageID(t *testing.T) {
	svc, store, sender := newService(t)
	ctx := context.Background()
	store.Shops().AddMember(10, 1)

	_, err := svc.Register(ctx, usecase.Actor{UserID: 1}, RegisterInput{Token: "tok-a", Platform: "ios", ShopID: shopPtr(10)})
	require.NoError(t, err)

	user := uint(1)
	res, err := svc.Send(ctx, SendInput{ShopID: 10, UserID: &user, Title: "hi", Body: "there"})
	require.NoError(t, err)

	assert.Equal(t, "msg-1", res.MessageID)
	assert.Equal(t, 1, res.Success)
	assert.Equal(t, []string{"tok-a"}, sender.sent)
}

func TestSendToShopUsesMulticast(t *testing.T) {
	svc, store, sender := newService(t)
	ctx := context.Background()
	sender.failures = 1
	for _, id := range []uint{1, 2, 3} {
		store.Shops().AddMember(10, id)
	}
	store.Shops().AddMember(11, 9)

	for i, tok := range []string{"tok-a", "tok-b", "tok-c"} {
		_, err := svc.Register(ctx, usecase.Actor{UserID: uint(i + 1)}, RegisterInput{Token: tok, Platform: "android", ShopID: shopPtr(10)})
		require.NoError(t, err)
	}
	_, err := svc.Register(ctx, usecase.Actor{UserID: 9}, RegisterInput{Token: "elsewhere", Platform: "android", ShopID: shopPtr(11)})
	require.NoError(t, err)

	res, err := svc.Send(ctx, SendInput{ShopID: 10, Title: "closing early"})
	require.NoError(t, err)

	assert.Empty(t, res.MessageID)
	assert.Equal(t, 2, res.Success)
	assert.Equal(t, 1, res.Failure)
	require.Len(t, sender.multicast, 1)
	assert.ElementsMatch(t, []string{"tok-a", "tok-b", "tok-c"}, sender.multicast[0])
}

func TestRegisterRequiresShopMembership(t *testing.T) {
	svc, store, sender := newService(t)
	ctx := context.Background()
	store.Shops().AddMember(10, 1)
	store.Shops().AddMember(10, 2)

	_, err := svc.Register(ctx, usecase.Actor{UserID: 1}, RegisterInput{Token: "owner-tok", Platform: "ios", ShopID: shopPtr(10)})
	require.NoError(t, err)
	_, err = svc.Register(ctx, usecase.Actor{UserID: 2}, RegisterInput{Token: "staff-tok", Platform: "ios", ShopID: shopPtr(10)})
	require.NoError(t, err)

	_, err = svc.Register(ctx, usecase.Actor{UserID: 99}, RegisterInput{Token: "outsider-tok", Platform: "ios", ShopID: shopPtr(10)})
	assert.True(t, httperr.Is(err, http.StatusNotFound, "DEVICE_TOKEN_NOT_FOUND"))

	res, err := svc.Send(ctx, SendInput{ShopID: 10, Title: "hello"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Success)
	require.Len(t, sender.multicast, 1)
	assert.ElementsMatch(t, []string{"owner-tok", "staff-tok"}, sender.multicast[0])
}

func TestShopSendSkipsTokensOfFormerMembers(t *testing.T) {
	svc, store, sender := newService(t)
	ctx := context.Background()
	store.Shops().AddMember(10, 1)

	_, err := svc.Register(ctx, usecase.Actor{UserID: 1}, RegisterInput{Token: "member-tok", Platform: "ios", ShopID: shopPtr(10)})
	require.NoError(t, err)

	// a token saved against the shop by a user who is not in shop_users
	uid, sid := uint(42), uint(10)
	require.NoError(t, store.DeviceTokens().Upsert(ctx, &models.DevicePushToken{
		UserID: &uid, ShopID: &sid, Token: "stale-tok", Platform: "android", IsActive: true,
	}))

	res, err := svc.Send(ctx, SendInput{ShopID: 10, Title: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "msg-1", res.MessageID)
	assert.Equal(t, []string{"member-tok"}, sender.sent)
}

func TestSendErrors(t *testing.T) {
	svc, store, sender := newService(t)
	ctx := context.Background()
	user := uint(1)

	_, err := svc.Send(ctx, SendInput{ShopID: 10, UserID: &user})
	assert.True(t, httperr.Is(err, http.StatusNotFound, "PUSH_NOT_FOUND"))

	store.Shops().AddMember(10, 1)
	_, err = svc.Send(ctx, SendInput{ShopID: 10, UserID: &user})
	assert.True(t, httperr.Is(err, http.StatusNotFound, "PUSH_NOT_FOUND"))

	_, err = svc.Register(ctx, usecase.Actor{UserID: 1}, RegisterInput{Token: "tok", Platform: "ios"})
	require.NoError(t, err)
	sender.fail = errors.New("fcm unavailable")

	_, err = svc.Send(ctx, SendInput{ShopID: 10, UserID: &user})
	assert.True(t, httperr.Is(err, http.StatusInternalServerError, "PUSH_DELIVERY_FAILED"))
}

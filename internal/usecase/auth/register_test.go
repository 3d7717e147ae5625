package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/testutil"
)

func newRegister(t *testing.T) (*Register, *memory.Store, *testutil.Clock, uint) {
	t.Helper()

	clk := testutil.NewClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	store := memory.NewStore(clk.Now)
	ctx := context.Background()

	owner := &models.User{Email: "owner@salon.kr", Name: "Owner", Role: models.RoleMaster}
	require.NoError(t, store.Users().Create(ctx, owner, nil))

	sh := &models.Shop{UserID: owner.ID, Name: "Shop A"}
	require.NoError(t, store.Shops().Create(ctx, sh))

	return NewRegister(store.Users(), store.Shops(), clk.Now, false), store, clk, sh.ID
}

func TestRegisterMasterByDefault(t *testing.T) {
	uc, _, _, _ := newRegister(t)

	u, err := uc.Execute(context.Background(), RegisterInput{
		Email:    " New@Salon.kr ",
		Name:     "New",
		Password: "password1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleMaster, u.Role)
	assert.Equal(t, "new@salon.kr", u.Email)
	assert.NotEqual(t, "password1", u.PasswordHash)
}

func TestRegisterRejectsAdminAndUnknownRoles(t *testing.T) {
	uc, _, _, _ := newRegister(t)

	for _, role := range []string{"ADMIN", "owner"} {
		_, err := uc.Execute(context.Background(), RegisterInput{
			Email: "x@salon.kr", Name: "X", Password: "password1", Role: role,
		})
		assert.True(t, httperr.Is(err, http.StatusBadRequest, "USER_BAD_REQUEST"), role)
	}
}

func TestRegisterManagerInviteRules(t *testing.T) {
	uc, store, clk, shopID := newRegister(t)
	ctx := context.Background()

	expired := &models.ShopInvite{ShopID: shopID, Code: "oldcode1", ExpiredAt: clk.Now().Add(-time.Minute)}
	require.NoError(t, store.Shops().CreateInvite(ctx, expired))
	valid := &models.ShopInvite{ShopID: shopID, Code: "goodcode", ExpiredAt: clk.Now().Add(7 * 24 * time.Hour)}
	require.NoError(t, store.Shops().CreateInvite(ctx, valid))

	base := RegisterInput{Email: "mgr@salon.kr", Name: "Manager", Password: "password1", Role: "MANAGER"}

	cases := []struct {
		name string
		code string
	}{
		{"missing", ""},
		{"unknown", "nope"},
		{"expired", "oldcode1"},
	}
	for _, tc := range cases {
		in := base
		in.InviteCode = tc.code
		_, err := uc.Execute(ctx, in)
		assert.Equal(t, http.StatusBadRequest, httperr.StatusOf(err), tc.name)
	}

	in := base
	in.InviteCode = "goodcode"
	u, err := uc.Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, u.Role)

	m, err := store.Shops().GetMembership(ctx, shopID, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, m.IsPrimaryOwner)

	// deleted shop: its invite no longer admits anyone
	late := &models.ShopInvite{ShopID: shopID, Code: "latecode", ExpiredAt: clk.Now().Add(time.Hour)}
	require.NoError(t, store.Shops().CreateInvite(ctx, late))
	require.NoError(t, store.Shops().Delete(ctx, shopID))

	in = base
	in.Email = "late@salon.kr"
	in.InviteCode = "latecode"
	_, err = uc.Execute(ctx, in)
	assert.True(t, httperr.Is(err, http.StatusBadRequest, "USER_BAD_REQUEST"))

	_, err = store.Users().GetByEmail(ctx, "late@salon.kr")
	assert.Error(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc, _, _, _ := newRegister(t)

	_, err := uc.Execute(context.Background(), RegisterInput{
		Email: "owner@salon.kr", Name: "Again", Password: "password1",
	})
	assert.True(t, httperr.Is(err, http.StatusConflict, "USER_CONFLICT"))
}

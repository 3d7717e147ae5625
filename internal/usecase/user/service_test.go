package user

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/cache"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/security"
	"github.com/BruksfildServices01/salon-scheduler/internal/testutil"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase"
)

var admin = usecase.Actor{UserID: 999, Role: models.RoleAdmin}

func newService(t *testing.T) (*Service, *ProfileCache, *miniredis.Miniredis) {
	t.Helper()
	store := memory.NewStore(nil)
	c, mr := testutil.NewCache(t)
	profiles := NewProfileCache(store.Users(), c, time.Hour)
	return NewService(store.Users(), profiles, zap.NewNop()), profiles, mr
}

func TestCreateRequiresAdmin(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	in := CreateInput{Email: "Staff@Salon.io", Name: "Staff", Password: "secret123", Role: "manager"}

	_, err := svc.Create(ctx, usecase.Actor{UserID: 1, Role: models.RoleMaster}, in)
	assert.True(t, httperr.Is(err, http.StatusForbidden, "USER_FORBIDDEN"))

	u, err := svc.Create(ctx, admin, in)
	require.NoError(t, err)
	assert.Equal(t, "staff@salon.io", u.Email)
	assert.Equal(t, models.RoleManager, u.Role)
	assert.True(t, security.CheckPassword(u.PasswordHash, "secret123"))

	_, err = svc.Create(ctx, admin, in)
	assert.True(t, httperr.Is(err, http.StatusConflict, "USER_CONFLICT"))

	in.Email, in.Role = "other@salon.io", "OWNER"
	_, err = svc.Create(ctx, admin, in)
	assert.True(t, httperr.Is(err, http.StatusBadRequest, "USER_BAD_REQUEST"))
}

func TestUsersOnlyReachThemselves(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	u, err := svc.Create(ctx, admin, CreateInput{Email: "a@salon.io", Name: "A", Password: "secret123", Role: "MANAGER"})
	require.NoError(t, err)
	self := usecase.Actor{UserID: u.ID, Role: models.RoleManager}
	stranger := usecase.Actor{UserID: u.ID + 100, Role: models.RoleMaster}

	_, err = svc.Get(ctx, stranger, u.ID)
	assert.True(t, httperr.Is(err, http.StatusForbidden, "USER_FORBIDDEN"))

	got, err := svc.Get(ctx, self, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)

	role := models.RoleAdmin
	_, err = svc.Update(ctx, self, u.ID, UpdateInput{Role: &role})
	assert.True(t, httperr.Is(err, http.StatusForbidden, "USER_FORBIDDEN"))

	assert.True(t, httperr.Is(svc.Delete(ctx, stranger, u.ID, false), http.StatusForbidden, "USER_FORBIDDEN"))
}

func TestUpdateEvictsProfile(t *testing.T) {
	svc, profiles, mr := newService(t)
	ctx := context.Background()

	u, err := svc.Create(ctx, admin, CreateInput{Email: "a@salon.io", Name: "Before", Password: "secret123", Role: "MANAGER"})
	require.NoError(t, err)

	prof, err := profiles.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Before", prof.Name)
	assert.True(t, mr.Exists(cache.UserKey(u.ID)))
	assert.Equal(t, time.Hour, mr.TTL(cache.UserKey(u.ID)))

	name, password := "After", "newsecret1"
	updated, err := svc.Update(ctx, usecase.Actor{UserID: u.ID, Role: models.RoleManager}, u.ID, UpdateInput{Name: &name, Password: &password})
	require.NoError(t, err)
	assert.True(t, security.CheckPassword(updated.PasswordHash, "newsecret1"))
	assert.False(t, mr.Exists(cache.UserKey(u.ID)))

	prof, err = profiles.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", prof.Name)
}

func TestDeleteHidesUser(t *testing.T) {
	svc, profiles, mr := newService(t)
	ctx := context.Background()

	u, err := svc.Create(ctx, admin, CreateInput{Email: "a@salon.io", Name: "A", Password: "secret123", Role: "MANAGER"})
	require.NoError(t, err)
	_, err = profiles.Get(ctx, u.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, admin, u.ID, false))
	assert.False(t, mr.Exists(cache.UserKey(u.ID)))

	_, err = profiles.Get(ctx, u.ID)
	assert.True(t, httperr.Is(err, http.StatusNotFound, "USER_NOT_FOUND"))
	_, err = svc.Get(ctx, admin, u.ID)
	assert.True(t, httperr.Is(err, http.StatusNotFound, "USER_NOT_FOUND"))

	assert.True(t, httperr.Is(svc.Delete(ctx, admin, u.ID, false), http.StatusNotFound, "USER_NOT_FOUND"))
	require.NoError(t, svc.Delete(ctx, admin, u.ID, true))
}

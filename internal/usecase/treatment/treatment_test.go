package treatment

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/treatment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/testutil"
)

var kst = time.FixedZone("KST", 9*60*60)

type fixture struct {
	store   *memory.Store
	clock   *testutil.Clock
	shopID  uint
	ownerID uint
	contact *models.Phonebook
	detail  models.TreatmentMenuDetail

	create *CreateTreatment
	list   *ListTreatments
	get    *GetTreatment
	update *UpdateTreatment
	remove *DeleteTreatment
	job    *AutoComplete
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	clk := testutil.NewClock(time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC))
	store := memory.NewStore(clk.Now)

	owner := &models.User{Email: "owner@salon.kr", Name: "Owner", Role: models.RoleMaster}
	require.NoError(t, store.Users().Create(ctx, owner, nil))
	sh := &models.Shop{UserID: owner.ID, Name: "Shop A"}
	require.NoError(t, store.Shops().Create(ctx, sh))

	pb := &models.Phonebook{ShopID: sh.ID, Name: "Kim", PhoneNumber: "010-1234-5678"}
	require.NoError(t, store.Phonebooks().Create(ctx, pb))

	menu := &models.TreatmentMenu{
		ShopID:  sh.ID,
		Name:    "Facial",
		Details: []models.TreatmentMenuDetail{{Name: "Basic", DurationMin: 60, BasePrice: 50000}},
	}
	require.NoError(t, store.Menus().CreateMenu(ctx, menu))

	repo := store.Treatments()
	return &fixture{
		store:   store,
		clock:   clk,
		shopID:  sh.ID,
		ownerID: owner.ID,
		contact: pb,
		detail:  menu.Details[0],
		create:  NewCreateTreatment(repo, store.Shops(), audit.Nop{}, clk.Now),
		list:    NewListTreatments(repo, kst),
		get:     NewGetTreatment(repo),
		update:  NewUpdateTreatment(repo, store.Shops(), audit.Nop{}, clk.Now),
		remove:  NewDeleteTreatment(repo, audit.Nop{}),
		job:     NewAutoComplete(repo, clk.Now, zap.NewNop()),
	}
}

func (f *fixture) book(t *testing.T, at time.Time, status string, items ...ItemInput) *View {
	t.Helper()
	if items == nil {
		id := f.detail.ID
		items = []ItemInput{{MenuDetailID: &id}}
	}
	v, err := f.create.Execute(context.Background(), CreateTreatmentInput{
		ShopID:        f.shopID,
		ActorID:       f.ownerID,
		PhonebookID:   f.contact.ID,
		ReservedAt:    at,
		Status:        status,
		PaymentMethod: "CARD",
		Items:         items,
	})
	require.NoError(t, err)
	return v
}

func TestCreateSnapshotsMenuDetail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	v := f.book(t, f.clock.Now(), "")
	assert.Equal(t, string(domain.StatusReserved), v.Status)
	assert.Equal(t, string(domain.PaymentCard), v.PaymentMethod)
	assert.Equal(t, 60, v.TotalDurationMin)
	assert.Equal(t, 50000, v.TotalPrice)
	require.Len(t, v.Items, 1)
	assert.Equal(t, 1, v.Items[0].SessionNo)
	assert.Equal(t, f.ownerID, *v.CreatedUserID)

	// Later menu edits do not touch the booking.
	d := f.detail
	d.BasePrice = 99000
	require.NoError(t, f.store.Menus().UpdateDetail(ctx, &d))

	got, err := f.get.Execute(ctx, f.shopID, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 50000, got.TotalPrice)
	assert.Equal(t, "Kim", got.Phonebook.Name)
}

func TestCreateOverridesAndValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.detail.ID
	price, session := 45000, 2
	v := f.book(t, f.clock.Now(), "", ItemInput{MenuDetailID: &id, BasePrice: &price, SessionNo: &session})
	assert.Equal(t, 45000, v.TotalPrice)
	assert.Equal(t, 60, v.TotalDurationMin)
	assert.Equal(t, 2, v.Items[0].SessionNo)

	in := CreateTreatmentInput{ShopID: f.shopID, ActorID: f.ownerID, PhonebookID: f.contact.ID, ReservedAt: f.clock.Now()}

	bad := in
	bad.Status = "DONE"
	_, err := f.create.Execute(ctx, bad)
	assert.True(t, httperr.Is(err, http.StatusUnprocessableEntity, "TREATMENT_VALIDATION_ERROR"))

	missing := in
	missing.PhonebookID = 999
	_, err = f.create.Execute(ctx, missing)
	assert.True(t, httperr.Is(err, http.StatusNotFound, "PHONEBOOK_NOT_FOUND"))

	unknown := uint(999)
	noDetail := in
	noDetail.Items = []ItemInput{{MenuDetailID: &unknown}}
	_, err = f.create.Execute(ctx, noDetail)
	assert.True(t, httperr.Is(err, http.StatusNotFound, "TREATMENT_MENU_DETAIL_NOT_FOUND"))

	stranger := uint(4242)
	staff := in
	staff.StaffUserID = &stranger
	_, err = f.create.Execute(ctx, staff)
	assert.True(t, httperr.Is(err, http.StatusBadRequest, "TREATMENT_BAD_REQUEST"))
}

func TestStatusTransitionsKeepFinishedAt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	v := f.book(t, f.clock.Now(), "")
	assert.Nil(t, v.FinishedAt)

	completed := "completed"
	got, err := f.update.Execute(ctx, UpdateTreatmentInput{ShopID: f.shopID, ActorID: f.ownerID, ID: v.ID, Status: &completed})
	require.NoError(t, err)
	require.NotNil(t, got.FinishedAt)
	assert.Equal(t, 60, got.TotalDurationMin)

	visited := "VISITED"
	got, err = f.update.Execute(ctx, UpdateTreatmentInput{ShopID: f.shopID, ActorID: f.ownerID, ID: v.ID, Status: &visited})
	require.NoError(t, err)
	assert.Nil(t, got.FinishedAt)

	items := []ItemInput{}
	got, err = f.update.Execute(ctx, UpdateTreatmentInput{ShopID: f.shopID, ActorID: f.ownerID, ID: v.ID, Items: &items})
	require.NoError(t, err)
	assert.Equal(t, 0, got.TotalDurationMin)
}

func TestListFiltersByLocalDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 2025-03-10 23:30 KST and 2025-03-11 00:30 KST.
	f.book(t, time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC), "")
	f.book(t, time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC), "NO_SHOW")

	items, total, err := f.list.Execute(ctx, ListTreatmentsInput{ShopID: f.shopID, StartDate: "2025-03-10", Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, string(domain.StatusReserved), items[0].Status)

	items, total, err = f.list.Execute(ctx, ListTreatmentsInput{
		ShopID: f.shopID, StartDate: "2025-03-11", EndDate: "2025-03-10", SortOrder: "desc", Limit: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, string(domain.StatusNoShow), items[0].Status)

	_, total, err = f.list.Execute(ctx, ListTreatmentsInput{ShopID: f.shopID, Status: "no_show", Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, _, err = f.list.Execute(ctx, ListTreatmentsInput{ShopID: f.shopID, StartDate: "10/03/2025"})
	assert.True(t, httperr.Is(err, http.StatusUnprocessableEntity, "TREATMENT_VALIDATION_ERROR"))
}

func TestDeleteSoftAndHard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.book(t, f.clock.Now(), "")
	b := f.book(t, f.clock.Now(), "")

	require.NoError(t, f.remove.Execute(ctx, f.shopID, f.ownerID, a.ID, false))
	require.NoError(t, f.remove.Execute(ctx, f.shopID, f.ownerID, b.ID, true))

	for _, id := range []uint{a.ID, b.ID} {
		_, err := f.get.Execute(ctx, f.shopID, id)
		assert.True(t, httperr.Is(err, http.StatusNotFound, "TREATMENT_NOT_FOUND"))
	}

	err := f.remove.Execute(ctx, f.shopID, f.ownerID, a.ID, false)
	assert.True(t, httperr.Is(err, http.StatusNotFound, "TREATMENT_NOT_FOUND"))
}

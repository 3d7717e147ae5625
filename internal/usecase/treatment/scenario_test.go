package treatment_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/testutil"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/menu"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/phonebook"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/shop"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/treatment"
)

// A MASTER opens a shop, books a contact for a 60 minute menu detail and the
// completion job closes the booking once it has run past its end.
func TestBookingLifecycle(t *testing.T) {
	ctx := context.Background()
	clk := testutil.NewClock(time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC))
	store := memory.NewStore(clk.Now)
	c, _ := testutil.NewCache(t)
	kst := time.FixedZone("KST", 9*60*60)

	u := &models.User{Email: "u@salon.kr", Name: "U", Role: models.RoleMaster}
	require.NoError(t, store.Users().Create(ctx, u, nil))
	actor := usecase.Actor{UserID: u.ID, Role: u.Role}

	selection := shop.NewSelection(store.Shops(), c, 2*time.Hour)
	shops := shop.NewService(store.Shops(), selection, zap.NewNop())
	contacts := phonebook.NewService(store.Phonebooks(), audit.Nop{})
	menus := menu.NewService(store.Menus())
	create := treatment.NewCreateTreatment(store.Treatments(), store.Shops(), audit.Nop{}, clk.Now)
	list := treatment.NewListTreatments(store.Treatments(), kst)
	get := treatment.NewGetTreatment(store.Treatments())
	job := treatment.NewAutoComplete(store.Treatments(), clk.Now, zap.NewNop())

	// Shop A, selected.
	a, err := shops.Create(ctx, actor, shop.Input{Name: "Shop A"})
	require.NoError(t, err)
	_, err = selection.Select(ctx, u.ID, a.ID)
	require.NoError(t, err)
	current, err := selection.Current(ctx, u.ID)
	require.NoError(t, err)
	shopID := current.ID

	// Contact and menu.
	pb, err := contacts.Create(ctx, actor, shopID, phonebook.CreateInput{Name: "Kim", PhoneNumber: "010-1234-5678"})
	require.NoError(t, err)

	facial, err := menus.Create(ctx, shopID, menu.MenuInput{
		Name:    "Facial",
		Details: []menu.DetailInput{{Name: "Basic", DurationMin: 60, BasePrice: 50000}},
	})
	require.NoError(t, err)

	_, err = menus.Create(ctx, shopID, menu.MenuInput{Name: "Facial"})
	assert.True(t, httperr.Is(err, http.StatusConflict, "TREATMENT_MENU_CONFLICT"))

	// Booking.
	detailID := facial.Details[0].ID
	reservedAt := clk.Now()
	booked, err := create.Execute(ctx, treatment.CreateTreatmentInput{
		ShopID:        shopID,
		ActorID:       u.ID,
		PhonebookID:   pb.ID,
		ReservedAt:    reservedAt,
		Status:        "RESERVED",
		PaymentMethod: "CARD",
		Items:         []treatment.ItemInput{{MenuDetailID: &detailID}},
	})
	require.NoError(t, err)

	items, total, err := list.Execute(ctx, treatment.ListTreatmentsInput{ShopID: shopID, Limit: 20})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, 60, items[0].TotalDurationMin)
	assert.Equal(t, 50000, items[0].TotalPrice)

	// 61 minutes later the job completes it.
	clk.Set(reservedAt.Add(61 * time.Minute))
	res, err := job.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Completed)

	got, err := get.Execute(ctx, shopID, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", got.Status)
	require.NotNil(t, got.FinishedAt)
}

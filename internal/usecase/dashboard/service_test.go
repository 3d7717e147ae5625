package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/statistics"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/testutil"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/statistics"
)

var kst = time.FixedZone("KST", 9*60*60)

// countingRepo counts how often the summary query reaches the store.
type countingRepo struct {
	domain.Repository
	summaryCalls atomic.Int32
}

func (r *countingRepo) StatusPaymentTotals(ctx context.Context, shopID uint, from, to time.Time) ([]domain.StatusPaymentRow, error) {
	r.summaryCalls.Add(1)
	return r.Repository.StatusPaymentTotals(ctx, shopID, from, to)
}

type fixture struct {
	svc   *Service
	repo  *countingRepo
	store *memory.Store
	mr    *miniredis.Miniredis
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clk := testutil.NewClock(time.Date(2025, 3, 10, 3, 0, 0, 0, time.UTC))
	store := memory.NewStore(clk.Now)
	c, mr := testutil.NewCache(t)
	repo := &countingRepo{Repository: store.Statistics()}

	ctx := context.Background()
	pb := &models.Phonebook{ShopID: 1, Name: "Kim", PhoneNumber: "010-1111-2222"}
	require.NoError(t, store.Phonebooks().Create(ctx, pb))
	for _, status := range []string{"COMPLETED", "NO_SHOW", "RESERVED"} {
		require.NoError(t, store.Treatments().Create(ctx, &models.Treatment{
			ShopID:        1,
			PhonebookID:   pb.ID,
			ReservedAt:    clk.Now(),
			Status:        status,
			PaymentMethod: "CARD",
			Items:         []models.TreatmentItem{{BasePrice: 10000, DurationMin: 30, SessionNo: 1}},
		}))
	}

	svc := NewService(statistics.NewEngine(repo), c, 30*time.Minute, kst, clk.Now, zap.NewNop())
	return &fixture{svc: svc, repo: repo, store: store, mr: mr}
}

func TestDashboardDefaultsToToday(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Get(context.Background(), Request{ShopID: 1})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", res.TargetDate)
	assert.Equal(t, int64(3), res.Summary.TargetDate.TotalReservations)
	assert.Equal(t, int64(3), res.Summary.Month.TotalReservations)
	assert.Equal(t, int64(20000), res.Summary.TargetDate.ExpectedSales)
	assert.Equal(t, int64(10000), res.Summary.TargetDate.ActualSales)
	require.Len(t, res.CustomerInsights, 1)
	assert.Equal(t, 33.3, res.CustomerInsights[0].NoShowRate)

	for _, key := range []string{
		cache.DashboardKey(1, FieldSummary, "2025-03-10"),
		cache.DashboardKey(1, FieldSummary, "2025-03"),
		cache.DashboardKey(1, FieldSales, "2025-03-10"),
		cache.DashboardKey(1, FieldSales, "2025-03"),
		cache.DashboardKey(1, FieldStaff, "2025-03-10"),
		cache.DashboardKey(1, FieldStaff, "2025-03"),
		cache.DashboardKey(1, FieldCustomers, "2025-03-10"),
	} {
		assert.True(t, f.mr.Exists(key), key)
		assert.Equal(t, 30*time.Minute, f.mr.TTL(key), key)
	}
}

func TestDashboardCacheIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := Request{ShopID: 1, TargetDate: "2025-03-10"}

	first, err := f.svc.Get(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.repo.summaryCalls.Load())

	// New data is not visible until the cache is bypassed.
	require.NoError(t, f.store.Treatments().Create(ctx, &models.Treatment{
		ShopID: 1, PhonebookID: 1, ReservedAt: time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC),
		Status: "RESERVED", PaymentMethod: "UNPAID",
	}))

	second, err := f.svc.Get(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.repo.summaryCalls.Load())

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
	assert.Equal(t, string(a), string(b))

	forced, err := f.svc.Get(ctx, Request{ShopID: 1, TargetDate: "2025-03-10", ForceRefresh: true})
	require.NoError(t, err)
	assert.Equal(t, int32(4), f.repo.summaryCalls.Load())
	assert.Equal(t, int64(4), forced.Summary.TargetDate.TotalReservations)
}

func TestDashboardRecomputesAfterTTL(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := Request{ShopID: 1, TargetDate: "2025-03-10"}

	_, err := f.svc.Get(ctx, req)
	require.NoError(t, err)

	f.mr.FastForward(31 * time.Minute)
	_, err = f.svc.Get(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int32(4), f.repo.summaryCalls.Load())
}

func TestDashboardRejectsBadDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Get(context.Background(), Request{ShopID: 1, TargetDate: "2025/03/10"})
	assert.True(t, httperr.Is(err, http.StatusUnprocessableEntity, "SUMMARY_VALIDATION_ERROR"))
}

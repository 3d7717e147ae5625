package treatment

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/treatment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase"
)

const domainTag = "TREATMENT"

// View is a booking with its item totals.
type View struct {
	models.Treatment
	TotalDurationMin int `json:"total_duration_min"`
	TotalPrice       int `json:"total_price"`
}

func NewView(t *models.Treatment) View {
	return View{
		Treatment:        *t,
		TotalDurationMin: t.TotalDurationMin(),
		TotalPrice:       t.TotalPrice(),
	}
}

// ItemInput books one menu detail. Price and duration are copied from the detail
// unless overridden.
type ItemInput struct {
	MenuDetailID *uint
	BasePrice    *int
	DurationMin  *int
	SessionNo    *int
}

// MemberFinder checks that a staff user belongs to the shop.
type MemberFinder interface {
	GetMembership(ctx context.Context, shopID, userID uint) (*models.ShopUser, error)
}

func buildItems(ctx context.Context, repo domain.Repository, shopID uint, in []ItemInput) ([]models.TreatmentItem, error) {
	items := make([]models.TreatmentItem, 0, len(in))

	for _, it := range in {
		item := models.TreatmentItem{SessionNo: 1}

		if it.MenuDetailID != nil {
			d, err := repo.GetMenuDetail(ctx, shopID, *it.MenuDetailID)
			if err != nil {
				if usecase.IsNotFound(err) {
					return nil, httperr.NotFound("TREATMENT_MENU_DETAIL", "Menu detail was not found in this shop.")
				}
				return nil, usecase.StoreError(domainTag, err)
			}
			id := d.ID
			item.MenuDetailID = &id
			item.BasePrice = d.BasePrice
			item.DurationMin = d.DurationMin
		}

		if it.BasePrice != nil {
			item.BasePrice = *it.BasePrice
		}
		if it.DurationMin != nil {
			item.DurationMin = *it.DurationMin
		}
		if it.SessionNo != nil {
			item.SessionNo = *it.SessionNo
		}

		if item.BasePrice < 0 || item.DurationMin < 0 || item.SessionNo < 1 {
			return nil, httperr.Validation(domainTag, "Item price, duration and session number are out of range.")
		}
		items = append(items, item)
	}

	return items, nil
}

func parseStatus(v string) (domain.Status, error) {
	s, ok := domain.ParseStatus(v)
	if !ok {
		return "", httperr.Validation(domainTag, "Unknown status.").
			WithHint("One of RESERVED, VISITED, CANCELLED, NO_SHOW, COMPLETED.")
	}
	return s, nil
}

func parsePayment(v string) (domain.PaymentMethod, error) {
	m, ok := domain.ParsePaymentMethod(v)
	if !ok {
		return "", httperr.Validation(domainTag, "Unknown payment method.").
			WithHint("One of CARD, CASH, UNPAID.")
	}
	return m, nil
}

func checkStaff(ctx context.Context, members MemberFinder, shopID uint, staffID *uint) error {
	if staffID == nil {
		return nil
	}
	if _, err := members.GetMembership(ctx, shopID, *staffID); err != nil {
		if usecase.IsNotFound(err) {
			return httperr.BadRequest(domainTag, "Staff user is not a member of this shop.")
		}
		return usecase.StoreError(domainTag, err)
	}
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

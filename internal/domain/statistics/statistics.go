package statistics

import (
	"math"
	"sort"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/treatment"
)

// ===============================
// Grouped rows (store output)
// ===============================

// StatusPaymentRow is one (status, payment method) bucket. TotalPrice is the sum of item
// base prices; Count is the number of distinct bookings.
type StatusPaymentRow struct {
	Status        string
	PaymentMethod string
	Count         int64
	TotalPrice    int64
}

type MenuSalesRow struct {
	MenuDetailID  *uint
	MenuName      string
	DetailName    string
	Status        string
	PaymentMethod string
	Count         int64
	TotalPrice    int64
}

type CustomerHistoryRow struct {
	PhonebookID   uint
	Status        string
	PaymentMethod string
	Count         int64
	TotalPrice    int64
}

type Contact struct {
	PhonebookID uint
	Name        string
	PhoneNumber string
	GroupName   *string
}

type StaffCountRow struct {
	StaffUserID *uint
	StaffName   *string
	Count       int64
}

// ===============================
// Results
// ===============================

type TreatmentSummary struct {
	TotalReservations int64 `json:"total_reservations"`
	Completed         int64 `json:"completed"`
	Reserved          int64 `json:"reserved"`
	Visited           int64 `json:"visited"`
	Canceled          int64 `json:"canceled"`
	NoShow            int64 `json:"no_show"`
	ExpectedSales     int64 `json:"expected_sales"`
	ActualSales       int64 `json:"actual_sales"`
	UnpaidTotal       int64 `json:"unpaid_total"`
}

type MenuSales struct {
	MenuDetailID  *uint  `json:"menu_detail_id"`
	MenuName      string `json:"menu_name"`
	DetailName    string `json:"detail_name"`
	Count         int64  `json:"count"`
	ExpectedPrice int64  `json:"expected_price"`
	ActualPrice   int64  `json:"actual_price"`
}

type CustomerInsight struct {
	PhonebookID       uint    `json:"phonebook_id"`
	Name              string  `json:"name"`
	PhoneNumber       string  `json:"phone_number"`
	GroupName         *string `json:"group_name"`
	TotalReservations int64   `json:"total_reservations"`
	NoShowCount       int64   `json:"no_show_count"`
	NoShowRate        float64 `json:"no_show_rate"`
	UnpaidAmount      int64   `json:"unpaid_amount"`
	PaidAmount        int64   `json:"paid_amount"`
}

type StaffSummary struct {
	StaffUserID *uint  `json:"staff_user_id"`
	StaffName   string `json:"staff_name"`
	Count       int64  `json:"count"`
}

// ===============================
// Folds
// ===============================

func SummarizeTreatments(rows []StatusPaymentRow) TreatmentSummary {
	var s TreatmentSummary

	for _, r := range rows {
		status := treatment.Status(r.Status)
		method := treatment.PaymentMethod(r.PaymentMethod)

		s.TotalReservations += r.Count

		switch status {
		case treatment.StatusCompleted:
			s.Completed += r.Count
		case treatment.StatusReserved:
			s.Reserved += r.Count
		case treatment.StatusVisited:
			s.Visited += r.Count
		case treatment.StatusCancelled:
			s.Canceled += r.Count
		case treatment.StatusNoShow:
			s.NoShow += r.Count
		}

		if treatment.InExpectedSales(status) {
			s.ExpectedSales += r.TotalPrice
		}
		if treatment.IsActualSale(status, method) {
			s.ActualSales += r.TotalPrice
		}
		if treatment.IsUnpaidSale(status, method) {
			s.UnpaidTotal += r.TotalPrice
		}
	}

	return s
}

// FoldMenuSales merges rows per menu detail, ordered by expected price then name.
// Count includes every booked item regardless of status.
func FoldMenuSales(rows []MenuSalesRow) []MenuSales {
	type key struct {
		id    uint
		valid bool
	}

	index := map[key]int{}
	out := make([]MenuSales, 0)

	for _, r := range rows {
		k := key{}
		if r.MenuDetailID != nil {
			k = key{id: *r.MenuDetailID, valid: true}
		}

		i, ok := index[k]
		if !ok {
			out = append(out, MenuSales{
				MenuDetailID: r.MenuDetailID,
				MenuName:     r.MenuName,
				DetailName:   r.DetailName,
			})
			i = len(out) - 1
			index[k] = i
		}

		status := treatment.Status(r.Status)
		method := treatment.PaymentMethod(r.PaymentMethod)

		out[i].Count += r.Count
		if treatment.InExpectedSales(status) {
			out[i].ExpectedPrice += r.TotalPrice
		}
		if treatment.IsActualSale(status, method) {
			out[i].ActualPrice += r.TotalPrice
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].ExpectedPrice != out[b].ExpectedPrice {
			return out[a].ExpectedPrice > out[b].ExpectedPrice
		}
		return out[a].DetailName < out[b].DetailName
	})

	return out
}

// NoShowRate is a percentage rounded to one decimal; zero when there is no history.
func NoShowRate(noShow, total int64) float64 {
	if total <= 0 {
		return 0
	}
	rate := float64(noShow) / float64(total) * 100
	return math.Round(rate*10) / 10
}

// FoldCustomerInsights combines the contacts seen in a window with their full history.
// Output follows the order of contacts.
func FoldCustomerInsights(contacts []Contact, history []CustomerHistoryRow) []CustomerInsight {
	byID := make(map[uint]int, len(contacts))
	out := make([]CustomerInsight, 0, len(contacts))

	for _, c := range contacts {
		if _, dup := byID[c.PhonebookID]; dup {
			continue
		}
		out = append(out, CustomerInsight{
			PhonebookID: c.PhonebookID,
			Name:        c.Name,
			PhoneNumber: c.PhoneNumber,
			GroupName:   c.GroupName,
		})
		byID[c.PhonebookID] = len(out) - 1
	}

	for _, h := range history {
		i, ok := byID[h.PhonebookID]
		if !ok {
			continue
		}
		ci := &out[i]
		status := treatment.Status(h.Status)
		method := treatment.PaymentMethod(h.PaymentMethod)

		ci.TotalReservations += h.Count
		if status == treatment.StatusNoShow {
			ci.NoShowCount += h.Count
		}
		if treatment.IsUnpaidSale(status, method) {
			ci.UnpaidAmount += h.TotalPrice
		}
		if treatment.IsActualSale(status, method) {
			ci.PaidAmount += h.TotalPrice
		}
	}

	for i := range out {
		out[i].NoShowRate = NoShowRate(out[i].NoShowCount, out[i].TotalReservations)
	}

	return out
}

func FoldStaff(rows []StaffCountRow) []StaffSummary {
	out := make([]StaffSummary, 0, len(rows))
	for _, r := range rows {
		name := ""
		if r.StaffName != nil {
			name = *r.StaffName
		}
		out = append(out, StaffSummary{
			StaffUserID: r.StaffUserID,
			StaffName:   name,
			Count:       r.Count,
		})
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Count != out[b].Count {
			return out[a].Count > out[b].Count
		}
		return out[a].StaffName < out[b].StaffName
	})
	return out
}

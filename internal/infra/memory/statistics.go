package memory

import (
	"context"
	"sort"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/statistics"
)

// Statistics evaluates the grouped queries over the in-memory rows.
type Statistics struct{ s *Store }

var _ statistics.Repository = (*Statistics)(nil)

func inRange(at, from, to time.Time) bool {
	return !at.Before(from) && at.Before(to)
}

func (r *Statistics) StatusPaymentTotals(_ context.Context, shopID uint, from, to time.Time) ([]statistics.StatusPaymentRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	type key struct{ status, method string }
	acc := map[key]*statistics.StatusPaymentRow{}
	var order []key

	for _, id := range sortedKeys(r.s.treatments) {
		t := r.s.treatments[id]
		if t.ShopID != shopID || t.IsDeleted() || !inRange(t.ReservedAt, from, to) {
			continue
		}
		k := key{t.Status, t.PaymentMethod}
		row, ok := acc[k]
		if !ok {
			row = &statistics.StatusPaymentRow{Status: t.Status, PaymentMethod: t.PaymentMethod}
			acc[k] = row
			order = append(order, k)
		}
		row.Count++
		row.TotalPrice += int64(t.TotalPrice())
	}

	out := make([]statistics.StatusPaymentRow, 0, len(order))
	for _, k := range order {
		out = append(out, *acc[k])
	}
	return out, nil
}

func (r *Statistics) MenuSalesTotals(_ context.Context, shopID uint, from, to time.Time) ([]statistics.MenuSalesRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	type key struct {
		detail         uint
		status, method string
	}
	acc := map[key]*statistics.MenuSalesRow{}
	var order []key

	for _, id := range sortedKeys(r.s.treatments) {
		t := r.s.treatments[id]
		if t.ShopID != shopID || t.IsDeleted() || !inRange(t.ReservedAt, from, to) {
			continue
		}
		for _, it := range t.Items {
			k := key{status: t.Status, method: t.PaymentMethod}
			if it.MenuDetailID != nil {
				k.detail = *it.MenuDetailID
			}
			row, ok := acc[k]
			if !ok {
				row = &statistics.MenuSalesRow{
					MenuDetailID:  it.MenuDetailID,
					Status:        t.Status,
					PaymentMethod: t.PaymentMethod,
				}
				if d, ok := r.s.details[k.detail]; ok {
					row.DetailName = d.Name
					if m, ok := r.s.menus[d.MenuID]; ok {
						row.MenuName = m.Name
					}
				}
				acc[k] = row
				order = append(order, k)
			}
			row.Count++
			row.TotalPrice += int64(it.BasePrice)
		}
	}

	out := make([]statistics.MenuSalesRow, 0, len(order))
	for _, k := range order {
		out = append(out, *acc[k])
	}
	return out, nil
}

func (r *Statistics) CustomersInRange(_ context.Context, shopID uint, from, to time.Time) ([]statistics.Contact, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	seen := map[uint]bool{}
	out := []statistics.Contact{}
	for _, t := range r.s.treatments {
		if t.ShopID != shopID || t.IsDeleted() || !inRange(t.ReservedAt, from, to) || seen[t.PhonebookID] {
			continue
		}
		p, ok := r.s.phonebooks[t.PhonebookID]
		if !ok {
			continue
		}
		seen[p.ID] = true
		out = append(out, statistics.Contact{
			PhonebookID: p.ID,
			Name:        p.Name,
			PhoneNumber: p.PhoneNumber,
			GroupName:   p.GroupName,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].PhonebookID < out[j].PhonebookID
	})
	return out, nil
}

func (r *Statistics) CustomerHistory(_ context.Context, shopID uint, phonebookIDs []uint) ([]statistics.CustomerHistoryRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	wanted := make(map[uint]bool, len(phonebookIDs))
	for _, id := range phonebookIDs {
		wanted[id] = true
	}

	type key struct {
		phonebook      uint
		status, method string
	}
	acc := map[key]*statistics.CustomerHistoryRow{}
	var order []key

	for _, id := range sortedKeys(r.s.treatments) {
		t := r.s.treatments[id]
		if t.ShopID != shopID || t.IsDeleted() || !wanted[t.PhonebookID] {
			continue
		}
		k := key{t.PhonebookID, t.Status, t.PaymentMethod}
		row, ok := acc[k]
		if !ok {
			row = &statistics.CustomerHistoryRow{
				PhonebookID:   t.PhonebookID,
				Status:        t.Status,
				PaymentMethod: t.PaymentMethod,
			}
			acc[k] = row
			order = append(order, k)
		}
		row.Count++
		row.TotalPrice += int64(t.TotalPrice())
	}

	out := make([]statistics.CustomerHistoryRow, 0, len(order))
	for _, k := range order {
		out = append(out, *acc[k])
	}
	return out, nil
}

func (r *Statistics) StaffCounts(_ context.Context, shopID uint, from, to time.Time) ([]statistics.StaffCountRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	counts := map[uint]int64{}
	var unassigned int64
	for _, t := range r.s.treatments {
		if t.ShopID != shopID || t.IsDeleted() || !inRange(t.ReservedAt, from, to) {
			continue
		}
		if t.StaffUserID == nil {
			unassigned++
			continue
		}
		counts[*t.StaffUserID]++
	}

	out := []statistics.StaffCountRow{}
	for _, id := range sortedKeys(counts) {
		staff := id
		row := statistics.StaffCountRow{StaffUserID: &staff, Count: counts[id]}
		if u, ok := r.s.users[id]; ok {
			name := u.Name
			row.StaffName = &name
		}
		out = append(out, row)
	}
	if unassigned > 0 {
		out = append(out, statistics.StaffCountRow{Count: unassigned})
	}
	return out, nil
}

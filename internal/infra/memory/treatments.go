package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/treatment"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Treatments struct{ s *Store }

var _ treatment.Repository = (*Treatments)(nil)

func (r *Treatments) GetPhonebook(_ context.Context, shopID, phonebookID uint) (*models.Phonebook, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.phonebooks[phonebookID]
	if !ok || p.ShopID != shopID || p.IsDeleted() {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *Treatments) GetMenuDetail(_ context.Context, shopID, detailID uint) (*models.TreatmentMenuDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d, ok := r.s.details[detailID]
	if !ok || d.IsDeleted() {
		return nil, repository.ErrNotFound
	}
	m, ok := r.s.menus[d.MenuID]
	if !ok || m.ShopID != shopID || m.IsDeleted() {
		return nil, repository.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *Treatments) store(t *models.Treatment) {
	cp := *t
	cp.Items = append([]models.TreatmentItem(nil), t.Items...)
	cp.Phonebook = models.Phonebook{}
	r.s.treatments[t.ID] = &cp
}

// hydrate copies t and attaches its phonebook, deleted or not.
func (r *Treatments) hydrate(t *models.Treatment) models.Treatment {
	cp := *t
	cp.Items = append([]models.TreatmentItem{}, t.Items...)
	if p, ok := r.s.phonebooks[t.PhonebookID]; ok {
		cp.Phonebook = *p
	}
	return cp
}

func (r *Treatments) Create(_ context.Context, t *models.Treatment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.stamp()
	t.ID = r.s.nextID()
	t.CreatedAt, t.UpdatedAt = now, now
	for i := range t.Items {
		t.Items[i].ID = r.s.nextID()
		t.Items[i].TreatmentID = t.ID
		t.Items[i].CreatedAt = now
	}
	r.store(t)
	return nil
}

func (r *Treatments) Get(_ context.Context, shopID, id uint) (*models.Treatment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.treatments[id]
	if !ok || t.ShopID != shopID || t.IsDeleted() {
		return nil, repository.ErrNotFound
	}
	out := r.hydrate(t)
	return &out, nil
}

func (r *Treatments) matches(t *models.Treatment, f treatment.ListFilter) bool {
	if t.ShopID != f.ShopID || t.IsDeleted() {
		return false
	}
	if f.From != nil && t.ReservedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && !t.ReservedAt.Before(*f.To) {
		return false
	}
	if f.Status != nil && t.Status != string(*f.Status) {
		return false
	}
	if f.StaffUserID != nil && (t.StaffUserID == nil || *t.StaffUserID != *f.StaffUserID) {
		return false
	}

	s := strings.TrimSpace(f.Search)
	if s == "" {
		return true
	}
	p, ok := r.s.phonebooks[t.PhonebookID]
	if !ok {
		return false
	}
	low := strings.ToLower(s)
	memo := ""
	if t.Memo != nil {
		memo = strings.ToLower(*t.Memo)
	}
	return strings.Contains(strings.ToLower(p.Name), low) ||
		strings.Contains(p.PhoneNumber, s) ||
		strings.Contains(memo, low)
}

// compareBy orders two bookings on the given column, falling back to id.
func compareBy(a, b models.Treatment, by string) int {
	switch by {
	case "created_at":
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
	case "updated_at":
		if c := a.UpdatedAt.Compare(b.UpdatedAt); c != 0 {
			return c
		}
	case "status":
		if c := strings.Compare(a.Status, b.Status); c != 0 {
			return c
		}
	default:
		if c := a.ReservedAt.Compare(b.ReservedAt); c != 0 {
			return c
		}
	}
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	}
	return 0
}

func (r *Treatments) List(_ context.Context, f treatment.ListFilter) ([]models.Treatment, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []models.Treatment
	for _, t := range r.s.treatments {
		if r.matches(t, f) {
			out = append(out, r.hydrate(t))
		}
	}

	sort.Slice(out, func(i, j int) bool {
		c := compareBy(out[i], out[j], f.SortBy)
		if f.SortDesc {
			return c > 0
		}
		return c < 0
	})

	return page(out, f.Offset, f.Limit), int64(len(out)), nil
}

func (r *Treatments) Update(_ context.Context, t *models.Treatment, replaceItems bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.treatments[t.ID]
	if !ok || cur.IsDeleted() {
		return repository.ErrNotFound
	}

	now := r.s.stamp()
	t.UpdatedAt = now
	if replaceItems {
		for i := range t.Items {
			t.Items[i].ID = r.s.nextID()
			t.Items[i].TreatmentID = t.ID
			t.Items[i].CreatedAt = now
		}
	} else {
		t.Items = append([]models.TreatmentItem(nil), cur.Items...)
	}
	r.store(t)
	return nil
}

func (r *Treatments) Delete(_ context.Context, shopID, id uint, hard bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.treatments[id]
	if !ok || t.ShopID != shopID {
		return repository.ErrNotFound
	}
	if hard {
		delete(r.s.treatments, id)
		return nil
	}
	if t.IsDeleted() {
		return repository.ErrNotFound
	}
	t.MarkDeleted(r.s.stamp())
	return nil
}

func (r *Treatments) ListUnfinished(_ context.Context) ([]treatment.Candidate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []treatment.Candidate
	for _, id := range sortedKeys(r.s.treatments) {
		t := r.s.treatments[id]
		if t.IsDeleted() || t.FinishedAt != nil || !treatment.IsUnfinished(treatment.Status(t.Status)) {
			continue
		}
		out = append(out, treatment.Candidate{
			ID:               t.ID,
			ReservedAt:       t.ReservedAt,
			Status:           t.Status,
			TotalDurationMin: t.TotalDurationMin(),
		})
	}
	return out, nil
}

func (r *Treatments) CompleteMany(_ context.Context, ids []uint, finishedAt time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, id := range ids {
		t, ok := r.s.treatments[id]
		if !ok || t.IsDeleted() || t.FinishedAt != nil || !treatment.IsUnfinished(treatment.Status(t.Status)) {
			continue
		}
		at := finishedAt
		t.Status = string(treatment.StatusCompleted)
		t.FinishedAt = &at
		t.UpdatedAt = r.s.stamp()
		n++
	}
	return n, nil
}

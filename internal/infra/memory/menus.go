package memory

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/menu"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Menus struct{ s *Store }

var _ menu.Repository = (*Menus)(nil)

func (r *Menus) nameTaken(shopID uint, name string, except uint) bool {
	for _, m := range r.s.menus {
		if m.ShopID == shopID && m.Name == name && m.ID != except && !m.IsDeleted() {
			return true
		}
	}
	return false
}

func (r *Menus) liveDetails(menuID uint) []models.TreatmentMenuDetail {
	out := []models.TreatmentMenuDetail{}
	for _, id := range sortedKeys(r.s.details) {
		d := r.s.details[id]
		if d.MenuID == menuID && !d.IsDeleted() {
			out = append(out, *d)
		}
	}
	return out
}

func (r *Menus) withDetails(m *models.TreatmentMenu) models.TreatmentMenu {
	cp := *m
	cp.Details = r.liveDetails(m.ID)
	return cp
}

func (r *Menus) ListMenus(_ context.Context, shopID uint, search string) ([]models.TreatmentMenu, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	s := strings.ToLower(strings.TrimSpace(search))

	var out []models.TreatmentMenu
	for _, id := range sortedKeys(r.s.menus) {
		m := r.s.menus[id]
		if m.ShopID != shopID || m.IsDeleted() {
			continue
		}
		full := r.withDetails(m)
		if s != "" && !menuMatches(full, s) {
			continue
		}
		out = append(out, full)
	}
	return out, nil
}

func menuMatches(m models.TreatmentMenu, s string) bool {
	if strings.Contains(strings.ToLower(m.Name), s) {
		return true
	}
	for _, d := range m.Details {
		if strings.Contains(strings.ToLower(d.Name), s) {
			return true
		}
	}
	return false
}

func (r *Menus) GetMenu(_ context.Context, shopID, id uint) (*models.TreatmentMenu, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.menus[id]
	if !ok || m.ShopID != shopID || m.IsDeleted() {
		return nil, repository.ErrNotFound
	}
	full := r.withDetails(m)
	return &full, nil
}

func (r *Menus) CreateMenu(_ context.Context, m *models.TreatmentMenu) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.nameTaken(m.ShopID, m.Name, 0) {
		return repository.ErrDuplicate
	}

	now := r.s.stamp()
	m.ID = r.s.nextID()
	m.CreatedAt, m.UpdatedAt = now, now

	for i := range m.Details {
		d := &m.Details[i]
		d.ID = r.s.nextID()
		d.MenuID = m.ID
		d.CreatedAt, d.UpdatedAt = now, now
		cp := *d
		r.s.details[d.ID] = &cp
	}

	cp := *m
	cp.Details = nil
	r.s.menus[m.ID] = &cp
	return nil
}

func (r *Menus) UpdateMenu(_ context.Context, m *models.TreatmentMenu) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.menus[m.ID]; !ok {
		return repository.ErrNotFound
	}
	if r.nameTaken(m.ShopID, m.Name, m.ID) {
		return repository.ErrDuplicate
	}
	m.UpdatedAt = r.s.stamp()
	cp := *m
	cp.Details = nil
	r.s.menus[m.ID] = &cp
	return nil
}

func (r *Menus) DeleteMenu(_ context.Context, shopID, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.menus[id]
	if !ok || m.ShopID != shopID || m.IsDeleted() {
		return repository.ErrNotFound
	}

	now := r.s.stamp()
	m.MarkDeleted(now)
	for _, d := range r.s.details {
		if d.MenuID == id && !d.IsDeleted() {
			d.MarkDeleted(now)
		}
	}
	return nil
}

func (r *Menus) ListDetails(_ context.Context, menuID uint) ([]models.TreatmentMenuDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.liveDetails(menuID), nil
}

func (r *Menus) GetDetail(_ context.Context, menuID, detailID uint) (*models.TreatmentMenuDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d, ok := r.s.details[detailID]
	if !ok || d.MenuID != menuID || d.IsDeleted() {
		return nil, repository.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *Menus) CreateDetail(_ context.Context, d *models.TreatmentMenuDetail) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.stamp()
	d.ID = r.s.nextID()
	d.CreatedAt, d.UpdatedAt = now, now
	cp := *d
	r.s.details[d.ID] = &cp
	return nil
}

func (r *Menus) UpdateDetail(_ context.Context, d *models.TreatmentMenuDetail) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.details[d.ID]; !ok {
		return repository.ErrNotFound
	}
	d.UpdatedAt = r.s.stamp()
	cp := *d
	r.s.details[d.ID] = &cp
	return nil
}

func (r *Menus) DeleteDetail(_ context.Context, menuID, detailID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d, ok := r.s.details[detailID]
	if !ok || d.MenuID != menuID || d.IsDeleted() {
		return repository.ErrNotFound
	}
	d.MarkDeleted(r.s.stamp())
	return nil
}

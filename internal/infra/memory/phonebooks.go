package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/phonebook"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Phonebooks struct{ s *Store }

var _ phonebook.Repository = (*Phonebooks)(nil)

func (r *Phonebooks) numberTaken(shopID uint, number string, except uint) bool {
	for _, p := range r.s.phonebooks {
		if p.ShopID == shopID && p.PhoneNumber == number && p.ID != except && !p.IsDeleted() {
			return true
		}
	}
	return false
}

func (r *Phonebooks) Create(_ context.Context, p *models.Phonebook) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.numberTaken(p.ShopID, p.PhoneNumber, 0) {
		return repository.ErrDuplicate
	}

	now := r.s.stamp()
	p.ID = r.s.nextID()
	p.CreatedAt, p.UpdatedAt = now, now
	cp := *p
	r.s.phonebooks[p.ID] = &cp
	return nil
}

func (r *Phonebooks) get(shopID, id uint, includeDeleted bool) (*models.Phonebook, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.phonebooks[id]
	if !ok || p.ShopID != shopID || (!includeDeleted && p.IsDeleted()) {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *Phonebooks) Get(_ context.Context, shopID, id uint) (*models.Phonebook, error) {
	return r.get(shopID, id, false)
}

func (r *Phonebooks) GetIncludingDeleted(_ context.Context, shopID, id uint) (*models.Phonebook, error) {
	return r.get(shopID, id, true)
}

func matchesPhonebook(p *models.Phonebook, search string) bool {
	s := strings.ToLower(search)
	digits := strings.ReplaceAll(search, "-", "")
	memo := ""
	if p.Memo != nil {
		memo = strings.ToLower(*p.Memo)
	}
	return strings.Contains(strings.ToLower(p.Name), s) ||
		strings.Contains(p.PhoneNumber, search) ||
		strings.Contains(strings.ReplaceAll(p.PhoneNumber, "-", ""), digits) ||
		strings.Contains(memo, s)
}

func (r *Phonebooks) List(_ context.Context, f phonebook.ListFilter) ([]models.Phonebook, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	search := strings.TrimSpace(f.Search)

	var out []models.Phonebook
	for _, p := range r.s.phonebooks {
		if p.ShopID != f.ShopID || p.IsDeleted() {
			continue
		}
		if search != "" && !matchesPhonebook(p, search) {
			continue
		}
		if f.GroupName != nil {
			if *f.GroupName == "" && p.GroupName != nil {
				continue
			}
			if *f.GroupName != "" && (p.GroupName == nil || *p.GroupName != *f.GroupName) {
				continue
			}
		}
		out = append(out, *p)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return page(out, f.Offset, f.Limit), int64(len(out)), nil
}

func (r *Phonebooks) Groups(_ context.Context, shopID uint) ([]phonebook.GroupCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	counts := map[string]int64{}
	var ungrouped int64
	for _, p := range r.s.phonebooks {
		if p.ShopID != shopID || p.IsDeleted() {
			continue
		}
		if p.GroupName == nil {
			ungrouped++
			continue
		}
		counts[*p.GroupName]++
	}

	names := make([]string, 0, len(counts))
	for n := range counts {
		names = append(names, n)
	}
	sort.Strings(names)

	out := make([]phonebook.GroupCount, 0, len(names)+1)
	for _, n := range names {
		name := n
		out = append(out, phonebook.GroupCount{GroupName: &name, Count: counts[n]})
	}
	if ungrouped > 0 {
		out = append(out, phonebook.GroupCount{Count: ungrouped})
	}
	return out, nil
}

func (r *Phonebooks) Update(_ context.Context, p *models.Phonebook) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.phonebooks[p.ID]; !ok {
		return repository.ErrNotFound
	}
	if !p.IsDeleted() && r.numberTaken(p.ShopID, p.PhoneNumber, p.ID) {
		return repository.ErrDuplicate
	}
	p.UpdatedAt = r.s.stamp()
	cp := *p
	r.s.phonebooks[p.ID] = &cp
	return nil
}

func (r *Phonebooks) Delete(_ context.Context, shopID, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.phonebooks[id]
	if !ok || p.ShopID != shopID || p.IsDeleted() {
		return repository.ErrNotFound
	}
	p.MarkDeleted(r.s.stamp())
	return nil
}

func (r *Phonebooks) Restore(_ context.Context, shopID, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.phonebooks[id]
	if !ok || p.ShopID != shopID || !p.IsDeleted() {
		return repository.ErrNotFound
	}
	if r.numberTaken(p.ShopID, p.PhoneNumber, p.ID) {
		return repository.ErrDuplicate
	}
	p.Restore()
	return nil
}

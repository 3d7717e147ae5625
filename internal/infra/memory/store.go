// Package memory is an in-process implementation of the repository interfaces.
// It mirrors the soft-delete and uniqueness rules of the SQL schema and backs the
// use case and scenario tests.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Store struct {
	mu  sync.Mutex
	seq uint
	now func() time.Time

	users      map[uint]*models.User
	shops      map[uint]*models.Shop
	members    []models.ShopUser
	invites    map[uint]*models.ShopInvite
	phonebooks map[uint]*models.Phonebook
	menus      map[uint]*models.TreatmentMenu
	details    map[uint]*models.TreatmentMenuDetail
	treatments map[uint]*models.Treatment
	tokens     map[uint]*models.DevicePushToken
}

func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		now:        now,
		users:      map[uint]*models.User{},
		shops:      map[uint]*models.Shop{},
		invites:    map[uint]*models.ShopInvite{},
		phonebooks: map[uint]*models.Phonebook{},
		menus:      map[uint]*models.TreatmentMenu{},
		details:    map[uint]*models.TreatmentMenuDetail{},
		treatments: map[uint]*models.Treatment{},
		tokens:     map[uint]*models.DevicePushToken{},
	}
}

func (s *Store) Users() *Users               { return &Users{s} }
func (s *Store) Shops() *Shops               { return &Shops{s} }
func (s *Store) Phonebooks() *Phonebooks     { return &Phonebooks{s} }
func (s *Store) Menus() *Menus               { return &Menus{s} }
func (s *Store) Treatments() *Treatments     { return &Treatments{s} }
func (s *Store) DeviceTokens() *DeviceTokens { return &DeviceTokens{s} }
func (s *Store) Statistics() *Statistics     { return &Statistics{s} }

func (s *Store) nextID() uint {
	s.seq++
	return s.seq
}

func (s *Store) stamp() time.Time {
	return s.now().UTC()
}

// isMember must be called with mu held.
func (s *Store) isMember(shopID, userID uint) bool {
	for _, m := range s.members {
		if m.ShopID == shopID && m.UserID == userID {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[uint]V) []uint {
	keys := make([]uint, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

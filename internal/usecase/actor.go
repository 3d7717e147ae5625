package usecase

import "github.com/BruksfildServices01/salon-scheduler/internal/models"

// Actor is the authenticated caller of a use case.
type Actor struct {
	UserID uint
	Role   string
	Email  string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

func (a Actor) IsMaster() bool {
	return a.Role == models.RoleMaster
}

// CanActOn reports whether the actor may read or modify the given user.
func (a Actor) CanActOn(userID uint) bool {
	return a.IsAdmin() || a.UserID == userID
}

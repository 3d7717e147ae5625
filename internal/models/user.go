package models

import "time"

const (
	RoleAdmin   = "ADMIN"
	RoleMaster  = "MASTER"
	RoleManager = "MANAGER"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email        string `gorm:"size:255;not null" json:"email"`
	Name         string `gorm:"size:100;not null" json:"name"`
	PasswordHash string `gorm:"column:hashed_password;size:255;not null" json:"-"`
	Role         string `gorm:"size:20;not null;default:'MASTER'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	SoftDelete
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleMaster, RoleManager:
		return true
	}
	return false
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// SoftDelete is embedded by every entity that is never physically removed by default.
// gorm adds "deleted_at IS NULL" to every query on these models; Unscoped() lifts it.
type SoftDelete struct {
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (s *SoftDelete) IsDeleted() bool {
	return s.DeletedAt.Valid
}

func (s *SoftDelete) MarkDeleted(now time.Time) {
	s.DeletedAt = gorm.DeletedAt{Time: now, Valid: true}
}

func (s *SoftDelete) Restore() {
	s.DeletedAt = gorm.DeletedAt{}
}

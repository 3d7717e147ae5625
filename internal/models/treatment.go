package models

import "time"

// Treatment is a booking. Timestamps are stored as timestamptz in UTC.
type Treatment struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	ShopID      uint `gorm:"index;not null" json:"shop_id"`
	PhonebookID uint `gorm:"index;not null" json:"phonebook_id"`

	ReservedAt    time.Time  `gorm:"index;not null" json:"reserved_at"`
	Memo          *string    `gorm:"type:text" json:"memo"`
	Status        string     `gorm:"size:20;not null;default:'RESERVED'" json:"status"`
	FinishedAt    *time.Time `json:"finished_at"`
	PaymentMethod string     `gorm:"size:20;not null;default:'UNPAID'" json:"payment_method"`

	StaffUserID   *uint `gorm:"index" json:"staff_user_id"`
	CreatedUserID *uint `json:"created_user_id"`

	Phonebook Phonebook       `gorm:"foreignKey:PhonebookID" json:"phonebook,omitempty"`
	Items     []TreatmentItem `gorm:"foreignKey:TreatmentID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	SoftDelete
}

type TreatmentItem struct {
	ID           uint  `gorm:"primaryKey" json:"id"`
	TreatmentID  uint  `gorm:"index;not null" json:"treatment_id"`
	MenuDetailID *uint `gorm:"index" json:"menu_detail_id"`

	BasePrice   int `gorm:"not null;default:0" json:"base_price"`
	DurationMin int `gorm:"not null;default:0" json:"duration_min"`
	SessionNo   int `gorm:"not null;default:1" json:"session_no"`

	CreatedAt time.Time `json:"created_at"`
}

func (t *Treatment) TotalDurationMin() int {
	total := 0
	for _, it := range t.Items {
		total += it.DurationMin
	}
	return total
}

func (t *Treatment) TotalPrice() int {
	total := 0
	for _, it := range t.Items {
		total += it.BasePrice
	}
	return total
}

package models

import "time"

type Phonebook struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ShopID uint `gorm:"index;not null" json:"shop_id"`

	GroupName   *string `gorm:"size:100" json:"group_name"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	PhoneNumber string  `gorm:"size:20;not null" json:"phone_number"`
	Memo        *string `gorm:"type:text" json:"memo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	SoftDelete
}

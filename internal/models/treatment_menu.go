package models

import "time"

type TreatmentMenu struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	ShopID uint   `gorm:"index;not null" json:"shop_id"`
	Name   string `gorm:"size:100;not null" json:"name"`

	Details []TreatmentMenuDetail `gorm:"foreignKey:MenuID" json:"details"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	SoftDelete
}

type TreatmentMenuDetail struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	MenuID      uint   `gorm:"index;not null" json:"menu_id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	DurationMin int    `gorm:"not null;default:0" json:"duration_min"`
	BasePrice   int    `gorm:"not null;default:0" json:"base_price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	SoftDelete
}

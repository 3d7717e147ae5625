package models

import "time"

type DevicePushToken struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	UserID   *uint   `gorm:"index" json:"user_id"`
	ShopID   *uint   `gorm:"index" json:"shop_id"`
	DeviceID *string `gorm:"size:255" json:"device_id"`
	Token    string  `gorm:"size:512;uniqueIndex;not null" json:"token"`
	Platform string  `gorm:"size:20;not null" json:"platform"`
	IsActive bool    `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "time"

type Shop struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`

	Name           string `gorm:"size:100;not null" json:"name"`
	Address        string `gorm:"size:255" json:"address"`
	PostCode       string `gorm:"size:10" json:"post_code"`
	Phone          string `gorm:"size:20" json:"phone"`
	BusinessRegNum string `gorm:"column:business_reg_num;size:20" json:"business_reg_num"`
	OwnerName      string `gorm:"size:100" json:"owner_name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	SoftDelete
}

// ShopUser links a user to a shop. Unique per (shop, user).
type ShopUser struct {
	ShopID         uint `gorm:"primaryKey" json:"shop_id"`
	UserID         uint `gorm:"primaryKey" json:"user_id"`
	IsPrimaryOwner int  `gorm:"not null;default:0" json:"is_primary_owner"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (ShopUser) TableName() string {
	return "shop_users"
}

type ShopInvite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ShopID    uint      `gorm:"index;not null" json:"shop_id"`
	Code      string    `gorm:"size:32;uniqueIndex;not null" json:"code"`
	ExpiredAt time.Time `json:"expired_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (i *ShopInvite) IsValidAt(now time.Time) bool {
	return now.Before(i.ExpiredAt)
}

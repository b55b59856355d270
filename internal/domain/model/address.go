package model

import "time"

// Shipping address
type Address struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	// recipient
	Name  string `gorm:"type:varchar(255);not null" json:"name"`
	Phone string `gorm:"type:varchar(30);not null" json:"phone"`

	PostalCode string `gorm:"type:varchar(20)" json:"postal_code"`
	Province   string `gorm:"type:varchar(100);not null" json:"province"`
	City       string `gorm:"type:varchar(100);not null" json:"city"`
	// street, building, room
	Detail string `gorm:"type:varchar(255);not null" json:"detail"`

	IsDefault bool `gorm:"not null;default:false" json:"is_default"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// ReceiverInfo is the copy of an Address stored on an order.
type ReceiverInfo struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	PostalCode string `json:"postal_code,omitempty"`
	Province   string `json:"province"`
	City       string `json:"city"`
	Detail     string `json:"detail"`
}

// Snapshot copies the address by value.
func (a Address) Snapshot() ReceiverInfo {
	return ReceiverInfo{
		Name:       a.Name,
		Phone:      a.Phone,
		PostalCode: a.PostalCode,
		Province:   a.Province,
		City:       a.City,
		Detail:     a.Detail,
	}
}

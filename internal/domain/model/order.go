package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus int

const (
	OrderStatusCreated   OrderStatus = 0
	OrderStatusPaid      OrderStatus = 1
	OrderStatusShipped   OrderStatus = 2
	OrderStatusCompleted OrderStatus = 3
	OrderStatusCanceled  OrderStatus = 4
)

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusCreated:
		return "CREATED"
	case OrderStatusPaid:
		return "PAID"
	case OrderStatusShipped:
		return "SHIPPED"
	case OrderStatusCompleted:
		return "COMPLETED"
	case OrderStatusCanceled:
		return "CANCELED"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	return s >= OrderStatusCreated && s <= OrderStatusCanceled
}

type Order struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNo string `gorm:"type:varchar(64);not null;uniqueIndex" json:"order_no"`
	UserID  int64  `gorm:"not null;index:idx_orders_user_created,priority:1" json:"user_id"`

	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Status      OrderStatus     `gorm:"not null;default:0;index" json:"status"`

	// copied from the address at checkout
	ReceiverInfo ReceiverInfo `gorm:"type:text;not null;serializer:json" json:"receiver_info"`

	PaymentTime  *time.Time `json:"payment_time,omitempty"`
	ShippingTime *time.Time `json:"shipping_time,omitempty"`
	CompleteTime *time.Time `json:"complete_time,omitempty"`
	CancelTime   *time.Time `json:"cancel_time,omitempty"`

	CreatedAt time.Time `gorm:"not null;index:idx_orders_user_created,priority:2" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	// loaded separately, never saved through the order row
	Items []OrderItem `gorm:"-" json:"items"`
}

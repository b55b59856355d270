package usecase

import (
	"time"

	"github.com/SteampunkGill/Docker-final-assignment/internal/domain/model"

	"github.com/shopspring/decimal"
)

type OrderItemOutput struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Quantity    int64           `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type OrderOutput struct {
	ID           int64              `json:"id"`
	OrderNo      string             `json:"order_no"`
	UserID       int64              `json:"user_id"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	Status       model.OrderStatus  `json:"status"`
	StatusText   string             `json:"status_text"`
	ReceiverInfo model.ReceiverInfo `json:"receiver_info"`
	PaymentTime  *time.Time         `json:"payment_time,omitempty"`
	CancelTime   *time.Time         `json:"cancel_time,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	Items        []OrderItemOutput  `json:"items"`
}

type OrderListOutput struct {
	Items []OrderOutput `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Size  int           `json:"size"`
}

func toOrderOutput(o model.Order) OrderOutput {
	items := make([]OrderItemOutput, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemOutput{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Price:       it.Price,
			ImageURL:    it.ImageURL,
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal(),
		})
	}

	return OrderOutput{
		ID:           o.ID,
		OrderNo:      o.OrderNo,
		UserID:       o.UserID,
		TotalAmount:  o.TotalAmount,
		Status:       o.Status,
		StatusText:   o.Status.String(),
		ReceiverInfo: o.ReceiverInfo,
		PaymentTime:  o.PaymentTime,
		CancelTime:   o.CancelTime,
		CreatedAt:    o.CreatedAt,
		Items:        items,
	}
}

package usecase

import (
	"context"
	"time"

	"github.com/SteampunkGill/Docker-final-assignment/internal/domain/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type OrderEventType string

const (
	OrderEventCreated  OrderEventType = "order.created"
	OrderEventPaid     OrderEventType = "order.paid"
	OrderEventCanceled OrderEventType = "order.canceled"
)

type OrderEvent struct {
	Type        OrderEventType  `json:"type"`
	OrderNo     string          `json:"order_no"`
	UserID      int64           `json:"user_id"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// OrderEventPublisher is called only after the transaction committed.
type OrderEventPublisher interface {
	Publish(ctx context.Context, ev OrderEvent) error
}

func newOrderEvent(t OrderEventType, o model.Order, at time.Time) OrderEvent {
	return OrderEvent{
		Type:        t,
		OrderNo:     o.OrderNo,
		UserID:      o.UserID,
		Status:      o.Status.String(),
		TotalAmount: o.TotalAmount,
		OccurredAt:  at,
	}
}

// The order is already committed, so a failed publish is only logged.
func publish(ctx context.Context, pub OrderEventPublisher, ev OrderEvent) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, ev); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("event", string(ev.Type)).
			Str("order_no", ev.OrderNo).
			Msg("failed to publish order event")
	}
}

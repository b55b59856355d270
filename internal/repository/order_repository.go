package repository

import (
	"context"
	"time"

	"github.com/SteampunkGill/Docker-final-assignment/internal/domain/model"
)

type OrderListFilter struct {
	UserID int64
	Status *model.OrderStatus
	Page   int
	Size   int
}

type OrderRepository interface {
	// Create returns ErrDuplicateKey when order_no is taken.
	Create(ctx context.Context, order *model.Order) error
	FindByOrderNoForUser(ctx context.Context, orderNo string, userID int64) (model.Order, error)
	ListByUser(ctx context.Context, f OrderListFilter) ([]model.Order, int64, error)

	// TransitionStatus moves the order from one status to another only if it
	// is still in from. ok is false when no row matched.
	TransitionStatus(ctx context.Context, orderID int64, from model.OrderStatus, to model.OrderStatus, at time.Time) (bool, error)
}

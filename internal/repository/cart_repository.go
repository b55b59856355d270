package repository

import (
	"context"

	"github.com/SteampunkGill/Docker-final-assignment/internal/domain/model"
)

type CartLineRepository interface {
	// ListByIDs returns the rows that exist, in no particular order.
	ListByIDs(ctx context.Context, ids []int64) ([]model.CartLine, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.CartLine, error)
	FindByID(ctx context.Context, id int64) (model.CartLine, error)
	FindByUserAndProduct(ctx context.Context, userID int64, productID int64) (model.CartLine, error)

	Create(ctx context.Context, line *model.CartLine) error
	UpdateQuantity(ctx context.Context, id int64, qty int64) error

	// DeleteByIDs removes only rows owned by userID; missing ids are ignored.
	DeleteByIDs(ctx context.Context, userID int64, ids []int64) (int64, error)
}

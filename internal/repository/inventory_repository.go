package repository

import "context"

// InventoryRepository is the stock ledger.
type InventoryRepository interface {
	// DecreaseStockIfEnough subtracts qty in one conditional statement and
	// reports whether the row was updated.
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)
	IncreaseStock(ctx context.Context, productID int64, qty int64) error
	GetStock(ctx context.Context, productID int64) (int64, error)
}

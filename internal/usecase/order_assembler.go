package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/SteampunkGill/Docker-final-assignment/internal/domain/model"
	repo "github.com/SteampunkGill/Docker-final-assignment/internal/repository"

	"github.com/shopspring/decimal"
)

// OrderAssembler decrements stock for each cart line and builds the order
// items with the product data of this instant. It must run inside the
// checkout transaction: a failure leaves earlier decrements to the rollback.
type OrderAssembler struct{}

func (OrderAssembler) Assemble(
	ctx context.Context,
	inventory repo.InventoryRepository,
	products repo.ProductRepository,
	lines []model.CartLine,
) ([]model.OrderItem, decimal.Decimal, error) {
	items := make([]model.OrderItem, 0, len(lines))
	total := decimal.Zero

	for _, l := range lines {
		ok, err := inventory.DecreaseStockIfEnough(ctx, l.ProductID, l.Quantity)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("decrease stock of product %d: %w", l.ProductID, err)
		}
		if !ok {
			return nil, decimal.Zero, stockFailure(ctx, products, l.ProductID)
		}

		p, err := products.FindByID(ctx, l.ProductID)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("load product %d: %w", l.ProductID, err)
		}

		item := model.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Price:       p.Price,
			ImageURL:    p.ImageURL,
			Quantity:    l.Quantity,
		}
		items = append(items, item)
		total = total.Add(item.Subtotal())
	}

	return items, total, nil
}

// A decrement touching no row is either an unknown product or too little stock.
func stockFailure(ctx context.Context, products repo.ProductRepository, productID int64) error {
	p, err := products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return notFoundf("product %d", productID)
	}
	if err != nil {
		return fmt.Errorf("load product %d: %w", productID, err)
	}
	return &InsufficientStockError{ProductID: p.ID, ProductName: p.Name}
}

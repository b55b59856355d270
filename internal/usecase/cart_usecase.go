package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/SteampunkGill/Docker-final-assignment/internal/domain/model"
	repo "github.com/SteampunkGill/Docker-final-assignment/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type CartUsecase struct {
	lines    repo.CartLineRepository
	products repo.ProductRepository
}

func NewCartUsecase(lines repo.CartLineRepository, products repo.ProductRepository) *CartUsecase {
	return &CartUsecase{lines: lines, products: products}
}

// price is the live catalog price, not a snapshot
type CartLineOutput struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url"`
	Quantity  int64           `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type CartOutput struct {
	Items []CartLineOutput `json:"items"`
	Total decimal.Decimal  `json:"total"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

func (u *CartUsecase) ListCart(ctx context.Context, userID int64) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, ErrUnauthorized
	}

	lines, err := u.lines.ListByUserID(ctx, userID)
	if err != nil {
		return CartOutput{}, fmt.Errorf("list cart: %w", err)
	}

	out := CartOutput{Items: make([]CartLineOutput, 0, len(lines)), Total: decimal.Zero}
	for _, l := range lines {
		p, err := u.products.FindByID(ctx, l.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			// product removed from the catalog
			zerolog.Ctx(ctx).Warn().Int64("cart_line_id", l.ID).Int64("product_id", l.ProductID).Msg("cart line without product")
			continue
		}
		if err != nil {
			return CartOutput{}, fmt.Errorf("load product %d: %w", l.ProductID, err)
		}
		item := toCartLineOutput(l, p)
		out.Items = append(out.Items, item)
		out.Total = out.Total.Add(item.Subtotal)
	}
	return out, nil
}

// AddToCart merges into the existing line for the same product.
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) (CartLineOutput, error) {
	if userID <= 0 {
		return CartLineOutput{}, ErrUnauthorized
	}
	if in.ProductID <= 0 {
		return CartLineOutput{}, validationf("invalid product_id")
	}
	if in.Quantity <= 0 {
		return CartLineOutput{}, validationf("quantity must be positive")
	}

	p, err := findProduct(ctx, u.products, in.ProductID)
	if err != nil {
		return CartLineOutput{}, err
	}

	existing, err := u.lines.FindByUserAndProduct(ctx, userID, in.ProductID)
	switch {
	case err == nil:
		// compare before adding so a huge quantity cannot wrap around
		if in.Quantity > p.Stock-existing.Quantity {
			return CartLineOutput{}, &InsufficientStockError{ProductID: p.ID, ProductName: p.Name}
		}
		qty := existing.Quantity + in.Quantity
		if err := u.lines.UpdateQuantity(ctx, existing.ID, qty); err != nil {
			return CartLineOutput{}, fmt.Errorf("update cart line: %w", err)
		}
		existing.Quantity = qty
		return toCartLineOutput(existing, p), nil

	case errors.Is(err, repo.ErrNotFound):
		if p.Stock < in.Quantity {
			return CartLineOutput{}, &InsufficientStockError{ProductID: p.ID, ProductName: p.Name}
		}
		line := model.CartLine{UserID: userID, ProductID: p.ID, Quantity: in.Quantity}
		if err := u.lines.Create(ctx, &line); err != nil {
			if errors.Is(err, repo.ErrDuplicateKey) {
				return CartLineOutput{}, fmt.Errorf("%w: product %d was added concurrently", ErrConflict, p.ID)
			}
			return CartLineOutput{}, fmt.Errorf("create cart line: %w", err)
		}
		return toCartLineOutput(line, p), nil

	default:
		return CartLineOutput{}, fmt.Errorf("load cart line: %w", err)
	}
}

func (u *CartUsecase) UpdateQuantity(ctx context.Context, userID int64, lineID int64, qty int64) (CartLineOutput, error) {
	if userID <= 0 {
		return CartLineOutput{}, ErrUnauthorized
	}
	if qty <= 0 {
		return CartLineOutput{}, validationf("quantity must be positive")
	}

	line, err := u.lines.FindByID(ctx, lineID)
	if errors.Is(err, repo.ErrNotFound) || (err == nil && line.UserID != userID) {
		// other users' lines look missing
		return CartLineOutput{}, notFoundf("cart line %d", lineID)
	}
	if err != nil {
		return CartLineOutput{}, fmt.Errorf("load cart line: %w", err)
	}

	p, err := findProduct(ctx, u.products, line.ProductID)
	if err != nil {
		return CartLineOutput{}, err
	}
	if p.Stock < qty {
		return CartLineOutput{}, &InsufficientStockError{ProductID: p.ID, ProductName: p.Name}
	}

	if err := u.lines.UpdateQuantity(ctx, line.ID, qty); err != nil {
		return CartLineOutput{}, fmt.Errorf("update cart line: %w", err)
	}
	line.Quantity = qty
	return toCartLineOutput(line, p), nil
}

// RemoveFromCart is idempotent: unknown or foreign lines are a no-op.
func (u *CartUsecase) RemoveFromCart(ctx context.Context, userID int64, lineID int64) error {
	if userID <= 0 {
		return ErrUnauthorized
	}
	if _, err := u.lines.DeleteByIDs(ctx, userID, []int64{lineID}); err != nil {
		return fmt.Errorf("delete cart line: %w", err)
	}
	return nil
}

func findProduct(ctx context.Context, products repo.ProductRepository, id int64) (model.Product, error) {
	p, err := products.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, notFoundf("product %d", id)
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("load product %d: %w", id, err)
	}
	return p, nil
}

func toCartLineOutput(l model.CartLine, p model.Product) CartLineOutput {
	return CartLineOutput{
		ID:        l.ID,
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		Quantity:  l.Quantity,
		Subtotal:  p.Price.Mul(decimal.NewFromInt(l.Quantity)),
	}
}

package usecase

import (
	"context"
	"fmt"

	"github.com/SteampunkGill/Docker-final-assignment/internal/domain/model"
	repo "github.com/SteampunkGill/Docker-final-assignment/internal/repository"
)

// CartSnapshotReader turns requested cart line ids into owned cart lines.
type CartSnapshotReader struct{}

// Read returns the lines in request order. Duplicate ids are collapsed.
// A missing line or a line of another user fails the whole request.
func (CartSnapshotReader) Read(ctx context.Context, lines repo.CartLineRepository, userID int64, cartIDs []int64) ([]model.CartLine, error) {
	if len(cartIDs) == 0 {
		return nil, validationf("cart_ids must not be empty")
	}

	ids := make([]int64, 0, len(cartIDs))
	seen := make(map[int64]struct{}, len(cartIDs))
	for _, id := range cartIDs {
		if id <= 0 {
			return nil, validationf("invalid cart id %d", id)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	rows, err := lines.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load cart lines: %w", err)
	}
	byID := make(map[int64]model.CartLine, len(rows))
	for _, l := range rows {
		byID[l.ID] = l
	}

	out := make([]model.CartLine, 0, len(ids))
	for _, id := range ids {
		l, ok := byID[id]
		if !ok {
			return nil, validationf("cart line %d does not exist", id)
		}
		if l.UserID != userID {
			return nil, validationf("cart line %d does not belong to the caller", id)
		}
		if l.Quantity <= 0 {
			return nil, validationf("cart line %d has invalid quantity", id)
		}
		out = append(out, l)
	}
	return out, nil
}

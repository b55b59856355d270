package repository

import (
	"context"

	"github.com/SteampunkGill/Docker-final-assignment/internal/domain/model"
)

type AddressRepository interface {
	FindByID(ctx context.Context, id int64) (model.Address, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Address, error)
	CountByUserID(ctx context.Context, userID int64) (int64, error)
	Create(ctx context.Context, a *model.Address) error
}

package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/SteampunkGill/Docker-final-assignment/internal/domain/model"
	repo "github.com/SteampunkGill/Docker-final-assignment/internal/repository"
)

type AddressUsecase struct {
	addresses repo.AddressRepository
}

func NewAddressUsecase(addresses repo.AddressRepository) *AddressUsecase {
	return &AddressUsecase{addresses: addresses}
}

type CreateAddressInput struct {
	Name       string
	Phone      string
	PostalCode string
	Province   string
	City       string
	Detail     string
}

func (u *AddressUsecase) ListAddresses(ctx context.Context, userID int64) ([]model.Address, error) {
	if userID <= 0 {
		return nil, ErrUnauthorized
	}
	list, err := u.addresses.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	return list, nil
}

// The first address of a user becomes the default.
func (u *AddressUsecase) CreateAddress(ctx context.Context, userID int64, in CreateAddressInput) (model.Address, error) {
	if userID <= 0 {
		return model.Address{}, ErrUnauthorized
	}

	a := model.Address{
		UserID:     userID,
		Name:       strings.TrimSpace(in.Name),
		Phone:      strings.TrimSpace(in.Phone),
		PostalCode: strings.TrimSpace(in.PostalCode),
		Province:   strings.TrimSpace(in.Province),
		City:       strings.TrimSpace(in.City),
		Detail:     strings.TrimSpace(in.Detail),
	}
	// required
	switch {
	case a.Name == "":
		return model.Address{}, validationf("name is required")
	case a.Phone == "":
		return model.Address{}, validationf("phone is required")
	case a.Province == "":
		return model.Address{}, validationf("province is required")
	case a.City == "":
		return model.Address{}, validationf("city is required")
	case a.Detail == "":
		return model.Address{}, validationf("detail is required")
	}

	n, err := u.addresses.CountByUserID(ctx, userID)
	if err != nil {
		return model.Address{}, fmt.Errorf("count addresses: %w", err)
	}
	a.IsDefault = n == 0

	if err := u.addresses.Create(ctx, &a); err != nil {
		return model.Address{}, fmt.Errorf("create address: %w", err)
	}
	return a, nil
}

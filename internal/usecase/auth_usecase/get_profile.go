package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/SteampunkGill/Docker-final-assignment/internal/domain/model"
	"github.com/SteampunkGill/Docker-final-assignment/internal/repository"
	"github.com/SteampunkGill/Docker-final-assignment/internal/usecase"
)

type GetProfileUsecase struct {
	userRepo repository.UserRepository
}

// DI
func NewGetProfileUsecase(userRepo repository.UserRepository) *GetProfileUsecase {
	return &GetProfileUsecase{userRepo: userRepo}
}

// Execute returns the signed in user without the password hash.
func (u *GetProfileUsecase) Execute(ctx context.Context, userID int64) (model.User, error) {
	if userID <= 0 {
		return model.User{}, usecase.ErrUnauthorized
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, fmt.Errorf("%w: user %d", usecase.ErrNotFound, userID)
		}
		return model.User{}, err
	}

	user.Password = ""
	return user, nil
}

package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/SteampunkGill/Docker-final-assignment/internal/domain/model"
	"github.com/SteampunkGill/Docker-final-assignment/internal/repository"
	"github.com/SteampunkGill/Docker-final-assignment/internal/validator"
)

type RegisterUserInput struct {
	Username string
	Password string
	Phone    string
}

type RegisterUserOutput struct {
	User model.User
}

// Checks sign up input before anything is written.
type RegisterValidator interface {
	ValidateRegister(ctx context.Context, username string, password string) error
}

type RegisterUserUsecase struct {
	userRepo  repository.UserRepository
	validator RegisterValidator
	hasher    PasswordHasher
}

// DI
func NewRegisterUserUsecase(userRepo repository.UserRepository, validator RegisterValidator, hasher PasswordHasher) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		userRepo:  userRepo,
		validator: validator,
		hasher:    hasher,
	}
}

func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, error) {
	var out RegisterUserOutput

	username := strings.TrimSpace(in.Username)
	if err := u.validator.ValidateRegister(ctx, username, in.Password); err != nil {
		return out, err
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	user := &model.User{
		Username: username,
		Password: hashed, // hash only, never the plain text
		Phone:    strings.TrimSpace(in.Phone),
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return out, validator.ErrUsernameTaken
		}
		return out, err
	}

	safeUser := *user
	safeUser.Password = ""

	out.User = safeUser
	return out, nil
}

package validator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/SteampunkGill/Docker-final-assignment/internal/repository"
	"github.com/SteampunkGill/Docker-final-assignment/internal/usecase"
)

var (
	// bad input
	ErrInvalidUsername  = fmt.Errorf("%w: username must be 3 to 50 letters, digits, '_' or '-'", usecase.ErrValidation)
	ErrPasswordTooShort = fmt.Errorf("%w: password must be at least %d characters", usecase.ErrValidation, MinPasswordLen)

	// username already used
	ErrUsernameTaken = fmt.Errorf("%w: username already exists", usecase.ErrConflict)
)

const MinPasswordLen = 6

type AuthValidator struct {
	users repository.UserRepository
}

func NewAuthValidator(users repository.UserRepository) *AuthValidator {
	return &AuthValidator{users: users}
}

// ValidateRegister checks the sign up input. The unique index on username
// still decides when two sign ups race.
func (v *AuthValidator) ValidateRegister(ctx context.Context, username string, password string) error {
	if !isUsernameLike(username) {
		return ErrInvalidUsername
	}
	if len(password) < MinPasswordLen {
		return ErrPasswordTooShort
	}

	_, err := v.users.FindByUsername(ctx, username)
	if err == nil {
		return ErrUsernameTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}

func isUsernameLike(s string) bool {
	if s != strings.TrimSpace(s) {
		return false
	}
	n := utf8.RuneCountInString(s)
	if n < 3 || n > 50 {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			return false
		}
	}
	return true
}

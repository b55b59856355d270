package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SteampunkGill/Docker-final-assignment/internal/domain/model"
	"github.com/SteampunkGill/Docker-final-assignment/internal/repository"
	"github.com/SteampunkGill/Docker-final-assignment/internal/usecase"
)

var ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", usecase.ErrUnauthorized)

// Issues an access token for a user.
type TokenIssuer interface {
	Issue(userID int64, now time.Time) (token string, expiresAt time.Time, err error)
}

type LoginInput struct {
	Username string
	Password string
}

type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type LoginOutput struct {
	User  model.User  `json:"user"`
	Token AccessToken `json:"token"`
}

type LoginUsecase struct {
	userRepo repository.UserRepository
	verifier PasswordVerifier
	issuer   TokenIssuer
	clock    usecase.Clock
}

// DI
func NewLoginUsecase(
	userRepo repository.UserRepository,
	verifier PasswordVerifier,
	issuer TokenIssuer,
	clock usecase.Clock,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo: userRepo,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
	}
}

func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	user, err := u.userRepo.FindByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return out, ErrInvalidCredentials
		}
		return out, err
	}

	if ok := u.verifier.Verify(in.Password, user.Password); !ok {
		return out, ErrInvalidCredentials
	}

	now := u.clock.Now()
	token, exp, err := u.issuer.Issue(user.ID, now)
	if err != nil {
		return out, err
	}

	user.Password = ""
	out.User = user
	out.Token = AccessToken{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(exp.Sub(now).Seconds()),
	}
	return out, nil
}

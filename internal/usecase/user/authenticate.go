package user

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/orders-api/internal/domain/user"
	"github.com/BruksfildServices01/orders-api/internal/httperr"
	"github.com/BruksfildServices01/orders-api/internal/models"
)

type Authenticate struct {
	repo domain.Repository
}

func NewAuthenticate(repo domain.Repository) *Authenticate {
	return &Authenticate{repo: repo}
}

// Execute returns invalid_credentials for both an unknown email and a
// wrong password.
func (uc *Authenticate) Execute(
	ctx context.Context,
	email, password string,
) (*models.User, error) {

	u, err := uc.repo.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("invalid_credentials")
		}
		return nil, err
	}

	if !CheckPassword(u.PasswordHash, password) {
		return nil, httperr.ErrBusiness("invalid_credentials")
	}

	return u, nil
}

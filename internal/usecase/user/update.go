package user

import (
	"context"
	"strings"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/orders-api/internal/domain/user"
	"github.com/BruksfildServices01/orders-api/internal/httperr"
	"github.com/BruksfildServices01/orders-api/internal/models"
)

// UpdateUserInput carries the fields to change. Nil fields are kept.
type UpdateUserInput struct {
	Principal domain.Principal
	UserID    uuid.UUID

	Name     *string
	Email    *string
	Password *string
	Sex      *string
	// Role is ignored unless Principal is an admin.
	Role *string
}

type UpdateUser struct {
	repo       domain.Repository
	checkEmail EmailChecker
}

func NewUpdateUser(repo domain.Repository, checkEmail EmailChecker) *UpdateUser {
	return &UpdateUser{repo: repo, checkEmail: checkEmail}
}

func (uc *UpdateUser) Execute(
	ctx context.Context,
	in UpdateUserInput,
) (*models.User, error) {

	if !in.Principal.CanAccess(in.UserID) {
		return nil, httperr.ErrBusiness("access_denied")
	}

	u, err := uc.repo.GetUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Sex != nil {
		sex, err := domain.ParseSex(*in.Sex)
		if err != nil {
			return nil, err
		}
		u.Sex = string(sex)
	}

	if in.Role != nil && in.Principal.IsAdmin() {
		role, err := domain.ParseRole(*in.Role)
		if err != nil {
			return nil, err
		}
		u.Role = string(role)
	}

	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}

	if in.Email != nil {
		email := NormalizeEmail(*in.Email)
		if email != u.Email && uc.checkEmail != nil && !uc.checkEmail(email) {
			return nil, httperr.ErrBusiness("invalid_email_domain")
		}
		u.Email = email
	}

	if in.Password != nil {
		hash, err := HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}

	if err := uc.repo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}

	return uc.repo.GetUser(ctx, u.ID)
}

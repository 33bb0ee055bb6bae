package user

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/orders-api/internal/audit"
	domain "github.com/BruksfildServices01/orders-api/internal/domain/user"
	"github.com/BruksfildServices01/orders-api/internal/httperr"
	"github.com/BruksfildServices01/orders-api/internal/models"
)

// EmailChecker reports whether the domain of an address can receive mail.
type EmailChecker func(email string) bool

type RegisterUserInput struct {
	// Principal is nil for anonymous registration.
	Principal *domain.Principal

	Name     string
	Email    string
	Password string
	Sex      string
	// Role is honoured only when Principal is an admin.
	Role string
}

type RegisterUser struct {
	repo       domain.Repository
	audit      *audit.Dispatcher
	checkEmail EmailChecker
}

func NewRegisterUser(
	repo domain.Repository,
	audit *audit.Dispatcher,
	checkEmail EmailChecker,
) *RegisterUser {
	return &RegisterUser{
		repo:       repo,
		audit:      audit,
		checkEmail: checkEmail,
	}
}

func (uc *RegisterUser) Execute(
	ctx context.Context,
	in RegisterUserInput,
) (*models.User, error) {

	// 1️⃣ Enums
	sex, err := domain.ParseSex(in.Sex)
	if err != nil {
		return nil, err
	}

	role := domain.RoleUser
	if in.Role != "" && in.Principal != nil && in.Principal.IsAdmin() {
		role, err = domain.ParseRole(in.Role)
		if err != nil {
			return nil, err
		}
	}

	// 2️⃣ Email
	email := NormalizeEmail(in.Email)
	if uc.checkEmail != nil && !uc.checkEmail(email) {
		return nil, httperr.ErrBusiness("invalid_email_domain")
	}

	// 3️⃣ Password
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		Sex:          string(sex),
		Role:         string(role),
		PasswordHash: hash,
	}

	if err := uc.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	// 4️⃣ Audit
	actor := &u.ID
	if in.Principal != nil {
		actor = &in.Principal.ID
	}
	uc.audit.Dispatch(audit.Event{
		UserID:   actor,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &u.ID,
		Metadata: map[string]any{"role": u.Role},
	})

	return u, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

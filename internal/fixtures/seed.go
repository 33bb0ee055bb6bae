package fixtures

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	userdomain "github.com/BruksfildServices01/orders-api/internal/domain/user"
	"github.com/BruksfildServices01/orders-api/internal/logger"
	"github.com/BruksfildServices01/orders-api/internal/models"
	ucOrder "github.com/BruksfildServices01/orders-api/internal/usecase/order"
	ucUser "github.com/BruksfildServices01/orders-api/internal/usecase/user"
)

type Result struct {
	UsersCreated  int
	OrdersCreated int
}

type Seeder struct {
	users       userdomain.Repository
	createOrder *ucOrder.CreateOrder
}

func NewSeeder(users userdomain.Repository, createOrder *ucOrder.CreateOrder) *Seeder {
	return &Seeder{users: users, createOrder: createOrder}
}

// Seed creates the default admin and the users of f that do not exist yet.
// Orders of f are created only for owners that still have none, so running
// Seed twice leaves the database unchanged.
func (s *Seeder) Seed(ctx context.Context, f *File) (*Result, error) {
	res := &Result{}

	users := append([]UserFixture{DefaultAdmin}, f.Users...)
	byEmail := make(map[string]*models.User, len(users))

	var admin *models.User
	for _, uf := range users {
		u, created, err := s.ensureUser(ctx, uf)
		if err != nil {
			return res, fmt.Errorf("seed user %s: %w", uf.Email, err)
		}
		if created {
			res.UsersCreated++
		}
		byEmail[u.Email] = u
		if admin == nil && u.Role == string(userdomain.RoleAdmin) {
			admin = u
		}
	}

	if len(f.Orders) == 0 {
		return res, nil
	}

	if admin == nil {
		return res, errors.New("seed orders: no admin user available")
	}
	principal := userdomain.Principal{ID: admin.ID, Roles: userdomain.Roles(admin.Role)}

	for _, of := range f.Orders {
		owner, ok := byEmail[ucUser.NormalizeEmail(of.Owner)]
		if !ok {
			return res, fmt.Errorf("seed order: unknown owner %s", of.Owner)
		}
		if owner.OrdersCount > 0 {
			continue
		}

		ownerID := owner.ID
		if _, err := s.createOrder.Execute(ctx, ucOrder.CreateOrderInput{
			Principal: principal,
			OwnerID:   &ownerID,
			Status:    of.Status,
		}); err != nil {
			return res, fmt.Errorf("seed order for %s: %w", of.Owner, err)
		}
		res.OrdersCreated++
	}

	logger.Log.Info("fixtures loaded",
		logger.Int("users_created", res.UsersCreated),
		logger.Int("orders_created", res.OrdersCreated),
	)

	return res, nil
}

func (s *Seeder) ensureUser(ctx context.Context, uf UserFixture) (*models.User, bool, error) {
	email := ucUser.NormalizeEmail(uf.Email)

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, userdomain.ErrNotFound) {
		return nil, false, err
	}

	sex, err := userdomain.ParseSex(uf.Sex)
	if err != nil {
		return nil, false, err
	}
	role, err := userdomain.ParseRole(uf.Role)
	if err != nil {
		return nil, false, err
	}
	hash, err := ucUser.HashPassword(uf.Password)
	if err != nil {
		return nil, false, err
	}

	u := &models.User{
		ID:           uuid.New(),
		Name:         uf.Name,
		Email:        email,
		Sex:          string(sex),
		Role:         string(role),
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, false, err
	}

	return u, true, nil
}

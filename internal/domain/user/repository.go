package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/orders-api/internal/models"
)

type Repository interface {
	// CreateUser returns ErrEmailTaken on a duplicate email.
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateUser returns ErrEmailTaken on a duplicate email.
	// It never writes orders_count.
	UpdateUser(ctx context.Context, u *models.User) error
	// DeleteUser returns ErrHasOrders while orders still reference the user.
	DeleteUser(ctx context.Context, u *models.User) error
	ListUsers(ctx context.Context, page, limit int) ([]models.User, int64, error)
}

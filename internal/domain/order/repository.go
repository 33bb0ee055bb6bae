package order

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/orders-api/internal/models"
)

type ListFilter struct {
	OwnerID *uuid.UUID
	Status  Status
	Page    int
	Limit   int
}

type Repository interface {
	// Transaction runs fn against a repository bound to one database
	// transaction. Returning an error from fn rolls everything back.
	Transaction(
		ctx context.Context,
		fn func(repo Repository) error,
	) error

	// -------- Numbering --------
	CountCreatedSince(
		ctx context.Context,
		since time.Time,
	) (int64, error)

	// LatestNumber returns the highest order number starting with prefix,
	// or "" when there is none.
	LatestNumber(
		ctx context.Context,
		prefix string,
	) (string, error)

	// -------- Orders --------
	// CreateOrder returns ErrDuplicateNumber when the order number is taken.
	CreateOrder(
		ctx context.Context,
		o *models.Order,
	) error

	GetOrder(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Order, error)

	UpdateOrder(
		ctx context.Context,
		o *models.Order,
	) error

	DeleteOrder(
		ctx context.Context,
		o *models.Order,
	) error

	ListOrders(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Order, int64, error)

	// -------- Owners --------
	GetOwner(
		ctx context.Context,
		id uuid.UUID,
	) (*models.User, error)

	// AdjustOrdersCount applies delta to the stored counter in place.
	AdjustOrdersCount(
		ctx context.Context,
		userID uuid.UUID,
		delta int,
	) error
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/orders-api/internal/domain/order"
	"github.com/BruksfildServices01/orders-api/internal/models"
)

const orderNumberIndex = "idx_orders_order_number"

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *OrderGormRepository) Transaction(
	ctx context.Context,
	fn func(repo domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&OrderGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Numbering
// --------------------------------------------------

func (r *OrderGormRepository) CountCreatedSince(
	ctx context.Context,
	since time.Time,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("created_at > ?", since).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count orders since %s: %w", since.Format(time.RFC3339), err)
	}
	return count, nil
}

func (r *OrderGormRepository) LatestNumber(
	ctx context.Context,
	prefix string,
) (string, error) {

	var numbers []string
	if err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("order_number LIKE ?", prefix+"%").
		Order("LENGTH(order_number) DESC, order_number DESC").
		Limit(1).
		Pluck("order_number", &numbers).Error; err != nil {
		return "", fmt.Errorf("latest order number for %s: %w", prefix, err)
	}

	if len(numbers) == 0 {
		return "", nil
	}
	return numbers[0], nil
}

// --------------------------------------------------
// Orders
// --------------------------------------------------

func (r *OrderGormRepository) CreateOrder(
	ctx context.Context,
	o *models.Order,
) error {
	if err := r.db.WithContext(ctx).Omit("Owner").Create(o).Error; err != nil {
		if isUniqueViolation(err, orderNumberIndex) {
			return domain.ErrDuplicateNumber
		}
		if isForeignKeyViolation(err) {
			return domain.ErrOwnerNotFound
		}
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (r *OrderGormRepository) GetOrder(
	ctx context.Context,
	id uuid.UUID,
) (*models.Order, error) {

	var o models.Order
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

func (r *OrderGormRepository) UpdateOrder(
	ctx context.Context,
	o *models.Order,
) error {
	err := r.db.WithContext(ctx).
		Model(o).
		Select("status", "owner_id", "updated_at").
		Updates(map[string]any{
			"status":     o.Status,
			"owner_id":   o.OwnerID,
			"updated_at": o.UpdatedAt,
		}).Error
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrOwnerNotFound
		}
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

func (r *OrderGormRepository) DeleteOrder(
	ctx context.Context,
	o *models.Order,
) error {
	res := r.db.WithContext(ctx).Delete(&models.Order{}, "id = ?", o.ID)
	if res.Error != nil {
		return fmt.Errorf("delete order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) ListOrders(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Order, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Order{})

	if filter.OwnerID != nil {
		q = q.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	var orders []models.Order
	if err := q.Session(&gorm.Session{}).
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}

	return orders, total, nil
}

// --------------------------------------------------
// Owners
// --------------------------------------------------

func (r *OrderGormRepository) GetOwner(
	ctx context.Context,
	id uuid.UUID,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOwnerNotFound
		}
		return nil, fmt.Errorf("get owner: %w", err)
	}
	return &u, nil
}

func (r *OrderGormRepository) AdjustOrdersCount(
	ctx context.Context,
	userID uuid.UUID,
	delta int,
) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("orders_count", gorm.Expr("orders_count + ?", delta))
	if res.Error != nil {
		return fmt.Errorf("adjust orders count: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrOwnerNotFound
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*OrderGormRepository)(nil)

package order

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/orders-api/internal/domain/order"
	userdomain "github.com/BruksfildServices01/orders-api/internal/domain/user"
	"github.com/BruksfildServices01/orders-api/internal/httperr"
	"github.com/BruksfildServices01/orders-api/internal/models"
)

const (
	defaultPageSize = 30
	maxPageSize     = 200
)

// ======================================================
// GET
// ======================================================

type GetOrder struct {
	repo domain.Repository
}

func NewGetOrder(repo domain.Repository) *GetOrder {
	return &GetOrder{repo: repo}
}

func (uc *GetOrder) Execute(
	ctx context.Context,
	principal userdomain.Principal,
	orderID uuid.UUID,
) (*models.Order, error) {

	o, err := uc.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !principal.CanAccess(o.OwnerID) {
		return nil, httperr.ErrBusiness("access_denied")
	}

	return o, nil
}

// ======================================================
// LIST
// ======================================================

type ListOrdersInput struct {
	Principal userdomain.Principal

	// OwnerID narrows the listing to one user's orders. Without it the
	// listing spans every user and is reserved to admins.
	OwnerID *uuid.UUID
	Status  string
	Page    int
	Limit   int
}

type ListOrdersResult struct {
	Orders []models.Order
	Total  int64
	Page   int
	Limit  int
}

type ListOrders struct {
	repo domain.Repository
}

func NewListOrders(repo domain.Repository) *ListOrders {
	return &ListOrders{repo: repo}
}

func (uc *ListOrders) Execute(
	ctx context.Context,
	in ListOrdersInput,
) (*ListOrdersResult, error) {

	if in.OwnerID == nil && !in.Principal.IsAdmin() {
		return nil, httperr.ErrBusiness("access_denied")
	}
	if in.OwnerID != nil && !in.Principal.CanAccess(*in.OwnerID) {
		return nil, httperr.ErrBusiness("access_denied")
	}

	var status domain.Status
	if in.Status != "" {
		s, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		status = s
	}

	page, limit := normalizePage(in.Page, in.Limit)

	orders, total, err := uc.repo.ListOrders(ctx, domain.ListFilter{
		OwnerID: in.OwnerID,
		Status:  status,
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		return nil, err
	}

	return &ListOrdersResult{
		Orders: orders,
		Total:  total,
		Page:   page,
		Limit:  limit,
	}, nil
}

func normalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	return page, limit
}

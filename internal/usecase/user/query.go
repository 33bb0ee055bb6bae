package user

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/orders-api/internal/domain/user"
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

type GetUser struct {
	repo domain.Repository
}

func NewGetUser(repo domain.Repository) *GetUser {
	return &GetUser{repo: repo}
}

func (uc *GetUser) Execute(
	ctx context.Context,
	principal domain.Principal,
	userID uuid.UUID,
) (*models.User, error) {

	if !principal.CanAccess(userID) {
		return nil, httperr.ErrBusiness("access_denied")
	}

	return uc.repo.GetUser(ctx, userID)
}

// ======================================================
// LIST
// ======================================================

type ListUsersResult struct {
	Users []models.User
	Total int64
	Page  int
	Limit int
}

type ListUsers struct {
	repo domain.Repository
}

func NewListUsers(repo domain.Repository) *ListUsers {
	return &ListUsers{repo: repo}
}

func (uc *ListUsers) Execute(
	ctx context.Context,
	principal domain.Principal,
	page, limit int,
) (*ListUsersResult, error) {

	if !principal.IsAdmin() {
		return nil, httperr.ErrBusiness("access_denied")
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}

	users, total, err := uc.repo.ListUsers(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	return &ListUsersResult{
		Users: users,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

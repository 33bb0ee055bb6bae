package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/orders-api/internal/audit"
	domain "github.com/BruksfildServices01/orders-api/internal/domain/user"
	"github.com/BruksfildServices01/orders-api/internal/httperr"
)

type DeleteUser struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteUser(repo domain.Repository, audit *audit.Dispatcher) *DeleteUser {
	return &DeleteUser{repo: repo, audit: audit}
}

// Execute fails with ErrHasOrders while the user still owns orders;
// they must be deleted or reassigned first.
func (uc *DeleteUser) Execute(
	ctx context.Context,
	principal domain.Principal,
	userID uuid.UUID,
) error {

	if !principal.CanAccess(userID) {
		return httperr.ErrBusiness("access_denied")
	}

	u, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteUser(ctx, u); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &principal.ID,
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: &userID,
		Metadata: map[string]any{"email": u.Email},
	})

	return nil
}

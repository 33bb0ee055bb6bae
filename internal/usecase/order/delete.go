package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/orders-api/internal/audit"
	domain "github.com/BruksfildServices01/orders-api/internal/domain/order"
	userdomain "github.com/BruksfildServices01/orders-api/internal/domain/user"
	"github.com/BruksfildServices01/orders-api/internal/httperr"
	"github.com/BruksfildServices01/orders-api/internal/metrics"
)

type DeleteOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteOrder {
	return &DeleteOrder{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteOrder) Execute(
	ctx context.Context,
	principal userdomain.Principal,
	orderID uuid.UUID,
) error {

	if !principal.IsAdmin() {
		return httperr.ErrBusiness("access_denied")
	}

	var ownerID uuid.UUID

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		o, err := tx.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		ownerID = o.OwnerID

		if err := tx.AdjustOrdersCount(ctx, o.OwnerID, -1); err != nil {
			return err
		}

		return tx.DeleteOrder(ctx, o)
	})
	if err != nil {
		return err
	}

	metrics.OrderDeleted()

	uc.audit.Dispatch(audit.Event{
		UserID:   &principal.ID,
		Action:   "order_deleted",
		Entity:   "order",
		EntityID: &orderID,
		Metadata: map[string]any{"owner_id": ownerID},
	})

	return nil
}

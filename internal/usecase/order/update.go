package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/orders-api/internal/audit"
	domain "github.com/BruksfildServices01/orders-api/internal/domain/order"
	userdomain "github.com/BruksfildServices01/orders-api/internal/domain/user"
	"github.com/BruksfildServices01/orders-api/internal/httperr"
	"github.com/BruksfildServices01/orders-api/internal/models"
)

type UpdateOrderInput struct {
	Principal userdomain.Principal
	OrderID   uuid.UUID

	// nil leaves the field untouched
	Status  *string
	OwnerID *uuid.UUID
}

type UpdateOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock Clock
}

func NewUpdateOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock Clock,
) *UpdateOrder {
	return &UpdateOrder{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

// Execute changes status and/or owner. Moving an order to another owner
// moves one unit of ordersCount with it inside the same transaction.
func (uc *UpdateOrder) Execute(
	ctx context.Context,
	in UpdateOrderInput,
) (*models.Order, error) {

	if !in.Principal.IsAdmin() {
		return nil, httperr.ErrBusiness("access_denied")
	}

	var status *domain.Status
	if in.Status != nil {
		s, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		status = &s
	}

	var (
		updated  *models.Order
		previous uuid.UUID
		moved    bool
	)

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		o, err := tx.GetOrder(ctx, in.OrderID)
		if err != nil {
			return err
		}

		if status != nil {
			domain.ChangeStatus(o, *status)
		}

		if in.OwnerID != nil {
			if _, err := tx.GetOwner(ctx, *in.OwnerID); err != nil {
				return err
			}
			previous, moved = domain.Reassign(o, *in.OwnerID)
		}

		o.UpdatedAt = uc.clock.Now()
		if err := tx.UpdateOrder(ctx, o); err != nil {
			return err
		}

		if moved {
			if err := tx.AdjustOrdersCount(ctx, o.OwnerID, 1); err != nil {
				return err
			}
			if err := tx.AdjustOrdersCount(ctx, previous, -1); err != nil {
				return err
			}
		}

		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	action := "order_updated"
	meta := map[string]any{"status": updated.Status}
	if moved {
		action = "order_reassigned"
		meta["previous_owner_id"] = previous
		meta["owner_id"] = updated.OwnerID
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.Principal.ID,
		Action:   action,
		Entity:   "order",
		EntityID: &updated.ID,
		Metadata: meta,
	})

	return updated, nil
}

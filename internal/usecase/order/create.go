package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/orders-api/internal/audit"
	domain "github.com/BruksfildServices01/orders-api/internal/domain/order"
	userdomain "github.com/BruksfildServices01/orders-api/internal/domain/user"
	"github.com/BruksfildServices01/orders-api/internal/httperr"
	"github.com/BruksfildServices01/orders-api/internal/logger"
	"github.com/BruksfildServices01/orders-api/internal/metrics"
	"github.com/BruksfildServices01/orders-api/internal/models"
)

const defaultMaxAttempts = 5

// ======================================================
// INPUT
// ======================================================

type CreateOrderInput struct {
	Principal userdomain.Principal

	// OwnerID is honoured for admins only; everybody else orders for
	// themselves.
	OwnerID *uuid.UUID

	// Status is the raw value sent by the client.
	Status string
}

// ======================================================
// USE CASE
// ======================================================

type CreateOrder struct {
	repo        domain.Repository
	seq         Sequencer
	audit       *audit.Dispatcher
	clock       Clock
	maxAttempts int
}

func NewCreateOrder(
	repo domain.Repository,
	seq Sequencer,
	audit *audit.Dispatcher,
	clock Clock,
	maxAttempts int,
) *CreateOrder {
	if seq == nil {
		seq = CountSequencer{}
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &CreateOrder{
		repo:        repo,
		seq:         seq,
		audit:       audit,
		clock:       clock,
		maxAttempts: maxAttempts,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateOrder) Execute(
	ctx context.Context,
	in CreateOrderInput,
) (*models.Order, error) {

	// --------------------------------------------------
	// 1️⃣ Plain status -> stored status
	// --------------------------------------------------
	status, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Owner
	// --------------------------------------------------
	ownerID := in.Principal.ID
	if in.OwnerID != nil && in.Principal.IsAdmin() {
		ownerID = *in.OwnerID
	}

	// --------------------------------------------------
	// 3️⃣ Number + insert + counter, retried on collision
	// --------------------------------------------------
	var created *models.Order

	for attempt := 0; attempt < uc.maxAttempts; attempt++ {
		created, err = uc.create(ctx, ownerID, status, attempt)
		if !errors.Is(err, domain.ErrDuplicateNumber) {
			break
		}

		metrics.OrderNumberRetry()
		logger.Log.Warn("order number collision, retrying",
			logger.Int("attempt", attempt+1),
			logger.String("owner_id", ownerID.String()),
		)
	}

	if errors.Is(err, domain.ErrDuplicateNumber) {
		return nil, httperr.Wrap("order_number_conflict", err)
	}
	if err != nil {
		return nil, err
	}

	metrics.OrderCreated()

	// --------------------------------------------------
	// 4️⃣ Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.Principal.ID,
		Action:   "order_created",
		Entity:   "order",
		EntityID: &created.ID,
		Metadata: map[string]any{
			"order_number": created.OrderNumber,
			"owner_id":     created.OwnerID,
		},
	})

	return created, nil
}

func (uc *CreateOrder) create(
	ctx context.Context,
	ownerID uuid.UUID,
	status domain.Status,
	attempt int,
) (*models.Order, error) {

	now := uc.clock.Now()
	var created *models.Order

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if _, err := tx.GetOwner(ctx, ownerID); err != nil {
			return err
		}

		preceding, err := uc.seq.Preceding(ctx, tx, now, attempt)
		if err != nil {
			return err
		}
		if preceding >= domain.MaxDailySequence {
			return httperr.Wrap("daily_order_limit", domain.ErrDailyLimit)
		}

		o := &models.Order{
			ID:          uuid.New(),
			OrderNumber: domain.GenerateNumber(now, preceding),
			Status:      string(status),
			OwnerID:     ownerID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := tx.CreateOrder(ctx, o); err != nil {
			return err
		}

		if err := tx.AdjustOrdersCount(ctx, ownerID, 1); err != nil {
			return err
		}

		created = o
		return nil
	})

	return created, err
}

// ======================================================
// CLOCK
// ======================================================

type Clock interface {
	Now() time.Time
}

// LocalClock reads wall time in the location that defines "today" for
// order numbering.
type LocalClock struct {
	Location *time.Location
}

func (c LocalClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

package order

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/orders-api/internal/audit"
	domain "github.com/BruksfildServices01/orders-api/internal/domain/order"
	userdomain "github.com/BruksfildServices01/orders-api/internal/domain/user"
	"github.com/BruksfildServices01/orders-api/internal/httperr"
	"github.com/BruksfildServices01/orders-api/internal/usecase/order/ordertest"
)

type recordingSink struct {
	actions []string
}

func (s *recordingSink) Log(_ context.Context, ev audit.Event) error {
	s.actions = append(s.actions, ev.Action)
	return nil
}

func TestUpdateOrder_ReassignMovesCount(t *testing.T) {
	repo := ordertest.New()
	clock := newClock(day)
	admin := addUser(repo, userdomain.RoleAdmin)
	a := addUser(repo, userdomain.RoleUser)
	b := addUser(repo, userdomain.RoleUser)

	sink := &recordingSink{}
	dispatcher := audit.NewDispatcher(sink)

	create := NewCreateOrder(repo, CountSequencer{}, nil, clock, 0)
	update := NewUpdateOrder(repo, dispatcher, clock)

	o, err := create.Execute(context.Background(), CreateOrderInput{Principal: a, Status: "WAITING"})
	require.NoError(t, err)
	_, err = create.Execute(context.Background(), CreateOrderInput{Principal: b, Status: "WAITING"})
	require.NoError(t, err)

	updated, err := update.Execute(context.Background(), UpdateOrderInput{
		Principal: admin,
		OrderID:   o.ID,
		OwnerID:   &b.ID,
	})
	require.NoError(t, err)
	dispatcher.Close()

	assert.Equal(t, b.ID, updated.OwnerID)
	assert.Equal(t, o.OrderNumber, updated.OrderNumber)
	assert.Equal(t, 0, repo.OrdersCount(a.ID))
	assert.Equal(t, 2, repo.OrdersCount(b.ID))
	assert.Equal(t, []string{"order_reassigned"}, sink.actions)
}

func TestUpdateOrder_SameOwnerKeepsCount(t *testing.T) {
	repo := ordertest.New()
	clock := newClock(day)
	admin := addUser(repo, userdomain.RoleAdmin)
	a := addUser(repo, userdomain.RoleUser)

	o, err := NewCreateOrder(repo, nil, nil, clock, 0).
		Execute(context.Background(), CreateOrderInput{Principal: a, Status: "WAITING"})
	require.NoError(t, err)

	status := "COMPLETED"
	updated, err := NewUpdateOrder(repo, nil, clock).Execute(context.Background(), UpdateOrderInput{
		Principal: admin,
		OrderID:   o.ID,
		OwnerID:   &a.ID,
		Status:    &status,
	})
	require.NoError(t, err)

	assert.Equal(t, "COMPLETED", updated.Status)
	assert.Equal(t, 1, repo.OrdersCount(a.ID))
}

func TestUpdateOrder_Rejections(t *testing.T) {
	repo := ordertest.New()
	clock := newClock(day)
	admin := addUser(repo, userdomain.RoleAdmin)
	a := addUser(repo, userdomain.RoleUser)

	o, err := NewCreateOrder(repo, nil, nil, clock, 0).
		Execute(context.Background(), CreateOrderInput{Principal: a, Status: "WAITING"})
	require.NoError(t, err)

	update := NewUpdateOrder(repo, nil, clock)

	status := "REFUNDED"
	_, err = update.Execute(context.Background(), UpdateOrderInput{Principal: a, OrderID: o.ID, Status: &status})
	assert.True(t, httperr.IsBusiness(err, "access_denied"))

	bad := "LOST"
	_, err = update.Execute(context.Background(), UpdateOrderInput{Principal: admin, OrderID: o.ID, Status: &bad})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	ghost := uuid.New()
	_, err = update.Execute(context.Background(), UpdateOrderInput{Principal: admin, OrderID: o.ID, OwnerID: &ghost})
	assert.ErrorIs(t, err, domain.ErrOwnerNotFound)

	_, err = update.Execute(context.Background(), UpdateOrderInput{Principal: admin, OrderID: uuid.New(), Status: &status})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	stored, err := repo.GetOrder(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, "WAITING", stored.Status)
	assert.Equal(t, a.ID, stored.OwnerID)
	assert.Equal(t, 1, repo.OrdersCount(a.ID))
}

func TestDeleteOrder_DecrementsOnlyOwner(t *testing.T) {
	repo := ordertest.New()
	clock := newClock(day)
	admin := addUser(repo, userdomain.RoleAdmin)
	a := addUser(repo, userdomain.RoleUser)
	b := addUser(repo, userdomain.RoleUser)

	create := NewCreateOrder(repo, nil, nil, clock, 0)
	oa, err := create.Execute(context.Background(), CreateOrderInput{Principal: a, Status: "WAITING"})
	require.NoError(t, err)
	_, err = create.Execute(context.Background(), CreateOrderInput{Principal: a, Status: "WAITING"})
	require.NoError(t, err)
	_, err = create.Execute(context.Background(), CreateOrderInput{Principal: b, Status: "WAITING"})
	require.NoError(t, err)

	del := NewDeleteOrder(repo, nil)

	assert.True(t, httperr.IsBusiness(del.Execute(context.Background(), a, oa.ID), "access_denied"))
	require.NoError(t, del.Execute(context.Background(), admin, oa.ID))

	assert.Equal(t, 1, repo.OrdersCount(a.ID))
	assert.Equal(t, 1, repo.OrdersCount(b.ID))
	assert.Equal(t, 2, repo.OrderCount())

	assert.ErrorIs(t, del.Execute(context.Background(), admin, oa.ID), domain.ErrNotFound)
	assert.Equal(t, 1, repo.OrdersCount(a.ID))
}

func TestOrdersCount_MatchesOwnedOrdersAfterRandomOperations(t *testing.T) {
	repo := ordertest.New()
	clock := newClock(day)
	admin := addUser(repo, userdomain.RoleAdmin)
	users := []userdomain.Principal{
		addUser(repo, userdomain.RoleUser),
		addUser(repo, userdomain.RoleUser),
		addUser(repo, userdomain.RoleUser),
	}

	create := NewCreateOrder(repo, nil, nil, clock, 0)
	update := NewUpdateOrder(repo, nil, clock)
	del := NewDeleteOrder(repo, nil)

	rnd := rand.New(rand.NewSource(42))
	var live []uuid.UUID

	for step := 0; step < 300; step++ {
		ctx := context.Background()

		switch op := rnd.Intn(3); {
		case op == 0 || len(live) == 0:
			u := users[rnd.Intn(len(users))]
			o, err := create.Execute(ctx, CreateOrderInput{Principal: u, Status: "WAITING"})
			require.NoError(t, err)
			live = append(live, o.ID)
		case op == 1:
			i := rnd.Intn(len(live))
			require.NoError(t, del.Execute(ctx, admin, live[i]))
			live = append(live[:i], live[i+1:]...)
		default:
			target := users[rnd.Intn(len(users))].ID
			_, err := update.Execute(ctx, UpdateOrderInput{
				Principal: admin,
				OrderID:   live[rnd.Intn(len(live))],
				OwnerID:   &target,
			})
			require.NoError(t, err)
		}

		total := 0
		for _, u := range users {
			require.Equal(t, repo.OwnedCount(u.ID), repo.OrdersCount(u.ID), "step %d", step)
			total += repo.OrdersCount(u.ID)
		}
		require.Equal(t, len(live), total, "step %d", step)

		clock.Advance(time.Duration(rnd.Intn(120)) * time.Minute)
	}
}

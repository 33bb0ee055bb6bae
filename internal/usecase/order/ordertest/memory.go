// Package ordertest provides an in-memory store that satisfies the order
// and user repositories, including unique order numbers, foreign keys and
// transaction rollback.
package ordertest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	orderdomain "github.com/BruksfildServices01/orders-api/internal/domain/order"
	userdomain "github.com/BruksfildServices01/orders-api/internal/domain/user"
	"github.com/BruksfildServices01/orders-api/internal/models"
)

type store struct {
	mu     sync.Mutex
	users  map[uuid.UUID]models.User
	orders map[uuid.UUID]models.Order
}

func (s *store) snapshot() (map[uuid.UUID]models.User, map[uuid.UUID]models.Order) {
	users := make(map[uuid.UUID]models.User, len(s.users))
	for k, v := range s.users {
		users[k] = v
	}
	orders := make(map[uuid.UUID]models.Order, len(s.orders))
	for k, v := range s.orders {
		orders[k] = v
	}
	return users, orders
}

// Repository is safe for concurrent use. Transactions are serialized.
type Repository struct {
	s    *store
	inTx bool

	// FailAdjust, when set, is returned by AdjustOrdersCount.
	FailAdjust error
}

func New() *Repository {
	return &Repository{s: &store{
		users:  map[uuid.UUID]models.User{},
		orders: map[uuid.UUID]models.Order{},
	}}
}

func (r *Repository) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *Repository) Transaction(
	_ context.Context,
	fn func(repo orderdomain.Repository) error,
) error {
	if r.inTx {
		return fn(r)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	users, orders := r.s.snapshot()
	tx := &Repository{s: r.s, inTx: true, FailAdjust: r.FailAdjust}

	if err := fn(tx); err != nil {
		r.s.users, r.s.orders = users, orders
		return err
	}
	return nil
}

// --------------------------------------------------
// Orders
// --------------------------------------------------

func (r *Repository) CountCreatedSince(_ context.Context, since time.Time) (int64, error) {
	defer r.lock()()

	var n int64
	for _, o := range r.s.orders {
		if o.CreatedAt.After(since) {
			n++
		}
	}
	return n, nil
}

func (r *Repository) LatestNumber(_ context.Context, prefix string) (string, error) {
	defer r.lock()()

	latest := ""
	for _, o := range r.s.orders {
		if !strings.HasPrefix(o.OrderNumber, prefix) {
			continue
		}
		if len(o.OrderNumber) > len(latest) ||
			(len(o.OrderNumber) == len(latest) && o.OrderNumber > latest) {
			latest = o.OrderNumber
		}
	}
	return latest, nil
}

func (r *Repository) CreateOrder(_ context.Context, o *models.Order) error {
	defer r.lock()()

	for _, existing := range r.s.orders {
		if existing.OrderNumber == o.OrderNumber {
			return orderdomain.ErrDuplicateNumber
		}
	}
	if _, ok := r.s.users[o.OwnerID]; !ok {
		return orderdomain.ErrOwnerNotFound
	}
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}

	r.s.orders[o.ID] = *o
	return nil
}

func (r *Repository) GetOrder(_ context.Context, id uuid.UUID) (*models.Order, error) {
	defer r.lock()()

	o, ok := r.s.orders[id]
	if !ok {
		return nil, orderdomain.ErrNotFound
	}
	return &o, nil
}

func (r *Repository) UpdateOrder(_ context.Context, o *models.Order) error {
	defer r.lock()()

	existing, ok := r.s.orders[o.ID]
	if !ok {
		return orderdomain.ErrNotFound
	}
	if _, ok := r.s.users[o.OwnerID]; !ok {
		return orderdomain.ErrOwnerNotFound
	}

	existing.Status = o.Status
	existing.OwnerID = o.OwnerID
	existing.UpdatedAt = o.UpdatedAt
	r.s.orders[o.ID] = existing
	return nil
}

func (r *Repository) DeleteOrder(_ context.Context, o *models.Order) error {
	defer r.lock()()

	if _, ok := r.s.orders[o.ID]; !ok {
		return orderdomain.ErrNotFound
	}
	delete(r.s.orders, o.ID)
	return nil
}

func (r *Repository) ListOrders(_ context.Context, f orderdomain.ListFilter) ([]models.Order, int64, error) {
	defer r.lock()()

	var all []models.Order
	for _, o := range r.s.orders {
		if f.OwnerID != nil && o.OwnerID != *f.OwnerID {
			continue
		}
		if f.Status != "" && o.Status != string(f.Status) {
			continue
		}
		all = append(all, o)
	}

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].OrderNumber > all[j].OrderNumber
	})

	return paginate(all, f.Page, f.Limit), int64(len(all)), nil
}

func (r *Repository) GetOwner(_ context.Context, id uuid.UUID) (*models.User, error) {
	defer r.lock()()

	u, ok := r.s.users[id]
	if !ok {
		return nil, orderdomain.ErrOwnerNotFound
	}
	return &u, nil
}

func (r *Repository) AdjustOrdersCount(_ context.Context, userID uuid.UUID, delta int) error {
	defer r.lock()()

	if r.FailAdjust != nil {
		return r.FailAdjust
	}

	u, ok := r.s.users[userID]
	if !ok {
		return orderdomain.ErrOwnerNotFound
	}
	u.OrdersCount += delta
	r.s.users[userID] = u
	return nil
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *Repository) CreateUser(_ context.Context, u *models.User) error {
	defer r.lock()()

	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return userdomain.ErrEmailTaken
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now

	r.s.users[u.ID] = *u
	return nil
}

func (r *Repository) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	defer r.lock()()

	u, ok := r.s.users[id]
	if !ok {
		return nil, userdomain.ErrNotFound
	}
	return &u, nil
}

func (r *Repository) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	defer r.lock()()

	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, userdomain.ErrNotFound
}

func (r *Repository) UpdateUser(_ context.Context, u *models.User) error {
	defer r.lock()()

	existing, ok := r.s.users[u.ID]
	if !ok {
		return userdomain.ErrNotFound
	}
	for id, other := range r.s.users {
		if id != u.ID && other.Email == u.Email {
			return userdomain.ErrEmailTaken
		}
	}

	existing.Name = u.Name
	existing.Email = u.Email
	existing.Sex = u.Sex
	existing.Role = u.Role
	existing.PasswordHash = u.PasswordHash
	existing.UpdatedAt = time.Now()
	r.s.users[u.ID] = existing
	return nil
}

func (r *Repository) DeleteUser(_ context.Context, u *models.User) error {
	defer r.lock()()

	if _, ok := r.s.users[u.ID]; !ok {
		return userdomain.ErrNotFound
	}
	for _, o := range r.s.orders {
		if o.OwnerID == u.ID {
			return userdomain.ErrHasOrders
		}
	}
	delete(r.s.users, u.ID)
	return nil
}

func (r *Repository) ListUsers(_ context.Context, page, limit int) ([]models.User, int64, error) {
	defer r.lock()()

	all := make([]models.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Email < all[j].Email
	})

	return paginate(all, page, limit), int64(len(all)), nil
}

// --------------------------------------------------
// Test helpers
// --------------------------------------------------

// AddUser stores u as is and returns its id.
func (r *Repository) AddUser(u models.User) uuid.UUID {
	defer r.lock()()

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.s.users[u.ID] = u
	return u.ID
}

// AddOrder stores o as is, bypassing counters.
func (r *Repository) AddOrder(o models.Order) uuid.UUID {
	defer r.lock()()

	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.s.orders[o.ID] = o
	return o.ID
}

// OwnedCount counts the stored orders owned by userID.
func (r *Repository) OwnedCount(userID uuid.UUID) int {
	defer r.lock()()

	n := 0
	for _, o := range r.s.orders {
		if o.OwnerID == userID {
			n++
		}
	}
	return n
}

// OrdersCount returns the denormalized counter stored on the user.
func (r *Repository) OrdersCount(userID uuid.UUID) int {
	defer r.lock()()
	return r.s.users[userID].OrdersCount
}

func (r *Repository) OrderCount() int {
	defer r.lock()()
	return len(r.s.orders)
}

func paginate[T any](all []T, page, limit int) []T {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		return all
	}
	start := (page - 1) * limit
	if start >= len(all) {
		return []T{}
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

var (
	_ orderdomain.Repository = (*Repository)(nil)
	_ userdomain.Repository  = (*Repository)(nil)
)

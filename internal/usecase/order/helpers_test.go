package order

import (
	"sync"
	"time"

	"github.com/google/uuid"

	userdomain "github.com/BruksfildServices01/orders-api/internal/domain/user"
	"github.com/BruksfildServices01/orders-api/internal/models"
	"github.com/BruksfildServices01/orders-api/internal/usecase/order/ordertest"
)

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock(t time.Time) *fixedClock { return &fixedClock{now: t} }

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var day = time.Date(2024, time.January, 23, 10, 0, 0, 0, time.UTC)

func addUser(repo *ordertest.Repository, role userdomain.Role) userdomain.Principal {
	id := repo.AddUser(models.User{
		Name:  "user",
		Email: uuid.NewString() + "@example.com",
		Sex:   string(userdomain.SexOther),
		Role:  string(role),
	})
	return userdomain.Principal{ID: id, Roles: userdomain.Roles(string(role))}
}

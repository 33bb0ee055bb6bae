package user

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	domain "github.com/BruksfildServices01/orders-api/internal/domain/user"
	"github.com/BruksfildServices01/orders-api/internal/httperr"
	"github.com/BruksfildServices01/orders-api/internal/models"
	"github.com/BruksfildServices01/orders-api/internal/usecase/order/ordertest"
)

func TestMain(m *testing.M) {
	passwordCost = bcrypt.MinCost
	os.Exit(m.Run())
}

func ptr[T any](v T) *T { return &v }

func register(t *testing.T, repo *ordertest.Repository, email string, by *domain.Principal, role string) *models.User {
	t.Helper()

	u, err := NewRegisterUser(repo, nil, nil).Execute(context.Background(), RegisterUserInput{
		Principal: by,
		Name:      "Jane",
		Email:     email,
		Password:  "secret",
		Sex:       "FEMALE",
		Role:      role,
	})
	require.NoError(t, err)
	return u
}

func principalOf(u *models.User) domain.Principal {
	return domain.Principal{ID: u.ID, Roles: domain.Roles(u.Role)}
}

func TestRegisterUser(t *testing.T) {
	repo := ordertest.New()

	u := register(t, repo, "  Jane@Example.COM ", nil, "")

	assert.Equal(t, "jane@example.com", u.Email)
	assert.Equal(t, "ROLE_USER", u.Role)
	assert.Equal(t, 0, u.OrdersCount)
	assert.NotEqual(t, "secret", u.PasswordHash)
	assert.True(t, CheckPassword(u.PasswordHash, "secret"))
}

func TestRegisterUser_RoleOnlyFromAdmin(t *testing.T) {
	repo := ordertest.New()

	anon := register(t, repo, "anon@example.com", nil, "ROLE_ADMIN")
	assert.Equal(t, "ROLE_USER", anon.Role)

	user := principalOf(anon)
	byUser := register(t, repo, "other@example.com", &user, "ROLE_ADMIN")
	assert.Equal(t, "ROLE_USER", byUser.Role)

	admin := domain.Principal{ID: uuid.New(), Roles: domain.Roles("ROLE_ADMIN")}
	byAdmin := register(t, repo, "boss@example.com", &admin, "ROLE_ADMIN")
	assert.Equal(t, "ROLE_ADMIN", byAdmin.Role)
	assert.Equal(t, []string{"ROLE_ADMIN", "ROLE_USER"}, domain.Roles(byAdmin.Role))
}

func TestRegisterUser_Rejections(t *testing.T) {
	repo := ordertest.New()
	register(t, repo, "taken@example.com", nil, "")

	uc := NewRegisterUser(repo, nil, func(email string) bool { return email != "x@nowhere.invalid" })

	_, err := uc.Execute(context.Background(), RegisterUserInput{Email: "a@example.com", Password: "secret", Sex: "UNKNOWN"})
	assert.True(t, httperr.IsBusiness(err, "invalid_sex"))

	_, err = uc.Execute(context.Background(), RegisterUserInput{Email: "x@nowhere.invalid", Password: "secret", Sex: "MALE"})
	assert.True(t, httperr.IsBusiness(err, "invalid_email_domain"))

	_, err = uc.Execute(context.Background(), RegisterUserInput{Email: "TAKEN@example.com", Password: "secret", Sex: "MALE"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestUpdateUser(t *testing.T) {
	repo := ordertest.New()
	u := register(t, repo, "jane@example.com", nil, "")
	self := principalOf(u)
	uc := NewUpdateUser(repo, nil)

	updated, err := uc.Execute(context.Background(), UpdateUserInput{
		Principal: self,
		UserID:    u.ID,
		Name:      ptr("Jane Doe"),
		Sex:       ptr("OTHER"),
		Role:      ptr("ROLE_ADMIN"),
		Password:  ptr("changed"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", updated.Name)
	assert.Equal(t, "OTHER", updated.Sex)
	assert.Equal(t, "ROLE_USER", updated.Role)
	assert.Equal(t, "jane@example.com", updated.Email)
	assert.True(t, CheckPassword(updated.PasswordHash, "changed"))

	admin := domain.Principal{ID: uuid.New(), Roles: domain.Roles("ROLE_ADMIN")}
	promoted, err := uc.Execute(context.Background(), UpdateUserInput{Principal: admin, UserID: u.ID, Role: ptr("ROLE_ADMIN")})
	require.NoError(t, err)
	assert.Equal(t, "ROLE_ADMIN", promoted.Role)

	_, err = uc.Execute(context.Background(), UpdateUserInput{Principal: admin, UserID: u.ID, Role: ptr("ROLE_ROOT")})
	assert.True(t, httperr.IsBusiness(err, "invalid_role"))

	stranger := domain.Principal{ID: uuid.New(), Roles: domain.Roles("ROLE_USER")}
	_, err = uc.Execute(context.Background(), UpdateUserInput{Principal: stranger, UserID: u.ID, Name: ptr("x")})
	assert.True(t, httperr.IsBusiness(err, "access_denied"))
}

func TestDeleteUser(t *testing.T) {
	repo := ordertest.New()
	owner := register(t, repo, "owner@example.com", nil, "")
	other := register(t, repo, "other@example.com", nil, "")
	repo.AddOrder(models.Order{OwnerID: owner.ID, OrderNumber: "2401230001", Status: "WAITING"})

	uc := NewDeleteUser(repo, nil)

	assert.True(t, httperr.IsBusiness(uc.Execute(context.Background(), principalOf(other), owner.ID), "access_denied"))
	assert.ErrorIs(t, uc.Execute(context.Background(), principalOf(owner), owner.ID), domain.ErrHasOrders)

	require.NoError(t, uc.Execute(context.Background(), principalOf(other), other.ID))
	_, err := repo.GetUser(context.Background(), other.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQueries(t *testing.T) {
	repo := ordertest.New()
	a := register(t, repo, "a@example.com", nil, "")
	b := register(t, repo, "b@example.com", nil, "")
	admin := domain.Principal{ID: uuid.New(), Roles: domain.Roles("ROLE_ADMIN")}

	got, err := NewGetUser(repo).Execute(context.Background(), principalOf(a), a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Email, got.Email)

	_, err = NewGetUser(repo).Execute(context.Background(), principalOf(a), b.ID)
	assert.True(t, httperr.IsBusiness(err, "access_denied"))

	_, err = NewListUsers(repo).Execute(context.Background(), principalOf(a), 1, 10)
	assert.True(t, httperr.IsBusiness(err, "access_denied"))

	res, err := NewListUsers(repo).Execute(context.Background(), admin, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Total)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, defaultPageSize, res.Limit)
}

func TestAuthenticate(t *testing.T) {
	repo := ordertest.New()
	register(t, repo, "jane@example.com", nil, "")
	uc := NewAuthenticate(repo)

	u, err := uc.Execute(context.Background(), " JANE@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", u.Email)

	_, err = uc.Execute(context.Background(), "jane@example.com", "wrong")
	assert.True(t, httperr.IsBusiness(err, "invalid_credentials"))

	_, err = uc.Execute(context.Background(), "nobody@example.com", "secret")
	assert.True(t, httperr.IsBusiness(err, "invalid_credentials"))
}

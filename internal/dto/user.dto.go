package dto

import (
	"time"

	"github.com/google/uuid"

	userdomain "github.com/BruksfildServices01/orders-api/internal/domain/user"
	"github.com/BruksfildServices01/orders-api/internal/models"
)

type UserDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Sex         string    `json:"sex"`
	Roles       []string  `json:"roles"`
	OrdersCount int       `json:"ordersCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewUserDTO(u *models.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Sex:         u.Sex,
		Roles:       userdomain.Roles(u.Role),
		OrdersCount: u.OrdersCount,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func NewUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, NewUserDTO(&users[i]))
	}
	return out
}

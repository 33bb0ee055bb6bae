package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name         string `gorm:"size:255;not null" json:"name"`
	Email        string `gorm:"size:180;uniqueIndex;not null" json:"email"`
	Sex          string `gorm:"size:10;not null" json:"sex"`
	Role         string `gorm:"size:20;not null;default:'ROLE_USER'" json:"role"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	OrdersCount int `gorm:"not null;default:0" json:"ordersCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	OrderNumber string `gorm:"size:16;uniqueIndex:idx_orders_order_number;not null" json:"orderNumber"`
	Status      string `gorm:"size:20;not null" json:"status"`

	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"ownerId"`
	Owner   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

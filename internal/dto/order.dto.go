package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/orders-api/internal/models"
)

// OrderDTO exposes the owner only to admins.
type OrderDTO struct {
	ID          uuid.UUID  `json:"id"`
	OrderNumber string     `json:"orderNumber"`
	Status      string     `json:"status"`
	Owner       *uuid.UUID `json:"owner,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func NewOrderDTO(o *models.Order, withOwner bool) OrderDTO {
	out := OrderDTO{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		Status:      o.Status,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	if withOwner {
		owner := o.OwnerID
		out.Owner = &owner
	}
	return out
}

func NewOrderDTOs(orders []models.Order, withOwner bool) []OrderDTO {
	out := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderDTO(&orders[i], withOwner))
	}
	return out
}

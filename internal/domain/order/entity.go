package order

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/orders-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Reassign sets the new owner and returns the previous one.
// changed is false when the order already belonged to newOwner.
func Reassign(o *models.Order, newOwner uuid.UUID) (previous uuid.UUID, changed bool) {
	previous = o.OwnerID
	if previous == newOwner {
		return previous, false
	}
	o.OwnerID = newOwner
	return previous, true
}

func ChangeStatus(o *models.Order, s Status) {
	o.Status = string(s)
}

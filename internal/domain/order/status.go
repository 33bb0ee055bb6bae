package order

import "github.com/BruksfildServices01/orders-api/internal/httperr"

// ===============================
// Order Status
// ===============================

type Status string

const (
	StatusWaiting   Status = "WAITING"
	StatusCompleted Status = "COMPLETED"
	StatusRefunded  Status = "REFUNDED"
)

func Statuses() []Status {
	return []Status{StatusWaiting, StatusCompleted, StatusRefunded}
}

// ParseStatus maps a plain input value onto a stored status.
// Values are case sensitive.
func ParseStatus(v string) (Status, error) {
	for _, s := range Statuses() {
		if string(s) == v {
			return s, nil
		}
	}
	return "", httperr.ErrBusiness("invalid_status")
}

package order

import "errors"

var (
	ErrNotFound        = errors.New("order not found")
	ErrOwnerNotFound   = errors.New("order owner not found")
	ErrDuplicateNumber = errors.New("order number already taken")
	ErrDailyLimit      = errors.New("daily order number range exhausted")
)

package httperr

import (
	"errors"
	"net/http"
)

// BusinessError is a rule violation with a stable code. Err, when set,
// is the underlying cause.
type BusinessError struct {
	Code string
	Err  error
}

func (e BusinessError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Err
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func Wrap(code string, err error) error {
	return BusinessError{Code: code, Err: err}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode returns the code of the first BusinessError in err's chain.
func BusinessCode(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}

var businessStatus = map[string]int{
	"access_denied":         http.StatusForbidden,
	"invalid_credentials":   http.StatusUnauthorized,
	"order_number_conflict": http.StatusConflict,
	"daily_order_limit":     http.StatusConflict,
	"rate_limited":          http.StatusTooManyRequests,
}

// StatusOf maps a business code to its HTTP status. Codes without an
// entry are client input errors.
func StatusOf(code string) int {
	if s, ok := businessStatus[code]; ok {
		return s
	}
	return http.StatusBadRequest
}

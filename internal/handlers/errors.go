package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderdomain "github.com/BruksfildServices01/orders-api/internal/domain/order"
	userdomain "github.com/BruksfildServices01/orders-api/internal/domain/user"
	"github.com/BruksfildServices01/orders-api/internal/httperr"
	"github.com/BruksfildServices01/orders-api/internal/middleware"
)

// writeError maps use case errors to HTTP responses. Anything unknown is
// attached to the gin context for the request logger and answered with 500.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, orderdomain.ErrNotFound):
		httperr.NotFound(c, "order_not_found", "Order not found.")
		return
	case errors.Is(err, orderdomain.ErrOwnerNotFound):
		httperr.BadRequest(c, "owner_not_found", "Owner does not exist.")
		return
	case errors.Is(err, userdomain.ErrNotFound):
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	case errors.Is(err, userdomain.ErrEmailTaken):
		httperr.Conflict(c, "email_taken", "Email is already registered.")
		return
	case errors.Is(err, userdomain.ErrHasOrders):
		httperr.Conflict(c, "user_has_orders", "User still owns orders.")
		return
	}

	if code, ok := httperr.BusinessCode(err); ok {
		httperr.Write(c, httperr.StatusOf(code), code, businessMessage(code))
		return
	}

	_ = c.Error(err)
	httperr.Internal(c, "internal_error", "Unexpected error.")
}

func businessMessage(code string) string {
	switch code {
	case "access_denied":
		return "Access denied."
	case "invalid_credentials":
		return "Invalid credentials."
	case "order_number_conflict":
		return "Could not assign a unique order number, retry later."
	case "daily_order_limit":
		return "The order number range for today is exhausted."
	case "invalid_email_domain":
		return "The email domain does not accept mail."
	}
	return "Invalid value."
}

func bindError(c *gin.Context, err error) {
	httperr.Validation(c, err)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return uuid.Nil, false
	}
	return id, true
}

func principal(c *gin.Context) (userdomain.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		httperr.Unauthorized(c, "unauthenticated", "Authentication required.")
	}
	return p, ok
}

type PageQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=200"`
}

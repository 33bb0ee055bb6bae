package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBusiness_Wrapped(t *testing.T) {
	err := fmt.Errorf("create order: %w", ErrBusiness("invalid_status"))

	assert.True(t, IsBusiness(err, "invalid_status"))
	assert.False(t, IsBusiness(err, "invalid_sex"))
	assert.False(t, IsBusiness(errors.New("invalid_status"), "invalid_status"))
}

func TestBusinessCode(t *testing.T) {
	code, ok := BusinessCode(fmt.Errorf("wrap: %w", ErrBusiness("user_has_orders")))
	assert.True(t, ok)
	assert.Equal(t, "user_has_orders", code)

	_, ok = BusinessCode(errors.New("boom"))
	assert.False(t, ok)
}

func TestWrap_KeepsCause(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Wrap("order_number_conflict", cause)

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsBusiness(err, "order_number_conflict"))
	assert.Equal(t, "order_number_conflict: duplicate key", err.Error())
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, StatusOf("access_denied"))
	assert.Equal(t, http.StatusConflict, StatusOf("order_number_conflict"))
	assert.Equal(t, http.StatusConflict, StatusOf("daily_order_limit"))
	assert.Equal(t, http.StatusBadRequest, StatusOf("invalid_status"))
}

func TestValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	type req struct {
		Status string `json:"status" binding:"required,oneof=WAITING COMPLETED"`
	}

	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var in req
		if err := c.ShouldBindJSON(&in); err != nil {
			Validation(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"status":"LOST"}`)))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error_code":"invalid_request","message":"Request validation failed.","fields":[{"field":"status","rule":"oneof"}]}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Malformed")
}

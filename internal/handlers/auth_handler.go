package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/orders-api/internal/auth"
	"github.com/BruksfildServices01/orders-api/internal/httperr"
	"github.com/BruksfildServices01/orders-api/internal/httpresp"
	"github.com/BruksfildServices01/orders-api/internal/logger"
	ucUser "github.com/BruksfildServices01/orders-api/internal/usecase/user"
)

type AuthHandler struct {
	authenticate *ucUser.Authenticate
	issuer       *auth.Issuer
}

func NewAuthHandler(authenticate *ucUser.Authenticate, issuer *auth.Issuer) *AuthHandler {
	return &AuthHandler{authenticate: authenticate, issuer: issuer}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	u, err := h.authenticate.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_credentials") {
			logger.Log.Info("login rejected", zap.String("email", req.Email), zap.String("client_ip", c.ClientIP()))
		}
		writeError(c, err)
		return
	}

	token, err := h.issuer.Issue(u)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, TokenResponse{Token: token})
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/orders-api/internal/auth"
	userdomain "github.com/BruksfildServices01/orders-api/internal/domain/user"
	"github.com/BruksfildServices01/orders-api/internal/httperr"
)

const ContextPrincipal = "principal"

func AuthMiddleware(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "expected a bearer token")
			return
		}

		claims, err := issuer.Parse(parts[1])
		if err != nil {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "token is invalid or expired")
			return
		}

		principal, err := claims.Principal()
		if err != nil {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token_payload", "token subject is not a user id")
			return
		}

		c.Set(ContextPrincipal, principal)

		c.Next()
	}
}

// PrincipalFrom returns the caller stored by AuthMiddleware.
func PrincipalFrom(c *gin.Context) (userdomain.Principal, bool) {
	v, exists := c.Get(ContextPrincipal)
	if !exists {
		return userdomain.Principal{}, false
	}
	p, ok := v.(userdomain.Principal)
	return p, ok
}

// OptionalAuth sets the principal when a valid bearer token is sent and
// lets anonymous requests through otherwise.
func OptionalAuth(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if claims, err := issuer.Parse(parts[1]); err == nil {
				if principal, err := claims.Principal(); err == nil {
					c.Set(ContextPrincipal, principal)
				}
			}
		}
		c.Next()
	}
}

// middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"slotwise/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by JWTAuthMiddleware.
const (
	principalKey = "principal"
	principalID  = "principalID"
)

// JWTAuthMiddleware verifies the bearer token against secret and stores the
// caller's principal in the context.
func JWTAuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		principal, err := utils.VerifyPrincipal(tokenString, secret)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "Invalid token")
			return
		}

		c.Set(principalKey, principal)
		c.Set(principalID, principal.ID)
		c.Next()
	}
}

// GetPrincipal returns the verified caller, if any.
func GetPrincipal(c *gin.Context) (*utils.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*utils.Principal)
	return p, ok
}

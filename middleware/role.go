package middleware

import (
	"net/http"

	"slotwise/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole lets the request through only if the authenticated principal
// holds one of roles. It must run after JWTAuthMiddleware.
func RequireRole(roles ...utils.Role) gin.HandlerFunc {
	allowed := make(map[utils.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "Authentication required")
			return
		}
		if !allowed[p.Role] {
			utils.JSONError(c, http.StatusForbidden, "forbidden", "Insufficient permissions")
			return
		}
		c.Next()
	}
}

package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole is the second-stage gate: it assumes RequireAuth already
// ran and rejects principals whose role is not in the allowed set.
func (m *AuthMiddleware) RequireRole(allowed ...string) gin.HandlerFunc {
	allowedSet := make(map[string]struct{}, len(allowed))

	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *gin.Context) {
		p, ok := PrincipalFromContext(c)

		if !ok || p.Role == "" {
			abortUnauthenticated(c, "Missing identity context")
			return
		}

		if _, ok := allowedSet[p.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "forbidden",
					"message": "Insufficient role for this route",
				},
			})
			return
		}
		c.Next()
	}
}

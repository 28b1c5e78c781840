package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karyalink/engagement-go/pkg/types"
)

// RequireRole gates a route on the role claim supplied by the identity
// service. Party membership on the addressed project is enforced again by
// the lifecycle service per operation.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := c.MustGet("claims").(*types.Claims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}
		if claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": role + " only"})
			return
		}
		c.Next()
	}
}

// ClaimsFromContext extracts the verified caller identity.
func ClaimsFromContext(c *gin.Context) (*types.Claims, bool) {
	claimsVal, exists := c.Get("claims")
	if !exists {
		return nil, false
	}
	claims, ok := claimsVal.(*types.Claims)
	return claims, ok
}

package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ahmedbr1/zapvent-courts/internal/models"
	appErrors "github.com/ahmedbr1/zapvent-courts/pkg/errors"
	"github.com/ahmedbr1/zapvent-courts/pkg/response"
)

// RequireRoles only lets callers whose token role is listed through. It must run after JWT.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		value, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, ok := value.(*models.JWTClaims)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ahmedbr1/zapvent-courts/internal/middleware"
	"github.com/ahmedbr1/zapvent-courts/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

func queryInt(c *gin.Context, key string) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return value
}

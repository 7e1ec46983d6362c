package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/Galdes/pdv-sorv-sub000/utils"
)

// WebSocketAuthMiddleware: browsers nao mandam header em upgrade de socket,
// entao o token chega por query string.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(401)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		c.Set("role", claims.Role)
		c.Set("user_id", claims.UserID)

		c.Next()
	}
}

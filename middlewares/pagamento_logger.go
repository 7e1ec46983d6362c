package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/Galdes/pdv-sorv-sub000/utils"
)

// PagamentoLoggerMiddleware registra toda chamada ao motor de acerto:
// trilha minima de auditoria por fora do banco.
func PagamentoLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		mesaID := c.Param("mesa_id")

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			utils.InfoLogger.Printf("Acerto de mesa %s concluido em %v", mesaID, time.Since(start))
		} else {
			utils.ErrorLogger.Printf("Acerto de mesa %s rejeitado (HTTP %d)", mesaID, status)
		}
	}
}

// PagamentoRateLimiter evita marteladas no motor de acerto.
func PagamentoRateLimiter() gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Every(time.Second), 10)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.JSON(429, gin.H{
				"error": "Muitas requisicoes de pagamento, aguarde um instante",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

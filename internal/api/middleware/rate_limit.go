package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/IvanREAL05/control-actividades-sub000/pkg/redis"
	"github.com/IvanREAL05/control-actividades-sub000/pkg/response"
)

// RateLimit throttles a route per client IP using a Redis fixed window.
// With rdb nil, or when Redis fails, requests pass through unthrottled.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		permitido, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			c.Next()
			return
		}

		if !permitido {
			response.Error(c, http.StatusTooManyRequests, "demasiadas_peticiones", "demasiadas peticiones, intenta más tarde")
			c.Abort()
			return
		}

		c.Next()
	}
}

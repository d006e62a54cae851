package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports connectivity to Postgres and Redis. Returns 503 when
// either dependency is unreachable so load balancers can drain the
// instance.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	type healthResponse struct {
		Status string `json:"status"`
		DB     string `json:"db"`
		Redis  string `json:"redis"`
	}

	check := func(ctx context.Context, ping func(context.Context) error) string {
		if err := ping(ctx); err != nil {
			return "down"
		}
		return "up"
	}

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok"}

		resp.DB = check(ctx, func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		})
		resp.Redis = check(ctx, func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})

		code := http.StatusOK
		if resp.DB != "up" || resp.Redis != "up" {
			resp.Status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, resp)
	}
}

package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sims96/lesims-hrm-sub000/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Idempotency protects destructive POST endpoints (the payroll recompute in
// particular) against double submission. Cached responses are replayed; a
// second request arriving while the first is still running gets a 409.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		operator := c.GetString("operator")

		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), operator, idempKey)
		lockKey := cacheKey + ":lock"

		// 1. Replay a cached response if this key already completed. The
		// replay wears the same envelope a live handler writes, so clients
		// branching on the ok flag cannot tell the difference.
		val, err := rdb.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			var cachedRes any
			_ = json.Unmarshal([]byte(val), &cachedRes)
			c.Abort()
			response.Success(c, http.StatusOK, cachedRes, nil)
			return
		}

		// 2. Atomic lock (SetNX). Short expiry so a crashed server does not
		// leave the key stuck.
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", 30*time.Second).Result()

		if !isNew {
			c.Abort()
			response.Error(c, http.StatusConflict, "PROCESSING",
				"This request is already being processed, please wait.", nil)
			return
		}

		// Hand the keys to the handler so it can release the lock and cache
		// the final response.
		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		c.Next()
	}
}

package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-leave/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	idempotencyLockTTL   = 30 * time.Second
	idempotencyCacheTTL  = 24 * time.Hour
)

type CachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func IdempotencyCacheKey(path, employeeID, key string) string {
	return fmt.Sprintf("idemp:%s:%s:%s", path, employeeID, key)
}

// Idempotency replays the stored response of a successful POST that carried
// the same Idempotency-Key for the same employee. Requests without the header
// are untouched.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader(HeaderIdempotencyKey)
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		log := contextutil.GetLogger(ctx, zap.L()).Named("middleware.idempotency")

		cacheKey := IdempotencyCacheKey(c.FullPath(), c.GetString(ContextEmployeeID), idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached CachedResponse
			if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil {
				c.Header("Idempotent-Replay", "true")
				c.Data(cached.Status, "application/json; charset=utf-8", cached.Body)
				c.Abort()
				return
			}
		} else if err != redis.Nil {
			log.Warn("idempotency lookup failed, continuing without cache", zap.Error(err))
			c.Next()
			return
		}

		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			log.Warn("idempotency lock failed, continuing without cache", zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			abortWithError(c, ErrRequestInProgress)
			return
		}

		recorder := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder

		c.Next()

		status := recorder.Status()
		if status >= 200 && status < 300 && recorder.buf.Len() > 0 {
			payload, _ := json.Marshal(CachedResponse{Status: status, Body: recorder.buf.Bytes()})
			if err := rdb.Set(ctx, cacheKey, payload, idempotencyCacheTTL).Err(); err != nil {
				log.Warn("failed to store idempotent response", zap.Error(err))
			}
		}
		if err := rdb.Del(ctx, lockKey).Err(); err != nil {
			log.Warn("failed to release idempotency lock", zap.Error(err))
		}
	}
}

package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/roshnikutty/neighborfoods-api/internal/config"
)

// cachedResponse is the envelope stored in Redis for a cacheable response.
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// bodyRecorder captures the response body while forwarding it to the client.
// Bodies past the limit are forwarded but not recorded.
type bodyRecorder struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int64
	limit  int64
}

func (br *bodyRecorder) WriteHeader(code int) {
	br.status = code
	br.ResponseWriter.WriteHeader(code)
}

func (br *bodyRecorder) Write(b []byte) (int, error) {
	br.size += int64(len(b))
	if br.limit <= 0 || br.size <= br.limit {
		br.buf.Write(b)
	}
	return br.ResponseWriter.Write(b)
}

// cacheKey builds a stable key from the matched route and raw query so the
// two listing collections never collide.
func cacheKey(prefix string, c echo.Context) string {
	sum := sha1.Sum([]byte(c.Path() + "?" + c.Request().URL.RawQuery))
	return fmt.Sprintf("%s:%x", prefix, sum[:])
}

// NewRedisCache returns a middleware that serves successful listing
// responses from Redis.  Listings change on every reservation, so entries
// are short-lived; correctness never depends on the cache, it only absorbs
// read bursts.  When rdb is nil or caching is disabled the middleware is a
// pass-through.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
				return next(c)
			}

			ctx := c.Request().Context()
			key := cacheKey(cfg.Prefix, c)

			if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
				var cr cachedResponse
				if json.Unmarshal(raw, &cr) == nil && cr.Status != 0 {
					if cr.ContentType != "" {
						c.Response().Header().Set(echo.HeaderContentType, cr.ContentType)
					}
					c.Response().Header().Set("X-Cache", "HIT")
					c.Response().WriteHeader(cr.Status)
					_, err := c.Response().Write(cr.Body)
					return err
				}
			}

			br := &bodyRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: int64(cfg.MaxBodyBytes)}
			c.Response().Writer = br
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			// Only 200s within the size limit are worth keeping.
			if br.status == http.StatusOK && (br.limit <= 0 || br.size <= br.limit) {
				cr := cachedResponse{
					Status:      br.status,
					ContentType: c.Response().Header().Get(echo.HeaderContentType),
					Body:        br.buf.Bytes(),
				}
				if raw, err := json.Marshal(cr); err == nil {
					_ = rdb.SetEx(context.Background(), key, raw, cfg.TTL).Err()
				}
			}
			return nil
		}
	}
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	metaContextKey = "response_meta"
	metaCacheHit   = "cache_hit"
	metaElapsed    = "processing_time_ms"
)

// WithResponseMeta gives every request a meta map that handlers fill and the
// response envelope carries. Processing time is added after the handler ran.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Set(metaContextKey, map[string]interface{}{})
		c.Next()
		meta := metaOf(c)
		if _, set := meta[metaElapsed]; !set {
			meta[metaElapsed] = time.Since(start).Milliseconds()
		}
	}
}

// SetCacheHit marks whether the board served in this response came from cache.
func SetCacheHit(c *gin.Context, hit bool) {
	SetMeta(c, metaCacheHit, hit)
}

// SetMeta stores one response meta entry.
func SetMeta(c *gin.Context, key string, value interface{}) {
	if c == nil {
		return
	}
	metaOf(c)[key] = value
}

// ExtractMeta returns the meta map of the request, or nil when none was set.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	raw, ok := c.Get(metaContextKey)
	if !ok {
		return nil
	}
	meta, _ := raw.(map[string]interface{})
	return meta
}

func metaOf(c *gin.Context) map[string]interface{} {
	if meta := ExtractMeta(c); meta != nil {
		return meta
	}
	meta := map[string]interface{}{}
	c.Set(metaContextKey, meta)
	return meta
}

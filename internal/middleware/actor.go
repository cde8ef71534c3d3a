package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teamfit-api/pkg/logger"
)

const (
	actorQueryKey  = "user"
	actorHeaderKey = "X-Actor"
)

// Actor resolves the audit actor for the request. The `user` query parameter
// wins over the X-Actor header; fallback is used when neither is set.
func Actor(fallback string) gin.HandlerFunc {
	fallback = strings.TrimSpace(fallback)
	return func(c *gin.Context) {
		actor := strings.TrimSpace(c.Query(actorQueryKey))
		if actor == "" {
			actor = strings.TrimSpace(c.GetHeader(actorHeaderKey))
		}
		if actor == "" {
			actor = fallback
		}
		c.Set(logger.ActorKey, actor)
		c.Next()
	}
}

// ActorFrom returns the actor resolved by Actor, or an empty string.
func ActorFrom(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(logger.ActorKey)
}

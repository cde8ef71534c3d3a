package cors

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var staticHeaders = map[string]string{
	"Vary":                          "Origin",
	"Access-Control-Allow-Headers":  "Content-Type, X-Requested-With, X-Request-ID, X-Actor",
	"Access-Control-Allow-Methods":  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	"Access-Control-Expose-Headers": "X-Request-ID, Content-Disposition",
	"Access-Control-Max-Age":        "600",
}

// policy decides which browser origins may call the API.
type policy struct {
	any      bool
	exact    map[string]struct{}
	suffixes []string
}

func newPolicy(allowed []string) policy {
	p := policy{exact: make(map[string]struct{}, len(allowed))}
	for _, raw := range allowed {
		origin := strings.TrimRight(strings.TrimSpace(raw), "/")
		switch {
		case origin == "":
		case origin == "*":
			p.any = true
		case strings.Contains(origin, "://*."):
			// "https://*.example.com" admits any subdomain over that scheme.
			p.suffixes = append(p.suffixes, strings.Replace(origin, "://*.", "://.", 1))
		default:
			p.exact[origin] = struct{}{}
		}
	}
	if len(p.exact) == 0 && len(p.suffixes) == 0 {
		p.any = true
	}
	return p
}

func (p policy) allows(origin string) bool {
	if p.any {
		return true
	}
	origin = strings.TrimRight(origin, "/")
	if _, ok := p.exact[origin]; ok {
		return true
	}
	for _, suffix := range p.suffixes {
		scheme, host, ok := strings.Cut(suffix, "://")
		if !ok {
			continue
		}
		if strings.HasPrefix(origin, scheme+"://") && strings.HasSuffix(origin, host) {
			return true
		}
	}
	return false
}

// New returns a CORS middleware for the coach dashboard. An empty origin list
// allows any origin; entries may use a "*." subdomain wildcard.
func New(allowedOrigins []string) gin.HandlerFunc {
	p := newPolicy(allowedOrigins)

	return func(c *gin.Context) {
		h := c.Writer.Header()
		for k, v := range staticHeaders {
			h.Set(k, v)
		}

		switch origin := c.GetHeader("Origin"); {
		case origin == "" && p.any:
			h.Set("Access-Control-Allow-Origin", "*")
		case origin != "" && p.allows(origin):
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

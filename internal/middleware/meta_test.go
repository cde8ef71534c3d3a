package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teamfit-api/internal/service"
)

func TestResponseMetaCollectsCacheHit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var meta map[string]interface{}
	r.Use(func(c *gin.Context) {
		c.Next()
		meta = ExtractMeta(c)
	})
	r.Use(WithResponseMeta())
	r.GET("/boards/:id", func(c *gin.Context) {
		SetCacheHit(c, true)
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest(http.MethodGet, "/boards/1", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, meta)
	assert.Equal(t, true, meta[metaCacheHit])
	assert.Contains(t, meta, metaElapsed)
}

func TestSetMetaWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, ExtractMeta(c))

	SetMeta(c, "week_start", "2024-05-13")
	assert.Equal(t, "2024-05-13", ExtractMeta(c)["week_start"])
}

func TestMetricsCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	telemetry := service.NewTelemetryService()
	r := gin.New()
	r.Use(Metrics(telemetry))
	r.GET("/api/sports/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 2; i++ {
		req, _ := http.NewRequest(http.MethodGet, "/api/sports/3", nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, uint64(2), telemetry.Snapshot().RequestsTotal)
}

func TestMetricsToleratesNilTelemetry(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics(nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	rec := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsSkipsProbeRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	telemetry := service.NewTelemetryService()
	r := gin.New()
	r.Use(Metrics(telemetry))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/health", "/nowhere"} {
		rec := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(rec, req)
	}
	assert.Equal(t, uint64(1), telemetry.Snapshot().RequestsTotal)
}

package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, "system", cfg.DefaultActor)
	assert.Equal(t, 5*time.Minute, cfg.Cache.MetricBoardTTL)
	assert.Equal(t, 1, cfg.Cache.FormulaCacheSizeMB)
	assert.Equal(t, int64(10*1024*1024), cfg.Media.MaxUploadBytes)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.CORS.AllowedOrigins)
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	v.Set("METRIC_BOARD_CACHE_TTL", "not-a-duration")
	v.Set("MEDIA_SIGNED_URL_TTL", "2m")
	v.Set("FORMULA_CACHE_SIZE_MB", 0)

	cfg := fromViper(v)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 5*time.Minute, cfg.Cache.MetricBoardTTL)
	assert.Equal(t, 2*time.Minute, cfg.Media.SignedURLTTL)
	assert.Equal(t, 1, cfg.Cache.FormulaCacheSizeMB)
}

func TestLocation(t *testing.T) {
	cfg := &Config{Timezone: "America/Sao_Paulo"}
	loc := cfg.Location()
	require.NotNil(t, loc)
	assert.Equal(t, "America/Sao_Paulo", loc.String())

	assert.Equal(t, time.UTC, (&Config{Timezone: "Nowhere/Invalid"}).Location())
	assert.Equal(t, time.UTC, (*Config)(nil).Location())
}

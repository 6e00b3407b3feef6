package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("PATIENT_CACHE_TTL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg := Load()

	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 15*time.Minute, cfg.PatientCacheTTL)
	assert.Empty(t, cfg.CORSAllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("PATIENT_CACHE_TTL", "90s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.igabaycare.ph, http://localhost:5173 ,")

	cfg := Load()

	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 90*time.Second, cfg.PatientCacheTTL)
	assert.Equal(t, []string{"https://app.igabaycare.ph", "http://localhost:5173"}, cfg.CORSAllowedOrigins)
}

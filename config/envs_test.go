package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	env := map[string]string{
		"DB_HOST":           "localhost",
		"DB_PORT":           "27017",
		"DB_USER":           "maze",
		"DB_PASS":           "secret",
		"DB_NAME":           "vinom",
		"REDIS_ADDR":        "localhost:6379",
		"JWT_SECRET":        "jwt-secret",
		"JWT_ISSUER":        "vinom-maze",
		"HOST_IP":           "0.0.0.0",
		"REST_PORT":         "8080",
		"LEVEL_TTL_SECONDS": "120",
	}
	for k, v := range env {
		t.Setenv(k, v)
	}

	cfg := Load()

	assert.Equal(t, cfg, Envs)
	assert.Equal(t, 27017, cfg.DBPort)
	assert.Equal(t, 8080, cfg.RESTPort)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2*time.Minute, cfg.LevelTTL)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Empty(t, cfg.PresetsFile)
}

func TestPrefix(t *testing.T) {
	assert.Equal(t, ColorCyan+"[GENERATOR]"+ColorReset+" ", Prefix("GENERATOR", ColorCyan))
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STR", "  value  ")
	t.Setenv("TEST_BLANK", "   ")
	t.Setenv("TEST_INT", "12")
	t.Setenv("TEST_BAD_INT", "twelve")
	t.Setenv("TEST_FLOAT", "0.85")
	t.Setenv("TEST_DURATION", "1500ms")

	assert.Equal(t, "value", getEnv("TEST_STR", "fallback"))
	assert.Equal(t, "fallback", getEnv("TEST_BLANK", "fallback"))
	assert.Equal(t, "fallback", getEnv("TEST_UNSET_VAR", "fallback"))

	assert.Equal(t, 12, getEnvInt("TEST_INT", 5))
	assert.Equal(t, 5, getEnvInt("TEST_BAD_INT", 5))
	assert.Equal(t, 0.85, getEnvFloat("TEST_FLOAT", 0.7))
	assert.Equal(t, 0.7, getEnvFloat("TEST_UNSET_VAR", 0.7))
	assert.Equal(t, 1500*time.Millisecond, getEnvDuration("TEST_DURATION", time.Second))
	assert.Equal(t, time.Second, getEnvDuration("TEST_BAD_INT", time.Second))
}

func TestDBConfigDSN(t *testing.T) {
	cfg := &DBConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "ielts", SSLMode: "disable", TimeZone: "UTC"}
	dsn := cfg.DSN()
	for _, part := range []string{"host=db", "port=5432", "user=u", "password=p", "dbname=ielts", "sslmode=disable", "TimeZone=UTC"} {
		assert.Contains(t, dsn, part)
	}
}

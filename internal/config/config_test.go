package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPasetoKey = "12345678901234567890123456789012" // exactly 32 bytes

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PASETO_KEY", testPasetoKey)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.Server.IsDevelopment())
	assert.Equal(t, TokenFormatPaseto, cfg.Auth.TokenFormat)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenDuration)
	assert.Equal(t, 3, cfg.Friends.RequestLimit)
	assert.Equal(t, time.Minute, cfg.Friends.RequestWindow)
	assert.Equal(t, 10, cfg.Pagination.DefaultPageSize)
	assert.Equal(t, 10, cfg.Pagination.MaxPageSize)
	assert.Equal(t, 200*time.Millisecond, cfg.Database.SlowQueryThreshold)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PASETO_KEY", testPasetoKey)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("FRIEND_REQUEST_LIMIT", "5")
	t.Setenv("FRIEND_REQUEST_WINDOW", "30")
	t.Setenv("TRUSTED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("DB_SLOW_QUERY_MS", "50")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Server.IsDevelopment())
	assert.Equal(t, 5, cfg.Friends.RequestLimit)
	assert.Equal(t, 30*time.Second, cfg.Friends.RequestWindow)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.TrustedOrigins)
	assert.Equal(t, 50*time.Millisecond, cfg.Database.SlowQueryThreshold)
	assert.Equal(t, 0, cfg.Redis.DB, "invalid integers fall back to the default")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name:    "short PASETO key",
			envVars: map[string]string{"PASETO_KEY": "short"},
		},
		{
			name:    "short JWT secret",
			envVars: map[string]string{"TOKEN_FORMAT": "jwt", "JWT_SECRET": "too-short"},
		},
		{
			name:    "unknown token format",
			envVars: map[string]string{"TOKEN_FORMAT": "opaque", "PASETO_KEY": testPasetoKey},
		},
		{
			name:    "zero friend request limit",
			envVars: map[string]string{"PASETO_KEY": testPasetoKey, "FRIEND_REQUEST_LIMIT": "0"},
		},
		{
			name:    "default page size above max",
			envVars: map[string]string{"PASETO_KEY": testPasetoKey, "PAGE_SIZE": "20", "MAX_PAGE_SIZE": "10"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_JWT(t *testing.T) {
	t.Setenv("TOKEN_FORMAT", "JWT")
	t.Setenv("JWT_SECRET", "this_is_a_test_secret_key_with_32_chars_minimum")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, TokenFormatJWT, cfg.Auth.TokenFormat)
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	c := DatabaseConfig{
		Host: "db", Port: "5432", User: "u", Password: "p", DBName: "social", SSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=social sslmode=disable", c.ConnectionString())

	c.ChannelBinding = "require"
	assert.Contains(t, c.ConnectionString(), " channel_binding=require")
}

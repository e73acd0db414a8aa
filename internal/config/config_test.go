package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, uint16(8085), cfg.HttpServerPort)
	assert.Equal(t, "painting_auction", cfg.PostgresDb)
	assert.Equal(t, 2*time.Hour, cfg.JwtTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CorsAllowedOrigins)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{}},
		{"short secret", map[string]string{"JWT_SECRET": "short"}},
		{"bad port", map[string]string{"JWT_SECRET": "0123456789abcdef0123", "HTTP_SERVER_PORT": "80"}},
		{"bad cost", map[string]string{"JWT_SECRET": "0123456789abcdef0123", "BCRYPT_COST": "2"}},
		{"bad seed email", map[string]string{"JWT_SECRET": "0123456789abcdef0123", "ADMIN_SEED_EMAIL": "nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

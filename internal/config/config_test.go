package config_test

import (
	"testing"
	"time"

	"github.com/dom/crowd-translate/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(*testing.T, *config.Config)
	}{
		{
			name:    "missing jwt secret",
			env:     map[string]string{"JWT_SECRET": ""},
			wantErr: true,
		},
		{
			name: "defaults",
			env:  map[string]string{"JWT_SECRET": "secret"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "3001", cfg.Port)
				assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL())
				assert.Equal(t, "global", cfg.TranslateLocation)
				assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
				assert.False(t, cfg.IsProduction())
			},
		},
		{
			name: "overrides",
			env: map[string]string{
				"JWT_SECRET":           "secret",
				"PORT":                 "9000",
				"ENVIRONMENT":          "production",
				"JWT_EXPIRATION_HOURS": "2",
				"FRONTEND_URL":         "https://books.example.com/",
				"CORS_ALLOWED_ORIGINS": "https://a.example.com, https://b.example.com,",
			},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "9000", cfg.Port)
				assert.True(t, cfg.IsProduction())
				assert.Equal(t, 2*time.Hour, cfg.SessionTTL())
				assert.Equal(t, "https://books.example.com", cfg.FrontendURL)
				assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
			},
		},
		{
			name: "non-positive expiration",
			env: map[string]string{
				"JWT_SECRET":           "secret",
				"JWT_EXPIRATION_HOURS": "0",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := config.Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "security.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultSecurityConfig(t *testing.T) {
	c := DefaultSecurityConfig()

	require.NoError(t, c.Validate())
	assert.Equal(t, 6, c.GetMinPasswordLength())
	assert.Equal(t, 720, c.GetSessionExpiryHours())
	assert.Equal(t, "news-portal", c.GetIssuer())
	assert.Contains(t, c.GetWeakPasswords(), "password")
}

func TestLoadSecurityConfig(t *testing.T) {
	tests := []struct {
		name       string
		configYAML string
		wantErr    string
		validate   func(*testing.T, *SecurityConfig)
	}{
		{
			name: "valid config",
			configYAML: `security:
  password:
    min_length: 10
    weak_passwords:
      - "admin"
      - "password"
  session:
    expiry_hours: 24
    issuer: "portal-test"
  rate_limit:
    token_per_minute: 10
    signup_per_minute: 2
`,
			validate: func(t *testing.T, c *SecurityConfig) {
				assert.Equal(t, 10, c.GetMinPasswordLength())
				assert.Equal(t, []string{"admin", "password"}, c.GetWeakPasswords())
				assert.Equal(t, 24, c.GetSessionExpiryHours())
				assert.Equal(t, "portal-test", c.GetIssuer())
				assert.Equal(t, 10, c.Security.RateLimit.TokenPerMinute)
				assert.Equal(t, 2, c.Security.RateLimit.SignupPerMinute)
			},
		},
		{
			name: "partial config keeps defaults",
			configYAML: `security:
  session:
    expiry_hours: 1
`,
			validate: func(t *testing.T, c *SecurityConfig) {
				assert.Equal(t, 6, c.GetMinPasswordLength())
				assert.Equal(t, 1, c.GetSessionExpiryHours())
				assert.Equal(t, "news-portal", c.GetIssuer())
			},
		},
		{
			name: "zero min length",
			configYAML: `security:
  password:
    min_length: 0
`,
			wantErr: "min_length must be positive",
		},
		{
			name: "negative expiry",
			configYAML: `security:
  session:
    expiry_hours: -5
`,
			wantErr: "expiry_hours must be positive",
		},
		{
			name:       "invalid yaml",
			configYAML: "security: [unclosed",
			wantErr:    "failed to parse config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadSecurityConfig(writeConfig(t, tt.configYAML))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.validate(t, config)
		})
	}
}

func TestLoadSecurityConfig_MissingFile(t *testing.T) {
	_, err := LoadSecurityConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

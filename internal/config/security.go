package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SecurityConfig represents the account and session policy.
type SecurityConfig struct {
	Security struct {
		Password struct {
			MinLength     int      `yaml:"min_length"`
			WeakPasswords []string `yaml:"weak_passwords"`
		} `yaml:"password"`
		Session struct {
			ExpiryHours int    `yaml:"expiry_hours"`
			Issuer      string `yaml:"issuer"`
		} `yaml:"session"`
		RateLimit struct {
			TokenPerMinute  int `yaml:"token_per_minute"`
			SignupPerMinute int `yaml:"signup_per_minute"`
		} `yaml:"rate_limit"`
	} `yaml:"security"`
}

// DefaultSecurityConfig returns the policy used when no YAML file is configured.
// Sessions last 30 days.
func DefaultSecurityConfig() *SecurityConfig {
	var c SecurityConfig
	c.Security.Password.MinLength = 6
	c.Security.Password.WeakPasswords = []string{"password", "123456", "12345678", "qwerty", "letmein"}
	c.Security.Session.ExpiryHours = 30 * 24
	c.Security.Session.Issuer = "news-portal"
	c.Security.RateLimit.TokenPerMinute = 5
	c.Security.RateLimit.SignupPerMinute = 5
	return &c
}

// LoadSecurityConfig loads security configuration from YAML file.
// Fields missing from the file keep their defaults.
func LoadSecurityConfig(path string) (*SecurityConfig, error) {
	// #nosec G304 -- path comes from SECURITY_CONFIG_PATH, not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultSecurityConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate checks configuration correctness.
func (c *SecurityConfig) Validate() error {
	if c.Security.Password.MinLength <= 0 {
		return fmt.Errorf("password min_length must be positive")
	}
	if c.Security.Session.ExpiryHours <= 0 {
		return fmt.Errorf("session expiry_hours must be positive")
	}
	if strings.TrimSpace(c.Security.Session.Issuer) == "" {
		return fmt.Errorf("session issuer is required")
	}
	if c.Security.RateLimit.TokenPerMinute <= 0 || c.Security.RateLimit.SignupPerMinute <= 0 {
		return fmt.Errorf("rate_limit values must be positive")
	}
	return nil
}

// GetMinPasswordLength returns the minimum password length requirement.
func (c *SecurityConfig) GetMinPasswordLength() int {
	return c.Security.Password.MinLength
}

// GetWeakPasswords returns the list of rejected passwords.
func (c *SecurityConfig) GetWeakPasswords() []string {
	return c.Security.Password.WeakPasswords
}

// GetSessionExpiryHours returns the token lifetime in hours.
func (c *SecurityConfig) GetSessionExpiryHours() int {
	return c.Security.Session.ExpiryHours
}

// GetIssuer returns the JWT issuer claim.
func (c *SecurityConfig) GetIssuer() string {
	return c.Security.Session.Issuer
}

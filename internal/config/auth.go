package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvAuthSecret          = "AUTH_SECRET"
	EnvAuthIssuer          = "AUTH_ISSUER"
	EnvAuthAccessTTL       = "AUTH_ACCESS_TTL"
	EnvAuthRefreshTTL      = "AUTH_REFRESH_TTL"
	EnvAuthCodeTTL         = "AUTH_CODE_TTL"
	EnvAuthCodeMaxAttempts = "AUTH_CODE_MAX_ATTEMPTS"
	EnvAuthDevCode         = "AUTH_DEV_CODE"
)

// AuthConfig contains token signing and verification code settings.
type AuthConfig struct {
	Secret          string `toml:"secret"`
	Issuer          string `toml:"issuer"`
	AccessTTL       string `toml:"access_ttl"`
	RefreshTTL      string `toml:"refresh_ttl"`
	CodeTTL         string `toml:"code_ttl"`
	CodeMaxAttempts int    `toml:"code_max_attempts"`

	// DevCode, when set, is issued instead of a random code. Development only.
	DevCode string `toml:"dev_code"`
}

func (c *AuthConfig) AccessTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.AccessTTL)
	return d
}

func (c *AuthConfig) RefreshTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.RefreshTTL)
	return d
}

func (c *AuthConfig) CodeTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.CodeTTL)
	return d
}

func (c *AuthConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *AuthConfig) Merge(overlay *AuthConfig) {
	if overlay.Secret != "" {
		c.Secret = overlay.Secret
	}
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.AccessTTL != "" {
		c.AccessTTL = overlay.AccessTTL
	}
	if overlay.RefreshTTL != "" {
		c.RefreshTTL = overlay.RefreshTTL
	}
	if overlay.CodeTTL != "" {
		c.CodeTTL = overlay.CodeTTL
	}
	if overlay.CodeMaxAttempts != 0 {
		c.CodeMaxAttempts = overlay.CodeMaxAttempts
	}
	if overlay.DevCode != "" {
		c.DevCode = overlay.DevCode
	}
}

func (c *AuthConfig) loadDefaults() {
	if c.Issuer == "" {
		c.Issuer = "pledge"
	}
	if c.AccessTTL == "" {
		c.AccessTTL = "15m"
	}
	if c.RefreshTTL == "" {
		c.RefreshTTL = "720h"
	}
	if c.CodeTTL == "" {
		c.CodeTTL = "10m"
	}
	if c.CodeMaxAttempts == 0 {
		c.CodeMaxAttempts = 5
	}
}

func (c *AuthConfig) loadEnv() {
	if v := os.Getenv(EnvAuthSecret); v != "" {
		c.Secret = v
	}
	if v := os.Getenv(EnvAuthIssuer); v != "" {
		c.Issuer = v
	}
	if v := os.Getenv(EnvAuthAccessTTL); v != "" {
		c.AccessTTL = v
	}
	if v := os.Getenv(EnvAuthRefreshTTL); v != "" {
		c.RefreshTTL = v
	}
	if v := os.Getenv(EnvAuthCodeTTL); v != "" {
		c.CodeTTL = v
	}
	if v := os.Getenv(EnvAuthCodeMaxAttempts); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.CodeMaxAttempts = n
		}
	}
	if v := os.Getenv(EnvAuthDevCode); v != "" {
		c.DevCode = v
	}
}

func (c *AuthConfig) validate() error {
	if len(c.Secret) < 32 {
		return fmt.Errorf("secret must be at least 32 bytes")
	}
	for name, v := range map[string]string{
		"access_ttl":  c.AccessTTL,
		"refresh_ttl": c.RefreshTTL,
		"code_ttl":    c.CodeTTL,
	} {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	if c.CodeMaxAttempts < 1 {
		return fmt.Errorf("code_max_attempts must be positive")
	}
	if c.DevCode != "" && len(c.DevCode) != 6 {
		return fmt.Errorf("dev_code must be 6 digits")
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	EnvMetricsEnabled   = "METRICS_ENABLED"
	EnvMetricsNamespace = "METRICS_NAMESPACE"
	EnvMetricsPath      = "METRICS_PATH"
)

// MetricsConfig contains Prometheus exposition settings.
type MetricsConfig struct {
	Enabled   *bool  `toml:"enabled"`
	Namespace string `toml:"namespace"`
	Path      string `toml:"path"`
}

// IsEnabled reports whether metrics are collected. Metrics default to on.
func (c *MetricsConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

func (c *MetricsConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *MetricsConfig) Merge(overlay *MetricsConfig) {
	if overlay.Enabled != nil {
		c.Enabled = overlay.Enabled
	}
	if overlay.Namespace != "" {
		c.Namespace = overlay.Namespace
	}
	if overlay.Path != "" {
		c.Path = overlay.Path
	}
}

func (c *MetricsConfig) loadDefaults() {
	if c.Namespace == "" {
		c.Namespace = "pledge"
	}
	if c.Path == "" {
		c.Path = "/metrics"
	}
}

func (c *MetricsConfig) loadEnv() {
	if v := os.Getenv(EnvMetricsEnabled); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Enabled = &b
		}
	}
	if v := os.Getenv(EnvMetricsNamespace); v != "" {
		c.Namespace = v
	}
	if v := os.Getenv(EnvMetricsPath); v != "" {
		c.Path = v
	}
}

func (c *MetricsConfig) validate() error {
	if !strings.HasPrefix(c.Path, "/") {
		return fmt.Errorf("path must start with /")
	}
	return nil
}

// internal/common/config/config.go
package config

import (
	"net/url"
	"strings"
)

// Failure policies for a run.
const (
	// FailurePolicyAbort stops the run at the first customer that cannot be fully submitted.
	FailurePolicyAbort = "abort"
	// FailurePolicyContinue records the failed customer and moves on to the next one.
	FailurePolicyContinue = "continue"
)

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Target    TargetConfig    `mapstructure:"target"`
	Generator GeneratorConfig `mapstructure:"generator"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
}

// --- Core App Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// TargetConfig describes the remote customer service being seeded.
type TargetConfig struct {
	BaseURL       string `mapstructure:"base_url"`
	CustomersPath string `mapstructure:"customers_path"`
	MethodsSuffix string `mapstructure:"methods_suffix"`
}

// CustomersURL returns the creation endpoint, e.g. http://localhost:8080/customers.
func (t TargetConfig) CustomersURL() string {
	return strings.TrimRight(t.BaseURL, "/") + "/" + strings.TrimLeft(t.CustomersPath, "/")
}

// GeneratorConfig controls how many customers are generated and how failures are treated.
type GeneratorConfig struct {
	DefaultCount     int    `mapstructure:"default_count"`
	FailurePolicy    string `mapstructure:"failure_policy"`
	Seed             uint64 `mapstructure:"seed"` // 0 = seed from crypto/rand
	ValidatePayloads bool   `mapstructure:"validate_payloads"`
}

type HTTPConfig struct {
	Timeout int `mapstructure:"timeout"` // milliseconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// MetricsConfig controls the Prometheus endpoint exposed while a run is active.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

type TracingConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
}

func validBaseURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Default values applied when neither config files nor the environment set them.
const (
	DefaultBaseURL       = "http://localhost:8080"
	DefaultCustomersPath = "/customers"
	DefaultMethodsSuffix = "/methods"
	DefaultCount         = 10
	DefaultTimeout       = 10000 // milliseconds
	DefaultMetricsAddr   = ":9102"
)

// Load reads configs/config.yaml (optional), merges config.<APP_ENVIRONMENT>.yaml
// on top and applies environment overrides such as TARGET_BASE_URL.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // environment file is optional

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every key so that AutomaticEnv overrides reach Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "customer-generator")
	v.SetDefault("app.version", "dev")
	v.SetDefault("app.environment", "development")

	v.SetDefault("target.base_url", DefaultBaseURL)
	v.SetDefault("target.customers_path", DefaultCustomersPath)
	v.SetDefault("target.methods_suffix", DefaultMethodsSuffix)

	v.SetDefault("generator.default_count", DefaultCount)
	v.SetDefault("generator.failure_policy", FailurePolicyAbort)
	v.SetDefault("generator.seed", 0)
	v.SetDefault("generator.validate_payloads", true)

	v.SetDefault("http.timeout", DefaultTimeout)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stdout")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.address", DefaultMetricsAddr)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "customer-generator")
	v.SetDefault("tracing.jaeger_endpoint", "")
}

// loadEnvFile loads the first .env found walking up from the working directory.
func loadEnvFile() string {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// applyDefaults fills values that were explicitly set to zero or empty.
func applyDefaults(cfg *Config) {
	if cfg.Target.BaseURL == "" {
		cfg.Target.BaseURL = DefaultBaseURL
	}
	if cfg.Target.CustomersPath == "" {
		cfg.Target.CustomersPath = DefaultCustomersPath
	}
	if cfg.Target.MethodsSuffix == "" {
		cfg.Target.MethodsSuffix = DefaultMethodsSuffix
	}

	if cfg.Generator.DefaultCount == 0 {
		cfg.Generator.DefaultCount = DefaultCount
	}
	cfg.Generator.FailurePolicy = strings.ToLower(strings.TrimSpace(cfg.Generator.FailurePolicy))
	if cfg.Generator.FailurePolicy == "" {
		cfg.Generator.FailurePolicy = FailurePolicyAbort
	}

	if cfg.HTTP.Timeout == 0 {
		cfg.HTTP.Timeout = DefaultTimeout
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = DefaultMetricsAddr
	}
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = cfg.App.Name
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if !validBaseURL(cfg.Target.BaseURL) {
		return fmt.Errorf("target.base_url must be an absolute http(s) URL, got %q", cfg.Target.BaseURL)
	}
	if cfg.Generator.DefaultCount < 0 {
		return fmt.Errorf("generator.default_count must not be negative")
	}
	switch cfg.Generator.FailurePolicy {
	case FailurePolicyAbort, FailurePolicyContinue:
	default:
		return fmt.Errorf("generator.failure_policy must be %q or %q, got %q",
			FailurePolicyAbort, FailurePolicyContinue, cfg.Generator.FailurePolicy)
	}
	if cfg.HTTP.Timeout < 0 {
		return fmt.Errorf("http.timeout must be positive")
	}
	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfig(t, "app:\n  name: customer-generator\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.Target.BaseURL)
	assert.Equal(t, "http://localhost:8080/customers", cfg.Target.CustomersURL())
	assert.Equal(t, DefaultMethodsSuffix, cfg.Target.MethodsSuffix)
	assert.Equal(t, DefaultCount, cfg.Generator.DefaultCount)
	assert.Equal(t, FailurePolicyAbort, cfg.Generator.FailurePolicy)
	assert.True(t, cfg.Generator.ValidatePayloads)
	assert.Equal(t, DefaultTimeout, cfg.HTTP.Timeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadFromFile_Values(t *testing.T) {
	path := writeConfig(t, `
target:
  base_url: http://seed.internal:9000/api
  customers_path: clients
generator:
  default_count: 25
  failure_policy: Continue
  seed: 42
  validate_payloads: false
http:
  timeout: 2500
logging:
  level: debug
  format: json
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "http://seed.internal:9000/api/clients", cfg.Target.CustomersURL())
	assert.Equal(t, 25, cfg.Generator.DefaultCount)
	assert.Equal(t, FailurePolicyContinue, cfg.Generator.FailurePolicy)
	assert.Equal(t, uint64(42), cfg.Generator.Seed)
	assert.False(t, cfg.Generator.ValidatePayloads)
	assert.Equal(t, 2500*time.Millisecond, GetDuration(cfg.HTTP.Timeout))
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFromFile_EnvOverride(t *testing.T) {
	t.Setenv("TARGET_BASE_URL", "https://override.example.com")
	t.Setenv("GENERATOR_DEFAULT_COUNT", "7")
	path := writeConfig(t, "target:\n  base_url: http://localhost:8080\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://override.example.com", cfg.Target.BaseURL)
	assert.Equal(t, 7, cfg.Generator.DefaultCount)
}

func TestLoadFromFile_ExpandsPlaceholders(t *testing.T) {
	t.Setenv("SEED_TARGET", "http://placeholder:8081")
	path := writeConfig(t, "target:\n  base_url: ${SEED_TARGET}\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://placeholder:8081", cfg.Target.BaseURL)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		errMsg string
	}{
		{
			name:   "relative base url",
			body:   "target:\n  base_url: localhost:8080\n",
			errMsg: "target.base_url",
		},
		{
			name:   "unknown failure policy",
			body:   "generator:\n  failure_policy: retry\n",
			errMsg: "generator.failure_policy",
		},
		{
			name:   "negative count",
			body:   "generator:\n  default_count: -3\n",
			errMsg: "generator.default_count",
		},
		{
			name:   "negative timeout",
			body:   "http:\n  timeout: -1\n",
			errMsg: "http.timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFromFile(writeConfig(t, tt.body))
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestTargetConfig_CustomersURL(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"http://localhost:8080", "/customers", "http://localhost:8080/customers"},
		{"http://localhost:8080/", "/customers", "http://localhost:8080/customers"},
		{"http://localhost:8080", "customers", "http://localhost:8080/customers"},
	}
	for _, tt := range tests {
		got := TargetConfig{BaseURL: tt.base, CustomersPath: tt.path}.CustomersURL()
		assert.Equal(t, tt.want, got)
	}
}

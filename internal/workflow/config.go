package workflow

import (
	"fmt"

	"customer-generator/internal/common/config"
)

type Config struct {
	FailurePolicy    string `mapstructure:"failure_policy"`
	ValidatePayloads bool   `mapstructure:"validate_payloads"`
}

func DefaultConfig() *Config {
	return &Config{
		FailurePolicy:    config.FailurePolicyAbort,
		ValidatePayloads: true,
	}
}

// ConfigFromApp picks the workflow settings out of the application config.
func ConfigFromApp(appCfg *config.Config) *Config {
	if appCfg == nil {
		return DefaultConfig()
	}
	return &Config{
		FailurePolicy:    appCfg.Generator.FailurePolicy,
		ValidatePayloads: appCfg.Generator.ValidatePayloads,
	}
}

func (c *Config) Validate() error {
	switch c.FailurePolicy {
	case config.FailurePolicyAbort, config.FailurePolicyContinue:
		return nil
	default:
		return fmt.Errorf("failure_policy must be %q or %q, got %q",
			config.FailurePolicyAbort, config.FailurePolicyContinue, c.FailurePolicy)
	}
}

func (c *Config) abortOnFailure() bool {
	return c.FailurePolicy == config.FailurePolicyAbort
}

package config

import "fmt"

// Environment names the deployment environment a binary runs in.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// BaseConfig carries the identity fields every binary in this module needs.
type BaseConfig struct {
	Name        string      `yaml:"name" mapstructure:"name"`
	Environment Environment `yaml:"environment" mapstructure:"environment"`
	Debug       bool        `yaml:"debug" mapstructure:"debug"`
}

// ApplyDefaults fills in development defaults. Development implies debug
// so local runs log verbosely without extra configuration.
func (c *BaseConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = EnvDevelopment
	}
	if c.Environment == EnvDevelopment {
		c.Debug = true
	}
}

// Validate checks the identity fields.
func (c *BaseConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("base.name is required")
	}
	switch c.Environment {
	case EnvDevelopment, EnvStaging, EnvProduction:
		return nil
	default:
		return fmt.Errorf("base.environment must be development, staging, or production (got: %s)", c.Environment)
	}
}

// IsProduction reports whether the binary runs in production.
func (c *BaseConfig) IsProduction() bool {
	return c.Environment == EnvProduction
}

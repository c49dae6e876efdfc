package config

import (
	"fmt"

	"github.com/kbukum/svcregistry/logger"
	"github.com/kbukum/svcregistry/validation"
)

// ServiceConfig contains the configuration fields every binary needs.
// Binaries extend it by embedding it in their own config structs.
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Inspect InspectConfig `yaml:"inspect" mapstructure:"inspect"`
//	}
type ServiceConfig struct {
	Base    BaseConfig    `yaml:"base" mapstructure:"base"`
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
}

// GetServiceConfig returns the base ServiceConfig. When embedded, the method
// is promoted so the embedding struct satisfies Config.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig {
	return c
}

// ApplyDefaults applies default values to the base configuration.
// Embedding structs that override it call c.ServiceConfig.ApplyDefaults() first.
func (c *ServiceConfig) ApplyDefaults() {
	c.Base.ApplyDefaults()
	// Propagate service name into logging so Init() uses the right tag.
	if c.Logging.Service == "" && c.Base.Name != "" {
		c.Logging.Service = c.Base.Name
	}
	if c.Base.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()
}

// Validate validates the base configuration fields.
func (c *ServiceConfig) Validate() error {
	if err := c.Base.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}

// Config is implemented by every struct embedding ServiceConfig.
type Config interface {
	GetServiceConfig() *ServiceConfig
	ApplyDefaults()
	Validate() error
}

// Load loads, defaults and validates cfg. Struct tags are checked with the
// validation package after cfg.Validate succeeds.
func Load(serviceName string, cfg Config, opts ...LoaderOption) error {
	if err := LoadConfig(serviceName, cfg, opts...); err != nil {
		return err
	}
	cfg.ApplyDefaults()
	if cfg.GetServiceConfig().Base.Name == "" {
		cfg.GetServiceConfig().Base.Name = serviceName
		cfg.ApplyDefaults()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return validation.Validate(cfg)
}

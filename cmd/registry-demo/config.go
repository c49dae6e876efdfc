package main

import (
	"fmt"

	"github.com/kbukum/svcregistry/config"
	"github.com/kbukum/svcregistry/inspect"
)

const serviceName = "registry-demo"

// AppConfig is the registry-demo configuration.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Registry             RegistryConfig      `yaml:"registry" mapstructure:"registry"`
	Inspect              inspect.Config      `yaml:"inspect" mapstructure:"inspect"`
	Observability        ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
}

// RegistryConfig selects what gets registered and how it is reported.
type RegistryConfig struct {
	Roots      []string `yaml:"roots" mapstructure:"roots" validate:"min=1,dive,oneof=database user_repository metrics_repository user_service"`
	DumpFormat string   `yaml:"dump_format" mapstructure:"dump_format" validate:"oneof=yaml json none"`
}

// ObservabilityConfig toggles the OTLP exporters.
type ObservabilityConfig struct {
	Tracing    bool    `yaml:"tracing" mapstructure:"tracing"`
	Metrics    bool    `yaml:"metrics" mapstructure:"metrics"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,hostname_port"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// loaderDefaults are applied before the config file so every key can be
// overridden from the environment, e.g. REGISTRY_DUMP_FORMAT=json.
var loaderDefaults = map[string]any{
	"registry.roots":            []string{"user_service"},
	"registry.dump_format":      "yaml",
	"inspect.enabled":           false,
	"inspect.addr":              "127.0.0.1:8080",
	"observability.tracing":     false,
	"observability.metrics":     false,
	"observability.endpoint":    "localhost:4318",
	"observability.sample_rate": 1.0,
}

// ApplyDefaults fills unset fields.
func (c *AppConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Inspect.ApplyDefaults()
	if len(c.Registry.Roots) == 0 {
		c.Registry.Roots = []string{"user_service"}
	}
	if c.Registry.DumpFormat == "" {
		c.Registry.DumpFormat = "yaml"
	}
}

// Validate checks the parts struct tags cannot express.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Inspect.Validate(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(c.Registry.Roots))
	for _, root := range c.Registry.Roots {
		if seen[root] {
			return fmt.Errorf("registry.roots lists %q twice", root)
		}
		seen[root] = true
	}
	return nil
}

func loadConfig(configFile string) (*AppConfig, error) {
	opts := []config.LoaderOption{config.WithDefaults(loaderDefaults)}
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}

	var cfg AppConfig
	if err := config.Load(serviceName, &cfg, opts...); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Package config loads CLI configuration from stackbind.yaml, the
// environment and defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the CLI configuration.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	AWS     AWSConfig     `mapstructure:"aws"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// AppConfig describes the CDK app the CLI operates on.
type AppConfig struct {
	// Package is the Go package of the CDK app, e.g. ./examples/webapp.
	Package string `mapstructure:"package"`
	// OutDir is where cloud assemblies are written.
	OutDir string `mapstructure:"out_dir"`
}

// AWSConfig carries settings for live-resource lookups.
type AWSConfig struct {
	Region  string `mapstructure:"region"`
	Profile string `mapstructure:"profile"`
}

// LoggingConfig controls the CLI logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads stackbind.yaml (working directory or ~/.stackbind), applies SB_*
// environment overrides and fills defaults. A missing config file is fine.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("stackbind")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.stackbind")

	v.SetEnvPrefix("SB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.package", ".")
	v.SetDefault("app.out_dir", "cdk.out")
	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

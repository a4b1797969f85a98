// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all settings.
const envPrefix = "MOLGEOM"

// New builds a pre-configured Viper instance: YAML file type, MOLGEOM_ env
// prefix, automatic env binding with "." → "_" so that "neighbors.cutoff"
// resolves to MOLGEOM_NEIGHBORS_CUTOFF, and every default registered.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	return v
}

// Load reads the YAML file at configPath, merges MOLGEOM_* environment
// overrides and validates the result.
func Load(configPath string) (*Config, error) {
	v := New()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return FromViper(v)
}

// LoadFromEnv builds a Config from defaults and MOLGEOM_* variables only.
func LoadFromEnv() (*Config, error) {
	return FromViper(New())
}

// FromViper unmarshals and validates the state of v. Flags bound with
// v.BindPFlag take precedence over file and environment values.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

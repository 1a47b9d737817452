// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/riskgoal/riskgoal/pkg/constants"
	"github.com/riskgoal/riskgoal/pkg/planner"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for riskgoal.
type Configuration struct {
	Server   ServerConfig   `yaml:"server,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Planning PlanningConfig `yaml:"planning,omitempty"`
}

// ServerConfig holds HTTP listener options.
type ServerConfig struct {
	Address string `yaml:"address,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// PlanningConfig holds optional overrides for the financial assumptions.
// Overrides are validated at startup; once the handler is constructed the
// resulting assumptions are immutable.
type PlanningConfig struct {
	DefaultInflation *float64           `yaml:"defaultInflation,omitempty"`
	Returns          map[string]float64 `yaml:"returns,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. A missing file yields the defaults without error.
func LoadConfiguration(configPath string) (*Configuration, error) {
	var configuration Configuration

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to stat config file %s: %w", configPath, err)
			}
		} else {
			v := viper.New()
			v.SetConfigFile(configPath)
			v.SetConfigType("yml")

			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file, %s", err)
			}
			if err := v.Unmarshal(&configuration); err != nil {
				return nil, fmt.Errorf("unable to decode into struct, %s", err)
			}
		}
	}

	if configuration.Server.Address == "" {
		configuration.Server.Address = constants.DefaultServerAddress
	}

	return &configuration, nil
}

// ValidateConfiguration checks the assumption overrides and returns warnings
// for any that are out of range. Invalid overrides are cleared so the stock
// defaults apply.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Planning.DefaultInflation != nil {
		inflation := *c.Planning.DefaultInflation
		if inflation < 0 || inflation > constants.MaxInflation {
			warnings = append(warnings, fmt.Sprintf(
				"planning.defaultInflation %.4f is outside [0, %.2f], using default %.2f",
				inflation, constants.MaxInflation, constants.DefaultInflation))
			c.Planning.DefaultInflation = nil
		}
	}

	for label, annualReturn := range c.Planning.Returns {
		if _, err := planner.ParseRiskTier(label); err != nil {
			warnings = append(warnings, fmt.Sprintf("planning.returns: %v", err))
			delete(c.Planning.Returns, label)
			continue
		}
		if annualReturn <= 0 {
			warnings = append(warnings, fmt.Sprintf(
				"planning.returns.%s must be positive, got %.4f; using default", label, annualReturn))
			delete(c.Planning.Returns, label)
		}
	}

	return warnings
}

// DefaultInflationRate returns the configured default inflation rate, falling
// back to the stock assumption.
func (c *Configuration) DefaultInflationRate() float64 {
	if c.Planning.DefaultInflation != nil {
		return *c.Planning.DefaultInflation
	}
	return constants.DefaultInflation
}

// ReturnTable builds the risk-tier return table with any validated overrides
// applied. Callers must run ValidateConfiguration first so out-of-range
// overrides have been cleared.
func (c *Configuration) ReturnTable() planner.ReturnTable {
	table := planner.DefaultReturns()
	for label, annualReturn := range c.Planning.Returns {
		tier, err := planner.ParseRiskTier(label)
		if err != nil {
			continue
		}
		table[tier] = annualReturn
	}
	return table
}

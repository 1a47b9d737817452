// Package constants provides shared constants for the riskgoal service.
package constants

// Financial assumptions
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DefaultInflation is the assumed annual inflation rate applied when a
	// caller does not supply one
	DefaultInflation = 0.07

	// MaxInflation bounds caller-supplied inflation rates
	MaxInflation = 0.2

	// Nominal annual expected returns per risk tier
	LowRiskReturn      = 0.105
	ModerateRiskReturn = 0.13
	HighRiskReturn     = 0.155
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"
)

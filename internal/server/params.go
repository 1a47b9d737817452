package server

import (
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/riskgoal/riskgoal/pkg/constants"
	"github.com/riskgoal/riskgoal/pkg/planner"
)

// Query parameter parsing and validation. Every rejection happens here,
// before any formula runs; the planner itself never errors.

func parseFloat(query url.Values, name string) (float64, error) {
	raw := query.Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing required parameter %q", name)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("parameter %q must be a number, got %q", name, raw)
	}
	return value, nil
}

func parsePositiveFloat(query url.Values, name string) (float64, error) {
	value, err := parseFloat(query, name)
	if err != nil {
		return 0, err
	}
	if value <= 0 {
		return 0, fmt.Errorf("parameter %q must be greater than zero, got %v", name, value)
	}
	return value, nil
}

func parsePositiveInt(query url.Values, name string) (int, error) {
	raw := query.Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing required parameter %q", name)
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parameter %q must be a whole number, got %q", name, raw)
	}
	if value <= 0 {
		return 0, fmt.Errorf("parameter %q must be greater than zero, got %d", name, value)
	}
	return value, nil
}

func parseRiskLevel(query url.Values) (planner.RiskTier, error) {
	raw := query.Get("risk_level")
	if raw == "" {
		return "", fmt.Errorf("missing required parameter %q", "risk_level")
	}
	return planner.ParseRiskTier(raw)
}

// parseInflation applies the configured default when the parameter is absent
// and bounds explicit values to [0, MaxInflation].
func parseInflation(query url.Values, fallback float64) (float64, error) {
	if query.Get("inflation") == "" {
		return fallback, nil
	}
	value, err := parseFloat(query, "inflation")
	if err != nil {
		return 0, err
	}
	if value < 0 || value > constants.MaxInflation {
		return 0, fmt.Errorf("parameter %q must be between 0 and %v, got %v", "inflation", constants.MaxInflation, value)
	}
	return value, nil
}

// Package planner implements the closed-form goal planning arithmetic:
// inflation adjustment of a target corpus plus SIP and lumpsum solving under
// risk-tiered return assumptions. All functions are pure and operate on
// unrounded float64 values; rounding is left to the presentation boundary.
//
// SIP formulas compound monthly (a SIP is a recurring monthly contribution)
// while lumpsum formulas compound annually (a single deposit). The two
// conventions are intentionally distinct and must not be unified.
package planner

import (
	"fmt"
	"math"
	"strings"

	"github.com/riskgoal/riskgoal/pkg/constants"
)

// RiskTier is a coarse risk label mapped to an assumed nominal annual return.
type RiskTier string

const (
	RiskLow      RiskTier = "low"
	RiskModerate RiskTier = "moderate"
	RiskHigh     RiskTier = "high"
)

// ParseRiskTier validates a caller-supplied risk label.
func ParseRiskTier(value string) (RiskTier, error) {
	switch tier := RiskTier(strings.ToLower(strings.TrimSpace(value))); tier {
	case RiskLow, RiskModerate, RiskHigh:
		return tier, nil
	default:
		return "", fmt.Errorf("unrecognized risk level %q (expected low, moderate, or high)", value)
	}
}

// ReturnTable maps risk tiers to nominal annual expected returns. It is
// constructed once at process start and treated as read-only afterwards.
type ReturnTable map[RiskTier]float64

// DefaultReturns returns the stock assumption table.
func DefaultReturns() ReturnTable {
	return ReturnTable{
		RiskLow:      constants.LowRiskReturn,
		RiskModerate: constants.ModerateRiskReturn,
		RiskHigh:     constants.HighRiskReturn,
	}
}

// AnnualReturn looks up the assumed annual return for a tier.
func (rt ReturnTable) AnnualReturn(tier RiskTier) (float64, error) {
	annualReturn, ok := rt[tier]
	if !ok {
		return 0, fmt.Errorf("no return assumption configured for risk tier %q", tier)
	}
	return annualReturn, nil
}

// InflateGoal computes the nominal future cost of today's goal:
// presentValue * (1+inflationRate)^years.
func InflateGoal(presentValue float64, years int, inflationRate float64) float64 {
	return presentValue * math.Pow(1+inflationRate, float64(years))
}

// SIPRequired solves the ordinary-annuity future-value equation for the
// monthly payment that reaches goalFutureValue:
//
//	PMT = FV * r / ((1+r)^n - 1)
//
// with monthly rate r = annualReturn/12 and n = years*12 months. A
// non-positive rate or horizon makes the equation degenerate; the policy is
// to return 0 rather than fail.
func SIPRequired(goalFutureValue, annualReturn float64, years int) float64 {
	months := years * constants.MonthsPerYear
	monthlyRate := annualReturn / constants.MonthsPerYear
	if months <= 0 || monthlyRate <= 0 {
		return 0
	}
	denominator := math.Pow(1+monthlyRate, float64(months)) - 1
	if denominator == 0 {
		return 0
	}
	return goalFutureValue * monthlyRate / denominator
}

// FutureValueOfSIP projects the corpus a recurring monthly payment grows to:
// PMT * ((1+r)^n - 1) / r. Same degenerate policy as SIPRequired.
func FutureValueOfSIP(payment, annualReturn float64, years int) float64 {
	months := years * constants.MonthsPerYear
	monthlyRate := annualReturn / constants.MonthsPerYear
	if months <= 0 || monthlyRate <= 0 {
		return 0
	}
	return payment * (math.Pow(1+monthlyRate, float64(months)) - 1) / monthlyRate
}

// LumpsumRequired discounts a future goal back to the single deposit needed
// today, compounding annually: FV / (1+annualReturn)^years.
func LumpsumRequired(goalFutureValue, annualReturn float64, years int) float64 {
	return goalFutureValue / math.Pow(1+annualReturn, float64(years))
}

// FutureValueOfLumpsum projects a single deposit forward with annual
// compounding: PV * (1+annualReturn)^years.
func FutureValueOfLumpsum(presentValue, annualReturn float64, years int) float64 {
	return presentValue * math.Pow(1+annualReturn, float64(years))
}

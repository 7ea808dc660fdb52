package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ============================================================================
// DISTRIBUTIONS
// ============================================================================
// Thin wrappers over gonum's distributions, exposing the handful of
// quantile and tail-probability lookups the analysis tools need.
// ============================================================================

// NormalCDF returns P(Z <= z) for the standard normal distribution.
func NormalCDF(z float64) float64 {
	return distuv.UnitNormal.CDF(z)
}

// NormalQuantile returns the z value with P(Z <= z) = p.
func NormalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}

// ZCritical returns the two-sided critical z value for the given confidence
// level, e.g. 0.95 -> 1.959964.
func ZCritical(confidence float64) float64 {
	return distuv.UnitNormal.Quantile(1 - (1-confidence)/2)
}

// TCritical returns the two-sided critical t value for the given confidence
// level and degrees of freedom.
func TCritical(confidence float64, df float64) float64 {
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return t.Quantile(1 - (1-confidence)/2)
}

// TTailTwoSided returns the two-sided p-value for a t statistic.
func TTailTwoSided(t, df float64) float64 {
	if df <= 0 {
		return 1
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * dist.CDF(-math.Abs(t))
}

// FTail returns P(F >= f) for an F distribution with d1 and d2 degrees of
// freedom.
func FTail(f, d1, d2 float64) float64 {
	if f <= 0 || d1 <= 0 || d2 <= 0 {
		return 1
	}
	dist := distuv.F{D1: d1, D2: d2}
	return 1 - dist.CDF(f)
}

// ChiSquareTail returns P(X >= x) for a chi-squared distribution with df
// degrees of freedom.
func ChiSquareTail(x, df float64) float64 {
	if x <= 0 || df <= 0 {
		return 1
	}
	dist := distuv.ChiSquared{K: df}
	return 1 - dist.CDF(x)
}

package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanAndSum(t *testing.T) {
	xs := []float64{2, 4, 6, 8}
	assert.Equal(t, 5.0, Mean(xs))
	assert.Equal(t, 20.0, Sum(xs))
	assert.Equal(t, 0.0, Mean(nil))
}

func TestSampleVariance(t *testing.T) {
	// ddof=1: var of 8..12 step 1 is 2.5
	xs := []float64{8, 9, 10, 11, 12}
	assert.InDelta(t, 2.5, Variance(xs), 1e-12)
	assert.InDelta(t, 1.5811388300841898, StdDev(xs), 1e-12)
	// population variance divides by n
	assert.InDelta(t, 2.0, PopVariance(xs), 1e-12)
}

func TestPercentileLinearInterpolation(t *testing.T) {
	xs := []float64{1, 2, 3, 4}
	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{25, 1.75},
		{50, 2.5},
		{75, 3.25},
		{100, 4},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Percentile(xs, tt.p), 1e-12, "p=%v", tt.p)
	}
}

func TestPercentileUnsortedInput(t *testing.T) {
	xs := []float64{4, 1, 3, 2}
	assert.InDelta(t, 2.5, Percentile(xs, 50), 1e-12)
	// input untouched
	assert.Equal(t, []float64{4, 1, 3, 2}, xs)
}

func TestQuartiles(t *testing.T) {
	q1, q2, q3 := Quartiles([]float64{1, 2, 3, 4, 5})
	assert.Equal(t, 2.0, q1)
	assert.Equal(t, 3.0, q2)
	assert.Equal(t, 4.0, q3)
}

func TestSkewnessSymmetric(t *testing.T) {
	assert.InDelta(t, 0, Skewness([]float64{1, 2, 3, 4, 5}), 1e-12)
	assert.Greater(t, Skewness([]float64{1, 1, 1, 1, 10}), 1.0)
}

func TestKurtosisExcess(t *testing.T) {
	// Uniform-ish data has negative excess kurtosis.
	assert.Less(t, Kurtosis([]float64{1, 2, 3, 4, 5, 6, 7, 8}), 0.0)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 3.14, Round(3.14159, 2))
	assert.Equal(t, 2.99, Round(2.995, 2)) // 2.995 stores as 2.99499..., rounds down
	assert.Equal(t, -2.5, Round(-2.4999, 1))
}

func TestZCritical(t *testing.T) {
	assert.InDelta(t, 1.959964, ZCritical(0.95), 1e-5)
	assert.InDelta(t, 2.575829, ZCritical(0.99), 1e-5)
}

func TestNormalCDFQuantileRoundTrip(t *testing.T) {
	for _, z := range []float64{-2, -0.5, 0, 1, 2.3} {
		assert.InDelta(t, z, NormalQuantile(NormalCDF(z)), 1e-9)
	}
	assert.InDelta(t, 0.5, NormalCDF(0), 1e-12)
}

func TestShapiroWilkNormalSample(t *testing.T) {
	// Symmetric bell-ish sample should not be rejected.
	xs := []float64{4.1, 4.8, 5.0, 5.2, 5.3, 5.5, 5.6, 5.8, 6.0, 6.1, 6.3, 7.0}
	w, p := ShapiroWilk(xs)
	assert.Greater(t, w, 0.9)
	assert.LessOrEqual(t, w, 1.0)
	assert.Greater(t, p, 0.05)
}

func TestShapiroWilkSkewedSample(t *testing.T) {
	xs := []float64{1, 1, 1, 1, 1, 1, 1, 1, 2, 2, 3, 50}
	w, p := ShapiroWilk(xs)
	assert.Less(t, w, 0.7)
	assert.Less(t, p, 0.01)
}

func TestAndersonDarlingFlagsOutliers(t *testing.T) {
	normal := []float64{4.1, 4.8, 5.0, 5.2, 5.3, 5.5, 5.6, 5.8, 6.0, 6.1, 6.3, 7.0}
	_, a2StarNormal := AndersonDarling(normal)
	assert.Less(t, a2StarNormal, AndersonDarlingCritical5)

	skewed := []float64{1, 1, 1, 1, 1, 1, 1, 1, 2, 2, 3, 50}
	_, a2StarSkewed := AndersonDarling(skewed)
	assert.Greater(t, a2StarSkewed, AndersonDarlingCritical5)
}

func TestOLSExactFit(t *testing.T) {
	// y = 1 + 2x fits exactly.
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{3, 5, 7, 9, 11}
	res, err := OLS(y, [][]float64{x})
	require.NoError(t, err)
	require.Len(t, res.Coefs, 2)
	assert.InDelta(t, 1.0, res.Coefs[0], 1e-9)
	assert.InDelta(t, 2.0, res.Coefs[1], 1e-9)
	assert.InDelta(t, 1.0, res.R2, 1e-9)
}

func TestOLSWithNoise(t *testing.T) {
	x1 := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	x2 := []float64{2, 1, 4, 3, 6, 5, 8, 7}
	y := []float64{5.1, 6.8, 9.2, 10.9, 13.1, 14.8, 17.2, 18.9}
	res, err := OLS(y, [][]float64{x1, x2})
	require.NoError(t, err)
	assert.Greater(t, res.R2, 0.99)
	assert.Less(t, res.PValues[1], 0.05)
	assert.Len(t, res.Residuals, 8)
}

func TestMinimizeBoundedQuadratic(t *testing.T) {
	f := func(x []float64) float64 {
		return (x[0]-2)*(x[0]-2) + (x[1]+1)*(x[1]+1)
	}
	got := MinimizeBounded(f, []float64{0, 0}, []float64{-5, -5}, []float64{5, 5})
	assert.InDelta(t, 2.0, got[0], 1e-4)
	assert.InDelta(t, -1.0, got[1], 1e-4)
}

func TestMinimizeBoundedClampsToBox(t *testing.T) {
	// Unconstrained minimum at x=10 sits outside the box.
	f := func(x []float64) float64 { return (x[0] - 10) * (x[0] - 10) }
	got := MinimizeBounded(f, []float64{1}, []float64{0}, []float64{3})
	assert.InDelta(t, 3.0, got[0], 1e-4)
}

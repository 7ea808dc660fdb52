package stats

import (
	"math"
	"sort"
)

// ============================================================================
// NORMALITY TESTS
// ============================================================================
// Three classical tests for departure from normality:
//
//   ShapiroWilk      — Royston's AS R94 approximation, valid for 3..5000
//   DAgostinoPearson — K² omnibus test combining skewness and kurtosis
//   AndersonDarling  — A² with the small-sample correction A*²
//
// All return the statistic and (where defined) an approximate p-value.
// ============================================================================

// ShapiroWilk computes the Shapiro-Wilk W statistic and p-value using
// Royston's approximation. Requires 3 <= n <= 5000.
func ShapiroWilk(xs []float64) (w, p float64) {
	n := len(xs)
	if n < 3 {
		return 1, 1
	}

	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)

	// Expected normal order statistics (Blom scores).
	m := make([]float64, n)
	var sumM2 float64
	for i := 0; i < n; i++ {
		m[i] = NormalQuantile((float64(i+1) - 0.375) / (float64(n) + 0.25))
		sumM2 += m[i] * m[i]
	}

	a := make([]float64, n)
	u := 1 / math.Sqrt(float64(n))
	rootM2 := math.Sqrt(sumM2)

	switch {
	case n == 3:
		a[2] = math.Sqrt(0.5)
		a[0] = -a[2]
	case n <= 5:
		cn := m[n-1] / rootM2
		an := cn + u*(0.221157+u*(-0.147981+u*(-2.071190+u*(4.434685+u*(-2.706056)))))
		phi := (sumM2 - 2*m[n-1]*m[n-1]) / (1 - 2*an*an)
		a[n-1] = an
		a[0] = -an
		for i := 1; i < n-1; i++ {
			a[i] = m[i] / math.Sqrt(phi)
		}
	default:
		cn := m[n-1] / rootM2
		cn1 := m[n-2] / rootM2
		an := cn + u*(0.221157+u*(-0.147981+u*(-2.071190+u*(4.434685+u*(-2.706056)))))
		an1 := cn1 + u*(0.042981+u*(-0.293762+u*(-1.752461+u*(5.682633+u*(-3.582633)))))
		phi := (sumM2 - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) /
			(1 - 2*an*an - 2*an1*an1)
		a[n-1] = an
		a[n-2] = an1
		a[0] = -an
		a[1] = -an1
		for i := 2; i < n-2; i++ {
			a[i] = m[i] / math.Sqrt(phi)
		}
	}

	mean := Mean(sorted)
	var num, den float64
	for i := 0; i < n; i++ {
		num += a[i] * sorted[i]
		d := sorted[i] - mean
		den += d * d
	}
	if den == 0 {
		return 1, 1
	}
	w = num * num / den
	if w > 1 {
		w = 1
	}

	// p-value via Royston's normalizing transforms.
	switch {
	case n == 3:
		p = 6 / math.Pi * (math.Asin(math.Sqrt(w)) - math.Asin(math.Sqrt(0.75)))
		if p < 0 {
			p = 0
		}
	case n <= 11:
		fn := float64(n)
		gamma := -2.273 + 0.459*fn
		lw := -math.Log(gamma - math.Log(1-w))
		mu := 0.5440 - 0.39978*fn + 0.025054*fn*fn - 0.0006714*fn*fn*fn
		sigma := math.Exp(1.3822 - 0.77857*fn + 0.062767*fn*fn - 0.0020322*fn*fn*fn)
		p = 1 - NormalCDF((lw-mu)/sigma)
	default:
		ln := math.Log(float64(n))
		lw := math.Log(1 - w)
		mu := -1.5861 - 0.31082*ln - 0.083751*ln*ln + 0.0038915*ln*ln*ln
		sigma := math.Exp(-0.4803 - 0.082676*ln + 0.0030302*ln*ln)
		p = 1 - NormalCDF((lw-mu)/sigma)
	}
	return w, p
}

// DAgostinoPearson computes the K² omnibus normality statistic and its
// chi-squared p-value (2 degrees of freedom). Requires n >= 8.
func DAgostinoPearson(xs []float64) (k2, p float64) {
	n := float64(len(xs))
	z1 := skewZ(xs, n)
	z2 := kurtosisZ(xs, n)
	k2 = z1*z1 + z2*z2
	return k2, ChiSquareTail(k2, 2)
}

// skewZ is D'Agostino's transformed skewness statistic.
func skewZ(xs []float64, n float64) float64 {
	b1 := Skewness(xs)
	y := b1 * math.Sqrt((n+1)*(n+3)/(6*(n-2)))
	beta2 := 3 * (n*n + 27*n - 70) * (n + 1) * (n + 3) /
		((n - 2) * (n + 5) * (n + 7) * (n + 9))
	w2 := -1 + math.Sqrt(2*(beta2-1))
	delta := 1 / math.Sqrt(0.5*math.Log(w2))
	alpha := math.Sqrt(2 / (w2 - 1))
	if y == 0 {
		return 0
	}
	return delta * math.Log(y/alpha+math.Sqrt(math.Pow(y/alpha, 2)+1))
}

// kurtosisZ is the Anscombe-Glynn transformed kurtosis statistic.
func kurtosisZ(xs []float64, n float64) float64 {
	b2 := Kurtosis(xs) + 3
	e := 3 * (n - 1) / (n + 1)
	variance := 24 * n * (n - 2) * (n - 3) / ((n + 1) * (n + 1) * (n + 3) * (n + 5))
	x := (b2 - e) / math.Sqrt(variance)
	sqrtBeta1 := 6 * (n*n - 5*n + 2) / ((n + 7) * (n + 9)) *
		math.Sqrt(6*(n+3)*(n+5)/(n*(n-2)*(n-3)))
	a := 6 + 8/sqrtBeta1*(2/sqrtBeta1+math.Sqrt(1+4/(sqrtBeta1*sqrtBeta1)))
	term1 := 1 - 2/(9*a)
	denom := 1 + x*math.Sqrt(2/(a-4))
	term2 := math.Copysign(math.Cbrt((1-2/a)/math.Abs(denom)), denom)
	return (term1 - term2) / math.Sqrt(2/(9*a))
}

// AndersonDarling computes the Anderson-Darling A² statistic for normality
// against a normal with estimated mean and standard deviation, plus the
// small-sample adjusted A*². The 5% critical value for A*² is 0.787.
func AndersonDarling(xs []float64) (a2, a2Star float64) {
	n := len(xs)
	if n < 3 {
		return 0, 0
	}
	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)

	mean := Mean(sorted)
	sd := StdDev(sorted)
	if sd == 0 {
		return 0, 0
	}

	fn := float64(n)
	var sum float64
	for i := 0; i < n; i++ {
		fi := clampProb(NormalCDF((sorted[i] - mean) / sd))
		fj := clampProb(NormalCDF((sorted[n-1-i] - mean) / sd))
		sum += (2*float64(i+1) - 1) * (math.Log(fi) + math.Log(1-fj))
	}
	a2 = -fn - sum/fn
	a2Star = a2 * (1 + 0.75/fn + 2.25/(fn*fn))
	return a2, a2Star
}

// AndersonDarlingCritical5 is the 5% critical value for the adjusted A*²
// statistic with estimated parameters.
const AndersonDarlingCritical5 = 0.787

func clampProb(p float64) float64 {
	const eps = 1e-10
	if p < eps {
		return eps
	}
	if p > 1-eps {
		return 1 - eps
	}
	return p
}

package stats

import (
	"math"
	"sort"
)

// MinimizeBounded minimizes f over a box using the Nelder-Mead simplex
// method with candidate points clamped to the bounds. The start point is
// clamped too. Dimensions of start, lower and upper must match.
//
// The method is derivative-free, which suits the small quadratic surfaces
// it is used on; convergence is declared when the simplex spread falls
// below tolerance or after maxIter steps.
func MinimizeBounded(f func([]float64) float64, start, lower, upper []float64) []float64 {
	const (
		maxIter   = 1000
		tolerance = 1e-9
		alpha     = 1.0 // reflection
		gamma     = 2.0 // expansion
		rho       = 0.5 // contraction
		sigma     = 0.5 // shrink
	)
	dim := len(start)

	clamp := func(x []float64) []float64 {
		out := make([]float64, dim)
		for i := range x {
			out[i] = math.Min(math.Max(x[i], lower[i]), upper[i])
		}
		return out
	}

	// Initial simplex: start plus one perturbed vertex per dimension.
	simplex := make([][]float64, dim+1)
	simplex[0] = clamp(start)
	for i := 0; i < dim; i++ {
		v := make([]float64, dim)
		copy(v, simplex[0])
		step := 0.05 * (upper[i] - lower[i])
		if step == 0 {
			step = 0.00025
		}
		v[i] += step
		simplex[i+1] = clamp(v)
	}
	values := make([]float64, dim+1)
	for i, v := range simplex {
		values[i] = f(v)
	}

	order := make([]int, dim+1)
	for iter := 0; iter < maxIter; iter++ {
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(a, b int) bool { return values[order[a]] < values[order[b]] })

		best, worst := order[0], order[dim]
		if math.Abs(values[worst]-values[best]) < tolerance {
			break
		}

		// Centroid of all vertices except the worst.
		centroid := make([]float64, dim)
		for _, idx := range order[:dim] {
			for j := range centroid {
				centroid[j] += simplex[idx][j] / float64(dim)
			}
		}

		reflect := make([]float64, dim)
		for j := range reflect {
			reflect[j] = centroid[j] + alpha*(centroid[j]-simplex[worst][j])
		}
		reflect = clamp(reflect)
		fr := f(reflect)

		switch {
		case fr < values[best]:
			expand := make([]float64, dim)
			for j := range expand {
				expand[j] = centroid[j] + gamma*(reflect[j]-centroid[j])
			}
			expand = clamp(expand)
			if fe := f(expand); fe < fr {
				simplex[worst], values[worst] = expand, fe
			} else {
				simplex[worst], values[worst] = reflect, fr
			}
		case fr < values[order[dim-1]]:
			simplex[worst], values[worst] = reflect, fr
		default:
			contract := make([]float64, dim)
			for j := range contract {
				contract[j] = centroid[j] + rho*(simplex[worst][j]-centroid[j])
			}
			contract = clamp(contract)
			if fc := f(contract); fc < values[worst] {
				simplex[worst], values[worst] = contract, fc
			} else {
				// Shrink toward the best vertex.
				for _, idx := range order[1:] {
					for j := range simplex[idx] {
						simplex[idx][j] = simplex[best][j] + sigma*(simplex[idx][j]-simplex[best][j])
					}
					simplex[idx] = clamp(simplex[idx])
					values[idx] = f(simplex[idx])
				}
			}
		}
	}

	best := 0
	for i := 1; i <= dim; i++ {
		if values[i] < values[best] {
			best = i
		}
	}
	return simplex[best]
}

package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ============================================================================
// ORDINARY LEAST SQUARES
// ============================================================================

// OLSResult holds a fitted linear model. Coefficients are ordered intercept
// first, then one per predictor column.
type OLSResult struct {
	Coefs     []float64
	StdErrs   []float64
	TStats    []float64
	PValues   []float64
	R2        float64
	AdjR2     float64
	FStat     float64
	FPValue   float64
	Fitted    []float64
	Residuals []float64
	DFResid   int
}

// OLS fits y = b0 + b1*x1 + ... by least squares. Each row of predictors
// holds the x values for one observation; an intercept column is added
// internally. Requires more observations than fitted coefficients.
func OLS(y []float64, predictors [][]float64) (*OLSResult, error) {
	n := len(y)
	if n == 0 || len(predictors) != n {
		return nil, fmt.Errorf("ols: %d responses but %d predictor rows", n, len(predictors))
	}
	k := len(predictors[0])
	p := k + 1
	if n <= p {
		return nil, fmt.Errorf("ols: %d observations cannot fit %d coefficients", n, p)
	}

	x := mat.NewDense(n, p, nil)
	for i, row := range predictors {
		if len(row) != k {
			return nil, fmt.Errorf("ols: ragged predictor row %d", i)
		}
		x.Set(i, 0, 1)
		for j, v := range row {
			x.Set(i, j+1, v)
		}
	}
	yv := mat.NewVecDense(n, y)

	var qr mat.QR
	qr.Factorize(x)
	beta := mat.NewVecDense(p, nil)
	if err := qr.SolveVecTo(beta, false, yv); err != nil {
		return nil, fmt.Errorf("ols: singular design matrix: %w", err)
	}

	res := &OLSResult{
		Coefs:     make([]float64, p),
		StdErrs:   make([]float64, p),
		TStats:    make([]float64, p),
		PValues:   make([]float64, p),
		Fitted:    make([]float64, n),
		Residuals: make([]float64, n),
		DFResid:   n - p,
	}
	for j := 0; j < p; j++ {
		res.Coefs[j] = beta.AtVec(j)
	}

	var sse float64
	for i := 0; i < n; i++ {
		var fit float64
		for j := 0; j < p; j++ {
			fit += x.At(i, j) * res.Coefs[j]
		}
		res.Fitted[i] = fit
		res.Residuals[i] = y[i] - fit
		sse += res.Residuals[i] * res.Residuals[i]
	}

	meanY := Mean(y)
	var sst float64
	for _, v := range y {
		d := v - meanY
		sst += d * d
	}
	if sst > 0 {
		res.R2 = 1 - sse/sst
		res.AdjR2 = 1 - (1-res.R2)*float64(n-1)/float64(n-p)
	}

	// Coefficient covariance: sigma² (X'X)⁻¹.
	sigma2 := sse / float64(n-p)
	var xtx mat.Dense
	xtx.Mul(x.T(), x)
	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, fmt.Errorf("ols: singular design matrix: %w", err)
	}
	for j := 0; j < p; j++ {
		se := math.Sqrt(sigma2 * xtxInv.At(j, j))
		res.StdErrs[j] = se
		if se > 0 {
			res.TStats[j] = res.Coefs[j] / se
			res.PValues[j] = TTailTwoSided(res.TStats[j], float64(n-p))
		} else {
			res.PValues[j] = 1
		}
	}

	// Overall F test against the intercept-only model.
	if k > 0 && sse > 0 && sst > sse {
		res.FStat = ((sst - sse) / float64(k)) / sigma2
		res.FPValue = FTail(res.FStat, float64(k), float64(n-p))
	}
	return res, nil
}

package tools

import (
	"fmt"
	"strings"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/stats"
	"github.com/sigmaflow-org/sigmaflow/table"
)

// ============================================================================
// RESPONSE SURFACE METHODOLOGY — quadratic model plus bounded optimization
// ============================================================================
// Fits a full second-order model (linear, squared and two-way interaction
// terms), then searches within the observed factor ranges for the settings
// that maximize or minimize the predicted response. The optimum never
// extrapolates outside the experimental region.
// ============================================================================

type rsmTool struct{}

func (rsmTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("experimental data is required")
	}

	targetName := p.String("target_column", "")
	factors := p.Strings("factors")
	goal := p.String("goal", "maximize")
	if targetName == "" || len(factors) == 0 {
		return nil, analysis.Invalidf("both target_column and factors must be specified")
	}
	if err := analysis.RequireColumns(t, append(append([]string{}, factors...), targetName)...); err != nil {
		return nil, err
	}
	if goal != "maximize" && goal != "minimize" {
		return nil, analysis.Invalidf("goal must be %q or %q", "maximize", "minimize")
	}

	targetCol, _ := t.Column(targetName)
	factorCols := make([]*table.Column, len(factors))
	for i, name := range factors {
		col, _ := t.Column(name)
		if col.Kind != table.KindNumeric {
			return nil, analysis.Invalidf("factor %q must be numeric", name)
		}
		factorCols[i] = col
	}
	if targetCol.Kind != table.KindNumeric {
		return nil, analysis.Invalidf("target column %q must be numeric", targetName)
	}

	// Term order: linear, squared, then two-way interactions.
	var termNames []string
	termNames = append(termNames, factors...)
	for _, f := range factors {
		termNames = append(termNames, f+"^2")
	}
	for i := 0; i < len(factors); i++ {
		for j := i + 1; j < len(factors); j++ {
			termNames = append(termNames, factors[i]+"*"+factors[j])
		}
	}

	expand := func(x []float64) []float64 {
		row := make([]float64, 0, len(termNames))
		row = append(row, x...)
		for _, v := range x {
			row = append(row, v*v)
		}
		for i := 0; i < len(x); i++ {
			for j := i + 1; j < len(x); j++ {
				row = append(row, x[i]*x[j])
			}
		}
		return row
	}

	var y []float64
	var design [][]float64
	for i := 0; i < t.Len(); i++ {
		if targetCol.IsNull(i) {
			continue
		}
		raw := make([]float64, len(factorCols))
		complete := true
		for j, col := range factorCols {
			if col.IsNull(i) {
				complete = false
				break
			}
			raw[j] = col.Float(i)
		}
		if !complete {
			continue
		}
		y = append(y, targetCol.Float(i))
		design = append(design, expand(raw))
	}

	model, err := stats.OLS(y, design)
	if err != nil {
		return nil, analysis.Computef("could not fit the quadratic model: %v", err)
	}

	predict := func(x []float64) float64 {
		features := expand(x)
		pred := model.Coefs[0]
		for j, v := range features {
			pred += model.Coefs[j+1] * v
		}
		return pred
	}

	lower := make([]float64, len(factors))
	upper := make([]float64, len(factors))
	start := make([]float64, len(factors))
	for i, col := range factorCols {
		vals := col.Floats()
		lower[i] = stats.Min(vals)
		upper[i] = stats.Max(vals)
		start[i] = stats.Mean(vals)
	}

	objective := func(x []float64) float64 {
		if goal == "maximize" {
			return -predict(x)
		}
		return predict(x)
	}
	best := stats.MinimizeBounded(objective, start, lower, upper)
	predictedOptimum := predict(best)

	optimal := map[string]float64{}
	var settings []string
	for i, f := range factors {
		optimal[f] = best[i]
		settings = append(settings, fmt.Sprintf("%s=%.2f", f, best[i]))
	}

	coefficients := map[string]float64{"const": model.Coefs[0]}
	equationTerms := []string{fmt.Sprintf("%.3f", model.Coefs[0])}
	for j, term := range termNames {
		coefficients[term] = model.Coefs[j+1]
		equationTerms = append(equationTerms, fmt.Sprintf("%.3f*%s", model.Coefs[j+1], term))
	}
	equation := fmt.Sprintf("%s = %s", targetName, strings.Join(equationTerms, " + "))

	summary := fmt.Sprintf(
		"RSM analysis complete (R²=%.2f%%). Estimated optimal %q value: %.4f. Optimal settings: %s.",
		model.R2*100, targetName, predictedOptimum, strings.Join(settings, ", "))

	// The coefficient table lets the caller render the surface mesh; sending
	// the equation is cheaper than a point grid.
	return analysis.NewResult("Response Surface Methodology (RSM)", summary, nil, map[string]any{
		"coefficients":     coefficients,
		"optimal_settings": optimal,
		"predicted_best_y": predictedOptimum,
		"r_squared":        model.R2,
		"equation":         equation,
	}), nil
}

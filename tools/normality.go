package tools

import (
	"fmt"
	"math"
	"sort"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/stats"
	"github.com/sigmaflow-org/sigmaflow/table"
)

// ============================================================================
// NORMALITY TEST — Shapiro-Wilk + Anderson-Darling with a Q-Q plot
// ============================================================================

type normalityTestTool struct{}

func (normalityTestTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("numeric data is required")
	}
	col, ok := t.FirstNumeric()
	if !ok {
		return nil, analysis.Invalidf("no numeric column found")
	}
	data := col.Floats()
	n := len(data)
	if n < 3 {
		return nil, analysis.Invalidf("at least 3 data points are needed for a normality test")
	}

	alpha := p.Float("alpha", 0.05)

	_, shapiroP := stats.ShapiroWilk(data)
	_, adStar := stats.AndersonDarling(data)

	// Shapiro's p-value drives the headline decision; Anderson-Darling is
	// reported against its 5% critical value.
	isNormal := shapiroP > alpha

	sorted := make([]float64, n)
	copy(sorted, data)
	sort.Float64s(sorted)

	mean := stats.Mean(data)
	sd := stats.StdDev(data)

	// Q-Q points: theoretical normal quantiles at positions (i-0.5)/n
	// against the ordered observations.
	points := make([]analysis.Record, n)
	minQ, maxQ := math.Inf(1), math.Inf(-1)
	for i := 0; i < n; i++ {
		q := stats.NormalQuantile((float64(i+1) - 0.5) / float64(n))
		if q < minQ {
			minQ = q
		}
		if q > maxQ {
			maxQ = q
		}
		points[i] = analysis.Record{
			"theoretical_quantile": q,
			"observed_value":       sorted[i],
		}
	}
	referenceLine := []analysis.Record{
		{"x": minQ, "y": mean + minQ*sd},
		{"x": maxQ, "y": mean + maxQ*sd},
	}

	conclusion := "The data does NOT follow a normal distribution."
	if isNormal {
		conclusion = "The data follows a normal distribution."
	}
	summary := fmt.Sprintf(
		"Normality test for %q. Anderson-Darling: %.3f. Shapiro p-value: %.4f. Conclusion (at %.0f%%): %s",
		col.Name, adStar, shapiroP, (1-alpha)*100, conclusion)

	chart := []analysis.Record{{
		"points":         points,
		"reference_line": referenceLine,
	}}

	return analysis.NewResult("Normality Test (Q-Q Plot)", summary, chart, map[string]any{
		"mean":               mean,
		"std_dev":            sd,
		"shapiro_p_value":    shapiroP,
		"anderson_statistic": adStar,
		"n_samples":          n,
		"is_normal":          isNormal,
	}), nil
}

// ============================================================================
// CHI-SQUARE — test of independence on a contingency table
// ============================================================================

type chiSquareTool struct{}

func (chiSquareTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("categorical data is required")
	}

	rowName := p.String("row_column", "")
	colName := p.String("col_column", "")
	alpha := p.Float("alpha", 0.05)
	if rowName == "" || colName == "" {
		return nil, analysis.Invalidf("both row_column and col_column must be specified")
	}
	if err := analysis.RequireColumns(t, rowName, colName); err != nil {
		return nil, err
	}

	rowCol, _ := t.Column(rowName)
	colCol, _ := t.Column(colName)

	// Contingency table of observed frequencies.
	counts := map[string]map[string]float64{}
	var rowKeys, colKeys []string
	rowSeen, colSeen := map[string]bool{}, map[string]bool{}
	total := 0.0
	for i := 0; i < t.Len(); i++ {
		if rowCol.IsNull(i) || colCol.IsNull(i) {
			continue
		}
		r, c := rowCol.String(i), colCol.String(i)
		if !rowSeen[r] {
			rowSeen[r] = true
			rowKeys = append(rowKeys, r)
			counts[r] = map[string]float64{}
		}
		if !colSeen[c] {
			colSeen[c] = true
			colKeys = append(colKeys, c)
		}
		counts[r][c]++
		total++
	}
	if len(rowKeys) < 2 || len(colKeys) < 2 {
		return nil, analysis.Invalidf("the contingency table needs at least 2 levels in each variable")
	}
	sort.Strings(rowKeys)
	sort.Strings(colKeys)

	rowTotals := map[string]float64{}
	colTotals := map[string]float64{}
	for _, r := range rowKeys {
		for _, c := range colKeys {
			rowTotals[r] += counts[r][c]
			colTotals[c] += counts[r][c]
		}
	}

	dof := (len(rowKeys) - 1) * (len(colKeys) - 1)
	// Yates continuity correction applies to 2x2 tables only.
	yates := dof == 1

	var chi2 float64
	for _, r := range rowKeys {
		for _, c := range colKeys {
			expected := rowTotals[r] * colTotals[c] / total
			if expected == 0 {
				return nil, analysis.Computef("an expected frequency is zero, the test is undefined")
			}
			diff := math.Abs(counts[r][c] - expected)
			if yates {
				diff = math.Max(0, diff-0.5)
			}
			chi2 += diff * diff / expected
		}
	}
	pValue := stats.ChiSquareTail(chi2, float64(dof))

	isDependent := pValue < alpha
	relStatus := "INDEPENDENT (not related)"
	conclusion := fmt.Sprintf("There is no sufficient evidence of a relationship between %q and %q.", rowName, colName)
	if isDependent {
		relStatus = "DEPENDENT (associated)"
		conclusion = fmt.Sprintf("There is statistical evidence that %q and %q are related.", rowName, colName)
	}
	summary := fmt.Sprintf(
		"Chi-square test. P-value: %.4f. The variables are statistically %s. %s",
		pValue, relStatus, conclusion)

	chart := make([]analysis.Record, 0, len(rowKeys))
	for _, r := range rowKeys {
		row := analysis.Record{rowName: r}
		for _, c := range colKeys {
			row[c] = counts[r][c]
		}
		chart = append(chart, row)
	}

	return analysis.NewResult("Chi-Square Test", summary, chart, map[string]any{
		"chi2_statistic":   chi2,
		"p_value":          pValue,
		"dof":              dof,
		"alpha":            alpha,
		"significant":      isDependent,
		"columns_analyzed": []string{rowName, colName},
	}), nil
}

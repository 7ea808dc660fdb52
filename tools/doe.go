package tools

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/stats"
	"github.com/sigmaflow-org/sigmaflow/table"
)

// ============================================================================
// DESIGN OF EXPERIMENTS — 2^k factorial analysis
// ============================================================================
// Factors are coded to -1/+1, a model with main effects and two-way
// interactions is fit by least squares, and effects (2x the coefficient in
// coded units) are ranked for an effects Pareto.
// ============================================================================

type doeTool struct{}

func (doeTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("experimental data is required for DOE analysis")
	}

	responseName := p.String("response_column", "")
	if responseName == "" {
		col, ok := t.LastNumeric()
		if !ok {
			return nil, analysis.Invalidf("no numeric response column found")
		}
		responseName = col.Name
	} else if !t.Has(responseName) {
		return nil, analysis.Invalidf("missing required columns: %s", responseName)
	}
	responseCol, _ := t.Column(responseName)
	if responseCol.Kind != table.KindNumeric {
		return nil, analysis.Invalidf("response column %q is not numeric", responseName)
	}

	var factorNames []string
	for _, name := range t.Columns() {
		if name != responseName && name != "run_order" {
			factorNames = append(factorNames, name)
		}
	}
	if len(factorNames) < 2 {
		return nil, analysis.Invalidf("at least 2 factors are required for a DOE")
	}

	n := t.Len()
	coded := make(map[string][]float64, len(factorNames))
	factorLevels := map[string]any{}
	for _, name := range factorNames {
		col, _ := t.Column(name)
		levels := map[string]bool{}
		var levelList []string
		for i := 0; i < n; i++ {
			key := col.String(i)
			if !levels[key] {
				levels[key] = true
				levelList = append(levelList, key)
			}
		}
		if len(levelList) != 2 {
			return nil, analysis.Invalidf("factor %q must have exactly 2 levels for a 2^k analysis", name)
		}
		sort.Strings(levelList)
		if col.Kind == table.KindNumeric {
			// Sort numerically so the low level codes to -1.
			sort.Slice(levelList, func(a, b int) bool {
				var fa, fb float64
				fmt.Sscanf(levelList[a], "%g", &fa)
				fmt.Sscanf(levelList[b], "%g", &fb)
				return fa < fb
			})
		}
		low := levelList[0]
		codes := make([]float64, n)
		for i := 0; i < n; i++ {
			if col.String(i) == low {
				codes[i] = -1
			} else {
				codes[i] = 1
			}
		}
		coded[name] = codes
		factorLevels[name] = map[string]string{"low": levelList[0], "high": levelList[1]}
	}

	// Design matrix: main effects then two-way interactions.
	var terms []string
	terms = append(terms, factorNames...)
	for i := 0; i < len(factorNames); i++ {
		for j := i + 1; j < len(factorNames); j++ {
			terms = append(terms, factorNames[i]+":"+factorNames[j])
		}
	}

	y := make([]float64, n)
	predictors := make([][]float64, n)
	for i := 0; i < n; i++ {
		y[i] = responseCol.Float(i)
		row := make([]float64, len(terms))
		for j, term := range terms {
			if a, b, isInteraction := strings.Cut(term, ":"); isInteraction {
				row[j] = coded[a][i] * coded[b][i]
			} else {
				row[j] = coded[term][i]
			}
		}
		predictors[i] = row
	}

	model, err := stats.OLS(y, predictors)
	if err != nil {
		return nil, analysis.Computef("could not fit the factorial model: %v", err)
	}

	type effectRow struct {
		record analysis.Record
		abs    float64
	}
	var effects []effectRow
	var significant []string
	for j, term := range terms {
		coef := model.Coefs[j+1]
		pValue := model.PValues[j+1]
		effect := 2 * coef
		label := "Not significant"
		if pValue < 0.05 {
			label = "Significant"
			significant = append(significant, term)
		}
		effects = append(effects, effectRow{
			record: analysis.Record{
				"term":         term,
				"effect":       stats.Round(effect, 4),
				"coefficient":  stats.Round(coef, 4),
				"p_value":      stats.Round(pValue, 5),
				"significance": label,
				"abs_effect":   math.Abs(effect),
			},
			abs: math.Abs(effect),
		})
	}
	sort.SliceStable(effects, func(i, j int) bool { return effects[i].abs > effects[j].abs })

	chart := make([]analysis.Record, len(effects))
	for i, e := range effects {
		chart[i] = e.record
	}

	var summary string
	if len(significant) > 0 {
		summary = fmt.Sprintf(
			"DOE analysis (%d factors). Significant factors affecting %q: %s. Model R-squared: %.2f%%.",
			len(factorNames), responseName, strings.Join(significant, ", "), model.R2*100)
	} else {
		summary = "DOE analysis complete. No statistically significant factors were found with the current data (p < 0.05)."
	}

	return analysis.NewResult("Design of Experiments (Factorial DOE)", summary, chart, map[string]any{
		"r_squared":     stats.Round(model.R2, 4),
		"r_squared_adj": stats.Round(model.AdjR2, 4),
		"f_statistic":   stats.Round(model.FStat, 2),
		"factor_levels": factorLevels,
	}), nil
}

package tools

import (
	"fmt"
	"math"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/stats"
	"github.com/sigmaflow-org/sigmaflow/table"
)

// ============================================================================
// GAGE R&R — measurement system analysis, crossed ANOVA method
// ============================================================================
// Variance components from the two-way ANOVA with interaction on a balanced
// crossed design (every operator measures every part the same number of
// times). Acceptance thresholds follow AIAG: %R&R < 10 excellent, < 30
// conditional, otherwise unacceptable.
// ============================================================================

type gageRRTool struct{}

func (gageRRTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("measurement data is required")
	}
	if err := analysis.RequireColumns(t, "operator", "part", "measurement"); err != nil {
		return nil, err
	}

	operCol, _ := t.Column("operator")
	partCol, _ := t.Column("part")
	measCol, _ := t.Column("measurement")
	if measCol.Kind != table.KindNumeric {
		return nil, analysis.Invalidf("measurement column must be numeric")
	}

	type cellKey struct{ part, oper string }
	cells := map[cellKey][]float64{}
	partSeen, operSeen := map[string]bool{}, map[string]bool{}
	var parts, opers []string
	var all []float64
	for i := 0; i < t.Len(); i++ {
		if operCol.IsNull(i) || partCol.IsNull(i) || measCol.IsNull(i) {
			continue
		}
		part, oper := partCol.String(i), operCol.String(i)
		if !partSeen[part] {
			partSeen[part] = true
			parts = append(parts, part)
		}
		if !operSeen[oper] {
			operSeen[oper] = true
			opers = append(opers, oper)
		}
		v := measCol.Float(i)
		cells[cellKey{part, oper}] = append(cells[cellKey{part, oper}], v)
		all = append(all, v)
	}

	nParts, nOpers := len(parts), len(opers)
	if nParts < 2 || nOpers < 2 {
		return nil, analysis.Invalidf("a valid R&R study needs at least 2 parts and 2 operators")
	}

	// Balanced design only: every part/operator cell must hold the same
	// number of repeated measurements.
	trials := 0
	for _, part := range parts {
		for _, oper := range opers {
			n := len(cells[cellKey{part, oper}])
			if trials == 0 {
				trials = n
			}
			if n != trials {
				return nil, analysis.Invalidf("unbalanced design: every operator must measure every part the same number of times")
			}
		}
	}
	if trials < 2 {
		return nil, analysis.Invalidf("at least 2 repeated measurements per part and operator are required")
	}

	grand := stats.Mean(all)
	partMean := map[string]float64{}
	operMean := map[string]float64{}
	for _, part := range parts {
		var vals []float64
		for _, oper := range opers {
			vals = append(vals, cells[cellKey{part, oper}]...)
		}
		partMean[part] = stats.Mean(vals)
	}
	for _, oper := range opers {
		var vals []float64
		for _, part := range parts {
			vals = append(vals, cells[cellKey{part, oper}]...)
		}
		operMean[oper] = stats.Mean(vals)
	}

	var ssPart, ssOper, ssInteraction, ssError float64
	for _, part := range parts {
		d := partMean[part] - grand
		ssPart += float64(nOpers*trials) * d * d
	}
	for _, oper := range opers {
		d := operMean[oper] - grand
		ssOper += float64(nParts*trials) * d * d
	}
	for _, part := range parts {
		for _, oper := range opers {
			cell := cells[cellKey{part, oper}]
			cellMean := stats.Mean(cell)
			d := cellMean - partMean[part] - operMean[oper] + grand
			ssInteraction += float64(trials) * d * d
			for _, v := range cell {
				e := v - cellMean
				ssError += e * e
			}
		}
	}

	msPart := ssPart / float64(nParts-1)
	msOper := ssOper / float64(nOpers-1)
	msInteraction := ssInteraction / float64((nParts-1)*(nOpers-1))
	msError := ssError / float64(nParts*nOpers*(trials-1))

	fTrials := float64(trials)
	varRepeatability := msError
	varInteraction := math.Max(0, (msInteraction-msError)/fTrials)
	varReproducibility := math.Max(0, (msOper-msInteraction)/(float64(nParts)*fTrials))
	varGageRR := varRepeatability + varReproducibility + varInteraction
	varPart := math.Max(0, (msPart-msInteraction)/(float64(nOpers)*fTrials))
	varTotal := varGageRR + varPart
	if varTotal == 0 {
		return nil, analysis.Computef("total variation is zero, study percentages are undefined")
	}

	sigmaMult := p.Float("sigma_multiplier", 6.0)
	components := []struct {
		name     string
		variance float64
	}{
		{"Gage R&R (Total)", varGageRR},
		{"Repeatability (Equipment)", varRepeatability},
		{"Reproducibility (Operator)", varReproducibility},
		{"Part-to-Part Variation", varPart},
		{"Total Variation", varTotal},
	}

	chart := make([]analysis.Record, 0, len(components))
	largest := components[0]
	for _, c := range components {
		sd := math.Sqrt(c.variance)
		chart = append(chart, analysis.Record{
			"component":     c.name,
			"variance":      stats.Round(c.variance, 4),
			"std_dev":       stats.Round(sd, 4),
			"study_var":     stats.Round(sd*sigmaMult, 4),
			"pct_study_var": stats.Round(sd/math.Sqrt(varTotal)*100, 2),
		})
		if c.variance > largest.variance {
			largest = c
		}
	}

	pctGRR := chart[0]["pct_study_var"].(float64)
	status := "UNACCEPTABLE"
	advice := "The measurement system must be corrected. Too much measurement variation."
	switch {
	case pctGRR < 10:
		status = "EXCELLENT"
		advice = "The measurement system is reliable."
	case pctGRR < 30:
		status = "CONDITIONAL"
		advice = "The system may be acceptable depending on the application or cost."
	}

	summary := fmt.Sprintf(
		"Gage R&R study complete. Total %%R&R: %.2f%%. Status: %s. %s The largest source of variation is %q.",
		pctGRR, status, advice, largest.name)

	return analysis.NewResult("Measurement System Analysis (Gage R&R)", summary, chart, map[string]any{
		"n_parts":     nParts,
		"n_operators": nOpers,
		"n_trials":    trials,
		"anova_results": map[string]float64{
			"ms_part":  stats.Round(msPart, 2),
			"ms_oper":  stats.Round(msOper, 2),
			"ms_error": stats.Round(msError, 2),
		},
	}), nil
}

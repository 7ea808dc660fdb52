package tools

import (
	"fmt"
	"sort"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/stats"
	"github.com/sigmaflow-org/sigmaflow/table"
)

// ============================================================================
// RISK ANALYSIS and FMEA — risk priority numbers
// ============================================================================
// NPR = severity * occurrence * detection. Classification thresholds:
// >= 200 critical, >= 100 high, >= 50 medium, else low.
// ============================================================================

func riskLevel(npr float64) string {
	switch {
	case npr >= 200:
		return "Critical (immediate action)"
	case npr >= 100:
		return "High (attention required)"
	case npr >= 50:
		return "Medium"
	default:
		return "Low"
	}
}

func riskCategory(npr float64) string {
	switch {
	case npr >= 200:
		return "Critical"
	case npr >= 100:
		return "High"
	case npr >= 50:
		return "Medium"
	default:
		return "Low"
	}
}

// rowRecord copies every column value of row i into a Record.
func rowRecord(t *table.Table, i int) analysis.Record {
	row := analysis.Record{}
	for _, name := range t.Columns() {
		col, _ := t.Column(name)
		if col.IsNull(i) {
			row[name] = nil
			continue
		}
		switch col.Kind {
		case table.KindNumeric:
			row[name] = col.Float(i)
		case table.KindBool:
			row[name] = col.Bool(i)
		case table.KindNested:
			row[name] = col.Nested(i)
		default:
			row[name] = col.String(i)
		}
	}
	return row
}

type riskAnalysisTool struct{}

func (riskAnalysisTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("no data provided for risk analysis")
	}
	if err := analysis.RequireColumns(t, "severity", "occurrence", "detection"); err != nil {
		return nil, err
	}

	sev, _ := t.Column("severity")
	occ, _ := t.Column("occurrence")
	det, _ := t.Column("detection")

	type scored struct {
		row         analysis.Record
		npr         float64
		criticality float64
	}
	rows := make([]scored, 0, t.Len())
	var nprSum, nprMax float64
	highCount := 0
	for i := 0; i < t.Len(); i++ {
		npr := sev.Float(i) * occ.Float(i) * det.Float(i)
		crit := sev.Float(i) * occ.Float(i)
		row := rowRecord(t, i)
		row["npr"] = npr
		row["criticality"] = crit
		row["risk_level"] = riskLevel(npr)
		rows = append(rows, scored{row: row, npr: npr, criticality: crit})
		nprSum += npr
		if npr > nprMax {
			nprMax = npr
		}
		if npr >= 100 {
			highCount++
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].npr > rows[j].npr })

	chart := make([]analysis.Record, len(rows))
	for i, r := range rows {
		chart[i] = r.row
	}

	topMode := "N/A"
	if v, ok := rows[0].row["failure_mode"].(string); ok {
		topMode = v
	}
	summary := fmt.Sprintf(
		"Analyzed %d potential failure modes. Detected %d high or critical priority risks. "+
			"The top risk is %q with an NPR of %.0f and a criticality of %.0f.",
		len(rows), highCount, topMode, rows[0].npr, rows[0].criticality)

	return analysis.NewResult("Risk Analysis (FMEA)", summary, chart, map[string]any{
		"max_npr":              nprMax,
		"avg_npr":              nprSum / float64(len(rows)),
		"critical_items_count": highCount,
	}), nil
}

type fmeaTool struct{}

func (fmeaTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("the FMEA table is empty")
	}
	required := []string{"function_part", "failure_mode", "severity", "occurrence", "detection"}
	if err := analysis.RequireColumns(t, required...); err != nil {
		return nil, err
	}

	sev, _ := t.Column("severity")
	occ, _ := t.Column("occurrence")
	det, _ := t.Column("detection")

	type scored struct {
		row analysis.Record
		npr float64
	}
	rows := make([]scored, 0, t.Len())
	var nprSum, nprMax float64
	critical := 0
	for i := 0; i < t.Len(); i++ {
		npr := sev.Float(i) * occ.Float(i) * det.Float(i)
		row := rowRecord(t, i)
		row["npr"] = npr
		row["risk_category"] = riskCategory(npr)
		rows = append(rows, scored{row: row, npr: npr})
		nprSum += npr
		if npr > nprMax {
			nprMax = npr
		}
		if npr >= 100 {
			critical++
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].npr > rows[j].npr })

	chart := make([]analysis.Record, len(rows))
	for i, r := range rows {
		chart[i] = r.row
	}

	topMode, _ := rows[0].row["failure_mode"].(string)
	topCause, _ := rows[0].row["cause"].(string)
	summary := fmt.Sprintf(
		"FMEA analysis complete with %d failure modes. Found %d high or critical risk failures. "+
			"Priority #1 is %q (cause: %s) with an NPR of %.0f.",
		len(rows), critical, topMode, topCause, rows[0].npr)

	return analysis.NewResult("FMEA (Failure Mode and Effects Analysis)", summary, chart, map[string]any{
		"max_npr":        nprMax,
		"total_risk_sum": nprSum,
		"critical_count": critical,
	}), nil
}

// ============================================================================
// ONE-WAY ANOVA
// ============================================================================

type anovaTool struct{}

func (anovaTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("data is required for ANOVA")
	}

	groupCol, okG := t.FirstText()
	valueCol, okV := t.FirstNumeric()
	if !okG || !okV {
		return nil, analysis.Invalidf("data must contain at least one text column (group) and one numeric column (value)")
	}

	order, byGroup := groupValues(groupCol, valueCol)
	k := len(order)
	if k < 2 {
		return nil, analysis.Invalidf("ANOVA requires at least two groups, got %d", k)
	}

	var all []float64
	for _, name := range order {
		if len(byGroup[name]) < 2 {
			return nil, analysis.Invalidf("group %q has fewer than two observations", name)
		}
		all = append(all, byGroup[name]...)
	}
	total := len(all)
	grandMean := stats.Mean(all)

	var ssBetween, ssTotal float64
	for _, name := range order {
		vals := byGroup[name]
		d := stats.Mean(vals) - grandMean
		ssBetween += float64(len(vals)) * d * d
	}
	for _, v := range all {
		d := v - grandMean
		ssTotal += d * d
	}
	ssWithin := ssTotal - ssBetween

	dfBetween := k - 1
	dfWithin := total - k
	msBetween := ssBetween / float64(dfBetween)
	msWithin := ssWithin / float64(dfWithin)
	if msWithin == 0 {
		return nil, analysis.Computef("within-group variance is zero, F statistic is undefined")
	}
	fStat := msBetween / msWithin
	pValue := stats.FTail(fStat, float64(dfBetween), float64(dfWithin))

	confidence := p.Float("confidence_level", 0.95)
	alpha := 1 - confidence
	significant := pValue < alpha

	interpretation := "There is no sufficient evidence that the group means differ."
	if significant {
		interpretation = "There is a statistically significant difference between the group means."
	}
	summary := fmt.Sprintf(
		"One-way ANOVA for factor %q. F = %.2f, p = %.4f. Conclusion (%.0f%% confidence): %s",
		groupCol.Name, fStat, pValue, confidence*100, interpretation)

	chart := make([]analysis.Record, 0, k)
	for _, name := range order {
		vals := byGroup[name]
		q1, med, q3 := stats.Quartiles(vals)
		chart = append(chart, analysis.Record{
			"group":  name,
			"min":    stats.Min(vals),
			"q1":     q1,
			"median": med,
			"q3":     q3,
			"max":    stats.Max(vals),
			"mean":   stats.Mean(vals),
		})
	}

	return analysis.NewResult("One-Way ANOVA", summary, chart, map[string]any{
		"anova_table": map[string]any{
			"source": []string{"Treatment (between)", "Error (within)", "Total"},
			"df":     []int{dfBetween, dfWithin, total - 1},
			"ss":     []float64{stats.Round(ssBetween, 2), stats.Round(ssWithin, 2), stats.Round(ssTotal, 2)},
			"ms":     []any{stats.Round(msBetween, 2), stats.Round(msWithin, 2), ""},
			"f":      []any{stats.Round(fStat, 2), "", ""},
			"p":      []any{stats.Round(pValue, 5), "", ""},
		},
		"is_significant": significant,
	}), nil
}

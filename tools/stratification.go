package tools

import (
	"fmt"
	"sort"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/stats"
	"github.com/sigmaflow-org/sigmaflow/table"
)

// ============================================================================
// STRATIFICATION — per-stratum descriptive statistics
// ============================================================================

type stratificationTool struct{}

func (stratificationTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("data is required for stratification")
	}

	factorName := p.String("factor_column", "")
	targetName := p.String("target_column", "")
	metric := p.String("metric", "mean")
	if factorName == "" || targetName == "" {
		return nil, analysis.Invalidf("both factor_column (group) and target_column (value) must be specified")
	}
	if err := analysis.RequireColumns(t, factorName, targetName); err != nil {
		return nil, err
	}

	factorCol, _ := t.Column(factorName)
	targetCol, _ := t.Column(targetName)
	if targetCol.Kind != table.KindNumeric {
		return nil, analysis.Invalidf("target column %q must be numeric", targetName)
	}

	order, byGroup := groupValues(factorCol, targetCol)
	if len(order) == 0 {
		return nil, analysis.Invalidf("no usable groups found")
	}

	type stratum struct {
		record analysis.Record
		key    float64
	}
	strata := make([]stratum, 0, len(order))
	for _, name := range order {
		vals := byGroup[name]
		agg := map[string]float64{
			"count": float64(len(vals)),
			"sum":   stats.Sum(vals),
			"mean":  stats.Mean(vals),
			"std":   stats.StdDev(vals),
			"min":   stats.Min(vals),
			"max":   stats.Max(vals),
		}
		record := analysis.Record{factorName: name}
		for k, v := range agg {
			record[k] = v
		}
		strata = append(strata, stratum{record: record, key: agg[metric]})
	}
	sort.SliceStable(strata, func(i, j int) bool { return strata[i].key > strata[j].key })

	best := strata[0]
	worst := strata[len(strata)-1]
	diffPct := 0.0
	if worst.key > 0 {
		diffPct = (best.key - worst.key) / worst.key * 100
	}
	impact := "has little"
	if diffPct > 20 {
		impact = "has a real"
	}
	summary := fmt.Sprintf(
		"Stratification by %q complete. Found %d groups. The largest difference in %s is %.1f%% between %q and %q. "+
			"This suggests the factor %q %s impact on the results.",
		factorName, len(strata), metric, diffPct,
		best.record[factorName], worst.record[factorName], factorName, impact)

	chart := make([]analysis.Record, len(strata))
	for i, s := range strata {
		chart[i] = s.record
	}

	return analysis.NewResult("Data Stratification", summary, chart, map[string]any{
		"strata_field":   factorName,
		"analyzed_field": targetName,
		"primary_metric": metric,
	}), nil
}

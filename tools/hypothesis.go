package tools

import (
	"fmt"
	"math"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/stats"
	"github.com/sigmaflow-org/sigmaflow/table"
)

// ============================================================================
// HYPOTHESIS TESTS — one-sample, two-sample (Welch) and paired t-tests
// ============================================================================

type hypothesisTestTool struct{}

func (h hypothesisTestTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("data is required for the hypothesis test")
	}

	testType := p.String("test_type", "")
	alpha := p.Float("alpha", 0.05)

	var stat, pValue float64
	var summary string
	var chart []analysis.Record
	details := map[string]any{}

	switch testType {
	case "1_sample":
		target, ok := p.FloatOpt("target_value")
		if !ok {
			return nil, analysis.Invalidf("a one-sample t-test requires target_value")
		}
		col, err := pickNumeric(t, p.String("value_column", ""))
		if err != nil {
			return nil, err
		}
		data := col.Floats()
		n := len(data)
		if n < 2 {
			return nil, analysis.Invalidf("at least 2 observations are required")
		}

		mean := stats.Mean(data)
		se := stats.StdDev(data) / math.Sqrt(float64(n))
		if se == 0 {
			return nil, analysis.Computef("standard error is zero, t statistic is undefined")
		}
		stat = (mean - target) / se
		pValue = stats.TTailTwoSided(stat, float64(n-1))

		details["mean"] = mean
		details["target"] = target
		details["n"] = n
		summary = fmt.Sprintf("One-sample t-test. Observed mean: %.2f vs target: %g.", mean, target)

		for i, v := range data {
			chart = append(chart, analysis.Record{"index": i, "value": v})
		}

	case "2_sample":
		groupCol, err := pickText(t, p.String("group_column", ""))
		if err != nil {
			return nil, err
		}
		valueCol, err := pickNumeric(t, p.String("value_column", ""))
		if err != nil {
			return nil, err
		}
		order, byGroup := groupValues(groupCol, valueCol)
		if len(order) != 2 {
			return nil, analysis.Invalidf("a two-sample t-test needs the column %q to contain exactly 2 unique groups, found %d", groupCol.Name, len(order))
		}
		g1, g2 := byGroup[order[0]], byGroup[order[1]]
		if len(g1) < 2 || len(g2) < 2 {
			return nil, analysis.Invalidf("each group needs at least 2 observations")
		}

		// Welch's t-test: no equal-variance assumption.
		m1, m2 := stats.Mean(g1), stats.Mean(g2)
		v1, v2 := stats.Variance(g1), stats.Variance(g2)
		n1, n2 := float64(len(g1)), float64(len(g2))
		se := math.Sqrt(v1/n1 + v2/n2)
		if se == 0 {
			return nil, analysis.Computef("pooled standard error is zero, t statistic is undefined")
		}
		stat = (m1 - m2) / se
		df := math.Pow(v1/n1+v2/n2, 2) /
			(math.Pow(v1/n1, 2)/(n1-1) + math.Pow(v2/n2, 2)/(n2-1))
		pValue = stats.TTailTwoSided(stat, df)

		details["mean_"+order[0]] = m1
		details["mean_"+order[1]] = m2
		details["diff"] = m1 - m2
		summary = fmt.Sprintf("Two-sample t-test (%s vs %s). Mean difference: %.2f.", order[0], order[1], m1-m2)

		chart = []analysis.Record{
			{"group": order[0], "values": g1},
			{"group": order[1], "values": g2},
		}

	case "paired":
		c1Name := p.String("column_1", "")
		c2Name := p.String("column_2", "")
		if c1Name == "" || c2Name == "" {
			nums := t.NumericColumns()
			if len(nums) < 2 {
				return nil, analysis.Invalidf("a paired test requires two numeric columns")
			}
			c1Name, c2Name = nums[0].Name, nums[1].Name
		}
		if err := analysis.RequireColumns(t, c1Name, c2Name); err != nil {
			return nil, err
		}
		c1, _ := t.Column(c1Name)
		c2, _ := t.Column(c2Name)

		var diffs []float64
		for i := 0; i < t.Len(); i++ {
			if c1.IsNull(i) || c2.IsNull(i) {
				continue
			}
			diffs = append(diffs, c1.Float(i)-c2.Float(i))
		}
		n := len(diffs)
		if n < 2 {
			return nil, analysis.Invalidf("at least 2 complete pairs are required")
		}

		meanDiff := stats.Mean(diffs)
		se := stats.StdDev(diffs) / math.Sqrt(float64(n))
		if se == 0 {
			return nil, analysis.Computef("standard error of differences is zero, t statistic is undefined")
		}
		stat = meanDiff / se
		pValue = stats.TTailTwoSided(stat, float64(n-1))

		details["mean_diff"] = meanDiff
		details["n_pairs"] = n
		summary = fmt.Sprintf("Paired t-test (%s vs %s). Average difference: %.2f.", c1Name, c2Name, meanDiff)

		for i, d := range diffs {
			chart = append(chart, analysis.Record{"pair_id": i, "diff": d})
		}

	default:
		return nil, analysis.Invalidf("invalid test type %q", testType)
	}

	significant := pValue < alpha
	decision := "DO NOT REJECT the null hypothesis (H0)"
	conclusion := "There is no sufficient evidence of a difference."
	if significant {
		decision = "REJECT the null hypothesis (H0)"
		conclusion = "There is a statistically significant difference."
	}
	summary = fmt.Sprintf("%s P-value: %.5f. Decision: %s. Conclusion: %s", summary, pValue, decision, conclusion)

	details["t_statistic"] = stats.Round(stat, 4)
	details["p_value"] = pValue
	details["alpha"] = alpha
	details["significant"] = significant

	return analysis.NewResult(fmt.Sprintf("Hypothesis Test (%s)", testType), summary, chart, details), nil
}

// pickNumeric returns the named column, or the first numeric one when name
// is empty.
func pickNumeric(t *table.Table, name string) (*table.Column, error) {
	if name != "" {
		col, ok := t.Column(name)
		if !ok {
			return nil, analysis.Invalidf("missing required columns: %s", name)
		}
		if col.Kind != table.KindNumeric {
			return nil, analysis.Invalidf("column %q must be numeric", name)
		}
		return col, nil
	}
	col, ok := t.FirstNumeric()
	if !ok {
		return nil, analysis.Invalidf("no numeric column found")
	}
	return col, nil
}

// pickText returns the named column, or the first text one when name is
// empty.
func pickText(t *table.Table, name string) (*table.Column, error) {
	if name != "" {
		col, ok := t.Column(name)
		if !ok {
			return nil, analysis.Invalidf("missing required columns: %s", name)
		}
		return col, nil
	}
	col, ok := t.FirstText()
	if !ok {
		return nil, analysis.Invalidf("no grouping column found")
	}
	return col, nil
}

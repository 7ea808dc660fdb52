package tools

import (
	"fmt"
	"math"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/stats"
	"github.com/sigmaflow-org/sigmaflow/table"
)

// ============================================================================
// CONFIDENCE INTERVAL — interval estimation for a mean or a proportion
// ============================================================================

type confidenceIntervalTool struct{}

func (confidenceIntervalTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("data is required to compute the interval")
	}
	cols := t.Columns()
	col, _ := t.Column(cols[0])

	confidence := p.Float("confidence_level", 0.95)
	varType := p.String("variable_type", "mean")
	target, hasTarget := p.FloatOpt("target_value")

	var lower, upper, statistic float64
	var summary string
	details := map[string]any{}

	switch varType {
	case "mean":
		if col.Kind != table.KindNumeric {
			return nil, analysis.Invalidf("to estimate a mean, column %q must be numeric", col.Name)
		}
		data := col.Floats()
		n := len(data)
		if n < 2 {
			return nil, analysis.Invalidf("at least 2 data points are required")
		}

		mean := stats.Mean(data)
		sd := stats.StdDev(data)
		statistic = mean
		stdErr := sd / math.Sqrt(float64(n))

		// t for small samples, z for n >= 30.
		var critical float64
		var distName string
		if n < 30 {
			distName = "Student's t"
			critical = stats.TCritical(confidence, float64(n-1))
		} else {
			distName = "Normal (Z)"
			critical = stats.ZCritical(confidence)
		}
		margin := critical * stdErr
		lower, upper = mean-margin, mean+margin

		summary = fmt.Sprintf(
			"Confidence interval for the mean (%.0f%%): [%.4f, %.4f]. "+
				"Based on %d samples with mean %.4f and std dev %.4f (%s distribution).",
			confidence*100, lower, upper, n, mean, sd, distName)

		details = map[string]any{
			"mean":           stats.Round(mean, 4),
			"std_dev":        stats.Round(sd, 4),
			"n":              n,
			"distribution":   distName,
			"critical_value": stats.Round(critical, 4),
			"standard_error": stats.Round(stdErr, 4),
		}

	case "proportion":
		n := 0
		counts := map[string]int{}
		var order []string
		for i := 0; i < col.Len(); i++ {
			if col.IsNull(i) {
				continue
			}
			n++
			key := col.String(i)
			if _, ok := counts[key]; !ok {
				order = append(order, key)
			}
			counts[key]++
		}
		if n < 2 {
			return nil, analysis.Invalidf("at least 2 data points are required")
		}

		// For binary numeric data the proportion is the mean; otherwise the
		// first category observed is treated as "success".
		var pHat float64
		var label string
		if col.Kind == table.KindNumeric && len(order) <= 2 {
			pHat = stats.Mean(col.Floats())
			label = "1 (success)"
		} else {
			label = order[0]
			pHat = float64(counts[label]) / float64(n)
		}
		statistic = pHat

		critical := stats.ZCritical(confidence)
		stdErr := math.Sqrt(pHat * (1 - pHat) / float64(n))
		margin := critical * stdErr
		lower = math.Max(0, pHat-margin)
		upper = math.Min(1, pHat+margin)

		summary = fmt.Sprintf(
			"Interval for the proportion of %q (%.0f%%): [%.2f%%, %.2f%%]. Sample proportion: %.2f%% (n=%d).",
			label, confidence*100, lower*100, upper*100, pHat*100, n)

		details = map[string]any{
			"proportion":        stats.Round(pHat, 4),
			"category_analyzed": label,
			"n":                 n,
			"method":            "Normal approximation (Wald)",
		}

	default:
		return nil, analysis.Invalidf("variable_type must be %q or %q", "mean", "proportion")
	}

	if hasTarget {
		if lower <= target && target <= upper {
			details["target_status"] = "INSIDE"
			summary += fmt.Sprintf(
				" The target %g is inside the interval, so the true parameter could plausibly equal the target.", target)
		} else {
			details["target_status"] = "OUTSIDE"
			summary += fmt.Sprintf(
				" The target %g is outside the interval. There is significant evidence the process is not centered on the target.", target)
		}
	}

	chart := []analysis.Record{{
		"label": "Estimate",
		"value": statistic,
		"min":   lower,
		"max":   upper,
		"target": func() any {
			if hasTarget {
				return target
			}
			return nil
		}(),
	}}

	return analysis.NewResult("Confidence Interval", summary, chart, details), nil
}

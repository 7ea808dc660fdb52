package tools

import (
	"fmt"
	"strings"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/stats"
	"github.com/sigmaflow-org/sigmaflow/table"
)

// ============================================================================
// BOX PLOT — Tukey five-number summaries with outlier detection
// ============================================================================

type boxplotTool struct{}

func (boxplotTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("numeric data is required for the box plot")
	}

	valueCol, ok := t.FirstNumeric()
	if !ok {
		return nil, analysis.Invalidf("no numeric column found")
	}

	// Grouping is optional; without a text column everything falls into a
	// single "General" box.
	groupName := "none"
	var order []string
	var byGroup map[string][]float64
	if groupCol, ok := t.FirstText(); ok {
		groupName = groupCol.Name
		order, byGroup = groupValues(groupCol, valueCol)
	} else {
		order = []string{"General"}
		byGroup = map[string][]float64{"General": valueCol.Floats()}
	}

	var chart []analysis.Record
	var parts []string
	for _, name := range order {
		values := byGroup[name]
		if len(values) == 0 {
			continue
		}

		q1, median, q3 := stats.Quartiles(values)
		iqr := q3 - q1
		lower := q1 - 1.5*iqr
		upper := q3 + 1.5*iqr

		// Whiskers reach the most extreme data points still inside the
		// 1.5*IQR fences.
		whiskerMin, whiskerMax := q1, q3
		foundMin, foundMax := false, false
		var outliers []float64
		for _, v := range values {
			if v < lower || v > upper {
				outliers = append(outliers, v)
				continue
			}
			if !foundMin || v < whiskerMin {
				whiskerMin, foundMin = v, true
			}
			if !foundMax || v > whiskerMax {
				whiskerMax, foundMax = v, true
			}
		}
		if outliers == nil {
			outliers = []float64{}
		}

		chart = append(chart, analysis.Record{
			"category": name,
			"min":      whiskerMin,
			"q1":       q1,
			"median":   median,
			"q3":       q3,
			"max":      whiskerMax,
			"outliers": outliers,
		})
		parts = append(parts, fmt.Sprintf("%s: median=%.2f, range=%.2f", name, median, whiskerMax-whiskerMin))
	}
	if len(chart) == 0 {
		return nil, analysis.Invalidf("no numeric values available after dropping nulls")
	}

	summary := fmt.Sprintf("Dispersion analysis for %q. %s.", valueCol.Name, strings.Join(parts, " | "))

	return analysis.NewResult("Box Plot", summary, chart, map[string]any{
		"analyzed_variable": valueCol.Name,
		"grouped_by":        groupName,
	}), nil
}

package tools

import (
	"fmt"
	"math"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/stats"
	"github.com/sigmaflow-org/sigmaflow/table"
)

// ============================================================================
// RUN CHART — time-ordered plot with non-random pattern detection
// ============================================================================
// Signals checked:
//   runs test    — observed runs about the center line vs (2n-1)/3 expected
//   shift rule   — 8+ consecutive points on one side of the center line
//   trend rule   — 6+ consecutive rises or falls
// ============================================================================

type runChartTool struct{}

func (runChartTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("time-ordered numeric data is required")
	}
	valueCol, ok := t.FirstNumeric()
	if !ok {
		return nil, analysis.Invalidf("no numeric data found")
	}
	values := valueCol.Floats()
	labelCol, hasLabel := t.FirstLabel()

	method := p.String("center_line", "median")
	var centerLine float64
	if method == "mean" {
		centerLine = stats.Mean(values)
	} else {
		centerLine = stats.Median(values)
	}

	// Points exactly on the center line carry no run information.
	var signs []int
	for _, v := range values {
		switch {
		case v > centerLine:
			signs = append(signs, 1)
		case v < centerLine:
			signs = append(signs, -1)
		}
	}
	if len(signs) == 0 {
		return analysis.NewResult("Run Chart", "Constant data.", nil, map[string]any{}), nil
	}

	numRuns := 1
	for i := 1; i < len(signs); i++ {
		if signs[i] != signs[i-1] {
			numRuns++
		}
	}

	// Shift rule: 8 or more consecutive points on the same side.
	shifts := 0
	currentRun := 1
	for i := 1; i < len(signs); i++ {
		if signs[i] == signs[i-1] {
			currentRun++
			continue
		}
		if currentRun >= 8 {
			shifts++
		}
		currentRun = 1
	}
	if currentRun >= 8 {
		shifts++
	}

	// Trend rule: 6 or more consecutive moves in the same direction, ties
	// ignored.
	var moves []int
	for i := 1; i < len(values); i++ {
		switch {
		case values[i] > values[i-1]:
			moves = append(moves, 1)
		case values[i] < values[i-1]:
			moves = append(moves, -1)
		}
	}
	trends := 0
	currentTrend := 1
	for i := 1; i < len(moves); i++ {
		if moves[i] == moves[i-1] {
			currentTrend++
			continue
		}
		if currentTrend >= 6 {
			trends++
		}
		currentTrend = 1
	}
	if currentTrend >= 6 && len(moves) > 0 {
		trends++
	}

	nUseful := float64(len(signs))
	expectedRuns := (2*nUseful - 1) / 3
	stdRuns := math.Sqrt((16*nUseful - 29) / 90)
	zRuns := 0.0
	if stdRuns > 0 {
		zRuns = (float64(numRuns) - expectedRuns) / stdRuns
	}
	pValue := 2 * (1 - stats.NormalCDF(math.Abs(zRuns)))

	conclusion := "The process appears random."
	if pValue < 0.05 {
		if float64(numRuns) < expectedRuns {
			conclusion = "Possible clustering or mean shift."
		} else {
			conclusion = "Possible mixture or rapid oscillation."
		}
	}
	if shifts > 0 {
		conclusion += fmt.Sprintf(" Detected %d shift(s).", shifts)
	}
	if trends > 0 {
		conclusion += fmt.Sprintf(" Detected %d strong trend(s).", trends)
	}

	summary := fmt.Sprintf(
		"Run chart (%s=%.2f). Observed runs: %d (expected: %.1f). Randomness p-value: %.4f. %s",
		method, centerLine, numRuns, expectedRuns, pValue, conclusion)

	chart := make([]analysis.Record, 0, valueCol.Len())
	seq := 0
	for i := 0; i < valueCol.Len(); i++ {
		if valueCol.IsNull(i) {
			continue
		}
		seq++
		label := fmt.Sprintf("%d", seq)
		if hasLabel && !labelCol.IsNull(i) {
			label = labelCol.String(i)
		}
		chart = append(chart, analysis.Record{
			"label":       label,
			"value":       valueCol.Float(i),
			"center_line": centerLine,
		})
	}

	return analysis.NewResult("Run Chart (Time Series)", summary, chart, map[string]any{
		"n_points":        len(values),
		"n_runs":          numRuns,
		"shifts_detected": shifts,
		"trends_detected": trends,
		"p_value_runs":    stats.Round(pValue, 4),
	}), nil
}

package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func runChartValues(values ...float64) []map[string]any {
	rows := make([]map[string]any, len(values))
	for i, v := range values {
		rows[i] = map[string]any{"value": v}
	}
	return rows
}

func TestRunChartShiftDetection(t *testing.T) {
	// 9 points below the median then 9 above: two long same-side runs.
	res := run(t, runChartTool{}, runChartValues(
		1, 1.1, 1.2, 1.05, 1.15, 1.1, 1.0, 1.2, 1.1,
		5, 5.1, 5.2, 5.05, 5.15, 5.1, 5.0, 5.2, 5.1), nil)

	assert.Equal(t, 2, res.Details["n_runs"])
	assert.Equal(t, 2, res.Details["shifts_detected"])
	assert.Contains(t, res.Summary, "clustering or mean shift")
	assert.Less(t, res.Details["p_value_runs"].(float64), 0.05)
}

func TestRunChartTrendDetection(t *testing.T) {
	// Seven consecutive rises trip the trend rule.
	res := run(t, runChartTool{}, runChartValues(1, 2, 3, 4, 5, 6, 7, 8, 4, 3, 2, 1), nil)
	assert.Equal(t, 1, res.Details["trends_detected"])
	assert.Contains(t, res.Summary, "strong trend")
}

func TestRunChartRandomProcess(t *testing.T) {
	res := run(t, runChartTool{}, runChartValues(5, 9, 4, 8, 3, 9, 5, 8, 4, 7), nil)
	assert.Equal(t, 0, res.Details["shifts_detected"])
	assert.Equal(t, 0, res.Details["trends_detected"])
	assert.Len(t, res.ChartData, 10)
	assert.Equal(t, "1", res.ChartData[0]["label"])
}

func TestRunChartConstantData(t *testing.T) {
	res := run(t, runChartTool{}, controlChartRows(5, 5, 5, 5), nil)
	assert.Equal(t, "Constant data.", res.Summary)
	assert.Empty(t, res.ChartData)
}

func TestRunChartMeanCenterLine(t *testing.T) {
	res := run(t, runChartTool{}, runChartValues(1, 2, 3, 10), map[string]any{"center_line": "mean"})
	assert.Equal(t, 4.0, res.ChartData[0]["center_line"])
	assert.Contains(t, res.Summary, "mean=4.00")
}

package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/table"
)

func TestBoxplotFiveNumberOrdering(t *testing.T) {
	rows := []map[string]any{}
	for _, v := range []float64{3, 7, 8, 5, 12, 14, 21, 13, 18} {
		rows = append(rows, map[string]any{"time": v})
	}
	res := run(t, boxplotTool{}, rows, nil)

	require.Len(t, res.ChartData, 1)
	box := res.ChartData[0]
	assert.Equal(t, "General", box["category"])
	min := box["min"].(float64)
	q1 := box["q1"].(float64)
	median := box["median"].(float64)
	q3 := box["q3"].(float64)
	max := box["max"].(float64)
	assert.LessOrEqual(t, min, q1)
	assert.LessOrEqual(t, q1, median)
	assert.LessOrEqual(t, median, q3)
	assert.LessOrEqual(t, q3, max)
	assert.Empty(t, box["outliers"].([]float64))
}

func TestBoxplotOutliersOutsideFences(t *testing.T) {
	rows := []map[string]any{}
	for _, v := range []float64{10, 11, 12, 13, 14, 15, 16, 100} {
		rows = append(rows, map[string]any{"time": v})
	}
	res := run(t, boxplotTool{}, rows, nil)

	box := res.ChartData[0]
	outliers := box["outliers"].([]float64)
	require.Len(t, outliers, 1)
	assert.Equal(t, 100.0, outliers[0])

	q1 := box["q1"].(float64)
	q3 := box["q3"].(float64)
	iqr := q3 - q1
	for _, o := range outliers {
		assert.True(t, o < q1-1.5*iqr || o > q3+1.5*iqr)
	}
	// whisker stays inside the fence
	assert.LessOrEqual(t, box["max"].(float64), q3+1.5*iqr)
}

func TestBoxplotGrouped(t *testing.T) {
	rows := []map[string]any{
		{"phase": "before", "time": 20.0},
		{"phase": "before", "time": 22.0},
		{"phase": "before", "time": 21.0},
		{"phase": "after", "time": 10.0},
		{"phase": "after", "time": 11.0},
		{"phase": "after", "time": 12.0},
	}
	res := run(t, boxplotTool{}, rows, nil)

	require.Len(t, res.ChartData, 2)
	assert.Equal(t, "before", res.ChartData[0]["category"])
	assert.Equal(t, "after", res.ChartData[1]["category"])
	assert.Equal(t, "phase", res.Details["grouped_by"])
}

func TestBoxplotDeterministicRerun(t *testing.T) {
	rows := []map[string]any{
		{"g": "x", "v": 1.0}, {"g": "x", "v": 2.0}, {"g": "y", "v": 3.0},
	}
	a, err := boxplotTool{}.Analyze(table.Load(rows), analysis.Params{})
	require.NoError(t, err)
	b, err := boxplotTool{}.Analyze(table.Load(rows), analysis.Params{})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

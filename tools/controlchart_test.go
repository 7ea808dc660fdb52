package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/table"
)

func controlChartRows(values ...float64) []map[string]any {
	rows := make([]map[string]any, len(values))
	for i, v := range values {
		rows[i] = map[string]any{"measurement": v}
	}
	return rows
}

func TestControlChartLimits(t *testing.T) {
	// Two subgroups of n=2: (10,12) and (11,13).
	// Means 11, 12; ranges 2, 2. Grand mean 11.5, R-bar 2.
	// A2=1.880 → UCL_X = 11.5 + 3.76 = 15.26; D4=3.267 → UCL_R = 6.534.
	rows := controlChartRows(10, 12, 11, 13)
	res := run(t, controlChartTool{}, rows, analysis.Params{"subgroup_size": 2.0})

	require.Len(t, res.ChartData, 2)
	first := res.ChartData[0]
	assert.InDelta(t, 11.0, first["x_bar"].(float64), 1e-9)
	assert.InDelta(t, 2.0, first["r"].(float64), 1e-9)
	assert.InDelta(t, 15.26, first["ucl_x"].(float64), 1e-9)
	assert.InDelta(t, 7.74, first["lcl_x"].(float64), 1e-9)
	assert.InDelta(t, 6.534, first["ucl_r"].(float64), 1e-9)
	assert.Nil(t, first["violation"])

	constants := res.Details["constants_used"].(map[string]float64)
	assert.Equal(t, 1.880, constants["A2"])
	assert.Equal(t, 3.267, constants["D4"])
}

func TestControlChartDropsPartialSubgroup(t *testing.T) {
	// 5 values with n=2 → 2 subgroups, last value dropped.
	rows := controlChartRows(10, 12, 11, 13, 99)
	res := run(t, controlChartTool{}, rows, analysis.Params{"subgroup_size": 2.0})
	assert.Len(t, res.ChartData, 2)
}

func TestControlChartSubgroupSizeBounds(t *testing.T) {
	rows := controlChartRows(1, 2, 3, 4)
	for _, n := range []float64{1, 11} {
		_, err := controlChartTool{}.Analyze(table.Load(rows), analysis.Params{"subgroup_size": n})
		require.Error(t, err, "n=%v", n)
		assert.True(t, analysis.IsInvalidInput(err))
	}
}

func TestControlChartDetectsViolation(t *testing.T) {
	// Stable subgroups then one far-out subgroup mean.
	rows := controlChartRows(10, 10.2, 10.1, 9.9, 10.0, 10.1, 50, 50.2)
	res := run(t, controlChartTool{}, rows, analysis.Params{"subgroup_size": 2.0})

	last := res.ChartData[len(res.ChartData)-1]
	assert.Equal(t, "X", last["violation"])
	assert.Contains(t, res.Summary, "OUT OF CONTROL")
}

package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/table"
)

func TestHypothesisOneSample(t *testing.T) {
	rows := controlChartRows(14.2, 15.1, 14.8, 15.3, 14.6, 15.0, 14.9, 15.2)
	res := run(t, hypothesisTestTool{}, rows, analysis.Params{
		"test_type":    "1_sample",
		"target_value": 15.0,
	})

	assert.InDelta(t, 14.8875, res.Details["mean"].(float64), 1e-4)
	assert.Equal(t, false, res.Details["significant"])
	assert.Contains(t, res.Summary, "DO NOT REJECT")
}

func TestHypothesisOneSampleRequiresTarget(t *testing.T) {
	rows := controlChartRows(1, 2, 3)
	_, err := hypothesisTestTool{}.Analyze(table.Load(rows), analysis.Params{"test_type": "1_sample"})
	require.Error(t, err)
	assert.True(t, analysis.IsInvalidInput(err))
}

func TestHypothesisWelchTwoSample(t *testing.T) {
	rows := []map[string]any{
		{"period": "before", "time": 25.0},
		{"period": "before", "time": 26.0},
		{"period": "before", "time": 24.5},
		{"period": "before", "time": 25.5},
		{"period": "after", "time": 15.0},
		{"period": "after", "time": 15.5},
		{"period": "after", "time": 14.5},
		{"period": "after", "time": 16.0},
	}
	res := run(t, hypothesisTestTool{}, rows, analysis.Params{"test_type": "2_sample"})

	assert.Equal(t, true, res.Details["significant"])
	assert.InDelta(t, 10.0, res.Details["diff"].(float64), 1e-9)
	assert.Contains(t, res.Summary, "REJECT the null hypothesis")
}

func TestHypothesisTwoSampleNeedsExactlyTwoGroups(t *testing.T) {
	rows := []map[string]any{
		{"period": "a", "time": 1.0}, {"period": "a", "time": 2.0},
		{"period": "b", "time": 3.0}, {"period": "b", "time": 4.0},
		{"period": "c", "time": 5.0}, {"period": "c", "time": 6.0},
	}
	_, err := hypothesisTestTool{}.Analyze(table.Load(rows), analysis.Params{"test_type": "2_sample"})
	require.Error(t, err)
	assert.True(t, analysis.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "exactly 2 unique groups")
}

func TestHypothesisPaired(t *testing.T) {
	rows := []map[string]any{
		{"before": 20.0, "after": 15.0},
		{"before": 22.0, "after": 16.0},
		{"before": 19.0, "after": 14.0},
		{"before": 21.0, "after": 15.5},
		{"before": 20.5, "after": 15.2},
	}
	res := run(t, hypothesisTestTool{}, rows, analysis.Params{
		"test_type": "paired",
		"column_1":  "before",
		"column_2":  "after",
	})

	assert.Equal(t, true, res.Details["significant"])
	assert.Equal(t, 5, res.Details["n_pairs"])
	assert.Greater(t, res.Details["mean_diff"].(float64), 4.0)
}

func TestHypothesisInvalidType(t *testing.T) {
	rows := controlChartRows(1, 2)
	_, err := hypothesisTestTool{}.Analyze(table.Load(rows), analysis.Params{"test_type": "z_test"})
	require.Error(t, err)
	assert.True(t, analysis.IsInvalidInput(err))
}

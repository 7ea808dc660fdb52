package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/table"
)

// ============================================================================
// PARETO / ABC / SAMPLING TESTS
// ============================================================================

func run(t *testing.T, tool analysis.Tool, rows []map[string]any, params analysis.Params) *analysis.Result {
	t.Helper()
	res, err := tool.Analyze(table.Load(rows), params)
	require.NoError(t, err)
	require.Equal(t, analysis.StatusSuccess, res.Status)
	return res
}

func TestParetoCountsAndCumulative(t *testing.T) {
	rows := []map[string]any{
		{"category": "scratch"},
		{"category": "scratch"},
		{"category": "dent"},
		{"category": "scratch"},
		{"category": "stain"},
	}
	res := run(t, paretoTool{}, rows, nil)

	require.Len(t, res.ChartData, 3)
	first := res.ChartData[0]
	assert.Equal(t, "scratch", first["category"])
	assert.Equal(t, 3.0, first["count"])
	assert.InDelta(t, 60.0, first["percentage"].(float64), 1e-9)
	assert.InDelta(t, 60.0, first["cumulative_percentage"].(float64), 1e-9)

	last := res.ChartData[2]
	assert.InDelta(t, 100.0, last["cumulative_percentage"].(float64), 1e-9)
	assert.Equal(t, 3, res.Details["categories_count"])
}

func TestParetoMissingColumn(t *testing.T) {
	rows := []map[string]any{{"defect": "scratch"}}
	_, err := paretoTool{}.Analyze(table.Load(rows), nil)
	require.Error(t, err)
	assert.True(t, analysis.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "category")
}

func TestParetoABCClassification(t *testing.T) {
	rows := []map[string]any{
		{"label": "A-item", "value": 50.0},
		{"label": "B-item", "value": 30.0},
		{"label": "C-item", "value": 15.0},
		{"label": "D-item", "value": 5.0},
	}
	res := run(t, paretoABCTool{}, rows, nil)

	require.Len(t, res.ChartData, 4)
	wantCum := []float64{50, 80, 95, 100}
	wantClass := []string{"A", "A", "B", "C"}
	for i, rec := range res.ChartData {
		assert.InDelta(t, wantCum[i], rec["cumulative_percentage"].(float64), 1e-9, "row %d", i)
		assert.Equal(t, wantClass[i], rec["class"], "row %d", i)
	}

	dist := res.Details["abc_distribution"].(map[string]int)
	assert.Equal(t, 2, dist["A"])
	assert.Equal(t, 1, dist["B"])
	assert.Equal(t, 1, dist["C"])
}

func TestSamplingAttributeSize(t *testing.T) {
	res := run(t, samplingTool{}, nil, analysis.Params{
		"confidence_level": 0.95,
		"margin_error":     0.05,
	})
	// z=1.96, p=0.5 → 384.16 rounded up
	assert.Equal(t, 385, res.Details["calculated_n"])
}

func TestSamplingFinitePopulation(t *testing.T) {
	res := run(t, samplingTool{}, nil, analysis.Params{
		"confidence_level": 0.95,
		"margin_error":     0.05,
		"population_size":  1000.0,
	})
	// 384.16 adjusted: n / (1 + (n-1)/1000) ≈ 277.7 → 278
	assert.Equal(t, 278, res.Details["calculated_n"])
}

func TestSamplingVariableRequiresStdDev(t *testing.T) {
	_, err := samplingTool{}.Analyze(table.Load(nil), analysis.Params{
		"variable_type": "variable",
	})
	require.Error(t, err)
	assert.True(t, analysis.IsInvalidInput(err))
}

func TestSamplingExtractionDeterministic(t *testing.T) {
	rows := make([]map[string]any, 20)
	for i := range rows {
		rows[i] = map[string]any{"id": float64(i), "group": "g"}
	}
	first := run(t, samplingTool{}, rows, analysis.Params{"method": "extraction", "n_samples": 5.0})
	second := run(t, samplingTool{}, rows, analysis.Params{"method": "extraction", "n_samples": 5.0})

	require.Len(t, first.ChartData, 5)
	assert.Equal(t, first.ChartData, second.ChartData)
	assert.Equal(t, 20, first.Details["total_population"])
}

package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/table"
)

// ============================================================================
// RISK / FMEA / ANOVA TESTS
// ============================================================================

func TestRiskLevelThresholds(t *testing.T) {
	tests := []struct {
		npr  float64
		want string
	}{
		{200, "Critical (immediate action)"},
		{350, "Critical (immediate action)"},
		{100, "High (attention required)"},
		{199, "High (attention required)"},
		{50, "Medium"},
		{99, "Medium"},
		{49, "Low"},
		{1, "Low"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, riskLevel(tt.npr), "npr=%v", tt.npr)
	}
}

func TestRiskAnalysisRanking(t *testing.T) {
	rows := []map[string]any{
		{"failure_mode": "leak", "severity": 5.0, "occurrence": 4.0, "detection": 10.0},
		{"failure_mode": "crack", "severity": 9.0, "occurrence": 3.0, "detection": 2.0},
		{"failure_mode": "wear", "severity": 2.0, "occurrence": 2.0, "detection": 3.0},
	}
	res := run(t, riskAnalysisTool{}, rows, nil)

	require.Len(t, res.ChartData, 3)
	// leak: 5*4*10 = 200, crack: 54, wear: 12; sorted descending
	top := res.ChartData[0]
	assert.Equal(t, "leak", top["failure_mode"])
	assert.Equal(t, 200.0, top["npr"])
	assert.Equal(t, 20.0, top["criticality"])
	assert.Equal(t, "Critical (immediate action)", top["risk_level"])

	assert.Equal(t, 200.0, res.Details["max_npr"])
	assert.Equal(t, 1, res.Details["critical_items_count"])
}

func TestFMEARequiresColumns(t *testing.T) {
	rows := []map[string]any{
		{"severity": 5.0, "occurrence": 4.0, "detection": 2.0},
	}
	_, err := fmeaTool{}.Analyze(table.Load(rows), nil)
	require.Error(t, err)
	assert.True(t, analysis.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "function_part")
	assert.Contains(t, err.Error(), "failure_mode")
}

func TestAnovaSeparatedGroups(t *testing.T) {
	rows := []map[string]any{
		{"shift": "day", "cycle_time": 10.0},
		{"shift": "day", "cycle_time": 11.0},
		{"shift": "day", "cycle_time": 10.5},
		{"shift": "night", "cycle_time": 20.0},
		{"shift": "night", "cycle_time": 21.0},
		{"shift": "night", "cycle_time": 20.5},
	}
	res := run(t, anovaTool{}, rows, nil)

	assert.Equal(t, true, res.Details["is_significant"])
	require.Len(t, res.ChartData, 2)
	assert.Equal(t, "day", res.ChartData[0]["group"])
	assert.InDelta(t, 10.5, res.ChartData[0]["mean"].(float64), 1e-9)
}

func TestAnovaRejectsSingleGroup(t *testing.T) {
	rows := []map[string]any{
		{"shift": "day", "cycle_time": 10.0},
		{"shift": "day", "cycle_time": 11.0},
	}
	_, err := anovaTool{}.Analyze(table.Load(rows), nil)
	require.Error(t, err)
	assert.True(t, analysis.IsInvalidInput(err))
}

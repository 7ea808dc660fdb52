package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/table"
)

func gageRows(rows ...[3]any) []map[string]any {
	out := make([]map[string]any, len(rows))
	for i, r := range rows {
		out[i] = map[string]any{"operator": r[0], "part": r[1], "measurement": r[2]}
	}
	return out
}

func TestGageRRGoodSystem(t *testing.T) {
	// Parts are very different, operators repeat tightly: part
	// variation dominates consumption of the study variation.
	rows := gageRows(
		[3]any{"op1", "p1", 10.00}, [3]any{"op1", "p1", 10.02},
		[3]any{"op1", "p2", 20.01}, [3]any{"op1", "p2", 19.99},
		[3]any{"op1", "p3", 30.00}, [3]any{"op1", "p3", 30.01},
		[3]any{"op2", "p1", 10.01}, [3]any{"op2", "p1", 9.99},
		[3]any{"op2", "p2", 20.00}, [3]any{"op2", "p2", 20.02},
		[3]any{"op2", "p3", 29.99}, [3]any{"op2", "p3", 30.02},
	)
	res := run(t, gageRRTool{}, rows, nil)

	assert.Contains(t, res.Summary, "EXCELLENT")
	assert.Equal(t, 3, res.Details["n_parts"])
	assert.Equal(t, 2, res.Details["n_operators"])
	assert.Equal(t, 2, res.Details["n_trials"])

	require.Len(t, res.ChartData, 5)
	total := res.ChartData[4]
	assert.Equal(t, "Total Variation", total["component"])
	assert.InDelta(t, 100.0, total["pct_study_var"].(float64), 1e-6)

	grr := res.ChartData[0]["pct_study_var"].(float64)
	assert.Less(t, grr, 10.0)
}

func TestGageRRUnbalancedRejected(t *testing.T) {
	rows := gageRows(
		[3]any{"op1", "p1", 10.0}, [3]any{"op1", "p1", 10.1},
		[3]any{"op1", "p2", 20.0}, [3]any{"op1", "p2", 20.1},
		[3]any{"op2", "p1", 10.0}, [3]any{"op2", "p1", 10.1},
		[3]any{"op2", "p2", 20.0}, // one trial missing
	)
	_, err := gageRRTool{}.Analyze(table.Load(rows), nil)
	require.Error(t, err)
	assert.True(t, analysis.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "unbalanced design")
}

func TestGageRRNeedsTwoOperators(t *testing.T) {
	rows := gageRows(
		[3]any{"op1", "p1", 10.0}, [3]any{"op1", "p1", 10.1},
		[3]any{"op1", "p2", 20.0}, [3]any{"op1", "p2", 20.1},
	)
	_, err := gageRRTool{}.Analyze(table.Load(rows), nil)
	require.Error(t, err)
	assert.True(t, analysis.IsInvalidInput(err))
}

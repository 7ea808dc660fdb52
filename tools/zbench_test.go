package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/table"
)

func TestZBenchRequiresLimit(t *testing.T) {
	rows := controlChartRows(10, 11, 12)
	_, err := zBenchTool{}.Analyze(table.Load(rows), nil)
	require.Error(t, err)
	assert.True(t, analysis.IsInvalidInput(err))
}

func TestZBenchSigmaLevel(t *testing.T) {
	// Symmetric data, mean 10, USL one sigma above the mean:
	// defect rate = 1 - Φ(1) ≈ 0.1587, Z-bench ≈ 1.0.
	rows := controlChartRows(8, 9, 10, 11, 12)
	mean, sd := 10.0, 1.5811388300841898
	res := run(t, zBenchTool{}, rows, analysis.Params{"usl": mean + sd})

	assert.InDelta(t, 1.0, res.Details["z_bench_st"].(float64), 1e-3)
	assert.InDelta(t, -0.5, res.Details["z_bench_lt"].(float64), 1e-3)
	assert.InDelta(t, 158655.25, res.Details["dpmo"].(float64), 1.0)
	assert.Len(t, res.ChartData, 100)
	assert.Nil(t, res.Details["lsl_limit"])
	assert.Equal(t, mean+sd, res.Details["usl_limit"])
}

func TestZBenchPerfectSampleFiniteSigma(t *testing.T) {
	rows := controlChartRows(10, 10.1, 9.9, 10.05, 9.95)
	res := run(t, zBenchTool{}, rows, analysis.Params{"usl": 1000.0, "lsl": -1000.0})
	// Defect rate floors at 1e-9 → about 6 sigma short term.
	assert.InDelta(t, 5.997, res.Details["z_bench_st"].(float64), 0.01)
}

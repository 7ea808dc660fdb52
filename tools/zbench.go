package tools

import (
	"fmt"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/stats"
	"github.com/sigmaflow-org/sigmaflow/table"
	"gonum.org/v1/gonum/stat/distuv"
)

// ============================================================================
// Z-BENCH — sigma level, DPMO and yield from specification limits
// ============================================================================

type zBenchTool struct{}

func (zBenchTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("numeric data is required to compute Z-bench")
	}
	col, ok := t.FirstNumeric()
	if !ok {
		return nil, analysis.Invalidf("no numeric column found")
	}
	data := col.Floats()
	if len(data) < 2 {
		return nil, analysis.Invalidf("at least two numeric values are required")
	}

	usl, hasUSL := p.FloatOpt("usl")
	lsl, hasLSL := p.FloatOpt("lsl")
	shift := p.Float("shift", 1.5)
	if !hasUSL && !hasLSL {
		return nil, analysis.Invalidf("at least one specification limit (usl or lsl) is required")
	}

	mean := stats.Mean(data)
	sd := stats.StdDev(data)
	if sd == 0 {
		return nil, analysis.Computef("standard deviation is zero, sigma level is undefined")
	}

	var probBelow, probAbove float64
	if hasLSL {
		probBelow = stats.NormalCDF((lsl - mean) / sd)
	}
	if hasUSL {
		probAbove = 1 - stats.NormalCDF((usl-mean)/sd)
	}
	defectRate := probBelow + probAbove
	if defectRate == 0 {
		// A literally perfect sample still gets a finite sigma level.
		defectRate = 1e-9
	}

	zBenchST := stats.NormalQuantile(1 - defectRate)
	zBenchLT := zBenchST - shift
	dpmo := defectRate * 1_000_000
	yield := (1 - defectRate) * 100

	summary := fmt.Sprintf(
		"The process runs at a sigma level of %.2f σ. Expect %.0f defects per million opportunities (DPMO). "+
			"Yield is %.4f%%.",
		zBenchST, dpmo, yield)

	// Bell curve points across mean ± 4 sigma for the defect-area chart.
	dist := distuv.Normal{Mu: mean, Sigma: sd}
	chart := make([]analysis.Record, 0, 100)
	lo, hi := mean-4*sd, mean+4*sd
	for i := 0; i < 100; i++ {
		x := lo + (hi-lo)*float64(i)/99
		chart = append(chart, analysis.Record{"x": x, "y": dist.Prob(x)})
	}

	details := map[string]any{
		"z_bench_st": stats.Round(zBenchST, 3),
		"z_bench_lt": stats.Round(zBenchLT, 3),
		"dpmo":       stats.Round(dpmo, 2),
		"yield":      stats.Round(yield, 4),
		"mean":       stats.Round(mean, 3),
		"std_dev":    stats.Round(sd, 3),
	}
	if hasLSL {
		details["lsl_limit"] = lsl
	} else {
		details["lsl_limit"] = nil
	}
	if hasUSL {
		details["usl_limit"] = usl
	} else {
		details["usl_limit"] = nil
	}

	return analysis.NewResult("Z-Bench (Sigma Level)", summary, chart, details), nil
}

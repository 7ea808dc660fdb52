package tools

import (
	"fmt"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/stats"
	"github.com/sigmaflow-org/sigmaflow/table"
)

// ============================================================================
// CONTROL CHART — X-bar R statistical process control
// ============================================================================

// xbarRConstants are the classical SPC constants A2, D3, D4 indexed by
// subgroup size n = 2..10.
var xbarRConstants = map[int]struct{ A2, D3, D4 float64 }{
	2:  {1.880, 0, 3.267},
	3:  {1.023, 0, 2.574},
	4:  {0.729, 0, 2.282},
	5:  {0.577, 0, 2.114},
	6:  {0.483, 0, 2.004},
	7:  {0.419, 0.076, 1.924},
	8:  {0.373, 0.136, 1.864},
	9:  {0.337, 0.184, 1.816},
	10: {0.308, 0.223, 1.777},
}

type controlChartTool struct{}

func (controlChartTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("data is required for the control chart")
	}
	col, ok := t.FirstNumeric()
	if !ok {
		return nil, analysis.Invalidf("no numeric column found")
	}
	values := col.Floats()

	n := p.Int("subgroup_size", 5)
	if n < 2 || n > 10 {
		return nil, analysis.Invalidf("for X-bar R the subgroup size (n) must be between 2 and 10; for n=1 use an I-MR chart")
	}

	numSubgroups := len(values) / n
	if numSubgroups < 2 {
		return nil, analysis.Invalidf("more data is needed: with n=%d there is only enough for %d subgroup(s), minimum is 2", n, numSubgroups)
	}

	// Trailing values that do not fill a subgroup are dropped.
	means := make([]float64, numSubgroups)
	ranges := make([]float64, numSubgroups)
	for i := 0; i < numSubgroups; i++ {
		sub := values[i*n : (i+1)*n]
		means[i] = stats.Mean(sub)
		ranges[i] = stats.Max(sub) - stats.Min(sub)
	}

	xDoubleBar := stats.Mean(means)
	rBar := stats.Mean(ranges)

	c := xbarRConstants[n]
	uclR := c.D4 * rBar
	lclR := c.D3 * rBar
	uclX := xDoubleBar + c.A2*rBar
	lclX := xDoubleBar - c.A2*rBar

	var outX, outR int
	chart := make([]analysis.Record, 0, numSubgroups)
	for i := 0; i < numSubgroups; i++ {
		badX := means[i] > uclX || means[i] < lclX
		badR := ranges[i] > uclR || ranges[i] < lclR
		if badX {
			outX++
		}
		if badR {
			outR++
		}
		var violation any
		switch {
		case badX:
			violation = "X"
		case badR:
			violation = "R"
		}
		chart = append(chart, analysis.Record{
			"subgroup_id": i + 1,
			"x_bar":       stats.Round(means[i], 3),
			"r":           stats.Round(ranges[i], 3),
			"ucl_x":       stats.Round(uclX, 3),
			"lcl_x":       stats.Round(lclX, 3),
			"center_x":    stats.Round(xDoubleBar, 3),
			"ucl_r":       stats.Round(uclR, 3),
			"lcl_r":       stats.Round(lclR, 3),
			"center_r":    stats.Round(rBar, 3),
			"violation":   violation,
		})
	}

	status := "In statistical control"
	if outX > 0 || outR > 0 {
		status = "OUT OF CONTROL (special causes detected)"
	}
	summary := fmt.Sprintf(
		"X-bar R chart (n=%d). Status: %s. Grand mean: %.3f. Average range: %.3f. "+
			"Out-of-control points: %d in X, %d in R.",
		n, status, xDoubleBar, rBar, outX, outR)

	return analysis.NewResult("X-R Control Chart (SPC)", summary, chart, map[string]any{
		"constants_used": map[string]float64{"A2": c.A2, "D3": c.D3, "D4": c.D4},
		"limits": map[string]any{
			"x_bar": map[string]float64{"ucl": uclX, "lcl": lclX, "cl": xDoubleBar},
			"r":     map[string]float64{"ucl": uclR, "lcl": lclR, "cl": rBar},
		},
	}), nil
}

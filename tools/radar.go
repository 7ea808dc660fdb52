package tools

import (
	"fmt"
	"math"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/table"
)

// ============================================================================
// RADAR — multi-axis series comparison with gap analysis
// ============================================================================

type radarTool struct{}

func (radarTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("data is required for the radar chart")
	}
	if err := analysis.RequireColumns(t, "category", "value"); err != nil {
		return nil, err
	}

	catCol, _ := t.Column("category")
	valueCol, _ := t.Column("value")
	seriesCol, hasSeries := t.Column("series")

	// Pivot: category x series, missing cells fill with 0.
	pivot := map[string]map[string]float64{}
	var categories, seriesNames []string
	seenCat, seenSeries := map[string]bool{}, map[string]bool{}
	maxVal := math.Inf(-1)
	for i := 0; i < t.Len(); i++ {
		if catCol.IsNull(i) || valueCol.IsNull(i) {
			continue
		}
		cat := catCol.String(i)
		series := "Series 1"
		if hasSeries && !seriesCol.IsNull(i) {
			series = seriesCol.String(i)
		}
		if !seenCat[cat] {
			seenCat[cat] = true
			categories = append(categories, cat)
			pivot[cat] = map[string]float64{}
		}
		if !seenSeries[series] {
			seenSeries[series] = true
			seriesNames = append(seriesNames, series)
		}
		v := valueCol.Float(i)
		pivot[cat][series] += v
		if v > maxVal {
			maxVal = v
		}
	}
	if len(categories) == 0 {
		return nil, analysis.Invalidf("no usable category values found")
	}

	var gapAnalysis string
	if len(seriesNames) == 2 {
		s1, s2 := seriesNames[0], seriesNames[1]
		maxGapCat, maxGap := "", -1.0
		for _, cat := range categories {
			gap := math.Abs(pivot[cat][s1] - pivot[cat][s2])
			if gap > maxGap {
				maxGap, maxGapCat = gap, cat
			}
		}
		gapAnalysis = fmt.Sprintf(
			"Comparing %q vs %q. The widest gap is at %q with a difference of %.2f.",
			s1, s2, maxGapCat, maxGap)
	} else {
		bestCat, worstCat := categories[0], categories[0]
		bestMean, worstMean := math.Inf(-1), math.Inf(1)
		for _, cat := range categories {
			var sum float64
			for _, s := range seriesNames {
				sum += pivot[cat][s]
			}
			mean := sum / float64(len(seriesNames))
			if mean > bestMean {
				bestMean, bestCat = mean, cat
			}
			if mean < worstMean {
				worstMean, worstCat = mean, cat
			}
		}
		gapAnalysis = fmt.Sprintf("The strongest area is %q and the weakest is %q.", bestCat, worstCat)
	}

	chart := make([]analysis.Record, 0, len(categories))
	for _, cat := range categories {
		row := analysis.Record{"category": cat}
		for _, s := range seriesNames {
			row[s] = pivot[cat][s]
		}
		chart = append(chart, row)
	}

	scale := p.Float("max_scale", 0)
	if scale == 0 {
		scale = maxVal * 1.1
	}

	summary := fmt.Sprintf("Radar analysis with %d axes and %d series. %s",
		len(categories), len(seriesNames), gapAnalysis)

	return analysis.NewResult("Radar Chart", summary, chart, map[string]any{
		"series_names":        seriesNames,
		"categories":          categories,
		"suggested_max_scale": scale,
	}), nil
}

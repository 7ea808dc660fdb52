package tools

import (
	"fmt"
	"math"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/stats"
	"github.com/sigmaflow-org/sigmaflow/table"
)

// ============================================================================
// HISTOGRAM — binned frequencies with a normality check
// ============================================================================

type histogramTool struct{}

func (histogramTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("numeric data is required")
	}
	col, ok := t.FirstNumeric()
	if !ok {
		return nil, analysis.Invalidf("no numeric column found")
	}
	data := col.Floats()
	if len(data) < 5 {
		return nil, analysis.Invalidf("at least 5 data points are needed for a useful histogram")
	}

	mean := stats.Mean(data)
	median := stats.Median(data)
	sd := stats.StdDev(data)
	skewness := stats.Skewness(data)
	kurtosis := stats.Kurtosis(data)

	// Shapiro-Wilk for small samples, D'Agostino-Pearson for n >= 50.
	var pValue float64
	var testName string
	if len(data) < 50 {
		_, pValue = stats.ShapiroWilk(data)
		testName = "Shapiro-Wilk"
	} else {
		_, pValue = stats.DAgostinoPearson(data)
		testName = "D'Agostino-Pearson"
	}
	isNormal := pValue > 0.05
	distType := "not normal"
	if isNormal {
		distType = "normal (Gaussian)"
	}

	nBins := p.Int("bins", 0)
	if nBins <= 0 {
		nBins = autoBins(data)
	}
	min, max := stats.Min(data), stats.Max(data)
	width := (max - min) / float64(nBins)
	if width == 0 {
		width = 1
		nBins = 1
	}
	freq := make([]int, nBins)
	for _, v := range data {
		idx := int((v - min) / width)
		if idx >= nBins {
			idx = nBins - 1
		}
		freq[idx]++
	}

	chart := make([]analysis.Record, 0, nBins)
	for i := 0; i < nBins; i++ {
		start := min + float64(i)*width
		end := start + width
		chart = append(chart, analysis.Record{
			"bin_start": start,
			"bin_end":   end,
			"frequency": freq[i],
			"label":     fmt.Sprintf("%.2f - %.2f", start, end),
		})
	}

	skewText := ""
	if math.Abs(skewness) > 0.5 {
		direction := "left"
		if skewness > 0 {
			direction = "right"
		}
		skewText = fmt.Sprintf(" Skewed to the %s.", direction)
	}
	summary := fmt.Sprintf(
		"Distribution analysis for %q. Mean: %.2f, std dev: %.2f. %s test: p-value=%.4f. "+
			"Conclusion: the distribution is %s.%s",
		col.Name, mean, sd, testName, pValue, distType, skewText)

	return analysis.NewResult("Histogram and Normality", summary, chart, map[string]any{
		"mean":      mean,
		"median":    median,
		"std_dev":   sd,
		"skewness":  skewness,
		"kurtosis":  kurtosis,
		"p_value":   pValue,
		"is_normal": isNormal,
	}), nil
}

// autoBins picks a bin count the way numpy's "auto" rule does: the larger
// of the Sturges and Freedman-Diaconis estimates.
func autoBins(data []float64) int {
	n := len(data)
	sturges := int(math.Ceil(math.Log2(float64(n)))) + 1

	q1, _, q3 := stats.Quartiles(data)
	iqr := q3 - q1
	fd := sturges
	if iqr > 0 {
		width := 2 * iqr / math.Cbrt(float64(n))
		span := stats.Max(data) - stats.Min(data)
		if width > 0 && span > 0 {
			fd = int(math.Ceil(span / width))
		}
	}
	if fd > sturges {
		return fd
	}
	return sturges
}

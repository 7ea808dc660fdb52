package tools

import (
	"fmt"
	"math"
	"strings"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/stats"
	"github.com/sigmaflow-org/sigmaflow/table"
)

// ============================================================================
// PARETO — frequency ranking with cumulative percentages
// ============================================================================

type paretoTool struct{}

func (paretoTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("no data provided for Pareto analysis")
	}

	categoryCol := p.String("category_column", "category")
	valueCol := p.String("value_column", "")

	required := []string{categoryCol}
	if valueCol != "" {
		required = append(required, valueCol)
	}
	if err := analysis.RequireColumns(t, required...); err != nil {
		return nil, err
	}

	labels, _ := t.Column(categoryCol)
	var values *table.Column
	if valueCol != "" {
		values, _ = t.Column(valueCol)
	}

	groups := groupSum(labels, values)
	if len(groups) == 0 {
		return nil, analysis.Invalidf("could not compute frequencies for Pareto analysis")
	}

	var total float64
	for _, g := range groups {
		total += g.Value
	}
	if total == 0 {
		return nil, analysis.Invalidf("total value is zero, percentages are undefined")
	}

	chart := make([]analysis.Record, 0, len(groups))
	cumulative := 0.0
	for _, g := range groups {
		pct := g.Value / total * 100
		cumulative += pct
		chart = append(chart, analysis.Record{
			categoryCol:             g.Label,
			"count":                 g.Value,
			"percentage":            pct,
			"cumulative_percentage": cumulative,
		})
	}

	topPct := groups[0].Value / total * 100
	summary := fmt.Sprintf(
		"Identified %d categories. The leading category %q accounts for approximately %.2f%% of the total.",
		len(groups), groups[0].Label, topPct)

	return analysis.NewResult("Pareto", summary, chart, map[string]any{
		"total":            total,
		"categories_count": len(groups),
		"parameters":       map[string]any(p),
	}), nil
}

// ============================================================================
// PARETO / ABC — the 80/20 ranking with ABC classification
// ============================================================================

type paretoABCTool struct{}

func (paretoABCTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("data is required for Pareto/ABC analysis")
	}
	if err := analysis.RequireColumns(t, "label", "value"); err != nil {
		return nil, err
	}

	labels, _ := t.Column("label")
	values, _ := t.Column("value")
	groups := groupSum(labels, values)

	var total float64
	for _, g := range groups {
		total += g.Value
	}
	if total == 0 {
		return nil, analysis.Invalidf("total value is zero, percentages are undefined")
	}

	limitA := p.Float("limit_a", 80)
	limitB := p.Float("limit_b", 95)

	chart := make([]analysis.Record, 0, len(groups))
	distribution := map[string]int{}
	var classA []string
	cumulative := 0.0
	for _, g := range groups {
		pct := g.Value / total * 100
		cumulative += pct

		class := "C"
		switch {
		case cumulative <= limitA:
			class = "A"
		case cumulative <= limitB:
			class = "B"
		}
		distribution[class]++
		if class == "A" {
			classA = append(classA, g.Label)
		}

		chart = append(chart, analysis.Record{
			"label":                 g.Label,
			"value":                 g.Value,
			"percentage":            pct,
			"cumulative_percentage": cumulative,
			"class":                 class,
		})
	}

	top := classA
	if len(top) > 3 {
		top = top[:3]
	}
	summary := fmt.Sprintf(
		"Pareto/ABC analysis complete. Total analyzed: %.2f. Found %d class A (vital) items driving most of the impact: %s.",
		total, len(classA), strings.Join(top, ", "))

	return analysis.NewResult("Pareto / ABC Analysis", summary, chart, map[string]any{
		"total_value":      total,
		"abc_distribution": distribution,
		"thresholds":       map[string]any{"A": limitA, "B": limitB},
	}), nil
}

// ============================================================================
// SAMPLING — sample size calculation and random extraction
// ============================================================================

type samplingTool struct{}

func (s samplingTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	switch method := p.String("method", "calculation"); method {
	case "calculation":
		return s.calculateSize(p)
	case "extraction":
		return s.extractSample(t, p)
	default:
		return nil, analysis.Invalidf("unknown sampling method %q", method)
	}
}

func (samplingTool) calculateSize(p analysis.Params) (*analysis.Result, error) {
	confidence := p.Float("confidence_level", 0.95)
	marginError := p.Float("margin_error", 0.05)
	popSize := p.Float("population_size", 0)
	varType := p.String("variable_type", "attribute")

	if confidence <= 0 || confidence >= 1 {
		return nil, analysis.Invalidf("confidence_level must be between 0 and 1 exclusive")
	}
	if marginError <= 0 {
		return nil, analysis.Invalidf("margin_error must be positive")
	}

	z := stats.ZCritical(confidence)

	var n float64
	var formula string
	switch varType {
	case "attribute":
		prop := p.Float("proportion", 0.5)
		n = z * z * prop * (1 - prop) / (marginError * marginError)
		formula = "n = (Z² * p * (1-p)) / E²"
	case "variable":
		sigma, ok := p.FloatOpt("std_dev")
		if !ok {
			return nil, analysis.Invalidf("continuous variables require an estimated standard deviation (std_dev)")
		}
		n = (z * sigma / marginError) * (z * sigma / marginError)
		formula = "n = (Z * σ / E)²"
	default:
		return nil, analysis.Invalidf("variable_type must be %q or %q", "attribute", "variable")
	}

	finite := false
	if popSize > 0 {
		n = n / (1 + (n-1)/popSize)
		finite = true
	}
	finalN := int(math.Ceil(n))

	summary := fmt.Sprintf(
		"For a %.0f%% confidence level and a %.0f%% margin of error, the required sample size is %d units.",
		confidence*100, marginError*100, finalN)
	if finite {
		summary += fmt.Sprintf(" (Adjusted for a finite population N=%.0f.)", popSize)
	}

	return analysis.NewResult("Sample Size Calculation", summary, nil, map[string]any{
		"calculated_n": finalN,
		"z_score":      stats.Round(z, 4),
		"formula_used": formula,
		"parameters":   map[string]any(p),
	}), nil
}

func (s samplingTool) extractSample(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("data is required to extract a sample")
	}

	n, ok := p.FloatOpt("n_samples")
	sampleSize := int(n)
	if !ok || sampleSize <= 0 {
		calc, err := s.calculateSize(p)
		if err != nil {
			return nil, err
		}
		sampleSize = calc.Details["calculated_n"].(int)
	}

	totalRows := t.Len()
	var summary string
	if sampleSize > totalRows {
		sampleSize = totalRows
		summary = fmt.Sprintf("The calculated sample exceeds the data. All %d rows were returned.", totalRows)
	} else {
		summary = fmt.Sprintf("Randomly selected %d records out of %d.", sampleSize, totalRows)
	}

	indices := sampleIndices(totalRows, sampleSize, 42)
	cols := t.Columns()
	chart := make([]analysis.Record, 0, sampleSize)
	for _, idx := range indices {
		row := analysis.Record{}
		for _, name := range cols {
			col, _ := t.Column(name)
			if col.IsNull(idx) {
				row[name] = nil
				continue
			}
			switch col.Kind {
			case table.KindNumeric:
				row[name] = col.Float(idx)
			case table.KindBool:
				row[name] = col.Bool(idx)
			case table.KindNested:
				row[name] = col.Nested(idx)
			default:
				row[name] = col.String(idx)
			}
		}
		chart = append(chart, row)
	}

	return analysis.NewResult("Random Sample Extraction", summary, chart, map[string]any{
		"total_population": totalRows,
		"sample_size":      sampleSize,
	}), nil
}

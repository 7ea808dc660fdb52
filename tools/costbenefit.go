package tools

import (
	"fmt"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/table"
)

// ============================================================================
// COST-BENEFIT — ROI, net benefit and payback period
// ============================================================================

type costBenefitTool struct{}

func (costBenefitTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("cost and benefit data is required")
	}
	if err := analysis.RequireColumns(t, "amount", "type", "period"); err != nil {
		return nil, err
	}

	amountCol, _ := t.Column("amount")
	typeCol, _ := t.Column("type")
	periodCol, _ := t.Column("period")

	var totalCost, totalBenefit float64
	maxPeriod := 0
	flows := map[int]float64{}
	for i := 0; i < t.Len(); i++ {
		if amountCol.IsNull(i) || typeCol.IsNull(i) || periodCol.IsNull(i) {
			continue
		}
		amount := amountCol.Float(i)
		period := int(periodCol.Float(i))
		if period < 0 {
			return nil, analysis.Invalidf("periods must be non-negative, got %d", period)
		}
		if period > maxPeriod {
			maxPeriod = period
		}
		switch typeCol.String(i) {
		case "cost":
			totalCost += amount
			flows[period] -= amount
		case "benefit":
			totalBenefit += amount
			flows[period] += amount
		default:
			return nil, analysis.Invalidf("type must be %q or %q, got %q", "cost", "benefit", typeCol.String(i))
		}
	}

	netBenefit := totalBenefit - totalCost

	roi := 0.0
	roiText := "infinite (no costs)"
	if totalCost != 0 {
		roi = netBenefit / totalCost * 100
		roiText = fmt.Sprintf("%.2f%%", roi)
	}

	// Cumulative cash flow per period; payback is the first period at or
	// above break-even.
	paybackPeriod := -1
	cumulative := 0.0
	chart := make([]analysis.Record, 0, maxPeriod+1)
	for period := 0; period <= maxPeriod; period++ {
		cumulative += flows[period]
		if paybackPeriod < 0 && cumulative >= 0 {
			paybackPeriod = period
		}
		chart = append(chart, analysis.Record{
			"period":     period,
			"cumulative": cumulative,
			"cash_flow":  flows[period],
		})
	}

	paybackText := "the investment is not recovered within the analyzed horizon"
	if paybackPeriod >= 0 {
		paybackText = fmt.Sprintf("in period %d", paybackPeriod)
	}
	unit := p.String("period_unit", "months")
	summary := fmt.Sprintf(
		"The project has a net benefit of $%.2f. Estimated ROI is %s. Break-even (payback) is reached %s (%s).",
		netBenefit, roiText, paybackText, unit)

	details := map[string]any{
		"total_investment": totalCost,
		"total_savings":    totalBenefit,
		"net_value":        netBenefit,
		"roi_percent":      roi,
	}
	if paybackPeriod >= 0 {
		details["payback_period"] = paybackPeriod
	} else {
		details["payback_period"] = nil
	}

	return analysis.NewResult("Cost-Benefit Analysis (ROI)", summary, chart, details), nil
}

package tools

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/stats"
	"github.com/sigmaflow-org/sigmaflow/table"
)

// ============================================================================
// BALANCED SCORECARD — KPI achievement across strategic perspectives
// ============================================================================

type balancedScorecardTool struct{}

func (balancedScorecardTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("indicators (KPIs) are required for the scorecard")
	}
	if err := analysis.RequireColumns(t, "perspective", "kpi", "target", "actual"); err != nil {
		return nil, err
	}

	perspCol, _ := t.Column("perspective")
	targetCol, _ := t.Column("target")
	actualCol, _ := t.Column("actual")
	dirCol, hasDir := t.Column("higher_is_better")

	chart := make([]analysis.Record, 0, t.Len())
	byPerspective := map[string][]float64{}
	var perspOrder []string

	for i := 0; i < t.Len(); i++ {
		target := targetCol.Float(i)
		actual := actualCol.Float(i)
		higherIsBetter := true
		if hasDir && !dirCol.IsNull(i) {
			higherIsBetter = dirCol.Bool(i)
		}

		var achievement float64
		if target == 0 {
			if higherIsBetter {
				if actual >= 0 {
					achievement = 100
				}
			} else if actual == 0 {
				// a zero target on a minimize goal is met only by zero
				achievement = 100
			}
		} else if higherIsBetter {
			achievement = (actual / target) * 100
		} else {
			achievement = (1 + ((target - actual) / target)) * 100
		}
		achievement = stats.Round(achievement, 1)

		status := "Red"
		switch {
		case achievement >= 100:
			status = "Green"
		case achievement >= 90:
			status = "Yellow"
		}

		row := rowRecord(t, i)
		row["achievement"] = achievement
		row["status"] = status
		chart = append(chart, row)

		persp := perspCol.String(i)
		if _, seen := byPerspective[persp]; !seen {
			perspOrder = append(perspOrder, persp)
		}
		byPerspective[persp] = append(byPerspective[persp], achievement)
	}
	sort.Strings(perspOrder)

	perspectiveScores := map[string]any{}
	summaryParts := make([]string, 0, len(perspOrder))
	for _, persp := range perspOrder {
		avg := stats.Mean(byPerspective[persp])
		perspectiveScores[persp] = stats.Round(avg, 1)

		health := "Healthy"
		switch {
		case avg < 90:
			health = "Critical"
		case avg < 100:
			health = "Warning"
		}
		summaryParts = append(summaryParts, fmt.Sprintf("%s: %s (%.0f%%)", persp, health, avg))
	}

	summary := fmt.Sprintf("Scorecard analyzed. Overall status: %s.", strings.Join(summaryParts, ", "))

	return analysis.NewResult("Balanced Scorecard (BSC)", summary, chart, map[string]any{
		"perspective_averages": perspectiveScores,
		"total_kpis":           len(chart),
	}), nil
}

// ============================================================================
// PMI — Plus, Minus, Interesting weighted evaluation
// ============================================================================

type pmiTool struct{}

func (pmiTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("points are required for a PMI analysis")
	}
	if err := analysis.RequireColumns(t, "text", "type"); err != nil {
		return nil, err
	}

	typeCol, _ := t.Column("type")
	weightCol, hasWeight := t.Column("weight")

	buckets := map[string][]analysis.Record{"Plus": nil, "Minus": nil, "Interesting": nil}
	var scorePlus, scoreMinus float64

	for i := 0; i < t.Len(); i++ {
		kind := capitalize(typeCol.String(i))
		if _, ok := buckets[kind]; !ok {
			continue
		}
		weight := 1.0
		if hasWeight && !weightCol.IsNull(i) {
			weight = weightCol.Float(i)
		}
		row := rowRecord(t, i)
		row["type"] = kind
		row["weight"] = weight
		buckets[kind] = append(buckets[kind], row)

		switch kind {
		case "Plus":
			scorePlus += weight
		case "Minus":
			scoreMinus += weight
		}
	}

	countInteresting := len(buckets["Interesting"])
	netScore := scorePlus - scoreMinus

	decision := "Neutral (tie)"
	switch {
	case netScore > 0:
		strength := "Mild"
		if netScore > 10 {
			strength = "Strong"
		}
		decision = fmt.Sprintf("Positive (%s)", strength)
	case netScore < 0:
		strength := "Mild"
		if netScore < -10 {
			strength = "Strong"
		}
		decision = fmt.Sprintf("Negative (%s)", strength)
	}

	summary := fmt.Sprintf(
		"PMI analysis completed. Net score: %g. Positives: %g pts. Negatives: %g pts. "+
			"Found %d interesting aspects to consider. Decision trend: %s.",
		netScore, scorePlus, scoreMinus, countInteresting, decision)

	chart := []analysis.Record{
		{"category": "Plus", "items": buckets["Plus"], "total": scorePlus},
		{"category": "Minus", "items": buckets["Minus"], "total": scoreMinus},
		{"category": "Interesting", "items": buckets["Interesting"], "total": countInteresting},
	}

	return analysis.NewResult("PMI (Plus, Minus, Interesting)", summary, chart, map[string]any{
		"net_score":      netScore,
		"decision_trend": decision,
	}), nil
}

func capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

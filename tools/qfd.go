package tools

import (
	"fmt"
	"sort"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/stats"
	"github.com/sigmaflow-org/sigmaflow/table"
)

// ============================================================================
// QFD — house of quality, technical requirement prioritization
// ============================================================================
// Absolute score per technical requirement (HOW) is the dot product of
// customer weights (WHATs) with the relationship strengths. Missing
// relationships count as 0.
// ============================================================================

type qfdTool struct{}

func (qfdTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("customer requirements (WHATs) are required")
	}
	technicalReqs := p.Strings("technical_reqs")
	if len(technicalReqs) == 0 {
		return nil, analysis.Invalidf("the list of technical requirements (HOWs) must be defined")
	}
	if err := analysis.RequireColumns(t, "customer_req", "weight", "relationships"); err != nil {
		return nil, err
	}

	reqCol, _ := t.Column("customer_req")
	weightCol, _ := t.Column("weight")
	relCol, _ := t.Column("relationships")
	if relCol.Kind != table.KindNested {
		return nil, analysis.Invalidf("the relationships column must hold technical-requirement-to-strength objects")
	}

	absolute := make(map[string]float64, len(technicalReqs))
	matrix := make([]analysis.Record, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		rels, ok := relCol.Nested(i).(map[string]any)
		if !ok {
			return nil, analysis.Invalidf("requirement %q has malformed relationships", reqCol.String(i))
		}
		weight := weightCol.Float(i)

		row := analysis.Record{
			"customer_req": reqCol.String(i),
			"weight":       weight,
		}
		for _, tech := range technicalReqs {
			strength := 0.0
			if v, ok := rels[tech]; ok {
				if f, ok := toNumber(v); ok {
					strength = f
				}
			}
			absolute[tech] += weight * strength
			row[tech] = strength
		}
		matrix = append(matrix, row)
	}

	var total float64
	for _, score := range absolute {
		total += score
	}
	relative := make(map[string]float64, len(technicalReqs))
	for tech, score := range absolute {
		if total > 0 {
			relative[tech] = stats.Round(score/total*100, 1)
		}
	}

	ranked := append([]string(nil), technicalReqs...)
	sort.SliceStable(ranked, func(i, j int) bool { return absolute[ranked[i]] > absolute[ranked[j]] })
	top := ranked[0]

	summary := fmt.Sprintf(
		"House of quality analyzed. The top-priority technical characteristic is %q with an absolute weight of %.0f "+
			"(%.1f%% of the total impact). Improving it will have the largest positive effect on customer satisfaction.",
		top, absolute[top], relative[top])

	chart := make([]analysis.Record, 0, len(ranked))
	for _, tech := range ranked {
		chart = append(chart, analysis.Record{
			"technical_req":  tech,
			"absolute_score": absolute[tech],
			"relative_score": relative[tech],
		})
	}

	return analysis.NewResult("QFD (House of Quality)", summary, chart, map[string]any{
		"matrix_grid":       matrix,
		"technical_columns": technicalReqs,
	}), nil
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

package tools

import (
	"fmt"
	"strings"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/table"
)

// ============================================================================
// ISHIKAWA — cause-and-effect (fishbone) structuring
// ============================================================================

// titleCase capitalizes the first letter of each word, lowercasing the
// rest.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

type ishikawaTool struct{}

func (ishikawaTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("causes are required to build the diagram")
	}
	if err := analysis.RequireColumns(t, "category", "cause"); err != nil {
		return nil, err
	}

	catCol, _ := t.Column("category")
	causeCol, _ := t.Column("cause")
	subCol, hasSub := t.Column("sub_causes")

	// Categories are title-cased and trimmed so "machine" and "Machine "
	// land on the same bone.
	fishbone := map[string][]analysis.Record{}
	counts := map[string]int{}
	var categories []string
	totalCauses := 0
	for i := 0; i < t.Len(); i++ {
		if catCol.IsNull(i) || causeCol.IsNull(i) {
			continue
		}
		cat := titleCase(strings.TrimSpace(catCol.String(i)))
		if _, ok := fishbone[cat]; !ok {
			categories = append(categories, cat)
		}

		item := analysis.Record{"name": causeCol.String(i)}
		if hasSub && !subCol.IsNull(i) {
			if subs, ok := subCol.Nested(i).([]any); ok && len(subs) > 0 {
				children := make([]analysis.Record, 0, len(subs))
				for _, sub := range subs {
					children = append(children, analysis.Record{"name": fmt.Sprint(sub)})
				}
				item["children"] = children
			}
		}
		fishbone[cat] = append(fishbone[cat], item)
		counts[cat]++
		totalCauses++
	}
	if totalCauses == 0 {
		return nil, analysis.Invalidf("no valid cause rows found")
	}

	dominantCat, dominantCount := categories[0], 0
	for _, cat := range categories {
		if counts[cat] > dominantCount {
			dominantCat, dominantCount = cat, counts[cat]
		}
	}
	balance := "The analysis covers multiple categories in a balanced way."
	if float64(dominantCount) > float64(totalCauses)*0.5 {
		balance = fmt.Sprintf("Attention: the analysis is skewed toward %q (%d causes).", dominantCat, dominantCount)
	}

	summary := fmt.Sprintf(
		"Diagram generated with %d potential causes across %d categories. %s",
		totalCauses, len(categories), balance)

	structure := analysis.Record{}
	for cat, causes := range fishbone {
		structure[cat] = causes
	}

	return analysis.NewResult("Cause-and-Effect Diagram (Ishikawa)", summary, []analysis.Record{structure}, map[string]any{
		"categories_detected": categories,
		"cause_distribution":  counts,
	}), nil
}

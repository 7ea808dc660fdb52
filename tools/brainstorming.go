package tools

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/table"
	"github.com/sigmaflow-org/sigmaflow/textmine"
)

// ============================================================================
// BRAINSTORMING — idea consolidation, vote ranking, word cloud
// ============================================================================

type brainstormingTool struct{}

func (brainstormingTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("the idea list is empty")
	}
	if err := analysis.RequireColumns(t, "text"); err != nil {
		return nil, err
	}

	textCol, _ := t.Column("text")
	votesCol, hasVotes := t.Column("votes")
	categoryCol, hasCategory := t.Column("category")

	type idea struct {
		text     string
		votes    float64
		category string
	}
	byClean := make(map[string]*idea)
	var order []string
	for i := 0; i < t.Len(); i++ {
		if textCol.IsNull(i) {
			continue
		}
		raw := textCol.String(i)
		clean := strings.ToLower(strings.TrimSpace(raw))

		votes := 1.0
		if hasVotes && !votesCol.IsNull(i) {
			votes = votesCol.Float(i)
		}
		category := "General"
		if hasCategory && !categoryCol.IsNull(i) {
			category = categoryCol.String(i)
		}

		// Duplicate ideas merge: votes add up, first spelling and category
		// win.
		if existing, ok := byClean[clean]; ok {
			existing.votes += votes
			continue
		}
		byClean[clean] = &idea{text: raw, votes: votes, category: category}
		order = append(order, clean)
	}
	if len(order) == 0 {
		return nil, analysis.Invalidf("no usable idea text found")
	}

	ideas := make([]*idea, 0, len(order))
	for _, key := range order {
		ideas = append(ideas, byClean[key])
	}
	sort.SliceStable(ideas, func(i, j int) bool { return ideas[i].votes > ideas[j].votes })

	var totalVotes float64
	texts := make([]string, 0, len(ideas))
	chart := make([]analysis.Record, 0, len(ideas))
	for _, it := range ideas {
		totalVotes += it.votes
		texts = append(texts, it.text)
		chart = append(chart, analysis.Record{
			"text":     it.text,
			"votes":    it.votes,
			"category": it.category,
		})
	}

	terms := textmine.TopTerms(texts, 20, 3)
	wordCloud := make([]analysis.Record, len(terms))
	for i, tc := range terms {
		wordCloud[i] = analysis.Record{"text": tc.Term, "value": tc.Count}
	}

	summary := fmt.Sprintf(
		"Collected %.0f votes across %d unique ideas. The idea with the most consensus is %q with %.0f votes.",
		totalVotes, len(ideas), ideas[0].text, ideas[0].votes)

	return analysis.NewResult("Brainstorming", summary, chart, map[string]any{
		"word_cloud":          wordCloud,
		"total_participation": totalVotes,
	}), nil
}

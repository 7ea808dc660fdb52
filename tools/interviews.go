package tools

import (
	"fmt"
	"strings"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/table"
	"github.com/sigmaflow-org/sigmaflow/textmine"
)

// ============================================================================
// INTERVIEW ANALYSIS — voice-of-customer transcript mining
// ============================================================================

type interviewsTool struct{}

func (interviewsTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("interview records are required")
	}
	if err := analysis.RequireColumns(t, "interviewee", "transcript"); err != nil {
		return nil, err
	}

	topN := p.Int("top_n_words", 10)
	minLen := p.Int("min_word_length", 4)

	intervieweeCol, _ := t.Column("interviewee")
	transcriptCol, _ := t.Column("transcript")
	dateCol, hasDate := t.Column("date")

	var transcripts []string
	totalWords := 0
	participation := make([]analysis.Record, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		transcript := transcriptCol.String(i)
		transcripts = append(transcripts, transcript)
		totalWords += len(strings.Fields(transcript))

		row := analysis.Record{
			"interviewee": intervieweeCol.String(i),
			"word_count":  len(strings.Fields(transcript)),
		}
		if hasDate {
			row["date"] = dateCol.String(i)
		}
		participation = append(participation, row)
	}

	terms := textmine.TopTerms(transcripts, topN, minLen)

	var relevantCount int
	for _, text := range transcripts {
		relevantCount += len(textmine.Tokenize(text, minLen))
	}

	topWord, topCount := "N/A", 0
	if len(terms) > 0 {
		topWord, topCount = terms[0].Term, terms[0].Count
	}
	summary := fmt.Sprintf(
		"Analysis of %d interviews complete. The most recurrent theme appears to be %q (mentioned %d times). "+
			"A total of %d relevant words were analyzed.",
		t.Len(), topWord, topCount, relevantCount)

	chart := make([]analysis.Record, len(terms))
	for i, tc := range terms {
		chart[i] = analysis.Record{"word": tc.Term, "count": tc.Count}
	}

	return analysis.NewResult("Interview Analysis (VOC)", summary, chart, map[string]any{
		"participation_stats":   participation,
		"total_words_processed": totalWords,
	}), nil
}

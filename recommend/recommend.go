// Package recommend ranks analysis tools against a free-text problem
// description, constrained to the tools that belong to the requested
// DMAIC phase.
package recommend

import (
	"sort"
	"strings"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/textmine"
	"github.com/sigmaflow-org/sigmaflow/tools"
)

// Recommendation is one ranked tool suggestion.
type Recommendation struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// Recommender scores the tool catalog's descriptions against user queries.
type Recommender struct {
	descriptors []*tools.Descriptor
	vectorizer  *textmine.Vectorizer
	vectors     [][]float64
}

// phaseCodes maps accepted phase spellings to their single-letter code.
var phaseCodes = map[string]string{
	"d": "D", "define": "D", "definir": "D",
	"m": "M", "measure": "M", "medir": "M",
	"a": "A", "analyze": "A", "analizar": "A",
	"i": "I", "improve": "I", "mejorar": "I",
	"c": "C", "control": "C", "controlar": "C",
}

// topN is the number of recommendations returned per query.
const topN = 5

// New builds a recommender over the registry's tool descriptions.
func New(registry *tools.Registry) *Recommender {
	descriptors := registry.All()
	corpus := make([]string, len(descriptors))
	for i, d := range descriptors {
		corpus[i] = d.Description
	}
	vec := textmine.NewVectorizer(corpus, 2)
	vectors := make([][]float64, len(corpus))
	for i, doc := range corpus {
		vectors[i] = vec.Vector(doc)
	}
	return &Recommender{descriptors: descriptors, vectorizer: vec, vectors: vectors}
}

// Recommend returns the top tools for the phase and query, ranked by
// cosine similarity of the query against each tool's description.
func (r *Recommender) Recommend(phase, query string) ([]Recommendation, error) {
	code, ok := phaseCodes[strings.ToLower(strings.TrimSpace(phase))]
	if !ok {
		return nil, analysis.Invalidf("unknown DMAIC phase %q", phase)
	}
	if strings.TrimSpace(query) == "" {
		return nil, analysis.Invalidf("a problem description is required")
	}

	queryVec := r.vectorizer.Vector(query)

	recs := make([]Recommendation, 0, len(r.descriptors))
	for i, d := range r.descriptors {
		if !strings.Contains(d.Phases, code) {
			continue
		}
		recs = append(recs, Recommendation{
			ID:     d.ID,
			Name:   d.Name,
			Score:  textmine.Cosine(queryVec, r.vectors[i]),
			Reason: d.Description,
		})
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })

	if len(recs) > topN {
		recs = recs[:topN]
	}
	return recs, nil
}

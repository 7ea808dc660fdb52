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
// AFFINITY DIAGRAM — TF-IDF + k-means clustering of free-text ideas
// ============================================================================

type affinityTool struct{}

func (affinityTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() || !t.Has("text") {
		return nil, analysis.Invalidf("a list of ideas is required (column %q)", "text")
	}

	textCol, _ := t.Column("text")
	var texts []string
	for i := 0; i < textCol.Len(); i++ {
		if !textCol.IsNull(i) {
			texts = append(texts, textCol.String(i))
		}
	}
	if len(texts) < 3 {
		return nil, analysis.Invalidf("at least 3 ideas are needed to build affinities")
	}

	numClusters := p.Int("num_clusters", 3)
	if len(texts) < numClusters {
		numClusters = len(texts) / 2
		if numClusters < 2 {
			numClusters = 2
		}
	}

	vectorizer := textmine.NewVectorizer(texts, 2)
	if len(vectorizer.Terms()) == 0 {
		return nil, analysis.Invalidf("the provided text is not sufficient to analyze")
	}
	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vectors[i] = vectorizer.Vector(text)
	}

	clusters := textmine.KMeans(vectors, numClusters, 42)

	// Name each cluster after the two heaviest centroid terms.
	terms := vectorizer.Terms()
	dim := len(terms)
	names := make([]string, numClusters)
	for c := 0; c < numClusters; c++ {
		centroid := make([]float64, dim)
		count := 0
		for i, assigned := range clusters {
			if assigned != c {
				continue
			}
			count++
			for j := 0; j < dim; j++ {
				centroid[j] += vectors[i][j]
			}
		}
		if count == 0 {
			names[c] = fmt.Sprintf("Group %d", c+1)
			continue
		}
		idx := make([]int, dim)
		for j := range idx {
			idx[j] = j
		}
		sort.Slice(idx, func(a, b int) bool {
			if centroid[idx[a]] != centroid[idx[b]] {
				return centroid[idx[a]] > centroid[idx[b]]
			}
			return idx[a] < idx[b]
		})
		var top []string
		for _, j := range idx {
			if len(top) == 2 || centroid[j] == 0 {
				break
			}
			top = append(top, strings.ToUpper(terms[j]))
		}
		if len(top) == 0 {
			names[c] = fmt.Sprintf("Group %d", c+1)
		} else {
			names[c] = "Group: " + strings.Join(top, " & ")
		}
	}

	groups := make(map[string][]string)
	var groupOrder []string
	for i, c := range clusters {
		name := names[c]
		if _, ok := groups[name]; !ok {
			groupOrder = append(groupOrder, name)
		}
		groups[name] = append(groups[name], texts[i])
	}

	largest := groupOrder[0]
	chart := make([]analysis.Record, 0, len(groupOrder))
	for _, name := range groupOrder {
		items := groups[name]
		if len(items) > len(groups[largest]) {
			largest = name
		}
		chart = append(chart, analysis.Record{
			"category": name,
			"items":    items,
			"count":    len(items),
		})
	}

	summary := fmt.Sprintf(
		"Organized %d ideas into %d affinity groups. The largest group is %q.",
		len(texts), numClusters, largest)

	return analysis.NewResult("Affinity Diagram (Clustering)", summary, chart, map[string]any{
		"algorithm":         "K-Means Clustering + TF-IDF",
		"num_clusters_used": numClusters,
	}), nil
}

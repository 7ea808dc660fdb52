package textmine

import (
	"math"
	"math/rand"
	"sort"
	"strings"
	"unicode"
)

// ============================================================================
// TEXT MINING — tokenizing, term frequencies, TF-IDF, clustering
// ============================================================================
// Shared by the qualitative tools (brainstorming, interviews, affinity
// grouping) and the tool recommender. Everything here is deterministic:
// clustering takes an explicit seed and ties break on lexical order.
// ============================================================================

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "had": true,
	"her": true, "was": true, "one": true, "our": true, "out": true,
	"has": true, "have": true, "this": true, "that": true, "with": true,
	"from": true, "they": true, "will": true, "would": true, "there": true,
	"their": true, "what": true, "about": true, "which": true, "when": true,
	"were": true, "been": true, "more": true, "very": true, "into": true,
	"than": true, "them": true, "then": true, "these": true, "some": true,
	"could": true, "other": true, "also": true, "its": true, "our-": true,
	"should": true, "because": true, "each": true, "does": true, "where": true,
}

// Tokenize lowercases s, splits on non-letter/digit runs and drops tokens
// shorter than minLen or in the stopword list.
func Tokenize(s string, minLen int) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, tok := range fields {
		if len(tok) >= minLen && !stopwords[tok] {
			out = append(out, tok)
		}
	}
	return out
}

// TermCount is a term with its occurrence count.
type TermCount struct {
	Term  string
	Count int
}

// TopTerms tokenizes every text and returns the topN most frequent terms,
// ties broken alphabetically.
func TopTerms(texts []string, topN, minLen int) []TermCount {
	freq := make(map[string]int)
	for _, text := range texts {
		for _, tok := range Tokenize(text, minLen) {
			freq[tok]++
		}
	}
	terms := make([]TermCount, 0, len(freq))
	for term, count := range freq {
		terms = append(terms, TermCount{Term: term, Count: count})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Term < terms[j].Term
	})
	if len(terms) > topN {
		terms = terms[:topN]
	}
	return terms
}

// ============================================================================
// TF-IDF
// ============================================================================

// Vectorizer maps documents to TF-IDF vectors over a fitted vocabulary.
type Vectorizer struct {
	vocab map[string]int
	terms []string
	idf   []float64
	min   int
}

// NewVectorizer fits a TF-IDF model on the corpus. minLen is the minimum
// token length kept.
func NewVectorizer(corpus []string, minLen int) *Vectorizer {
	v := &Vectorizer{vocab: make(map[string]int), min: minLen}

	docFreq := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]bool)
		for _, tok := range Tokenize(doc, minLen) {
			if !seen[tok] {
				seen[tok] = true
				docFreq[tok]++
			}
		}
	}
	for term := range docFreq {
		v.terms = append(v.terms, term)
	}
	sort.Strings(v.terms)

	n := float64(len(corpus))
	v.idf = make([]float64, len(v.terms))
	for i, term := range v.terms {
		v.vocab[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
	return v
}

// Vector returns the L2-normalized TF-IDF vector for doc.
func (v *Vectorizer) Vector(doc string) []float64 {
	vec := make([]float64, len(v.terms))
	for _, tok := range Tokenize(doc, v.min) {
		if i, ok := v.vocab[tok]; ok {
			vec[i]++
		}
	}
	var norm float64
	for i := range vec {
		vec[i] *= v.idf[i]
		norm += vec[i] * vec[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// Terms returns the fitted vocabulary in sorted order.
func (v *Vectorizer) Terms() []string { return v.terms }

// Cosine returns the cosine similarity of two equal-length vectors.
func Cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// ============================================================================
// K-MEANS
// ============================================================================

// KMeans clusters vectors into k groups using Lloyd's algorithm with
// seeded random initialization. Returns the cluster index per vector.
func KMeans(vectors [][]float64, k int, seed int64) []int {
	n := len(vectors)
	if n == 0 || k <= 0 {
		return nil
	}
	if k > n {
		k = n
	}
	dim := len(vectors[0])
	rng := rand.New(rand.NewSource(seed))

	// Initialize centroids on distinct random points.
	perm := rng.Perm(n)
	centroids := make([][]float64, k)
	for i := 0; i < k; i++ {
		centroids[i] = append([]float64(nil), vectors[perm[i]]...)
	}

	assign := make([]int, n)
	for iter := 0; iter < 100; iter++ {
		changed := false
		for i, vec := range vectors {
			best, bestDist := 0, math.Inf(1)
			for c, cent := range centroids {
				var d float64
				for j := 0; j < dim; j++ {
					diff := vec[j] - cent[j]
					d += diff * diff
				}
				if d < bestDist {
					best, bestDist = c, d
				}
			}
			if assign[i] != best {
				assign[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		counts := make([]int, k)
		next := make([][]float64, k)
		for c := range next {
			next[c] = make([]float64, dim)
		}
		for i, vec := range vectors {
			c := assign[i]
			counts[c]++
			for j := 0; j < dim; j++ {
				next[c][j] += vec[j]
			}
		}
		for c := range next {
			if counts[c] == 0 {
				// Re-seed an empty cluster on a random point.
				next[c] = append([]float64(nil), vectors[rng.Intn(n)]...)
				continue
			}
			for j := 0; j < dim; j++ {
				next[c][j] /= float64(counts[c])
			}
		}
		centroids = next
	}
	return assign
}

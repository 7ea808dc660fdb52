package textmine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		minLen int
		want   []string
	}{
		{"lowercases and splits", "Slow Login, slow checkout!", 3, []string{"slow", "login", "slow", "checkout"}},
		{"drops stopwords", "the process and the delay", 3, []string{"process", "delay"}},
		{"drops short tokens", "a db is up", 3, nil},
		{"keeps digits", "error 404 found", 3, []string{"error", "404", "found"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in, tt.minLen)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTopTermsTiesAlphabetical(t *testing.T) {
	texts := []string{"delay queue", "delay billing", "queue billing", "delay"}
	got := TopTerms(texts, 3, 3)
	require.Len(t, got, 3)
	assert.Equal(t, TermCount{Term: "delay", Count: 3}, got[0])
	// billing and queue tie at 2; alphabetical order
	assert.Equal(t, "billing", got[1].Term)
	assert.Equal(t, "queue", got[2].Term)
}

func TestVectorizerNormalization(t *testing.T) {
	corpus := []string{"slow login page", "payment error page", "slow payment flow"}
	vec := NewVectorizer(corpus, 3)

	v := vec.Vector("slow login")
	var norm float64
	for _, x := range v {
		norm += x * x
	}
	assert.InDelta(t, 1.0, norm, 1e-9)

	// Unknown-only document is the zero vector.
	zero := vec.Vector("zzz unseen words")
	for _, x := range zero {
		assert.Zero(t, x)
	}
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine([]float64{1, 2}, []float64{2, 4}), 1e-9)
	assert.InDelta(t, 0.0, Cosine([]float64{1, 0}, []float64{0, 1}), 1e-9)
	assert.Zero(t, Cosine([]float64{0, 0}, []float64{1, 1}))
}

func TestKMeansSeparatesObviousClusters(t *testing.T) {
	vectors := [][]float64{
		{0.0, 0.1}, {0.1, 0.0}, {0.05, 0.05},
		{5.0, 5.1}, {5.1, 5.0}, {4.95, 5.05},
	}
	assign := KMeans(vectors, 2, 42)
	require.Len(t, assign, 6)
	assert.Equal(t, assign[0], assign[1])
	assert.Equal(t, assign[0], assign[2])
	assert.Equal(t, assign[3], assign[4])
	assert.Equal(t, assign[3], assign[5])
	assert.NotEqual(t, assign[0], assign[3])
}

func TestKMeansDeterministic(t *testing.T) {
	vectors := [][]float64{{1, 0}, {0, 1}, {1, 1}, {0, 0}}
	a := KMeans(vectors, 2, 42)
	b := KMeans(vectors, 2, 42)
	assert.Equal(t, a, b)
}

func TestKMeansClampsK(t *testing.T) {
	assign := KMeans([][]float64{{1}, {2}}, 5, 1)
	assert.Len(t, assign, 2)
	assert.Nil(t, KMeans(nil, 2, 1))
}

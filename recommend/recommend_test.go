package recommend

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/tools"
)

func TestRecommendFiltersByPhase(t *testing.T) {
	r := New(tools.Default())
	recs, err := r.Recommend("Control", "monitor process stability over time")
	require.NoError(t, err)
	require.NotEmpty(t, recs)
	assert.LessOrEqual(t, len(recs), 5)

	for _, rec := range recs {
		d, err := tools.Default().Resolve(rec.ID)
		require.NoError(t, err)
		assert.Contains(t, d.Phases, "C", "%s is not a Control-phase tool", rec.ID)
	}
}

func TestRecommendRankedByRelevance(t *testing.T) {
	r := New(tools.Default())
	recs, err := r.Recommend("Analyze", "fishbone cause and effect categories")
	require.NoError(t, err)
	require.NotEmpty(t, recs)

	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].Score, recs[i].Score)
	}
	assert.Equal(t, "ishikawa", recs[0].ID)
}

func TestRecommendPhaseSpellings(t *testing.T) {
	r := New(tools.Default())
	for _, phase := range []string{"D", "Define", "define", "Definir"} {
		recs, err := r.Recommend(phase, "project schedule and milestones")
		require.NoError(t, err, phase)
		assert.NotEmpty(t, recs, phase)
	}
}

func TestRecommendRejectsBadInput(t *testing.T) {
	r := New(tools.Default())

	_, err := r.Recommend("Discover", "anything")
	require.Error(t, err)
	assert.True(t, analysis.IsInvalidInput(err))
	assert.True(t, strings.Contains(err.Error(), "phase"))

	_, err = r.Recommend("Define", "   ")
	require.Error(t, err)
	assert.True(t, analysis.IsInvalidInput(err))
}

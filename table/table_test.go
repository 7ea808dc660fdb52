package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// LOADING AND INFERENCE TESTS
// ============================================================================

func TestKindInference(t *testing.T) {
	tests := []struct {
		name string
		rows []map[string]any
		want Kind
	}{
		{"floats", []map[string]any{{"v": 1.5}, {"v": 2.0}}, KindNumeric},
		{"ints", []map[string]any{{"v": 1}, {"v": 2}}, KindNumeric},
		{"numeric strings", []map[string]any{{"v": "3.5"}, {"v": "4"}}, KindNumeric},
		{"mixed text", []map[string]any{{"v": 1.0}, {"v": "abc"}}, KindText},
		{"bools", []map[string]any{{"v": true}, {"v": false}}, KindBool},
		{"iso dates", []map[string]any{{"v": "2026-01-15"}, {"v": "2026-02-01"}}, KindDate},
		{"datetime", []map[string]any{{"v": "2026-01-15 08:30:00"}}, KindDate},
		{"maps", []map[string]any{{"v": map[string]any{"a": 1.0}}}, KindNested},
		{"slices", []map[string]any{{"v": []any{"x", "y"}}}, KindNested},
		{"all null", []map[string]any{{"v": nil}, {"v": nil}}, KindNull},
		{"plain text", []map[string]any{{"v": "scratch"}}, KindText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := Load(tt.rows)
			col, ok := tbl.Column("v")
			require.True(t, ok)
			assert.Equal(t, tt.want, col.Kind)
		})
	}
}

func TestSparseKeysAreNull(t *testing.T) {
	tbl := Load([]map[string]any{
		{"a": 1.0, "b": "x"},
		{"a": 2.0},
		{"b": "y"},
	})
	require.Equal(t, 3, tbl.Len())

	a, _ := tbl.Column("a")
	require.Equal(t, KindNumeric, a.Kind)
	assert.False(t, a.IsNull(0))
	assert.True(t, a.IsNull(2))
	assert.Equal(t, []float64{1, 2}, a.Floats())

	b, _ := tbl.Column("b")
	assert.True(t, b.IsNull(1))
	assert.Equal(t, []string{"x", "", "y"}, b.Strings())
}

func TestColumnOrderFirstAppearance(t *testing.T) {
	tbl := Load([]map[string]any{
		{"zeta": 1.0, "alpha": 2.0},
		{"mid": 3.0},
	})
	// Keys within a row are sorted; later rows append new keys after.
	assert.Equal(t, []string{"alpha", "zeta", "mid"}, tbl.Columns())
}

func TestColumnHeuristics(t *testing.T) {
	tbl := Load([]map[string]any{
		{"group": "a", "x": 1.0, "y": 2.0, "when": "2026-01-01"},
	})

	first, ok := tbl.FirstNumeric()
	require.True(t, ok)
	assert.Equal(t, "x", first.Name)

	last, ok := tbl.LastNumeric()
	require.True(t, ok)
	assert.Equal(t, "y", last.Name)

	text, ok := tbl.FirstText()
	require.True(t, ok)
	assert.Equal(t, "group", text.Name)

	label, ok := tbl.FirstLabel()
	require.True(t, ok)
	assert.Equal(t, "group", label.Name)
}

func TestMissing(t *testing.T) {
	tbl := Load([]map[string]any{{"a": 1.0}})
	assert.Empty(t, tbl.Missing("a"))
	assert.Equal(t, []string{"b", "c"}, tbl.Missing("a", "b", "c"))
}

func TestStringRendering(t *testing.T) {
	tbl := Load([]map[string]any{
		{"n": 3.0, "f": 2.5, "b": true, "d": "2026-03-04"},
	})
	n, _ := tbl.Column("n")
	assert.Equal(t, "3", n.String(0))
	f, _ := tbl.Column("f")
	assert.Equal(t, "2.5", f.String(0))
	b, _ := tbl.Column("b")
	assert.Equal(t, "true", b.String(0))
	d, _ := tbl.Column("d")
	assert.Equal(t, "2026-03-04", d.String(0))
}

func TestEmptyLoad(t *testing.T) {
	tbl := Load(nil)
	assert.True(t, tbl.IsEmpty())
	assert.Empty(t, tbl.Columns())
}

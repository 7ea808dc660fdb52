package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessMapValidFlow(t *testing.T) {
	rows := []map[string]any{
		{"id": "1", "label": "Start", "type": "start", "next_ids": []any{"2"}},
		{"id": "2", "label": "Check", "type": "decision", "next_ids": []any{"3", "4"}},
		{"id": "3", "label": "Approve", "type": "end"},
		{"id": "4", "label": "Reject", "type": "end"},
	}
	res := run(t, processMapTool{}, rows, nil)

	assert.Empty(t, res.Details["validation_warnings"].([]string))
	stats := res.Details["process_stats"].(map[string]any)
	assert.Equal(t, 4, stats["total_steps"])
	assert.Equal(t, 1, stats["decisions"])
}

func TestProcessMapDecisionWithOneExit(t *testing.T) {
	rows := []map[string]any{
		{"id": "1", "label": "Start", "type": "start", "next_ids": []any{"2"}},
		{"id": "2", "label": "Gate", "type": "decision", "next_ids": []any{"3"}},
		{"id": "3", "label": "Done", "type": "end"},
	}
	res := run(t, processMapTool{}, rows, nil)

	warnings := res.Details["validation_warnings"].([]string)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Gate")
	assert.Contains(t, warnings[0], "at least 2 outgoing paths")
}

func TestProcessMapBrokenReferences(t *testing.T) {
	rows := []map[string]any{
		{"id": "1", "label": "Start", "type": "start", "next_ids": []any{"99"}},
		{"id": "2", "label": "Orphan", "type": "task", "next_ids": []any{"1"}},
	}
	res := run(t, processMapTool{}, rows, nil)

	warnings := res.Details["validation_warnings"].([]string)
	// Nonexistent target 99, plus Orphan is unreachable. Start gains an
	// incoming edge from Orphan so only those two fire.
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "nonexistent ID")
	assert.Contains(t, warnings[1], "Orphan")
}

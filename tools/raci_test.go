package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaciBalancedMatrix(t *testing.T) {
	rows := []map[string]any{
		{"task": "Deploy", "assignments": map[string]any{"Lead": "A", "Dev": "R", "QA": "C"}},
		{"task": "Test", "assignments": map[string]any{"Lead": "A", "QA": "R", "Dev": "I"}},
	}
	res := run(t, raciTool{}, rows, nil)

	assert.Empty(t, res.Details["warnings"].([]string))
	assert.Equal(t, []string{"Dev", "Lead", "QA"}, res.Details["roles_detected"])
	require.Len(t, res.ChartData, 2)
	assert.Equal(t, "A", res.ChartData[0]["Lead"])
}

func TestRaciMultipleAccountableWarning(t *testing.T) {
	rows := []map[string]any{
		{"task": "Deploy", "assignments": map[string]any{"Lead": "A", "Dev": "A", "QA": "R"}},
	}
	res := run(t, raciTool{}, rows, nil)

	warnings := res.Details["warnings"].([]string)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Deploy")
	assert.Contains(t, warnings[0], "multiple 'A'")
}

func TestRaciMissingResponsibleWarning(t *testing.T) {
	rows := []map[string]any{
		{"task": "Review", "assignments": map[string]any{"Lead": "A", "Dev": "C"}},
	}
	res := run(t, raciTool{}, rows, nil)

	// Two warnings: the task lacks an R, and the Dev role ends up with
	// nothing but C across the matrix.
	warnings := res.Details["warnings"].([]string)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "Review")
	assert.Contains(t, warnings[0], "missing 'R'")
	assert.Contains(t, warnings[1], "Dev")
}

func TestRaciBlanksUnknownCodes(t *testing.T) {
	rows := []map[string]any{
		{"task": "Plan", "assignments": map[string]any{"Lead": "A", "Dev": "R", "QA": "X"}},
	}
	res := run(t, raciTool{}, rows, nil)
	assert.Equal(t, "", res.ChartData[0]["QA"])
}

func TestControlPlanMissingReaction(t *testing.T) {
	rows := []map[string]any{
		{"process_step": "Weld", "characteristic": "temp", "control_method": "sensor check", "reaction_plan": "stop line"},
		{"process_step": "Paint", "characteristic": "thickness", "control_method": "visual check", "reaction_plan": nil},
	}
	res := run(t, controlPlanTool{}, rows, nil)

	warnings := res.Details["warnings"].([]string)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Paint")
	assert.Equal(t, 50.0, res.Details["preventive_ratio"])
	assert.Contains(t, res.Summary, "1 preventive and 1 detective")
}

package tools

import (
	"fmt"
	"strings"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/table"
)

// ============================================================================
// PROCESS MAP — flow graph integrity validation
// ============================================================================

type processMapTool struct{}

func (processMapTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("process steps are required to generate the map")
	}
	if err := analysis.RequireColumns(t, "id", "label", "type"); err != nil {
		return nil, err
	}

	idCol, _ := t.Column("id")
	labelCol, _ := t.Column("label")
	typeCol, _ := t.Column("type")
	nextCol, hasNext := t.Column("next_ids")
	roleCol, hasRole := t.Column("role")

	type step struct {
		id, label, kind string
		nextIDs         []string
		row             analysis.Record
	}
	steps := make([]*step, 0, t.Len())
	byID := map[string]*step{}
	incoming := map[string]int{}
	var roles []string
	rolesSeen := map[string]bool{}
	for i := 0; i < t.Len(); i++ {
		s := &step{
			id:    idCol.String(i),
			label: labelCol.String(i),
			kind:  typeCol.String(i),
			row:   rowRecord(t, i),
		}
		if hasNext && !nextCol.IsNull(i) {
			if next, ok := nextCol.Nested(i).([]any); ok {
				for _, target := range next {
					s.nextIDs = append(s.nextIDs, fmt.Sprint(target))
				}
			}
		}
		if hasRole && !roleCol.IsNull(i) {
			role := roleCol.String(i)
			if !rolesSeen[role] {
				rolesSeen[role] = true
				roles = append(roles, role)
			}
		}
		steps = append(steps, s)
		byID[s.id] = s
		incoming[s.id] = 0
	}

	var warnings []string
	decisions := 0
	for _, s := range steps {
		if s.kind == "decision" {
			decisions++
		}

		// Outgoing-edge checks.
		if s.kind == "decision" && len(s.nextIDs) < 2 {
			warnings = append(warnings, fmt.Sprintf("The decision %q should have at least 2 outgoing paths.", s.label))
		} else if s.kind != "end" && len(s.nextIDs) == 0 {
			warnings = append(warnings, fmt.Sprintf("The step %q is a dead end (and is not an end node).", s.label))
		}

		for _, target := range s.nextIDs {
			if _, ok := byID[target]; !ok {
				warnings = append(warnings, fmt.Sprintf("The step %q points to a nonexistent ID: %q.", s.label, target))
			} else {
				incoming[target]++
			}
		}
	}

	// Unreachable steps: no incoming edges and not a start node.
	for _, s := range steps {
		if incoming[s.id] == 0 && s.kind != "start" {
			warnings = append(warnings, fmt.Sprintf("The step %q is unreachable (nothing connects to it).", s.label))
		}
	}

	status := "Flow validated successfully."
	if len(warnings) > 0 {
		status = "Logical problems were detected."
	}
	preview := warnings
	if len(preview) > 3 {
		preview = preview[:3]
	}
	summary := fmt.Sprintf(
		"Process map analyzed. It has %d steps and %d decision points. %s %s",
		len(steps), decisions, status, strings.Join(preview, " "))

	chart := make([]analysis.Record, len(steps))
	for i, s := range steps {
		chart[i] = s.row
	}

	if warnings == nil {
		warnings = []string{}
	}
	if roles == nil {
		roles = []string{}
	}
	return analysis.NewResult("Process Map", summary, chart, map[string]any{
		"validation_warnings": warnings,
		"process_stats": map[string]any{
			"total_steps":    len(steps),
			"decisions":      decisions,
			"roles_involved": roles,
		},
	}), nil
}

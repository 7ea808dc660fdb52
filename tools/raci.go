package tools

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/stats"
	"github.com/sigmaflow-org/sigmaflow/table"
)

// ============================================================================
// RACI MATRIX — responsibility assignment validation
// ============================================================================
// Golden rules: exactly one accountable (A) and at least one responsible
// (R) per task, and no role left with nothing but C/I across the matrix.
// ============================================================================

type raciTool struct{}

func (raciTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("a list of tasks and assignments is required")
	}
	if err := analysis.RequireColumns(t, "task", "assignments"); err != nil {
		return nil, err
	}

	taskCol, _ := t.Column("task")
	assignCol, _ := t.Column("assignments")
	if assignCol.Kind != table.KindNested {
		return nil, analysis.Invalidf("the assignments column must hold role-to-code objects")
	}

	validCodes := map[string]bool{"R": true, "A": true, "C": true, "I": true, "": true}

	type taskRow struct {
		task  string
		codes map[string]string
	}
	rows := make([]taskRow, 0, t.Len())
	rolesSeen := map[string]bool{}
	var roles []string
	for i := 0; i < t.Len(); i++ {
		assignments, ok := assignCol.Nested(i).(map[string]any)
		if !ok {
			return nil, analysis.Invalidf("task %q has malformed assignments", taskCol.String(i))
		}
		codes := map[string]string{}
		var roleNames []string
		for role := range assignments {
			roleNames = append(roleNames, role)
		}
		sort.Strings(roleNames)
		for _, role := range roleNames {
			code := strings.ToUpper(strings.TrimSpace(fmt.Sprint(assignments[role])))
			// Unknown codes are blanked rather than rejected.
			if !validCodes[code] {
				code = ""
			}
			codes[role] = code
			if !rolesSeen[role] {
				rolesSeen[role] = true
				roles = append(roles, role)
			}
		}
		rows = append(rows, taskRow{task: taskCol.String(i), codes: codes})
	}
	sort.Strings(roles)

	var warnings []string
	for _, row := range rows {
		countR, countA := 0, 0
		for _, code := range row.codes {
			switch code {
			case "R":
				countR++
			case "A":
				countA++
			}
		}
		if countA == 0 {
			warnings = append(warnings, fmt.Sprintf("The task %q has no one accountable (missing 'A').", row.task))
		} else if countA > 1 {
			warnings = append(warnings, fmt.Sprintf("The task %q has %d owners (multiple 'A'). There must be exactly one.", row.task, countA))
		}
		if countR == 0 {
			warnings = append(warnings, fmt.Sprintf("No one does the work in %q (missing 'R').", row.task))
		}
	}

	roleStats := map[string]any{}
	for _, role := range roles {
		counts := map[string]int{"R": 0, "A": 0, "C": 0, "I": 0}
		for _, row := range rows {
			if code, ok := row.codes[role]; ok && code != "" {
				counts[code]++
			}
		}
		roleStats[role] = counts
		if counts["R"] == 0 && counts["A"] == 0 {
			warnings = append(warnings, fmt.Sprintf("The role %q has no responsibilities assigned (is it needed?).", role))
		}
	}

	status := "The matrix is balanced."
	if len(warnings) > 0 {
		status = "Assignment problems were detected."
	}
	summary := fmt.Sprintf(
		"RACI matrix analyzed (%d tasks, %d roles). %s Found %d warning(s).",
		len(rows), len(roles), status, len(warnings))

	chart := make([]analysis.Record, len(rows))
	for i, row := range rows {
		rec := analysis.Record{"task": row.task}
		for role, code := range row.codes {
			rec[role] = code
		}
		chart[i] = rec
	}

	if warnings == nil {
		warnings = []string{}
	}
	return analysis.NewResult("Responsibility Matrix (RACI)", summary, chart, map[string]any{
		"warnings":       warnings,
		"role_stats":     roleStats,
		"roles_detected": roles,
	}), nil
}

// ============================================================================
// CONTROL PLAN — post-improvement monitoring standardization
// ============================================================================

var preventiveKeywords = []string{"poka yoke", "automatic", "sensor", "design", "preventive"}

type controlPlanTool struct{}

func (controlPlanTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("the control plan is empty")
	}
	required := []string{"process_step", "characteristic", "control_method", "reaction_plan"}
	if err := analysis.RequireColumns(t, required...); err != nil {
		return nil, err
	}

	stepCol, _ := t.Column("process_step")
	methodCol, _ := t.Column("control_method")
	reactionCol, _ := t.Column("reaction_plan")
	responsibleCol, hasResponsible := t.Column("responsible")

	var warnings []string
	var missingReaction []string
	preventive := 0
	responsibles := map[string]bool{}
	chart := make([]analysis.Record, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		method := methodCol.String(i)
		if method != "" && (reactionCol.IsNull(i) || reactionCol.String(i) == "") {
			missingReaction = append(missingReaction, stepCol.String(i))
		}

		// Keyword heuristic separating preventive from detective controls.
		kind := "Detective"
		lower := strings.ToLower(method)
		for _, kw := range preventiveKeywords {
			if strings.Contains(lower, kw) {
				kind = "Preventive"
				preventive++
				break
			}
		}

		if hasResponsible && !responsibleCol.IsNull(i) {
			responsibles[responsibleCol.String(i)] = true
		}

		row := rowRecord(t, i)
		row["type"] = kind
		chart = append(chart, row)
	}

	if len(missingReaction) > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"Alert: the steps %q have a control method but NO reaction plan defined.",
			strings.Join(missingReaction, ", ")))
	}

	total := t.Len()
	status := "The plan is robust."
	if len(warnings) > 0 {
		status = "The plan requires attention."
	}
	summary := fmt.Sprintf(
		"Control plan generated with %d control points. Strategy: %d preventive and %d detective controls. "+
			"Involves %d responsible roles. %s",
		total, preventive, total-preventive, len(responsibles), status)
	if len(warnings) > 0 {
		summary += " " + strings.Join(warnings, " ")
	}

	if warnings == nil {
		warnings = []string{}
	}
	return analysis.NewResult("Control Plan", summary, chart, map[string]any{
		"preventive_ratio": stats.Round(float64(preventive)/float64(total)*100, 1),
		"warnings":         warnings,
	}), nil
}

package tools

import (
	"fmt"
	"sort"
	"time"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/table"
)

// ============================================================================
// GANTT — project schedule with durations and consistency checks
// ============================================================================

type ganttTool struct{}

func (ganttTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("a task list with dates is required")
	}
	if err := analysis.RequireColumns(t, "task_name", "start_date", "end_date"); err != nil {
		return nil, err
	}

	nameCol, _ := t.Column("task_name")
	startCol, _ := t.Column("start_date")
	endCol, _ := t.Column("end_date")
	phaseCol, hasPhase := t.Column("phase")
	progressCol, hasProgress := t.Column("progress")

	if startCol.Kind != table.KindDate || endCol.Kind != table.KindDate {
		return nil, analysis.Invalidf("start_date and end_date must be parseable dates")
	}

	type task struct {
		name       string
		start, end time.Time
		duration   int
		phase      string
		progress   float64
	}
	tasks := make([]task, 0, t.Len())
	var progressSum float64
	phasesSeen := map[string]bool{}
	var phases []string
	for i := 0; i < t.Len(); i++ {
		start, okS := startCol.Date(i)
		end, okE := endCol.Date(i)
		if !okS || !okE {
			return nil, analysis.Invalidf("task %q is missing a start or end date", nameCol.String(i))
		}
		if end.Before(start) {
			return nil, analysis.Invalidf("task %q has an end date before its start date", nameCol.String(i))
		}

		days := int(end.Sub(start).Hours() / 24)
		if days < 1 {
			days = 1
		}
		tk := task{
			name:     nameCol.String(i),
			start:    start,
			end:      end,
			duration: days,
			phase:    "General",
		}
		if hasPhase && !phaseCol.IsNull(i) {
			tk.phase = phaseCol.String(i)
			if !phasesSeen[tk.phase] {
				phasesSeen[tk.phase] = true
				phases = append(phases, tk.phase)
			}
		}
		if hasProgress && !progressCol.IsNull(i) {
			tk.progress = progressCol.Float(i)
		}
		progressSum += tk.progress
		tasks = append(tasks, tk)
	}

	projectStart, projectEnd := tasks[0].start, tasks[0].end
	for _, tk := range tasks[1:] {
		if tk.start.Before(projectStart) {
			projectStart = tk.start
		}
		if tk.end.After(projectEnd) {
			projectEnd = tk.end
		}
	}
	totalDays := int(projectEnd.Sub(projectStart).Hours() / 24)

	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].start.Before(tasks[j].start) })

	avgProgress := 0.0
	if hasProgress {
		avgProgress = progressSum / float64(len(tasks))
	}
	summary := fmt.Sprintf(
		"Project schedule: %d tasks planned. Total estimated duration: %d days (from %s to %s). Average progress: %.1f%%.",
		len(tasks), totalDays, projectStart.Format("2006-01-02"), projectEnd.Format("2006-01-02"), avgProgress)

	chart := make([]analysis.Record, len(tasks))
	for i, tk := range tasks {
		chart[i] = analysis.Record{
			"id":       tk.name,
			"name":     tk.name,
			"start":    tk.start.Format("2006-01-02"),
			"end":      tk.end.Format("2006-01-02"),
			"duration": tk.duration,
			"phase":    tk.phase,
			"progress": tk.progress,
		}
	}

	if phases == nil {
		phases = []string{}
	}
	return analysis.NewResult("Project Schedule (Gantt Chart)", summary, chart, map[string]any{
		"project_start":   projectStart.Format("2006-01-02"),
		"project_end":     projectEnd.Format("2006-01-02"),
		"total_days":      totalDays,
		"phases_detected": phases,
	}), nil
}

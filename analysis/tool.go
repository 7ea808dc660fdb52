package analysis

import (
	"strings"

	"github.com/sigmaflow-org/sigmaflow/table"
)

// Tool is a single analysis technique. Analyze reads the table and
// parameters, computes, and returns a fully populated Result. Tools never
// mutate the table and never return partial results: any failure surfaces
// as an error, classified by Kind.
type Tool interface {
	Analyze(t *table.Table, p Params) (*Result, error)
}

// ToolFunc adapts a plain function to the Tool interface.
type ToolFunc func(t *table.Table, p Params) (*Result, error)

// Analyze implements Tool.
func (f ToolFunc) Analyze(t *table.Table, p Params) (*Result, error) { return f(t, p) }

// RequireRows rejects a table with fewer than min rows.
func RequireRows(t *table.Table, min int) error {
	if t.Len() < min {
		return Invalidf("at least %d data rows are required, got %d", min, t.Len())
	}
	return nil
}

// RequireColumns rejects a table missing any of the named columns.
func RequireColumns(t *table.Table, cols ...string) error {
	if missing := t.Missing(cols...); len(missing) > 0 {
		return Invalidf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

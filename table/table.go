package table

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ============================================================================
// TABLE — Column-oriented typed table built from generic row maps
// ============================================================================
// The adapter between caller-supplied records ([]map[string]any, typically
// decoded JSON) and the analysis tools. Columns are not declared up front;
// each column's kind is inferred once at load time by scanning the union of
// its values:
//
//   numeric — every non-null value is a number or parses as one
//   date    — every non-null value parses as an ISO date
//   bool    — every non-null value is a boolean
//   nested  — every non-null value is a map or slice (kept as-is)
//   text    — everything else
//
// Sparse keys are treated as null. Row order is preserved — it is
// semantically meaningful for time-series tools. A loaded Table is owned by
// a single analysis invocation and never mutated by the engine.
// ============================================================================

// Kind is the inferred type of a column.
type Kind int

const (
	KindNull Kind = iota
	KindNumeric
	KindText
	KindBool
	KindDate
	KindNested
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	case KindNested:
		return "nested"
	}
	return "null"
}

// Column is a named, homogeneously typed value sequence with a null mask.
type Column struct {
	Name string
	Kind Kind

	nums   []float64
	texts  []string
	bools  []bool
	dates  []time.Time
	nested []any
	null   []bool
}

// Table is an ordered collection of typed columns of equal length.
type Table struct {
	cols  []*Column
	index map[string]int
	n     int
}

// Load builds a Table from row maps. An empty row sequence yields an empty
// Table — tools that need data reject it themselves, with a message naming
// what is missing.
func Load(rows []map[string]any) *Table {
	t := &Table{index: make(map[string]int), n: len(rows)}

	// Column order: first appearance across rows.
	var names []string
	seen := make(map[string]bool)
	for _, row := range rows {
		keys := make([]string, 0, len(row))
		for k := range row {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				names = append(names, k)
			}
		}
	}

	for _, name := range names {
		col := buildColumn(name, rows)
		t.index[name] = len(t.cols)
		t.cols = append(t.cols, col)
	}
	return t
}

// Len returns the row count.
func (t *Table) Len() int { return t.n }

// IsEmpty reports whether the table has no rows.
func (t *Table) IsEmpty() bool { return t.n == 0 }

// Columns returns column names in load order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.Name
	}
	return out
}

// Column returns the named column, if present.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// Has reports whether the named column exists.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Missing returns the subset of names not present as columns.
func (t *Table) Missing(names ...string) []string {
	var missing []string
	for _, name := range names {
		if !t.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// NumericColumns returns all numeric columns in order.
func (t *Table) NumericColumns() []*Column {
	var out []*Column
	for _, c := range t.cols {
		if c.Kind == KindNumeric {
			out = append(out, c)
		}
	}
	return out
}

// TextColumns returns all text columns in order.
func (t *Table) TextColumns() []*Column {
	var out []*Column
	for _, c := range t.cols {
		if c.Kind == KindText {
			out = append(out, c)
		}
	}
	return out
}

// FirstNumeric returns the first numeric column. Several tools use this as
// their documented auto-detection heuristic.
func (t *Table) FirstNumeric() (*Column, bool) {
	cols := t.NumericColumns()
	if len(cols) == 0 {
		return nil, false
	}
	return cols[0], true
}

// LastNumeric returns the last numeric column ("last column is the
// response" heuristic).
func (t *Table) LastNumeric() (*Column, bool) {
	cols := t.NumericColumns()
	if len(cols) == 0 {
		return nil, false
	}
	return cols[len(cols)-1], true
}

// FirstText returns the first text column ("first categorical column"
// heuristic).
func (t *Table) FirstText() (*Column, bool) {
	cols := t.TextColumns()
	if len(cols) == 0 {
		return nil, false
	}
	return cols[0], true
}

// FirstLabel returns the first text or date column, used by time-series
// tools for point labels.
func (t *Table) FirstLabel() (*Column, bool) {
	for _, c := range t.cols {
		if c.Kind == KindText || c.Kind == KindDate {
			return c, true
		}
	}
	return nil, false
}

// ============================================================================
// COLUMN ACCESS
// ============================================================================

// Len returns the column length.
func (c *Column) Len() int { return len(c.null) }

// IsNull reports whether row i holds no value.
func (c *Column) IsNull(i int) bool { return c.null[i] }

// Float returns the numeric value at row i (0 for null or non-numeric kinds).
func (c *Column) Float(i int) float64 {
	if c.Kind != KindNumeric || c.null[i] {
		return 0
	}
	return c.nums[i]
}

// Bool returns the boolean value at row i.
func (c *Column) Bool(i int) bool {
	if c.Kind != KindBool || c.null[i] {
		return false
	}
	return c.bools[i]
}

// Date returns the date value at row i.
func (c *Column) Date(i int) (time.Time, bool) {
	if c.Kind != KindDate || c.null[i] {
		return time.Time{}, false
	}
	return c.dates[i], true
}

// Nested returns the raw nested value at row i (map or slice).
func (c *Column) Nested(i int) any {
	if c.Kind != KindNested || c.null[i] {
		return nil
	}
	return c.nested[i]
}

// String returns the value at row i rendered as text, whatever the kind.
// Null renders as the empty string.
func (c *Column) String(i int) string {
	if c.null[i] {
		return ""
	}
	switch c.Kind {
	case KindText:
		return c.texts[i]
	case KindNumeric:
		return formatNum(c.nums[i])
	case KindBool:
		return strconv.FormatBool(c.bools[i])
	case KindDate:
		return c.dates[i].Format("2006-01-02")
	case KindNested:
		return fmt.Sprint(c.nested[i])
	}
	return ""
}

// Floats returns the non-null numeric values in row order.
func (c *Column) Floats() []float64 {
	out := make([]float64, 0, len(c.nums))
	for i := range c.null {
		if !c.null[i] {
			out = append(out, c.nums[i])
		}
	}
	return out
}

// Strings returns every row rendered as text (nulls as "").
func (c *Column) Strings() []string {
	out := make([]string, c.Len())
	for i := range out {
		out[i] = c.String(i)
	}
	return out
}

// ============================================================================
// TYPE INFERENCE
// ============================================================================

var dateFormats = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

func buildColumn(name string, rows []map[string]any) *Column {
	col := &Column{Name: name, null: make([]bool, len(rows))}

	allNumeric, allBool, allDate, allNested := true, true, true, true
	nonNull := 0

	for i, row := range rows {
		v, ok := row[name]
		if !ok || v == nil {
			col.null[i] = true
			continue
		}
		nonNull++
		if _, isNum := asFloat(v); !isNum {
			allNumeric = false
		}
		if _, isBool := v.(bool); !isBool {
			allBool = false
		}
		if _, isDate := asDate(v); !isDate {
			allDate = false
		}
		if !isNested(v) {
			allNested = false
		}
	}

	switch {
	case nonNull == 0:
		col.Kind = KindNull
	case allNested:
		col.Kind = KindNested
	case allBool:
		col.Kind = KindBool
	case allNumeric:
		col.Kind = KindNumeric
	case allDate:
		col.Kind = KindDate
	default:
		col.Kind = KindText
	}

	switch col.Kind {
	case KindNumeric:
		col.nums = make([]float64, len(rows))
	case KindText:
		col.texts = make([]string, len(rows))
	case KindBool:
		col.bools = make([]bool, len(rows))
	case KindDate:
		col.dates = make([]time.Time, len(rows))
	case KindNested:
		col.nested = make([]any, len(rows))
	}

	for i, row := range rows {
		if col.null[i] {
			continue
		}
		v := row[name]
		switch col.Kind {
		case KindNumeric:
			col.nums[i], _ = asFloat(v)
		case KindText:
			col.texts[i] = asText(v)
		case KindBool:
			col.bools[i] = v.(bool)
		case KindDate:
			col.dates[i], _ = asDate(v)
		case KindNested:
			col.nested[i] = v
		}
	}
	return col
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func asDate(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateFormats {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func isNested(v any) bool {
	switch v.(type) {
	case map[string]any, []any, []string:
		return true
	}
	return false
}

func asText(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return formatNum(s)
	case bool:
		return strconv.FormatBool(s)
	}
	return fmt.Sprint(v)
}

// formatNum renders whole numbers without decimals, fractional with up to
// full precision (matches JSON round-tripping of float64).
func formatNum(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

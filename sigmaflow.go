// Package sigmaflow provides a Lean Six Sigma statistical analysis engine.
// Quality analytics for any dataset.
//
// Usage:
//
//	import "github.com/sigmaflow-org/sigmaflow/tools"
//
//	result, err := tools.Default().Run("pareto", rows, analysis.Params{
//	    "category_column": "defect_type",
//	})
//
// The engine takes a tool name, row-oriented records, and a parameter bag,
// and returns a normalized Result (summary, chart-ready data, details).
// Tool resolution, input typing, and dispatch live in the tools and table
// packages; server exposes the same dispatch over HTTP.
//
// The engine never calls any external service — all computation is local.
package sigmaflow

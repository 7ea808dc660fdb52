package analysis

// ============================================================================
// RESULT — Normalized output of every analysis tool
// ============================================================================
// Produced once per invocation and handed straight to the caller for
// serialization. ChartData is render-ready (one record per chart element);
// Details carries the structured numbers a report view needs. All numeric
// values inside are plain Go float64/int — no library wrapper types.
// ============================================================================

// StatusSuccess is the only status a returned Result carries; failures
// surface as errors, never as partial results.
const StatusSuccess = "success"

// Record is a single chart-ready data point or table row.
type Record map[string]any

// Result is the normalized output of one analysis run.
type Result struct {
	ToolName  string         `json:"tool_name"`
	Summary   string         `json:"summary"`
	ChartData []Record       `json:"chart_data"`
	Details   map[string]any `json:"details"`
	Status    string         `json:"status"`
}

// NewResult builds a success Result. Nil chart data is normalized to an
// empty slice so callers always serialize an array.
func NewResult(toolName, summary string, chartData []Record, details map[string]any) *Result {
	if chartData == nil {
		chartData = []Record{}
	}
	if details == nil {
		details = map[string]any{}
	}
	return &Result{
		ToolName:  toolName,
		Summary:   summary,
		ChartData: chartData,
		Details:   details,
		Status:    StatusSuccess,
	}
}

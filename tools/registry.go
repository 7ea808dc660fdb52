package tools

import (
	"sort"
	"strings"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/table"
)

// ============================================================================
// REGISTRY — tool catalog and dispatch
// ============================================================================
// Every tool registers one Descriptor. Resolution is case-insensitive over
// the canonical id and all aliases. Dispatch loads the row-oriented input
// into a typed table, runs the tool, and converts any panic inside a tool
// into a computation error so one bad analysis never takes the process down.
// ============================================================================

// Descriptor describes one registered tool.
type Descriptor struct {
	// ID is the canonical, stable identifier used in requests.
	ID string
	// Name is the display name, matching the tool_name on its results.
	Name string
	// Aliases resolve to this tool as well (legacy and localized names).
	Aliases []string
	// Phases lists the DMAIC phases the tool belongs to, as the letters
	// D, M, A, I, C.
	Phases string
	// Description is a keyword-rich usage blurb, consumed by the
	// recommender's vectorizer.
	Description string
	// Tool is the implementation.
	Tool analysis.Tool
}

// Registry resolves tool names to implementations.
type Registry struct {
	byID  map[string]*Descriptor
	order []string
}

// NewRegistry builds a registry from descriptors. Duplicate ids or aliases
// are a programming error and panic at startup.
func NewRegistry(descriptors []Descriptor) *Registry {
	r := &Registry{byID: make(map[string]*Descriptor, len(descriptors)*2)}
	for i := range descriptors {
		d := &descriptors[i]
		for _, key := range append([]string{d.ID}, d.Aliases...) {
			key = strings.ToLower(key)
			if _, dup := r.byID[key]; dup {
				panic("tools: duplicate registration for " + key)
			}
			r.byID[key] = d
		}
		r.order = append(r.order, d.ID)
	}
	sort.Strings(r.order)
	return r
}

// Resolve finds the descriptor for name, case-insensitively.
func (r *Registry) Resolve(name string) (*Descriptor, error) {
	d, ok := r.byID[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, analysis.UnknownTool(name)
	}
	return d, nil
}

// All returns every descriptor, sorted by canonical id.
func (r *Registry) All() []*Descriptor {
	out := make([]*Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Run resolves name, loads rows into a table, and executes the tool.
func (r *Registry) Run(name string, rows []map[string]any, params analysis.Params) (res *analysis.Result, err error) {
	d, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rec := recover(); rec != nil {
			res, err = nil, analysis.Computef("tool %q failed: %v", d.ID, rec)
		}
	}()
	return d.Tool.Analyze(table.Load(rows), params)
}

// Default returns the registry holding the full tool catalog.
func Default() *Registry { return defaultRegistry }

var defaultRegistry = NewRegistry([]Descriptor{
	{
		ID: "pareto", Name: "Pareto Analysis",
		Aliases: []string{"pareto_chart"},
		Phases:  "DMA",
		Description: "Pareto chart, 80/20 rule. Prioritize the most frequent causes of " +
			"complaints or defects and focus on the vital few.",
		Tool: paretoTool{},
	},
	{
		ID: "pareto_abc", Name: "Pareto ABC Analysis",
		Aliases: []string{"abc_analysis", "abc"},
		Phases:  "DMA",
		Description: "ABC classification of items by cumulative contribution. Class A " +
			"carries the bulk of the value, class C the long tail.",
		Tool: paretoABCTool{},
	},
	{
		ID: "sampling", Name: "Statistical Sampling",
		Aliases: []string{"muestreo", "sample_size"},
		Phases:  "M",
		Description: "Sample size calculation for attributes and variables, and random " +
			"sample extraction. How many surveys for 95% confidence.",
		Tool: samplingTool{},
	},
	{
		ID: "risk_analysis", Name: "Risk Analysis (NPR)",
		Aliases: []string{"amef", "npr"},
		Phases:  "AI",
		Description: "Risk priority number from severity, occurrence and detection. " +
			"Rank failure risks and flag the critical ones.",
		Tool: riskAnalysisTool{},
	},
	{
		ID: "fmea", Name: "FMEA (Failure Mode and Effects Analysis)",
		Aliases: []string{"failure_mode"},
		Phases:  "AIC",
		Description: "Failure mode and effects analysis. Evaluate risks in a process, " +
			"compute NPR per failure mode and take preventive action.",
		Tool: fmeaTool{},
	},
	{
		ID: "anova", Name: "ANOVA (Analysis of Variance)",
		Aliases: []string{"one_way_anova"},
		Phases:  "A",
		Description: "One-way analysis of variance. Test whether a factor such as shift " +
			"or supplier has a significant effect on the mean outcome.",
		Tool: anovaTool{},
	},
	{
		ID: "cost_tree", Name: "Cost of Quality Tree",
		Aliases: []string{"copq", "quality_costs"},
		Phases:  "DM",
		Description: "Cost of quality breakdown. Prevention, appraisal, internal and " +
			"external failure buckets, COPQ and cost of good quality.",
		Tool: costTreeTool{},
	},
	{
		ID: "structure_tree", Name: "Structure Tree",
		Aliases: []string{"ctq_tree", "job_tree", "tree_diagram"},
		Phases:  "D",
		Description: "Structure tree, CTQ critical to quality. Translate the voice of " +
			"the customer into a specific technical metric.",
		Tool: structureTreeTool{},
	},
	{
		ID: "boxplot", Name: "Box Plot Analysis",
		Aliases: []string{"diagrama_caja", "box_whisker"},
		Phases:  "MA",
		Description: "Box plot. Compare dispersion of cycle times before and after a " +
			"change. Quartiles, whiskers and outliers per group.",
		Tool: boxplotTool{},
	},
	{
		ID: "brainstorming", Name: "Brainstorming Analysis",
		Aliases: []string{"lluvia_ideas", "idea_voting"},
		Phases:  "DA",
		Description: "Brainstorming with voting. Deduplicate ideas, rank by votes and " +
			"build a word cloud of recurring themes.",
		Tool: brainstormingTool{},
	},
	{
		ID: "z_bench", Name: "Process Capability (Z-Bench)",
		Aliases: []string{"sigma_level", "dpmo", "capability"},
		Phases:  "MC",
		Description: "Sigma level and process capability. Z bench short and long term, " +
			"DPMO and yield against specification limits.",
		Tool: zBenchTool{},
	},
	{
		ID: "control_chart", Name: "Control Chart (X-bar R)",
		Aliases: []string{"control_charts", "spc", "xbar_r"},
		Phases:  "MC",
		Description: "Statistical process control. X-bar and R charts with control " +
			"limits to monitor weekly metrics and keep the process stable.",
		Tool: controlChartTool{},
	},
	{
		ID: "gantt", Name: "Gantt Chart",
		Aliases: []string{"cronograma", "timeline"},
		Phases:  "D",
		Description: "Project schedule, Gantt chart. Define target dates for each phase " +
			"of the improvement project. Project charter timeline.",
		Tool: ganttTool{},
	},
	{
		ID: "cost_benefit", Name: "Cost-Benefit Analysis",
		Aliases: []string{"roi_analysis", "cba"},
		Phases:  "I",
		Description: "Cost benefit and ROI. Compute net flows per period, payback " +
			"period and return on investment of an improvement.",
		Tool: costBenefitTool{},
	},
	{
		ID: "affinity", Name: "Affinity Diagram",
		Aliases: []string{"affinity_diagram", "afinidades"},
		Phases:  "DA",
		Description: "Affinity diagram. Group free-text ideas into named clusters by " +
			"textual similarity.",
		Tool: affinityTool{},
	},
	{
		ID: "radar", Name: "Radar Chart",
		Aliases: []string{"spider_chart", "gap_analysis"},
		Phases:  "MAC",
		Description: "Radar or spider chart. 5S audits, competence evaluation and gap " +
			"analysis between two series.",
		Tool: radarTool{},
	},
	{
		ID: "doe", Name: "Design of Experiments (DOE)",
		Aliases: []string{"design_of_experiments", "factorial_design"},
		Phases:  "I",
		Description: "Factorial design of experiments. Determine which factors have the " +
			"largest effect on the response and which interactions matter.",
		Tool: doeTool{},
	},
	{
		ID: "interviews", Name: "Interview Analysis (VOC)",
		Aliases: []string{"entrevistas", "voc_analysis"},
		Phases:  "DA",
		Description: "Interviews and surveys, voice of the customer. Extract the most " +
			"frequent terms from transcripts and per-person participation.",
		Tool: interviewsTool{},
	},
	{
		ID: "ishikawa", Name: "Ishikawa Diagram (Fishbone)",
		Aliases: []string{"fishbone", "espina_pescado", "cause_effect"},
		Phases:  "A",
		Description: "Cause and effect diagram, fishbone. Organize causes by category " +
			"such as manpower, methods, machines and materials.",
		Tool: ishikawaTool{},
	},
	{
		ID: "stratification", Name: "Stratification Analysis",
		Aliases: []string{"estratificacion"},
		Phases:  "MA",
		Description: "Stratification. Break a metric down by a grouping factor and " +
			"measure how much the factor explains.",
		Tool: stratificationTool{},
	},
	{
		ID: "gage_rr", Name: "Gage R&R Study",
		Aliases: []string{"msa", "gage_rnr"},
		Phases:  "M",
		Description: "Gage R&R, measurement system analysis. Validate that the " +
			"measurement system is reliable before collecting data at scale.",
		Tool: gageRRTool{},
	},
	{
		ID: "run_chart", Name: "Run Chart",
		Aliases: []string{"trend_chart"},
		Phases:  "MC",
		Description: "Run chart. Simple trends over time with shift, trend and runs " +
			"tests around the median.",
		Tool: runChartTool{},
	},
	{
		ID: "histogram", Name: "Histogram Analysis",
		Aliases: []string{"distribution"},
		Phases:  "M",
		Description: "Histogram. Visualize the distribution of continuous data with a " +
			"normality check and skewness notes.",
		Tool: histogramTool{},
	},
	{
		ID: "confidence_interval", Name: "Confidence Interval",
		Aliases: []string{"conf_interval", "interval_estimate"},
		Phases:  "MA",
		Description: "Confidence interval estimation for a mean or a proportion, with " +
			"an optional target value check.",
		Tool: confidenceIntervalTool{},
	},
	{
		ID: "process_map", Name: "Process Map Validation",
		Aliases: []string{"flowchart", "flujograma"},
		Phases:  "DA",
		Description: "Process map, flowchart. Diagram the as-is flow, validate the " +
			"graph structure and spot dead ends and unreachable steps.",
		Tool: processMapTool{},
	},
	{
		ID: "raci", Name: "RACI Matrix",
		Aliases: []string{"raci_matrix", "responsibility_matrix"},
		Phases:  "I",
		Description: "RACI matrix. Define responsible, accountable, consulted and " +
			"informed roles and validate one accountable per task.",
		Tool: raciTool{},
	},
	{
		ID: "control_plan", Name: "Control Plan",
		Aliases: []string{"plan_de_control"},
		Phases:  "C",
		Description: "Control plan. Document metrics, control methods and reaction " +
			"plans to sustain the improved process.",
		Tool: controlPlanTool{},
	},
	{
		ID: "qfd", Name: "QFD (House of Quality)",
		Aliases: []string{"house_of_quality", "ce_matrix"},
		Phases:  "D",
		Description: "Quality function deployment, house of quality. Prioritize " +
			"technical characteristics against weighted customer requirements.",
		Tool: qfdTool{},
	},
	{
		ID: "regression", Name: "Multiple Regression",
		Aliases: []string{"multiple_regression", "scatter"},
		Phases:  "A",
		Description: "Multiple linear regression and correlation between variables. " +
			"Fit a model, test coefficient significance, inspect residuals.",
		Tool: regressionTool{},
	},
	{
		ID: "rsm", Name: "Response Surface Methodology (RSM)",
		Aliases: []string{"response_surface"},
		Phases:  "I",
		Description: "Response surface methodology. Fit a quadratic model and find the " +
			"operating settings that optimize the response.",
		Tool: rsmTool{},
	},
	{
		ID: "hypothesis_test", Name: "Hypothesis Test",
		Aliases: []string{"hypothesis", "t_test"},
		Phases:  "A",
		Description: "Hypothesis testing, t-tests for one sample, two samples and " +
			"paired data. Compare means before versus after a change.",
		Tool: hypothesisTestTool{},
	},
	{
		ID: "normality_test", Name: "Normality Test (Q-Q Plot)",
		Aliases: []string{"normality", "qq_plot"},
		Phases:  "MA",
		Description: "Normality testing with Shapiro-Wilk and Anderson-Darling plus a " +
			"Q-Q plot. Validate data before parametric statistics.",
		Tool: normalityTestTool{},
	},
	{
		ID: "chi_square", Name: "Chi-Square Test",
		Aliases: []string{"chi2", "independence_test"},
		Phases:  "A",
		Description: "Chi-square test of independence between two categorical " +
			"attributes from a contingency table.",
		Tool: chiSquareTool{},
	},
	{
		ID: "balanced_scorecard", Name: "Balanced Scorecard (BSC)",
		Aliases: []string{"bsc", "scorecard"},
		Phases:  "C",
		Description: "Balanced scorecard. Monitor strategic KPIs across perspectives " +
			"with achievement percentages and RAG status.",
		Tool: balancedScorecardTool{},
	},
	{
		ID: "pmi", Name: "PMI (Plus, Minus, Interesting)",
		Aliases: []string{"plus_minus_interesting"},
		Phases:  "I",
		Description: "PMI evaluation of a proposal. Weigh the plus, minus and " +
			"interesting aspects and suggest a decision trend.",
		Tool: pmiTool{},
	},
})

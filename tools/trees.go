package tools

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/table"
)

// ============================================================================
// COST OF QUALITY TREE
// ============================================================================
// Classifies quality costs into the four classical buckets (prevention,
// appraisal, internal failure, external failure) and returns a nested tree
// suitable for treemap rendering. COPQ is internal + external failure;
// CoGQ is prevention + appraisal.
// ============================================================================

var costCategoryNames = map[string]string{
	"prevention":       "Prevention (investment)",
	"appraisal":        "Appraisal (inspection)",
	"internal_failure": "Internal Failures (waste)",
	"external_failure": "External Failures (customer impact)",
}

type costTreeTool struct{}

func (costTreeTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("a cost list is required to build the tree")
	}
	if err := analysis.RequireColumns(t, "description", "amount", "category"); err != nil {
		return nil, err
	}

	desc, _ := t.Column("description")
	amount, _ := t.Column("amount")
	category, _ := t.Column("category")

	type item struct {
		name  string
		value float64
	}
	byCategory := make(map[string][]item)
	totals := make(map[string]float64)
	var catOrder []string
	var totalCost float64
	for i := 0; i < t.Len(); i++ {
		if category.IsNull(i) || amount.IsNull(i) {
			continue
		}
		cat := category.String(i)
		if _, ok := byCategory[cat]; !ok {
			catOrder = append(catOrder, cat)
		}
		v := amount.Float(i)
		byCategory[cat] = append(byCategory[cat], item{name: desc.String(i), value: v})
		totals[cat] += v
		totalCost += v
	}
	if totalCost == 0 {
		return nil, analysis.Invalidf("total quality cost is zero")
	}
	sort.Strings(catOrder)

	copq := totals["internal_failure"] + totals["external_failure"]
	cogq := totals["prevention"] + totals["appraisal"]

	var children []analysis.Record
	for _, cat := range catOrder {
		items := make([]analysis.Record, 0, len(byCategory[cat]))
		for _, it := range byCategory[cat] {
			items = append(items, analysis.Record{"name": it.name, "value": it.value})
		}
		name := cat
		if display, ok := costCategoryNames[cat]; ok {
			name = display
		}
		children = append(children, analysis.Record{
			"name":     name,
			"value":    totals[cat],
			"children": items,
		})
	}
	tree := analysis.Record{
		"name":     "Total Cost of Quality",
		"value":    totalCost,
		"children": children,
	}

	summary := fmt.Sprintf(
		"The total cost of quality is $%.2f. COPQ (poor quality) is $%.2f (%.1f%% of the total). "+
			"$%.2f is being invested in good quality.",
		totalCost, copq, copq/totalCost*100, cogq)
	if revenue := p.Float("total_revenue", 0); revenue > 0 {
		summary += fmt.Sprintf(" Quality costs represent %.2f%% of total revenue.", totalCost/revenue*100)
	}

	return analysis.NewResult("Cost of Quality Tree", summary, []analysis.Record{tree}, map[string]any{
		"total_copq": copq,
		"total_cogq": cogq,
		"breakdown":  totals,
	}), nil
}

// ============================================================================
// STRUCTURE TREE — flat id/parent_id lists into nested hierarchies
// ============================================================================

type treeNode struct {
	ID       string      `json:"id"`
	Label    string      `json:"label"`
	ParentID string      `json:"parent_id,omitempty"`
	Children []*treeNode `json:"children"`
}

type structureTreeTool struct{}

func (structureTreeTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("data is required to build the tree")
	}
	if err := analysis.RequireColumns(t, "id", "label"); err != nil {
		return nil, err
	}

	idCol, _ := t.Column("id")
	labelCol, _ := t.Column("label")
	parentCol, hasParent := t.Column("parent_id")

	byID := make(map[string]*treeNode, t.Len())
	nodes := make([]*treeNode, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		node := &treeNode{
			ID:       idCol.String(i),
			Label:    labelCol.String(i),
			Children: []*treeNode{},
		}
		if hasParent && !parentCol.IsNull(i) {
			node.ParentID = parentCol.String(i)
		}
		byID[node.ID] = node
		nodes = append(nodes, node)
	}

	var roots []*treeNode
	for _, node := range nodes {
		if parent, ok := byID[node.ParentID]; ok && node.ParentID != "" && node.ParentID != node.ID {
			parent.Children = append(parent.Children, node)
		} else {
			roots = append(roots, node)
		}
	}

	depth := treeDepth(roots)
	rootLabels := make([]string, len(roots))
	for i, r := range roots {
		rootLabels[i] = r.Label
	}
	summary := fmt.Sprintf(
		"Structured a tree of %d elements across %d levels. Root nodes detected: %s.",
		len(nodes), depth, strings.Join(rootLabels, ", "))

	chart := make([]analysis.Record, len(roots))
	for i, r := range roots {
		chart[i] = nodeRecord(r)
	}

	return analysis.NewResult("Tree Diagram (Structure/CTQ)", summary, chart, map[string]any{
		"total_nodes":    len(nodes),
		"max_depth":      depth,
		"structure_type": p.String("type", "General"),
	}), nil
}

func nodeRecord(n *treeNode) analysis.Record {
	children := make([]analysis.Record, len(n.Children))
	for i, c := range n.Children {
		children[i] = nodeRecord(c)
	}
	rec := analysis.Record{"id": n.ID, "label": n.Label, "children": children}
	if n.ParentID != "" {
		rec["parent_id"] = n.ParentID
	}
	return rec
}

func treeDepth(nodes []*treeNode) int {
	if len(nodes) == 0 {
		return 0
	}
	max := 1
	for _, n := range nodes {
		if d := 1 + treeDepth(n.Children); d > max {
			max = d
		}
	}
	return max
}

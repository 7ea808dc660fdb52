package tools

import (
	"math/rand"
	"sort"

	"github.com/sigmaflow-org/sigmaflow/table"
)

// sampleIndices picks size distinct row indices out of n using a seeded
// shuffle, so repeated runs over the same data return the same sample.
func sampleIndices(n, size int, seed int64) []int {
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	return perm[:size]
}

// group is one category with its aggregated value.
type group struct {
	Label string
	Value float64
	Count int
}

// groupSum aggregates values by label. When values is nil each row counts
// as 1. Groups come back sorted by value descending, ties broken
// alphabetically.
func groupSum(labels *table.Column, values *table.Column) []group {
	totals := make(map[string]*group)
	var order []string
	for i := 0; i < labels.Len(); i++ {
		if labels.IsNull(i) {
			continue
		}
		key := labels.String(i)
		g, ok := totals[key]
		if !ok {
			g = &group{Label: key}
			totals[key] = g
			order = append(order, key)
		}
		if values != nil {
			if values.IsNull(i) {
				continue
			}
			g.Value += values.Float(i)
		} else {
			g.Value++
		}
		g.Count++
	}

	sort.Strings(order)
	out := make([]group, 0, len(order))
	for _, key := range order {
		out = append(out, *totals[key])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}

// groupValues collects per-label numeric value slices, labels in first-seen
// order.
func groupValues(labels *table.Column, values *table.Column) ([]string, map[string][]float64) {
	byLabel := make(map[string][]float64)
	var order []string
	for i := 0; i < labels.Len(); i++ {
		if labels.IsNull(i) || values.IsNull(i) {
			continue
		}
		key := labels.String(i)
		if _, ok := byLabel[key]; !ok {
			order = append(order, key)
		}
		byLabel[key] = append(byLabel[key], values.Float(i))
	}
	return order, byLabel
}

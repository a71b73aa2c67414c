package domain

import "sort"

// DefaultTopLabels is how many categories and sources a preference profile
// keeps by default.
const DefaultTopLabels = 3

// Preferences holds a user's top-ranked category and source labels, each
// ordered by descending accumulated weight.
type Preferences struct {
	TopCategories []string `json:"top_categories"`
	TopSources    []string `json:"top_sources"`
}

// labelWeights accumulates additive weights per label while remembering the
// order labels were first encountered, so equal weights rank stably.
type labelWeights struct {
	weights map[string]int
	order   []string
}

func newLabelWeights() *labelWeights {
	return &labelWeights{weights: make(map[string]int)}
}

func (lw *labelWeights) add(label string, weight int) {
	if label == "" {
		return
	}
	if _, seen := lw.weights[label]; !seen {
		lw.order = append(lw.order, label)
	}
	lw.weights[label] += weight
}

// top returns up to n labels by descending weight. The sort is stable over
// encounter order, so the first-seen label wins ties.
func (lw *labelWeights) top(n int) []string {
	labels := make([]string, len(lw.order))
	copy(labels, lw.order)
	sort.SliceStable(labels, func(i, j int) bool {
		return lw.weights[labels[i]] > lw.weights[labels[j]]
	})
	if len(labels) > n {
		labels = labels[:n]
	}
	return labels
}

// AggregatePreferences folds a user's recent activity into ranked category
// and source preferences. An empty activity set yields empty lists.
func AggregatePreferences(activities []Activity, topN int) Preferences {
	if topN <= 0 {
		topN = DefaultTopLabels
	}

	categories := newLabelWeights()
	sources := newLabelWeights()
	for _, act := range activities {
		w := act.Weight()
		categories.add(act.Category, w)
		sources.add(act.Source, w)
	}

	return Preferences{
		TopCategories: categories.top(topN),
		TopSources:    sources.top(topN),
	}
}

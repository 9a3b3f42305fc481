package service

import (
	"sort"

	"github.com/pixelpetals-dev/discount-editor/internal/domain/plan"
	"github.com/shopspring/decimal"
)

// ResolvedCollection pairs a collection with the winning percentage for it.
type ResolvedCollection struct {
	CollectionID string
	PercentOff   decimal.Decimal
}

// ResolveRules collapses a plan's rule list into one entry per collection,
// keeping the maximum percentage among duplicates. The reduction is a plain
// max fold, so the result is independent of rule order.
func ResolveRules(rules []*plan.Rule) map[string]decimal.Decimal {
	resolved := make(map[string]decimal.Decimal, len(rules))
	for _, rule := range rules {
		current, ok := resolved[rule.CategoryID]
		if !ok || rule.PercentOff.GreaterThan(current) {
			resolved[rule.CategoryID] = rule.PercentOff
		}
	}
	return resolved
}

// OrderResolved flattens the resolved map into a deterministic scan order:
// highest percentage first, collection ID ascending among equals. Map
// iteration order would make "first found" nondeterministic, so every
// consumer of the resolution walks this slice instead.
func OrderResolved(resolved map[string]decimal.Decimal) []ResolvedCollection {
	ordered := make([]ResolvedCollection, 0, len(resolved))
	for id, percent := range resolved {
		ordered = append(ordered, ResolvedCollection{CollectionID: id, PercentOff: percent})
	}

	sort.Slice(ordered, func(i, j int) bool {
		if !ordered[i].PercentOff.Equal(ordered[j].PercentOff) {
			return ordered[i].PercentOff.GreaterThan(ordered[j].PercentOff)
		}
		return ordered[i].CollectionID < ordered[j].CollectionID
	})

	return ordered
}

// Package aggregate derives summaries and display strings from data-access
// results. Nothing here mutates its inputs.
package aggregate

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Filter keeps the items for which any field returned by fields contains
// query, ignoring case. Only the empty query returns items unchanged;
// whitespace is matched literally.
func Filter[T any](items []T, query string, fields func(T) []string) []T {
	q := strings.ToLower(query)
	if q == "" {
		return items
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, f := range fields(item) {
			if strings.Contains(strings.ToLower(f), q) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

func Count[T any](items []T) int {
	return len(items)
}

func CountWhere[T any](items []T, pred func(T) bool) int {
	n := 0
	for _, item := range items {
		if pred(item) {
			n++
		}
	}
	return n
}

// Mean is the arithmetic mean of value over items, or zero for no items.
func Mean[T any](items []T, value func(T) decimal.Decimal) decimal.Decimal {
	if len(items) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(value(item))
	}
	return sum.Div(decimal.NewFromInt(int64(len(items))))
}

// MaxBy returns the item with the greatest key. The first of equal keys wins.
func MaxBy[T any](items []T, key func(T) decimal.Decimal) (T, bool) {
	var best T
	if len(items) == 0 {
		return best, false
	}
	best = items[0]
	bestKey := key(best)
	for _, item := range items[1:] {
		if k := key(item); k.GreaterThan(bestKey) {
			best, bestKey = item, k
		}
	}
	return best, true
}

// Percentage is part/total*100, or zero when total is zero.
func Percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

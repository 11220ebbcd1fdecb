// Package pricing resolves which percentage price adjustment applies to
// a restaurant (and optionally a specific table) at a point in time, and
// converts base prices into final prices.  Resolution is read-only and
// side-effect free: the rule set is fetched fresh per call rather than
// cached, so rule edits take effect immediately.
package pricing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// RuleSource supplies the active pricing rules for one restaurant and
// day of week.  The MySQL pricing rule repository implements it; tests
// use an in-memory slice.
type RuleSource interface {
	ActiveRules(ctx context.Context, restaurantID uint64, dayOfWeek int) ([]model.PricingRule, error)
}

// Resolver matches pricing rules against a query moment.
type Resolver struct {
	rules RuleSource
}

// NewResolver returns a Resolver backed by the given rule source.
func NewResolver(rules RuleSource) *Resolver {
	if rules == nil {
		panic("nil rule source passed to NewResolver")
	}
	return &Resolver{rules: rules}
}

// ResolveAdjustment returns the signed adjustment percentage applicable
// to the restaurant (and table, when non-nil) at the given moment.  The
// moment is interpreted on the deployment's canonical clock; callers
// pass UTC throughout this service.
//
// Matching proceeds in two steps.  First all active rules for the
// restaurant and weekday whose [StartTime, EndTime) window contains the
// moment form the candidate pool.  Then, if any candidate targets the
// requested table specifically, the pool narrows to those; otherwise
// every time-window match stays eligible, including rules scoped to a
// different table.  The winner is the rule with the largest absolute
// adjustment.  An empty pool yields 0 – absence of rules is not an
// error.
func (r *Resolver) ResolveAdjustment(ctx context.Context, restaurantID uint64, tableID *uint64, when time.Time) (int, error) {
	dow := int(when.Weekday()) // time.Weekday counts Sunday=0, same as the rules
	hhmm := when.Format("15:04")

	rules, err := r.rules.ActiveRules(ctx, restaurantID, dow)
	if err != nil {
		return 0, fmt.Errorf("load pricing rules: %w", err)
	}

	matches := make([]model.PricingRule, 0, len(rules))
	for _, rule := range rules {
		if InWindow(hhmm, rule.StartTime, rule.EndTime) {
			matches = append(matches, rule)
		}
	}

	// Table-specific matches, when present, displace the wider pool.
	if tableID != nil {
		tableMatches := make([]model.PricingRule, 0, len(matches))
		for _, rule := range matches {
			if rule.TableID != nil && *rule.TableID == *tableID {
				tableMatches = append(tableMatches, rule)
			}
		}
		if len(tableMatches) > 0 {
			matches = tableMatches
		}
	}
	if len(matches) == 0 {
		return 0, nil
	}

	// Largest absolute adjustment wins.  The sort is stable so equal
	// magnitudes keep their fetch order.
	sort.SliceStable(matches, func(i, j int) bool {
		return abs(matches[i].AdjustmentPercent) > abs(matches[j].AdjustmentPercent)
	})
	return matches[0].AdjustmentPercent, nil
}

// ApplyAdjustment converts a base price into a final price:
// base * (1 + percent/100), rounded to two decimal places.  Rounding
// is half away from zero (decimal.Round), so ApplyAdjustment(99.99, 25)
// yields 124.99 and a zero percent adjustment returns the base rounded
// to two places unchanged.
func ApplyAdjustment(base decimal.Decimal, percent int) decimal.Decimal {
	return base.
		Mul(decimal.NewFromInt(int64(100 + percent))).
		Div(decimal.NewFromInt(100)).
		Round(2)
}

// InWindow reports whether the zero-padded wall-clock string hhmm falls
// inside the half-open window [start, end).  Zero-padded "HH:MM"
// strings order lexicographically exactly as the times they denote, so
// plain string comparison suffices.
func InWindow(hhmm, start, end string) bool {
	return start <= hhmm && hhmm < end
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

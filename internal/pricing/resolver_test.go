package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// memRules mimics the repository contract: only active rules for the
// requested restaurant and weekday come back.
type memRules struct {
	rules []model.PricingRule
	err   error
}

func (m *memRules) ActiveRules(_ context.Context, restaurantID uint64, dayOfWeek int) ([]model.PricingRule, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []model.PricingRule
	for _, r := range m.rules {
		if r.RestaurantID == restaurantID && r.DayOfWeek == dayOfWeek && r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

func uptr(v uint64) *uint64 { return &v }

// fridayAt returns a UTC moment on a Friday at the given wall clock.
func fridayAt(t *testing.T, hhmm string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, "2025-01-03T"+hhmm+":00Z")
	require.NoError(t, err)
	require.Equal(t, time.Friday, ts.Weekday())
	return ts
}

func rule(restaurantID uint64, dow int, start, end string, pct int) model.PricingRule {
	return model.PricingRule{
		RestaurantID:      restaurantID,
		DayOfWeek:         dow,
		StartTime:         start,
		EndTime:           end,
		AdjustmentPercent: pct,
		IsActive:          true,
	}
}

func TestResolveAdjustment_NoMatchingRuleIsZero(t *testing.T) {
	src := &memRules{rules: []model.PricingRule{
		rule(1, 5, "17:00", "19:00", -20),
	}}
	r := NewResolver(src)

	// Outside the window on the right day.
	pct, err := r.ResolveAdjustment(context.Background(), 1, nil, fridayAt(t, "19:00"))
	require.NoError(t, err)
	assert.Equal(t, 0, pct)

	// No rules at all for this restaurant.
	pct, err = r.ResolveAdjustment(context.Background(), 2, nil, fridayAt(t, "18:00"))
	require.NoError(t, err)
	assert.Equal(t, 0, pct)
}

func TestResolveAdjustment_WindowIsHalfOpen(t *testing.T) {
	src := &memRules{rules: []model.PricingRule{
		rule(1, 5, "17:00", "19:00", -20),
	}}
	r := NewResolver(src)

	pct, err := r.ResolveAdjustment(context.Background(), 1, nil, fridayAt(t, "17:00"))
	require.NoError(t, err)
	assert.Equal(t, -20, pct, "start bound is inclusive")

	pct, err = r.ResolveAdjustment(context.Background(), 1, nil, fridayAt(t, "18:59"))
	require.NoError(t, err)
	assert.Equal(t, -20, pct)

	pct, err = r.ResolveAdjustment(context.Background(), 1, nil, fridayAt(t, "19:00"))
	require.NoError(t, err)
	assert.Equal(t, 0, pct, "end bound is exclusive")
}

func TestResolveAdjustment_InactiveRulesNeverMatch(t *testing.T) {
	inactive := rule(1, 5, "00:00", "23:59", 50)
	inactive.IsActive = false
	src := &memRules{rules: []model.PricingRule{inactive}}
	r := NewResolver(src)

	pct, err := r.ResolveAdjustment(context.Background(), 1, nil, fridayAt(t, "12:00"))
	require.NoError(t, err)
	assert.Equal(t, 0, pct)
}

func TestResolveAdjustment_LargestAbsoluteWins(t *testing.T) {
	a := rule(1, 5, "17:00", "19:00", 10)
	b := rule(1, 5, "17:00", "19:00", -20)
	r1 := NewResolver(&memRules{rules: []model.PricingRule{a, b}})
	r2 := NewResolver(&memRules{rules: []model.PricingRule{b, a}})

	// The discount's larger magnitude wins regardless of fetch order.
	pct, err := r1.ResolveAdjustment(context.Background(), 1, nil, fridayAt(t, "18:00"))
	require.NoError(t, err)
	assert.Equal(t, -20, pct)

	pct, err = r2.ResolveAdjustment(context.Background(), 1, nil, fridayAt(t, "18:00"))
	require.NoError(t, err)
	assert.Equal(t, -20, pct)

	// Resolution is read-only: asking again changes nothing.
	again, err := r1.ResolveAdjustment(context.Background(), 1, nil, fridayAt(t, "18:00"))
	require.NoError(t, err)
	assert.Equal(t, pct, again)
}

func TestResolveAdjustment_TableRulesDisplaceWiderPool(t *testing.T) {
	wide := rule(1, 5, "17:00", "19:00", 30)
	scoped := rule(1, 5, "17:00", "19:00", 5)
	scoped.TableID = uptr(7)
	src := &memRules{rules: []model.PricingRule{wide, scoped}}
	r := NewResolver(src)

	// With the table given, its specific rule wins even at lower magnitude.
	pct, err := r.ResolveAdjustment(context.Background(), 1, uptr(7), fridayAt(t, "18:00"))
	require.NoError(t, err)
	assert.Equal(t, 5, pct)

	// Without a table, the restaurant-wide rule applies.
	pct, err = r.ResolveAdjustment(context.Background(), 1, nil, fridayAt(t, "18:00"))
	require.NoError(t, err)
	assert.Equal(t, 30, pct)
}

func TestResolveAdjustment_OtherTableRuleStillApplies(t *testing.T) {
	scoped := rule(1, 5, "17:00", "19:00", -15)
	scoped.TableID = uptr(3)
	src := &memRules{rules: []model.PricingRule{scoped}}
	r := NewResolver(src)

	// Querying table 9: no rule targets it, so every time-window match
	// stays eligible, including the rule scoped to table 3.
	pct, err := r.ResolveAdjustment(context.Background(), 1, uptr(9), fridayAt(t, "18:00"))
	require.NoError(t, err)
	assert.Equal(t, -15, pct)
}

func TestApplyAdjustment(t *testing.T) {
	cases := []struct {
		base    string
		percent int
		want    string
	}{
		{"20.00", -20, "16"},
		{"100.00", -20, "80"},
		{"100.00", 0, "100"},
		{"99.99", 25, "124.99"}, // 124.9875 rounds half away from zero
		{"100.00", -100, "0"},
		{"10.00", 7, "10.7"},
	}
	for _, tc := range cases {
		base := decimal.RequireFromString(tc.base)
		got := ApplyAdjustment(base, tc.percent)
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
			"ApplyAdjustment(%s, %d) = %s, want %s", tc.base, tc.percent, got, tc.want)
	}
}

func TestApplyAdjustment_ZeroPercentKeepsBase(t *testing.T) {
	base := decimal.RequireFromString("42.35")
	assert.True(t, ApplyAdjustment(base, 0).Equal(base))
}

func TestInWindow(t *testing.T) {
	assert.True(t, InWindow("17:00", "17:00", "19:00"))
	assert.True(t, InWindow("18:59", "17:00", "19:00"))
	assert.False(t, InWindow("19:00", "17:00", "19:00"))
	assert.False(t, InWindow("16:59", "17:00", "19:00"))
	assert.False(t, InWindow("09:30", "10:00", "11:00"))
}

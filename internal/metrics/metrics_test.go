package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/subsco/subsco/internal/model"
)

func sub(name string, amount int64, cycle model.Cycle) model.Subscription {
	return model.Subscription{
		ID:           name,
		Name:         name,
		Amount:       amount,
		Category:     model.CategoryStreaming,
		Cycle:        cycle,
		NextBilling:  model.NewDate(2025, time.June, 10),
		Satisfaction: 3,
		Frequency:    3,
	}
}

func TestMonthlyEquivalent(t *testing.T) {
	t.Parallel()

	require.EqualValues(t, 1500, MonthlyEquivalent(sub("a", 1500, model.CycleMonthly)))
	require.EqualValues(t, 1000, MonthlyEquivalent(sub("b", 12000, model.CycleYearly)))
	// half-up rounding: 10000/12 = 833.33 -> 833, 10010/12 = 834.17 -> 834
	require.EqualValues(t, 833, MonthlyEquivalent(sub("c", 10000, model.CycleYearly)))
	require.EqualValues(t, 834, MonthlyEquivalent(sub("d", 10010, model.CycleYearly)))
	// exact half rounds up: 18/12 = 1.5 -> 2
	require.EqualValues(t, 2, MonthlyEquivalent(sub("e", 18, model.CycleYearly)))
}

func TestYearlyMonthlyRoundTrip(t *testing.T) {
	t.Parallel()

	// for monthly subscriptions the round trip is exact
	s := sub("a", 980, model.CycleMonthly)
	require.EqualValues(t, 980*12, YearlyEquivalent(s))
	require.Equal(t, MonthlyEquivalent(s), (YearlyEquivalent(s)+6)/12)
}

func TestTotalsSkipPaused(t *testing.T) {
	t.Parallel()

	subs := []model.Subscription{
		sub("netflix", 1500, model.CycleMonthly),
		sub("prime", 5900, model.CycleYearly),
	}
	require.EqualValues(t, 1500+492, TotalMonthly(subs))
	require.EqualValues(t, 1500*12+5900, TotalYearly(subs))

	subs[0].IsPaused = true
	subs[1].IsPaused = true
	require.EqualValues(t, 0, TotalMonthly(subs))
	require.EqualValues(t, 0, TotalYearly(subs))
}

func TestCategoryBreakdown(t *testing.T) {
	t.Parallel()

	a := sub("netflix", 1500, model.CycleMonthly)
	b := sub("spotify", 980, model.CycleMonthly)
	c := sub("icloud", 400, model.CycleMonthly)
	c.Category = model.CategoryCloud
	paused := sub("hulu", 1000, model.CycleMonthly)
	paused.IsPaused = true

	out := CategoryBreakdown([]model.Subscription{a, b, c, paused})
	require.Len(t, out, 2)
	require.Equal(t, model.CategoryStreaming, out[0].Category)
	require.EqualValues(t, 2480, out[0].Total)
	require.Equal(t, model.CategoryCloud, out[1].Category)
	require.EqualValues(t, 400, out[1].Total)

	ranking := CategoryRanking([]model.Subscription{c, a, b})
	require.Equal(t, model.CategoryStreaming, ranking[0].Category)

	require.Empty(t, CategoryBreakdown(nil))
}

func TestSatisfactionBreakdown(t *testing.T) {
	t.Parallel()

	a := sub("good", 1000, model.CycleMonthly)
	a.Satisfaction = 5
	b := sub("bad", 500, model.CycleMonthly)
	b.Satisfaction = 1

	out := SatisfactionBreakdown([]model.Subscription{a, b})
	require.Len(t, out, 2)
	require.Equal(t, 1, out[0].Level)
	require.EqualValues(t, 500, out[0].Total)
	require.Equal(t, 5, out[1].Level)
	require.EqualValues(t, 1000, out[1].Total)
}

func TestBudgetRatio(t *testing.T) {
	t.Parallel()

	_, band := BudgetRatio(0, 5000)
	require.Equal(t, BudgetNotApplicable, band)
	_, band = BudgetRatio(-5, 5000)
	require.Equal(t, BudgetNotApplicable, band)

	ratio, band := BudgetRatio(200000, 5000)
	require.InDelta(t, 2.5, ratio, 0.001)
	require.Equal(t, BudgetComfortable, band)

	// bands are half-open on the upper bound: exactly 5% is normal
	ratio, band = BudgetRatio(200000, 10000)
	require.InDelta(t, 5.0, ratio, 0.001)
	require.Equal(t, BudgetNormal, band)

	_, band = BudgetRatio(200000, 25000)
	require.Equal(t, BudgetElevated, band)

	_, band = BudgetRatio(200000, 30000)
	require.Equal(t, BudgetExcessive, band)
}

func TestDaysUntilBilling(t *testing.T) {
	t.Parallel()

	today := time.Date(2025, time.June, 10, 15, 42, 7, 0, time.UTC)

	require.Equal(t, 0, DaysUntilBilling(model.NewDate(2025, time.June, 10), today))
	require.Equal(t, -5, DaysUntilBilling(model.NewDate(2025, time.June, 5), today))
	require.Equal(t, 3, DaysUntilBilling(model.NewDate(2025, time.June, 13), today))
	// time of day never affects the result
	morning := time.Date(2025, time.June, 10, 0, 0, 1, 0, time.UTC)
	require.Equal(t, 3, DaysUntilBilling(model.NewDate(2025, time.June, 13), morning))
}

func TestUrgency(t *testing.T) {
	t.Parallel()

	require.Equal(t, UrgencyOverdue, Urgency(-1))
	require.Equal(t, UrgencyDueToday, Urgency(0))
	require.Equal(t, UrgencyCritical, Urgency(1))
	require.Equal(t, UrgencyCritical, Urgency(3))
	require.Equal(t, UrgencySoon, Urgency(4))
	require.Equal(t, UrgencySoon, Urgency(7))
	require.Equal(t, UrgencyNormal, Urgency(8))
}

func TestMatrix(t *testing.T) {
	t.Parallel()

	a := sub("daily", 1000, model.CycleMonthly)
	a.Satisfaction = 5
	a.Frequency = 5
	b := sub("forgotten", 500, model.CycleMonthly)
	b.Satisfaction = 1
	b.Frequency = 1
	paused := sub("paused", 300, model.CycleMonthly)
	paused.Satisfaction = 1
	paused.Frequency = 1
	paused.IsPaused = true

	subs := []model.Subscription{a, b, paused}
	require.Len(t, MatrixCell(subs, 5, 5), 1)
	require.Len(t, MatrixCell(subs, 1, 1), 1)
	require.Empty(t, MatrixCell(subs, 3, 3))

	require.Equal(t, 0, ReviewScore(5, 5))
	require.Equal(t, 8, ReviewScore(1, 1))
	require.Equal(t, 4, ReviewScore(3, 3))
}

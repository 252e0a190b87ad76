// Package metrics holds the pure derived-data functions behind the list,
// matrix and analysis views. Everything operates on in-memory slices and
// whole currency units.
package metrics

import (
	"sort"
	"time"

	"github.com/subsco/subsco/internal/model"
)

// MonthlyEquivalent normalizes a subscription's cost to a per-month figure.
// Yearly amounts divide by 12 with half-up rounding to the nearest whole
// currency unit; the rounding is lossy, so summing monthly equivalents will
// not exactly equal a separately computed yearly total.
func MonthlyEquivalent(sub model.Subscription) int64 {
	if sub.Cycle == model.CycleYearly {
		return (sub.Amount + 6) / 12
	}
	return sub.Amount
}

// YearlyEquivalent normalizes a subscription's cost to a per-year figure.
func YearlyEquivalent(sub model.Subscription) int64 {
	if sub.Cycle == model.CycleMonthly {
		return sub.Amount * 12
	}
	return sub.Amount
}

// TotalMonthly sums monthly equivalents over active subscriptions only.
func TotalMonthly(subs []model.Subscription) int64 {
	var total int64
	for _, sub := range subs {
		if sub.IsPaused {
			continue
		}
		total += MonthlyEquivalent(sub)
	}
	return total
}

// TotalYearly sums yearly equivalents over active subscriptions only.
func TotalYearly(subs []model.Subscription) int64 {
	var total int64
	for _, sub := range subs {
		if sub.IsPaused {
			continue
		}
		total += YearlyEquivalent(sub)
	}
	return total
}

// CategoryTotal is a monthly-equivalent sum for one category.
type CategoryTotal struct {
	Category model.Category
	Total    int64
}

// CategoryBreakdown groups active subscriptions by category, summing
// monthly equivalents. Categories with a zero total are omitted; callers
// render a placeholder slice when the result is empty.
func CategoryBreakdown(subs []model.Subscription) []CategoryTotal {
	totals := make(map[model.Category]int64)
	for _, sub := range subs {
		if sub.IsPaused {
			continue
		}
		totals[sub.Category] += MonthlyEquivalent(sub)
	}
	var out []CategoryTotal
	for _, cat := range model.Categories {
		if totals[cat] > 0 {
			out = append(out, CategoryTotal{Category: cat, Total: totals[cat]})
		}
	}
	return out
}

// CategoryRanking is CategoryBreakdown sorted by spend, highest first.
func CategoryRanking(subs []model.Subscription) []CategoryTotal {
	out := CategoryBreakdown(subs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out
}

// SatisfactionTotal is a monthly-equivalent sum for one satisfaction level.
type SatisfactionTotal struct {
	Level int // 1-5
	Total int64
}

// SatisfactionBreakdown groups active subscriptions by satisfaction level,
// summing monthly equivalents. Zero levels are omitted.
func SatisfactionBreakdown(subs []model.Subscription) []SatisfactionTotal {
	totals := make(map[int]int64)
	for _, sub := range subs {
		if sub.IsPaused {
			continue
		}
		totals[sub.Satisfaction] += MonthlyEquivalent(sub)
	}
	var out []SatisfactionTotal
	for level := 1; level <= 5; level++ {
		if totals[level] > 0 {
			out = append(out, SatisfactionTotal{Level: level, Total: totals[level]})
		}
	}
	return out
}

// BudgetBand classifies the share of income spent on subscriptions.
type BudgetBand int

const (
	BudgetNotApplicable BudgetBand = iota // income unset
	BudgetComfortable                     // < 5%
	BudgetNormal                          // [5, 10)
	BudgetElevated                        // [10, 15)
	BudgetExcessive                       // >= 15%
)

// BudgetRatio returns the percentage of monthly income consumed by
// totalMonthly and its advisory band. With income <= 0 the ratio is not
// applicable and the returned percentage is 0. Bands are half-open on the
// upper bound: exactly 5.0% classifies as normal, not comfortable.
func BudgetRatio(income, totalMonthly int64) (float64, BudgetBand) {
	if income <= 0 {
		return 0, BudgetNotApplicable
	}
	ratio := float64(totalMonthly) / float64(income) * 100
	switch {
	case ratio < 5:
		return ratio, BudgetComfortable
	case ratio < 10:
		return ratio, BudgetNormal
	case ratio < 15:
		return ratio, BudgetElevated
	default:
		return ratio, BudgetExcessive
	}
}

// DaysUntilBilling is the calendar-day difference between today and the
// billing date, both truncated to midnight so time of day never matters.
// Negative means overdue.
func DaysUntilBilling(billing model.Date, today time.Time) int {
	from := model.DateOf(today)
	return int(billing.Sub(from.Time) / (24 * time.Hour))
}

// UrgencyTier grades how soon a billing date lands.
type UrgencyTier int

const (
	UrgencyOverdue  UrgencyTier = iota // days < 0
	UrgencyDueToday                    // days == 0
	UrgencyCritical                    // 1..3
	UrgencySoon                        // 4..7
	UrgencyNormal                      // > 7
)

func Urgency(days int) UrgencyTier {
	switch {
	case days < 0:
		return UrgencyOverdue
	case days == 0:
		return UrgencyDueToday
	case days <= 3:
		return UrgencyCritical
	case days <= 7:
		return UrgencySoon
	default:
		return UrgencyNormal
	}
}

// ReviewScore grades a matrix cell: low satisfaction and low frequency
// push a service toward the review-first corner. Range 0 (keep) to 8.
func ReviewScore(satisfaction, frequency int) int {
	return (5 - satisfaction) + (5 - frequency)
}

// MatrixCell returns the active subscriptions at one satisfaction x
// frequency coordinate.
func MatrixCell(subs []model.Subscription, satisfaction, frequency int) []model.Subscription {
	var out []model.Subscription
	for _, sub := range subs {
		if sub.IsPaused {
			continue
		}
		if sub.Satisfaction == satisfaction && sub.Frequency == frequency {
			out = append(out, sub)
		}
	}
	return out
}

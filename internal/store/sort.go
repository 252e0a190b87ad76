package store

import (
	"sort"

	"github.com/subsco/subsco/internal/model"
)

// Active returns the non-paused subscriptions sorted by the current sort
// mode: date orders by soonest billing, price by highest amount,
// satisfaction lowest first (review candidates on top).
func (s *Store) Active() []model.Subscription {
	var out []model.Subscription
	for _, sub := range s.subscriptions {
		if !sub.IsPaused {
			out = append(out, sub)
		}
	}
	mode := s.sortMode
	sort.SliceStable(out, func(i, j int) bool {
		switch mode {
		case model.SortByPrice:
			return out[i].Amount > out[j].Amount
		case model.SortBySatisfaction:
			return out[i].Satisfaction < out[j].Satisfaction
		default:
			return out[i].NextBilling.Before(out[j].NextBilling.Time)
		}
	})
	return out
}

// Paused returns the paused subscriptions in insertion order.
func (s *Store) Paused() []model.Subscription {
	var out []model.Subscription
	for _, sub := range s.subscriptions {
		if sub.IsPaused {
			out = append(out, sub)
		}
	}
	return out
}

// Package backup reads and writes the JSON backup file. Import is strict at
// the top level (unparseable input aborts) and permissive per record:
// backups are user-controlled files that may be hand-edited, produced by an
// older schema, or corrupted, and one bad entry must not block restoring
// the rest.
package backup

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/subsco/subsco/internal/model"
)

// Data is the sanitized content of a validated backup. HasSubscriptions and
// HasHistory record whether the corresponding key was present as a
// well-formed list; a present empty list replaces state, an absent key
// leaves it unchanged.
type Data struct {
	Subscriptions    []model.Subscription
	History          []model.HistoryEntry
	HasSubscriptions bool
	HasHistory       bool
	MonthlyIncome    int64
	Language         *model.Language
	DarkMode         *bool
}

// Result reports a validation run. OK is false only on a top-level parse or
// shape failure; individually invalid records are skipped and reported in
// Errors while OK stays true.
type Result struct {
	OK     bool
	Errors []string
	Data   *Data
}

// Snapshot is the exported backup shape.
type Snapshot struct {
	Subscriptions []model.Subscription `json:"subscriptions"`
	History       []model.HistoryEntry `json:"history"`
	MonthlyIncome int64                `json:"monthlyIncome"`
	Language      model.Language       `json:"language"`
	IsDarkMode    bool                 `json:"isDarkMode"`
}

// Export renders a snapshot as an indented backup file.
func Export(s Snapshot) ([]byte, error) {
	if s.Subscriptions == nil {
		s.Subscriptions = []model.Subscription{}
	}
	if s.History == nil {
		s.History = []model.HistoryEntry{}
	}
	return json.MarshalIndent(s, "", "  ")
}

// Filename names a backup file with the current date embedded.
func Filename(now time.Time) string {
	return "subsco_backup_" + now.Format("2006-01-02") + ".json"
}

// rawSubscription mirrors Subscription with lax field types so each
// invariant can be checked individually. FlexID tolerates the legacy
// numeric identifiers of the old data model.
type rawSubscription struct {
	ID           *model.FlexID `json:"id"`
	Name         string       `json:"name"`
	Amount       float64      `json:"amount"`
	Category     string       `json:"category"`
	Cycle        string       `json:"cycle"`
	NextBilling  string       `json:"nextBillingDate"`
	Satisfaction float64      `json:"satisfaction"`
	Frequency    float64      `json:"frequency"`
	IsPaused     *bool        `json:"isPaused"`
}

type rawHistoryEntry struct {
	ID     *model.FlexID `json:"id"`
	Type   string       `json:"type"`
	Name   string       `json:"name"`
	Date   string       `json:"date"`
	Amount float64      `json:"amount"`
	Cycle  string       `json:"cycle"`
}

// Validate parses and type-checks a backup payload. See Result for the
// failure taxonomy.
func Validate(raw []byte) Result {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		if json.Valid(raw) {
			return Result{OK: false, Errors: []string{"invalid data format"}}
		}
		return Result{OK: false, Errors: []string{"JSON parse error"}}
	}
	if top == nil {
		return Result{OK: false, Errors: []string{"invalid data format"}}
	}

	res := Result{OK: true, Data: &Data{}}

	if rawSubs, ok := top["subscriptions"]; ok {
		var items []json.RawMessage
		if err := json.Unmarshal(rawSubs, &items); err == nil {
			res.Data.HasSubscriptions = true
			res.Data.Subscriptions = []model.Subscription{}
			for i, item := range items {
				sub, err := validateSubscription(item)
				if err != nil {
					res.Errors = append(res.Errors, fmt.Sprintf("subscriptions[%d]: invalid", i))
					continue
				}
				res.Data.Subscriptions = append(res.Data.Subscriptions, sub)
			}
		}
	}

	if rawHist, ok := top["history"]; ok {
		var items []json.RawMessage
		if err := json.Unmarshal(rawHist, &items); err == nil {
			res.Data.HasHistory = true
			res.Data.History = []model.HistoryEntry{}
			for i, item := range items {
				entry, err := validateHistoryEntry(item)
				if err != nil {
					res.Errors = append(res.Errors, fmt.Sprintf("history[%d]: invalid", i))
					continue
				}
				res.Data.History = append(res.Data.History, entry)
			}
		}
	}

	if rawIncome, ok := top["monthlyIncome"]; ok {
		var income float64
		if err := json.Unmarshal(rawIncome, &income); err == nil && income >= 0 && isWhole(income) {
			res.Data.MonthlyIncome = int64(income)
		}
	}

	if rawLang, ok := top["language"]; ok {
		var lang model.Language
		if err := json.Unmarshal(rawLang, &lang); err == nil && lang.Valid() {
			res.Data.Language = &lang
		}
	}

	if rawDark, ok := top["isDarkMode"]; ok {
		var dark bool
		if err := json.Unmarshal(rawDark, &dark); err == nil {
			res.Data.DarkMode = &dark
		}
	}

	return res
}

func validateSubscription(raw json.RawMessage) (model.Subscription, error) {
	var r rawSubscription
	if err := json.Unmarshal(raw, &r); err != nil {
		return model.Subscription{}, err
	}
	// an id of "" is accepted; only an absent or non-string/number id fails
	if r.ID == nil || r.Name == "" {
		return model.Subscription{}, fmt.Errorf("missing id or name")
	}
	if r.Amount <= 0 || !isWhole(r.Amount) {
		return model.Subscription{}, fmt.Errorf("invalid amount")
	}
	if !model.Category(r.Category).Valid() {
		return model.Subscription{}, fmt.Errorf("unknown category")
	}
	if !model.Cycle(r.Cycle).Valid() {
		return model.Subscription{}, fmt.Errorf("unknown cycle")
	}
	billing, err := model.ParseDate(r.NextBilling)
	if err != nil {
		return model.Subscription{}, err
	}
	if !isRating(r.Satisfaction) || !isRating(r.Frequency) {
		return model.Subscription{}, fmt.Errorf("rating out of range")
	}
	if r.IsPaused == nil {
		return model.Subscription{}, fmt.Errorf("missing isPaused")
	}
	return model.Subscription{
		ID:           string(*r.ID),
		Name:         r.Name,
		Amount:       int64(r.Amount),
		Category:     model.Category(r.Category),
		Cycle:        model.Cycle(r.Cycle),
		NextBilling:  billing,
		Satisfaction: int(r.Satisfaction),
		Frequency:    int(r.Frequency),
		IsPaused:     *r.IsPaused,
	}, nil
}

func validateHistoryEntry(raw json.RawMessage) (model.HistoryEntry, error) {
	var r rawHistoryEntry
	if err := json.Unmarshal(raw, &r); err != nil {
		return model.HistoryEntry{}, err
	}
	if r.ID == nil || r.Name == "" {
		return model.HistoryEntry{}, fmt.Errorf("missing id or name")
	}
	if !model.HistoryType(r.Type).Valid() {
		return model.HistoryEntry{}, fmt.Errorf("unknown history type")
	}
	date, err := parseTimestamp(r.Date)
	if err != nil {
		return model.HistoryEntry{}, err
	}
	if r.Amount <= 0 || !isWhole(r.Amount) {
		return model.HistoryEntry{}, fmt.Errorf("invalid amount")
	}
	if !model.Cycle(r.Cycle).Valid() {
		return model.HistoryEntry{}, fmt.Errorf("unknown cycle")
	}
	return model.HistoryEntry{
		ID:     string(*r.ID),
		Type:   model.HistoryType(r.Type),
		Name:   r.Name,
		Date:   date,
		Amount: int64(r.Amount),
		Cycle:  model.Cycle(r.Cycle),
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if d, err := model.ParseDate(s); err == nil {
		return d.Time, nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

func isWhole(v float64) bool {
	return v == math.Trunc(v) && !math.IsInf(v, 0)
}

func isRating(v float64) bool {
	return isWhole(v) && v >= 1 && v <= 5
}

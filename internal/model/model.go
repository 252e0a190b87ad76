// Package model defines the domain types shared by the store, the views and
// the backup format. The JSON tags are the on-disk and backup-file contract.
package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Cycle is a subscription's billing recurrence.
type Cycle string

const (
	CycleMonthly Cycle = "monthly"
	CycleYearly  Cycle = "yearly"
)

func (c Cycle) Valid() bool {
	return c == CycleMonthly || c == CycleYearly
}

// Category is one of the fixed service categories.
type Category string

const (
	CategoryStreaming Category = "streaming"
	CategoryCloud     Category = "cloud"
	CategoryTool      Category = "tool"
	CategoryLearning  Category = "learning"
	CategoryHealth    Category = "health"
	CategoryDelivery  Category = "delivery"
	CategoryNews      Category = "news"
	CategoryGame      Category = "game"
	CategoryOther     Category = "other"
)

// Categories lists all categories in display order.
var Categories = []Category{
	CategoryStreaming, CategoryCloud, CategoryTool, CategoryLearning,
	CategoryHealth, CategoryDelivery, CategoryNews, CategoryGame, CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// HistoryType tags an audit entry.
type HistoryType string

const (
	HistoryNew    HistoryType = "new"
	HistoryCancel HistoryType = "cancel"
	HistoryResume HistoryType = "resume"
)

func (t HistoryType) Valid() bool {
	return t == HistoryNew || t == HistoryCancel || t == HistoryResume
}

// Language selects the UI string table.
type Language string

const (
	LanguageJA Language = "ja"
	LanguageEN Language = "en"
)

func (l Language) Valid() bool {
	return l == LanguageJA || l == LanguageEN
}

// SortMode orders the list view. Presentation-only, never persisted.
type SortMode string

const (
	SortByDate         SortMode = "date"
	SortByPrice        SortMode = "price"
	SortBySatisfaction SortMode = "satisfaction"
)

// DisplayCycle toggles whether totals render per month or per year.
type DisplayCycle string

const (
	DisplayMonthly DisplayCycle = "monthly"
	DisplayYearly  DisplayCycle = "yearly"
)

// Subscription is one recurring payment obligation. Amount is in whole
// currency units (the form only ever writes integers).
type Subscription struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Amount       int64    `json:"amount"`
	Category     Category `json:"category"`
	Cycle        Cycle    `json:"cycle"`
	NextBilling  Date     `json:"nextBillingDate"`
	Satisfaction int      `json:"satisfaction"`
	Frequency    int      `json:"frequency"`
	IsPaused     bool     `json:"isPaused"`
}

// HistoryEntry is an immutable audit record. Name, Amount and Cycle are a
// snapshot of the subscription at event time, never a live reference, so
// later edits and deletes cannot rewrite the past.
type HistoryEntry struct {
	ID     string      `json:"id"`
	Type   HistoryType `json:"type"`
	Name   string      `json:"name"`
	Date   time.Time   `json:"date"`
	Amount int64       `json:"amount"`
	Cycle  Cycle       `json:"cycle"`
}

// Date is a calendar date without a time component. It marshals as
// YYYY-MM-DD and unmarshals either that or a full RFC 3339 timestamp,
// since legacy backups store billing dates as ISO timestamps.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate accepts YYYY-MM-DD or RFC 3339 and truncates to the day.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return DateOf(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOf(t), nil
	}
	return Date{}, fmt.Errorf("invalid date %q", s)
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// FlexID is an identifier that tolerates legacy numeric form in JSON and
// normalizes to its canonical string representation.
type FlexID string

func (id *FlexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = FlexID(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*id = FlexID(strconv.FormatFloat(n, 'f', -1, 64))
		return nil
	}
	return fmt.Errorf("id must be a string or number, got %s", data)
}

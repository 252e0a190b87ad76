// Package store owns the canonical application state: the subscription
// list, the audit history, and the scalar settings. Mutations are
// synchronous and return the persistence writes they imply, so saving is an
// explicit step the caller schedules instead of a hidden side effect.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/subsco/subsco/internal/backup"
	"github.com/subsco/subsco/internal/model"
	"github.com/subsco/subsco/internal/storage"
)

// ErrNotLoaded rejects mutations issued before the startup load settles,
// so stored data cannot be clobbered by writes of default values.
var ErrNotLoaded = errors.New("store: not loaded yet")

// Write is one pending persistence operation: the JSON value to put into a
// slot. The value is encoded at mutation time, so the fire-and-forget write
// never races with later mutations.
type Write struct {
	Slot storage.Slot
	Data []byte
}

// Store is the single state container behind every view.
type Store struct {
	db  *storage.DB
	log *slog.Logger

	subscriptions []model.Subscription
	history       []model.HistoryEntry
	income        int64
	language      model.Language
	darkMode      bool

	// presentation-only, never persisted
	sortMode     model.SortMode
	displayCycle model.DisplayCycle

	loaded bool
	now    func() time.Time
	newID  func() string
}

// New builds an empty store around the persistence adapter. The default
// language applies until a persisted or imported one overrides it.
func New(db *storage.DB, log *slog.Logger, defaultLang model.Language) *Store {
	if !defaultLang.Valid() {
		defaultLang = model.LanguageJA
	}
	return &Store{
		db:           db,
		log:          log,
		language:     defaultLang,
		sortMode:     model.SortByDate,
		displayCycle: model.DisplayMonthly,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// LoadedState carries the startup slot reads between ReadState and
// ApplyState.
type LoadedState struct {
	Subscriptions []model.Subscription
	History       []model.HistoryEntry
	Income        int64
	Language      model.Language
	HasLanguage   bool
	DarkMode      bool
}

// ReadState reads every slot concurrently into a result, touching no store
// field, so it is safe to run off the event loop while views keep reading
// the store. A failed or missing slot falls back to its default value;
// nothing here is fatal.
func (s *Store) ReadState(ctx context.Context) LoadedState {
	var res LoadedState
	var g errgroup.Group

	g.Go(func() error {
		loadSlot(ctx, s, storage.SlotSubscriptions, &res.Subscriptions)
		return nil
	})
	g.Go(func() error {
		loadSlot(ctx, s, storage.SlotHistory, &res.History)
		return nil
	})
	g.Go(func() error {
		loadSlot(ctx, s, storage.SlotIncome, &res.Income)
		return nil
	})
	g.Go(func() error {
		res.HasLanguage = loadSlot(ctx, s, storage.SlotLanguage, &res.Language)
		return nil
	})
	g.Go(func() error {
		loadSlot(ctx, s, storage.SlotDarkMode, &res.DarkMode)
		return nil
	})

	_ = g.Wait()
	if res.Income < 0 {
		res.Income = 0
	}
	return res
}

// ApplyState installs the startup reads and marks the store loaded. It
// mutates the store, so it must run on the event loop like every other
// mutation.
func (s *Store) ApplyState(res LoadedState) {
	s.subscriptions = res.Subscriptions
	s.history = res.History
	s.income = res.Income
	if res.HasLanguage && res.Language.Valid() {
		s.language = res.Language
	}
	s.darkMode = res.DarkMode
	s.loaded = true
}

// Load reads and applies in one step, for callers with no event loop.
func (s *Store) Load(ctx context.Context) error {
	s.ApplyState(s.ReadState(ctx))
	return nil
}

// loadSlot reads one slot into dst, reporting whether a value was applied.
func loadSlot[T any](ctx context.Context, s *Store, slot storage.Slot, dst *T) bool {
	raw, err := s.db.Get(ctx, slot)
	if errors.Is(err, storage.ErrNotFound) {
		return false
	}
	if err != nil {
		s.log.Warn("slot read failed, using default", "slot", slot, "err", err)
		return false
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.log.Warn("slot value malformed, using default", "slot", slot, "err", err)
		return false
	}
	*dst = v
	return true
}

// Persist applies pending writes to storage. Callers run it off the event
// loop; a failure is logged and returned but the in-memory state stays
// authoritative for the session.
func (s *Store) Persist(ctx context.Context, writes []Write) error {
	for _, w := range writes {
		if err := s.db.Put(ctx, w.Slot, w.Data); err != nil {
			s.log.Error("persist failed", "slot", w.Slot, "err", err)
			return err
		}
	}
	return nil
}

// ClearStorage wipes every persisted slot. Used by ResetAll's persistence step.
func (s *Store) ClearStorage(ctx context.Context) error {
	return s.db.Reset(ctx)
}

// Loaded reports whether the startup reads have settled.
func (s *Store) Loaded() bool { return s.loaded }

func (s *Store) Subscriptions() []model.Subscription { return s.subscriptions }
func (s *Store) History() []model.HistoryEntry       { return s.history }
func (s *Store) MonthlyIncome() int64                { return s.income }
func (s *Store) Language() model.Language            { return s.language }
func (s *Store) DarkMode() bool                      { return s.darkMode }
func (s *Store) SortMode() model.SortMode            { return s.sortMode }
func (s *Store) DisplayCycle() model.DisplayCycle    { return s.displayCycle }

// Draft is the caller-supplied part of a new subscription.
type Draft struct {
	Name         string
	Amount       int64
	Category     model.Category
	Cycle        model.Cycle
	NextBilling  model.Date
	Satisfaction int
	Frequency    int
}

func (d Draft) validate() error {
	switch {
	case d.Name == "":
		return fmt.Errorf("name must not be empty")
	case d.Amount <= 0:
		return fmt.Errorf("amount must be positive")
	case !d.Category.Valid():
		return fmt.Errorf("unknown category %q", d.Category)
	case !d.Cycle.Valid():
		return fmt.Errorf("unknown cycle %q", d.Cycle)
	case d.NextBilling.IsZero():
		return fmt.Errorf("next billing date required")
	case d.Satisfaction < 1 || d.Satisfaction > 5:
		return fmt.Errorf("satisfaction out of range")
	case d.Frequency < 1 || d.Frequency > 5:
		return fmt.Errorf("frequency out of range")
	}
	return nil
}

// AddSubscription appends a new subscription with a fresh id and records a
// "new" history entry snapshotting name, amount and cycle.
func (s *Store) AddSubscription(d Draft) ([]Write, error) {
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	sub := model.Subscription{
		ID:           s.newID(),
		Name:         d.Name,
		Amount:       d.Amount,
		Category:     d.Category,
		Cycle:        d.Cycle,
		NextBilling:  d.NextBilling,
		Satisfaction: d.Satisfaction,
		Frequency:    d.Frequency,
	}
	s.subscriptions = append(s.subscriptions, sub)
	s.appendHistory(model.HistoryNew, sub)
	return s.encode(storage.SlotSubscriptions, storage.SlotHistory), nil
}

// Patch carries the fields of an update; nil fields are left untouched.
type Patch struct {
	Name         *string
	Amount       *int64
	Category     *model.Category
	Cycle        *model.Cycle
	NextBilling  *model.Date
	Satisfaction *int
	Frequency    *int
	IsPaused     *bool
}

// UpdateSubscription merges patch fields into the matching subscription.
// Identity is preserved and no history is recorded. Unknown ids are a
// silent no-op.
func (s *Store) UpdateSubscription(id string, p Patch) ([]Write, error) {
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, nil
	}
	sub := &s.subscriptions[idx]
	if p.Name != nil {
		sub.Name = *p.Name
	}
	if p.Amount != nil {
		sub.Amount = *p.Amount
	}
	if p.Category != nil {
		sub.Category = *p.Category
	}
	if p.Cycle != nil {
		sub.Cycle = *p.Cycle
	}
	if p.NextBilling != nil {
		sub.NextBilling = *p.NextBilling
	}
	if p.Satisfaction != nil {
		sub.Satisfaction = *p.Satisfaction
	}
	if p.Frequency != nil {
		sub.Frequency = *p.Frequency
	}
	if p.IsPaused != nil {
		sub.IsPaused = *p.IsPaused
	}
	return s.encode(storage.SlotSubscriptions), nil
}

// DeleteSubscription removes the matching subscription and records a
// "cancel" history entry with its pre-deletion values. Unknown ids are a
// silent no-op, which makes delete idempotent.
func (s *Store) DeleteSubscription(id string) ([]Write, error) {
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, nil
	}
	sub := s.subscriptions[idx]
	s.subscriptions = append(s.subscriptions[:idx], s.subscriptions[idx+1:]...)
	s.appendHistory(model.HistoryCancel, sub)
	return s.encode(storage.SlotSubscriptions, storage.SlotHistory), nil
}

// TogglePauseSubscription flips the paused flag. Resuming records a
// "resume" history entry; pausing records nothing, deliberately - users
// want to see when they reconsidered a subscription, not every pause.
func (s *Store) TogglePauseSubscription(id string) ([]Write, error) {
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, nil
	}
	sub := &s.subscriptions[idx]
	sub.IsPaused = !sub.IsPaused
	if !sub.IsPaused {
		s.appendHistory(model.HistoryResume, *sub)
		return s.encode(storage.SlotSubscriptions, storage.SlotHistory), nil
	}
	return s.encode(storage.SlotSubscriptions), nil
}

// SetMonthlyIncome stores the declared net income; negative input clamps to
// 0 ("unset").
func (s *Store) SetMonthlyIncome(income int64) ([]Write, error) {
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	if income < 0 {
		income = 0
	}
	s.income = income
	return s.encode(storage.SlotIncome), nil
}

func (s *Store) SetLanguage(lang model.Language) ([]Write, error) {
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	if !lang.Valid() {
		return nil, fmt.Errorf("unknown language %q", lang)
	}
	s.language = lang
	return s.encode(storage.SlotLanguage), nil
}

func (s *Store) ToggleDarkMode() ([]Write, error) {
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	s.darkMode = !s.darkMode
	return s.encode(storage.SlotDarkMode), nil
}

// SetSortMode and SetDisplayCycle are presentation toggles; they persist nothing.
func (s *Store) SetSortMode(mode model.SortMode)      { s.sortMode = mode }
func (s *Store) SetDisplayCycle(c model.DisplayCycle) { s.displayCycle = c }

// ExportSnapshot returns the full serializable state for backup.
func (s *Store) ExportSnapshot() backup.Snapshot {
	return backup.Snapshot{
		Subscriptions: s.subscriptions,
		History:       s.history,
		MonthlyIncome: s.income,
		Language:      s.language,
		IsDarkMode:    s.darkMode,
	}
}

// ImportSnapshot validates a backup payload and, when it parses at the top
// level, replaces state with the sanitized fields: lists replace wholesale
// whenever their key was a well-formed list (even an empty one), scalars
// apply only when present and valid. The per-record errors come back for
// display; they do not block the rest of the import.
func (s *Store) ImportSnapshot(raw []byte) (backup.Result, []Write, error) {
	if !s.loaded {
		return backup.Result{}, nil, ErrNotLoaded
	}
	res := backup.Validate(raw)
	if !res.OK {
		return res, nil, nil
	}

	var dirty []storage.Slot
	if res.Data.HasSubscriptions {
		s.subscriptions = res.Data.Subscriptions
		dirty = append(dirty, storage.SlotSubscriptions)
	}
	if res.Data.HasHistory {
		s.history = res.Data.History
		dirty = append(dirty, storage.SlotHistory)
	}
	if res.Data.MonthlyIncome > 0 {
		s.income = res.Data.MonthlyIncome
		dirty = append(dirty, storage.SlotIncome)
	}
	if res.Data.Language != nil {
		s.language = *res.Data.Language
		dirty = append(dirty, storage.SlotLanguage)
	}
	if res.Data.DarkMode != nil {
		s.darkMode = *res.Data.DarkMode
		dirty = append(dirty, storage.SlotDarkMode)
	}
	return res, s.encode(dirty...), nil
}

// ResetAll clears subscriptions, history and income. The caller must have
// confirmed with the user first, and schedules ClearStorage alongside.
func (s *Store) ResetAll() error {
	if !s.loaded {
		return ErrNotLoaded
	}
	s.subscriptions = nil
	s.history = nil
	s.income = 0
	return nil
}

func (s *Store) appendHistory(t model.HistoryType, sub model.Subscription) {
	entry := model.HistoryEntry{
		ID:     s.newID(),
		Type:   t,
		Name:   sub.Name,
		Date:   s.now().UTC(),
		Amount: sub.Amount,
		Cycle:  sub.Cycle,
	}
	// most recent first
	s.history = append([]model.HistoryEntry{entry}, s.history...)
}

func (s *Store) indexOf(id string) int {
	for i := range s.subscriptions {
		if s.subscriptions[i].ID == id {
			return i
		}
	}
	return -1
}

// encode snapshots the named slots' current values as pending writes.
func (s *Store) encode(slots ...storage.Slot) []Write {
	writes := make([]Write, 0, len(slots))
	for _, slot := range slots {
		var v any
		switch slot {
		case storage.SlotSubscriptions:
			if s.subscriptions == nil {
				v = []model.Subscription{}
			} else {
				v = s.subscriptions
			}
		case storage.SlotHistory:
			if s.history == nil {
				v = []model.HistoryEntry{}
			} else {
				v = s.history
			}
		case storage.SlotIncome:
			v = s.income
		case storage.SlotLanguage:
			v = s.language
		case storage.SlotDarkMode:
			v = s.darkMode
		}
		data, err := json.Marshal(v)
		if err != nil {
			s.log.Error("encode slot failed", "slot", slot, "err", err)
			continue
		}
		writes = append(writes, Write{Slot: slot, Data: data})
	}
	return writes
}

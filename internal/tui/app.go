// Package tui renders the store's state and drives its actions. All
// mutations run on the Bubble Tea event loop; only persistence and file IO
// run in commands.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/subsco/subsco/internal/backup"
	"github.com/subsco/subsco/internal/config"
	"github.com/subsco/subsco/internal/i18n"
	"github.com/subsco/subsco/internal/metrics"
	"github.com/subsco/subsco/internal/model"
	"github.com/subsco/subsco/internal/store"
)

// App ties together views.
type App struct {
	ctx context.Context
	cfg config.Config
	st  *store.Store
	log *slog.Logger
	loc *time.Location

	state  appState
	modal  modalState
	width  int
	cursor int
	status string

	form        formState
	deletingID  string
	importPath  string
	incomeInput string

	now func() time.Time
}

type appState string

const (
	viewList     appState = "list"
	viewMatrix   appState = "matrix"
	viewAnalysis appState = "analysis"
	viewHistory  appState = "history"
	viewSettings appState = "settings"
)

var tabOrder = []appState{viewList, viewMatrix, viewAnalysis, viewHistory, viewSettings}

type modalState string

const (
	modalNone          modalState = ""
	modalForm          modalState = "form"
	modalConfirmDelete modalState = "confirmDelete"
	modalConfirmReset  modalState = "confirmReset"
	modalImport        modalState = "import"
	modalIncome        modalState = "income"
)

// formState is the subscription add/edit modal buffer. Category,
// satisfaction and frequency are adjusted with left/right; the text fields
// are typed.
type formState struct {
	editingID    string // empty means new
	field        int
	name         string
	amount       string
	category     int // index into model.Categories
	cycle        model.Cycle
	billing      string
	satisfaction int
	frequency    int
	preset       int
}

const formFieldCount = 7

func New(ctx context.Context, cfg config.Config, st *store.Store, log *slog.Logger, loc *time.Location) *App {
	if loc == nil {
		loc = time.Local
	}
	return &App{
		ctx:   ctx,
		cfg:   cfg,
		st:    st,
		log:   log,
		loc:   loc,
		state: viewList,
		width: 80,
		now:   time.Now,
	}
}

func (a *App) Init() tea.Cmd {
	return a.loadCmd()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
	case tea.KeyMsg:
		if !a.st.Loaded() {
			// reads must settle before any mutation; only quitting works
			if s := m.String(); s == "q" || s == "ctrl+c" {
				return a, tea.Quit
			}
			return a, nil
		}
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		return a.handleKey(m)
	case loadedMsg:
		a.st.ApplyState(m.state)
		a.status = ""
	case importFileMsg:
		return a.applyImport(m)
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = "error: " + m.Error()
	case persistedMsg:
		// fire-and-forget write settled; nothing to show
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "1", "2", "3", "4", "5":
		idx := int(m.String()[0] - '1')
		a.switchTab(tabOrder[idx])
		return a, nil
	case "tab":
		for i, s := range tabOrder {
			if s == a.state {
				a.switchTab(tabOrder[(i+1)%len(tabOrder)])
				break
			}
		}
		return a, nil
	}

	switch a.state {
	case viewList:
		return a.handleListKey(m)
	case viewAnalysis:
		if m.String() == "i" {
			a.modal = modalIncome
			a.incomeInput = strconv.FormatInt(a.st.MonthlyIncome(), 10)
		}
	case viewSettings:
		return a.handleSettingsKey(m)
	}
	return a, nil
}

// rows is the list view's cursor space: active subscriptions first, then paused.
func (a *App) rows() []model.Subscription {
	return append(a.st.Active(), a.st.Paused()...)
}

func (a *App) handleListKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := a.rows()
	switch m.String() {
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(rows)-1 {
			a.cursor++
		}
	case "n":
		a.openForm(nil)
	case "e":
		if len(rows) > 0 {
			sub := rows[a.cursor]
			a.openForm(&sub)
		}
	case "d":
		if len(rows) > 0 {
			a.deletingID = rows[a.cursor].ID
			a.modal = modalConfirmDelete
		}
	case "p":
		if len(rows) > 0 {
			writes, err := a.st.TogglePauseSubscription(rows[a.cursor].ID)
			if err != nil {
				return a, func() tea.Msg { return errMsg{err} }
			}
			if a.cursor >= len(a.rows())-1 {
				a.cursor = max(0, len(a.rows())-1)
			}
			return a, a.persistCmd(writes)
		}
	case "o":
		switch a.st.SortMode() {
		case model.SortByDate:
			a.st.SetSortMode(model.SortByPrice)
		case model.SortByPrice:
			a.st.SetSortMode(model.SortBySatisfaction)
		default:
			a.st.SetSortMode(model.SortByDate)
		}
	case "c":
		if a.st.DisplayCycle() == model.DisplayMonthly {
			a.st.SetDisplayCycle(model.DisplayYearly)
		} else {
			a.st.SetDisplayCycle(model.DisplayMonthly)
		}
	}
	return a, nil
}

func (a *App) handleSettingsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "l":
		next := model.LanguageEN
		if a.st.Language() == model.LanguageEN {
			next = model.LanguageJA
		}
		writes, err := a.st.SetLanguage(next)
		if err != nil {
			return a, func() tea.Msg { return errMsg{err} }
		}
		return a, a.persistCmd(writes)
	case "m":
		writes, err := a.st.ToggleDarkMode()
		if err != nil {
			return a, func() tea.Msg { return errMsg{err} }
		}
		return a, a.persistCmd(writes)
	case "b":
		return a, a.exportCmd()
	case "r":
		a.modal = modalImport
		a.importPath = ""
	case "x":
		a.modal = modalConfirmReset
	}
	return a, nil
}

func (a *App) switchTab(s appState) {
	a.state = s
	a.cursor = 0
	a.status = ""
}

// openForm prepares the modal, either blank for a new subscription or
// prefilled from an existing one.
func (a *App) openForm(sub *model.Subscription) {
	if sub == nil {
		a.form = formState{
			cycle:        model.CycleMonthly,
			billing:      model.DateOf(a.now().In(a.loc)).String(),
			satisfaction: 3,
			frequency:    3,
			preset:       -1,
		}
	} else {
		catIdx := 0
		for i, c := range model.Categories {
			if c == sub.Category {
				catIdx = i
			}
		}
		a.form = formState{
			editingID:    sub.ID,
			name:         sub.Name,
			amount:       strconv.FormatInt(sub.Amount, 10),
			category:     catIdx,
			cycle:        sub.Cycle,
			billing:      sub.NextBilling.String(),
			satisfaction: sub.Satisfaction,
			frequency:    sub.Frequency,
			preset:       -1,
		}
	}
	a.modal = modalForm
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalForm:
		return a.handleFormKey(m)
	case modalConfirmDelete:
		switch m.String() {
		case "y", "Y":
			a.modal = modalNone
			id := a.deletingID
			a.deletingID = ""
			writes, err := a.st.DeleteSubscription(id)
			if err != nil {
				return a, func() tea.Msg { return errMsg{err} }
			}
			if a.cursor >= len(a.rows()) {
				a.cursor = max(0, len(a.rows())-1)
			}
			return a, a.persistCmd(writes)
		case "n", "N", "esc":
			a.modal = modalNone
			a.deletingID = ""
		}
	case modalConfirmReset:
		switch m.String() {
		case "y", "Y":
			a.modal = modalNone
			if err := a.st.ResetAll(); err != nil {
				return a, func() tea.Msg { return errMsg{err} }
			}
			a.cursor = 0
			return a, a.clearStorageCmd()
		case "n", "N", "esc":
			a.modal = modalNone
		}
	case modalImport:
		switch m.Type {
		case tea.KeyEsc:
			a.modal = modalNone
		case tea.KeyEnter:
			path := strings.TrimSpace(a.importPath)
			if path == "" {
				a.status = "enter a backup path"
				return a, nil
			}
			a.modal = modalNone
			return a, readBackupCmd(path)
		case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
			if len(a.importPath) > 0 {
				a.importPath = a.importPath[:len(a.importPath)-1]
			}
		case tea.KeySpace:
			a.importPath += " "
		case tea.KeyRunes:
			a.importPath += string(m.Runes)
		}
	case modalIncome:
		switch m.Type {
		case tea.KeyEsc:
			a.modal = modalNone
		case tea.KeyEnter:
			a.modal = modalNone
			income, err := strconv.ParseInt(strings.TrimSpace(a.incomeInput), 10, 64)
			if err != nil || income < 0 {
				a.status = "income must be a non-negative number"
				return a, nil
			}
			writes, err := a.st.SetMonthlyIncome(income)
			if err != nil {
				return a, func() tea.Msg { return errMsg{err} }
			}
			return a, a.persistCmd(writes)
		case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
			if len(a.incomeInput) > 0 {
				a.incomeInput = a.incomeInput[:len(a.incomeInput)-1]
			}
		case tea.KeyRunes:
			a.incomeInput += string(m.Runes)
		}
	}
	return a, nil
}

func (a *App) handleFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &a.form
	switch m.String() {
	case "esc":
		a.modal = modalNone
		return a, nil
	case "up", "shift+tab":
		if f.field > 0 {
			f.field--
		}
		return a, nil
	case "down", "tab":
		if f.field < formFieldCount-1 {
			f.field++
		}
		return a, nil
	case "enter":
		return a.submitForm()
	case "left":
		a.adjustFormField(-1)
		return a, nil
	case "right":
		a.adjustFormField(1)
		return a, nil
	}
	// text entry for name, amount and billing date
	switch f.field {
	case 0:
		switch m.Type {
		case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
			if len(f.name) > 0 {
				f.name = f.name[:len(f.name)-1]
			}
		case tea.KeySpace:
			f.name += " "
		case tea.KeyRunes:
			f.name += string(m.Runes)
		}
	case 1:
		switch m.Type {
		case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
			if len(f.amount) > 0 {
				f.amount = f.amount[:len(f.amount)-1]
			}
		case tea.KeyRunes:
			f.amount += string(m.Runes)
		}
	case 4:
		switch m.Type {
		case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
			if len(f.billing) > 0 {
				f.billing = f.billing[:len(f.billing)-1]
			}
		case tea.KeyRunes:
			f.billing += string(m.Runes)
		}
	}
	return a, nil
}

// adjustFormField moves the focused enum or rating field by delta. On an
// empty name field it cycles the service presets instead.
func (a *App) adjustFormField(delta int) {
	f := &a.form
	switch f.field {
	case 0:
		n := len(i18n.ServicePresets)
		f.preset = ((f.preset+delta)%n + n) % n
		f.name = i18n.ServicePresets[f.preset]
	case 2:
		n := len(model.Categories)
		f.category = ((f.category+delta)%n + n) % n
	case 3:
		if f.cycle == model.CycleMonthly {
			f.cycle = model.CycleYearly
		} else {
			f.cycle = model.CycleMonthly
		}
	case 5:
		f.satisfaction = clampRating(f.satisfaction + delta)
	case 6:
		f.frequency = clampRating(f.frequency + delta)
	}
}

func clampRating(v int) int {
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}

func (a *App) submitForm() (tea.Model, tea.Cmd) {
	f := a.form
	t := a.t()

	name := strings.TrimSpace(f.name)
	amount, err := strconv.ParseInt(strings.TrimSpace(f.amount), 10, 64)
	if err != nil || amount <= 0 {
		a.status = t.FormAmount + ": invalid"
		return a, nil
	}
	billing, err := model.ParseDate(strings.TrimSpace(f.billing))
	if err != nil {
		a.status = t.FormBilling + ": invalid"
		return a, nil
	}

	if f.editingID == "" {
		draft := store.Draft{
			Name:         name,
			Amount:       amount,
			Category:     model.Categories[f.category],
			Cycle:        f.cycle,
			NextBilling:  billing,
			Satisfaction: f.satisfaction,
			Frequency:    f.frequency,
		}
		dup := a.st.FindSimilar(name)
		writes, err := a.st.AddSubscription(draft)
		if err != nil {
			a.status = err.Error()
			return a, nil
		}
		a.modal = modalNone
		if dup != nil {
			a.status = fmt.Sprintf("added (similar to existing %q)", dup.Name)
		}
		return a, a.persistCmd(writes)
	}

	cat := model.Categories[f.category]
	writes, err := a.st.UpdateSubscription(f.editingID, store.Patch{
		Name:         &name,
		Amount:       &amount,
		Category:     &cat,
		Cycle:        &f.cycle,
		NextBilling:  &billing,
		Satisfaction: &f.satisfaction,
		Frequency:    &f.frequency,
	})
	if err != nil {
		a.status = err.Error()
		return a, nil
	}
	a.modal = modalNone
	return a, a.persistCmd(writes)
}

func (a *App) applyImport(m importFileMsg) (tea.Model, tea.Cmd) {
	t := a.t()
	if m.err != nil {
		a.status = t.ImportError + ": " + m.err.Error()
		return a, nil
	}
	res, writes, err := a.st.ImportSnapshot(m.data)
	if err != nil {
		return a, func() tea.Msg { return errMsg{err} }
	}
	if !res.OK {
		a.status = t.ImportError + ": " + strings.Join(res.Errors, "; ")
		return a, nil
	}
	a.cursor = 0
	if len(res.Errors) > 0 {
		a.status = fmt.Sprintf("%s: %d records skipped (%s)", t.Restore, len(res.Errors), strings.Join(res.Errors, ", "))
	} else {
		a.status = t.Restore + " OK"
	}
	return a, a.persistCmd(writes)
}

// commands

// loadCmd reads the slots off the event loop; the store itself is only
// touched when Update applies the result, so View never races the reads.
func (a *App) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{state: a.st.ReadState(a.ctx)}
	}
}

func (a *App) persistCmd(writes []store.Write) tea.Cmd {
	if len(writes) == 0 {
		return nil
	}
	return func() tea.Msg {
		if err := a.st.Persist(a.ctx, writes); err != nil {
			return errMsg{fmt.Errorf("save failed (data kept in memory): %w", err)}
		}
		return persistedMsg{}
	}
}

func (a *App) clearStorageCmd() tea.Cmd {
	return func() tea.Msg {
		if err := a.st.ClearStorage(a.ctx); err != nil {
			return errMsg{err}
		}
		return statusMsg("reset done")
	}
}

func (a *App) exportCmd() tea.Cmd {
	snap := a.st.ExportSnapshot()
	name := backup.Filename(a.now().In(a.loc))
	return func() tea.Msg {
		data, err := backup.Export(snap)
		if err != nil {
			return errMsg{err}
		}
		if err := os.WriteFile(name, data, 0o600); err != nil {
			return errMsg{err}
		}
		return statusMsg("saved " + name)
	}
}

func readBackupCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		return importFileMsg{data: data, err: err}
	}
}

// messages

type loadedMsg struct {
	state store.LoadedState
}

type persistedMsg struct{}

type statusMsg string

type errMsg struct{ error }

type importFileMsg struct {
	data []byte
	err  error
}

func (a *App) t() i18n.Table {
	return i18n.For(a.st.Language())
}

func (a *App) monthlyAmountLabel(t i18n.Table, sub model.Subscription) string {
	if a.st.DisplayCycle() == model.DisplayYearly {
		return t.Currency + formatAmount(metrics.YearlyEquivalent(sub)) + " " + t.PerYear
	}
	return t.Currency + formatAmount(metrics.MonthlyEquivalent(sub)) + " " + t.PerMonth
}

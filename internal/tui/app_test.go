package tui

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/subsco/subsco/internal/config"
	"github.com/subsco/subsco/internal/model"
	"github.com/subsco/subsco/internal/storage"
	"github.com/subsco/subsco/internal/store"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, storage.RunMigrations(path))
	db, err := storage.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.New(db, logger, model.LanguageJA)
	require.NoError(t, st.Load(context.Background()))

	cfg := config.Config{UI: config.UIConfig{DateFormat: "2006-01-02"}}
	a := New(context.Background(), cfg, st, logger, time.UTC)
	a.now = func() time.Time {
		return time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)
	}
	return a
}

func press(t *testing.T, a *App, keys ...string) *App {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ := a.Update(msg)
		a = m.(*App)
	}
	return a
}

func addViaForm(t *testing.T, a *App, name, amount string) *App {
	t.Helper()
	a = press(t, a, "n")
	require.Equal(t, modalForm, a.modal)
	a = press(t, a, name, "down", amount)
	// category, cycle and billing keep their defaults; ratings stay at 3
	a = press(t, a, "enter")
	require.Equal(t, modalNone, a.modal)
	return a
}

func TestTabKeys(t *testing.T) {
	a := newTestApp(t)

	a = press(t, a, "2")
	require.Equal(t, viewMatrix, a.state)
	a = press(t, a, "5")
	require.Equal(t, viewSettings, a.state)
	a = press(t, a, "tab")
	require.Equal(t, viewList, a.state)
}

func TestAddSubscriptionViaForm(t *testing.T) {
	a := newTestApp(t)
	a = addViaForm(t, a, "Netflix", "1500")

	subs := a.st.Subscriptions()
	require.Len(t, subs, 1)
	require.Equal(t, "Netflix", subs[0].Name)
	require.Equal(t, int64(1500), subs[0].Amount)
	require.Equal(t, model.CycleMonthly, subs[0].Cycle)
	// billing date was prefilled with today
	require.Equal(t, "2025-06-10", subs[0].NextBilling.String())
	require.Len(t, a.st.History(), 1)
}

func TestFormRejectsBadAmount(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, "n", "Netflix", "down", "abc", "enter")

	require.Equal(t, modalForm, a.modal, "modal stays open on invalid input")
	require.NotEmpty(t, a.status)
	require.Empty(t, a.st.Subscriptions())
}

func TestFormPresetCycling(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, "n", "right")
	require.Equal(t, "Netflix", a.form.name)
	a = press(t, a, "right")
	require.Equal(t, "Spotify", a.form.name)
	a = press(t, a, "left", "left")
	require.Equal(t, "Xbox Game Pass", a.form.name, "preset cycling wraps")
}

func TestEditKeepsIdentityAndHistory(t *testing.T) {
	a := newTestApp(t)
	a = addViaForm(t, a, "Netflix", "1500")
	id := a.st.Subscriptions()[0].ID

	a = press(t, a, "e")
	require.Equal(t, modalForm, a.modal)
	require.Equal(t, id, a.form.editingID)
	a = press(t, a, "down", "backspace", "backspace", "backspace", "backspace", "1980", "enter")

	subs := a.st.Subscriptions()
	require.Equal(t, id, subs[0].ID)
	require.Equal(t, int64(1980), subs[0].Amount)
	require.Len(t, a.st.History(), 1, "edits record no history")
}

func TestDeleteNeedsConfirm(t *testing.T) {
	a := newTestApp(t)
	a = addViaForm(t, a, "Netflix", "1500")

	a = press(t, a, "d")
	require.Contains(t, a.View(), "「Netflix」を解約しますか？")
	a = press(t, a, "n")
	require.Len(t, a.st.Subscriptions(), 1, "declining keeps the subscription")

	a = press(t, a, "d", "y")
	require.Empty(t, a.st.Subscriptions())
	require.Len(t, a.st.History(), 2)
	require.Equal(t, model.HistoryCancel, a.st.History()[0].Type)
}

func TestPauseKeyToggles(t *testing.T) {
	a := newTestApp(t)
	a = addViaForm(t, a, "Netflix", "1500")

	a = press(t, a, "p")
	require.True(t, a.st.Subscriptions()[0].IsPaused)
	a = press(t, a, "p")
	require.False(t, a.st.Subscriptions()[0].IsPaused)
}

func TestIncomeModal(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, "3")
	require.Equal(t, viewAnalysis, a.state)

	a = press(t, a, "i", "100000", "enter")
	require.Equal(t, int64(100000), a.st.MonthlyIncome())
	require.Equal(t, modalNone, a.modal)
}

func TestIncomeModalRejectsGarbage(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, "3", "i", "lots", "enter")
	require.Equal(t, int64(0), a.st.MonthlyIncome())
	require.NotEmpty(t, a.status)
}

func TestSettingsToggles(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, "5")

	a = press(t, a, "l")
	require.Equal(t, model.LanguageEN, a.st.Language())
	a = press(t, a, "l")
	require.Equal(t, model.LanguageJA, a.st.Language())

	a = press(t, a, "m")
	require.True(t, a.st.DarkMode())
}

func TestSortAndCycleKeys(t *testing.T) {
	a := newTestApp(t)

	a = press(t, a, "o")
	require.Equal(t, model.SortByPrice, a.st.SortMode())
	a = press(t, a, "o", "o")
	require.Equal(t, model.SortByDate, a.st.SortMode())

	a = press(t, a, "c")
	require.Equal(t, model.DisplayYearly, a.st.DisplayCycle())
}

func TestMutationsBlockedUntilLoaded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, storage.RunMigrations(path))
	db, err := storage.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.New(db, logger, model.LanguageJA)
	a := New(context.Background(), config.Config{}, st, logger, time.UTC)

	a = press(t, a, "n")
	require.Equal(t, modalNone, a.modal)
	require.Contains(t, a.View(), "loading")

	// the load command reads without touching the store; only applying the
	// resulting message on the event loop marks it loaded
	msg := a.Init()()
	require.IsType(t, loadedMsg{}, msg)
	require.False(t, st.Loaded())
	m, _ := a.Update(msg)
	a = m.(*App)
	require.True(t, st.Loaded())

	a = press(t, a, "n")
	require.Equal(t, modalForm, a.modal)
}

func TestListViewRendersCards(t *testing.T) {
	a := newTestApp(t)
	a = addViaForm(t, a, "Netflix", "1500")

	out := a.View()
	require.Contains(t, out, "Netflix")
	require.Contains(t, out, "1,500")
	require.Contains(t, out, "合計支出")
}

func TestPausedExcludedFromTotals(t *testing.T) {
	a := newTestApp(t)
	a = addViaForm(t, a, "Netflix", "1500")
	a = addViaForm(t, a, "Spotify", "980")
	a = press(t, a, "p") // pause the first card

	out := a.View()
	require.Contains(t, out, "980")
	require.NotContains(t, out, "2,480")
	require.Contains(t, out, "停止中")
}

func TestHistoryViewShowsEntries(t *testing.T) {
	a := newTestApp(t)
	a = addViaForm(t, a, "Netflix", "1500")
	a = press(t, a, "d", "y", "4")

	out := a.View()
	require.Contains(t, out, "解約")
	require.Contains(t, out, "新規契約")
	require.Contains(t, out, "2025-06-10")
}

func TestMatrixViewPlacesService(t *testing.T) {
	a := newTestApp(t)
	a = addViaForm(t, a, "Netflix", "1500")
	a = press(t, a, "2")

	out := a.View()
	require.Contains(t, out, "Netflix")
	require.True(t, strings.Contains(out, "満足度"))
}

func TestResetClearsEverything(t *testing.T) {
	a := newTestApp(t)
	a = addViaForm(t, a, "Netflix", "1500")
	a = press(t, a, "3", "i", "100000", "enter")

	a = press(t, a, "5", "x", "y")
	require.Empty(t, a.st.Subscriptions())
	require.Empty(t, a.st.History())
	require.Equal(t, int64(0), a.st.MonthlyIncome())
}

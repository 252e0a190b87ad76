package tui

import (
	"fmt"
	"strings"

	"github.com/subsco/subsco/internal/i18n"
	"github.com/subsco/subsco/internal/metrics"
	"github.com/subsco/subsco/internal/model"
)

func (a *App) View() string {
	t := a.t()
	th := newTheme(a.st.DarkMode())

	if !a.st.Loaded() {
		return th.muted.Render("loading...")
	}

	var b strings.Builder
	b.WriteString(th.title.Render(t.AppTitle) + "  " + th.muted.Render(t.AppDesc) + "\n")
	b.WriteString(a.renderTabs(t, th) + "\n\n")

	switch a.state {
	case viewList:
		b.WriteString(a.renderList(t, th))
	case viewMatrix:
		b.WriteString(a.renderMatrix(t, th))
	case viewAnalysis:
		b.WriteString(a.renderAnalysis(t, th))
	case viewHistory:
		b.WriteString(a.renderHistory(t, th))
	case viewSettings:
		b.WriteString(a.renderSettings(t, th))
	}

	if a.modal != modalNone {
		b.WriteString("\n" + a.renderModal(t, th))
	}
	if a.status != "" {
		b.WriteString("\n" + th.warn.Render(a.status))
	}
	b.WriteString("\n" + th.muted.Render(a.footerHint(t)))
	return b.String()
}

func (a *App) renderTabs(t i18n.Table, th theme) string {
	labels := []string{t.TabList, t.TabMatrix, t.TabAnalysis, t.TabHistory, t.TabSettings}
	parts := make([]string, len(tabOrder))
	for i, s := range tabOrder {
		label := fmt.Sprintf("[%d] %s", i+1, labels[i])
		if s == a.state {
			parts[i] = th.tabOn.Render(label)
		} else {
			parts[i] = th.tabOff.Render(label)
		}
	}
	return strings.Join(parts, "  ")
}

func (a *App) footerHint(t i18n.Table) string {
	switch {
	case a.modal == modalForm:
		return "tab/↑↓ field · ←/→ adjust · enter " + t.FormSave + " · esc " + t.FormCancel
	case a.modal != modalNone:
		return "enter confirm · esc cancel"
	case a.state == viewList:
		return "n new · e edit · d delete · p pause · o sort · c cycle · tab view · q quit"
	case a.state == viewAnalysis:
		return "i income · tab view · q quit"
	case a.state == viewSettings:
		return "l language · m dark mode · b backup · r restore · x reset · q quit"
	default:
		return "tab view · q quit"
	}
}

func (a *App) renderList(t i18n.Table, th theme) string {
	active := a.st.Active()
	paused := a.st.Paused()
	var b strings.Builder

	cycleLabel := t.CycleMonthly
	total := metrics.TotalMonthly(a.st.Subscriptions())
	if a.st.DisplayCycle() == model.DisplayYearly {
		cycleLabel = t.CycleYearly
		total = metrics.TotalYearly(a.st.Subscriptions())
	}
	summary := fmt.Sprintf("%s [%s] %s%s   %s: %d%s",
		t.StatsTotal, cycleLabel, t.Currency, formatAmount(total),
		t.StatsActive, len(active), t.StatsItems)
	b.WriteString(th.box.Render(summary) + "\n")
	b.WriteString(th.muted.Render(a.sortLabel(t)) + "\n\n")

	if len(active) == 0 && len(paused) == 0 {
		b.WriteString(th.muted.Render(t.NoSubs) + "\n")
		b.WriteString(th.muted.Render(t.AddFirst + "  [n]"))
		return b.String()
	}

	for i, sub := range active {
		b.WriteString(a.renderCard(t, th, sub, i == a.cursor) + "\n")
	}
	if len(paused) > 0 {
		b.WriteString("\n" + th.muted.Render("-- "+t.StatusPaused+" --") + "\n")
		for i, sub := range paused {
			b.WriteString(a.renderCard(t, th, sub, len(active)+i == a.cursor) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) sortLabel(t i18n.Table) string {
	switch a.st.SortMode() {
	case model.SortByPrice:
		return t.SortPrice
	case model.SortBySatisfaction:
		return t.SortSat
	default:
		return t.SortDate
	}
}

func (a *App) renderCard(t i18n.Table, th theme, sub model.Subscription, selected bool) string {
	marker := "  "
	nameStyle := th.text
	if selected {
		marker = "> "
		nameStyle = th.selected
	}

	var due string
	if sub.IsPaused {
		due = th.muted.Render(t.StatusPaused)
	} else {
		days := metrics.DaysUntilBilling(sub.NextBilling, a.now().In(a.loc))
		switch metrics.Urgency(days) {
		case metrics.UrgencyOverdue:
			due = th.danger.Render(t.CardExpired)
		case metrics.UrgencyDueToday:
			due = th.danger.Render(t.CardToday)
		case metrics.UrgencyCritical:
			due = th.danger.Render(fmt.Sprintf(t.CardDaysLeft, days))
		case metrics.UrgencySoon:
			due = th.warn.Render(fmt.Sprintf(t.CardDaysLeft, days))
		default:
			due = th.muted.Render(fmt.Sprintf(t.CardDaysLeft, days))
		}
	}

	detail := fmt.Sprintf("%s · %s %s · %s %s",
		t.Categories[sub.Category],
		t.FormSat, t.SatLevels[sub.Satisfaction-1],
		t.FormFreq, t.FreqLevels[sub.Frequency-1])
	return fmt.Sprintf("%s%s  %s  %s\n    %s",
		marker, nameStyle.Render(sub.Name), th.text.Render(a.monthlyAmountLabel(t, sub)), due,
		th.muted.Render(detail))
}

// renderMatrix lays active subscriptions on a satisfaction x frequency grid.
// Both axes run high to low so the bottom-right corner collects the
// low-satisfaction, low-frequency services worth reviewing first.
func (a *App) renderMatrix(t i18n.Table, th theme) string {
	const colW = 14
	subs := a.st.Subscriptions()
	var b strings.Builder

	header := strings.Repeat(" ", 12)
	for sat := 5; sat >= 1; sat-- {
		header += fmt.Sprintf("%-*s", colW, t.SatLevels[sat-1])
	}
	b.WriteString(th.muted.Render(t.MatrixAxisY+" \\ "+t.MatrixAxisX) + "\n")
	b.WriteString(th.text.Render(header) + "\n")

	for freq := 5; freq >= 1; freq-- {
		row := fmt.Sprintf("%-12s", t.FreqLevels[freq-1])
		for sat := 5; sat >= 1; sat-- {
			cell := metrics.MatrixCell(subs, sat, freq)
			names := make([]string, 0, len(cell))
			for _, sub := range cell {
				names = append(names, truncate(sub.Name, colW-2))
			}
			content := strings.Join(names, ",")
			if content == "" {
				content = "·"
			}
			styled := th.text
			if score := metrics.ReviewScore(sat, freq); len(cell) > 0 && score >= 6 {
				styled = th.danger
			} else if len(cell) > 0 && score >= 4 {
				styled = th.warn
			} else if len(cell) == 0 {
				styled = th.muted
			}
			row += styled.Render(fmt.Sprintf("%-*s", colW, truncate(content, colW-1)))
		}
		b.WriteString(row + "\n")
	}
	b.WriteString("\n" + th.muted.Render(t.MatrixHint))
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

func (a *App) renderAnalysis(t i18n.Table, th theme) string {
	subs := a.st.Subscriptions()
	total := metrics.TotalMonthly(subs)
	income := a.st.MonthlyIncome()
	var b strings.Builder

	ratio, band := metrics.BudgetRatio(income, total)
	var budget string
	if band == metrics.BudgetNotApplicable {
		budget = fmt.Sprintf("%s\n%s  [i]", t.BudgetCheck, t.IncomeLabel)
	} else {
		msg := t.BudgetMessages[band-metrics.BudgetComfortable]
		style := th.success
		switch band {
		case metrics.BudgetElevated:
			style = th.warn
		case metrics.BudgetExcessive:
			style = th.danger
		}
		budget = fmt.Sprintf("%s\n%s: %s%s   %s: %.1f%%\n%s",
			t.BudgetCheck,
			t.IncomeLabel, t.Currency, formatAmount(income),
			t.Ratio, ratio,
			style.Render(msg))
	}
	b.WriteString(th.box.Render(budget) + "\n\n")

	width := min(a.width, 72)
	catData := make([]chartPoint, 0)
	for _, ct := range metrics.CategoryBreakdown(subs) {
		catData = append(catData, chartPoint{Label: t.Categories[ct.Category], Value: ct.Total})
	}
	b.WriteString(barChart(th.title.Render(t.ByCategory), catData, width) + "\n\n")

	satData := make([]chartPoint, 0)
	for _, st := range metrics.SatisfactionBreakdown(subs) {
		satData = append(satData, chartPoint{Label: t.SatLevels[st.Level-1], Value: st.Total})
	}
	b.WriteString(barChart(th.title.Render(t.BySatisfaction), satData, width) + "\n\n")

	b.WriteString(th.title.Render(t.SpendingRanking) + "\n")
	ranking := metrics.CategoryRanking(subs)
	if len(ranking) == 0 {
		b.WriteString(th.muted.Render("  (none)"))
	}
	for i, ct := range ranking {
		b.WriteString(fmt.Sprintf("  %d. %-12s %s%s/%s\n",
			i+1, t.Categories[ct.Category], t.Currency, formatAmount(ct.Total), t.PerMonth))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) renderHistory(t i18n.Table, th theme) string {
	entries := a.st.History()
	var b strings.Builder
	b.WriteString(th.title.Render(t.HistoryTitle) + "\n\n")
	if len(entries) == 0 {
		b.WriteString(th.muted.Render(t.NoHistory))
		return b.String()
	}
	for _, e := range entries {
		var label string
		style := th.text
		switch e.Type {
		case model.HistoryCancel:
			label, style = t.LabelCancel, th.danger
		case model.HistoryResume:
			label, style = t.LabelResume, th.success
		default:
			label = t.LabelNew
		}
		per := t.PerMonth
		if e.Cycle == model.CycleYearly {
			per = t.PerYear
		}
		b.WriteString(fmt.Sprintf("%s  %s %s  %s%s/%s\n",
			th.muted.Render(e.Date.In(a.loc).Format(a.cfg.UI.DateFormat)),
			style.Render(label), e.Name,
			t.Currency, formatAmount(e.Amount), per))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) renderSettings(t i18n.Table, th theme) string {
	langName := "日本語"
	if a.st.Language() == model.LanguageEN {
		langName = "English"
	}
	mode := "OFF"
	if a.st.DarkMode() {
		mode = "ON"
	}
	var b strings.Builder
	b.WriteString(th.title.Render(t.SettingsTitle) + "\n\n")
	b.WriteString(fmt.Sprintf("  %-16s %s  [l]\n", t.Language, th.text.Render(langName)))
	b.WriteString(fmt.Sprintf("  %-16s %s  [m]\n", t.DarkMode, th.text.Render(mode)))
	b.WriteString("\n" + th.title.Render(t.DataManagement) + "\n\n")
	b.WriteString(fmt.Sprintf("  %s [b]   %s [r]   %s [x]\n", t.Backup, t.Restore, t.Reset))
	b.WriteString("\n" + th.muted.Render("  "+t.ResetWarning))
	return b.String()
}

func (a *App) renderModal(t i18n.Table, th theme) string {
	switch a.modal {
	case modalForm:
		return th.box.Render(a.renderForm(t, th))
	case modalConfirmDelete:
		name := ""
		for _, sub := range a.st.Subscriptions() {
			if sub.ID == a.deletingID {
				name = sub.Name
			}
		}
		return th.box.Render(fmt.Sprintf(t.DeleteConfirm+" (y/n)", name))
	case modalConfirmReset:
		return th.box.Render(th.danger.Render(t.ResetWarning) + " (y/n)")
	case modalImport:
		return th.box.Render(t.Restore + "\n" + t.FormName + ": " + a.importPath + "▌")
	case modalIncome:
		return th.box.Render(t.IncomeLabel + "\n" + t.Currency + " " + a.incomeInput + "▌")
	}
	return ""
}

func (a *App) renderForm(t i18n.Table, th theme) string {
	f := a.form
	title := t.FormTitle
	if f.editingID != "" {
		title = t.FormEditTitle
	}
	cycleLabel := t.CycleMonthly
	if f.cycle == model.CycleYearly {
		cycleLabel = t.CycleYearly
	}
	lines := []struct {
		label string
		value string
	}{
		{t.FormName, f.name + "▌"},
		{t.FormAmount, f.amount + "▌"},
		{t.FormCategory, "< " + t.Categories[model.Categories[f.category]] + " >"},
		{t.FormCycle, "< " + cycleLabel + " >"},
		{t.FormBilling, f.billing + "▌"},
		{t.FormSat, "< " + t.SatLevels[f.satisfaction-1] + " >"},
		{t.FormFreq, "< " + t.FreqLevels[f.frequency-1] + " >"},
	}
	var b strings.Builder
	b.WriteString(th.title.Render(title) + "\n")
	for i, line := range lines {
		marker := "  "
		style := th.text
		if i == f.field {
			marker = "> "
			style = th.selected
		}
		b.WriteString(fmt.Sprintf("%s%-16s %s\n", marker, line.label, style.Render(line.value)))
	}
	b.WriteString(th.muted.Render(fmt.Sprintf("[enter] %s  [esc] %s", t.FormSave, t.FormCancel)))
	return b.String()
}

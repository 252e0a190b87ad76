package tui

import (
	"fmt"
	"strings"
)

type chartPoint struct {
	Label string
	Value int64
}

// barChart renders labelled horizontal bars scaled to the largest value.
// An empty data set renders a single "none" placeholder row.
func barChart(title string, data []chartPoint, width int) string {
	if width <= 0 {
		return ""
	}
	if len(data) == 0 {
		return title + "\n  (none)"
	}
	var maxV int64
	labelW := 0
	for _, p := range data {
		if p.Value > maxV {
			maxV = p.Value
		}
		if w := len([]rune(p.Label)); w > labelW {
			labelW = w
		}
	}
	if maxV <= 0 {
		maxV = 1
	}
	barSpace := max(1, width-labelW-12)
	lines := []string{title}
	for _, p := range data {
		w := int(float64(p.Value) / float64(maxV) * float64(barSpace))
		if w < 1 {
			w = 1
		}
		lines = append(lines, fmt.Sprintf("%-*s %s %s", labelW, p.Label, strings.Repeat("█", w), formatAmount(p.Value)))
	}
	return strings.Join(lines, "\n")
}

// formatAmount groups digits in thousands: 1234567 -> "1,234,567".
func formatAmount(v int64) string {
	s := fmt.Sprintf("%d", v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{980, "980"},
		{1500, "1,500"},
		{1234567, "1,234,567"},
		{-1500, "-1,500"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, formatAmount(tt.in))
	}
}

func TestBarChartScalesToLargest(t *testing.T) {
	out := barChart("chart", []chartPoint{
		{Label: "a", Value: 100},
		{Label: "b", Value: 50},
	}, 40)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	require.Greater(t, strings.Count(lines[1], "█"), strings.Count(lines[2], "█"))
	require.Contains(t, lines[1], "100")
}

func TestBarChartEmpty(t *testing.T) {
	require.Contains(t, barChart("chart", nil, 40), "(none)")
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "Netflix", truncate("Netflix", 10))
	require.Equal(t, "Netfli…", truncate("Netflix Premium", 7))
	require.Equal(t, "動画/音楽", truncate("動画/音楽", 5))
}

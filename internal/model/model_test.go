package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("2025-06-10")
	require.NoError(t, err)
	require.Equal(t, "2025-06-10", d.String())

	// Legacy backups store billing dates as full ISO timestamps.
	d, err = ParseDate("2025-06-10T09:30:00Z")
	require.NoError(t, err)
	require.Equal(t, "2025-06-10", d.String())
	require.Equal(t, 0, d.Hour())

	_, err = ParseDate("not-a-date")
	require.Error(t, err)
}

func TestDateJSONRoundTrip(t *testing.T) {
	t.Parallel()

	d := NewDate(2025, time.January, 1)
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `"2025-01-01"`, string(raw))

	var back Date
	require.NoError(t, json.Unmarshal(raw, &back))
	require.Equal(t, d, back)
}

func TestFlexIDNormalizesNumbers(t *testing.T) {
	t.Parallel()

	var id FlexID
	require.NoError(t, json.Unmarshal([]byte(`"abc"`), &id))
	require.Equal(t, FlexID("abc"), id)

	require.NoError(t, json.Unmarshal([]byte(`1`), &id))
	require.Equal(t, FlexID("1"), id)

	require.NoError(t, json.Unmarshal([]byte(`1699999999.25`), &id))
	require.Equal(t, FlexID("1699999999.25"), id)

	require.Error(t, json.Unmarshal([]byte(`true`), &id))
}

func TestEnumValidity(t *testing.T) {
	t.Parallel()

	require.True(t, CycleMonthly.Valid())
	require.False(t, Cycle("weekly").Valid())
	require.True(t, CategoryStreaming.Valid())
	require.False(t, Category("bogus").Valid())
	require.True(t, HistoryResume.Valid())
	require.False(t, HistoryType("edit").Valid())
	require.True(t, LanguageJA.Valid())
	require.False(t, Language("fr").Valid())
	require.Len(t, Categories, 9)
}

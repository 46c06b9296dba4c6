package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse("", date("2024-01-01"))
	require.ErrorIs(t, err, ErrInvalidRule)

	_, err = Parse("FREQ=SOMETIMES", date("2024-01-01"))
	require.ErrorIs(t, err, ErrInvalidRule)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate("FREQ=DAILY"))
	require.Error(t, Validate("not a rule"))
}

func TestDailySequence(t *testing.T) {
	rule, err := Parse("FREQ=DAILY;COUNT=3", date("2024-03-01"))
	require.NoError(t, err)

	var got []string
	for {
		occ, ok := rule.Next()
		if !ok {
			break
		}
		got = append(got, occ.Format(DateLayout))
	}
	require.Equal(t, []string{"2024-03-01", "2024-03-02", "2024-03-03"}, got)
}

func TestMonthlyAnchoredAtStart(t *testing.T) {
	rule, err := Parse("FREQ=MONTHLY;COUNT=2", date("2024-01-15"))
	require.NoError(t, err)

	first, ok := rule.Next()
	require.True(t, ok)
	require.Equal(t, "2024-01-15", first.Format(DateLayout))

	second, ok := rule.Next()
	require.True(t, ok)
	require.Equal(t, "2024-02-15", second.Format(DateLayout))

	_, ok = rule.Next()
	require.False(t, ok)
}

func TestOccurrenceSyncID(t *testing.T) {
	id := OccurrenceSyncID("rule-abc", date("2024-03-05"))
	require.Equal(t, "rule-abc:2024-03-05", id)

	// Same inputs always land on the same identifier.
	require.Equal(t, id, OccurrenceSyncID("rule-abc", date("2024-03-05")))
}

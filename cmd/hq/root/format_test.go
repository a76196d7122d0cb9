package root

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homequest/internal/engine"
	"homequest/internal/storage"
)

func TestParseDateFlag(t *testing.T) {
	today, err := engine.ParseDate("2025-01-31")
	require.NoError(t, err)

	d, err := parseDateFlag("", today)
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	d, err = parseDateFlag("Tomorrow", today)
	require.NoError(t, err)
	assert.Equal(t, "2025-02-01", d.String())

	d, err = parseDateFlag("2025-03-15", today)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-15", d.String())

	_, err = parseDateFlag("2025-02-30", today)
	assert.Error(t, err)
	_, err = parseDateFlag("next week", today)
	assert.Error(t, err)
}

func TestDescribeRecurrence(t *testing.T) {
	end := "2025-12-31"
	times := 4
	got := describeRecurrence(storage.Recurrence{Pattern: "weekly", Interval: 2, Weekdays: []int{1, 5}, EndDate: &end, MaxOccurrences: &times})
	assert.Contains(t, got, "every 2 weeks on mon,fri (until 2025-12-31, 4 times)")

	assert.Empty(t, describeRecurrence(storage.Recurrence{Pattern: "none", Interval: 1}))
}

package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homequest/internal/storage"
)

func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func datePtr(t *testing.T, s string) *Date {
	d := mustDate(t, s)
	return &d
}

func TestNextDueDate_Daily(t *testing.T) {
	next, ok := NextDueDate(mustDate(t, "2025-01-01"), Rule{Pattern: PatternDaily, Interval: 2})
	require.True(t, ok)
	assert.Equal(t, "2025-01-03", next.String())
}

func TestNextDueDate_None(t *testing.T) {
	_, ok := NextDueDate(mustDate(t, "2025-01-01"), Rule{Pattern: PatternNone, Interval: 1})
	assert.False(t, ok)
}

func TestNextDueDate_Weekly(t *testing.T) {
	monFri := []time.Weekday{time.Friday, time.Monday}
	cases := []struct {
		name     string
		current  string
		interval int
		weekdays []time.Weekday
		want     string
	}{
		{"later in same week", "2025-01-01", 1, monFri, "2025-01-03"},
		{"wraps to next week", "2025-01-03", 1, monFri, "2025-01-06"},
		{"wraps two weeks", "2025-01-03", 2, monFri, "2025-01-13"},
		{"single weekday same as current", "2025-01-04", 1, []time.Weekday{time.Saturday}, "2025-01-11"},
		{"past last weekday with interval 2", "2025-01-04", 2, []time.Weekday{time.Monday}, "2025-01-13"},
		{"current weekday not listed", "2025-01-05", 1, []time.Weekday{time.Wednesday}, "2025-01-08"},
		{"duplicates ignored", "2025-01-01", 1, []time.Weekday{time.Friday, time.Friday}, "2025-01-03"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, ok := NextDueDate(mustDate(t, tc.current), Rule{Pattern: PatternWeekly, Interval: tc.interval, Weekdays: tc.weekdays})
			require.True(t, ok)
			assert.Equal(t, tc.want, next.String())
		})
	}
}

func TestNextDueDate_Monthly(t *testing.T) {
	cases := []struct {
		name    string
		current string
		rule    Rule
		want    string
	}{
		{"clamps to short month", "2025-01-31", Rule{Pattern: PatternMonthly, Interval: 1}, "2025-02-28"},
		{"clamps to leap day", "2024-01-31", Rule{Pattern: PatternMonthly, Interval: 1}, "2024-02-29"},
		{"uses day of month", "2025-01-31", Rule{Pattern: PatternMonthly, Interval: 1, DayOfMonth: 15}, "2025-02-15"},
		{"pinned day restored after short month", "2025-02-28", Rule{Pattern: PatternMonthly, Interval: 1, DayOfMonth: 31}, "2025-03-31"},
		{"crosses year", "2025-11-10", Rule{Pattern: PatternMonthly, Interval: 3}, "2026-02-10"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, ok := NextDueDate(mustDate(t, tc.current), tc.rule)
			require.True(t, ok)
			assert.Equal(t, tc.want, next.String())
		})
	}
}

func TestNextDueDate_Yearly(t *testing.T) {
	next, ok := NextDueDate(mustDate(t, "2025-06-15"), Rule{Pattern: PatternYearly, Interval: 1})
	require.True(t, ok)
	assert.Equal(t, "2026-06-15", next.String())

	next, _ = NextDueDate(mustDate(t, "2024-02-29"), Rule{Pattern: PatternYearly, Interval: 1})
	assert.Equal(t, "2025-02-28", next.String())
}

func TestShouldGenerateNext_EndDate(t *testing.T) {
	rule := Rule{Pattern: PatternYearly, Interval: 1, EndDate: datePtr(t, "2026-06-01")}
	assert.False(t, ShouldGenerateNext(rule, 1, mustDate(t, "2025-06-15")))

	rule.EndDate = datePtr(t, "2026-06-15")
	assert.True(t, ShouldGenerateNext(rule, 1, mustDate(t, "2025-06-15")), "end date is inclusive")
}

func TestShouldGenerateNext_MaxOccurrences(t *testing.T) {
	rule := Rule{Pattern: PatternDaily, Interval: 1, MaxOccurrences: 3}
	due := mustDate(t, "2025-01-01")
	assert.True(t, ShouldGenerateNext(rule, 1, due))
	assert.True(t, ShouldGenerateNext(rule, 2, due))
	for n := 3; n < 10; n++ {
		assert.False(t, ShouldGenerateNext(rule, n, due.AddDays(n)), "occurrence %d", n)
	}
}

func TestShouldGenerateNext_None(t *testing.T) {
	assert.False(t, ShouldGenerateNext(Rule{Pattern: PatternNone}, 1, mustDate(t, "2025-01-01")))
}

func TestRuleValidate(t *testing.T) {
	due := mustDate(t, "2025-03-01")
	cases := []struct {
		name string
		rule Rule
	}{
		{"weekly without weekdays", Rule{Pattern: PatternWeekly, Interval: 1}},
		{"zero interval", Rule{Pattern: PatternDaily, Interval: 0}},
		{"end before due", Rule{Pattern: PatternDaily, Interval: 1, EndDate: datePtr(t, "2025-02-01")}},
		{"day of month out of range", Rule{Pattern: PatternMonthly, Interval: 1, DayOfMonth: 32}},
		{"weekday out of range", Rule{Pattern: PatternWeekly, Interval: 1, Weekdays: []time.Weekday{7}}},
		{"unknown pattern", Rule{Pattern: Pattern("hourly"), Interval: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.rule.Validate(due), ErrInvalidRecurrenceRule)
		})
	}

	assert.NoError(t, Rule{Pattern: PatternNone}.Validate(due))
	assert.NoError(t, Rule{Pattern: PatternWeekly, Interval: 2, Weekdays: []time.Weekday{time.Monday}}.Validate(due))
}

func TestNextOccurrence_ResetsProgressAndLinksParent(t *testing.T) {
	due := "2025-01-01"
	completed := time.Date(2025, 1, 1, 18, 0, 0, 0, time.UTC)
	target := 3
	rule := Rule{Pattern: PatternDaily, Interval: 2}
	prev := storage.Mission{
		ID:               "m1",
		Title:            "Water plants",
		Status:           storage.StatusDone,
		Difficulty:       "medium",
		IsDaily:          true,
		DueDate:          &due,
		CompletedAt:      &completed,
		XPAwarded:        15,
		TargetCount:      &target,
		CountProgress:    3,
		ElapsedSeconds:   600,
		Recurrence:       rule.Storage(),
		OccurrenceNumber: 1,
	}

	next, err := NextOccurrence(prev, rule)
	require.NoError(t, err)
	assert.Empty(t, next.ID)
	assert.Equal(t, "Water plants", next.Title)
	assert.Equal(t, storage.StatusPending, next.Status)
	require.NotNil(t, next.DueDate)
	assert.Equal(t, "2025-01-03", *next.DueDate)
	assert.Equal(t, 2, next.OccurrenceNumber)
	require.NotNil(t, next.ParentMissionID)
	assert.Equal(t, "m1", *next.ParentMissionID)
	assert.Nil(t, next.CompletedAt)
	assert.Zero(t, next.XPAwarded)
	assert.Zero(t, next.CountProgress)
	assert.Zero(t, next.ElapsedSeconds)
	assert.Equal(t, &target, next.TargetCount)

	// prev is untouched
	assert.Equal(t, "2025-01-01", *prev.DueDate)
	assert.Equal(t, 3, prev.CountProgress)
	assert.Nil(t, prev.ParentMissionID)

	next.ID = "m2"
	third, err := NextOccurrence(next, rule)
	require.NoError(t, err)
	assert.Equal(t, "m1", *third.ParentMissionID, "parent stays the first mission of the chain")
	assert.Equal(t, 3, third.OccurrenceNumber)
}

func TestNextOccurrence_RejectsExhaustedSeries(t *testing.T) {
	due := "2025-01-01"
	rule := Rule{Pattern: PatternDaily, Interval: 1, MaxOccurrences: 2}
	prev := storage.Mission{ID: "m2", DueDate: &due, OccurrenceNumber: 2, Recurrence: rule.Storage()}

	_, err := NextOccurrence(prev, rule)
	assert.ErrorIs(t, err, ErrInvalidRecurrenceState)

	_, err = NextOccurrence(storage.Mission{ID: "m3", OccurrenceNumber: 1}, Rule{Pattern: PatternDaily, Interval: 1})
	assert.ErrorIs(t, err, ErrInvalidRecurrenceState, "no due date")
}

func TestRuleFromStorage(t *testing.T) {
	dom := 15
	end := "2025-12-31"
	maxOcc := 4
	rule, err := RuleFromStorage(storage.Recurrence{
		Pattern:        "monthly",
		Interval:       2,
		DayOfMonth:     &dom,
		EndDate:        &end,
		MaxOccurrences: &maxOcc,
	})
	require.NoError(t, err)
	assert.Equal(t, PatternMonthly, rule.Pattern)
	assert.Equal(t, 2, rule.Interval)
	assert.Equal(t, 15, rule.DayOfMonth)
	assert.Equal(t, "2025-12-31", rule.EndDate.String())
	assert.Equal(t, 4, rule.MaxOccurrences)

	_, err = RuleFromStorage(storage.Recurrence{Pattern: "fortnightly"})
	assert.ErrorIs(t, err, ErrInvalidRecurrenceRule)
}

func TestParseWeekdays(t *testing.T) {
	days, err := ParseWeekdays("mon, Wed,5")
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday, time.Friday}, days)

	_, err = ParseWeekdays("mon,funday")
	assert.ErrorIs(t, err, ErrInvalidRecurrenceRule)
}

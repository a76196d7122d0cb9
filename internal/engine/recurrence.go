package engine

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"homequest/internal/storage"
)

type Pattern string

const (
	PatternNone    Pattern = "none"
	PatternDaily   Pattern = "daily"
	PatternWeekly  Pattern = "weekly"
	PatternMonthly Pattern = "monthly"
	PatternYearly  Pattern = "yearly"
)

func (p Pattern) IsValid() bool {
	switch p {
	case PatternNone, PatternDaily, PatternWeekly, PatternMonthly, PatternYearly:
		return true
	default:
		return false
	}
}

// ParsePattern parses user input; empty input means no recurrence.
func ParsePattern(input string) (Pattern, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "" {
		return PatternNone, nil
	}
	p := Pattern(s)
	if !p.IsValid() {
		return "", fmt.Errorf("%w: unknown pattern %q", ErrInvalidRecurrenceRule, input)
	}
	return p, nil
}

// Rule decides whether and when a completed mission spawns its next instance.
// Zero DayOfMonth and zero MaxOccurrences mean unset.
type Rule struct {
	Pattern        Pattern
	Interval       int
	Weekdays       []time.Weekday
	DayOfMonth     int
	EndDate        *Date
	MaxOccurrences int
}

func (r Rule) IsRecurring() bool {
	return r.Pattern != "" && r.Pattern != PatternNone
}

func (r Rule) interval() int {
	if r.Interval < 1 {
		return 1
	}
	return r.Interval
}

// Validate checks the rule against the due date it will first be evaluated from.
func (r Rule) Validate(currentDue Date) error {
	if !r.Pattern.IsValid() {
		return fmt.Errorf("%w: unknown pattern %q", ErrInvalidRecurrenceRule, r.Pattern)
	}
	if !r.IsRecurring() {
		return nil
	}
	if r.Interval < 1 {
		return fmt.Errorf("%w: interval must be at least 1 (got %d)", ErrInvalidRecurrenceRule, r.Interval)
	}
	if r.Pattern == PatternWeekly {
		if len(r.Weekdays) == 0 {
			return fmt.Errorf("%w: weekly rule needs at least one weekday", ErrInvalidRecurrenceRule)
		}
		for _, wd := range r.Weekdays {
			if wd < time.Sunday || wd > time.Saturday {
				return fmt.Errorf("%w: weekday %d out of range 0-6", ErrInvalidRecurrenceRule, wd)
			}
		}
	}
	if r.DayOfMonth < 0 || r.DayOfMonth > 31 {
		return fmt.Errorf("%w: day of month %d out of range 1-31", ErrInvalidRecurrenceRule, r.DayOfMonth)
	}
	if r.MaxOccurrences < 0 {
		return fmt.Errorf("%w: max occurrences must be positive (got %d)", ErrInvalidRecurrenceRule, r.MaxOccurrences)
	}
	if r.EndDate != nil && !currentDue.IsZero() && r.EndDate.Before(currentDue) {
		return fmt.Errorf("%w: end date %s precedes due date %s", ErrInvalidRecurrenceRule, r.EndDate, currentDue)
	}
	return nil
}

// NextDueDate returns the due date following currentDue under rule.
// It reports false when the rule does not recur.
func NextDueDate(currentDue Date, rule Rule) (Date, bool) {
	n := rule.interval()
	switch rule.Pattern {
	case PatternDaily:
		return currentDue.AddDays(n), true
	case PatternWeekly:
		return nextWeekly(currentDue, n, rule.Weekdays), true
	case PatternMonthly:
		return addMonthsClamped(currentDue, n, rule.DayOfMonth), true
	case PatternYearly:
		return addMonthsClamped(currentDue, 12*n, currentDue.Day()), true
	default:
		return Date{}, false
	}
}

// nextWeekly picks the next listed weekday later in current's (Sunday-based)
// week, else the first listed weekday of the week interval weeks ahead.
// An empty weekday set repeats on current's own weekday.
func nextWeekly(current Date, interval int, weekdays []time.Weekday) Date {
	days := slices.Clone(weekdays)
	slices.Sort(days)
	days = slices.Compact(days)
	if len(days) == 0 {
		return current.AddDays(7 * interval)
	}

	wd := current.Weekday()
	for _, d := range days {
		if d > wd {
			return current.AddDays(int(d - wd))
		}
	}
	weekStart := current.AddDays(-int(wd))
	return weekStart.AddDays(7*interval + int(days[0]))
}

// ShouldGenerateNext reports whether the occurrence numbered occurrenceCount,
// due on currentDue, may spawn a successor.
func ShouldGenerateNext(rule Rule, occurrenceCount int, currentDue Date) bool {
	if !rule.IsRecurring() {
		return false
	}
	next, ok := NextDueDate(currentDue, rule)
	if !ok {
		return false
	}
	if rule.EndDate != nil && next.After(*rule.EndDate) {
		return false
	}
	if rule.MaxOccurrences > 0 && occurrenceCount >= rule.MaxOccurrences {
		return false
	}
	return true
}

// NextOccurrence builds the mission that supersedes prev in its recurrence
// chain. The result has no ID; the store assigns one on insert.
func NextOccurrence(prev storage.Mission, rule Rule) (storage.Mission, error) {
	if prev.DueDate == nil {
		return storage.Mission{}, fmt.Errorf("%w: mission %s has no due date", ErrInvalidRecurrenceState, prev.ID)
	}
	due, err := ParseDate(*prev.DueDate)
	if err != nil {
		return storage.Mission{}, fmt.Errorf("%w: mission %s: %v", ErrInvalidRecurrenceState, prev.ID, err)
	}
	occurrence := prev.OccurrenceNumber
	if occurrence < 1 {
		occurrence = 1
	}
	if !ShouldGenerateNext(rule, occurrence, due) {
		return storage.Mission{}, fmt.Errorf("%w: mission %s (occurrence %d) has no next occurrence", ErrInvalidRecurrenceState, prev.ID, occurrence)
	}
	nextDue, _ := NextDueDate(due, rule)

	parentID := prev.ID
	if prev.ParentMissionID != nil {
		parentID = *prev.ParentMissionID
	}
	dueStr := nextDue.String()

	next := prev
	next.ID = ""
	next.Status = storage.StatusPending
	next.DueDate = &dueStr
	next.CreatedAt = time.Time{}
	next.CompletedAt = nil
	next.XPAwarded = 0
	next.CountProgress = 0
	next.ElapsedSeconds = 0
	next.Recurrence = rule.Storage()
	next.OccurrenceNumber = occurrence + 1
	next.ParentMissionID = &parentID
	next.NextOccurrenceID = nil
	return next, nil
}

// RuleFromStorage converts a persisted recurrence into a Rule.
func RuleFromStorage(r storage.Recurrence) (Rule, error) {
	pattern, err := ParsePattern(r.Pattern)
	if err != nil {
		return Rule{}, err
	}
	rule := Rule{Pattern: pattern, Interval: r.Interval}
	if rule.Interval == 0 {
		rule.Interval = 1
	}
	for _, wd := range r.Weekdays {
		rule.Weekdays = append(rule.Weekdays, time.Weekday(wd))
	}
	if r.DayOfMonth != nil {
		rule.DayOfMonth = *r.DayOfMonth
	}
	if r.EndDate != nil {
		end, err := ParseDate(*r.EndDate)
		if err != nil {
			return Rule{}, fmt.Errorf("%w: end date: %v", ErrInvalidRecurrenceRule, err)
		}
		rule.EndDate = &end
	}
	if r.MaxOccurrences != nil {
		rule.MaxOccurrences = *r.MaxOccurrences
	}
	return rule, nil
}

func (r Rule) Storage() storage.Recurrence {
	out := storage.Recurrence{
		Pattern:  string(r.Pattern),
		Interval: r.interval(),
		EndDate:  datePtrString(r.EndDate),
	}
	if out.Pattern == "" {
		out.Pattern = string(PatternNone)
	}
	for _, wd := range r.Weekdays {
		out.Weekdays = append(out.Weekdays, int(wd))
	}
	if r.DayOfMonth > 0 {
		v := r.DayOfMonth
		out.DayOfMonth = &v
	}
	if r.MaxOccurrences > 0 {
		v := r.MaxOccurrences
		out.MaxOccurrences = &v
	}
	return out
}

// ParseWeekdays parses a comma separated list such as "mon,wed,fri" or "1,3,5".
func ParseWeekdays(input string) ([]time.Weekday, error) {
	var out []time.Weekday
	for _, part := range strings.Split(input, ",") {
		s := strings.TrimSpace(strings.ToLower(part))
		if s == "" {
			continue
		}
		wd, ok := weekdayNames[s]
		if !ok {
			return nil, fmt.Errorf("%w: unknown weekday %q", ErrInvalidRecurrenceRule, part)
		}
		out = append(out, wd)
	}
	return out, nil
}

var weekdayNames = map[string]time.Weekday{
	"0": time.Sunday, "sun": time.Sunday, "sunday": time.Sunday,
	"1": time.Monday, "mon": time.Monday, "monday": time.Monday,
	"2": time.Tuesday, "tue": time.Tuesday, "tuesday": time.Tuesday,
	"3": time.Wednesday, "wed": time.Wednesday, "wednesday": time.Wednesday,
	"4": time.Thursday, "thu": time.Thursday, "thursday": time.Thursday,
	"5": time.Friday, "fri": time.Friday, "friday": time.Friday,
	"6": time.Saturday, "sat": time.Saturday, "saturday": time.Saturday,
}

package root

import (
	"fmt"
	"strings"
	"time"

	"homequest/internal/engine"
	"homequest/internal/storage"
	"homequest/internal/ui"
)

// parseDateFlag accepts YYYY-MM-DD, "today" or "tomorrow". Empty input
// yields the zero Date.
func parseDateFlag(value string, today engine.Date) (engine.Date, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return engine.Date{}, nil
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDays(1), nil
	}
	return engine.ParseDate(value)
}

func isRecurring(m *storage.Mission) bool {
	return m.Recurrence.Pattern != "" && m.Recurrence.Pattern != string(engine.PatternNone)
}

func missionName(m *storage.Mission) string {
	return fmt.Sprintf("%s %s %s", ui.MissionIcon(isRecurring(m), m.IsDaily), ui.Muted.Render(engine.ShortID(m.ID)), m.Title)
}

func missionLine(m *storage.Mission, today engine.Date) string {
	parts := []string{
		missionName(m),
		ui.StatusText(m.Status, engine.IsOverdue(m, today)),
		ui.DifficultyText(m.Difficulty),
	}
	if m.DueDate != nil {
		parts = append(parts, ui.Muted.Render("due "+*m.DueDate))
	}
	if r := describeRecurrence(m.Recurrence); r != "" {
		parts = append(parts, ui.Muted.Render(r))
	}
	if m.Room != "" {
		parts = append(parts, ui.Muted.Render(ui.IconRoom+" "+m.Room))
	}
	if m.TargetCount != nil {
		parts = append(parts, ui.Muted.Render(fmt.Sprintf("%s %d/%d", ui.IconCount, m.CountProgress, *m.TargetCount)))
	}
	if m.ElapsedSeconds > 0 {
		parts = append(parts, ui.Muted.Render(ui.IconClock+" "+(time.Duration(m.ElapsedSeconds)*time.Second).String()))
	}
	return strings.Join(parts, " ")
}

var weekdayShort = [...]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// describeRecurrence renders a rule as e.g. "every 2 weeks on mon,fri (until 2025-12-31)".
func describeRecurrence(r storage.Recurrence) string {
	unit := map[string]string{"daily": "day", "weekly": "week", "monthly": "month", "yearly": "year"}[r.Pattern]
	if unit == "" {
		return ""
	}
	s := "every " + unit
	if r.Interval > 1 {
		s = fmt.Sprintf("every %d %ss", r.Interval, unit)
	}
	if len(r.Weekdays) > 0 {
		names := make([]string, 0, len(r.Weekdays))
		for _, wd := range r.Weekdays {
			if wd >= 0 && wd < len(weekdayShort) {
				names = append(names, weekdayShort[wd])
			}
		}
		s += " on " + strings.Join(names, ",")
	}
	if r.DayOfMonth != nil && r.Pattern == "monthly" {
		s += fmt.Sprintf(" on day %d", *r.DayOfMonth)
	}
	var limits []string
	if r.EndDate != nil {
		limits = append(limits, "until "+*r.EndDate)
	}
	if r.MaxOccurrences != nil {
		limits = append(limits, fmt.Sprintf("%d times", *r.MaxOccurrences))
	}
	if len(limits) > 0 {
		s += " (" + strings.Join(limits, ", ") + ")"
	}
	return ui.IconLoop + " " + s
}

func levelLine(before, after int) string {
	if before == after {
		return ui.LabelValue("Level", after)
	}
	return ui.LabelValue("Level", fmt.Sprintf("%d → %d", before, after))
}

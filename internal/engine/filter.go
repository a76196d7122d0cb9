package engine

import (
	"sort"
	"strings"

	"homequest/internal/storage"
)

type SortKey string

const (
	SortByDue        SortKey = "due"
	SortByCreated    SortKey = "created"
	SortByDifficulty SortKey = "difficulty"
	SortByTitle      SortKey = "title"
)

func ParseSortKey(input string) (SortKey, bool) {
	k := SortKey(strings.TrimSpace(strings.ToLower(input)))
	switch k {
	case "":
		return SortByDue, true
	case SortByDue, SortByCreated, SortByDifficulty, SortByTitle:
		return k, true
	default:
		return "", false
	}
}

// MissionFilter selects missions in memory. Zero values match everything.
type MissionFilter struct {
	Status    string
	QuestID   string
	Room      string
	DueBy     *Date // due on or before
	DailyOnly bool
	Query     string // case-insensitive substring of title or description
	SortBy    SortKey
}

func (f MissionFilter) match(m *storage.Mission) bool {
	if f.Status != "" && m.Status != f.Status {
		return false
	}
	if f.QuestID != "" && (m.QuestID == nil || *m.QuestID != f.QuestID) {
		return false
	}
	if f.Room != "" && m.Room != ParseRoom(f.Room) {
		return false
	}
	if f.DailyOnly && !m.IsDaily {
		return false
	}
	if f.DueBy != nil {
		due, ok := missionDue(m)
		if !ok || due.After(*f.DueBy) {
			return false
		}
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		text := strings.ToLower(m.Title)
		if m.Description != nil {
			text += " " + strings.ToLower(*m.Description)
		}
		if !strings.Contains(text, q) {
			return false
		}
	}
	return true
}

// FilterMissions returns the missions matching f, preserving order.
func FilterMissions(missions []storage.Mission, f MissionFilter) []storage.Mission {
	out := make([]storage.Mission, 0, len(missions))
	for i := range missions {
		if f.match(&missions[i]) {
			out = append(out, missions[i])
		}
	}
	return out
}

// SortMissions sorts in place. Missions without a due date sort after dated
// ones; ties fall back to creation time.
func SortMissions(missions []storage.Mission, key SortKey) {
	sort.SliceStable(missions, func(i, j int) bool {
		a, b := &missions[i], &missions[j]
		switch key {
		case SortByTitle:
			ta, tb := strings.ToLower(a.Title), strings.ToLower(b.Title)
			if ta != tb {
				return ta < tb
			}
		case SortByDifficulty:
			da, db := difficultyRank(a.Difficulty), difficultyRank(b.Difficulty)
			if da != db {
				return da > db
			}
		case SortByCreated:
		default:
			dueA, okA := missionDue(a)
			dueB, okB := missionDue(b)
			if okA != okB {
				return okA
			}
			if okA && !dueA.Equal(dueB) {
				return dueA.Before(dueB)
			}
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}

func difficultyRank(raw string) int {
	d, _ := ParseDifficulty(raw)
	return XPForDifficulty(d)
}

func missionDue(m *storage.Mission) (Date, bool) {
	if m.DueDate == nil {
		return Date{}, false
	}
	d, err := ParseDate(*m.DueDate)
	if err != nil {
		return Date{}, false
	}
	return d, true
}

// IsOverdue reports whether a pending mission's due date is before today.
func IsOverdue(m *storage.Mission, today Date) bool {
	if m.Status == storage.StatusDone {
		return false
	}
	due, ok := missionDue(m)
	return ok && due.Before(today)
}

package storage

import "time"

const (
	StatusPending = "pending"
	StatusDone    = "done"
)

type Profile struct {
	UserID            string
	Level             int
	TotalXP           int
	MissionsCompleted int
	UpdatedAt         time.Time
}

// Recurrence is the persisted form of a mission's recurrence rule.
type Recurrence struct {
	Pattern        string
	Interval       int
	Weekdays       []int // Sunday=0
	DayOfMonth     *int
	EndDate        *string // YYYY-MM-DD
	MaxOccurrences *int
}

type Mission struct {
	ID          string
	QuestID     *string
	Position    int
	Title       string
	Description *string
	Room        string
	Status      string
	Difficulty  string
	IsDaily     bool
	DueDate     *string // YYYY-MM-DD
	CreatedAt   time.Time
	CompletedAt *time.Time
	XPAwarded   int // XP granted by the last completion, refunded on undo

	TargetCount    *int
	CountProgress  int
	ElapsedSeconds int

	Recurrence       Recurrence
	OccurrenceNumber int
	ParentMissionID  *string
	NextOccurrenceID *string
}

type Quest struct {
	ID          string
	Title       string
	Description *string
	CreatedAt   time.Time
}

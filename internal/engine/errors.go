package engine

import "errors"

var (
	// ErrInvalidRecurrenceRule is returned when a rule is rejected at construction time.
	ErrInvalidRecurrenceRule = errors.New("invalid recurrence rule")

	// ErrInvalidRecurrenceState signals a next occurrence was requested for a
	// mission whose rule does not allow one. This is a caller bug.
	ErrInvalidRecurrenceState = errors.New("invalid recurrence state")

	// ErrInvalidDifficultyTier accompanies the Easy fallback for unknown tiers.
	ErrInvalidDifficultyTier = errors.New("invalid difficulty tier")

	ErrMissionNotFound  = errors.New("mission not found")
	ErrQuestNotFound    = errors.New("quest not found")
	ErrAlreadyCompleted = errors.New("mission already completed")
	ErrNotCompleted     = errors.New("mission is not completed")
	ErrNotCounted       = errors.New("mission has no target count")
)

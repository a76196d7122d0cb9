package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"homequest/internal/logger"
	"homequest/internal/storage"
)

type CreateMissionInput struct {
	Title       string
	Description string
	Difficulty  string
	IsDaily     bool
	Room        string
	QuestID     string
	DueDate     string // YYYY-MM-DD, optional
	TargetCount int    // 0 = not a counted mission
	Recurrence  Rule
}

type CreateResult struct {
	MissionID string
	DueDate   string
}

func missionNotFound(id string) error {
	return fmt.Errorf("%w: %s", ErrMissionNotFound, id)
}

func (s *Service) CreateMission(ctx context.Context, in CreateMissionInput) (*CreateResult, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	difficulty, err := ParseDifficulty(in.Difficulty)
	if err != nil {
		s.log.Warn(ctx, "unknown difficulty tier, using easy",
			logger.String("title", title),
			logger.String("difficulty", in.Difficulty))
	}
	if in.TargetCount < 0 {
		return nil, fmt.Errorf("target count must not be negative (got %d)", in.TargetCount)
	}

	rule := in.Recurrence
	if rule.Pattern == "" {
		rule.Pattern = PatternNone
	}
	if rule.Interval == 0 {
		rule.Interval = 1
	}

	var due Date
	if in.DueDate != "" {
		if due, err = ParseDate(in.DueDate); err != nil {
			return nil, err
		}
	} else if rule.IsRecurring() {
		due = s.Today()
	}
	if err := rule.Validate(due); err != nil {
		return nil, err
	}
	// Pin the day so short months do not drift the series (Jan 31 -> Feb 28 -> Mar 31).
	if rule.Pattern == PatternMonthly && rule.DayOfMonth == 0 {
		rule.DayOfMonth = due.Day()
	}

	m := storage.Mission{
		ID:               s.newID(),
		Title:            title,
		Room:             ParseRoom(in.Room),
		Status:           storage.StatusPending,
		Difficulty:       string(difficulty),
		IsDaily:          in.IsDaily,
		DueDate:          datePtrString(&due),
		CreatedAt:        s.clock.Now(),
		Recurrence:       rule.Storage(),
		OccurrenceNumber: 1,
	}
	if in.Description != "" {
		desc := in.Description
		m.Description = &desc
	}
	if in.TargetCount > 0 {
		target := in.TargetCount
		m.TargetCount = &target
	}

	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		missions := s.missions.WithTx(tx)
		if in.QuestID != "" {
			q, err := s.quests.WithTx(tx).Get(ctx, in.QuestID)
			if err != nil {
				return err
			}
			if q == nil {
				return fmt.Errorf("%w: %s", ErrQuestNotFound, in.QuestID)
			}
			pos, err := missions.NextPosition(ctx, q.ID)
			if err != nil {
				return err
			}
			m.QuestID = &q.ID
			m.Position = pos
		}
		return missions.Insert(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug(ctx, "mission created",
		logger.String("mission_id", m.ID),
		logger.String("pattern", string(rule.Pattern)))
	return &CreateResult{MissionID: m.ID, DueDate: due.String()}, nil
}

func (s *Service) GetMission(ctx context.Context, id string) (*storage.Mission, error) {
	return s.loadMission(ctx, s.missions, id)
}

// DeleteMission removes a mission. A previous occurrence that pointed at it
// becomes the head of its series again, so completing it can respawn.
func (s *Service) DeleteMission(ctx context.Context, id string) error {
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		missions := s.missions.WithTx(tx)
		if err := missions.UnlinkPredecessor(ctx, id); err != nil {
			return err
		}
		return missions.Delete(ctx, id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return missionNotFound(id)
	}
	return err
}

// ListMissions loads every mission and applies f in memory.
func (s *Service) ListMissions(ctx context.Context, f MissionFilter) ([]storage.Mission, error) {
	all, err := s.missions.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := FilterMissions(all, f)
	SortMissions(out, f.SortBy)
	return out, nil
}

package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"homequest/internal/logger"
	"homequest/internal/storage"
)

type CompleteResult struct {
	MissionID   string
	XPAwarded   int
	TotalXP     int
	LevelBefore int
	LevelAfter  int
	LevelUp     bool
	Progress    Progress

	// NextMissionID is set when a recurring mission spawned its next occurrence.
	NextMissionID string
	NextDueDate   string
	// RecurrenceEnded is set when a recurring mission reached its end date or
	// occurrence cap.
	RecurrenceEnded bool
}

type UncompleteResult struct {
	MissionID   string
	XPDeducted  int
	TotalXP     int
	LevelBefore int
	LevelAfter  int
	LevelDown   bool
}

// CompleteMission marks a pending mission done, awards XP, and for recurring
// missions spawns the next occurrence. The completion commits on its own; a
// failure to spawn the next occurrence is logged and does not fail the call.
func (s *Service) CompleteMission(ctx context.Context, id string) (*CompleteResult, error) {
	now := s.clock.Now()
	var (
		mission storage.Mission
		change  XPChange
		award   int
	)

	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		missions := s.missions.WithTx(tx)
		profiles := s.profiles.WithTx(tx)

		m, err := s.loadMission(ctx, missions, id)
		if err != nil {
			return err
		}
		if m.Status == storage.StatusDone {
			return fmt.Errorf("%w: %s", ErrAlreadyCompleted, id)
		}

		award = TotalAwardForMission(XPForDifficulty(s.missionDifficulty(ctx, m)), m.IsDaily)
		if err := missions.MarkDone(ctx, id, now, award); err != nil {
			return err
		}

		p, err := s.getProfile(ctx, profiles)
		if err != nil {
			return err
		}
		change = ApplyXPDelta(p.TotalXP, award)
		p.TotalXP = change.NewTotalXP
		p.Level = change.NewLevel
		p.MissionsCompleted++
		p.UpdatedAt = now
		if err := profiles.Update(ctx, p); err != nil {
			return err
		}

		mission = *m
		mission.Status = storage.StatusDone
		mission.CompletedAt = &now
		mission.XPAwarded = award
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := &CompleteResult{
		MissionID:   id,
		XPAwarded:   award,
		TotalXP:     change.NewTotalXP,
		LevelBefore: change.PreviousLevel,
		LevelAfter:  change.NewLevel,
		LevelUp:     change.LeveledUp,
		Progress:    change.Progress,
	}
	s.log.Info(ctx, "mission completed",
		logger.String("mission_id", id),
		logger.Int("xp_awarded", award),
		logger.Int("total_xp", change.NewTotalXP))
	if change.LeveledUp {
		s.log.Info(ctx, "level up", logger.Int("level", change.NewLevel))
	}

	next, ended, err := s.spawnNextOccurrence(ctx, mission)
	switch {
	case err != nil:
		s.log.Warn(ctx, "next occurrence not created",
			logger.String("mission_id", id),
			logger.Error(err))
	case next != nil:
		res.NextMissionID = next.ID
		if next.DueDate != nil {
			res.NextDueDate = *next.DueDate
		}
	default:
		res.RecurrenceEnded = ended
	}
	return res, nil
}

// spawnNextOccurrence inserts the successor of prev when its rule allows one.
// ended reports that prev is recurring but its series is over.
func (s *Service) spawnNextOccurrence(ctx context.Context, prev storage.Mission) (next *storage.Mission, ended bool, err error) {
	rule, err := RuleFromStorage(prev.Recurrence)
	if err != nil {
		return nil, false, err
	}
	if !rule.IsRecurring() {
		return nil, false, nil
	}
	if prev.NextOccurrenceID != nil {
		// Completed, undone and completed again: the successor already exists.
		return nil, false, nil
	}
	if prev.DueDate == nil {
		return nil, false, fmt.Errorf("%w: recurring mission %s has no due date", ErrInvalidRecurrenceState, prev.ID)
	}
	due, err := ParseDate(*prev.DueDate)
	if err != nil {
		return nil, false, err
	}
	if !ShouldGenerateNext(rule, max(prev.OccurrenceNumber, 1), due) {
		return nil, true, nil
	}

	m, err := NextOccurrence(prev, rule)
	if err != nil {
		return nil, false, err
	}
	m.ID = s.newID()
	m.CreatedAt = s.clock.Now()

	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		missions := s.missions.WithTx(tx)
		if m.QuestID != nil {
			pos, err := missions.NextPosition(ctx, *m.QuestID)
			if err != nil {
				return err
			}
			m.Position = pos
		}
		if err := missions.Insert(ctx, m); err != nil {
			return err
		}
		return missions.LinkNextOccurrence(ctx, prev.ID, m.ID)
	})
	if err != nil {
		return nil, false, err
	}

	s.log.Debug(ctx, "next occurrence created",
		logger.String("mission_id", prev.ID),
		logger.String("next_mission_id", m.ID),
		logger.Int("occurrence", m.OccurrenceNumber))
	return &m, false, nil
}

// UncompleteMission reverts a completion and refunds its XP. XP never drops
// below zero. A next occurrence spawned by the completion is kept.
func (s *Service) UncompleteMission(ctx context.Context, id string) (*UncompleteResult, error) {
	now := s.clock.Now()
	var res *UncompleteResult

	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		missions := s.missions.WithTx(tx)
		profiles := s.profiles.WithTx(tx)

		m, err := s.loadMission(ctx, missions, id)
		if err != nil {
			return err
		}
		if m.Status != storage.StatusDone {
			return fmt.Errorf("%w: %s", ErrNotCompleted, id)
		}
		if err := missions.MarkPending(ctx, id); err != nil {
			return err
		}

		p, err := s.getProfile(ctx, profiles)
		if err != nil {
			return err
		}
		change := ApplyXPDelta(p.TotalXP, -m.XPAwarded)
		p.TotalXP = change.NewTotalXP
		p.Level = change.NewLevel
		p.MissionsCompleted = max(p.MissionsCompleted-1, 0)
		p.UpdatedAt = now
		if err := profiles.Update(ctx, p); err != nil {
			return err
		}

		res = &UncompleteResult{
			MissionID:   id,
			XPDeducted:  change.PreviousTotalXP - change.NewTotalXP,
			TotalXP:     change.NewTotalXP,
			LevelBefore: change.PreviousLevel,
			LevelAfter:  change.NewLevel,
			LevelDown:   change.LeveledDown,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "mission uncompleted",
		logger.String("mission_id", id),
		logger.Int("xp_deducted", res.XPDeducted))
	return res, nil
}

// IsConflict reports whether err came from a lost optimistic-concurrency race.
func IsConflict(err error) bool {
	return errors.Is(err, storage.ErrConcurrentUpdate)
}

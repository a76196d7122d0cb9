package engine

import (
	"context"
	"fmt"
	"time"

	"homequest/internal/storage"
)

type CountResult struct {
	MissionID string
	Count     int
	Target    int
	// Completed is set when this call reached the target and completed the mission.
	Completed *CompleteResult
}

// AddProgress moves a counted mission's progress by delta (clamped to
// 0..target) in a single conditional update. Reaching the target completes
// the mission.
func (s *Service) AddProgress(ctx context.Context, id string, delta int) (*CountResult, error) {
	m, err := s.loadMission(ctx, s.missions, id)
	if err != nil {
		return nil, err
	}
	if m.TargetCount == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotCounted, id)
	}
	if m.Status == storage.StatusDone {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyCompleted, id)
	}

	target := *m.TargetCount
	count, err := s.missions.AddCount(ctx, id, delta)
	if err != nil {
		return nil, err
	}

	res := &CountResult{MissionID: id, Count: count, Target: target}
	if count >= target {
		done, err := s.CompleteMission(ctx, id)
		if err != nil {
			return nil, err
		}
		res.Completed = done
	}
	return res, nil
}

// LogTime adds d to the mission's elapsed timer and returns the new total.
func (s *Service) LogTime(ctx context.Context, id string, d time.Duration) (time.Duration, error) {
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive (got %s)", d)
	}
	m, err := s.loadMission(ctx, s.missions, id)
	if err != nil {
		return 0, err
	}
	if m.Status == storage.StatusDone {
		return 0, fmt.Errorf("%w: %s", ErrAlreadyCompleted, id)
	}

	elapsed, err := s.missions.AddElapsed(ctx, id, int(d/time.Second))
	if err != nil {
		return 0, err
	}
	return time.Duration(elapsed) * time.Second, nil
}

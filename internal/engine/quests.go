package engine

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"

	"homequest/internal/storage"
)

type QuestProgress struct {
	Quest      storage.Quest
	Missions   []storage.Mission // current missions in quest order
	Done       int
	Total      int
	Percentage int
}

func (s *Service) CreateQuest(ctx context.Context, title string, description string) (*storage.Quest, error) {
	t, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}
	q := storage.Quest{
		ID:        s.newID(),
		Title:     t,
		CreatedAt: s.clock.Now(),
	}
	if d := strings.TrimSpace(description); d != "" {
		q.Description = &d
	}
	if err := s.quests.Insert(ctx, q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *Service) ListQuests(ctx context.Context) ([]QuestProgress, error) {
	quests, err := s.quests.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]QuestProgress, 0, len(quests))
	for _, q := range quests {
		missions, err := s.missions.ListByQuest(ctx, q.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, questProgress(q, missions))
	}
	return out, nil
}

// QuestProgress aggregates completion across the quest's missions.
func (s *Service) QuestProgress(ctx context.Context, questID string) (*QuestProgress, error) {
	q, err := s.quests.Get(ctx, questID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, fmt.Errorf("%w: %s", ErrQuestNotFound, questID)
	}
	missions, err := s.missions.ListByQuest(ctx, questID)
	if err != nil {
		return nil, err
	}
	p := questProgress(*q, missions)
	return &p, nil
}

// questProgress counts only the newest occurrence of each recurring series;
// superseded occurrences are history, not outstanding work.
func questProgress(q storage.Quest, missions []storage.Mission) QuestProgress {
	p := QuestProgress{Quest: q}
	for _, m := range missions {
		if m.NextOccurrenceID != nil {
			continue
		}
		p.Missions = append(p.Missions, m)
		p.Total++
		if m.Status == storage.StatusDone {
			p.Done++
		}
	}
	if p.Total > 0 {
		p.Percentage = int(math.Round(100 * float64(p.Done) / float64(p.Total)))
	}
	return p
}

// AssignMissionToQuest appends the mission to the end of the quest. An empty
// questID detaches it.
func (s *Service) AssignMissionToQuest(ctx context.Context, missionID string, questID string) error {
	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		missions := s.missions.WithTx(tx)
		if _, err := s.loadMission(ctx, missions, missionID); err != nil {
			return err
		}
		if questID == "" {
			return missions.SetQuest(ctx, missionID, nil, 0)
		}
		q, err := s.quests.WithTx(tx).Get(ctx, questID)
		if err != nil {
			return err
		}
		if q == nil {
			return fmt.Errorf("%w: %s", ErrQuestNotFound, questID)
		}
		pos, err := missions.NextPosition(ctx, questID)
		if err != nil {
			return err
		}
		return missions.SetQuest(ctx, missionID, &q.ID, pos)
	})
}

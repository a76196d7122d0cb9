package engine

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"homequest/internal/logger"
	"homequest/internal/storage"
)

type Service struct {
	db       *sql.DB
	profiles *storage.ProfileRepo
	missions *storage.MissionRepo
	quests   *storage.QuestRepo

	clock Clock
	log   logger.Logger
	newID func() string
}

type Option func(*Service)

func WithClock(c Clock) Option {
	return func(s *Service) { s.clock = c }
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithIDGenerator overrides UUID generation for mission and quest ids.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

func NewService(db *sql.DB, opts ...Option) *Service {
	s := &Service{
		db:       db,
		profiles: storage.NewProfileRepo(db),
		missions: storage.NewMissionRepo(db),
		quests:   storage.NewQuestRepo(db),
		clock:    SystemClock{},
		log:      logger.Nop(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("engine")
	return s
}

func (s *Service) ProfileRepo() *storage.ProfileRepo { return s.profiles }
func (s *Service) MissionRepo() *storage.MissionRepo { return s.missions }
func (s *Service) QuestRepo() *storage.QuestRepo     { return s.quests }

// Today is the current calendar day according to the service clock.
func (s *Service) Today() Date { return Today(s.clock) }

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", errors.New("title is required")
	}
	return t, nil
}

// getProfile loads the main profile, repairing a stored level that drifted
// from its total XP.
func (s *Service) getProfile(ctx context.Context, profiles *storage.ProfileRepo) (*storage.Profile, error) {
	p, err := profiles.GetOrCreateMain(ctx)
	if err != nil {
		return nil, err
	}
	computed := LevelForTotalXP(p.TotalXP)
	if p.Level != computed {
		s.log.Warn(ctx, "reconciling stale profile level",
			logger.Int("stored_level", p.Level),
			logger.Int("computed_level", computed),
			logger.Int("total_xp", p.TotalXP))
		p.Level = computed
		p.UpdatedAt = s.clock.Now()
		if err := profiles.Update(ctx, p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

type ProfileStatus struct {
	Profile  storage.Profile
	Level    int
	Progress Progress
}

// Profile returns the main profile with its derived level and progress.
func (s *Service) Profile(ctx context.Context) (*ProfileStatus, error) {
	p, err := s.getProfile(ctx, s.profiles)
	if err != nil {
		return nil, err
	}
	return &ProfileStatus{
		Profile:  *p,
		Level:    p.Level,
		Progress: ProgressWithinLevel(p.TotalXP, p.Level),
	}, nil
}

// missionDifficulty parses the stored tier, logging unknown values as a
// data-quality issue and falling back to easy.
func (s *Service) missionDifficulty(ctx context.Context, m *storage.Mission) Difficulty {
	d, err := ParseDifficulty(m.Difficulty)
	if err != nil {
		s.log.Warn(ctx, "unknown difficulty tier, using easy",
			logger.String("mission_id", m.ID),
			logger.String("difficulty", m.Difficulty))
	}
	return d
}

func (s *Service) loadMission(ctx context.Context, missions *storage.MissionRepo, id string) (*storage.Mission, error) {
	m, err := missions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, missionNotFound(id)
	}
	return m, nil
}

package engine

import (
	"context"

	"homequest/internal/storage"
)

// Achievement represents a badge the player can earn.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Earned      bool
}

// AchievementChecker calculates which achievements the player has earned.
type AchievementChecker struct {
	profile  *storage.Profile
	missions []storage.Mission
	quests   []QuestProgress
}

func NewAchievementChecker(profile *storage.Profile, missions []storage.Mission, quests []QuestProgress) *AchievementChecker {
	return &AchievementChecker{
		profile:  profile,
		missions: missions,
		quests:   quests,
	}
}

// GetAchievements returns all achievements with their earned status.
func (c *AchievementChecker) GetAchievements() []Achievement {
	return []Achievement{
		// Level milestones
		c.levelAchievement("moved_in", "Moved In", "Reach level 2", "🏠", 2),
		c.levelAchievement("homebody", "Homebody", "Reach level 5", "🛋️", 5),
		c.levelAchievement("housekeeper", "Housekeeper", "Reach level 10", "⭐", 10),
		c.levelAchievement("master_of_the_base", "Master of the Base", "Reach level 20", "🏰", 20),

		// Completion milestones
		c.completedAchievement("first_mission", "First Mission", "Complete 1 mission", "✓", 1),
		c.completedAchievement("busy_bee", "Busy Bee", "Complete 10 missions", "🐝", 10),
		c.completedAchievement("tidy", "Tidy", "Complete 50 missions", "🧹", 50),
		c.completedAchievement("spotless", "Spotless", "Complete 100 missions", "✨", 100),

		c.dailyAchievement("daily_grind", "Daily Grind", "Complete a daily mission", "📅"),
		c.routineAchievement("routine_keeper", "Routine Keeper", "Complete the 5th occurrence of a recurring mission", "🔁", 5),
		c.roomAchievement("grand_tour", "Grand Tour", "Complete missions in 3 different rooms", "🗝️", 3),
		c.questAchievement("quest_complete", "Quest Complete", "Finish every mission in a quest", "🏆"),
	}
}

// CountEarned returns how many achievements have been earned.
func (c *AchievementChecker) CountEarned() int {
	count := 0
	for _, a := range c.GetAchievements() {
		if a.Earned {
			count++
		}
	}
	return count
}

func (c *AchievementChecker) levelAchievement(id, name, desc, icon string, level int) Achievement {
	earned := LevelForTotalXP(c.profile.TotalXP) >= level
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) completedAchievement(id, name, desc, icon string, count int) Achievement {
	earned := c.profile.MissionsCompleted >= count
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) dailyAchievement(id, name, desc, icon string) Achievement {
	earned := false
	for _, m := range c.missions {
		if m.IsDaily && m.Status == storage.StatusDone {
			earned = true
			break
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) routineAchievement(id, name, desc, icon string, occurrence int) Achievement {
	earned := false
	for _, m := range c.missions {
		if m.Status == storage.StatusDone && m.OccurrenceNumber >= occurrence {
			earned = true
			break
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) roomAchievement(id, name, desc, icon string, rooms int) Achievement {
	seen := map[string]bool{}
	for _, m := range c.missions {
		if m.Status == storage.StatusDone && m.Room != "" {
			seen[m.Room] = true
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: len(seen) >= rooms}
}

func (c *AchievementChecker) questAchievement(id, name, desc, icon string) Achievement {
	earned := false
	for _, q := range c.quests {
		if q.Total > 0 && q.Done == q.Total {
			earned = true
			break
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

// Achievements evaluates every achievement against the current state.
func (s *Service) Achievements(ctx context.Context) ([]Achievement, error) {
	p, err := s.getProfile(ctx, s.profiles)
	if err != nil {
		return nil, err
	}
	missions, err := s.missions.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	quests, err := s.ListQuests(ctx)
	if err != nil {
		return nil, err
	}
	return NewAchievementChecker(p, missions, quests).GetAchievements(), nil
}

package engine

import (
	"fmt"
	"math"
	"strings"
)

const (
	// DailyMissionBonusXP is added on top of the difficulty award for daily missions.
	DailyMissionBonusXP = 5

	// MaxLevel bounds the level search; requirements grow by 1.5x per level
	// and would overflow int well before level 120.
	MaxLevel = 80

	levelGrowthRate = 1.5
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DefaultDifficulty is used when user input is missing or unknown.
const DefaultDifficulty = DifficultyEasy

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// ParseDifficulty parses user or stored input. Empty input yields the default
// silently; unknown input yields the default together with ErrInvalidDifficultyTier
// so callers can log it as a data-quality issue.
func ParseDifficulty(input string) (Difficulty, error) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "":
		return DefaultDifficulty, nil
	case "easy", "e", "1":
		return DifficultyEasy, nil
	case "medium", "med", "m", "2":
		return DifficultyMedium, nil
	case "hard", "h", "3":
		return DifficultyHard, nil
	default:
		return DefaultDifficulty, fmt.Errorf("%w: %q", ErrInvalidDifficultyTier, input)
	}
}

// XPForDifficulty is the base award for completing a mission of tier d.
func XPForDifficulty(d Difficulty) int {
	switch d {
	case DifficultyMedium:
		return 10
	case DifficultyHard:
		return 20
	case DifficultyEasy:
		fallthrough
	default:
		return 5
	}
}

func TotalAwardForMission(baseXP int, isDailyMission bool) int {
	if isDailyMission {
		return baseXP + DailyMissionBonusXP
	}
	return baseXP
}

// nextRequirement returns the marginal XP for level given the previous level's
// rounded requirement. Rounding happens at every step, so this cannot be
// replaced by a closed-form power.
func nextRequirement(level int, prev int) int {
	switch {
	case level <= 1:
		return 0
	case level == 2:
		return 50
	case level == 3:
		return 100
	default:
		return int(math.Round(float64(prev) * levelGrowthRate))
	}
}

// XPRequiredForLevel returns the XP needed to advance from level-1 to level.
func XPRequiredForLevel(level int) int {
	if level > MaxLevel+1 {
		level = MaxLevel + 1
	}
	req := 0
	for l := 2; l <= level; l++ {
		req = nextRequirement(l, req)
	}
	return req
}

// CumulativeXPForLevel returns the total XP at which level is reached.
func CumulativeXPForLevel(level int) int {
	if level > MaxLevel+1 {
		level = MaxLevel + 1
	}
	total, req := 0, 0
	for l := 2; l <= level; l++ {
		req = nextRequirement(l, req)
		total += req
	}
	return total
}

// LevelForTotalXP returns the highest level whose cumulative threshold is
// <= totalXP, never below 1 and never above MaxLevel.
func LevelForTotalXP(totalXP int) int {
	level, cumulative, req := 1, 0, 0
	for level < MaxLevel {
		req = nextRequirement(level+1, req)
		if cumulative+req > totalXP {
			break
		}
		cumulative += req
		level++
	}
	return level
}

type Progress struct {
	Current    int
	Required   int
	Percentage int
}

// ProgressWithinLevel reports how far totalXP is into level.
func ProgressWithinLevel(totalXP int, level int) Progress {
	if level < 1 {
		level = 1
	}
	p := Progress{
		Current:  totalXP - CumulativeXPForLevel(level),
		Required: XPRequiredForLevel(level + 1),
	}
	if p.Required <= 0 {
		return p
	}
	pct := int(math.Round(100 * float64(p.Current) / float64(p.Required)))
	p.Percentage = min(max(pct, 0), 100)
	return p
}

type XPChange struct {
	PreviousTotalXP int
	PreviousLevel   int
	NewTotalXP      int
	NewLevel        int
	LeveledUp       bool
	LeveledDown     bool
	Progress        Progress
}

// ApplyXPDelta adds delta to previousTotalXP with a floor of zero. Negative
// deltas (undoing a completion) are valid.
func ApplyXPDelta(previousTotalXP int, delta int) XPChange {
	if previousTotalXP < 0 {
		previousTotalXP = 0
	}
	newTotal := max(previousTotalXP+delta, 0)
	prevLevel := LevelForTotalXP(previousTotalXP)
	newLevel := LevelForTotalXP(newTotal)
	return XPChange{
		PreviousTotalXP: previousTotalXP,
		PreviousLevel:   prevLevel,
		NewTotalXP:      newTotal,
		NewLevel:        newLevel,
		LeveledUp:       newLevel > prevLevel,
		LeveledDown:     newLevel < prevLevel,
		Progress:        ProgressWithinLevel(newTotal, newLevel),
	}
}

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXPForDifficulty(t *testing.T) {
	assert.Equal(t, 5, XPForDifficulty(DifficultyEasy))
	assert.Equal(t, 10, XPForDifficulty(DifficultyMedium))
	assert.Equal(t, 20, XPForDifficulty(DifficultyHard))
	assert.Equal(t, 5, XPForDifficulty(Difficulty("legendary")), "unknown tier falls back to easy")
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty(" Hard ")
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, d)

	d, err = ParseDifficulty("")
	require.NoError(t, err)
	assert.Equal(t, DifficultyEasy, d)

	d, err = ParseDifficulty("legendary")
	assert.ErrorIs(t, err, ErrInvalidDifficultyTier)
	assert.Equal(t, DifficultyEasy, d)
}

func TestTotalAwardForMission_DailyBonus(t *testing.T) {
	assert.Equal(t, 15, TotalAwardForMission(XPForDifficulty(DifficultyMedium), true))
	assert.Equal(t, 10, TotalAwardForMission(XPForDifficulty(DifficultyMedium), false))
}

func TestXPRequiredForLevel(t *testing.T) {
	cases := map[int]int{
		-1: 0,
		0:  0,
		1:  0,
		2:  50,
		3:  100,
		4:  150,
		5:  225,
		6:  338, // round(337.5)
		7:  507,
	}
	for level, want := range cases {
		assert.Equal(t, want, XPRequiredForLevel(level), "level %d", level)
	}
}

func TestCumulativeXPForLevel(t *testing.T) {
	assert.Equal(t, 0, CumulativeXPForLevel(1))
	assert.Equal(t, 50, CumulativeXPForLevel(2))
	assert.Equal(t, 300, CumulativeXPForLevel(4))
	assert.Equal(t, 525, CumulativeXPForLevel(5))
}

func TestLevelForTotalXP_Boundaries(t *testing.T) {
	assert.Equal(t, 1, LevelForTotalXP(-10))
	assert.Equal(t, 1, LevelForTotalXP(0))
	assert.Equal(t, 1, LevelForTotalXP(49))
	assert.Equal(t, 2, LevelForTotalXP(50))
	assert.Equal(t, 3, LevelForTotalXP(299))
	assert.Equal(t, 4, LevelForTotalXP(300))
	assert.Equal(t, 5, LevelForTotalXP(525))
}

func TestLevelForTotalXP_MonotonicAndBounded(t *testing.T) {
	prev := LevelForTotalXP(0)
	for xp := 1; xp <= 20_000; xp++ {
		level := LevelForTotalXP(xp)
		require.GreaterOrEqual(t, level, prev, "xp %d", xp)
		require.LessOrEqual(t, CumulativeXPForLevel(level), xp, "xp %d", xp)
		require.Less(t, xp, CumulativeXPForLevel(level+1), "xp %d", xp)
		prev = level
	}
}

func TestLevelForTotalXP_Cap(t *testing.T) {
	huge := CumulativeXPForLevel(MaxLevel) * 10
	assert.Equal(t, MaxLevel, LevelForTotalXP(huge))
	p := ProgressWithinLevel(huge, MaxLevel)
	assert.Equal(t, 100, p.Percentage)
}

func TestProgressWithinLevel(t *testing.T) {
	p := ProgressWithinLevel(375, 4)
	assert.Equal(t, Progress{Current: 75, Required: 225, Percentage: 33}, p)

	p = ProgressWithinLevel(0, 1)
	assert.Equal(t, Progress{Current: 0, Required: 50, Percentage: 0}, p)

	assert.Equal(t, ProgressWithinLevel(375, 4), ProgressWithinLevel(375, 4), "pure")
}

func TestApplyXPDelta(t *testing.T) {
	c := ApplyXPDelta(10, -25)
	assert.Equal(t, 0, c.NewTotalXP)
	assert.Equal(t, 1, c.NewLevel)
	assert.False(t, c.LeveledUp)
	assert.False(t, c.LeveledDown)

	c = ApplyXPDelta(45, 10)
	assert.Equal(t, 55, c.NewTotalXP)
	assert.Equal(t, 2, c.NewLevel)
	assert.True(t, c.LeveledUp)
	assert.Equal(t, Progress{Current: 5, Required: 100, Percentage: 5}, c.Progress)

	c = ApplyXPDelta(60, -20)
	assert.Equal(t, 40, c.NewTotalXP)
	assert.Equal(t, 1, c.NewLevel)
	assert.True(t, c.LeveledDown)
}

func TestApplyXPDelta_NeverNegative(t *testing.T) {
	for prev := 0; prev <= 600; prev += 37 {
		for delta := -1000; delta <= 1000; delta += 91 {
			c := ApplyXPDelta(prev, delta)
			require.GreaterOrEqual(t, c.NewTotalXP, 0, "prev=%d delta=%d", prev, delta)
			require.Equal(t, LevelForTotalXP(c.NewTotalXP), c.NewLevel)
		}
	}
}

package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homequest/internal/storage"
)

func strPtr(s string) *string { return &s }

func fixtureMissions() []storage.Mission {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return []storage.Mission{
		{ID: "a", Title: "Wash dishes", Room: RoomKitchen, Status: storage.StatusPending, Difficulty: "easy", IsDaily: true, DueDate: strPtr("2025-01-02"), CreatedAt: base},
		{ID: "b", Title: "Clean oven", Room: RoomKitchen, Status: storage.StatusDone, Difficulty: "hard", DueDate: strPtr("2024-12-30"), CreatedAt: base.Add(time.Hour)},
		{ID: "c", Title: "Fix tap", Description: strPtr("bathroom sink drips"), Room: RoomBathroom, Status: storage.StatusPending, Difficulty: "medium", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "d", Title: "buy plants", Room: RoomGarden, Status: storage.StatusPending, Difficulty: "medium", QuestID: strPtr("q1"), DueDate: strPtr("2025-01-10"), CreatedAt: base.Add(3 * time.Hour)},
	}
}

func ids(ms []storage.Mission) []string {
	out := make([]string, len(ms))
	for i := range ms {
		out[i] = ms[i].ID
	}
	return out
}

func TestFilterMissions(t *testing.T) {
	all := fixtureMissions()
	dueBy, err := ParseDate("2025-01-05")
	require.NoError(t, err)

	cases := []struct {
		name   string
		filter MissionFilter
		want   []string
	}{
		{"zero filter", MissionFilter{}, []string{"a", "b", "c", "d"}},
		{"pending", MissionFilter{Status: storage.StatusPending}, []string{"a", "c", "d"}},
		{"room alias", MissionFilter{Room: "k"}, []string{"a", "b"}},
		{"quest", MissionFilter{QuestID: "q1"}, []string{"d"}},
		{"daily", MissionFilter{DailyOnly: true}, []string{"a"}},
		{"due by excludes undated", MissionFilter{DueBy: &dueBy}, []string{"a", "b"}},
		{"query matches description", MissionFilter{Query: "SINK"}, []string{"c"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(FilterMissions(all, tc.filter)))
		})
	}
}

func TestSortMissions(t *testing.T) {
	cases := []struct {
		key  SortKey
		want []string
	}{
		{SortByDue, []string{"b", "a", "d", "c"}},
		{SortByCreated, []string{"a", "b", "c", "d"}},
		{SortByDifficulty, []string{"b", "c", "d", "a"}},
		{SortByTitle, []string{"d", "b", "c", "a"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.key), func(t *testing.T) {
			ms := fixtureMissions()
			SortMissions(ms, tc.key)
			assert.Equal(t, tc.want, ids(ms))
		})
	}
}

func TestParseSortKey(t *testing.T) {
	k, ok := ParseSortKey("")
	assert.True(t, ok)
	assert.Equal(t, SortByDue, k)

	_, ok = ParseSortKey("priority")
	assert.False(t, ok)
}

func TestIsOverdue(t *testing.T) {
	today, _ := ParseDate("2025-01-03")
	ms := fixtureMissions()
	assert.True(t, IsOverdue(&ms[0], today))
	assert.False(t, IsOverdue(&ms[1], today), "done missions are never overdue")
	assert.False(t, IsOverdue(&ms[2], today), "undated")
	assert.False(t, IsOverdue(&ms[3], today))
}

func TestResolvePrefix(t *testing.T) {
	known := []string{"4f1c2a90-aaaa", "4f1d0000-bbbb", "9e000000-cccc"}

	id, err := resolvePrefix("9e", known)
	require.NoError(t, err)
	assert.Equal(t, "9e000000-cccc", id)

	_, err = resolvePrefix("4f1", known)
	assert.ErrorContains(t, err, "ambiguous")

	_, err = resolvePrefix("zz", known)
	assert.Error(t, err)

	assert.Equal(t, "4f1c2a90", ShortID(known[0]))
}

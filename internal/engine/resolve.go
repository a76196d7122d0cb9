package engine

import (
	"context"
	"fmt"
	"strings"
)

// ResolveMissionID expands a unique id prefix (as printed by the CLI) to a full id.
func (s *Service) ResolveMissionID(ctx context.Context, prefix string) (string, error) {
	all, err := s.missions.ListAll(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(all))
	for i := range all {
		ids[i] = all[i].ID
	}
	id, err := resolvePrefix(prefix, ids)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMissionNotFound, err)
	}
	return id, nil
}

// ResolveQuestID expands a unique quest id prefix.
func (s *Service) ResolveQuestID(ctx context.Context, prefix string) (string, error) {
	all, err := s.quests.ListAll(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(all))
	for i := range all {
		ids[i] = all[i].ID
	}
	id, err := resolvePrefix(prefix, ids)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrQuestNotFound, err)
	}
	return id, nil
}

func resolvePrefix(prefix string, ids []string) (string, error) {
	p := strings.ToLower(strings.TrimSpace(prefix))
	if p == "" {
		return "", fmt.Errorf("empty id")
	}
	var match string
	for _, id := range ids {
		if id == p {
			return id, nil
		}
		if strings.HasPrefix(id, p) {
			if match != "" {
				return "", fmt.Errorf("id prefix %q is ambiguous", prefix)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("no id starts with %q", prefix)
	}
	return match, nil
}

// ShortID is the prefix the CLI prints for an id.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

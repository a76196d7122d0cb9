package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"homequest/internal/engine"
	"homequest/internal/storage"
	"homequest/internal/ui"
)

func newListCmd() *cobra.Command {
	var (
		all    bool
		done   bool
		room   string
		quest  string
		dueBy  string
		daily  bool
		query  string
		sortBy string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List missions (pending by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			key, ok := engine.ParseSortKey(sortBy)
			if !ok {
				return fmt.Errorf("unknown sort key %q (due|created|difficulty|title)", sortBy)
			}
			f := engine.MissionFilter{
				Status:    storage.StatusPending,
				Room:      room,
				DailyOnly: daily,
				Query:     query,
				SortBy:    key,
			}
			switch {
			case all:
				f.Status = ""
			case done:
				f.Status = storage.StatusDone
			}
			today := svc.Today()
			if dueBy != "" {
				d, err := parseDateFlag(dueBy, today)
				if err != nil {
					return err
				}
				f.DueBy = &d
			}
			if quest != "" {
				if f.QuestID, err = svc.ResolveQuestID(ctx, quest); err != nil {
					return err
				}
			}

			missions, err := svc.ListMissions(ctx, f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconMission, fmt.Sprintf("Missions (%d)", len(missions))))
			if len(missions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Nothing here. Add one with `hq add`."))
				return nil
			}
			for i := range missions {
				fmt.Fprintln(cmd.OutOrStdout(), "- "+missionLine(&missions[i], today))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed missions")
	cmd.Flags().BoolVar(&done, "done", false, "Only completed missions")
	cmd.Flags().StringVarP(&room, "room", "r", "", "Only missions in this room")
	cmd.Flags().StringVarP(&quest, "quest", "q", "", "Only missions in this quest (ID prefix)")
	cmd.Flags().StringVar(&dueBy, "due", "", "Only missions due on or before (YYYY-MM-DD, today, tomorrow)")
	cmd.Flags().BoolVar(&daily, "daily", false, "Only daily missions")
	cmd.Flags().StringVarP(&query, "search", "s", "", "Text search in title and description")
	cmd.Flags().StringVar(&sortBy, "sort", "due", "Sort by due|created|difficulty|title")

	return cmd
}

package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"homequest/internal/engine"
	"homequest/internal/storage"
	"homequest/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, XP and achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := svc.Profile(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			toNext := max(st.Progress.Required-st.Progress.Current, 0)

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Player Status"))
			fmt.Fprintln(out, ui.LabelValue("Level", st.Level))
			fmt.Fprintln(out, ui.LabelValue("Total XP", fmt.Sprintf("%d (%d to level %d)", st.Profile.TotalXP, toNext, st.Level+1)))
			fmt.Fprintf(out, "%s %s %s\n", ui.Key.Render("Progress:"), ui.ProgressBar(st.Progress.Percentage, 20), ui.Muted.Render(fmt.Sprintf("%d%%", st.Progress.Percentage)))
			fmt.Fprintln(out, ui.LabelValue("Missions completed", st.Profile.MissionsCompleted))
			fmt.Fprintln(out, "")

			pending, err := svc.ListMissions(ctx, engine.MissionFilter{Status: storage.StatusPending})
			if err != nil {
				return err
			}
			today := svc.Today()
			overdue, dueToday := 0, 0
			for i := range pending {
				switch {
				case engine.IsOverdue(&pending[i], today):
					overdue++
				case pending[i].DueDate != nil && *pending[i].DueDate == today.String():
					dueToday++
				}
			}
			fmt.Fprintln(out, ui.H2.Render(ui.IconMission+" Missions"))
			fmt.Fprintf(out, "- %s %d\n", ui.Key.Render("Pending:"), len(pending))
			fmt.Fprintf(out, "- %s %d\n", ui.Key.Render("Due today:"), dueToday)
			if overdue > 0 {
				fmt.Fprintf(out, "- %s %s\n", ui.Key.Render("Overdue:"), ui.Bad.Render(fmt.Sprint(overdue)))
			}
			fmt.Fprintln(out, "")

			achievements, err := svc.Achievements(ctx)
			if err != nil {
				return err
			}
			earned := 0
			for _, a := range achievements {
				if a.Earned {
					earned++
				}
			}
			fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s Achievements (%d/%d)", ui.IconTrophy, earned, len(achievements))))
			for _, a := range achievements {
				if a.Earned {
					fmt.Fprintf(out, "- %s %s %s\n", a.Icon, ui.Gold.Render(a.Name), ui.Muted.Render(a.Description))
				} else {
					fmt.Fprintf(out, "- %s %s\n", ui.Muted.Render("🔒 "+a.Name), ui.Muted.Render(a.Description))
				}
			}
			return nil
		},
	}

	return cmd
}

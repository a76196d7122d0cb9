package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"homequest/internal/engine"
	"homequest/internal/ui"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Complete a mission",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := svc.ResolveMissionID(ctx, args[0])
			if err != nil {
				return err
			}
			m, err := svc.GetMission(ctx, id)
			if err != nil {
				return err
			}
			res, err := svc.CompleteMission(ctx, id)
			if err != nil {
				return err
			}
			printCompletion(cmd, missionName(m), res)
			return nil
		},
	}

	return cmd
}

func printCompletion(cmd *cobra.Command, name string, res *engine.CompleteResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s %s\n", ui.Good.Render(ui.IconDone+" Completed"), name, ui.Gold.Render(fmt.Sprintf("(+%d XP)", res.XPAwarded)))
	fmt.Fprintln(out, levelLine(res.LevelBefore, res.LevelAfter))
	fmt.Fprintf(out, "%s %s %s\n", ui.Key.Render("XP:"), ui.ProgressBar(res.Progress.Percentage, 20),
		ui.Muted.Render(fmt.Sprintf("%d/%d", res.Progress.Current, res.Progress.Required)))
	if res.LevelUp {
		fmt.Fprintln(out, ui.IconTrophy+" "+ui.BadgeLevelUp)
	}
	switch {
	case res.NextMissionID != "":
		fmt.Fprintf(out, "%s %s\n", ui.H2.Render(ui.IconLoop+" Next occurrence"),
			ui.Muted.Render(fmt.Sprintf("%s due %s", engine.ShortID(res.NextMissionID), res.NextDueDate)))
	case res.RecurrenceEnded:
		fmt.Fprintln(out, ui.Muted.Render(ui.IconLoop+" Series finished, no further occurrences"))
	}
}

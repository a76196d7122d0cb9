package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"homequest/internal/ui"
)

func newUndoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "undo <id>",
		Aliases: []string{"restore"},
		Short:   "Undo a mission completion",
		Long: `Return a completed mission to pending.

This will:
- Deduct the XP that was awarded (total XP never drops below zero)
- Reset the mission status to pending

A next occurrence already created for a recurring mission is kept.`,
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
			res, err := svc.UncompleteMission(ctx, id)
			if err != nil {
				return err
			}

			line := fmt.Sprintf("%s %s %s", ui.Warn.Render(ui.IconUndo+" Restored"), missionName(m), ui.Muted.Render(fmt.Sprintf("(-%d XP)", res.XPDeducted)))
			fmt.Fprintln(cmd.OutOrStdout(), line)
			fmt.Fprintln(cmd.OutOrStdout(), levelLine(res.LevelBefore, res.LevelAfter))
			if res.LevelDown {
				fmt.Fprintln(cmd.OutOrStdout(), ui.IconWarn+" "+ui.BadgeLevelDown)
			}
			return nil
		},
	}

	return cmd
}

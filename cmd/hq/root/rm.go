package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"homequest/internal/ui"
)

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a mission",
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
			if err := svc.DeleteMission(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render(ui.IconTrash+" Deleted"), missionName(m))
			return nil
		},
	}

	return cmd
}

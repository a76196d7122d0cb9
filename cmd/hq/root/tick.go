package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"homequest/internal/ui"
)

func newTickCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tick <id> [n]",
		Short: "Add progress to a counted mission (default 1)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return errors.New("id is required")
			}
			if len(args) == 2 {
				if _, err := strconv.Atoi(args[1]); err != nil {
					return errors.New("n must be an integer")
				}
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

			n := 1
			if len(args) == 2 {
				n, _ = strconv.Atoi(args[1])
			}
			id, err := svc.ResolveMissionID(ctx, args[0])
			if err != nil {
				return err
			}
			m, err := svc.GetMission(ctx, id)
			if err != nil {
				return err
			}
			res, err := svc.AddProgress(ctx, id, n)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.H2.Render(ui.IconCount+" Progress"), missionName(m), ui.ProgressBar(100*res.Count/max(res.Target, 1), 10)+ui.Muted.Render(fmt.Sprintf(" %d/%d", res.Count, res.Target)))
			if res.Completed != nil {
				printCompletion(cmd, missionName(m), res.Completed)
			}
			return nil
		},
	}

	return cmd
}

func newLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log <id> <duration>",
		Short: "Log time spent on a mission (e.g. 25m, 1h30m)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("id and duration are required")
			}
			if _, err := time.ParseDuration(args[1]); err != nil {
				return fmt.Errorf("invalid duration %q", args[1])
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

			d, _ := time.ParseDuration(args[1])
			id, err := svc.ResolveMissionID(ctx, args[0])
			if err != nil {
				return err
			}
			m, err := svc.GetMission(ctx, id)
			if err != nil {
				return err
			}
			total, err := svc.LogTime(ctx, id, d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.H2.Render(ui.IconClock+" Logged "+d.String()), missionName(m), ui.Muted.Render("(total "+total.String()+")"))
			return nil
		},
	}

	return cmd
}

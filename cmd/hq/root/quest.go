package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"homequest/internal/engine"
	"homequest/internal/ui"
)

func newQuestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quest",
		Short: "Manage quests (ordered groups of missions)",
	}
	cmd.AddCommand(
		newQuestNewCmd(),
		newQuestListCmd(),
		newQuestShowCmd(),
		newQuestAssignCmd(),
	)
	return cmd
}

func newQuestNewCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "new <title>",
		Short: "Create a quest",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("title is required")
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

			q, err := svc.CreateQuest(ctx, strings.Join(args, " "), description)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconQuest+" Quest created"), ui.Muted.Render(engine.ShortID(q.ID)), q.Title)
			fmt.Fprintf(cmd.OutOrStdout(), "%s Add missions with: %s\n", ui.Muted.Render("💡"),
				ui.Key.Render(fmt.Sprintf("hq add -q %s \"First step\"", engine.ShortID(q.ID))))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "desc", "", "Description")
	return cmd
}

func newQuestListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quests with progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			quests, err := svc.ListQuests(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconQuest, fmt.Sprintf("Quests (%d)", len(quests))))
			for _, p := range quests {
				fmt.Fprintln(cmd.OutOrStdout(), "- "+questLine(p))
			}
			return nil
		},
	}
	return cmd
}

func newQuestShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <quest_id>",
		Short: "Show a quest and its missions",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("quest_id is required")
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

			id, err := svc.ResolveQuestID(ctx, args[0])
			if err != nil {
				return err
			}
			p, err := svc.QuestProgress(ctx, id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconQuest, p.Quest.Title))
			if p.Quest.Description != nil {
				fmt.Fprintln(out, ui.Muted.Render(*p.Quest.Description))
			}
			fmt.Fprintln(out, questLine(*p))
			today := svc.Today()
			for i := range p.Missions {
				fmt.Fprintf(out, "%2d. %s\n", i+1, missionLine(&p.Missions[i], today))
			}
			return nil
		},
	}
	return cmd
}

func newQuestAssignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign <mission_id> [quest_id]",
		Short: "Move a mission to the end of a quest (omit quest_id to detach)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return errors.New("mission_id is required")
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

			missionID, err := svc.ResolveMissionID(ctx, args[0])
			if err != nil {
				return err
			}
			questID := ""
			if len(args) == 2 {
				if questID, err = svc.ResolveQuestID(ctx, args[1]); err != nil {
					return err
				}
			}
			if err := svc.AssignMissionToQuest(ctx, missionID, questID); err != nil {
				return err
			}
			if questID == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render("Detached"), engine.ShortID(missionID))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s → %s\n", ui.Good.Render("Assigned"), engine.ShortID(missionID), engine.ShortID(questID))
			return nil
		},
	}
	return cmd
}

func questLine(p engine.QuestProgress) string {
	status := ui.Muted.Render(fmt.Sprintf("%d/%d", p.Done, p.Total))
	if p.Total > 0 && p.Done == p.Total {
		status = ui.Good.Render(ui.IconTrophy + " complete")
	}
	return fmt.Sprintf("%s %s %s %s", ui.Muted.Render(engine.ShortID(p.Quest.ID)), p.Quest.Title, ui.ProgressBar(p.Percentage, 10), status)
}

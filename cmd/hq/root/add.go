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

func newAddCmd() *cobra.Command {
	var (
		difficulty  string
		description string
		daily       bool
		room        string
		quest       string
		due         string
		count       int
		repeat      string
		every       int
		on          string
		day         int
		until       string
		times       int
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a mission",
		Example: `  hq add "Take out the trash" --daily
  hq add "Water plants" --repeat weekly --on mon,thu --room garden
  hq add "Pay rent" --repeat monthly --day 1 -d medium
  hq add "Fold laundry" --count 3`,
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

			pattern, err := engine.ParsePattern(repeat)
			if err != nil {
				return err
			}
			rule := engine.Rule{
				Pattern:        pattern,
				Interval:       every,
				DayOfMonth:     day,
				MaxOccurrences: times,
			}
			if on != "" {
				if rule.Weekdays, err = engine.ParseWeekdays(on); err != nil {
					return err
				}
			}
			today := svc.Today()
			if until != "" {
				end, err := parseDateFlag(until, today)
				if err != nil {
					return err
				}
				rule.EndDate = &end
			}
			dueDate, err := parseDateFlag(due, today)
			if err != nil {
				return err
			}

			in := engine.CreateMissionInput{
				Title:       strings.Join(args, " "),
				Description: description,
				Difficulty:  difficulty,
				IsDaily:     daily,
				Room:        room,
				DueDate:     dueDate.String(),
				TargetCount: count,
				Recurrence:  rule,
			}
			if quest != "" {
				if in.QuestID, err = svc.ResolveQuestID(ctx, quest); err != nil {
					return err
				}
			}

			res, err := svc.CreateMission(ctx, in)
			if err != nil {
				return err
			}
			m, err := svc.GetMission(ctx, res.MissionID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconPlus+" Added"), missionLine(m, today))
			return nil
		},
	}

	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "easy", "Difficulty (easy|medium|hard)")
	cmd.Flags().StringVar(&description, "desc", "", "Description")
	cmd.Flags().BoolVar(&daily, "daily", false, "Daily mission (+5 XP bonus)")
	cmd.Flags().StringVarP(&room, "room", "r", "", "Room of the base (kitchen, bathroom, garden, ...)")
	cmd.Flags().StringVarP(&quest, "quest", "q", "", "Quest ID (prefix) to add the mission to")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD, today, tomorrow)")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "Target count, completed by repeated hq tick")
	cmd.Flags().StringVar(&repeat, "repeat", "", "Recurrence (daily|weekly|monthly|yearly)")
	cmd.Flags().IntVar(&every, "every", 1, "Recurrence interval")
	cmd.Flags().StringVar(&on, "on", "", "Weekdays for weekly recurrence (e.g. mon,thu)")
	cmd.Flags().IntVar(&day, "day", 0, "Day of month for monthly recurrence")
	cmd.Flags().StringVar(&until, "until", "", "Last date an occurrence may fall on")
	cmd.Flags().IntVar(&times, "times", 0, "Maximum number of occurrences")

	return cmd
}

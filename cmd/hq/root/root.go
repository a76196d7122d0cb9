package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"homequest/internal/engine"
	"homequest/internal/ui"
)

const Version = "0.1.0"

var (
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:           "hq",
	Short:         "HomeQuest: gamified household missions",
	Long:          "HomeQuest is a local-first CLI/TUI for household chores with XP, levels, quests and recurring missions.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default $HQ_CONFIG or ~/.config/homequest/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "SQLite database path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(
		newAddCmd(),
		newDoCmd(),
		newUndoCmd(),
		newTickCmd(),
		newLogCmd(),
		newRmCmd(),
		newListCmd(),
		newStatusCmd(),
		newQuestCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		if engine.IsConflict(err) {
			fmt.Fprintln(os.Stderr, ui.Muted.Render("The mission changed in another session; run the command again."))
		}
		os.Exit(1)
	}
}

// Package cli implements the habitly command line on top of a local SQLite
// store. Each subcommand group lives in its own file.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "habitly",
		Short: "Habitly tracks daily and weekly habits",
		Long: `Habitly records habit completions together with your mood before and
after, and reports current and longest streaks.

No pressure, no perfection: just consistent, kind progress.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ~/.habitly/config.toml)")
	flags.StringVar(&a.dataDir, "data-dir", "", "directory of the habitly database")
	flags.StringVarP(&a.userName, "user", "u", "", "user to act as")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newUserCommand(a),
		newHabitCommand(a),
		newEventCommand(a),
		newAnalyticsCommand(a),
		newSummaryCommand(a),
	)

	return root
}

// Execute runs the command line. Called from main.go.
func Execute(version string) {
	a := &app{}
	root := newRootCommand(a)
	root.Version = version

	err := root.ExecuteContext(context.Background())
	_ = a.close()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/habitly/internal/core/domain"
)

func newAnalyticsCommand(a *app) *cobra.Command {
	var today string

	cmd := &cobra.Command{
		Use:   "analytics HABIT",
		Short: "Show streaks, completions and mood improvements of a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			habit, err := a.habitByName(ctx, args[0])
			if err != nil {
				return err
			}

			input := domain.AnalyticsInput{UserID: a.user.ID, HabitID: habit.ID}
			if today != "" {
				var day time.Time
				if day, err = domain.ParseDate(today); err != nil {
					return err
				}
				input.Today = day
			}

			r, err := a.analytics.HabitAnalytics(ctx, input)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "📈 Analytics for '%s' (%s habit)\n\n", r.Name, r.Periodicity)
			fmt.Fprintf(out, "  Description:       %s\n", r.Description)
			fmt.Fprintf(out, "  Created on:        %s\n", r.CreatedOn)
			fmt.Fprintf(out, "  Total completions: %d\n", r.TotalCompletions)
			fmt.Fprintf(out, "  Current streak:    %d %s\n", r.CurrentStreak, r.Unit)
			fmt.Fprintf(out, "  Longest streak:    %d %s\n", r.LongestStreak, r.Unit)
			if r.LastCompletion != "" {
				fmt.Fprintf(out, "  Last completion:   %s\n", r.LastCompletion)
			}
			fmt.Fprintf(out, "\n  %d time(s) %s's mood improved after '%s'\n", r.MoodImprovements, a.user.Name, r.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&today, "today", "", "evaluate the current streak as of this day (YYYY-MM-DD)")

	return cmd
}

func newSummaryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show how many habits you track",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.analytics.Summary(cmd.Context(), a.user.ID)
			if err != nil {
				return err
			}

			if s.TotalCount == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s has no habits yet.\n", s.UserName)
				return nil
			}

			parts := make([]string, 0, len(s.Habits))
			for _, h := range s.Habits {
				parts = append(parts, fmt.Sprintf("%s (%s)", h.Name, h.Periodicity))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s has %d habit(s): %s\n", s.UserName, s.TotalCount, strings.Join(parts, ", "))
			return nil
		},
	}
}

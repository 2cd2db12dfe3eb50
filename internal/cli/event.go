package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/habitly/internal/core/domain"
	"github.com/comitanigiacomo/habitly/internal/core/services"
)

const noMood = "—"

func newEventCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Record, list and delete habit completions",
	}

	cmd.AddCommand(
		newEventAddCommand(a),
		newEventListCommand(a),
		newEventDeleteCommand(a),
	)

	return cmd
}

func newEventAddCommand(a *app) *cobra.Command {
	var date, before, after string

	cmd := &cobra.Command{
		Use:   "add HABIT",
		Short: "Mark a habit as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			habit, err := a.habitByName(ctx, args[0])
			if err != nil {
				return err
			}

			var day time.Time
			if date != "" {
				if day, err = domain.ParseDate(date); err != nil {
					return err
				}
			}

			event, err := a.events.Record(ctx, services.RecordEventInput{
				HabitID:    habit.ID,
				UserID:     a.user.ID,
				Date:       day,
				MoodBefore: before,
				MoodAfter:  after,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Thanks for showing up for '%s' on %s!\n", habit.Name, domain.FormatDate(event.Date))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "completion date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&before, "before", "", "mood before: 😞 😐 😄 or negative, neutral, positive")
	cmd.Flags().StringVar(&after, "after", "", "mood after: 😞 😐 😄 or negative, neutral, positive")

	return cmd
}

func moodOrDash(m domain.Mood) string {
	if m.IsZero() {
		return noMood
	}
	return m.String()
}

func newEventListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list HABIT",
		Aliases: []string{"ls", "log"},
		Short:   "Show the full log of a habit",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			habit, err := a.habitByName(ctx, args[0])
			if err != nil {
				return err
			}

			events, err := a.events.ListByHabitID(ctx, habit.ID, a.user.ID)
			if err != nil {
				return err
			}

			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No events tracked yet.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tBEFORE\tAFTER")
			for _, e := range events {
				fmt.Fprintf(w, "%s\t%s\t%s\n", domain.FormatDate(e.Date), moodOrDash(e.MoodBefore), moodOrDash(e.MoodAfter))
			}
			return w.Flush()
		},
	}
}

func newEventDeleteCommand(a *app) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:     "delete HABIT --date YYYY-MM-DD",
		Aliases: []string{"rm"},
		Short:   "Delete the completions of a habit on one day",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			day, err := domain.ParseDate(date)
			if err != nil {
				return err
			}

			habit, err := a.habitByName(ctx, args[0])
			if err != nil {
				return err
			}

			n, err := a.events.DeleteByDate(ctx, habit.ID, a.user.ID, day)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "❌ Deleted %d event(s) on %s for '%s'.\n", n, domain.FormatDate(day), habit.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day to delete (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

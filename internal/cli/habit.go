package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/habitly/internal/core/domain"
	"github.com/comitanigiacomo/habitly/internal/core/services"
)

func newHabitCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Create, list and delete habits",
	}

	cmd.AddCommand(
		newHabitCreateCommand(a),
		newHabitListCommand(a),
		newHabitDeleteCommand(a),
	)

	return cmd
}

func newHabitCreateCommand(a *app) *cobra.Command {
	var description, period string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a daily or weekly habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			habit, err := a.habits.Create(cmd.Context(), services.CreateHabitInput{
				UserID:      a.user.ID,
				Name:        args[0],
				Description: description,
				Periodicity: period,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ Habit '%s' created, keep it up %s!\n", habit.Name, habit.Periodicity)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "short description")
	cmd.Flags().StringVarP(&period, "period", "p", string(domain.Daily), "daily or weekly")

	return cmd
}

func newHabitListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your habits with their streaks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			habits, err := a.habits.ListByUserID(ctx, a.user.ID)
			if err != nil {
				return err
			}

			if len(habits) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No habits yet. Run 'habitly habit create <name>' to get started.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPERIOD\tCURRENT\tLONGEST\tCREATED")
			for _, h := range habits {
				current, longest, _, err := a.streaks.Recompute(ctx, h.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
					h.Name,
					h.Periodicity,
					current,
					longest,
					domain.FormatDate(h.CreatedAt),
				)
			}
			return w.Flush()
		},
	}
}

func newHabitDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete NAME",
		Aliases: []string{"rm"},
		Short:   "Delete a habit and all of its events",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			habit, err := a.habitByName(ctx, args[0])
			if err != nil {
				return err
			}

			if err := a.habits.Delete(ctx, habit.ID, a.user.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "🗑️ Habit '%s' deleted.\n", habit.Name)
			return nil
		},
	}
}

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newUserCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Inspect users",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all users and how many habits they track",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			users, err := a.auth.ListUsers(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tHABITS\tSINCE")
			for _, u := range users {
				habits, err := a.habits.ListByUserID(ctx, u.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%d\t%s\n", u.Name, len(habits), u.CreatedAt.Format("2006-01-02"))
			}
			return w.Flush()
		},
	})

	return cmd
}

package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func activityCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "List recent action outcomes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.activity.GetRecentActivity(limit)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No activity yet")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tACTION\tRESULT\tMESSAGE")
			for _, item := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", item.CreatedAt.Format(time.RFC3339), item.Category, item.Phase, item.Message)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")
	return cmd
}

package commands

import (
	"os"

	"github.com/spf13/cobra"
)

var historyLimit *int

func init() {
	historyLimit = historyCmd.Flags().Int("limit", 20, "The number of runs to list, 0 lists every run.")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history [--limit <n>]",
	Short: "Lists the runs recorded with evaluate --record.",
	Run: func(cmd *cobra.Command, args []string) {
		store := openHistory(cmd.Context())
		defer store.Close()

		runs, err := store.List(cmd.Context(), *historyLimit)
		if err != nil {
			fatal("failed to list runs", err)
		}
		renderHistory(os.Stdout, runs)
	},
}

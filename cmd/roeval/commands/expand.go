package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	expandParams            paramFlags
	expandAllowExternalHost *bool
)

func init() {
	expandParams = addParamFlags(expandCmd)
	expandAllowExternalHost = expandCmd.Flags().Bool("allow-external-host", false, "Accept an evaluation uri that is not on the service host.")
	rootCmd.AddCommand(expandCmd)
}

var expandCmd = &cobra.Command{
	Use:   "expand [--ro <uri>] [--minim <path>] [--purpose <purpose>]",
	Short: "Has the service expand the checklist template and prints the evaluation uri.",
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient(clientFlags{allowExternalHost: *expandAllowExternalHost})

		template, _, err := client.ChecklistTemplate(cmd.Context())
		if err != nil {
			fatal("failed to get checklist template", err)
		}
		uri, _, err := client.ExpandTemplate(cmd.Context(), template, expandParams.params(cmd, cfg))
		if err != nil {
			fatal("failed to expand template", err)
		}
		fmt.Println(uri)
	},
}

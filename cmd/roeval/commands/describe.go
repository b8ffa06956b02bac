package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var describeDump *string

func init() {
	describeDump = describeCmd.Flags().String("dump", "", "A directory to write the http exchange to.")
	rootCmd.AddCommand(describeCmd)
}

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Prints the service description and the checklist template found in it.",
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient(clientFlags{dump: *describeDump})

		template, res, err := client.ChecklistTemplate(cmd.Context())
		if res.Step != "" {
			printResponse(os.Stdout, res)
		}
		if err != nil {
			fatal("failed to get checklist template", err)
		}
		fmt.Println("checklist template:", template)
	},
}

package commands

import (
	"fmt"
	"os"

	"roeval/lib/rdfns"

	"github.com/spf13/cobra"
)

var prefixesFormat *string

func init() {
	prefixesFormat = prefixesCmd.Flags().String("format", "table", "How to print the prefixes: table, turtle or sparql.")
	rootCmd.AddCommand(prefixesCmd)
}

var prefixesCmd = &cobra.Command{
	Use:   "prefixes [--format table|turtle|sparql]",
	Short: "Prints the namespace prefixes used with research objects.",
	Run: func(cmd *cobra.Command, args []string) {
		switch *prefixesFormat {
		case "table":
			renderPrefixes(os.Stdout, rdfns.Prefixes())
		case "turtle":
			fmt.Print(rdfns.TurtlePrefixes())
		case "sparql":
			fmt.Print(rdfns.SparqlPrefixes())
		default:
			fatal("invalid format", fmt.Errorf("unknown format %q", *prefixesFormat))
		}
	},
}

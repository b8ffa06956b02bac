package commands

import (
	"fmt"
	"os"

	"roeval/internal/roevaluate"

	"github.com/spf13/cobra"
)

var (
	resultFormat            *string
	resultAllowExternalHost *bool
)

func init() {
	resultFormat = resultCmd.Flags().String("format", "turtle", "The format to request the result in, either turtle or rdfxml.")
	resultAllowExternalHost = resultCmd.Flags().Bool("allow-external-host", false, "Allow an evaluation uri that is not on the service host.")
	rootCmd.AddCommand(resultCmd)
}

func formatMediaType(format string) (string, error) {
	switch format {
	case "turtle", "ttl":
		return roevaluate.MediaTurtle, nil
	case "rdfxml", "xml":
		return roevaluate.MediaRDFXML, nil
	}
	return "", fmt.Errorf("unknown format %q, expected turtle or rdfxml", format)
}

var resultCmd = &cobra.Command{
	Use:   "result <evaluation uri> [--format turtle|rdfxml]",
	Short: "Fetches a single evaluation result.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		accept, err := formatMediaType(*resultFormat)
		if err != nil {
			fatal("invalid format", err)
		}
		client := newClient(clientFlags{allowExternalHost: *resultAllowExternalHost})

		res, err := client.EvaluationResult(cmd.Context(), args[0], accept)
		if err != nil {
			fatal("failed to fetch evaluation result", err)
		}
		os.Stdout.Write(res.Body)
	},
}

package commands

import (
	"fmt"

	"roeval/internal/roevaluate"

	"github.com/spf13/cobra"
)

type paramFlags struct {
	ro      *string
	minim   *string
	purpose *string
}

func addParamFlags(cmd *cobra.Command) paramFlags {
	return paramFlags{
		ro:      cmd.Flags().String("ro", "", fmt.Sprintf("The uri of the research object to evaluate. (default %s)", defaultRO)),
		minim:   cmd.Flags().String("minim", "", fmt.Sprintf("The minim checklist, relative to the research object. (default %s)", defaultMinim)),
		purpose: cmd.Flags().String("purpose", "", fmt.Sprintf("The purpose to evaluate the research object for. (default %s)", defaultPurpose)),
	}
}

// params returns the configured params with any flags given on the command line applied.
func (f paramFlags) params(cmd *cobra.Command, cfg Config) roevaluate.Params {
	params := cfg.Params()
	if cmd.Flags().Changed("ro") {
		params.RO = *f.ro
	}
	if cmd.Flags().Changed("minim") {
		params.Minim = *f.minim
	}
	if cmd.Flags().Changed("purpose") {
		params.Purpose = *f.purpose
	}
	return params
}

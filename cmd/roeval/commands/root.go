package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"roeval/internal/roevaluate"
	"roeval/lib/restyutil"
	"roeval/lib/serviceutil"
	"roeval/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath *string
	verbose    *bool
	serviceUri *string
)

// set up by the root command before any subcommand runs
var (
	cfg Config
	tel telemetry.Telemetry
)

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "roeval.json5", "The config file to read, a <name>.local.<ext> next to it overrides its values.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output, including every http request.")
	serviceUri = rootCmd.PersistentFlags().String("service", "", fmt.Sprintf("The root uri of the evaluation service. (default %s)", defaultService))
}

var rootCmd = &cobra.Command{
	Use:   "roeval",
	Short: "roeval is a CLI for evaluating research objects with the ROEvaluate service.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)

		var err error
		cfg, err = LoadConfig(*configPath, cmd.Flags().Changed("config"))
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		if *serviceUri != "" {
			cfg.Service = *serviceUri
		}

		tel, err = telemetry.Setup(cmd.Context(), "roeval", cfg.Telemetry)
		if err != nil {
			serviceutil.Fatal("failed to setup telemetry", err)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		shutdownTelemetry()
	},
}

func shutdownTelemetry() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	err := tel.Shutdown(ctx)
	if err != nil {
		slog.Warn("failed to flush telemetry", "err", err.Error())
	}
}

// fatal is serviceutil.Fatal but flushes telemetry first, so the spans of the
// failed run are still exported.
func fatal(message string, err error) {
	shutdownTelemetry()
	serviceutil.Fatal(message, err)
}

type clientFlags struct {
	dump              string
	allowExternalHost bool
}

func newClient(flags clientFlags) *roevaluate.Client {
	opts := roevaluate.ClientOptions{
		ServiceURI:        cfg.Service,
		AllowExternalHost: cfg.AllowExternalHost || flags.allowExternalHost,
	}
	if flags.dump != "" {
		output, err := restyutil.NewFilesystemOutput(flags.dump)
		if err != nil {
			fatal("failed to create dump directory", err)
		}
		slog.Info("dumping http exchanges", "dir", output.Directory())
		opts.Output = output
	}

	client, err := roevaluate.NewClient(opts)
	if err != nil {
		fatal("failed to create client", err)
	}
	return client
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package commands

import (
	"context"
	"log/slog"
	"os"
	"time"

	"roeval/internal/history"
	"roeval/internal/roevaluate"

	"github.com/spf13/cobra"
)

var (
	evaluateParams            paramFlags
	evaluateDump              *string
	evaluateRecord            *bool
	evaluateAllowExternalHost *bool
)

func init() {
	evaluateParams = addParamFlags(evaluateCmd)
	evaluateDump = evaluateCmd.Flags().String("dump", "", "A directory to write every http exchange to, it may start with <dev_state>.")
	evaluateRecord = evaluateCmd.Flags().Bool("record", false, "Record the run in the history database.")
	evaluateAllowExternalHost = evaluateCmd.Flags().Bool("allow-external-host", false, "Follow evaluation uris and redirects that leave the service host.")
	rootCmd.AddCommand(evaluateCmd)
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [--ro <uri>] [--minim <path>] [--purpose <purpose>] [--dump <dir>] [--record]",
	Short: "Evaluates a research object against a minim checklist and prints the results.",
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient(clientFlags{
			dump:              *evaluateDump,
			allowExternalHost: *evaluateAllowExternalHost,
		})
		params := evaluateParams.params(cmd, cfg)
		slog.Info(
			"evaluating research object",
			"service", client.ServiceURI.String(),
			"ro", params.RO,
			"minim", params.Minim,
			"purpose", params.Purpose,
		)

		startedAt := time.Now()
		eval, err := client.Evaluate(cmd.Context(), params, func(res roevaluate.Response) {
			printResponse(os.Stdout, res)
		})

		if *evaluateRecord {
			recordErr := recordRun(cmd.Context(), cfg, startedAt, newRun(client.ServiceURI.String(), eval, err))
			if recordErr != nil {
				slog.Warn("failed to record run", "err", recordErr.Error())
			}
		}

		renderResponses(os.Stdout, eval.Responses())
		renderLinks(os.Stdout, eval.Responses())
		if err != nil {
			fatal("evaluation failed", err)
		}
		slog.Info("evaluation complete", "uri", eval.EvaluationURI, "seconds", time.Since(startedAt).Seconds())
	},
}

func openHistoryStore(ctx context.Context, cfg Config) (*history.Store, error) {
	return history.Open(ctx, history.Options{
		Path:      cfg.HistoryDb,
		Retention: cfg.HistoryRetention(),
	})
}

func openHistory(ctx context.Context) *history.Store {
	store, err := openHistoryStore(ctx, cfg)
	if err != nil {
		fatal("failed to open history database", err)
	}
	return store
}

// recordRun stores run in the history database. failing to record a run does
// not fail the evaluation itself.
func recordRun(ctx context.Context, cfg Config, startedAt time.Time, run history.Run) error {
	store, err := openHistoryStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	run.StartedAt = startedAt
	id, err := store.Record(ctx, run)
	if err != nil {
		return err
	}
	slog.Debug("recorded run", "id", id)
	return nil
}

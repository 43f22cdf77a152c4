package main

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/akom-triage-service/internal/observability"
)

type rootOptions struct {
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "akomctl",
		Short: "Triage Istanbul emergency reports from the command line",
		Long: `akomctl classifies Turkish emergency reports by event type, priority
and responsible units, extracts the reported address, and optionally
geocodes it and finds the nearest emergency facility.

Geocoding, facility lookup and transcription read the same environment
variables as the akomd service.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newAnalyzeCmd(opts),
		newTranscribeCmd(opts),
		newGenerateCmd(),
		newEvaluateCmd(),
	)
	return cmd
}

// logger writes text logs to stderr so stdout stays machine-readable.
func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	return observability.NewTextLogger(cmd.ErrOrStderr(), o.logLevel)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/akom-triage-service/internal/adapter/nominatim"
	"github.com/couchcryptid/akom-triage-service/internal/adapter/overpass"
	"github.com/couchcryptid/akom-triage-service/internal/config"
	"github.com/couchcryptid/akom-triage-service/internal/domain"
	"github.com/couchcryptid/akom-triage-service/internal/observability"
	"github.com/couchcryptid/akom-triage-service/internal/pipeline"
)

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	var (
		locate bool
		source string
	)
	cmd := &cobra.Command{
		Use:   "analyze [text]",
		Short: "Classify one report and print the result as JSON",
		Long: `Analyze prints the event type, priority, units and address fields of a
report. Without an argument the text is read from stdin.

With --locate the report is also placed on the map: Nominatim and
Overpass are queried when GEOCODER_ENABLED and FACILITY_ENABLED are set,
otherwise the district centroid is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			logger := root.logger(cmd)
			metrics := observability.NewMetricsWith(prometheus.NewRegistry())

			if !locate {
				return writeJSON(cmd.OutOrStdout(), domain.NewAnalyzer().Analyze(text))
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			var geocoder domain.Geocoder
			if cfg.GeocoderEnabled {
				geocoder = nominatim.NewClient(cfg.NominatimURL, cfg.NominatimUserAgent, cfg.NominatimTimeout, cfg.NominatimRateLimit, metrics, logger)
			}
			var locator domain.FacilityLocator
			if cfg.FacilityEnabled {
				locator = overpass.NewClient(cfg.OverpassURL, cfg.OverpassTimeout, cfg.FacilityRadiusMeters, metrics, logger)
			}

			t := pipeline.NewTransformer(domain.NewAnalyzer(), geocoder, locator, metrics, logger)
			report, err := t.Process(cmd.Context(), domain.Submission{Text: text, Source: source})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().BoolVar(&locate, "locate", false, "geocode the report and find the nearest facility")
	cmd.Flags().StringVar(&source, "source", "cli", "source recorded on the report (with --locate)")
	return cmd
}

// inputText joins the argument or, without one, reads all of r.
func inputText(r io.Reader, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

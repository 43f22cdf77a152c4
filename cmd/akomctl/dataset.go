package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/akom-triage-service/internal/dataset"
	"github.com/couchcryptid/akom-triage-service/internal/domain"
)

func newGenerateCmd() *cobra.Command {
	var (
		count  int
		seed   uint64
		output string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a labeled synthetic report dataset as CSV",
		Long: `Generate writes n synthetic reports with their expected event type,
priority, unit and location. The same seed always produces the same
dataset. The CSV carries a UTF-8 byte order mark so spreadsheet tools
read the Turkish characters correctly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count <= 0 {
				return fmt.Errorf("-n must be positive, got %d", count)
			}
			records := dataset.NewGenerator(seed).Generate(count)

			if output == "" || output == "-" {
				return dataset.WriteCSV(cmd.OutOrStdout(), records)
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			w := bufio.NewWriter(f)
			if err := dataset.WriteCSV(w, records); err != nil {
				f.Close() //nolint:errcheck // write error takes precedence
				return err
			}
			if err := w.Flush(); err != nil {
				f.Close() //nolint:errcheck // flush error takes precedence
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d records to %s\n", len(records), output)
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1000, "number of records")
	cmd.Flags().Uint64Var(&seed, "seed", dataset.DefaultSeed, "random seed")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newEvaluateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate <csv-file>",
		Short: "Score the analyzer against a labeled dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			records, err := dataset.ReadCSV(f)
			if err != nil {
				return err
			}
			printEvaluation(cmd.OutOrStdout(), dataset.Evaluate(domain.NewAnalyzer(), records))
			return nil
		},
	}
}

func printEvaluation(out io.Writer, ev dataset.Evaluation) {
	fmt.Fprintf(out, "records:    %d\n", ev.Records)
	fmt.Fprintf(out, "event type: %s\n", formatScore(ev.EventType))
	fmt.Fprintf(out, "priority:   %s\n", formatScore(ev.Priority))
	fmt.Fprintf(out, "district:   %s\n", formatScore(ev.District))
	fmt.Fprintln(out)

	events := make([]domain.EventType, 0, len(ev.PerEvent))
	for e := range ev.PerEvent {
		events = append(events, e)
	}
	slices.Sort(events)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "EVENT\tACCURACY\tMISCLASSIFIED AS")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e, formatScore(ev.PerEvent[e]), formatConfusion(ev.Confusion[e]))
	}
	tw.Flush() //nolint:errcheck // out is a terminal or buffer
}

func formatScore(s dataset.Score) string {
	return fmt.Sprintf("%d/%d (%.1f%%)", s.Correct, s.Total, 100*s.Accuracy())
}

func formatConfusion(row map[domain.EventType]int) string {
	if len(row) == 0 {
		return "-"
	}
	predicted := make([]domain.EventType, 0, len(row))
	for e := range row {
		predicted = append(predicted, e)
	}
	slices.SortFunc(predicted, func(a, b domain.EventType) int {
		if row[a] != row[b] {
			return row[b] - row[a]
		}
		return int(a) - int(b)
	})
	out := ""
	for i, e := range predicted {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s=%d", e, row[e])
	}
	return out
}

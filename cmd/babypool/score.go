package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/okian/babypool/internal/adapters/sink"
	"github.com/okian/babypool/internal/adapters/source"
	service "github.com/okian/babypool/internal/app"
	"github.com/okian/babypool/internal/domain/scoring"
	"github.com/okian/babypool/pkg/logger"
	"github.com/okian/babypool/pkg/metrics"
)

var errNoInput = errors.New("no input: pass --input or set BABYPOOL_INPUT")

type scoreFlags struct {
	input        string
	inputFormat  string
	output       string
	outputFormat string
	metricsFile  string
	explain      bool
}

func newScoreCmd(c *cli) *cobra.Command {
	var f scoreFlags
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a guess export and write the overall scores",
		Long: `Read every guess from a JSON or CSV export, score the whole batch and
write one row per participant.

Examples:
  babypool score --input guesses.csv
  babypool score --input guesses.json --output scores.json --explain`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runScore(cmd, f)
		},
	}
	cmd.Flags().StringVar(&f.input, "input", "", "Guess export to score (default: config input)")
	cmd.Flags().StringVar(&f.inputFormat, "input-format", "", "Input format: json, csv (default: from extension)")
	cmd.Flags().StringVar(&f.output, "output", "", "Where to write scores (default: config output)")
	cmd.Flags().StringVar(&f.outputFormat, "format", "", "Output format: csv, json (default: from extension)")
	cmd.Flags().StringVar(&f.metricsFile, "metrics-file", "", "Write a Prometheus textfile after the run")
	cmd.Flags().BoolVar(&f.explain, "explain", false, "Print per-field difficulty to stdout")
	return cmd
}

func (c *cli) runScore(cmd *cobra.Command, f scoreFlags) error {
	ctx := cmd.Context()

	input := firstNonEmpty(f.input, c.cfg.Input)
	if input == "" {
		return errNoInput
	}
	output := firstNonEmpty(f.output, c.cfg.Output)
	metricsFile := firstNonEmpty(f.metricsFile, c.cfg.MetricsFile)

	actual, err := c.cfg.Actual.Outcome()
	if err != nil {
		return err
	}
	svc := service.New(
		service.WithLogger(c.log),
		service.WithActual(actual),
	)

	src := source.NewFileSource(input, source.WithFormat(source.Format(f.inputFormat)))
	dst := sink.NewFileSink(output, sink.WithFormat(sink.Format(f.outputFormat)))

	report, runErr := svc.Run(ctx, src, dst)

	// The textfile records failures too.
	if metricsFile != "" {
		if err := metrics.WriteTextfile(metricsFile); err != nil {
			c.log.Error(ctx, "metrics textfile not written", logger.String("path", metricsFile), logger.Error(err))
		}
	}
	if runErr != nil {
		return fmt.Errorf("score %s: %w", input, runErr)
	}

	c.log.Info(ctx, "scores written",
		logger.String("input", input),
		logger.String("output", dst.Path()),
		logger.Int("guesses", len(report.Results)),
	)
	if f.explain {
		return explain(cmd.OutOrStdout(), report)
	}
	return nil
}

// explain prints the field statistics and the scores as aligned tables.
func explain(w io.Writer, report scoring.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tDIFFICULTY\tMAX\tANSWERED")
	for _, st := range report.Fields {
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%d\n", st.Field, st.Difficulty, st.MaxDistance, st.Answered)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "NAME\tEMAIL\tSCORE")
	for _, r := range report.Results {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, r.Email, sink.FormatScore(r.OverallScore))
	}
	return tw.Flush()
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

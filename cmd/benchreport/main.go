// Package main provides the CLI entry point for benchreport, which turns
// Dependency Buster benchmark results into a markdown report.
package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/dpb-tools/benchreport/report"
	"github.com/dpb-tools/benchreport/results"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "benchreport <benchmark_results.json>",
		Short: "Generate a markdown report from benchmark results",
		Long: `Benchreport reads a JSON document of benchmark measurements comparing
the TypeScript, Go, and Rust implementations of the Dependency Buster
analysis server and renders a markdown report next to the input file.`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Arguments are validated by now; usage output would only
			// bury a runtime error.
			cmd.SilenceUsage = true

			return run(cmd.Context(), logger, args[0], pretty)
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false,
		"Render the echoed report for the terminal instead of raw markdown")

	return cmd
}

func run(
	ctx context.Context,
	logger *slog.Logger,
	path string,
	pretty bool,
) error {
	res, err := results.Load(path)
	if err != nil {
		return fmt.Errorf("load results: %w", err)
	}

	logger.InfoContext(ctx, "results loaded",
		slog.String("path", path),
		slog.Int("implementations", len(res.Implementations)),
	)

	var buf bytes.Buffer
	if err := report.Generate(&buf, res, time.Now()); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	// The written file and the echoed text come from the same buffer,
	// so reading the file back always matches the rendered report.
	outPath := report.OutputPath(path)
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	logger.InfoContext(ctx, "report written",
		slog.String("path", outPath),
		slog.Int("bytes", buf.Len()),
	)

	fmt.Printf("✓ Report generated: %s\n", outPath)
	fmt.Print(echoText(buf.String(), pretty))

	return nil
}

// echoText prepares the report for stdout. With pretty set it is rendered
// for the terminal; the written file always keeps the raw markdown.
func echoText(markdown string, pretty bool) string {
	if !pretty {
		return markdown
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return markdown
	}

	out, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}

	return out
}

package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunWritesReport(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "benchmark_results.json")

	doc := `{
		"timestamp": "2026-01-15T10:23:00Z",
		"results": {
			"TypeScript": {"startup_time_ms": 100},
			"Rust": {"startup_time_ms": 50}
		}
	}`
	if err := os.WriteFile(input, []byte(doc), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	if err := run(context.Background(), discardLogger(), input, false); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "benchmark_results_report.md"))
	if err != nil {
		t.Fatalf("read report: %v", err)
	}

	output := string(data)

	if !strings.HasPrefix(output, "# PHP MCP Server Benchmark Report") {
		t.Error("report missing title")
	}
	if !strings.Contains(output, "| Startup Time | 100 ms | N/A ms | 50 ms | Rust |") {
		t.Errorf("unexpected startup row in:\n%s", output)
	}
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()

	err := run(
		context.Background(), discardLogger(),
		filepath.Join(dir, "nope.json"), false,
	)
	if err == nil {
		t.Fatal("expected error for missing input")
	}

	if _, err := os.Stat(filepath.Join(dir, "nope_report.md")); !os.IsNotExist(err) {
		t.Error("no report file should exist after a failed run")
	}
}

func TestRunInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "broken.json")

	if err := os.WriteFile(input, []byte(`{"results":`), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	if err := run(context.Background(), discardLogger(), input, false); err == nil {
		t.Fatal("expected error for invalid JSON")
	}

	if _, err := os.Stat(filepath.Join(dir, "broken_report.md")); !os.IsNotExist(err) {
		t.Error("no report file should exist after a failed run")
	}
}

func TestEchoTextPlain(t *testing.T) {
	md := "# Title\n\nbody\n"

	if got := echoText(md, false); got != md {
		t.Errorf("plain echo altered the report: %q", got)
	}
}

func TestRootCmdRequiresArgument(t *testing.T) {
	root := newRootCmd(discardLogger())
	root.SetArgs(nil)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	if err := root.Execute(); err == nil {
		t.Error("expected error when no argument is given")
	}
}

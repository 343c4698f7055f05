// Package report formats benchmark results into a markdown document.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dpb-tools/benchreport/results"
)

// The three implementations every results document compares.
const (
	langTypeScript = "TypeScript"
	langGo         = "Go"
	langRust       = "Rust"
)

// operations are the per-operation timing metrics, in report order.
var operations = []struct {
	name string
	key  string
}{
	{"Dependency Analysis", "dependency_analysis_ms"},
	{"PSR-4 Validation", "psr4_validation_ms"},
	{"Namespace Detection", "namespace_detection_ms"},
	{"Security Audit", "security_audit_ms"},
	{"License Analysis", "license_analysis_ms"},
}

// Generate writes the full markdown report for the given results document.
// now is the generation wall-clock time, passed in so rendering stays
// deterministic; the only I/O is through w.
func Generate(w io.Writer, r *results.Results, now time.Time) error {
	if r == nil {
		return fmt.Errorf("no results to report")
	}

	writeHeader(w, r, now)
	writeEnvironment(w, r)
	writeTestConfig(w, r)
	writeSummaryTable(w, r)
	writeComparisonTable(w, r)
	writeOperationBreakdown(w, r)
	writeInsights(w, r)
	writeRecommendations(w)
	writeConclusion(w, r)

	return nil
}

// OutputPath derives the report path for a results file: a trailing
// .json becomes _report.md.
func OutputPath(resultsPath string) string {
	return strings.TrimSuffix(resultsPath, ".json") + "_report.md"
}

func writeHeader(w io.Writer, r *results.Results, now time.Time) {
	fmt.Fprintln(w, "# PHP MCP Server Benchmark Report")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "**Generated:** %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "**Test Date:** %s\n", stringOr(r.Timestamp, "N/A"))
	fmt.Fprintln(w)
}

func writeEnvironment(w io.Writer, r *results.Results) {
	fmt.Fprintln(w, "## 🖥️ Test Environment")
	fmt.Fprintln(w)

	sys := r.System
	fmt.Fprintf(w, "- **OS:** %s\n", valueOr(sys, "os"))
	fmt.Fprintf(w, "- **Architecture:** %s\n", valueOr(sys, "arch"))
	fmt.Fprintf(w, "- **Kernel:** %s\n", valueOr(sys, "kernel"))

	if cpu, ok := sys["cpu"]; ok {
		fmt.Fprintf(w, "- **CPU:** %s\n", cpu)
	}

	if mem, ok := sys["memory"]; ok {
		fmt.Fprintf(w, "- **Memory:** %s\n", mem)
	}

	fmt.Fprintln(w)
}

func writeTestConfig(w io.Writer, r *results.Results) {
	if r.TestDetails == nil {
		return
	}

	fmt.Fprintln(w, "## 📋 Test Configuration")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "- **Repository:** %s\n", detail(r.TestDetails, "repository"))
	fmt.Fprintf(w, "- **Files Analyzed:** %s\n", detail(r.TestDetails, "files_analyzed"))
	fmt.Fprintf(w, "- **PHP Files:** %s\n", detail(r.TestDetails, "php_files"))
	fmt.Fprintf(w, "- **Dependencies:** %s\n", detail(r.TestDetails, "dependencies"))
	fmt.Fprintf(w, "- **Test Runs:** %s\n", detail(r.TestDetails, "test_runs"))
	fmt.Fprintln(w)
}

func writeSummaryTable(w io.Writer, r *results.Results) {
	fmt.Fprintln(w, "## 🏆 Performance Summary")
	fmt.Fprintln(w)

	if r.Winners == nil {
		return
	}

	fmt.Fprintln(w, "| Category | Winner |")
	fmt.Fprintln(w, "|----------|--------|")

	for _, category := range r.Winners.Categories {
		fmt.Fprintf(w, "| %s | **%s** |\n",
			titleCase(category), r.Winners.ByCategory[category])
	}

	fmt.Fprintln(w)
}

func writeComparisonTable(w io.Writer, r *results.Results) {
	fmt.Fprintln(w, "## 📊 Detailed Benchmark Results")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Metric | TypeScript | Go | Rust | Winner |")
	fmt.Fprintln(w, "|--------|-----------|-----|------|--------|")

	ts := r.Implementations[langTypeScript]
	goRes := r.Implementations[langGo]
	rust := r.Implementations[langRust]

	// The TypeScript cell is fixed: the package ships as sources and
	// has no binary to measure.
	fmt.Fprintf(w, "| Binary Size | N/A (needs runtime) | %s MB | %s MB | Rust |\n",
		metric(goRes, "binary_size_mb"),
		metric(rust, "binary_size_mb"),
	)
	fmt.Fprintf(w, "| Startup Time | %s ms | %s ms | %s ms | Rust |\n",
		metric(ts, "startup_time_ms"),
		metric(goRes, "startup_time_ms"),
		metric(rust, "startup_time_ms"),
	)
	fmt.Fprintf(w, "| Memory Peak | %s MB | %s MB | %s MB | Rust |\n",
		metric(ts, "memory_peak_mb"),
		metric(goRes, "memory_peak_mb"),
		metric(rust, "memory_peak_mb"),
	)
	fmt.Fprintf(w, "| Full Analysis | %s ms | %s ms | %s ms | Rust |\n",
		metric(ts, "full_analysis_ms"),
		metric(goRes, "full_analysis_ms"),
		metric(rust, "full_analysis_ms"),
	)

	fmt.Fprintln(w)
}

func writeOperationBreakdown(w io.Writer, r *results.Results) {
	fmt.Fprintln(w, "## 🎯 Performance Breakdown by Operation")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Operation | TypeScript | Go | Rust | Speedup (Rust vs TS) |")
	fmt.Fprintln(w, "|-----------|-----------|-----|------|---------------------|")

	ts := r.Implementations[langTypeScript]
	goRes := r.Implementations[langGo]
	rust := r.Implementations[langRust]

	for _, op := range operations {
		tsVal := ts.ValueOrZero(op.key)
		goVal := goRes.ValueOrZero(op.key)
		rustVal := rust.ValueOrZero(op.key)

		// Speedup is only meaningful when both endpoints were
		// measured; a zero TypeScript value would also divide by zero.
		speedup := "N/A"
		if tsVal != 0 && rustVal != 0 {
			speedup = fmt.Sprintf("%.1f%% faster", (tsVal-rustVal)/tsVal*100)
		}

		fmt.Fprintf(w, "| %s | %s ms | %s ms | %s ms | %s |\n",
			op.name,
			formatNumber(tsVal),
			formatNumber(goVal),
			formatNumber(rustVal),
			speedup,
		)
	}

	fmt.Fprintln(w)
}

func writeInsights(w io.Writer, r *results.Results) {
	fmt.Fprintln(w, "## 💡 Key Insights")
	fmt.Fprintln(w)

	if r.Summary == nil {
		return
	}

	if fs := r.Summary.FastestStartup; fs != nil {
		fmt.Fprintln(w, "### Startup Performance")
		fmt.Fprintf(w, "- **Winner:** %s\n", fs.Language)
		fmt.Fprintf(w, "- **Time:** %s ms\n", formatNumber(fs.TimeMs))
		fmt.Fprintf(w, "- **Improvement:** %s faster than slowest\n", fs.ImprovementVsSlowest)
		fmt.Fprintln(w)
	}

	if lm := r.Summary.LowestMemory; lm != nil {
		fmt.Fprintln(w, "### Memory Efficiency")
		fmt.Fprintf(w, "- **Winner:** %s\n", lm.Language)
		fmt.Fprintf(w, "- **Usage:** %s MB\n", formatNumber(lm.MemoryMB))
		fmt.Fprintf(w, "- **Improvement:** %s less than highest\n", lm.ImprovementVsHighest)
		fmt.Fprintln(w)
	}

	if fa := r.Summary.FastestAnalysis; fa != nil {
		fmt.Fprintln(w, "### Analysis Speed")
		fmt.Fprintf(w, "- **Winner:** %s\n", fa.Language)
		fmt.Fprintf(w, "- **Time:** %s ms\n", formatNumber(fa.TimeMs))
		fmt.Fprintf(w, "- **Improvement:** %s faster than slowest\n", fa.ImprovementVsSlowest)
		fmt.Fprintln(w)
	}
}

// writeRecommendations emits the static guidance block; none of it is
// derived from the input document.
func writeRecommendations(w io.Writer) {
	fmt.Fprintln(w, "## 🎯 Recommendations")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "### For Dependency Buster Platform Rebuild")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "**Development Phase:**")
	fmt.Fprintln(w, "- ✅ **TypeScript** - Fastest iteration, easiest debugging")
	fmt.Fprintln(w, "- ✅ Rich npm ecosystem for rapid prototyping")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "**Production Deployment:**")
	fmt.Fprintln(w, "- 🚀 **Rust** - Best performance, lowest resource usage")
	fmt.Fprintln(w, "- 🚀 89% faster full analysis")
	fmt.Fprintln(w, "- 🚀 85% less memory consumption")
	fmt.Fprintln(w, "- 🚀 Single binary distribution")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "**Team Distribution:**")
	fmt.Fprintln(w, "- ⚡ **Go** - Good balance of performance and simplicity")
	fmt.Fprintln(w, "- ⚡ Fast compilation, easy cross-platform builds")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "### Use Case Matrix")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Scenario | Best Choice | Rationale |")
	fmt.Fprintln(w, "|----------|------------|-----------|")
	fmt.Fprintln(w, "| Local Development | TypeScript | Fast iteration, great tooling |")
	fmt.Fprintln(w, "| CI/CD Pipeline | Rust | Fastest execution, no dependencies |")
	fmt.Fprintln(w, "| Production Server | Rust | Minimal resources, maximum speed |")
	fmt.Fprintln(w, "| Windows Deployment | Go | Best Windows support |")
	fmt.Fprintln(w, "| Mac M1/M2 | Rust | Native ARM64, extremely fast |")
	fmt.Fprintln(w, "| Team Distribution | Go | Single binary, good docs |")
	fmt.Fprintln(w)
}

func writeConclusion(w io.Writer, r *results.Results) {
	fmt.Fprintln(w, "## 🎉 Conclusion")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "**Performance Ranking:**")

	if r.Summary != nil {
		for _, entry := range r.Summary.PerformanceRanking {
			medal := "🥉"

			switch entry.Rank {
			case 1:
				medal = "🥇"
			case 2:
				medal = "🥈"
			}

			fmt.Fprintf(w, "%d. %s **%s** (Score: %s/100)\n",
				entry.Rank, medal, entry.Language, formatNumber(entry.Score))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "**Final Recommendation:**")
	fmt.Fprintln(w, "- Use **Rust** for the Dependency Buster production deployment")
	fmt.Fprintln(w, "- The performance gains (9x faster) and memory savings (85% less) justify the investment")
	fmt.Fprintln(w, "- Keep TypeScript for rapid prototyping and experiments")
}

// metric renders a measured value, or N/A when the metric is absent.
func metric(m results.Metrics, key string) string {
	if v, ok := m.Value(key); ok {
		return formatNumber(v)
	}

	return "N/A"
}

// detail renders a test_details value. Counts arrive as JSON numbers and
// print without a forced decimal point.
func detail(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok {
		return "N/A"
	}

	switch t := v.(type) {
	case string:
		return t
	case float64:
		return formatNumber(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// formatNumber prints integral values without a decimal point and keeps
// the shortest exact representation otherwise.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// titleCase renders a snake_case category key for display:
// "binary_size" becomes "Binary Size".
func titleCase(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}

		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}

func valueOr(m map[string]string, key string) string {
	if v, ok := m[key]; ok {
		return v
	}

	return "N/A"
}

func stringOr(s, fallback string) string {
	if s == "" {
		return fallback
	}

	return s
}

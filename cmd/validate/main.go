// Command validate checks an earthquake GeoJSON feed before it reaches the
// map. It reports every feature the renderer would skip, prints the depth
// band distribution, and verifies the legend agrees with the color bands.
//
// Usage:
//
//	go run ./cmd/validate -file testdata/all_week.geojson
//	go run ./cmd/validate -url https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_day.geojson
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/adapter/usgs"
	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/observability"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	file := flag.String("file", "", "path to a GeoJSON feed file")
	url := flag.String("url", "", "feed URL to download instead of -file")
	timeout := flag.Duration("timeout", 30*time.Second, "download timeout for -url")
	flag.Parse()

	if (*file == "") == (*url == "") {
		flag.Usage()
		os.Exit(1)
	}

	features, issues, err := load(*file, *url, *timeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}

	os.Exit(report(os.Stdout, features, issues))
}

func load(file, url string, timeout time.Duration) ([]domain.SeismicFeature, []domain.ParseIssue, error) {
	if url != "" {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		client := usgs.NewClient(url, timeout, observability.NewMetrics(), logger)
		return client.FetchFeatures(context.Background())
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, nil, fmt.Errorf("read feed: %w", err)
	}
	return domain.ParseFeatureCollection(data)
}

// report prints the validation summary and returns the process exit code.
func report(w io.Writer, features []domain.SeismicFeature, issues []domain.ParseIssue) int {
	fmt.Fprintln(w, "=== Earthquake Feed Validation ===")
	fmt.Fprintln(w)

	phases := []*phase{
		validateFeatures(issues),
		validateLegend(),
	}

	printBands(w, features)

	fmt.Fprintln(w)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Features: %d styled, %d skipped\n", len(features), len(issues))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}

func validateFeatures(issues []domain.ParseIssue) *phase {
	p := &phase{name: "Every feature has magnitude and depth"}
	for _, issue := range issues {
		p.errorf("feature #%d (id=%q): %s", issue.Index, issue.ID, issue.Reason)
	}
	return p
}

func validateLegend() *phase {
	p := &phase{name: "Legend swatches match depth bands"}
	rows := domain.DefaultLegend().Rows()
	if len(rows) != len(domain.LegendBoundaries) {
		p.errorf("legend has %d rows, want %d", len(rows), len(domain.LegendBoundaries))
		return p
	}
	for i, low := range domain.LegendBoundaries {
		if want := domain.ColorFor(low + 1); rows[i].Color != want {
			p.errorf("row %q: color %s, want %s", rows[i].Label, rows[i].Color, want)
		}
	}
	return p
}

func printBands(w io.Writer, features []domain.SeismicFeature) {
	palette := domain.Palette()
	counts := make([]int, len(palette))
	for _, f := range features {
		counts[domain.BandIndex(f.DepthKm)]++
	}

	labels := make([]string, 0, len(palette))
	for _, b := range domain.DepthBands() {
		labels = append(labels, "<= "+domain.FormatNumber(b.MaxDepthKm)+" km")
	}
	last := domain.DepthBands()[len(labels)-1].MaxDepthKm
	labels = append(labels, "> "+domain.FormatNumber(last)+" km")

	fmt.Fprintln(w, "Depth bands:")
	for i, color := range palette {
		fmt.Fprintf(w, "  %-10s %s  %d\n", labels[i], color, counts[i])
	}
}

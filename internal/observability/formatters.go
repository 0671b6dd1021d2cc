// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/nexten/smartmatch/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMatchResult outputs a human-readable summary of a match result with
// its per-criterion breakdown, heaviest weight first.
func (p *Printer) PrintMatchResult(result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:    %.3f (%d%%)\n", result.FinalScore, result.ScorePercent))
	sb.WriteString(fmt.Sprintf("Tier:     %s\n", result.Tier))
	sb.WriteString(fmt.Sprintf("Profile:  %s", result.Weights.Profile))
	if result.Weights.IsAdjusted {
		sb.WriteString(" (motivation-adjusted)")
	}
	sb.WriteString("\n\n")

	for _, criterion := range sortedCriteria(result.Breakdown) {
		entry := result.Breakdown[criterion]
		sb.WriteString(fmt.Sprintf("%-14s %.2f  w=%.3f", criterion, entry.Score, entry.Weight))
		markers := entryMarkers(entry)
		if markers != "" {
			sb.WriteString("  " + markers)
		}
		sb.WriteString("\n")
	}

	p.printBox("MATCH RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintWeights outputs the effective weight vector, heaviest first.
func (p *Printer) PrintWeights(weights types.WeightVector) {
	if len(weights.Weights) == 0 {
		return
	}

	criteria := make([]types.Criterion, 0, len(weights.Weights))
	for criterion := range weights.Weights {
		criteria = append(criteria, criterion)
	}
	sort.Slice(criteria, func(i, j int) bool {
		wi, wj := weights.Weights[criteria[i]], weights.Weights[criteria[j]]
		if wi != wj {
			return wi > wj
		}
		return criteria[i] < criteria[j]
	})

	var sb strings.Builder
	for _, criterion := range criteria {
		sb.WriteString(fmt.Sprintf("%-14s %.3f\n", criterion, weights.Weights[criterion]))
	}

	title := "WEIGHTS"
	if weights.IsAdjusted {
		title = "WEIGHTS (motivation-adjusted)"
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFallbacks outputs the criteria that degraded to fallback estimates.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintFallbacks(result *types.MatchResult) {
	if result == nil {
		return
	}

	var fallbacks []types.Criterion
	for _, criterion := range sortedCriteria(result.Breakdown) {
		if result.Breakdown[criterion].IsFallback {
			fallbacks = append(fallbacks, criterion)
		}
	}

	if len(fallbacks) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO FALLBACKS USED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d of %d criteria degraded:\n\n", len(fallbacks), len(result.Breakdown)))
	for _, criterion := range fallbacks {
		entry := result.Breakdown[criterion]
		sb.WriteString(fmt.Sprintf("⚠ %s\n", criterion))
		if reason, ok := entry.Detail["fallback_reason"].(string); ok {
			if len(reason) > 45 {
				reason = reason[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("  %s\n", reason))
		}
	}

	p.printBox("FALLBACK CRITERIA", strings.TrimSuffix(sb.String(), "\n"))
}

// sortedCriteria orders breakdown keys by weight descending, name ascending
// for stable output.
func sortedCriteria(breakdown map[types.Criterion]types.CriterionEntry) []types.Criterion {
	criteria := make([]types.Criterion, 0, len(breakdown))
	for criterion := range breakdown {
		criteria = append(criteria, criterion)
	}
	sort.Slice(criteria, func(i, j int) bool {
		wi, wj := breakdown[criteria[i]].Weight, breakdown[criteria[j]].Weight
		if wi != wj {
			return wi > wj
		}
		return criteria[i] < criteria[j]
	})
	return criteria
}

// entryMarkers builds the compact flag suffix for one breakdown line.
func entryMarkers(entry types.CriterionEntry) string {
	var markers []string
	if entry.IsFallback {
		markers = append(markers, "fallback")
	}
	if entry.HardGate {
		markers = append(markers, "HARD GATE")
	}
	return strings.Join(markers, " ")
}

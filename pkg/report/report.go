// Package report turns analysis results into rows and serialised output.
package report

import (
	"github.com/specvital/smellscan/pkg/domain"
)

// Row is one smell of one file, with the file's fields repeated.
type Row struct {
	DescribeCount int
	File          string
	ItCount       int
	// Line is the smell's start line, or 0 when the smell has no location.
	Line  int
	Smell string
	Test  string
	Type  string
}

// Flatten produces exactly one row per smell, in result order.
// Files without smells produce no rows.
func Flatten(results []domain.FileResult) []Row {
	var rows []Row
	for _, r := range results {
		for _, s := range r.Smells {
			row := Row{
				DescribeCount: r.DescribeCount,
				File:          r.File,
				ItCount:       r.ItCount,
				Smell:         s.Type,
				Test:          s.Test,
				Type:          r.Type,
			}
			if s.Location != nil {
				row.Line = s.Location.StartLine
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// WithSmells keeps the results that have at least one smell, preserving order.
func WithSmells(results []domain.FileResult) []domain.FileResult {
	kept := make([]domain.FileResult, 0, len(results))
	for _, r := range results {
		if r.HasSmells() {
			kept = append(kept, r)
		}
	}
	return kept
}

// Summary counts smells by type across results.
func Summary(results []domain.FileResult) map[string]int {
	counts := make(map[string]int)
	for _, r := range results {
		for _, s := range r.Smells {
			counts[s.Type]++
		}
	}
	return counts
}

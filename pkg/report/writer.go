package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/specvital/smellscan/pkg/domain"
)

// Format is an output encoding.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("report: unknown format")

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatCSV, FormatJSON, FormatTable, FormatYAML}
}

// ParseFormat validates a format name, case-insensitively.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Write encodes results to w in the given format.
func Write(w io.Writer, format Format, results []domain.FileResult) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, results)
	case FormatJSON:
		return WriteJSON(w, results)
	case FormatTable:
		return WriteTable(w, results)
	case FormatYAML:
		return WriteYAML(w, results)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteJSON writes the results as an indented JSON array.
func WriteJSON(w io.Writer, results []domain.FileResult) error {
	if results == nil {
		results = []domain.FileResult{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// CSVHeader is the header row written by WriteCSV.
var CSVHeader = []string{"file", "type", "smell", "test", "line", "itCount", "describeCount"}

// WriteCSV writes one row per smell.
func WriteCSV(w io.Writer, results []domain.FileResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, row := range Flatten(results) {
		line := ""
		if row.Line > 0 {
			line = strconv.Itoa(row.Line)
		}
		record := []string{
			row.File,
			row.Type,
			row.Smell,
			row.Test,
			line,
			strconv.Itoa(row.ItCount),
			strconv.Itoa(row.DescribeCount),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

type yamlSmell struct {
	Line int    `yaml:"line,omitempty"`
	Test string `yaml:"test,omitempty"`
	Type string `yaml:"type"`
}

type yamlResult struct {
	File          string      `yaml:"file"`
	Type          string      `yaml:"type"`
	Smells        []yamlSmell `yaml:"smells"`
	ItCount       int         `yaml:"itCount"`
	DescribeCount int         `yaml:"describeCount"`
}

// WriteYAML writes the results as a YAML sequence.
func WriteYAML(w io.Writer, results []domain.FileResult) error {
	docs := make([]yamlResult, 0, len(results))
	for _, r := range results {
		doc := yamlResult{
			File:          r.File,
			Type:          r.Type,
			Smells:        make([]yamlSmell, 0, len(r.Smells)),
			ItCount:       r.ItCount,
			DescribeCount: r.DescribeCount,
		}
		for _, s := range r.Smells {
			ys := yamlSmell{Test: s.Test, Type: s.Type}
			if s.Location != nil {
				ys.Line = s.Location.StartLine
			}
			doc.Smells = append(doc.Smells, ys)
		}
		docs = append(docs, doc)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close yaml encoder: %w", err)
	}
	return nil
}

// WriteTable renders a per-file table followed by smell totals by type.
func WriteTable(w io.Writer, results []domain.FileResult) error {
	files := table.NewWriter()
	files.SetStyle(table.StyleLight)
	files.AppendHeader(table.Row{"File", "Type", "Tests", "Suites", "Smells"})

	totalTests, totalSmells := 0, 0
	for _, r := range results {
		files.AppendRow(table.Row{r.File, r.Type, r.ItCount, r.DescribeCount, len(r.Smells)})
		totalTests += r.ItCount
		totalSmells += len(r.Smells)
	}
	files.AppendFooter(table.Row{fmt.Sprintf("Total: %d files", len(results)), "", totalTests, "", totalSmells})

	if _, err := fmt.Fprintln(w, files.Render()); err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	summary := Summary(results)
	if len(summary) == 0 {
		return nil
	}

	types := make([]string, 0, len(summary))
	for t := range summary {
		types = append(types, t)
	}
	sort.Strings(types)

	bySmell := table.NewWriter()
	bySmell.SetStyle(table.StyleLight)
	bySmell.AppendHeader(table.Row{"Smell", "Count"})
	for _, t := range types {
		bySmell.AppendRow(table.Row{t, summary[t]})
	}

	if _, err := fmt.Fprintln(w, bySmell.Render()); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}

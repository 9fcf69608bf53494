package result

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"mergebench/internal/compare"
)

// Table appends comparison rows to a CSV file, one row per scenario. The
// header is written when the file is first created, and every Append flushes,
// so an interrupted run still leaves a readable table.
type Table struct {
	path    string
	tools   []string
	sources []string
	header  []string
}

// NewTable prepares a table for the given tool order and reference name.
// Column layout: identity columns, per-source conflict counts, the pairwise
// content/conflicts booleans in combination order, then per-tool timings.
func NewTable(path string, tools []string, refName string) *Table {
	sources := make([]string, 0, len(tools)+1)
	sources = append(sources, tools...)
	sources = append(sources, refName)

	header := []string{"project", "merge commit", "file"}
	for _, s := range sources {
		header = append(header, fmt.Sprintf("number of %s conflicts", s))
	}
	for i := 0; i < len(sources); i++ {
		for j := i + 1; j < len(sources); j++ {
			header = append(header,
				fmt.Sprintf("%s content = %s content", sources[i], sources[j]),
				fmt.Sprintf("%s conflicts = %s conflicts", sources[i], sources[j]))
		}
	}
	for _, t := range tools {
		header = append(header, fmt.Sprintf("%s time", t))
	}

	return &Table{path: path, tools: tools, sources: sources, header: header}
}

// Path returns the table's file path.
func (t *Table) Path() string { return t.path }

// Append writes one scenario's row, creating the file with its header first
// when absent. The row's pair order must match the table's source order,
// which holds for rows built over the same tool list and reference.
func (t *Table) Append(row compare.Row) error {
	_, statErr := os.Stat(t.path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening results table: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(t.header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	record := make([]string, 0, len(t.header))
	record = append(record, row.Project, row.Commit, row.File)
	for _, s := range t.sources {
		record = append(record, strconv.Itoa(row.Conflicts[s]))
	}
	for _, p := range row.Pairs {
		record = append(record, formatBool(p.ContentEqual), formatBool(p.ConflictsEqual))
	}
	for _, tool := range t.tools {
		record = append(record, strconv.FormatFloat(row.Timings[tool], 'f', -1, 64))
	}
	if len(record) != len(t.header) {
		return fmt.Errorf("row has %d columns, table has %d", len(record), len(t.header))
	}

	if err := w.Write(record); err != nil {
		return fmt.Errorf("writing row: %w", err)
	}
	w.Flush()
	return w.Error()
}

// formatBool matches the True/False spelling the historical result tables
// used, so existing analysis notebooks keep working.
func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// ReadTable loads a results CSV as one map per row, keyed by header column.
func ReadTable(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening results table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	var rows []map[string]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		row := make(map[string]string, len(header))
		for i, h := range header {
			row[h] = record[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

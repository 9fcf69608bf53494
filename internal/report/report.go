// Package report summarizes a results table per tool.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"mergebench/internal/result"
)

// ToolSummary aggregates one tool's rows from a results table. Agreement
// rates are against the reference, over scenarios where the tool produced
// valid output.
type ToolSummary struct {
	Name           string
	Scenarios      int
	Failed         int
	MeanTimeMS     float64
	ContentAgree   float64
	ConflictsAgree float64
}

// Generate reads a results CSV and writes a per-tool summary table.
func Generate(csvPath string, tools []string, refName string, w io.Writer) error {
	rows, err := result.ReadTable(csvPath)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no rows in %s", csvPath)
	}

	var summaries []ToolSummary
	for _, tool := range tools {
		summaries = append(summaries, summarize(rows, tool, refName))
	}
	return writeTable(summaries, w)
}

func summarize(rows []map[string]string, tool, refName string) ToolSummary {
	s := ToolSummary{Name: tool, Scenarios: len(rows)}

	timeCol := tool + " time"
	contentCol := fmt.Sprintf("%s content = %s content", tool, refName)
	conflictsCol := fmt.Sprintf("%s conflicts = %s conflicts", tool, refName)
	countCol := fmt.Sprintf("number of %s conflicts", tool)

	var timeSum float64
	var timed, valid, contentEq, conflictsEq int
	for _, row := range rows {
		if ms, err := strconv.ParseFloat(row[timeCol], 64); err == nil && ms >= 0 {
			timeSum += ms
			timed++
		} else {
			s.Failed++
		}
		if row[countCol] == "-1" {
			continue
		}
		valid++
		if row[contentCol] == "True" {
			contentEq++
		}
		if row[conflictsCol] == "True" {
			conflictsEq++
		}
	}
	if timed > 0 {
		s.MeanTimeMS = timeSum / float64(timed)
	}
	if valid > 0 {
		s.ContentAgree = float64(contentEq) / float64(valid)
		s.ConflictsAgree = float64(conflictsEq) / float64(valid)
	}
	return s
}

func writeTable(summaries []ToolSummary, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TOOL\tSCENARIOS\tFAILED\tMEAN TIME\tCONTENT=REF\tCONFLICTS=REF")
	fmt.Fprintln(tw, strings.Repeat("-", 72))
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.4fms\t%.0f%%\t%.0f%%\n",
			s.Name, s.Scenarios, s.Failed, s.MeanTimeMS, s.ContentAgree*100, s.ConflictsAgree*100)
	}
	return tw.Flush()
}

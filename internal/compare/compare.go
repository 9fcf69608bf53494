// Package compare builds the per-scenario comparison matrix over every
// source of a merge result: each configured tool plus the reference.
package compare

import "slices"

// InvalidCount is the conflict-count sentinel for a source with no valid
// output.
const InvalidCount = -1

// Source is one provider's parsed merge result. Valid is false when the
// provider produced no readable output; an invalid source never matches
// anything, and its Count is reported as InvalidCount.
type Source struct {
	Count   int
	Content string
	Blocks  []string
	Valid   bool
}

// Pair records whether two sources agreed, on full normalized content and on
// the ordered conflict-block sequence. Both are forced false when either
// side is invalid, even if both collapse to identical empty content.
type Pair struct {
	A, B           string
	ContentEqual   bool
	ConflictsEqual bool
}

// Row is one scenario's output record: identity, per-source conflict counts,
// the all-pairs matrix, and per-tool timing. The reference carries no timing
// because it was never run; it is historical data.
type Row struct {
	Project   string
	Commit    string
	File      string
	Sources   []string
	Conflicts map[string]int
	Pairs     []Pair
	Timings   map[string]float64
}

// Build assembles the comparison row for one scenario. order fixes the
// source enumeration (config tool order, reference last) so the pair layout
// is deterministic; pairs are emitted in combination order over it. Build
// performs no I/O.
func Build(project, commit, file string, order []string, results map[string]Source, timings map[string]float64) Row {
	row := Row{
		Project:   project,
		Commit:    commit,
		File:      file,
		Sources:   slices.Clone(order),
		Conflicts: make(map[string]int, len(order)),
		Timings:   timings,
	}

	for _, name := range order {
		src := results[name]
		if src.Valid {
			row.Conflicts[name] = src.Count
		} else {
			row.Conflicts[name] = InvalidCount
		}
	}

	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			a, b := results[order[i]], results[order[j]]
			p := Pair{A: order[i], B: order[j]}
			if a.Valid && b.Valid {
				p.ContentEqual = a.Content == b.Content
				p.ConflictsEqual = slices.Equal(a.Blocks, b.Blocks)
			}
			row.Pairs = append(row.Pairs, p)
		}
	}
	return row
}

// Package scenario models one merge instance under test: a base file, two
// divergent edits, and optionally the historically recorded merge result.
package scenario

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Slot directory names under a scenario directory.
const (
	SlotBase  = "base"
	SlotLeft  = "left"
	SlotRight = "right"
	SlotChild = "child"
)

// Paths is the run context threaded through the pipeline instead of
// process-global state: where the full dataset lives, where the staged
// working set lives, and where run output goes.
type Paths struct {
	DatasetRoot string
	WorkingSet  string
	OutputRoot  string
}

// Scenario is one (project, commit) merge instance. Dir is its directory in
// the working set; scenarios are never mutated after discovery.
type Scenario struct {
	Project string
	Commit  string
	Dir     string
}

// Discover lists the scenarios staged in the working set, laid out as
// <project>/<commit> directory pairs. os.ReadDir returns sorted entries, so
// the order is stable across runs.
func Discover(workingSet string) ([]Scenario, error) {
	projects, err := os.ReadDir(workingSet)
	if err != nil {
		return nil, fmt.Errorf("reading working set %s: %w", workingSet, err)
	}
	var scenarios []Scenario
	for _, proj := range projects {
		if !proj.IsDir() {
			continue
		}
		projDir := filepath.Join(workingSet, proj.Name())
		commits, err := os.ReadDir(projDir)
		if err != nil {
			return nil, fmt.Errorf("reading project dir %s: %w", projDir, err)
		}
		for _, commit := range commits {
			if !commit.IsDir() {
				continue
			}
			scenarios = append(scenarios, Scenario{
				Project: proj.Name(),
				Commit:  commit.Name(),
				Dir:     filepath.Join(projDir, commit.Name()),
			})
		}
	}
	return scenarios, nil
}

// SlotFile resolves a slot to its file: the lexically first non-hidden
// regular file under the slot directory, searched recursively. Hidden
// directories are not descended into. Returns "" when the slot has no
// usable file.
func (s Scenario) SlotFile(slot string) string {
	root := filepath.Join(s.Dir, slot)
	var found string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return filepath.SkipAll
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		found = path
		return filepath.SkipAll
	})
	return found
}

// Inputs resolves the three required slots. ok is false when any of base,
// left or right is missing, in which case the scenario cannot be benchmarked.
func (s Scenario) Inputs() (base, left, right string, ok bool) {
	base = s.SlotFile(SlotBase)
	left = s.SlotFile(SlotLeft)
	right = s.SlotFile(SlotRight)
	ok = base != "" && left != "" && right != ""
	return base, left, right, ok
}

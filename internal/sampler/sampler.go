// Package sampler stages a reproducible random subset of dataset scenarios
// into the working set.
package sampler

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"math/rand"
	"os"
	"path/filepath"
)

// KeepMarker survives working-set clears so the otherwise-empty directory
// stays trackable.
const KeepMarker = ".gitkeep"

// scenariosDirName is the directory under a dataset that holds the
// <project>/<commit> scenario tree.
const scenariosDirName = "merge_scenarios"

// Candidate is one selectable scenario in the dataset.
type Candidate struct {
	Project string
	Commit  string
	Dir     string
}

// Enumerate walks datasetDir for merge_scenarios trees and lists every
// (project, commit) scenario directory beneath them, in lexical order.
func Enumerate(datasetDir string) ([]Candidate, error) {
	var out []Candidate
	err := filepath.WalkDir(datasetDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || d.Name() != scenariosDirName {
			return nil
		}
		projects, err := os.ReadDir(path)
		if err != nil {
			return err
		}
		for _, proj := range projects {
			if !proj.IsDir() {
				continue
			}
			commits, err := os.ReadDir(filepath.Join(path, proj.Name()))
			if err != nil {
				return err
			}
			for _, commit := range commits {
				if !commit.IsDir() {
					continue
				}
				out = append(out, Candidate{
					Project: proj.Name(),
					Commit:  commit.Name(),
					Dir:     filepath.Join(path, proj.Name(), commit.Name()),
				})
			}
		}
		return filepath.SkipDir
	})
	if err != nil {
		return nil, fmt.Errorf("enumerating scenarios under %s: %w", datasetDir, err)
	}
	return out, nil
}

// Sample selects n scenarios uniformly without replacement using the seeded
// PRNG, clears the working set (keeping KeepMarker), and copies the selected
// trees into it as <project>/<commit>. n == -1 keeps the existing working
// set untouched; n < -1 is invalid; n beyond the available count is clamped.
// The same seed over the same dataset always selects the same subset in the
// same order.
func Sample(datasetDir, workingSet string, n int, seed int64) ([]Candidate, error) {
	if n == -1 {
		return nil, nil
	}
	if n < -1 {
		return nil, fmt.Errorf("invalid scenario count %d", n)
	}

	candidates, err := Enumerate(datasetDir)
	if err != nil {
		return nil, err
	}
	if n > len(candidates) {
		log.Printf("warning: requested %d scenarios, only %d available", n, len(candidates))
		n = len(candidates)
	}

	rng := rand.New(rand.NewSource(seed))
	picked := make([]Candidate, 0, n)
	for _, idx := range rng.Perm(len(candidates))[:n] {
		picked = append(picked, candidates[idx])
	}

	if err := clearWorkingSet(workingSet); err != nil {
		return nil, err
	}
	for _, c := range picked {
		dest := filepath.Join(workingSet, c.Project, c.Commit)
		if err := copyTree(c.Dir, dest); err != nil {
			return nil, fmt.Errorf("copying %s/%s: %w", c.Project, c.Commit, err)
		}
	}
	return picked, nil
}

// clearWorkingSet empties the working set except for the keep marker. Files
// and symlinks are removed directly, directories recursively.
func clearWorkingSet(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return os.MkdirAll(dir, 0o755)
		}
		return fmt.Errorf("reading working set %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.Name() == KeepMarker {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if e.IsDir() {
			err = os.RemoveAll(path)
		} else {
			err = os.Remove(path)
		}
		if err != nil {
			return fmt.Errorf("clearing working set: %w", err)
		}
	}
	return nil
}

// copyTree copies a scenario directory recursively, preserving permissions
// and modification times.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		info, err := d.Info()
		if err != nil {
			return err
		}
		switch {
		case d.IsDir():
			return os.MkdirAll(target, info.Mode().Perm())
		case d.Type()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		default:
			if err := copyFile(path, target, info.Mode().Perm()); err != nil {
				return err
			}
			return os.Chtimes(target, info.ModTime(), info.ModTime())
		}
	})
}

func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

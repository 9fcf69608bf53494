package sampler_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mergebench/internal/sampler"
)

// makeDataset builds dataset/<name>/merge_scenarios/<project>/<commit>/
// trees with one base file per scenario.
func makeDataset(t *testing.T, root string, scenarios map[string][]string) {
	t.Helper()
	for project, commits := range scenarios {
		for _, commit := range commits {
			dir := filepath.Join(root, "ds1", "merge_scenarios", project, commit, "base")
			require.NoError(t, os.MkdirAll(dir, 0o755))
			require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte(project+commit), 0o644))
		}
	}
}

func TestEnumerate(t *testing.T) {
	root := t.TempDir()
	makeDataset(t, root, map[string][]string{
		"projA": {"c1", "c2"},
		"projB": {"c3"},
	})

	cands, err := sampler.Enumerate(root)
	require.NoError(t, err)
	assert.Len(t, cands, 3)

	var ids []string
	for _, c := range cands {
		ids = append(ids, c.Project+"/"+c.Commit)
	}
	assert.Equal(t, []string{"projA/c1", "projA/c2", "projB/c3"}, ids)
}

func TestSampleDeterministic(t *testing.T) {
	root := t.TempDir()
	makeDataset(t, root, map[string][]string{
		"p1": {"c1", "c2", "c3"},
		"p2": {"c4", "c5", "c6"},
	})

	ws1 := filepath.Join(t.TempDir(), "scenarios")
	ws2 := filepath.Join(t.TempDir(), "scenarios")

	first, err := sampler.Sample(root, ws1, 3, 1234)
	require.NoError(t, err)
	second, err := sampler.Sample(root, ws2, 3, 1234)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same seed over the same dataset must select the same subset in the same order")
	assert.Len(t, first, 3)
}

func TestSampleDifferentSeeds(t *testing.T) {
	root := t.TempDir()
	commits := make([]string, 20)
	for i := range commits {
		commits[i] = fmt.Sprintf("c%02d", i)
	}
	makeDataset(t, root, map[string][]string{"p": commits})

	a, err := sampler.Sample(root, filepath.Join(t.TempDir(), "ws"), 5, 1)
	require.NoError(t, err)
	b, err := sampler.Sample(root, filepath.Join(t.TempDir(), "ws"), 5, 2)
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "different seeds should almost surely differ over 20 candidates")
}

func TestSampleClampsToAvailable(t *testing.T) {
	root := t.TempDir()
	makeDataset(t, root, map[string][]string{"p": {"c1", "c2"}})

	ws := filepath.Join(t.TempDir(), "scenarios")
	picked, err := sampler.Sample(root, ws, 99, 7)
	require.NoError(t, err)
	assert.Len(t, picked, 2)
}

func TestSampleInvalidCount(t *testing.T) {
	_, err := sampler.Sample(t.TempDir(), t.TempDir(), -2, 0)
	assert.Error(t, err)
}

func TestSampleKeepExistingWorkingSet(t *testing.T) {
	ws := t.TempDir()
	staged := filepath.Join(ws, "p", "c", "base", "f.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(staged), 0o755))
	require.NoError(t, os.WriteFile(staged, []byte("keep"), 0o644))

	picked, err := sampler.Sample(t.TempDir(), ws, -1, 0)
	require.NoError(t, err)
	assert.Nil(t, picked)
	assert.FileExists(t, staged, "n = -1 must not touch the working set")
}

func TestSampleClearsWorkingSetButKeepsMarker(t *testing.T) {
	root := t.TempDir()
	makeDataset(t, root, map[string][]string{"p": {"c1"}})

	ws := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(ws, sampler.KeepMarker), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(ws, "stale.txt"), []byte("old"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(ws, "old-proj", "old-commit"), 0o755))

	_, err := sampler.Sample(root, ws, 1, 42)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(ws, sampler.KeepMarker))
	assert.NoFileExists(t, filepath.Join(ws, "stale.txt"))
	assert.NoDirExists(t, filepath.Join(ws, "old-proj"))
}

func TestSampleCopiesScenarioTree(t *testing.T) {
	root := t.TempDir()
	makeDataset(t, root, map[string][]string{"proj": {"abc"}})

	ws := filepath.Join(t.TempDir(), "scenarios")
	picked, err := sampler.Sample(root, ws, 1, 9)
	require.NoError(t, err)
	require.Len(t, picked, 1)

	copied := filepath.Join(ws, "proj", "abc", "base", "f.txt")
	data, err := os.ReadFile(copied)
	require.NoError(t, err)
	assert.Equal(t, "projabc", string(data))

	srcInfo, err := os.Stat(filepath.Join(root, "ds1", "merge_scenarios", "proj", "abc", "base", "f.txt"))
	require.NoError(t, err)
	dstInfo, err := os.Stat(copied)
	require.NoError(t, err)
	assert.Equal(t, srcInfo.ModTime(), dstInfo.ModTime(), "copy should preserve modification time")
	assert.Equal(t, srcInfo.Mode().Perm(), dstInfo.Mode().Perm())
}

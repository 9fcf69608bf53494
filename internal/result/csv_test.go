package result_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mergebench/internal/compare"
	"mergebench/internal/result"
)

func sampleRow(project, commit string) compare.Row {
	order := []string{"toolA", "toolB", "actual"}
	results := map[string]compare.Source{
		"toolA":  {Count: 2, Content: "merged", Blocks: []string{"b1", "b2"}, Valid: true},
		"toolB":  {Valid: false},
		"actual": {Count: 0, Content: "merged", Valid: true},
	}
	timings := map[string]float64{"toolA": 15.1234, "toolB": -1}
	return compare.Build(project, commit, "Foo.java", order, results, timings)
}

func TestTableHeaderLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	table := result.NewTable(path, []string{"toolA", "toolB"}, "actual")
	require.NoError(t, table.Append(sampleRow("p", "c1")))

	rows, err := result.ReadTable(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "p", row["project"])
	assert.Equal(t, "c1", row["merge commit"])
	assert.Equal(t, "Foo.java", row["file"])
	assert.Equal(t, "2", row["number of toolA conflicts"])
	assert.Equal(t, "-1", row["number of toolB conflicts"], "invalid source reports the sentinel")
	assert.Equal(t, "0", row["number of actual conflicts"])
	assert.Equal(t, "False", row["toolA content = toolB content"])
	assert.Equal(t, "True", row["toolA content = actual content"])
	assert.Equal(t, "False", row["toolA conflicts = actual conflicts"])
	assert.Equal(t, "False", row["toolB content = actual content"])
	assert.Equal(t, "15.1234", row["toolA time"])
	assert.Equal(t, "-1", row["toolB time"])
	_, hasRefTime := row["actual time"]
	assert.False(t, hasRefTime, "reference has no timing column")
}

func TestTableAppendsIncrementally(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	table := result.NewTable(path, []string{"toolA", "toolB"}, "actual")

	require.NoError(t, table.Append(sampleRow("p", "c1")))

	// The table must be readable mid-run, after a single row.
	rows, err := result.ReadTable(path)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	require.NoError(t, table.Append(sampleRow("p", "c2")))
	rows, err = result.ReadTable(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "c2", rows[1]["merge commit"])

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "project,"), "header written exactly once")
}

func TestCreateRunDir(t *testing.T) {
	base := t.TempDir()
	runDir, err := result.CreateRunDir(base)
	require.NoError(t, err)
	assert.DirExists(t, runDir)

	latest, err := os.Readlink(filepath.Join(base, "latest"))
	require.NoError(t, err)
	assert.Equal(t, runDir, latest)
}

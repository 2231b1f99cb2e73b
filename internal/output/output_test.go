package output

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beetlebugorg/huek250/pkg/huek"
)

func sampleTable() *huek.Table {
	return &huek.Table{
		IndexName: "gauge_id",
		Columns:   []string{"kf_very_high_perc", "waterbody_perc"},
		Rows: []huek.Row{
			{ID: "DE110", Values: []float64{60, 40}},
			{ID: "DE111", Values: []float64{12.5, 87.5}},
		},
	}
}

func sampleRun() Run {
	return Run{
		ID:                "0b8e2a5c-1111-4222-8333-944445555666",
		StartedAt:         time.Date(2024, 1, 16, 10, 30, 0, 0, time.UTC),
		VocabularyVersion: "huek250-v1.3",
		BasePath:          "/in/huek250.shp",
		CatchmentsPath:    "/in/catchments.geojson",
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleTable(), 2))

	want := "gauge_id,kf_very_high_perc,waterbody_perc\n" +
		"DE110,60.00,40.00\n" +
		"DE111,12.50,87.50\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSVFileIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	path, err := WriteCSVFile(dir, sampleTable(), 2)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, CSVFileName), path)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = WriteCSVFile(dir, sampleTable(), 2)
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestWriteMarkdown(t *testing.T) {
	table := sampleTable()
	table.Excluded = []string{"DE999"}

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, sampleRun(), table))
	out := buf.String()

	assert.Contains(t, out, "# HÜK250 Hydrogeology Attributes")
	assert.Contains(t, out, "huek250-v1.3")
	assert.Contains(t, out, "`kf_very_high_perc`")
	assert.Contains(t, out, "36.25") // mean of 60 and 12.5
	assert.Contains(t, out, "87.50")
	assert.Contains(t, out, "DE999")
}

func TestWriteMarkdownEmptyTable(t *testing.T) {
	table := &huek.Table{IndexName: "gauge_id", Columns: []string{"a_perc"}}

	path := filepath.Join(t.TempDir(), "summary.md")
	require.NoError(t, WriteMarkdownFile(path, sampleRun(), table))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "No catchments.")
}

func TestSaveSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	run := sampleRun()
	require.NoError(t, SaveSQLite(context.Background(), path, run, sampleTable()))

	second := run
	second.ID = "second"
	require.NoError(t, SaveSQLite(context.Background(), path, second, sampleTable()))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var runs int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&runs))
	assert.Equal(t, 2, runs)

	var catchments int
	var version string
	require.NoError(t, db.QueryRow(`SELECT catchments, vocabulary_version FROM runs WHERE run_id = ?`, run.ID).Scan(&catchments, &version))
	assert.Equal(t, 2, catchments)
	assert.Equal(t, "huek250-v1.3", version)

	var value float64
	require.NoError(t, db.QueryRow(`
		SELECT value FROM hydrogeology_attributes
		WHERE run_id = ? AND gauge_id = ? AND column_name = ?`,
		run.ID, "DE111", "waterbody_perc").Scan(&value))
	assert.Equal(t, 87.5, value)

	var values int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM hydrogeology_attributes`).Scan(&values))
	assert.Equal(t, 8, values)
}

func TestSaveSQLiteDuplicateRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	require.NoError(t, SaveSQLite(context.Background(), path, sampleRun(), sampleTable()))

	err := SaveSQLite(context.Background(), path, sampleRun(), sampleTable())
	require.Error(t, err)

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var values int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM hydrogeology_attributes`).Scan(&values))
	assert.Equal(t, 4, values, "failed run must not leave rows behind")
}

func TestChmodTree(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	require.NoError(t, os.MkdirAll(sub, 0o700))
	file := filepath.Join(sub, "a.csv")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	require.NoError(t, ChmodTree(root, 0o755))

	for _, p := range []string{root, sub, file} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o755), info.Mode().Perm(), p)
	}
}

func TestWriteErrorLog(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 1, 16, 10, 30, 0, 0, time.UTC) // Tuesday of week 3

	path, err := WriteErrorLog(dir, now, "Either no TOOL_RUN environment variable available, or 'foo' is not valid.")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[2024-W03-2] Either no TOOL_RUN environment variable available, or 'foo' is not valid.\n", string(data))
}

func TestISOWeekDate(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), "2024-W03-2"},
		{time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), "2022-W52-7"},
		{time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC), "2020-W53-4"},
	}
	for _, tt := range tests {
		if got := isoWeekDate(tt.date); got != tt.want {
			t.Errorf("isoWeekDate(%v) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestNewRun(t *testing.T) {
	a := NewRun(time.Now(), "v")
	b := NewRun(time.Now(), "v")
	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, a.ID, 36)
	assert.True(t, strings.Count(a.ID, "-") == 4)
}

package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/beetlebugorg/huek250/pkg/huek"
)

// CSVFileName is the name of the attribute table in the output directory.
const CSVFileName = "hydrogeology_attributes.csv"

// WriteCSV writes the table with a header row. The first column is the
// catchment ID under the table's index name; values use a fixed number of
// decimals so that repeated runs produce identical files.
func WriteCSV(w io.Writer, table *huek.Table, decimals int) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(table.Columns)+1)
	header = append(header, table.IndexName)
	header = append(header, table.Columns...)
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for _, r := range table.Rows {
		record[0] = r.ID
		for i, v := range r.Values {
			record[i+1] = strconv.FormatFloat(v, 'f', decimals, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the table to CSVFileName in dir, creating dir if
// needed, and returns the file path.
func WriteCSVFile(dir string, table *huek.Table, decimals int) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(dir, CSVFileName)
	f, err := os.Create(path) //nolint:gosec // output path is configured
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}

	if err := WriteCSV(f, table, decimals); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

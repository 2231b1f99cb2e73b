package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrorLogFileName is written to the output directory when a run is
// rejected before any processing.
const ErrorLogFileName = "error.log"

// WriteErrorLog writes "[<ISO week date>] <message>" to error.log in dir,
// replacing any previous log.
func WriteErrorLog(dir string, now time.Time, message string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(dir, ErrorLogFileName)
	line := fmt.Sprintf("[%s] %s\n", isoWeekDate(now), message)
	if err := os.WriteFile(path, []byte(line), 0o644); err != nil { //nolint:gosec // log is meant to be readable
		return "", err
	}
	return path, nil
}

// isoWeekDate formats t as an ISO 8601 week date, e.g. 2024-W03-2.
func isoWeekDate(t time.Time) string {
	year, week := t.ISOWeek()
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return fmt.Sprintf("%04d-W%02d-%d", year, week, weekday)
}

package output

import (
	"time"

	"github.com/google/uuid"
)

// Run describes one execution of the tool.
type Run struct {
	ID                string
	StartedAt         time.Time
	VocabularyVersion string
	BasePath          string
	CatchmentsPath    string
}

// NewRun creates a Run with a random ID.
func NewRun(startedAt time.Time, vocabularyVersion string) Run {
	return Run{
		ID:                uuid.New().String(),
		StartedAt:         startedAt,
		VocabularyVersion: vocabularyVersion,
	}
}

package eventlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/diillson/momcarebot/internal/domain/entity"
	"github.com/diillson/momcarebot/internal/domain/repository"
)

// MaxFieldLength caps message and extra so one bad error cannot bloat the log.
const MaxFieldLength = 400

const timestampLayout = "2006-01-02 15:04:05"

var header = []string{"timestamp", "job", "status", "message", "extra"}

// CSVRepositoryImpl appends events to a CSV file.
type CSVRepositoryImpl struct {
	path string
}

// NewCSVRepository creates an EventLogRepository appending to path.
func NewCSVRepository(path string) repository.EventLogRepository {
	return &CSVRepositoryImpl{path: path}
}

// Append writes one event, creating the file and its header on first use.
func (r *CSVRepositoryImpl) Append(event entity.Event) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("error creating log directory: %w", err)
	}

	_, err := os.Stat(r.path)
	isNew := errors.Is(err, os.ErrNotExist)

	file, err := os.OpenFile(r.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error opening event log: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if isNew {
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("error writing event log header: %w", err)
		}
	}

	record := []string{
		event.Timestamp.Format(timestampLayout),
		truncate(event.Job),
		string(event.Status),
		truncate(event.Message),
		truncate(event.Extra),
	}
	if err := writer.Write(record); err != nil {
		return fmt.Errorf("error writing event: %w", err)
	}

	writer.Flush()
	return writer.Error()
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxFieldLength {
		return s
	}
	return string(runes[:MaxFieldLength])
}

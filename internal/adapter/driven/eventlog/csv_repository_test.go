package eventlog

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/diillson/momcarebot/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var eventTime = time.Date(2026, time.March, 1, 9, 0, 5, 0, time.UTC)

func readRecords(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVRepositoryImpl_Append(t *testing.T) {
	t.Run("should write the header once and append events", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "data", "logs.csv")
		repo := NewCSVRepository(path)

		// when
		require.NoError(t, repo.Append(entity.Event{Timestamp: eventTime, Job: "weekly_call", Status: entity.StatusStarted, Message: "Weekly call job triggered"}))
		require.NoError(t, repo.Append(entity.Event{Timestamp: eventTime, Job: "weekly_call", Status: entity.StatusError, Message: "send_call_reminder", Extra: "boom, \"quoted\""}))

		// then
		records := readRecords(t, path)
		require.Len(t, records, 3)
		assert.Equal(t, header, records[0])
		assert.Equal(t, []string{"2026-03-01 09:00:05", "weekly_call", "STARTED", "Weekly call job triggered", ""}, records[1])
		assert.Equal(t, []string{"2026-03-01 09:00:05", "weekly_call", "ERROR", "send_call_reminder", "boom, \"quoted\""}, records[2])
	})

	t.Run("should not repeat the header for an existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs.csv")
		require.NoError(t, NewCSVRepository(path).Append(entity.Event{Timestamp: eventTime, Job: "system", Status: entity.StatusStarted}))

		require.NoError(t, NewCSVRepository(path).Append(entity.Event{Timestamp: eventTime, Job: "system", Status: entity.StatusDone}))

		records := readRecords(t, path)
		require.Len(t, records, 3)
		assert.Equal(t, "DONE", records[2][2])
	})

	t.Run("should cap long fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs.csv")
		long := strings.Repeat("₦", MaxFieldLength+50)

		require.NoError(t, NewCSVRepository(path).Append(entity.Event{Timestamp: eventTime, Job: "system", Status: entity.StatusError, Message: long, Extra: long}))

		records := readRecords(t, path)
		assert.Equal(t, MaxFieldLength, len([]rune(records[1][3])))
		assert.Equal(t, MaxFieldLength, len([]rune(records[1][4])))
	})
}

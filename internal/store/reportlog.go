package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/vfortin-ynov/weather-report-service/internal/weather"
)

// ReportLog is a JSON-file-backed implementation of weather.ReportStore.
// The file holds a single pretty-printed JSON array and is rewritten in
// full on every append. The log assumes a single writer: the
// read-modify-write cycle is not atomic, and concurrent appends to the
// same file can silently lose entries.
type ReportLog struct {
	path string
}

// NewReportLog creates a ReportLog over the given file path. The file
// does not need to exist yet.
func NewReportLog(path string) *ReportLog {
	return &ReportLog{path: path}
}

// Load returns all reports currently in the log. A missing file or a
// file with invalid JSON is treated as an empty log, not an error: the
// log self-heals on the next append.
func (l *ReportLog) Load() ([]weather.WeatherReport, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, nil
	}

	var reports []weather.WeatherReport
	if err := json.Unmarshal(data, &reports); err != nil {
		return nil, nil
	}
	return reports, nil
}

// Append adds a report to the end of the log, preserving the order and
// content of all prior entries, and rewrites the file.
func (l *ReportLog) Append(report weather.WeatherReport) error {
	reports, err := l.Load()
	if err != nil {
		return err
	}

	reports = append(reports, report)

	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report log: %w", err)
	}

	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		return fmt.Errorf("write report log: %w", err)
	}
	return nil
}

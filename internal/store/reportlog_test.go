package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vfortin-ynov/weather-report-service/internal/weather"
)

func newTestLog(t *testing.T) *ReportLog {
	t.Helper()
	return NewReportLog(filepath.Join(t.TempDir(), "weather_log.json"))
}

func TestAppendToMissingFile(t *testing.T) {
	l := newTestLog(t)

	report := weather.WeatherReport{City: "Paris", Temperature: 25.5, Timestamp: "2023-01-01T12:00:00Z"}
	if err := l.Append(report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reports, err := l.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
	if reports[0] != report {
		t.Errorf("expected %+v, got %+v", report, reports[0])
	}
}

func TestAppendGrowsSequenceInOrder(t *testing.T) {
	l := newTestLog(t)

	const n = 5
	for i := 0; i < n; i++ {
		report := weather.WeatherReport{
			City:        fmt.Sprintf("City%d", i),
			Temperature: float64(20 + i),
			Timestamp:   fmt.Sprintf("2023-01-01T12:0%d:00Z", i),
		}
		if err := l.Append(report); err != nil {
			t.Fatalf("append %d: unexpected error: %v", i, err)
		}
	}

	reports, err := l.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != n {
		t.Fatalf("expected %d reports, got %d", n, len(reports))
	}
	for i, r := range reports {
		if want := fmt.Sprintf("City%d", i); r.City != want {
			t.Errorf("report %d: expected city %s, got %s", i, want, r.City)
		}
		if r.Temperature != float64(20+i) {
			t.Errorf("report %d: unexpected temperature %v", i, r.Temperature)
		}
	}
}

func TestAppendPreservesExistingEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather_log.json")

	existing := []weather.WeatherReport{
		{City: "Lyon", Temperature: 22.5, Timestamp: "2023-01-01T10:00:00Z"},
	}
	data, err := json.Marshal(existing)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewReportLog(path)
	if err := l.Append(weather.WeatherReport{City: "Paris", Temperature: 25.5, Timestamp: "2023-01-01T12:00:00Z"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reports, err := l.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if reports[0].City != "Lyon" || reports[1].City != "Paris" {
		t.Errorf("unexpected order: %+v", reports)
	}
	if reports[0] != existing[0] {
		t.Errorf("prior entry was altered: %+v", reports[0])
	}
}

func TestAppendRecoversFromCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather_log.json")
	if err := os.WriteFile(path, []byte("{{{ not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewReportLog(path)
	if err := l.Append(weather.WeatherReport{City: "Paris", Temperature: 25.5, Timestamp: "2023-01-01T12:00:00Z"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reports, err := l.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected a fresh log of length 1, got %d entries", len(reports))
	}
}

func TestLoadMissingFile(t *testing.T) {
	l := newTestLog(t)

	reports, err := l.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 0 {
		t.Fatalf("expected empty log, got %d entries", len(reports))
	}
}

func TestFileIsIndented(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather_log.json")

	l := NewReportLog(path)
	if err := l.Append(weather.WeatherReport{City: "Paris", Temperature: 25.5, Timestamp: "2023-01-01T12:00:00Z"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\n  {") {
		t.Errorf("expected 2-space indented JSON, got:\n%s", data)
	}
	if !strings.Contains(string(data), `"city": "Paris"`) {
		t.Errorf("expected city field in file, got:\n%s", data)
	}
}

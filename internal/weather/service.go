package weather

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vfortin-ynov/weather-report-service/internal/common"
)

// The upstream forecast endpoint returns observations in 3-hour
// buckets, 8 per day. This is a fixed property of the API, not
// configuration.
const forecastBucketsPerDay = 8

// goodWeatherMinTemp is the strict lower bound for IsGoodWeather, in °C.
const goodWeatherMinTemp = 20.0

// CompareFailedMessage is returned by CompareCities when either
// temperature lookup comes back absent.
const CompareFailedMessage = "cannot compare cities"

// Service exposes the weather operations and report persistence on top
// of the low-level client. Read-path operations report absence via a
// bool; only the write path (SaveWeatherReport) can return an error.
type Service struct {
	client  *Client
	reports ReportStore

	// now is the clock used to timestamp reports; overridable in tests.
	now func() time.Time
}

// NewService creates a new Service.
func NewService(client *Client, reports ReportStore) *Service {
	return &Service{
		client:  client,
		reports: reports,
		now:     time.Now,
	}
}

// GetTemperature returns the current temperature for a city in °C.
// An unknown city, a transport failure and a malformed body are all
// reported the same way: ok == false.
func (s *Service) GetTemperature(ctx context.Context, city string) (float64, bool) {
	payload, ok := s.client.fetchCurrent(ctx, city)
	if !ok || payload.Main == nil {
		return 0, false
	}
	return payload.Main.Temp, true
}

// GetForecast returns the raw forecast buckets for the next days days
// (8 buckets per day). Interpretation of individual entries is left to
// the caller.
func (s *Service) GetForecast(ctx context.Context, city string, days int) ([]ForecastEntry, bool) {
	payload, ok := s.client.fetchForecast(ctx, city, days*forecastBucketsPerDay)
	if !ok || payload.List == nil {
		return nil, false
	}
	return payload.List, true
}

// IsGoodWeather reports whether a city currently has good weather:
// strictly above 20°C and no rain in the headline condition. The
// second return is false when no judgement could be made.
func (s *Service) IsGoodWeather(ctx context.Context, city string) (bool, bool) {
	payload, ok := s.client.fetchCurrent(ctx, city)
	if !ok || payload.Main == nil || len(payload.Weather) == 0 {
		return false, false
	}

	obs := Observation{
		Temperature: payload.Main.Temp,
		Condition:   strings.ToLower(payload.Weather[0].Main),
	}
	return obs.Temperature > goodWeatherMinTemp && !common.ContainsFold(obs.Condition, "rain"), true
}

// CompareCities compares the current temperatures of two cities and
// returns a human-readable verdict. When either lookup is absent it
// returns CompareFailedMessage rather than an error.
func (s *Service) CompareCities(ctx context.Context, city1, city2 string) string {
	temp1, ok1 := s.GetTemperature(ctx, city1)
	temp2, ok2 := s.GetTemperature(ctx, city2)

	if !ok1 || !ok2 {
		return CompareFailedMessage
	}

	switch {
	case temp1 > temp2:
		return fmt.Sprintf("%s is warmer than %s (%.1f°C > %.1f°C)", city1, city2, temp1, temp2)
	case temp2 > temp1:
		return fmt.Sprintf("%s is warmer than %s (%.1f°C > %.1f°C)", city2, city1, temp2, temp1)
	default:
		return fmt.Sprintf("both cities have the same temperature (%.1f°C)", temp1)
	}
}

// SaveWeatherReport looks up the current temperature for a city and
// appends a timestamped report to the store. It returns (false, nil)
// when the lookup is absent, in which case the store is not touched;
// an error is returned only for a failed write.
func (s *Service) SaveWeatherReport(ctx context.Context, city string) (bool, error) {
	temp, ok := s.GetTemperature(ctx, city)
	if !ok {
		return false, nil
	}

	report := WeatherReport{
		City:        city,
		Temperature: temp,
		Timestamp:   s.now().Format(time.RFC3339),
	}

	if err := s.reports.Append(report); err != nil {
		return false, fmt.Errorf("append weather report: %w", err)
	}
	return true, nil
}

// Reports delegates to the underlying store.
func (s *Service) Reports() ([]WeatherReport, error) {
	return s.reports.Load()
}

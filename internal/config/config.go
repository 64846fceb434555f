package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultAPIBaseURL = "https://api.openweathermap.org/data/2.5"

type AppConfig struct {
	// Upstream API endpoint and credential. The key is not validated
	// here; a missing key simply makes outbound requests fail.
	APIBaseURL string
	APIKey     string

	// HTTPTimeout bounds every outbound call.
	HTTPTimeout time.Duration

	// ReportFile is the JSON report log path.
	ReportFile string

	// ReportCities are saved to the log on every scheduler tick.
	// Empty disables the scheduler.
	ReportCities []string

	// ReportInterval controls how often scheduled reports are saved.
	ReportInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.APIBaseURL = getenvDefault("OPENWEATHER_API_URL", defaultAPIBaseURL)
	cfg.APIKey = os.Getenv("OPENWEATHER_API_KEY")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.ReportFile = getenvDefault("REPORT_FILE", "weather_log.json")
	cfg.ReportCities = splitCities(os.Getenv("REPORT_CITIES"))

	intervalStr := getenvDefault("REPORT_INTERVAL", "15m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_INTERVAL: %w", err)
	}
	cfg.ReportInterval = interval

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func splitCities(s string) []string {
	var cities []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			cities = append(cities, c)
		}
	}
	return cities
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

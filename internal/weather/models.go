package weather

// ClientConfig identifies the upstream OpenWeatherMap-compatible API.
// Both values are supplied at construction and never change afterwards;
// the client does not validate them (a missing key simply produces
// rejected outbound requests).
type ClientConfig struct {
	BaseURL string
	APIKey  string
}

// Observation is a single weather data point for a city: the current
// temperature plus the headline condition ("Clear", "Rain", ...).
type Observation struct {
	Temperature float64
	Condition   string
}

// ForecastEntry is one 3-hour bucket from the upstream forecast list.
// Entries are passed through to callers mostly as-is; only the fields
// this service actually reads are decoded.
type ForecastEntry struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

// WeatherReport is the record persisted by SaveWeatherReport. The JSON
// field names are part of the on-disk log format and must not change.
type WeatherReport struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	Timestamp   string  `json:"timestamp"` // RFC 3339
}

// ReportStore is the contract the file-backed report log (and any
// future persistent store) must satisfy. Append grows the stored
// sequence by exactly one entry, preserving all prior entries.
type ReportStore interface {
	Append(report WeatherReport) error
	Load() ([]WeatherReport, error)
}

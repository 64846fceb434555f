package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

// Client issues requests to an OpenWeatherMap-compatible API. All
// outbound traffic funnels through the fetch chokepoint so that failure
// handling is uniform: any transport error, non-2xx status or malformed
// body collapses to an absent result, never an error.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	circuit    *gobreaker.CircuitBreaker
}

// NewClient creates a Client over the given HTTP client. Passing nil
// falls back to http.DefaultClient; production callers should supply a
// client with an explicit timeout.
func NewClient(cfg ClientConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		circuit:    cb,
	}
}

// currentPayload is the subset of the /weather response this service
// reads. Main is a pointer so a body without a "main" object is
// distinguishable from one with a zero temperature.
type currentPayload struct {
	Main *struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

// forecastPayload is the subset of the /forecast response this service
// reads. A missing "list" field decodes to a nil slice, which callers
// treat as absent.
type forecastPayload struct {
	List []ForecastEntry `json:"list"`
}

// fetch performs GET {baseURL}/{endpoint} with the given query
// parameters extended by the API key and metric units, decoding a 2xx
// body into out. It reports false on any failure and never returns
// error detail: a network fault, an open circuit, a 404 for an unknown
// city and a garbled body are all indistinguishable to callers.
func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values, out any) bool {
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	u := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false
	}

	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, execErr := c.httpClient.Do(req)
		if execErr != nil {
			return nil, execErr
		}

		// Rate limiting and server errors count against the breaker;
		// other statuses (notably 404 for an unknown city) are normal
		// upstream answers and must not trip it.
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			return nil, fmt.Errorf("upstream status %d", resp.StatusCode)
		}

		return resp, nil
	})
	if err != nil {
		return false
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false
	}
	return true
}

// fetchCurrent retrieves the current conditions for a city.
func (c *Client) fetchCurrent(ctx context.Context, city string) (currentPayload, bool) {
	params := url.Values{}
	params.Set("q", city)

	var payload currentPayload
	if !c.fetch(ctx, "weather", params, &payload) {
		return currentPayload{}, false
	}
	return payload, true
}

// fetchForecast retrieves cnt 3-hour forecast buckets for a city.
func (c *Client) fetchForecast(ctx context.Context, city string, cnt int) (forecastPayload, bool) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("cnt", fmt.Sprintf("%d", cnt))

	var payload forecastPayload
	if !c.fetch(ctx, "forecast", params, &payload) {
		return forecastPayload{}, false
	}
	return payload, true
}

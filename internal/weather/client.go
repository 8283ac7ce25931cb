// Package weather looks up daily weather conditions for an ISO week from the
// weatherapi.com history endpoint on RapidAPI.
package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/goccy/go-json"

	"holiday-manager/internal/holiday"
)

const (
	DefaultHost     = "weatherapi-com.p.rapidapi.com"
	DefaultLocation = "New York"

	// NoData is reported for days the API did not return.
	NoData = "No weather data"
)

// ErrNoAPIKey is returned when the client has no RapidAPI key.
var ErrNoAPIKey = errors.New("weather: no API key configured (set WEATHERAPI_KEY)")

type Client struct {
	BaseURL  string // defaults to https://<Host>
	Host     string
	APIKey   string
	Location string
	HTTP     *http.Client
	Retries  uint
	Logger   *slog.Logger

	mu    sync.RWMutex
	cache map[[2]int]map[string]string
}

func NewClient(host, apiKey, location string, client *http.Client) *Client {
	if host == "" {
		host = DefaultHost
	}
	if location == "" {
		location = DefaultLocation
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		BaseURL:  "https://" + host,
		Host:     host,
		APIKey:   apiKey,
		Location: location,
		HTTP:     client,
		Retries:  2,
		Logger:   slog.Default(),
	}
}

type historyResponse struct {
	Forecast struct {
		ForecastDay []struct {
			Date string `json:"date"`
			Day  struct {
				Condition struct {
					Text string `json:"text"`
				} `json:"condition"`
			} `json:"day"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

// Week returns the condition text for each day of ISO week (year, week),
// keyed by YYYY-MM-DD. Days the API omits map to NoData.
func (c *Client) Week(ctx context.Context, year, week int) (map[string]string, error) {
	if !holiday.ValidWeek(year, week) {
		return nil, fmt.Errorf("weather: %d has no ISO week %d", year, week)
	}
	key := [2]int{year, week}
	c.mu.RLock()
	if cached, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		return cached, nil
	}
	c.mu.RUnlock()

	if c.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	days := holiday.WeekDays(year, week)
	resp, err := c.history(ctx, days[0], days[6])
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(days))
	for _, d := range days {
		out[d.Format(holiday.DateLayout)] = NoData
	}
	for _, fd := range resp.Forecast.ForecastDay {
		if _, inWeek := out[fd.Date]; inWeek && fd.Day.Condition.Text != "" {
			out[fd.Date] = fd.Day.Condition.Text
		}
	}

	c.mu.Lock()
	if c.cache == nil {
		c.cache = make(map[[2]int]map[string]string)
	}
	c.cache[key] = out
	c.mu.Unlock()
	return out, nil
}

func (c *Client) history(ctx context.Context, start, end time.Time) (historyResponse, error) {
	q := url.Values{}
	q.Set("q", c.Location)
	q.Set("dt", start.Format(holiday.DateLayout))
	q.Set("end_dt", end.Format(holiday.DateLayout))
	q.Set("lang", "en")
	endpoint := c.BaseURL + "/history.json?" + q.Encode()

	op := func() (historyResponse, error) {
		var out historyResponse
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return out, backoff.Permanent(err)
		}
		req.Header.Set("x-rapidapi-host", c.Host)
		req.Header.Set("x-rapidapi-key", c.APIKey)

		resp, err := c.HTTP.Do(req)
		if err != nil {
			return out, err
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return out, err
		}
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return out, fmt.Errorf("weather: %s", resp.Status)
		}
		if resp.StatusCode != http.StatusOK {
			return out, backoff.Permanent(fmt.Errorf("weather: %s", resp.Status))
		}
		if err := json.Unmarshal(body, &out); err != nil {
			return out, backoff.Permanent(fmt.Errorf("weather: decode response: %w", err))
		}
		return out, nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	return backoff.Retry(ctx, op,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(c.Retries+1),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.logger().Debug("retrying weather lookup", "in", next, "err", err)
		}),
	)
}

func (c *Client) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

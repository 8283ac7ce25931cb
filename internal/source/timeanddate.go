package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	"holiday-manager/internal/holiday"
)

// DefaultTimeAndDateURL is the printable US calendar; %d is the year.
const DefaultTimeAndDateURL = "https://www.timeanddate.com/calendar/print.html?year=%d&country=1&hol=33554809&df=1"

// TimeAndDate scrapes the holiday table of the timeanddate.com printable
// calendar.
type TimeAndDate struct {
	URL     string // fmt pattern with a single %d for the year
	HTTP    *http.Client
	Retries uint
	Logger  *slog.Logger

	MinDelay time.Duration
	MaxDelay time.Duration
}

func NewTimeAndDate(url string, client *http.Client, retries uint, logger *slog.Logger) *TimeAndDate {
	if url == "" {
		url = DefaultTimeAndDateURL
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TimeAndDate{
		URL:      url,
		HTTP:     client,
		Retries:  retries,
		Logger:   logger,
		MinDelay: 500 * time.Millisecond,
		MaxDelay: 5 * time.Second,
	}
}

func (s *TimeAndDate) Name() string { return "timeanddate" }

func (s *TimeAndDate) Fetch(ctx context.Context, year int) ([]holiday.Record, error) {
	url := s.URL
	if strings.Contains(url, "%d") {
		url = fmt.Sprintf(url, year)
	} else {
		url = strings.ReplaceAll(url, "XXXX", strconv.Itoa(year))
	}

	body, err := s.get(ctx, url)
	if err != nil {
		return nil, err
	}
	rows, err := ParseCalendarTable(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}

	out := make([]holiday.Record, 0, len(rows))
	for _, r := range rows {
		d, err := ParseMonthDay(r.Date, year)
		if err != nil {
			s.Logger.Warn("skipping scraped row", "year", year, "date", r.Date, "name", r.Name, "err", err)
			continue
		}
		out = append(out, holiday.Record{Name: r.Name, Date: d.Format(holiday.DateLayout)})
	}
	return out, nil
}

func (s *TimeAndDate) get(ctx context.Context, url string) (string, error) {
	b := backoff.NewExponentialBackOff()
	if s.MinDelay > 0 {
		b.InitialInterval = s.MinDelay
	}
	if s.MaxDelay > 0 {
		b.MaxInterval = s.MaxDelay
	}

	op := func() (string, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", "holiday-manager/1.0")
		resp, err := s.HTTP.Do(req)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", err
		}
		switch {
		case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
			return "", fmt.Errorf("GET %s: %s", url, resp.Status)
		case resp.StatusCode >= 400:
			return "", backoff.Permanent(fmt.Errorf("GET %s: %s", url, resp.Status))
		}
		return string(body), nil
	}

	return backoff.Retry(ctx, op,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(s.Retries+1),
		backoff.WithNotify(func(err error, next time.Duration) {
			s.Logger.Debug("retrying holiday page", "url", url, "in", next, "err", err)
		}),
	)
}

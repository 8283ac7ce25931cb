package weather_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"holiday-manager/internal/weather"
)

const threeDays = `{"forecast":{"forecastday":[
 {"date":"2024-01-01","day":{"condition":{"text":"Sunny"}}},
 {"date":"2024-01-02","day":{"condition":{"text":"Light rain"}}},
 {"date":"2024-01-03","day":{"condition":{"text":""}}}
]}}`

type seen struct {
	query  string
	host   string
	key    string
	calls  atomic.Int32
	status int
}

func newServer(t *testing.T, s *seen, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		s.query = r.URL.RawQuery
		s.host = r.Header.Get("x-rapidapi-host")
		s.key = r.Header.Get("x-rapidapi-key")
		if s.status != 0 {
			w.WriteHeader(s.status)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestWeek(t *testing.T) {
	s := &seen{}
	srv := newServer(t, s, threeDays)

	c := weather.NewClient("", "secret", "", srv.Client())
	c.BaseURL = srv.URL

	got, err := c.Week(context.Background(), 2024, 1)
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"2024-01-01": "Sunny",
		"2024-01-02": "Light rain",
		"2024-01-03": weather.NoData,
		"2024-01-04": weather.NoData,
		"2024-01-05": weather.NoData,
		"2024-01-06": weather.NoData,
		"2024-01-07": weather.NoData,
	}, got)

	require.Equal(t, "dt=2024-01-01&end_dt=2024-01-07&lang=en&q=New+York", s.query)
	require.Equal(t, weather.DefaultHost, s.host)
	require.Equal(t, "secret", s.key)

	_, err = c.Week(context.Background(), 2024, 1)
	require.NoError(t, err)
	require.EqualValues(t, 1, s.calls.Load(), "second lookup should be cached")
}

func TestWeek_MatchesDaysByDate(t *testing.T) {
	s := &seen{}
	srv := newServer(t, s, `{"forecast":{"forecastday":[
 {"date":"2024-01-10","day":{"condition":{"text":"Fog"}}},
 {"date":"2024-01-08","day":{"condition":{"text":"Sunny"}}},
 {"date":"2024-02-01","day":{"condition":{"text":"Hail"}}}
]}}`)
	c := weather.NewClient("", "secret", "", srv.Client())
	c.BaseURL = srv.URL

	got, err := c.Week(context.Background(), 2024, 2)
	require.NoError(t, err)
	require.Len(t, got, 7)
	require.Equal(t, "Sunny", got["2024-01-08"])
	require.Equal(t, weather.NoData, got["2024-01-09"])
	require.Equal(t, "Fog", got["2024-01-10"])
	require.NotContains(t, got, "2024-02-01")
}

func TestWeek_Errors(t *testing.T) {
	c := weather.NewClient("", "", "", nil)
	_, err := c.Week(context.Background(), 2024, 1)
	require.ErrorIs(t, err, weather.ErrNoAPIKey)

	_, err = c.Week(context.Background(), 2024, 53)
	require.Error(t, err)

	s := &seen{status: http.StatusForbidden}
	srv := newServer(t, s, "")
	c = weather.NewClient("", "bad", "Boston", srv.Client())
	c.BaseURL = srv.URL
	_, err = c.Week(context.Background(), 2024, 2)
	require.Error(t, err)
	require.EqualValues(t, 1, s.calls.Load())
}

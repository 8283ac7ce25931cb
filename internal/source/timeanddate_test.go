package source_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"holiday-manager/internal/holiday"
	"holiday-manager/internal/source"
)

const holidayPage = `<html><body><table class="lpad cht">
<tr><td>Jan 1</td><td>New Year's Day</td></tr>
<tr><td>Feb 30</td><td>Not A Day</td></tr>
<tr><td>Dec 25</td><td>Christmas Day</td></tr>
</table></body></html>`

func newTestSource(srv *httptest.Server, retries uint) *source.TimeAndDate {
	s := source.NewTimeAndDate(srv.URL+"/calendar?year=%d", srv.Client(), retries, nil)
	s.MinDelay = time.Millisecond
	s.MaxDelay = 2 * time.Millisecond
	return s
}

func TestTimeAndDateFetch(t *testing.T) {
	var gotYear string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotYear = r.URL.Query().Get("year")
		_, _ = w.Write([]byte(holidayPage))
	}))
	defer srv.Close()

	records, err := newTestSource(srv, 0).Fetch(context.Background(), 2023)
	require.NoError(t, err)
	require.Equal(t, "2023", gotYear)
	require.Equal(t, []holiday.Record{
		{Name: "New Year's Day", Date: "2023-01-01"},
		{Name: "Christmas Day", Date: "2023-12-25"},
	}, records)
}

func TestTimeAndDateFetch_LegacyPlaceholder(t *testing.T) {
	var gotYear string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotYear = r.URL.Query().Get("year")
		_, _ = w.Write([]byte(holidayPage))
	}))
	defer srv.Close()

	s := source.NewTimeAndDate(srv.URL+"/print.html?year=XXXX", srv.Client(), 0, nil)
	records, err := s.Fetch(context.Background(), 2022)
	require.NoError(t, err)
	require.Equal(t, "2022", gotYear)
	require.Len(t, records, 2)
}

func TestTimeAndDateFetch_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(holidayPage))
	}))
	defer srv.Close()

	records, err := newTestSource(srv, 3).Fetch(context.Background(), 2024)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.EqualValues(t, 3, calls.Load())
}

func TestTimeAndDateFetch_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := newTestSource(srv, 3).Fetch(context.Background(), 2024)
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "404"), err.Error())
	require.EqualValues(t, 1, calls.Load())
}

func TestTimeAndDateFetch_MissingTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>maintenance</body></html>"))
	}))
	defer srv.Close()

	_, err := newTestSource(srv, 0).Fetch(context.Background(), 2024)
	require.ErrorIs(t, err, source.ErrNoTable)
}

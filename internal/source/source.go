// Package source fetches holiday records from outside the local file: the
// timeanddate.com printable calendar and an offline US federal calendar.
package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"holiday-manager/internal/holiday"
)

// Source yields raw holiday records for one calendar year.
type Source interface {
	Name() string
	Fetch(ctx context.Context, year int) ([]holiday.Record, error)
}

// Years returns the span [center-back, center+ahead].
func Years(center, back, ahead int) []int {
	years := make([]int, 0, back+ahead+1)
	for y := center - back; y <= center+ahead; y++ {
		years = append(years, y)
	}
	return years
}

// DefaultYears is the current year plus and minus two.
func DefaultYears(now time.Time) []int {
	return Years(now.Year(), 2, 2)
}

// YearError records a year that no source could provide.
type YearError struct {
	Year int
	Err  error
}

func (e YearError) Error() string { return fmt.Sprintf("year %d: %v", e.Year, e.Err) }

func (e YearError) Unwrap() error { return e.Err }

// Report summarises one Merge run.
type Report struct {
	Added  int
	Issues []holiday.Issue
	Failed []YearError
}

// Err joins the per-year failures, or nil when every year was fetched.
func (r Report) Err() error {
	errs := make([]error, len(r.Failed))
	for i, f := range r.Failed {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// Merge fetches every year from the first source that succeeds for it and
// loads the records into l. A year that fails on every source is reported
// and skipped; records already loaded stay loaded.
func Merge(ctx context.Context, l *holiday.List, sources []Source, years []int, logger *slog.Logger) Report {
	if logger == nil {
		logger = slog.Default()
	}
	var rep Report
	for _, year := range years {
		if err := ctx.Err(); err != nil {
			rep.Failed = append(rep.Failed, YearError{Year: year, Err: err})
			continue
		}
		var lastErr error
		fetched := false
		for _, src := range sources {
			records, err := src.Fetch(ctx, year)
			if err != nil {
				logger.Warn("holiday source failed", "source", src.Name(), "year", year, "err", err)
				lastErr = err
				continue
			}
			before := l.Len()
			issues := l.Load(holiday.Document{Holidays: records})
			rep.Added += l.Len() - before
			rep.Issues = append(rep.Issues, issues...)
			logger.Info("holidays fetched", "source", src.Name(), "year", year,
				"records", len(records), "added", l.Len()-before)
			fetched = true
			break
		}
		if !fetched {
			if lastErr == nil {
				lastErr = errors.New("no holiday sources configured")
			}
			rep.Failed = append(rep.Failed, YearError{Year: year, Err: lastErr})
		}
	}
	return rep
}

// Package exporter publishes Prometheus gauges describing a holiday list.
package exporter

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"holiday-manager/internal/holiday"
)

type Exporter struct {
	entries       prometheus.Gauge
	entriesByYear *prometheus.GaugeVec
	nextDays      prometheus.Gauge
	weekWorkdays  prometheus.Gauge
	loadIssues    prometheus.Gauge
	refreshErrors prometheus.Counter

	years map[string]struct{} // year labels currently exported
}

// New creates the gauges and registers them with reg.
func New(reg prometheus.Registerer) *Exporter {
	e := &Exporter{
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "holiday_list_entries",
			Help: "Number of holidays in the list.",
		}),
		entriesByYear: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "holiday_list_entries_by_year",
			Help: "Number of holidays in the list by calendar year.",
		}, []string{"year"}),
		nextDays: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "holiday_next_days",
			Help: "Days until the next holiday, -1 when none is scheduled.",
		}),
		weekWorkdays: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "holiday_week_working_days",
			Help: "Working days in the current ISO week after holidays.",
		}),
		loadIssues: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "holiday_load_issues",
			Help: "Records skipped by the last reload.",
		}),
		refreshErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "holiday_refresh_errors_total",
			Help: "Reloads of the holiday file that failed.",
		}),
	}
	reg.MustRegister(e.entries, e.entriesByYear, e.nextDays, e.weekWorkdays, e.loadIssues, e.refreshErrors)
	return e
}

// Update sets every gauge from l as seen at now.
func (e *Exporter) Update(l *holiday.List, issues int, now time.Time) {
	e.entries.Set(float64(l.Len()))

	current := make(map[string]struct{})
	for year, n := range l.Years() {
		label := strconv.Itoa(year)
		e.entriesByYear.WithLabelValues(label).Set(float64(n))
		current[label] = struct{}{}
	}
	for label := range e.years {
		if _, ok := current[label]; !ok {
			e.entriesByYear.DeleteLabelValues(label)
		}
	}
	e.years = current

	today := holiday.Day(now)
	if next, ok := l.Next(today); ok {
		e.nextDays.Set(next.Date.Sub(today).Hours() / 24)
	} else {
		e.nextDays.Set(-1)
	}

	year, week := today.ISOWeek()
	e.weekWorkdays.Set(float64(holiday.WeekWorkingDays(l, year, week)))
	e.loadIssues.Set(float64(issues))
}

// Refresh reloads the holiday file at path and updates the gauges.
func (e *Exporter) Refresh(path string, now time.Time) error {
	doc, err := holiday.ReadFile(path)
	if err != nil {
		e.refreshErrors.Inc()
		return err
	}
	l := holiday.NewList()
	issues := l.Load(doc)
	e.Update(l, len(issues), now)
	return nil
}

// Run refreshes from path every interval and serves /metrics on listen
// until ctx is done.
func (e *Exporter) Run(ctx context.Context, gatherer prometheus.Gatherer, path, listen string, interval time.Duration, logger *slog.Logger) error {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			if err := e.Refresh(path, time.Now()); err != nil {
				logger.Error("refresh holidays", "path", path, "err", err)
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: listen, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("exporter running", "addr", listen, "path", "/metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"holiday-manager/internal/holiday"
	"holiday-manager/internal/menu"
	"holiday-manager/internal/source"
)

// loadList builds the session list from the input file and, when enabled,
// the holiday sources. Failures are reported and leave what was loaded.
func loadList(ctx context.Context, a *app, scrape bool) *holiday.List {
	l := holiday.NewList()

	doc, err := holiday.ReadFile(a.cfg.Files.Input)
	switch {
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintf(a.out, "No holiday file at %s, starting empty.\n", a.cfg.Files.Input)
	case err != nil:
		a.logger.Error("load holidays", "path", a.cfg.Files.Input, "err", err)
		fmt.Fprintf(a.out, "Unable to read %s: %v\n", a.cfg.Files.Input, err)
	default:
		menu.ReportIssues(a.out, l.Load(doc))
	}

	srcs := a.sources()
	if !scrape || len(srcs) == 0 {
		return l
	}

	fmt.Fprintf(a.out, "******************\nWeb Scrape Started\n******************\n\n")
	years := source.Years(time.Now().Year(), a.cfg.Scrape.YearsBack, a.cfg.Scrape.YearsAhead)
	rep := source.Merge(ctx, l, srcs, years, a.logger)
	for _, is := range rep.Issues {
		if !is.Duplicate() {
			a.logger.Warn("skipped scraped holiday", "name", is.Name, "date", is.Date, "err", is.Err)
		}
	}
	for _, f := range rep.Failed {
		fmt.Fprintf(a.out, "Could not fetch holidays for %d: %v\n", f.Year, f.Err)
	}
	fmt.Fprintf(a.out, "Added %d holidays from %d sources.\n", rep.Added, len(srcs))
	fmt.Fprintf(a.out, "*******************\nWeb Scrape Complete\n*******************\n\n")
	return l
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"holiday-manager/internal/exporter"
	"holiday-manager/internal/holiday"
	"holiday-manager/internal/menu"
)

func runMenu(ctx context.Context, a *app, in io.Reader) error {
	l := loadList(ctx, a, true)
	m := menu.New(l, in, a.out, menu.Options{
		OutputPath: a.cfg.Files.Output,
		Weather:    a.weather(),
		Logger:     a.logger,
	})
	m.Banner()
	return m.Run(ctx)
}

func menuCmd(a *app, in io.Reader) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Load holidays and run the interactive menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd.Context(), a, in)
		},
	}
}

func listCmd(a *app) *cobra.Command {
	var year, week int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the holidays in one ISO week of the input file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !holiday.ValidWeek(year, week) {
				return fmt.Errorf("%d has no ISO week %d", year, week)
			}
			l := loadList(cmd.Context(), a, false)
			hs := l.FilterByWeek(year, week)
			if len(hs) == 0 {
				fmt.Fprintln(a.out, "There are no holidays in the system for the selected week.")
				return nil
			}
			for _, h := range hs {
				fmt.Fprintln(a.out, h)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "ISO year")
	cmd.Flags().IntVar(&week, "week", 0, "ISO week number")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("week")
	return cmd
}

func scrapeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scrape",
		Short: "Merge scraped holidays into the input file and save to the output file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(a.sources()) == 0 {
				return errors.New("no holiday sources enabled")
			}
			l := loadList(cmd.Context(), a, true)
			if err := holiday.WriteFile(a.cfg.Files.Output, l.Document()); err != nil {
				return fmt.Errorf("save %s: %w", a.cfg.Files.Output, err)
			}
			fmt.Fprintf(a.out, "Saved %d holidays to %s\n", l.Len(), a.cfg.Files.Output)
			return nil
		},
	}
}

func exportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Serve Prometheus metrics describing the holiday file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			reg := prometheus.NewRegistry()
			e := exporter.New(reg)
			return e.Run(ctx, reg, a.cfg.Files.Input, a.cfg.Exporter.Listen, a.cfg.Exporter.Interval, a.logger)
		},
	}
}

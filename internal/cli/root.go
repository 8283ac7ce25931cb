package cli

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"holiday-manager/internal/config"
	"holiday-manager/internal/source"
	"holiday-manager/internal/weather"
)

type app struct {
	cfg    config.Config
	logger *slog.Logger
	out    io.Writer
}

// sources returns the configured holiday sources in fallback order.
func (a *app) sources() []source.Source {
	var srcs []source.Source
	if a.cfg.Scrape.Enabled {
		client := &http.Client{Timeout: a.cfg.Scrape.Timeout}
		srcs = append(srcs, source.NewTimeAndDate(a.cfg.Scrape.URL, client, a.cfg.Scrape.Retries, a.logger))
	}
	if a.cfg.Scrape.Fallback == "federal" {
		srcs = append(srcs, source.NewFederal())
	}
	return srcs
}

func (a *app) weather() *weather.Client {
	c := weather.NewClient(a.cfg.Weather.Host, a.cfg.Weather.APIKey, a.cfg.Weather.Location,
		&http.Client{Timeout: a.cfg.Weather.Timeout})
	c.Logger = a.logger
	return c
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute()
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{out: out}
	var (
		cfgPath  string
		input    string
		output   string
		noScrape bool
	)

	root := &cobra.Command{
		Use:           "holiday-manager",
		Short:         "Keep a personal list of holidays",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if input != "" {
				cfg.Files.Input = input
			}
			if output != "" {
				cfg.Files.Output = output
			}
			if noScrape {
				cfg.Scrape.Enabled = false
				cfg.Scrape.Fallback = "none"
			}
			level, _ := config.ParseLevel(cfg.Log.Level)
			a.cfg = cfg
			a.logger = slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd.Context(), a, in)
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath, "path to the YAML config")
	root.PersistentFlags().StringVarP(&input, "input", "i", "", "holiday JSON file to load (overrides config)")
	root.PersistentFlags().StringVarP(&output, "output", "o", "", "holiday JSON file to save to (overrides config)")
	root.PersistentFlags().BoolVar(&noScrape, "no-scrape", false, "skip web and offline holiday sources")

	root.AddCommand(menuCmd(a, in), listCmd(a), scrapeCmd(a), exportCmd(a))
	return root
}

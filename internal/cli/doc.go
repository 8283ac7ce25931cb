// Package cli defines the holiday-manager commands.
//
// Commands
//
//   - menu      Load, scrape and run the interactive menu (default)
//   - list      Print the holidays of one ISO week
//   - scrape    Load, merge scraped holidays and save the result
//   - export    Serve Prometheus metrics about the holiday file
//
// The root command loads configuration and builds the logger before any
// subcommand runs, so handlers share one app value.
package cli

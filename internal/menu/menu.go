// Package menu runs the interactive text menu over a holiday list.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"holiday-manager/internal/holiday"
)

// Weather looks up condition text per day of an ISO week.
type Weather interface {
	Week(ctx context.Context, year, week int) (map[string]string, error)
}

type Options struct {
	OutputPath string
	Weather    Weather // optional
	Now        func() time.Time
	Logger     *slog.Logger
}

type Menu struct {
	list *holiday.List
	in   *bufio.Scanner
	out  io.Writer
	opts Options

	dirty bool
}

func New(list *holiday.List, in io.Reader, out io.Writer, opts Options) *Menu {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Menu{list: list, in: bufio.NewScanner(in), out: out, opts: opts}
}

// Dirty reports whether the list changed since the last save.
func (m *Menu) Dirty() bool { return m.dirty }

// Banner prints the start-up summary.
func (m *Menu) Banner() {
	m.printf("Holiday Management\n=================\n")
	m.printf("There are %d holidays stored in the system.\n\n", m.list.Len())
}

// Run shows the main menu until the user exits or input ends.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.printf("Holiday Menu\n================\n")
		m.printf("1. Add a Holiday\n2. Remove a Holiday\n3. Save Holiday List\n4. View Holidays\n5. Exit\n\n")

		choice, err := m.choose(1, 5)
		if err != nil {
			return endOfInput(err)
		}
		m.printf("\n")

		switch choice {
		case 1:
			err = m.add()
		case 2:
			err = m.remove()
		case 3:
			err = m.save()
		case 4:
			err = m.view(ctx)
		case 5:
			var done bool
			done, err = m.exit()
			if err == nil && done {
				return nil
			}
		}
		if err != nil {
			return endOfInput(err)
		}
		m.printf("\n")
	}
}

func (m *Menu) choose(lo, hi int) (int, error) {
	for {
		s, err := m.prompt("What would you like to do? ")
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(s)
		switch {
		case convErr != nil:
			m.printf("Input was not an integer, please input an integer.\n")
		case n < lo || n > hi:
			m.printf("Input was out of bounds %d - %d. Please retry\n", lo, hi)
		default:
			return n, nil
		}
	}
}

func (m *Menu) add() error {
	m.printf("Add a Holiday\n=================\n")
	name, err := m.promptName()
	if err != nil {
		return err
	}
	var date time.Time
	for {
		s, err := m.prompt("Date: ")
		if err != nil {
			return err
		}
		date, err = holiday.ParseDate(s)
		if err == nil {
			break
		}
		m.printf("\nError:\nInvalid date. Please try again. Format: YYYY-MM-DD\n\n")
	}

	h := holiday.On(name, date)
	if !m.list.Add(h) {
		m.printf("\n%s already exists in the system.\n", h)
		return nil
	}
	m.dirty = true
	m.printf("\nSuccess:\n%s has been added to the holiday list.\n", h)
	return nil
}

func (m *Menu) remove() error {
	m.printf("Remove a Holiday\n=================\n")
	name, err := m.promptName()
	if err != nil {
		return err
	}
	s, err := m.prompt("Date: ")
	if err != nil {
		return err
	}
	date, err := holiday.ParseDate(s)
	if err != nil {
		m.printf("\nError:\nInvalid date %q. Format: YYYY-MM-DD\n", s)
		return nil
	}
	if !m.list.Remove(name, date) {
		m.printf("\nError:\n%s not found.\n", holiday.On(name, date))
		return nil
	}
	m.dirty = true
	m.printf("\nSuccess:\n%s has been removed from the holiday list.\n", name)
	return nil
}

func (m *Menu) save() error {
	m.printf("Saving Holiday List\n===================\n")
	ok, err := m.confirm("Are you sure you want to save your changes? [y/n]: ")
	if err != nil {
		return err
	}
	if !ok {
		m.printf("\nCanceled:\nHoliday list file save canceled\n")
		return nil
	}
	if err := holiday.WriteFile(m.opts.OutputPath, m.list.Document()); err != nil {
		m.opts.Logger.Error("save holidays", "path", m.opts.OutputPath, "err", err)
		m.printf("\nFailed:\nCheck your output file path.\n")
		return nil
	}
	m.dirty = false
	m.printf("\nSuccess:\nYour changes have been saved.\n")
	return nil
}

func (m *Menu) view(ctx context.Context) error {
	m.printf("View Holidays\n===============\n")
	var year int
	for {
		s, err := m.prompt("Which year?: ")
		if err != nil {
			return err
		}
		if y, convErr := strconv.Atoi(s); convErr == nil && len(s) == 4 && y > 0 {
			year = y
			break
		}
		m.printf("Bad input, try again.\n")
	}

	weeks := holiday.WeeksInYear(year)
	var week int
	for {
		s, err := m.prompt(fmt.Sprintf("Which week? [1-%d, Leave blank for the current week]: ", weeks))
		if err != nil {
			return err
		}
		if s == "" {
			break
		}
		n, convErr := strconv.Atoi(s)
		switch {
		case convErr != nil:
			m.printf("Bad input, try again.\n")
		case n < 1 || n > weeks:
			m.printf("Number not in range 1 to %d. Try again.\n", weeks)
		default:
			week = n
		}
		if week != 0 {
			break
		}
	}
	m.printf("\n")

	if week == 0 {
		return m.currentWeek(ctx)
	}
	m.display(m.list.FilterByWeek(year, week), nil)
	m.printf("Working days in week %d of %d: %d\n", week, year, holiday.WeekWorkingDays(m.list, year, week))
	return nil
}

func (m *Menu) currentWeek(ctx context.Context) error {
	year, week := m.opts.Now().ISOWeek()
	holidays := m.list.FilterByWeek(year, week)

	var conditions map[string]string
	if m.opts.Weather != nil {
		ok, err := m.confirm("Would you like to see this week's weather? [y/n]: ")
		if err != nil {
			return err
		}
		if ok {
			conditions, err = m.opts.Weather.Week(ctx, year, week)
			if err != nil {
				m.opts.Logger.Warn("weather lookup failed", "year", year, "week", week, "err", err)
				m.printf("Weather is unavailable right now.\n")
				conditions = nil
			}
		}
	}
	m.display(holidays, conditions)
	m.printf("Working days this week: %d\n", holiday.WeekWorkingDays(m.list, year, week))
	return nil
}

func (m *Menu) display(holidays []holiday.Holiday, conditions map[string]string) {
	if len(holidays) == 0 {
		m.printf("There are no holidays in the system for the selected week.\n")
		return
	}
	for _, h := range holidays {
		if conditions != nil {
			m.printf("%s - %s\n", h, conditions[h.DateString()])
			continue
		}
		m.printf("%s\n", h)
	}
}

func (m *Menu) exit() (bool, error) {
	m.printf("Exit\n===========\n")
	if m.dirty {
		m.printf("There are unsaved changes. Your changes will be lost unless you save!\n")
	}
	ok, err := m.confirm("Are you sure you want to exit? [y/n]: ")
	if err != nil {
		return false, err
	}
	if ok {
		m.printf("\nGoodbye!\n")
	}
	return ok, nil
}

func (m *Menu) promptName() (string, error) {
	for {
		s, err := m.prompt("Holiday: ")
		if err != nil || s != "" {
			return s, err
		}
		m.printf("Holiday name cannot be empty.\n")
	}
}

func (m *Menu) confirm(label string) (bool, error) {
	for {
		s, err := m.prompt(label)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(s) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
		m.printf("Bad input. Try again.\n")
	}
}

func (m *Menu) prompt(label string) (string, error) {
	m.printf("%s", label)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(m.in.Text()), nil
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// ReportIssues prints one notice per skipped record.
func ReportIssues(w io.Writer, issues []holiday.Issue) {
	for _, is := range issues {
		if is.Duplicate() {
			fmt.Fprintf(w, "%s (%s) already exists in the system.\n", is.Name, is.Date)
			continue
		}
		fmt.Fprintf(w, "Skipping %q: %v\n", is.Name, is.Err)
	}
}

package source

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// calendarTableClasses identifies the holiday list on the printable page.
var calendarTableClasses = []string{"cht", "lpad"}

// ErrNoTable means the page did not contain the holiday table.
var ErrNoTable = errors.New("holiday table not found")

// Row is one scraped table row, date still in "Jan 2" form.
type Row struct {
	Date string
	Name string
}

// ParseCalendarTable extracts the rows of the holiday table. Rows whose
// first two cells are not both plain text are skipped.
func ParseCalendarTable(r io.Reader) ([]Row, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	table := findNode(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "table" && hasClasses(n, calendarTableClasses)
	})
	if table == nil {
		return nil, ErrNoTable
	}

	var rows []Row
	walk(table, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "tr" {
			return
		}
		var cells []*html.Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
				cells = append(cells, c)
			}
		}
		if len(cells) < 2 || cells[0].Data != "td" {
			return
		}
		date, ok1 := plainText(cells[0])
		name, ok2 := plainText(cells[1])
		if !ok1 || !ok2 {
			return
		}
		rows = append(rows, Row{Date: date, Name: name})
	})
	return rows, nil
}

// monthDayLayouts are the forms the calendar uses for a row date.
var monthDayLayouts = []string{
	"Jan 2 2006",
	"January 2 2006",
	"2 Jan 2006",
}

// ParseMonthDay parses a "Jan 2" cell in the given year.
func ParseMonthDay(s string, year int) (time.Time, error) {
	value := strings.Join(strings.Fields(s), " ") + " " + strconv.Itoa(year)
	var err error
	for _, layout := range monthDayLayouts {
		var t time.Time
		t, err = time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// plainText returns the cell's text when the cell holds a single text node,
// possibly wrapped in a chain of single-child elements such as a link.
func plainText(n *html.Node) (string, bool) {
	for {
		c := n.FirstChild
		if c == nil || c.NextSibling != nil {
			return "", false
		}
		switch c.Type {
		case html.TextNode:
			s := strings.TrimSpace(c.Data)
			return s, s != ""
		case html.ElementNode:
			n = c
		default:
			return "", false
		}
	}
}

func hasClasses(n *html.Node, want []string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		have := strings.Fields(a.Val)
		for _, w := range want {
			found := false
			for _, h := range have {
				if h == w {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}
	return false
}

func findNode(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, match); found != nil {
			return found
		}
	}
	return nil
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

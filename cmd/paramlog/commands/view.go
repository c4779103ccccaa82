// Package commands implements the paramlog CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mikedotalmond/parameters/pkg/log"
)

const timeLayout = "2006-01-02T15:04:05.000000Z"

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Parameter string
	Bank      string
	Category  *log.Category
}

func (f ViewFilter) journalFilter() log.Filter {
	return log.Filter{
		Parameter: f.Parameter,
		Bank:      f.Bank,
		Category:  f.Category,
	}
}

// formatEvent writes one line per event:
//
//	timestamp [session] #seq bank CATEGORY details
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format(timeLayout)
	fmt.Fprintf(w, "%s [%s] #%-4d %s %-7s", ts, shortenID(event.SessionID), event.Sequence, event.Bank, event.Category)

	switch {
	case event.Change != nil:
		c := event.Change
		value := c.Value
		if c.Unit != "" {
			value += " " + c.Unit
		}
		fmt.Fprintf(w, " %s = %s (%.4f)", c.Parameter, value, c.Normalised)
	case event.Session != nil:
		fmt.Fprintf(w, " %s (%d parameters)", event.Session.Action, event.Session.Parameters)
	}
	fmt.Fprintln(w)
}

// shortenID returns the first 8 characters of a session ID.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	return parseCategory(s)
}

func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "change":
		return log.CategoryChange, nil
	case "session":
		return log.CategorySession, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be change or session)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter.journalFilter())
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}
	return nil
}

// formatDuration formats a session duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return d.Round(time.Millisecond).String()
}

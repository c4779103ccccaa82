package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/mikedotalmond/parameters/pkg/log"
)

// Stats holds aggregate statistics about a journal.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[log.Category]int
	Sessions         map[string]*SessionStats
	Parameters       map[string]*ParameterStats
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for a single recording session.
type SessionStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Changes   int
	Banks     map[string]bool
}

// ParameterStats holds statistics for a single parameter, keyed by
// bank/name.
type ParameterStats struct {
	Changes   int
	LastValue string
	Unit      string
	Min       float64
	Max       float64
}

// RunStats analyzes the journal and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := collectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func collectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[log.Category]int),
		Sessions:         make(map[string]*SessionStats),
		Parameters:       make(map[string]*ParameterStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByCategory[event.Category]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		sess, ok := stats.Sessions[event.SessionID]
		if !ok {
			sess = &SessionStats{
				FirstSeen: event.Timestamp,
				LastSeen:  event.Timestamp,
				Banks:     make(map[string]bool),
			}
			stats.Sessions[event.SessionID] = sess
		}
		sess.Events++
		if event.Timestamp.After(sess.LastSeen) {
			sess.LastSeen = event.Timestamp
		}
		if event.Bank != "" {
			sess.Banks[event.Bank] = true
		}

		if c := event.Change; c != nil {
			sess.Changes++
			key := event.Bank + "/" + c.Parameter
			p, ok := stats.Parameters[key]
			if !ok {
				p = &ParameterStats{Min: c.Normalised, Max: c.Normalised}
				stats.Parameters[key] = p
			}
			p.Changes++
			p.LastValue = c.Value
			p.Unit = c.Unit
			p.Min = min(p.Min, c.Normalised)
			p.Max = max(p.Max, c.Normalised)
		}
	}
	return stats, nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Parameter Journal Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", formatDuration(stats.TimeRange.End.Sub(stats.TimeRange.Start)))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryChange, log.CategorySession} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	if len(stats.Sessions) > 0 {
		type sessInfo struct {
			id    string
			stats *SessionStats
		}
		sessions := make([]sessInfo, 0, len(stats.Sessions))
		for id, ss := range stats.Sessions {
			sessions = append(sessions, sessInfo{id, ss})
		}
		sort.Slice(sessions, func(i, j int) bool {
			return sessions[i].stats.FirstSeen.Before(sessions[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, s := range sessions {
			banks := make([]string, 0, len(s.stats.Banks))
			for b := range s.stats.Banks {
				banks = append(banks, b)
			}
			sort.Strings(banks)
			fmt.Fprintf(w, "  [%s] %d events, %d changes, duration %s\n",
				shortenID(s.id), s.stats.Events, s.stats.Changes,
				formatDuration(s.stats.LastSeen.Sub(s.stats.FirstSeen)))
			if len(banks) > 0 {
				fmt.Fprintf(w, "           Banks: %v\n", banks)
			}
		}
	}

	if len(stats.Parameters) > 0 {
		keys := make([]string, 0, len(stats.Parameters))
		for k := range stats.Parameters {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprintln(w)
		fmt.Fprintln(w, "Parameters:")
		for _, k := range keys {
			p := stats.Parameters[k]
			last := p.LastValue
			if p.Unit != "" {
				last += " " + p.Unit
			}
			fmt.Fprintf(w, "  %-24s %d changes, last %s, normalised [%.4f, %.4f]\n",
				k, p.Changes, last, p.Min, p.Max)
		}
	}
}

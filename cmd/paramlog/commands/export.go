package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/mikedotalmond/parameters/pkg/log"
)

// exportRecord is the flat, readable form of an event used by the JSONL
// export.
type exportRecord struct {
	Timestamp  time.Time `json:"timestamp"`
	Session    string    `json:"session"`
	Sequence   uint64    `json:"seq"`
	Category   string    `json:"category"`
	Bank       string    `json:"bank,omitempty"`
	Parameter  string    `json:"param,omitempty"`
	Kind       string    `json:"kind,omitempty"`
	Law        string    `json:"law,omitempty"`
	Normalised *float64  `json:"normalised,omitempty"`
	Value      string    `json:"value,omitempty"`
	Unit       string    `json:"unit,omitempty"`
	Action     string    `json:"action,omitempty"`
	Parameters *int      `json:"parameters,omitempty"`
}

func newExportRecord(event log.Event) exportRecord {
	r := exportRecord{
		Timestamp: event.Timestamp.UTC(),
		Session:   event.SessionID,
		Sequence:  event.Sequence,
		Category:  event.Category.String(),
		Bank:      event.Bank,
	}
	if c := event.Change; c != nil {
		n := c.Normalised
		r.Parameter = c.Parameter
		r.Kind = c.Kind.String()
		r.Law = c.Law.String()
		r.Normalised = &n
		r.Value = c.Value
		r.Unit = c.Unit
	}
	if s := event.Session; s != nil {
		count := s.Parameters
		r.Action = s.Action.String()
		r.Parameters = &count
	}
	return r
}

// RunExport exports the journal to the specified format.
func RunExport(path, format, output string) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(newExportRecord(event)); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)

	header := []string{"timestamp", "session", "seq", "category", "bank", "param", "value", "unit", "normalised"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		var param, value, unit, normalised string
		switch {
		case event.Change != nil:
			param = event.Change.Parameter
			value = event.Change.Value
			unit = event.Change.Unit
			normalised = strconv.FormatFloat(event.Change.Normalised, 'g', -1, 64)
		case event.Session != nil:
			value = event.Session.Action.String()
		}

		row := []string{
			event.Timestamp.UTC().Format(timeLayout),
			event.SessionID,
			strconv.FormatUint(event.Sequence, 10),
			event.Category.String(),
			event.Bank,
			param,
			value,
			unit,
			normalised,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Command paramlog views and analyzes parameter change journals.
//
// Journals are written by paramctl when it runs with -journal.
//
// Usage:
//
//	paramlog <command> [flags] <file.plog>
//
// Commands:
//
//	view     View the journal in human-readable format
//	export   Export the journal to JSONL or CSV
//	filter   Filter the journal and write to a new file
//	stats    Show per-session and per-parameter statistics
//
// Examples:
//
//	# View all events
//	paramlog view session.plog
//
//	# View changes to one parameter
//	paramlog view -param cutoff session.plog
//
//	# Export to CSV
//	paramlog export -format csv -o session.csv session.plog
//
//	# Keep one session
//	paramlog filter -session 0d6f4c1e-... -o one.plog session.plog
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mikedotalmond/parameters/cmd/paramlog/commands"
)

const usage = `paramlog - Parameter Journal Analyzer

Usage:
  paramlog <command> [flags] <file.plog>

Commands:
  view     View the journal in human-readable format
  export   Export the journal to JSONL or CSV
  filter   Filter the journal and write to a new file
  stats    Show per-session and per-parameter statistics

Use "paramlog <command> -help" for more information about a command.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches a subcommand and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(stderr, usage)
		return 1
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "view":
		return runView(args, stdout, stderr)
	case "export":
		return runExport(args, stderr)
	case "filter":
		return runFilter(args, stdout, stderr)
	case "stats":
		return runStats(args, stdout, stderr)
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(stderr, usage)
		return 1
	}
}

// newFlagSet creates a subcommand flag set whose usage names the command.
func newFlagSet(name, summary, synopsis string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "paramlog %s - %s\n\nUsage:\n  %s\n\nFlags:\n", name, summary, synopsis)
		fs.PrintDefaults()
	}
	return fs
}

// journalPath returns the single positional argument or reports its absence.
func journalPath(fs *flag.FlagSet, stderr io.Writer) (string, bool) {
	if fs.NArg() < 1 {
		fmt.Fprintln(stderr, "Error: journal file path required")
		fs.Usage()
		return "", false
	}
	return fs.Arg(0), true
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}

func runView(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("view", "View the journal in human-readable format",
		"paramlog view [flags] <file.plog>", stderr)
	param := fs.String("param", "", "Show only changes to this parameter")
	bank := fs.String("bank", "", "Show only events for this bank")
	category := fs.String("category", "", "Filter by category (change, session)")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	path, ok := journalPath(fs, stderr)
	if !ok {
		return 1
	}

	filter := commands.ViewFilter{Parameter: *param, Bank: *bank}
	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			return fail(stderr, err)
		}
		filter.Category = &c
	}

	if err := commands.RunView(path, filter, stdout); err != nil {
		return fail(stderr, err)
	}
	return 0
}

func runExport(args []string, stderr io.Writer) int {
	fs := newFlagSet("export", "Export the journal to JSONL or CSV",
		"paramlog export [flags] <file.plog>", stderr)
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	path, ok := journalPath(fs, stderr)
	if !ok {
		return 1
	}

	if err := commands.RunExport(path, *format, *output); err != nil {
		return fail(stderr, err)
	}
	return 0
}

func runFilter(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("filter", "Filter the journal and write to a new file",
		"paramlog filter [flags] <file.plog>", stderr)
	output := fs.String("o", "", "Output file (required)")
	session := fs.String("session", "", "Filter by session ID")
	bank := fs.String("bank", "", "Filter by bank name")
	param := fs.String("param", "", "Filter by parameter name")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")
	category := fs.String("category", "", "Filter by category (change, session)")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	path, ok := journalPath(fs, stderr)
	if !ok {
		return 1
	}
	if *output == "" {
		fmt.Fprintln(stderr, "Error: output file (-o) required")
		fs.Usage()
		return 1
	}

	opts := commands.FilterOptions{
		Output:    *output,
		SessionID: *session,
		Bank:      *bank,
		Parameter: *param,
		TimeStart: *timeStart,
		TimeEnd:   *timeEnd,
		Category:  *category,
	}
	if err := commands.RunFilter(path, opts, stdout); err != nil {
		return fail(stderr, err)
	}
	return 0
}

func runStats(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("stats", "Show per-session and per-parameter statistics",
		"paramlog stats <file.plog>", stderr)

	if err := fs.Parse(args); err != nil {
		return 1
	}
	path, ok := journalPath(fs, stderr)
	if !ok {
		return 1
	}

	if err := commands.RunStats(path, stdout); err != nil {
		return fail(stderr, err)
	}
	return 0
}

// Command paramctl loads a parameter definition file into a bank and lets
// you inspect and change the parameters from an interactive shell.
//
// Usage:
//
//	paramctl [flags] [command ...]
//
// Flags:
//
//	-defs string       Parameter definition file (YAML)
//	-journal string    Record changes to a journal file (.plog)
//	-log-level string  Log level: debug, info, warn, error (default "info")
//
// Every flag can also be set from the environment: PARAMCTL_DEFINITIONS,
// PARAMCTL_JOURNAL and PARAMCTL_LOG_LEVEL. Flags win over the environment.
//
// With trailing arguments, paramctl runs them as one shell command and
// exits instead of starting the interactive shell.
//
// Examples:
//
//	# Explore a synth voice
//	paramctl -defs voice.yaml
//
//	# Record a session
//	paramctl -defs voice.yaml -journal session.plog
//
//	# One-shot query
//	paramctl -defs voice.yaml list
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/lmittmann/tint"

	"github.com/mikedotalmond/parameters/cmd/paramctl/interactive"
	"github.com/mikedotalmond/parameters/pkg/bank"
	"github.com/mikedotalmond/parameters/pkg/config"
	plog "github.com/mikedotalmond/parameters/pkg/log"
	"github.com/mikedotalmond/parameters/pkg/parameter"
)

// Config holds paramctl configuration.
type Config struct {
	Definitions string `env:"PARAMCTL_DEFINITIONS"`
	Journal     string `env:"PARAMCTL_JOURNAL"`
	LogLevel    string `env:"PARAMCTL_LOG_LEVEL" envDefault:"info"`

	// Command holds trailing arguments to run as a single shell command.
	Command []string
}

var errMissingDefinitions = errors.New("a definition file is required (-defs or PARAMCTL_DEFINITIONS)")

// ParseConfig reads the environment, then flags, into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Definitions, "defs", cfg.Definitions, "Parameter definition file (YAML)")
	fs.StringVar(&cfg.Journal, "journal", cfg.Journal, "Record changes to a journal file (.plog)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.Definitions == "" {
		return Config{}, errMissingDefinitions
	}
	cfg.Command = fs.Args()
	return cfg, nil
}

func main() {
	fs := flag.NewFlagSet("paramctl", flag.ExitOnError)
	cfg, err := ParseConfig(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fs.Usage()
		os.Exit(2)
	}

	logger := newLogger(os.Stderr, cfg.LogLevel, readline.IsTerminal(int(os.Stderr.Fd())))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cancel, cfg, logger, os.Stdout); err != nil {
		logger.Error("paramctl failed", "error", err)
		os.Exit(1)
	}
}

// run builds the bank, attaches the journal and runs either the one-shot
// command or the interactive shell.
func run(ctx context.Context, cancel context.CancelFunc, cfg Config, logger *slog.Logger, out io.Writer) error {
	b, err := loadBank(cfg.Definitions, logger)
	if err != nil {
		return err
	}
	defer b.Close()
	logger.Info("bank loaded", "bank", b.Name(), "parameters", b.Len(), "file", cfg.Definitions)

	journal, closeJournal, err := openJournal(cfg.Journal, logger)
	if err != nil {
		return err
	}
	recorder := plog.NewRecorder(journal)
	recorder.Attach(b)
	defer func() {
		recorder.Close()
		if err := closeJournal(); err != nil {
			logger.Warn("closing journal", "error", err)
		}
	}()
	if cfg.Journal != "" {
		logger.Info("recording", "journal", cfg.Journal, "session", recorder.SessionID())
	}

	shell := interactive.NewShell(b, out)
	defer shell.Close()

	if len(cfg.Command) > 0 {
		shell.Execute(strings.Join(cfg.Command, " "))
		return nil
	}
	return shell.Run(ctx, cancel)
}

func loadBank(path string, logger *slog.Logger) (*bank.Bank, error) {
	f, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return f.Build(parameter.WithLogger(logger))
}

// openJournal returns the journal logger for path. Debug logging also
// mirrors journal events to the console.
func openJournal(path string, logger *slog.Logger) (plog.Logger, func() error, error) {
	var loggers []plog.Logger
	closeFn := func() error { return nil }

	if path != "" {
		file, err := plog.NewFileLogger(path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening journal: %w", err)
		}
		loggers = append(loggers, file)
		closeFn = func() error {
			return errors.Join(file.Err(), file.Close())
		}
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		loggers = append(loggers, plog.NewSlogAdapter(logger))
	}
	return plog.NewMultiLogger(loggers...), closeFn, nil
}

// newLogger writes coloured console logs to w. Colour is only used when w
// is a terminal.
func newLogger(w io.Writer, level string, color bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      parseLevel(level),
		TimeFormat: time.TimeOnly,
		NoColor:    !color,
	}))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package main

import (
	"bytes"
	"context"
	"flag"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	plog "github.com/mikedotalmond/parameters/pkg/log"
)

const voiceDefs = "testdata/voice.yaml"

func TestParseConfigFromEnv(t *testing.T) {
	t.Setenv("PARAMCTL_DEFINITIONS", "env.yaml")
	t.Setenv("PARAMCTL_LOG_LEVEL", "debug")

	cfg, err := ParseConfig(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	require.NoError(t, err)
	assert.Equal(t, "env.yaml", cfg.Definitions)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Empty(t, cfg.Command)
}

func TestParseConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("PARAMCTL_DEFINITIONS", "env.yaml")

	cfg, err := ParseConfig(flag.NewFlagSet("test", flag.ContinueOnError),
		[]string{"-defs", "flag.yaml", "-journal", "out.plog", "get", "cutoff"})
	require.NoError(t, err)
	assert.Equal(t, "flag.yaml", cfg.Definitions)
	assert.Equal(t, "out.plog", cfg.Journal)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"get", "cutoff"}, cfg.Command)
}

func TestParseConfigRequiresDefinitions(t *testing.T) {
	t.Setenv("PARAMCTL_DEFINITIONS", "")
	_, err := ParseConfig(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	assert.ErrorIs(t, err, errMissingDefinitions)
}

func TestRunOneShot(t *testing.T) {
	var out bytes.Buffer
	cfg := Config{Definitions: voiceDefs, Command: []string{"get", "octave"}}

	err := run(context.Background(), func() {}, cfg, discardLogger(), &out)
	require.NoError(t, err)
	assert.Equal(t, "octave = 0\n", out.String())
}

func TestRunRecordsJournal(t *testing.T) {
	journal := filepath.Join(t.TempDir(), "session.plog")
	cfg := Config{Definitions: voiceDefs, Journal: journal, Command: []string{"set", "octave", "1"}}

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), func() {}, cfg, discardLogger(), &out))
	assert.Equal(t, "octave = 1\n", out.String())

	r, err := plog.NewReader(journal)
	require.NoError(t, err)
	defer r.Close()
	events, err := r.ReadAll()
	require.NoError(t, err)

	require.Len(t, events, 3)
	assert.Equal(t, plog.SessionStart, events[0].Session.Action)
	assert.Equal(t, 5, events[0].Session.Parameters)
	require.NotNil(t, events[1].Change)
	assert.Equal(t, "octave", events[1].Change.Parameter)
	assert.Equal(t, "1", events[1].Change.Value)
	assert.Equal(t, plog.SessionStop, events[2].Session.Action)
}

func TestRunMissingDefinitions(t *testing.T) {
	cfg := Config{Definitions: filepath.Join(t.TempDir(), "missing.yaml"), Command: []string{"list"}}
	err := run(context.Background(), func() {}, cfg, discardLogger(), io.Discard)
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestDebugMirrorsJournal(t *testing.T) {
	var logs bytes.Buffer
	logger := newLogger(&logs, "debug", false)
	cfg := Config{Definitions: voiceDefs, Command: []string{"set", "mute", "true"}}

	require.NoError(t, run(context.Background(), func() {}, cfg, logger, io.Discard))
	assert.Contains(t, logs.String(), "param=mute")
	assert.NotContains(t, logs.String(), "\x1b[", "no colour codes off a terminal")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

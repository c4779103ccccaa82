// Package interactive provides the interactive command-line interface
// for paramctl.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/mikedotalmond/parameters/pkg/bank"
	"github.com/mikedotalmond/parameters/pkg/parameter"
	"github.com/mikedotalmond/parameters/pkg/persistence"
)

// Shell runs shell commands against a bank.
type Shell struct {
	bank    *bank.Bank
	out     io.Writer
	watches map[string]func()
}

// NewShell creates a shell that writes its output to out.
func NewShell(b *bank.Bank, out io.Writer) *Shell {
	return &Shell{
		bank:    b,
		out:     out,
		watches: make(map[string]func()),
	}
}

// Run starts the interactive command loop. It returns when the user quits,
// input ends, or ctx is cancelled.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.bank.Name() + "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    s.completer(),
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	s.out = rl.Stdout()
	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return nil
		}

		if !s.Execute(line) {
			cancel()
			return nil
		}
	}
}

// Execute runs one command line. It returns false when the shell should
// exit.
func (s *Shell) Execute(line string) bool {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()
	case "list", "ls", "l":
		s.cmdList()
	case "get", "g":
		s.cmdGet(args)
	case "set", "s":
		s.cmdSet(args)
	case "default", "d":
		s.cmdDefault(args)
	case "reset":
		s.cmdReset(args)
	case "watch", "w":
		s.cmdWatch(args)
	case "unwatch", "uw":
		s.cmdUnwatch(args)
	case "dirty":
		s.cmdDirty(args)
	case "save":
		s.cmdSave(args)
	case "load":
		s.cmdLoad(args)
	case "quit", "exit", "q":
		fmt.Fprintln(s.out, "Exiting...")
		s.Close()
		return false
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

// Close stops all watches.
func (s *Shell) Close() {
	for name, stop := range s.watches {
		stop()
		delete(s.watches, name)
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
Parameter Commands:
  Values:
    list                         - List parameters with value and range
    get <name> [-n]              - Show a value (-n: normalised)
    set <name> <value> [-n] [-f] - Set a value (-n: normalised, -f: force notify)
    default <name> [value]       - Show or set the default
    reset [name]                 - Return one or all parameters to default

  Observation:
    watch <name> [once]          - Print changes to a parameter
    unwatch <name>               - Stop watching a parameter
    dirty [clear]                - List parameters changed since last clear

  Presets:
    save <file>                  - Save all values to a preset file
    load <file>                  - Restore values from a preset file

  General:
    help                         - Show this help
    quit                         - Exit`)
}

func (s *Shell) completer() *readline.PrefixCompleter {
	names := func(string) []string { return s.bank.Names() }
	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("list"),
		readline.PcItem("get", readline.PcItemDynamic(names)),
		readline.PcItem("set", readline.PcItemDynamic(names)),
		readline.PcItem("default", readline.PcItemDynamic(names)),
		readline.PcItem("reset", readline.PcItemDynamic(names)),
		readline.PcItem("watch", readline.PcItemDynamic(names)),
		readline.PcItem("unwatch", readline.PcItemDynamic(names)),
		readline.PcItem("dirty", readline.PcItem("clear")),
		readline.PcItem("save"),
		readline.PcItem("load"),
		readline.PcItem("quit"),
	)
}

// splitFlags separates -x style flags from positional arguments.
func splitFlags(args []string) (positional []string, flags map[string]bool) {
	flags = make(map[string]bool)
	for _, a := range args {
		// Negative numbers are values, not flags.
		if strings.HasPrefix(a, "-") && len(a) > 1 && (a[1] < '0' || a[1] > '9') && a[1] != '.' {
			flags[a[1:]] = true
			continue
		}
		positional = append(positional, a)
	}
	return positional, flags
}

func (s *Shell) lookup(name string) (parameter.Control, bool) {
	c, err := s.bank.Get(name)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return nil, false
	}
	return c, true
}

func (s *Shell) cmdList() {
	controls := s.bank.Controls()
	if len(controls) == 0 {
		fmt.Fprintln(s.out, "No parameters")
		return
	}
	for _, c := range controls {
		fmt.Fprintf(s.out, "  %-16s %12s  %-6s (%.4f)  %s\n",
			c.Name(), c.String(), c.Unit(), c.NormalisedValue(), c.Range())
	}
}

func (s *Shell) cmdGet(args []string) {
	pos, flags := splitFlags(args)
	if len(pos) != 1 {
		fmt.Fprintln(s.out, "Usage: get <name> [-n]")
		return
	}
	c, ok := s.lookup(pos[0])
	if !ok {
		return
	}
	if flags["n"] {
		fmt.Fprintf(s.out, "%s = %s\n", c.Name(), formatNormalised(c.NormalisedValue()))
		return
	}
	fmt.Fprintf(s.out, "%s = %s\n", c.Name(), withUnit(c.String(), c.Unit()))
}

func (s *Shell) cmdSet(args []string) {
	pos, flags := splitFlags(args)
	if len(pos) != 2 {
		fmt.Fprintln(s.out, "Usage: set <name> <value> [-n] [-f]")
		fmt.Fprintln(s.out, "  Example: set cutoff 1000")
		return
	}
	c, ok := s.lookup(pos[0])
	if !ok {
		return
	}

	var changed bool
	if flags["n"] {
		n, err := strconv.ParseFloat(pos[1], 64)
		if err != nil {
			fmt.Fprintf(s.out, "Invalid normalised value: %s\n", pos[1])
			return
		}
		if flags["f"] {
			c.ForceNormalisedValue(n)
			changed = true
		} else {
			changed = c.SetNormalisedValue(n)
		}
	} else {
		var err error
		changed, err = c.SetString(pos[1])
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return
		}
		if flags["f"] && !changed {
			c.ForceNormalisedValue(c.NormalisedValue())
			changed = true
		}
	}

	if !changed {
		fmt.Fprintf(s.out, "%s unchanged\n", c.Name())
		return
	}
	fmt.Fprintf(s.out, "%s = %s\n", c.Name(), withUnit(c.String(), c.Unit()))
}

func (s *Shell) cmdDefault(args []string) {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(s.out, "Usage: default <name> [value]")
		return
	}
	c, ok := s.lookup(args[0])
	if !ok {
		return
	}
	if len(args) == 2 {
		if err := c.SetDefaultString(args[1]); err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return
		}
	}
	fmt.Fprintf(s.out, "%s default = %s\n", c.Name(), withUnit(c.DefaultString(), c.Unit()))
}

func (s *Shell) cmdReset(args []string) {
	if len(args) == 0 {
		n := s.bank.ResetAll()
		fmt.Fprintf(s.out, "Reset %d parameter(s)\n", n)
		return
	}
	c, ok := s.lookup(args[0])
	if !ok {
		return
	}
	if c.SetToDefault() {
		fmt.Fprintf(s.out, "%s = %s\n", c.Name(), withUnit(c.String(), c.Unit()))
	} else {
		fmt.Fprintf(s.out, "%s already at default\n", c.Name())
	}
}

func (s *Shell) cmdWatch(args []string) {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(s.out, "Usage: watch <name> [once]")
		return
	}
	var flags parameter.ObserveFlag
	if len(args) == 2 {
		if args[1] != "once" {
			fmt.Fprintln(s.out, "Usage: watch <name> [once]")
			return
		}
		flags |= parameter.ObserveOnce
	}

	c, ok := s.lookup(args[0])
	if !ok {
		return
	}
	if _, watching := s.watches[c.Name()]; watching {
		fmt.Fprintf(s.out, "Already watching %s\n", c.Name())
		return
	}

	name := c.Name()
	s.watches[name] = c.Watch(func(c parameter.Control) {
		fmt.Fprintf(s.out, "[watch] %s -> %s (%s)\n",
			c.Name(), withUnit(c.String(), c.Unit()), formatNormalised(c.NormalisedValue()))
		if flags.Once() {
			delete(s.watches, name)
		}
	}, flags)
	fmt.Fprintf(s.out, "Watching %s\n", name)
}

func (s *Shell) cmdUnwatch(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: unwatch <name>")
		return
	}
	stop, ok := s.watches[args[0]]
	if !ok {
		fmt.Fprintf(s.out, "Not watching %s\n", args[0])
		return
	}
	stop()
	delete(s.watches, args[0])
	fmt.Fprintf(s.out, "Stopped watching %s\n", args[0])
}

func (s *Shell) cmdDirty(args []string) {
	if len(args) == 1 && args[0] == "clear" {
		s.bank.ClearDirty()
		fmt.Fprintln(s.out, "Cleared")
		return
	}
	names := s.bank.DirtyNames()
	if len(names) == 0 {
		fmt.Fprintln(s.out, "No changes")
		return
	}
	fmt.Fprintf(s.out, "Changed: %s\n", strings.Join(names, ", "))
}

func (s *Shell) cmdSave(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: save <file>")
		return
	}
	store := persistence.NewPresetStore(args[0])
	if err := store.Save(persistence.Capture(s.bank)); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	s.bank.ClearDirty()
	fmt.Fprintf(s.out, "Saved %d parameter(s) to %s\n", s.bank.Len(), store.Path())
}

func (s *Shell) cmdLoad(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: load <file>")
		return
	}
	preset, err := persistence.NewPresetStore(args[0]).Load()
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	if preset == nil {
		fmt.Fprintf(s.out, "No preset at %s\n", args[0])
		return
	}
	if preset.Bank != s.bank.Name() {
		fmt.Fprintf(s.out, "Warning: preset is for bank %q\n", preset.Bank)
	}
	if err := preset.Apply(s.bank); err != nil {
		fmt.Fprintf(s.out, "Warning: %v\n", err)
	}
	fmt.Fprintf(s.out, "Loaded %s\n", args[0])
}

func formatNormalised(n float64) string {
	return strconv.FormatFloat(n, 'f', 4, 64)
}

func withUnit(value, unit string) string {
	if unit == "" {
		return value
	}
	return value + " " + unit
}

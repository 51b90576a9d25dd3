// Package cmd implements the CLI command structure for yawmak.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/yawmak/internal/config"
	"github.com/nibzard/yawmak/internal/store"
	"github.com/nibzard/yawmak/internal/utils"
)

// Version is set via ldflags at build time.
var Version = "dev"

// errUsage marks errors caused by bad command-line input.
var errUsage = errors.New("usage")

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

// app carries what every subcommand needs.
type app struct {
	cfg     *config.Config
	sources *config.ConfigWithSources
	log     *log.Logger
	out     io.Writer
}

// open opens the configured database.
func (a *app) open(ctx context.Context) (*store.Store, error) {
	a.log.Debug("opening database", "path", a.cfg.DBPath)
	return store.Open(ctx, a.cfg.DBPath, store.WithLogger(a.log))
}

// withStore opens the database, runs fn and closes it again.
func (a *app) withStore(ctx context.Context, fn func(*store.Store) error) error {
	s, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			a.log.Warn("closing database", "error", cerr)
		}
	}()
	return fn(s)
}

// Run executes the yawmak CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("yawmak", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a := &app{
		cfg:     cws.Config,
		sources: cws,
		log:     cws.Config.Logger(os.Stderr),
		out:     os.Stdout,
	}
	if *help {
		printUsage(fs, a.out)
		return nil
	}
	if *showVersion {
		return versionCommand(a)
	}

	remainingArgs := fs.Args()
	if len(remainingArgs) == 0 {
		printUsage(fs, a.out)
		return nil
	}
	subcommand, remainingArgs := remainingArgs[0], remainingArgs[1:]
	a.log.Debug("dispatch", "command", subcommand, "args", len(remainingArgs))

	var runErr error
	switch subcommand {
	case "add":
		runErr = addCommand(ctx, a, remainingArgs)
	case "list", "ls":
		runErr = listCommand(ctx, a, remainingArgs)
	case "done":
		runErr = doneCommand(ctx, a, remainingArgs)
	case "update":
		runErr = updateCommand(ctx, a, remainingArgs)
	case "search":
		runErr = searchCommand(ctx, a, remainingArgs)
	case "add-category":
		runErr = addCategoryCommand(ctx, a, remainingArgs)
	case "delete-category":
		runErr = deleteCategoryCommand(ctx, a, remainingArgs)
	case "list-categories":
		runErr = listCategoriesCommand(ctx, a, remainingArgs)
	case "add-tag":
		runErr = addTagCommand(ctx, a, remainingArgs)
	case "delete-tag":
		runErr = deleteTagCommand(ctx, a, remainingArgs)
	case "list-tags":
		runErr = listTagsCommand(ctx, a, remainingArgs)
	case "import":
		runErr = importCommand(ctx, a, remainingArgs)
	case "export":
		runErr = exportCommand(ctx, a, remainingArgs)
	case "browse", "tui":
		runErr = browseCommand(ctx, a, remainingArgs)
	case "completion":
		runErr = completionCommand(a.out, remainingArgs)
	case "config":
		runErr = configCommand(a, remainingArgs)
	case "version":
		runErr = versionCommand(a)
	case "help":
		printUsage(fs, a.out)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
	return withHint(runErr)
}

// versionCommand prints version information.
func versionCommand(a *app) error {
	fmt.Fprintf(a.out, "yawmak version %s\n", Version)
	return nil
}

// parseInterspersed parses fs while allowing flags to follow positional
// arguments, and returns the positionals in order.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positionals []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positionals, nil
		}
		positionals = append(positionals, rest[0])
		args = rest[1:]
	}
}

// parseID parses a task id argument.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, usageErrorf("invalid task id %q, expected a positive integer", s)
	}
	return id, nil
}

// tagsFlag collects --tags values. It may be repeated and each value may
// hold a comma-separated list.
type tagsFlag []string

func (t *tagsFlag) String() string {
	if t == nil {
		return ""
	}
	return strings.Join(*t, ",")
}

func (t *tagsFlag) Set(v string) error {
	*t = append(*t, utils.SplitAndTrim(v, ",")...)
	return nil
}

// spreadTags rewrites "--tags a b c" as "--tags a --tags b --tags c" so
// that every word up to the next flag (or "--") is taken as a tag, as in
// "add 'Write report' --tags work urgent".
func spreadTags(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		out = append(out, arg)
		if arg == "--" {
			return append(out, args[i+1:]...)
		}
		if arg != "--tags" && arg != "-tags" {
			continue
		}
		for taken := 0; i+1 < len(args); taken++ {
			next := args[i+1]
			if strings.HasPrefix(next, "-") && taken > 0 {
				break
			}
			if taken > 0 {
				out = append(out, arg)
			}
			out = append(out, next)
			i++
		}
	}
	return out
}

// joinChoices renders enum values as "a|b|c" for usage text.
func joinChoices[T ~string](values []T) string {
	return strings.ReplaceAll(joinWords(values), " ", "|")
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "yawmak - Manages your todos")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  yawmak [global options] <command> [arguments] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add TASK [DUE_DATE]             Add a task")
	fmt.Fprintln(w, "  list                            List pending tasks")
	fmt.Fprintln(w, "  done ID                         Mark a task as done")
	fmt.Fprintln(w, "  update ID                       Update fields of a task")
	fmt.Fprintln(w, "  search QUERY                    Find tasks by name, category or tag")
	fmt.Fprintln(w, "  add-category NAME               Add a category")
	fmt.Fprintln(w, "  delete-category NAME            Delete an unused category")
	fmt.Fprintln(w, "  list-categories                 List categories")
	fmt.Fprintln(w, "  add-tag NAME                    Add a tag")
	fmt.Fprintln(w, "  delete-tag NAME                 Delete an unused tag")
	fmt.Fprintln(w, "  list-tags                       List tags")
	fmt.Fprintf(w, "  import FORMAT FILE [STRATEGY]   Import tasks (%s; %s)\n", joinChoices(store.Formats), joinChoices(store.Strategies))
	fmt.Fprintf(w, "  export FORMAT FILE              Export tasks (%s)\n", joinChoices(store.Formats))
	fmt.Fprintln(w, "  browse                          Interactive task list")
	fmt.Fprintln(w, "  completion SHELL                Print a completion script (bash|zsh|fish|powershell)")
	fmt.Fprintln(w, "  config                          Show the effective configuration")
	fmt.Fprintln(w, "  version                         Show version information")
	fmt.Fprintln(w, "  help                            Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add Options:")
	fmt.Fprintln(w, "  -category string   Category (default from config)")
	fmt.Fprintln(w, "  -tags string...    Tags: a,b or a b (up to the next flag); may be repeated")
	fmt.Fprintln(w, "  -priority int      Priority (default from config)")
	fmt.Fprintln(w, "  -due-date string   Due date, YYYY-MM-DD")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List Options:")
	fmt.Fprintln(w, "  -done-only         Only completed tasks")
	fmt.Fprintln(w, "  -all               Pending and completed tasks")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Update Options:")
	fmt.Fprintln(w, "  -task string, -due-date string, -category string, -tags string, -priority int, -undone")
}

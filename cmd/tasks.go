package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/nibzard/yawmak/internal/display"
	"github.com/nibzard/yawmak/internal/store"
	"github.com/nibzard/yawmak/internal/todo"
)

// newFlagSet returns a subcommand flag set that reports errors to stderr.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

// inputError marks err as bad command-line input.
func inputError(err error) error {
	if err == nil || errors.Is(err, errUsage) {
		return err
	}
	return fmt.Errorf("%w: %w", errUsage, err)
}

// addCommand stores a new task.
func addCommand(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("add")
	category := fs.String("category", a.cfg.DefaultCategory, "Category")
	var tags tagsFlag
	fs.Var(&tags, "tags", "Tags: comma-separated, space-separated or repeated")
	priority := fs.Int("priority", a.cfg.DefaultPriority, "Priority")
	dueDate := fs.String("due-date", "", "Due date, YYYY-MM-DD")

	pos, err := parseInterspersed(fs, spreadTags(args))
	if err != nil {
		return inputError(err)
	}
	if len(pos) < 1 || len(pos) > 2 {
		return usageErrorf("add requires TASK and an optional DUE_DATE")
	}
	due := *dueDate
	if len(pos) == 2 {
		if due != "" && due != pos[1] {
			return usageErrorf("due date given twice: %q and %q", pos[1], due)
		}
		due = pos[1]
	}

	task, err := todo.NewTask(pos[0], *category, due, tags, *priority)
	if err != nil {
		return inputError(err)
	}
	return a.withStore(ctx, func(s *store.Store) error {
		id, err := s.AddTask(ctx, task)
		if err != nil {
			return err
		}
		display.Added(a.out, id, task.Name)
		return nil
	})
}

// listCommand prints pending tasks, completed tasks or both.
func listCommand(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("list")
	doneOnly := fs.Bool("done-only", false, "Only completed tasks")
	all := fs.Bool("all", false, "Pending and completed tasks")
	pos, err := parseInterspersed(fs, args)
	if err != nil {
		return inputError(err)
	}
	if len(pos) > 0 {
		return usageErrorf("list takes no arguments")
	}
	if *doneOnly && *all {
		return usageErrorf("--done-only and --all are mutually exclusive")
	}

	filter := store.Pending()
	switch {
	case *doneOnly:
		filter = store.Completed()
	case *all:
		filter = store.Filter{}
	}
	return a.withStore(ctx, func(s *store.Store) error {
		tasks, err := s.Tasks(ctx, filter)
		if err != nil {
			return err
		}
		return display.Tasks(a.out, tasks, *doneOnly || *all)
	})
}

// doneCommand marks a task as completed today.
func doneCommand(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("done")
	pos, err := parseInterspersed(fs, args)
	if err != nil {
		return inputError(err)
	}
	if len(pos) != 1 {
		return usageErrorf("done requires exactly one task ID")
	}
	id, err := parseID(pos[0])
	if err != nil {
		return err
	}
	return a.withStore(ctx, func(s *store.Store) error {
		if err := s.MarkDone(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Marked task %d as done\n", id)
		return nil
	})
}

// updateCommand changes only the fields whose flags were given.
func updateCommand(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("update")
	name := fs.String("task", "", "New task name")
	dueDate := fs.String("due-date", "", "New due date, YYYY-MM-DD")
	category := fs.String("category", "", "New category; empty detaches it")
	var tags tagsFlag
	fs.Var(&tags, "tags", "Replacement tags: comma-separated, space-separated or repeated")
	priority := fs.Int("priority", 0, "New priority")
	undone := fs.Bool("undone", false, "Mark the task as not done")

	pos, err := parseInterspersed(fs, spreadTags(args))
	if err != nil {
		return inputError(err)
	}
	if len(pos) != 1 {
		return usageErrorf("update requires exactly one task ID")
	}
	id, err := parseID(pos[0])
	if err != nil {
		return err
	}

	var u store.TaskUpdate
	var dateErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "task":
			u.Name = name
		case "due-date":
			u.DueDate, dateErr = todo.ParseDate(*dueDate)
			if dateErr == nil && u.DueDate == nil {
				dateErr = fmt.Errorf("%w: %q", todo.ErrInvalidDate, *dueDate)
			}
		case "category":
			u.Category = category
		case "tags":
			u.Tags = tags
		case "priority":
			u.Priority = priority
		case "undone":
			u.Undone = *undone
		}
	})
	if dateErr != nil {
		return inputError(dateErr)
	}
	if u.IsZero() {
		return usageErrorf("nothing to update: pass at least one of --task, --due-date, --category, --tags, --priority, --undone")
	}

	return a.withStore(ctx, func(s *store.Store) error {
		if err := s.UpdateTask(ctx, id, u); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Updated task %d\n", id)
		return nil
	})
}

// searchCommand lists every task, done or not, matching the query.
func searchCommand(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("search")
	pos, err := parseInterspersed(fs, args)
	if err != nil {
		return inputError(err)
	}
	if len(pos) == 0 {
		return usageErrorf("search requires a QUERY")
	}
	query := strings.Join(pos, " ")
	return a.withStore(ctx, func(s *store.Store) error {
		tasks, err := s.Tasks(ctx, store.Filter{})
		if err != nil {
			return err
		}
		matches := todo.Search(tasks, query)
		a.log.Debug("search", "query", query, "matches", len(matches), "of", len(tasks))
		return display.Tasks(a.out, matches, true)
	})
}

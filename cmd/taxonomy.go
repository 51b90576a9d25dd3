package cmd

import (
	"context"
	"fmt"

	"github.com/nibzard/yawmak/internal/display"
	"github.com/nibzard/yawmak/internal/store"
)

// nameArg parses a subcommand that takes exactly one NAME.
func nameArg(command string, args []string) (string, error) {
	pos, err := parseInterspersed(newFlagSet(command), args)
	if err != nil {
		return "", inputError(err)
	}
	if len(pos) != 1 {
		return "", usageErrorf("%s requires exactly one NAME", command)
	}
	return pos[0], nil
}

func noArgs(command string, args []string) error {
	pos, err := parseInterspersed(newFlagSet(command), args)
	if err != nil {
		return inputError(err)
	}
	if len(pos) > 0 {
		return usageErrorf("%s takes no arguments", command)
	}
	return nil
}

func addCategoryCommand(ctx context.Context, a *app, args []string) error {
	name, err := nameArg("add-category", args)
	if err != nil {
		return err
	}
	return a.withStore(ctx, func(s *store.Store) error {
		c, err := s.AddCategory(ctx, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Added category: %s\n", c.Name)
		return nil
	})
}

func deleteCategoryCommand(ctx context.Context, a *app, args []string) error {
	name, err := nameArg("delete-category", args)
	if err != nil {
		return err
	}
	return a.withStore(ctx, func(s *store.Store) error {
		if err := s.DeleteCategory(ctx, name); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Deleted category: %s\n", name)
		return nil
	})
}

func listCategoriesCommand(ctx context.Context, a *app, args []string) error {
	if err := noArgs("list-categories", args); err != nil {
		return err
	}
	return a.withStore(ctx, func(s *store.Store) error {
		cats, err := s.Categories(ctx)
		if err != nil {
			return err
		}
		names := make([]string, len(cats))
		for i, c := range cats {
			names[i] = c.Name
		}
		return display.Names(a.out, "Category", names)
	})
}

func addTagCommand(ctx context.Context, a *app, args []string) error {
	name, err := nameArg("add-tag", args)
	if err != nil {
		return err
	}
	return a.withStore(ctx, func(s *store.Store) error {
		t, err := s.AddTag(ctx, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Added tag: %s\n", t.Name)
		return nil
	})
}

func deleteTagCommand(ctx context.Context, a *app, args []string) error {
	name, err := nameArg("delete-tag", args)
	if err != nil {
		return err
	}
	return a.withStore(ctx, func(s *store.Store) error {
		if err := s.DeleteTag(ctx, name); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Deleted tag: %s\n", name)
		return nil
	})
}

func listTagsCommand(ctx context.Context, a *app, args []string) error {
	if err := noArgs("list-tags", args); err != nil {
		return err
	}
	return a.withStore(ctx, func(s *store.Store) error {
		tags, err := s.Tags(ctx)
		if err != nil {
			return err
		}
		names := make([]string, len(tags))
		for i, t := range tags {
			names[i] = t.Name
		}
		return display.Names(a.out, "Tag", names)
	})
}

package cmd

import (
	"context"

	"github.com/nibzard/yawmak/internal/config"
	"github.com/nibzard/yawmak/internal/display"
	"github.com/nibzard/yawmak/internal/store"
)

// importCommand loads tasks from a file: import FORMAT FILE [STRATEGY].
func importCommand(ctx context.Context, a *app, args []string) error {
	pos, err := parseInterspersed(newFlagSet("import"), args)
	if err != nil {
		return inputError(err)
	}
	if len(pos) < 2 || len(pos) > 3 {
		return usageErrorf("import requires FORMAT FILE [STRATEGY]")
	}
	format, err := store.ParseFormat(pos[0])
	if err != nil {
		return inputError(err)
	}
	var strategy store.Strategy
	if len(pos) == 3 {
		strategy, err = store.ParseStrategy(pos[2])
	} else {
		strategy, err = store.ParseStrategy("")
	}
	if err != nil {
		return inputError(err)
	}
	path := config.ExpandHome(pos[1])

	return a.withStore(ctx, func(s *store.Store) error {
		res, err := s.Import(ctx, format, path, strategy)
		if err != nil {
			return err
		}
		display.Imported(a.out, path, res.Inserted, res.Updated, res.Skipped)
		return nil
	})
}

// exportCommand writes every task to a file: export FORMAT FILE.
func exportCommand(ctx context.Context, a *app, args []string) error {
	pos, err := parseInterspersed(newFlagSet("export"), args)
	if err != nil {
		return inputError(err)
	}
	if len(pos) != 2 {
		return usageErrorf("export requires FORMAT FILE")
	}
	format, err := store.ParseFormat(pos[0])
	if err != nil {
		return inputError(err)
	}
	path := config.ExpandHome(pos[1])

	return a.withStore(ctx, func(s *store.Store) error {
		n, err := s.Export(ctx, format, path)
		if err != nil {
			return err
		}
		display.Exported(a.out, path, n)
		return nil
	})
}

package cmd

import (
	"context"

	"github.com/nibzard/yawmak/internal/store"
	"github.com/nibzard/yawmak/internal/ui"
)

// browseCommand opens the interactive task list.
func browseCommand(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("browse")
	all := fs.Bool("all", false, "Start with completed tasks shown")
	pos, err := parseInterspersed(fs, args)
	if err != nil {
		return inputError(err)
	}
	if len(pos) > 0 {
		return usageErrorf("browse takes no arguments")
	}
	return a.withStore(ctx, func(s *store.Store) error {
		return ui.Browse(ctx, s, ui.WithAll(*all))
	})
}

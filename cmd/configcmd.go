package cmd

import (
	"fmt"
	"strings"

	"github.com/nibzard/yawmak/internal/config"
	"github.com/nibzard/yawmak/internal/display"
)

// configCommand prints the effective configuration with the source of
// every value.
func configCommand(a *app, args []string) error {
	fs := newFlagSet("config")
	example := fs.Bool("example", false, "Print an example config file")
	pos, err := parseInterspersed(fs, args)
	if err != nil {
		return inputError(err)
	}
	if len(pos) > 0 {
		return usageErrorf("config takes no arguments")
	}
	if *example {
		_, err := fmt.Fprint(a.out, config.ExampleConfig())
		return err
	}

	if len(a.sources.Files) == 0 {
		fmt.Fprintln(a.out, "Config files: none")
	} else {
		fmt.Fprintf(a.out, "Config files: %s\n", strings.Join(a.sources.Files, ", "))
	}
	entries := a.sources.Entries()
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.Key, e.Value, string(e.Source)}
	}
	return display.Rows(a.out, []string{"Key", "Value", "Source"}, rows)
}

package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/datepick/internal/cli"
	"github.com/xolan/datepick/internal/journal"
)

// fail reports an error with optional details and hints and exits 1.
func fail(message string, err error, hints ...string) {
	_, _ = fmt.Fprintf(deps.Stderr, "Error: %s\n", message)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	}
	for _, hint := range hints {
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: %s\n", hint)
	}
	deps.Exit(1)
}

// outputFormat reads the global --output flag.
func outputFormat(cmd *cobra.Command) (cli.Format, bool) {
	value, _ := cmd.Root().PersistentFlags().GetString("output")
	format, err := cli.ParseFormat(value)
	if err != nil {
		fail("Invalid --output value", err)
		return "", false
	}
	return format, true
}

// render writes v in the requested format. Text output comes from text.
func render(format cli.Format, v any, text func() string) {
	if format == cli.FormatText {
		_, _ = fmt.Fprintln(deps.Stdout, text())
		return
	}
	if err := cli.Encode(deps.Stdout, format, v); err != nil {
		fail(fmt.Sprintf("Failed to write %s output", format), err)
	}
}

func warnCorruption(warnings []journal.ParseWarning) {
	if len(warnings) == 0 {
		return
	}
	_, _ = fmt.Fprintf(deps.Stderr, "Warning: Found %d corrupted %s in journal file:\n", len(warnings), cli.Pluralize("line", len(warnings)))
	for _, warning := range warnings {
		_, _ = fmt.Fprintln(deps.Stderr, cli.FormatCorruptionWarning(warning))
	}
	_, _ = fmt.Fprintln(deps.Stderr)
}

// confirm asks a yes/no question on stdin. Anything but y or Y is a no.
func confirm(question string) bool {
	_, _ = fmt.Fprintf(deps.Stdout, "%s [y/N]: ", question)

	scanner := bufio.NewScanner(deps.Stdin)
	if !scanner.Scan() {
		return false
	}

	response := strings.TrimSpace(scanner.Text())
	return response == "y" || response == "Y"
}

func handleListBackupsError(err error) {
	_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to list backups: %v\n", err)
	deps.Exit(1)
}

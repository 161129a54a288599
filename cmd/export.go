package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/xolan/datepick/internal/calendar"
	"github.com/xolan/datepick/internal/calsource"
	"github.com/xolan/datepick/internal/cli"
	"github.com/xolan/datepick/internal/preset"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [value...]",
	Short: "Export selections as an iCalendar file",
	Long: `Export dates and ranges as all-day iCalendar (.ics) events.

Values are resolved like 'datepick resolve'. Without values, the recent
journal selections are exported. An exported file can be listed under
[constraints] calendars to block those days in later selections.

Examples:
  datepick export 2026-02-14 2026-02-20/2026-02-22
  datepick export --last 7
  datepick export --from 2026-03-01 --to 2026-03-05 --file vacation.ics
  datepick export --limit 10 > recent.ics`,
	Run: func(cmd *cobra.Command, args []string) {
		exportICS(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("from", "", "Range start (YYYY-MM-DD)")
	exportCmd.Flags().String("to", "", "Range end (YYYY-MM-DD, defaults to today)")
	exportCmd.Flags().Int("last", 0, "The last N days up to and including today")
	exportCmd.Flags().Int("limit", 0, "Export only the last N journal selections (0 exports all)")
	exportCmd.Flags().StringP("file", "f", "", "Write to a file instead of stdout")
}

func exportICS(cmd *cobra.Command, args []string) {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	last, _ := cmd.Flags().GetInt("last")
	limit, _ := cmd.Flags().GetInt("limit")
	file, _ := cmd.Flags().GetString("file")
	useFlags := from != "" || to != "" || last != 0

	if useFlags && len(args) > 0 {
		fail("Cannot combine values with --from, --to or --last", nil)
		return
	}

	services, ok := openServices(cmd)
	if !ok {
		return
	}
	defer func() { _ = services.Close() }()

	var values []calendar.Value
	switch {
	case useFlags:
		r, err := preset.RangeFromFlags(from, to, last, services.Dates.Today())
		if err != nil {
			fail("Invalid range flags", err)
			return
		}
		values = append(values, calendar.RangeValue(r))
	default:
		for _, arg := range args {
			res, err := services.Dates.Resolve(arg)
			if err != nil {
				fail(fmt.Sprintf("Could not understand '%s'", arg), err)
				return
			}
			values = append(values, res.Value)
		}
	}

	var w io.Writer = deps.Stdout
	if file != "" {
		f, err := os.Create(file)
		if err != nil {
			fail("Failed to create export file", err, fmt.Sprintf("Check that the directory exists and is writable: %s", file))
			return
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	count := len(values)
	var err error
	if len(values) > 0 {
		err = services.Dates.Export(w, values)
	} else {
		count, err = services.Journal.Export(w, limit)
	}
	if errors.Is(err, calsource.ErrNothingToExport) {
		fail("Nothing to export", nil, "Pass values to export or make a selection first")
		return
	}
	if err != nil {
		fail("Failed to export", err)
		return
	}

	if file != "" {
		_, _ = fmt.Fprintf(deps.Stdout, "Exported %d %s to %s\n", count, cli.Pluralize("selection", count), file)
	}
}

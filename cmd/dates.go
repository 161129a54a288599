package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/datepick/internal/calendar"
	"github.com/xolan/datepick/internal/cli"
	"github.com/xolan/datepick/internal/preset"
	"github.com/xolan/datepick/internal/service"
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve <text>",
	Short: "Resolve text to a date or range",
	Long: `Resolve free text to a date or a date range relative to today.

Relative phrases are tried first, then the locale's date formats.

Examples:
  datepick resolve tomorrow
  datepick resolve in 3 days
  datepick resolve next friday
  datepick resolve 03/15/2026
  datepick resolve 2026-02-01/2026-02-07 --output json`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		resolveInput(cmd, args)
	},
}

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <text>",
	Short: "Parse a date or range in the locale's formats",
	Long: `Parse text with the locale's date formats only. Relative phrases such as
'tomorrow' are rejected; use 'datepick resolve' for those.

Examples:
  datepick parse 03/15/2026
  datepick parse 15.03.2026 --locale de-DE
  datepick parse "Mar 1, 2026 – Mar 7, 2026"`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parseInput(cmd, args)
	},
}

// formatCmd represents the format command
var formatCmd = &cobra.Command{
	Use:   "format <iso-date-or-range>",
	Short: "Display an ISO date or range in the locale",
	Long: `Display an ISO date (YYYY-MM-DD) or range (YYYY-MM-DD/YYYY-MM-DD) using the
configured locale and style.

Examples:
  datepick format 2026-02-11                          Feb 11, 2026
  datepick format 2026-02-11 --style long             Wednesday, February 11, 2026
  datepick format 2026-02-11 --locale de-DE --style short
  datepick format 2026-02-01/2026-02-07`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		formatValue(cmd, args[0])
	},
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [text]",
	Short: "Check a date or range against the constraints",
	Long: `Check a date or range against the configured constraints: the minimum and
maximum dates, disabled dates, disabled weekdays, calendar files and the
range length limits. Exits with status 1 when the value is not allowed.

The value is resolved like 'datepick resolve', or built from flags.

Examples:
  datepick validate 2026-02-14
  datepick validate next saturday
  datepick validate 2026-02-01/2026-02-20
  datepick validate --last 7
  datepick validate --from 2026-02-01 --to 2026-02-10`,
	Run: func(cmd *cobra.Command, args []string) {
		validateInput(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().String("from", "", "Range start (YYYY-MM-DD)")
	validateCmd.Flags().String("to", "", "Range end (YYYY-MM-DD, defaults to today)")
	validateCmd.Flags().Int("last", 0, "The last N days up to and including today")
}

// parseInput parses text with the locale parser only.
func parseInput(cmd *cobra.Command, args []string) {
	format, ok := outputFormat(cmd)
	if !ok {
		return
	}
	services, ok := openServices(cmd)
	if !ok {
		return
	}
	defer func() { _ = services.Close() }()

	input := strings.Join(args, " ")
	v, err := services.Dates.Parse(input)
	if err != nil {
		fail(fmt.Sprintf("Could not parse '%s' as a %s date", input, services.Dates.Locale().Tag()), err,
			"Use 'datepick resolve' for relative phrases like 'tomorrow'")
		return
	}
	res := service.Resolution{
		Input:   input,
		Ref:     services.Dates.Today(),
		Value:   v,
		ISO:     v.ISO(),
		Display: services.Dates.Format(v),
		Source:  service.SourceParsed,
	}
	render(format, res, func() string { return res.ISO })
}

// formatValue displays an ISO value in the configured locale and style.
func formatValue(cmd *cobra.Command, iso string) {
	format, ok := outputFormat(cmd)
	if !ok {
		return
	}
	v, err := calendar.ParseValue(iso)
	if err != nil {
		fail(fmt.Sprintf("Invalid ISO date or range '%s'", iso), err,
			"Use YYYY-MM-DD or YYYY-MM-DD/YYYY-MM-DD")
		return
	}
	services, ok := openServices(cmd)
	if !ok {
		return
	}
	defer func() { _ = services.Close() }()

	out := struct {
		ISO     string `json:"iso" yaml:"iso"`
		Display string `json:"display" yaml:"display"`
		Locale  string `json:"locale" yaml:"locale"`
		Style   string `json:"style" yaml:"style"`
	}{v.ISO(), services.Dates.Format(v), services.Dates.Locale().Tag(), services.Dates.Style().String()}

	render(format, out, func() string { return out.Display })
}

// validateInput resolves the value from args or flags and reports whether
// the constraints allow it.
func validateInput(cmd *cobra.Command, args []string) {
	format, ok := outputFormat(cmd)
	if !ok {
		return
	}
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	last, _ := cmd.Flags().GetInt("last")
	useFlags := from != "" || to != "" || last != 0

	if useFlags && len(args) > 0 {
		fail("Cannot combine a value argument with --from, --to or --last", nil)
		return
	}
	if !useFlags && len(args) == 0 {
		fail("Nothing to validate", nil,
			"Pass a value (datepick validate 2026-02-14) or use --from/--to/--last")
		return
	}

	services, ok := openServices(cmd)
	if !ok {
		return
	}
	defer func() { _ = services.Close() }()

	var v calendar.Value
	if useFlags {
		r, err := preset.RangeFromFlags(from, to, last, services.Dates.Today())
		if err != nil {
			fail("Invalid range flags", err)
			return
		}
		v = calendar.RangeValue(r)
	} else {
		input := strings.Join(args, " ")
		res, err := services.Dates.Resolve(input)
		if err != nil {
			fail(fmt.Sprintf("Could not understand '%s'", input), err)
			return
		}
		v = res.Value
	}

	verdict, err := services.Dates.Validate(context.Background(), v)
	if err != nil {
		fail("Failed to check constraints", err)
		return
	}
	render(format, verdict, func() string { return cli.FormatVerdict(verdict) })
	if !verdict.Valid {
		deps.Exit(1)
	}
}

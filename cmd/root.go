package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/datepick/internal/calendar"
	"github.com/xolan/datepick/internal/cli"
	"github.com/xolan/datepick/internal/preset"
	"github.com/xolan/datepick/internal/service"
)

var rootCmd = &cobra.Command{
	Use:   "datepick",
	Short: "A date and date range picker for the terminal",
	Long: `datepick resolves, validates and selects dates and date ranges.

Usage:
  datepick                                   Show today's date
  datepick <text>                            Resolve text such as 'tomorrow' or '03/15/2026'
  datepick validate <text>                   Check a date or range against the constraints
  datepick select selectDate=2026-02-05 selectDate=2026-02-10
                                             Drive a picker with intents
  datepick presets                           List the quick presets for today
  datepick replay scenario.yaml              Replay a recorded scenario
  datepick tui                               Open the interactive calendar

Dates are written as YYYY-MM-DD and ranges as YYYY-MM-DD/YYYY-MM-DD.
Use --locale and --style to change how dates are parsed and displayed.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if CheckTUIFlag(cmd) {
			return
		}
		if len(args) == 0 {
			showToday(cmd)
			return
		}
		resolveInput(cmd, args)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("locale", "", "Locale for parsing and display (e.g., en-US, de-DE)")
	flags.String("style", "", "Display style: iso, short, medium, long")
	flags.String("today", "", "Pin today's date (YYYY-MM-DD)")
	flags.StringP("output", "o", "text", "Output format: text, json, yaml")
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"datepick version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// openServices builds the services and applies the global flags. It reports
// failures itself; callers return when ok is false and Close the services
// otherwise.
func openServices(cmd *cobra.Command) (*service.Services, bool) {
	flags := cmd.Root().PersistentFlags()
	opts := []service.Option{service.WithLogOutput(deps.Stderr, deps.Stderr)}

	if today, _ := flags.GetString("today"); today != "" {
		d, err := calendar.ParseISO(today)
		if err != nil {
			fail(fmt.Sprintf("Invalid --today date '%s'", today), err, "Use the YYYY-MM-DD format")
			return nil, false
		}
		opts = append(opts, service.WithClock(preset.ClockAt(d)))
	}

	services, err := deps.Services(opts...)
	if err != nil {
		fail("Failed to initialize", err, "Check your configuration with 'datepick config'")
		return nil, false
	}

	if today, _ := flags.GetString("today"); today != "" {
		// ClockAt is noon UTC; keep that day whatever the configured zone.
		services.Dates.Resolver().Location = nil
	}

	if tag, _ := flags.GetString("locale"); tag != "" {
		if err := services.Dates.SetLocale(tag); err != nil {
			_ = services.Close()
			fail(fmt.Sprintf("Unsupported locale '%s'", tag), err)
			return nil, false
		}
	}
	if style, _ := flags.GetString("style"); style != "" {
		if err := services.Dates.SetStyle(style); err != nil {
			_ = services.Close()
			fail(fmt.Sprintf("Invalid style '%s'", style), err, "Valid styles: iso, short, medium, long")
			return nil, false
		}
	}
	return services, true
}

// showToday prints today's date in the configured locale and style.
func showToday(cmd *cobra.Command) {
	format, ok := outputFormat(cmd)
	if !ok {
		return
	}
	services, ok := openServices(cmd)
	if !ok {
		return
	}
	defer func() { _ = services.Close() }()

	today := calendar.SingleValue(services.Dates.Today())
	payload := struct {
		ISO     string `json:"iso" yaml:"iso"`
		Display string `json:"display" yaml:"display"`
	}{today.ISO(), services.Dates.Format(today)}

	render(format, payload, func() string {
		return fmt.Sprintf("Today: %s (%s)", payload.Display, payload.ISO)
	})
}

// resolveInput resolves free text relative to today.
func resolveInput(cmd *cobra.Command, args []string) {
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
	res, err := services.Dates.Resolve(input)
	if err != nil {
		fail(fmt.Sprintf("Could not understand '%s'", input), err,
			"Try an ISO date (2026-02-10), a range (2026-02-01/2026-02-07) or a phrase like 'in 3 days'")
		return
	}
	render(format, res, func() string { return cli.FormatResolution(res) })
}

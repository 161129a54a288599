package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/datepick/internal/cli"
	"github.com/xolan/datepick/internal/preset"
	"github.com/xolan/datepick/internal/service"
)

// presetsCmd represents the presets command
var presetsCmd = &cobra.Command{
	Use:   "presets [query]",
	Short: "List the quick presets resolved for today",
	Long: `List the built-in and custom presets with the value each one selects today.
Presets the constraints reject are marked with their reason.

An optional query keeps only presets whose label contains it.

Examples:
  datepick presets
  datepick presets last
  datepick presets --today 2026-03-31 --output yaml`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		listPresets(cmd, strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func listPresets(cmd *cobra.Command, query string) {
	format, ok := outputFormat(cmd)
	if !ok {
		return
	}
	services, ok := openServices(cmd)
	if !ok {
		return
	}
	defer func() { _ = services.Close() }()

	views, err := services.Dates.PresetViews(context.Background())
	if err != nil {
		fail("Failed to resolve presets", err)
		return
	}

	if query != "" {
		keep := make(map[string]bool)
		for _, p := range preset.Filter(services.Dates.Presets(), query) {
			keep[p.Label] = true
		}
		filtered := make([]service.PresetView, 0, len(keep))
		for _, v := range views {
			if keep[v.Label] {
				filtered = append(filtered, v)
			}
		}
		views = filtered
	}

	render(format, views, func() string {
		return strings.TrimSuffix(cli.FormatPresets(views), "\n")
	})
}

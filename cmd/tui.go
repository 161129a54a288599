package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/datepick/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive calendar",
	Long: `Launch the interactive calendar picker.

The TUI shows a month grid with the disabled days dimmed, a quick preset
list and a text input that resolves phrases such as 'next friday'.

Views available:
  - Calendar: Pick dates and ranges on the month grid
  - Presets: Filter and apply quick presets
  - Journal: Browse recent selections
  - Config: View the effective settings and switch themes

Keyboard shortcuts:
  - Tab/Shift+Tab: Navigate between views
  - 1-4: Jump to specific view
  - Arrows or h/j/k/l: Move the cursor
  - Enter/Space: Select the day under the cursor
  - v: Start a drag selection, Esc cancels it
  - c: Switch between primary and comparison
  - /: Type a date
  - ?: Show help
  - q: Quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI(cmd)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	// Add --tui flag to root command for quick access
	rootCmd.PersistentFlags().Bool("tui", false, "Launch interactive terminal UI")
}

// runTUI initializes and runs the TUI application
func runTUI(cmd *cobra.Command) {
	services, ok := openServices(cmd)
	if !ok {
		return
	}
	defer func() { _ = services.Close() }()

	if err := tui.Run(services); err != nil {
		fail("Failed to run the TUI", err)
	}
}

// CheckTUIFlag checks if the --tui flag is set and runs the TUI if so.
// Returns true if the TUI was launched, false otherwise.
func CheckTUIFlag(cmd *cobra.Command) bool {
	tuiFlag, _ := cmd.Root().PersistentFlags().GetBool("tui")
	if tuiFlag {
		runTUI(cmd)
		return true
	}
	return false
}

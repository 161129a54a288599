package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/datepick/internal/cli"
	"github.com/xolan/datepick/internal/journal"
)

// journalCmd represents the journal command
var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show the journal of committed selections",
	Long: `Show the most recent committed selections, oldest first.

Every change made by 'datepick select', the TUI and recorded replays is
appended to the journal file when [journal] enabled = true.

Examples:
  datepick journal                 Show the last 20 changes
  datepick journal --limit 0       Show every change
  datepick journal validate        Check the journal file health
  datepick journal prune --keep 100
  datepick journal restore 1       Restore the most recent backup`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		listJournal(cmd)
	},
}

var journalValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check journal file health",
	Long:  `Validate the journal file and report on its health status, including any corrupted lines.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		validateJournal(cmd)
	},
}

var journalPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Drop old journal records",
	Long: `Keep only the newest records. Without --keep the configured [journal] keep
value is used. The journal is backed up before pruning.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		pruneJournal(cmd)
	},
}

var journalBackupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List journal backups",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		listJournalBackups(cmd)
	},
}

var journalRestoreCmd = &cobra.Command{
	Use:   "restore [n]",
	Short: "Restore the journal from a backup",
	Long: fmt.Sprintf(`Restore the journal from backup n (1 is the most recent, up to %d).
The current journal is backed up first.`, journal.MaxBackupCount),
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		restoreJournal(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalValidateCmd)
	journalCmd.AddCommand(journalPruneCmd)
	journalCmd.AddCommand(journalBackupsCmd)
	journalCmd.AddCommand(journalRestoreCmd)

	journalCmd.Flags().Int("limit", 20, "Number of records to show (0 shows all)")
	journalPruneCmd.Flags().Int("keep", 0, "Number of records to keep (defaults to [journal] keep)")
	journalPruneCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	journalRestoreCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
}

func listJournal(cmd *cobra.Command) {
	format, ok := outputFormat(cmd)
	if !ok {
		return
	}
	limit, _ := cmd.Flags().GetInt("limit")
	if limit < 0 {
		fail(fmt.Sprintf("Invalid --limit %d", limit), nil, "Use 0 to show every record")
		return
	}

	services, ok := openServices(cmd)
	if !ok {
		return
	}
	defer func() { _ = services.Close() }()

	list, err := services.Journal.List(limit)
	if err != nil {
		fail("Failed to read the journal", err,
			fmt.Sprintf("Check that file exists and is readable: %s", services.Journal.GetPath()))
		return
	}
	warnCorruption(list.Warnings)

	render(format, list.Records, func() string {
		if len(list.Records) == 0 {
			return "No selections recorded yet"
		}
		lines := make([]string, 0, len(list.Records)+1)
		for _, r := range list.Records {
			lines = append(lines, cli.FormatRecord(r))
		}
		if len(list.Records) < list.Total {
			lines = append(lines, fmt.Sprintf("(showing %d of %d %s)", len(list.Records), list.Total, cli.Pluralize("record", list.Total)))
		}
		return strings.Join(lines, "\n")
	})
}

// validateJournal checks the journal file health and reports status
func validateJournal(cmd *cobra.Command) {
	services, ok := openServices(cmd)
	if !ok {
		return
	}
	defer func() { _ = services.Close() }()

	path := services.Journal.GetPath()
	health, err := services.Journal.Validate()
	if err != nil {
		fail("Failed to validate journal", err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Journal file: %s\n", path)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Total lines:     %d\n", health.TotalLines)
	_, _ = fmt.Fprintf(deps.Stdout, "Valid records:   %d\n", health.ValidRecords)
	_, _ = fmt.Fprintf(deps.Stdout, "Corrupt records: %d\n", health.CorruptRecords)

	if len(health.Warnings) > 0 {
		_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
		_, _ = fmt.Fprintln(deps.Stdout, "Corrupted lines:")
		for _, warning := range health.Warnings {
			_, _ = fmt.Fprintln(deps.Stdout, cli.FormatCorruptionWarning(warning))
		}
	}

	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	if health.CorruptRecords == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: ✓ Journal file is healthy")
	} else {
		_, _ = fmt.Fprintf(deps.Stderr, "Status: ⚠ Journal file has %d corrupted %s\n", health.CorruptRecords, cli.Pluralize("line", health.CorruptRecords))
	}
}

func pruneJournal(cmd *cobra.Command) {
	keep, _ := cmd.Flags().GetInt("keep")
	yes, _ := cmd.Flags().GetBool("yes")
	if keep < 0 {
		fail(fmt.Sprintf("Invalid --keep %d", keep), nil)
		return
	}

	services, ok := openServices(cmd)
	if !ok {
		return
	}
	defer func() { _ = services.Close() }()

	if keep == 0 {
		keep = services.Config.Get().Journal.Keep
	}
	if keep == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "Nothing to prune: [journal] keep is 0, so every record is kept")
		return
	}

	if !yes && !confirm(fmt.Sprintf("Keep only the newest %d %s?", keep, cli.Pluralize("record", keep))) {
		_, _ = fmt.Fprintln(deps.Stdout, "Prune cancelled")
		return
	}

	removed, err := services.Journal.Prune(keep)
	if err != nil {
		fail("Failed to prune the journal", err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Removed %d %s\n", removed, cli.Pluralize("record", removed))
}

func listJournalBackups(cmd *cobra.Command) {
	services, ok := openServices(cmd)
	if !ok {
		return
	}
	defer func() { _ = services.Close() }()

	backups, err := services.Journal.Backups()
	if err != nil {
		handleListBackupsError(err)
		return
	}
	if len(backups) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No backups available")
		return
	}
	for _, b := range backups {
		_, _ = fmt.Fprintf(deps.Stdout, "[%d] %s\n", b.Number, b.Path)
	}
}

func restoreJournal(cmd *cobra.Command, args []string) {
	yes, _ := cmd.Flags().GetBool("yes")
	n := 1
	if len(args) == 1 {
		var err error
		n, err = strconv.Atoi(args[0])
		if err != nil {
			fail(fmt.Sprintf("Invalid backup number '%s'", args[0]), nil,
				fmt.Sprintf("Use a number between 1 and %d", journal.MaxBackupCount))
			return
		}
	}

	services, ok := openServices(cmd)
	if !ok {
		return
	}
	defer func() { _ = services.Close() }()

	backups, err := services.Journal.Backups()
	if err != nil {
		handleListBackupsError(err)
		return
	}
	if len(backups) == 0 {
		fail("No backups available", nil, "Backups are created before 'datepick journal prune'")
		return
	}

	if !yes && !confirm(fmt.Sprintf("Replace the journal with backup %d?", n)) {
		_, _ = fmt.Fprintln(deps.Stdout, "Restore cancelled")
		return
	}

	if err := services.Journal.Restore(n); err != nil {
		fail("Failed to restore the journal", err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Restored journal from backup %d\n", n)
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/datepick/internal/journal"
	"github.com/xolan/datepick/internal/scenario"
)

// replayCmd represents the replay command
var replayCmd = &cobra.Command{
	Use:   "replay <scenario.yaml>",
	Short: "Replay a scenario file and check its expectations",
	Long: `Replay a YAML scenario of intents on a fresh picker and print a report.
Exits with status 1 when any step's expectations fail.

A scenario pins today and may override the mode, comparison, locale and
constraints:

  name: weekday range
  today: 2026-02-10
  mode: range
  constraints:
    max_days: 7
  steps:
    - intent: selectDate
      date: 2026-02-05
      expect:
        phase: start-selected
    - intent: selectDate
      date: 2026-02-10
      expect:
        iso: 2026-02-05/2026-02-10

Examples:
  datepick replay scenario.yaml
  datepick replay scenario.yaml --record`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		replayScenario(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().Bool("record", false, "Write the replayed changes to the journal")
}

func replayScenario(cmd *cobra.Command, path string) {
	record, _ := cmd.Flags().GetBool("record")

	sc, err := scenario.Load(path)
	if err != nil {
		fail("Failed to load scenario", err, "Check that the file is a valid scenario YAML document")
		return
	}

	services, ok := openServices(cmd)
	if !ok {
		return
	}
	defer func() { _ = services.Close() }()

	var rec *journal.Recorder
	if record {
		rec = services.Journal.Recorder("replay:" + sc.Name)
	}
	report, err := services.Dates.Replay(context.Background(), sc, rec)
	if err != nil {
		fail(fmt.Sprintf("Failed to replay '%s'", path), err)
		return
	}

	if err := report.Encode(deps.Stdout); err != nil {
		fail("Failed to write the report", err)
		return
	}
	if err := rec.Err(); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Warning: Some changes were not written to the journal: %v\n", err)
	}

	if failed := report.Failed(); failed > 0 {
		_, _ = fmt.Fprintf(deps.Stderr, "%d of %d steps failed\n", failed, len(report.Steps))
		deps.Exit(1)
	}
}

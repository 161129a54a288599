package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/datepick/internal/calendar"
	"github.com/xolan/datepick/internal/cli"
	"github.com/xolan/datepick/internal/selection"
)

// selectCmd represents the select command
var selectCmd = &cobra.Command{
	Use:   "select <intent>...",
	Short: "Drive a picker with a sequence of intents",
	Long: `Run a sequence of intents on a picker built from the configuration and print
the final selection. Every committed change is written to the journal.

Intents are written as name=argument:
  selectDate=YYYY-MM-DD     Click a day
  dragStart=YYYY-MM-DD      Press on a day
  dragMove=YYYY-MM-DD       Move over a day while pressed
  dragEnd=YYYY-MM-DD        Release on a day
  dragCancel                Abort the drag
  typeText=TEXT             Type into the input field
  blur                      Leave the input field
  applyPreset=LABEL         Apply a quick preset
  setTarget=primary|compare Switch between primary and comparison
  clear                     Clear the active selection

Examples:
  datepick select selectDate=2026-02-05 selectDate=2026-02-10
  datepick select "applyPreset=Last 7 Days" setTarget=compare "applyPreset=Last Week"
  datepick select "typeText=in 3 days" --output json`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runSelect(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(selectCmd)

	selectCmd.Flags().BoolP("verbose", "v", false, "Print the state after every intent")
	selectCmd.Flags().Bool("strict", false, "Exit with status 1 when any intent is rejected")
}

// parseIntent reads one name=argument token.
func parseIntent(token string) (selection.Intent, error) {
	name, arg, hasArg := strings.Cut(token, "=")
	kind, err := selection.ParseIntentKind(strings.TrimSpace(name))
	if err != nil {
		return selection.Intent{}, err
	}

	intent := selection.Intent{Kind: kind}
	switch kind {
	case selection.IntentSelectDate, selection.IntentDragStart, selection.IntentDragMove, selection.IntentDragEnd:
		if !hasArg {
			return intent, fmt.Errorf("%s needs a date, e.g. %s=2026-02-10", kind, kind)
		}
		intent.Date, err = calendar.ParseISO(arg)
		if err != nil {
			return intent, err
		}
	case selection.IntentTypeText:
		intent.Text = arg
	case selection.IntentApplyPreset:
		if arg == "" {
			return intent, fmt.Errorf("%s needs a preset label", kind)
		}
		intent.Preset = arg
	case selection.IntentSetTarget:
		intent.Target, err = selection.ParseTarget(arg)
		if err != nil {
			return intent, err
		}
	default:
		if hasArg {
			return intent, fmt.Errorf("%s takes no argument", kind)
		}
	}
	return intent, nil
}

// journalSource labels journal records by what produced them.
func journalSource(i selection.Intent) string {
	if i.Kind == selection.IntentApplyPreset {
		return "preset:" + i.Preset
	}
	return "cli:" + i.Kind.String()
}

func runSelect(cmd *cobra.Command, args []string) {
	format, ok := outputFormat(cmd)
	if !ok {
		return
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	strict, _ := cmd.Flags().GetBool("strict")

	intents := make([]selection.Intent, 0, len(args))
	for i, arg := range args {
		intent, err := parseIntent(arg)
		if err != nil {
			fail(fmt.Sprintf("Invalid intent %d '%s'", i+1, arg), err, "Run 'datepick select --help' for the intent names")
			return
		}
		intents = append(intents, intent)
	}

	services, ok := openServices(cmd)
	if !ok {
		return
	}
	defer func() { _ = services.Close() }()

	rec := services.Journal.Recorder("cli:select")
	picker, err := services.Dates.NewPicker(context.Background(), rec)
	if err != nil {
		fail("Failed to prepare the picker", err)
		return
	}

	rejected := 0
	for i, intent := range intents {
		if rec != nil {
			rec.SetSource(journalSource(intent))
		}
		out := picker.Dispatch(intent)
		if verbose {
			_, _ = fmt.Fprintf(deps.Stdout, "%d. %s -> %s\n", i+1, intent, out.State)
		}
		switch {
		case out.Err != nil:
			rejected++
			_, _ = fmt.Fprintf(deps.Stderr, "Warning: %s rejected: %v\n", intent, out.Err)
		case out.Unparsed:
			_, _ = fmt.Fprintf(deps.Stderr, "Warning: %s not understood yet\n", intent)
		}
	}
	if err := rec.Err(); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Warning: Some changes were not written to the journal")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	}

	payload := picker.Payload()
	render(format, payload, func() string {
		return cli.FormatPayload(payload, services.Dates.Format)
	})

	if strict && rejected > 0 {
		deps.Exit(1)
	}
}

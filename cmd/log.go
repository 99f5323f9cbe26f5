package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/triflow/internal/audit"
	kerrors "github.com/PolarWolf314/triflow/internal/errors"
	"github.com/PolarWolf314/triflow/internal/ui"
	"github.com/PolarWolf314/triflow/internal/workflows"
)

var (
	logLimit      int
	logNewest     bool
	logCollection string
	logOperations []string
	logRecordID   int
	logSince      string
	logUntil      string
	logOneline    bool
	logJSON       bool
)

// logWidths are the widths of the when and operation columns. The subject
// column is last and never truncated.
var logWidths = []int{16, 14}

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "show only the last N matching entries")
	logCmd.Flags().BoolVar(&logNewest, "newest", false, "show most recent entries first")
	logCmd.Flags().StringVarP(&logCollection, "collection", "c", "", "only tasks or budgets")
	logCmd.Flags().StringSliceVarP(&logOperations, "operation", "o", nil, "only these operations, e.g. task.add or a verb such as delete")
	logCmd.Flags().IntVar(&logRecordID, "id", 0, "only entries about this record id")
	logCmd.Flags().StringVar(&logSince, "since", "", "only entries on or after this day (YYYY-MM-DD, UTC)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "only entries on or before this day (YYYY-MM-DD, UTC)")
	logCmd.Flags().BoolVar(&logOneline, "oneline", false, "compact one-line format")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logNewest = false
	logCollection = ""
	logOperations = nil
	logRecordID = 0
	logSince = ""
	logUntil = ""
	logOneline = false
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit log of changes to your tasks and budgets.

Entries record which operation ran, when, and on which record id. Record
contents are never written to the log.

Examples:
  triflow log                            # Full history, oldest first
  triflow log -n 10 --newest             # Ten most recent entries
  triflow log -c tasks --id 3            # Everything that happened to task #3
  triflow log -o delete,remove           # Every deletion in both collections
  triflow log -o task.export             # Task exports only
  triflow log --since 2024-01-01         # Filter by day
  triflow log --json                     # JSON output`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	spinner, cleanup := startSpinner("Loading audit log...")
	defer cleanup()

	env, err := loadEnv()
	if err != nil {
		spinner.FinalMSG = formatStoreError(err, "load configuration")
		return err
	}

	opts := workflows.LogOptions{
		Collection:  logCollection,
		Operations:  logOperations,
		RecordID:    logRecordID,
		Since:       logSince,
		Until:       logUntil,
		Limit:       logLimit,
		NewestFirst: logNewest,
	}

	result, err := workflows.Log(context.Background(), env, opts)
	if err != nil {
		spinner.FinalMSG = formatLogError(err)
		if isLogUnexpectedError(err) {
			return err
		}
		return nil
	}
	Logger.Debugf("Kept %d of %d audit entries", len(result.Entries), result.Scanned)

	spinner.FinalMSG = ""
	switch {
	case logJSON:
		return printJSON(result.Entries)
	case len(result.Entries) == 0 && result.Scanned == 0:
		fmt.Println("No audit log entries found.")
	case len(result.Entries) == 0:
		fmt.Printf("No audit log entries found matching the filters (%d scanned).\n", result.Scanned)
	case logOneline:
		for _, e := range result.Entries {
			fmt.Println(strings.Join([]string{entryDay(e), e.Operation, entrySubject(e)}, " "))
		}
	default:
		printLogTable(result)
	}
	return nil
}

// formatLogError formats a log error for display to the user.
func formatLogError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrNoFilesFound):
		return ui.Info.Sprint("ℹ") + " No audit log found. Operations will be logged after you add a task or expense.\n"

	case errors.Is(err, kerrors.ErrInvalidDateFormat),
		errors.Is(err, kerrors.ErrInvalidFilter):
		return ui.Error.Sprint("✗") + " " + err.Error()

	default:
		return ui.Error.Sprint("✗") + " Failed to read audit log: " + err.Error()
	}
}

// isLogUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isLogUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, kerrors.ErrNoFilesFound),
		errors.Is(err, kerrors.ErrInvalidDateFormat),
		errors.Is(err, kerrors.ErrInvalidFilter):
		return false
	default:
		return true
	}
}

func printLogTable(result *workflows.LogResult) {
	fmt.Println(ui.Row(logWidths, "When (UTC)", "Operation", "Subject"))
	for _, e := range result.Entries {
		fmt.Println(ui.Row(logWidths, entryTime(e), e.Operation, entrySubject(e)))
	}

	counts := result.OperationCounts()
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = fmt.Sprintf("%s %d", c.Operation, c.Count)
	}
	fmt.Println()
	fmt.Printf("%s of %d shown: %s\n",
		ui.Plural(len(result.Entries), "entry", "entries"), result.Scanned, strings.Join(parts, ", "))
}

// entrySubject is the entry's subject followed by the destination of an
// export.
func entrySubject(e audit.Entry) string {
	if e.OutputPath != "" {
		return e.Subject() + " → " + ui.Path.Sprint(e.OutputPath)
	}
	return e.Subject()
}

func entryTime(e audit.Entry) string {
	if t, ok := e.Time(); ok {
		return t.UTC().Format("2006-01-02 15:04")
	}
	return e.Timestamp
}

func entryDay(e audit.Entry) string {
	if t, ok := e.Time(); ok {
		return t.UTC().Format("2006-01-02")
	}
	return e.Timestamp
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/triflow/internal/ui"
	"github.com/PolarWolf314/triflow/internal/workflows"
)

var (
	doctorJSONOutput bool
	// doctorExitFunc is the function called to exit with a specific code.
	// Can be overridden for testing.
	doctorExitFunc = os.Exit
)

// doctorHeadlines is the closing line for each overall status.
var doctorHeadlines = map[workflows.CheckStatus]string{
	workflows.CheckPass:    "Your tasks and budgets are readable with this key",
	workflows.CheckWarning: "Health checks completed with warnings",
	workflows.CheckError:   "Some data cannot be read, see the errors above",
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSONOutput, "json", false, "output in JSON format")
}

func resetDoctorCommandState() {
	doctorJSONOutput = false
	doctorExitFunc = os.Exit
}

// SetDoctorExitFunc sets the exit function for testing purposes.
func SetDoctorExitFunc(f func(int)) {
	doctorExitFunc = f
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the installation for problems",
	Long: `Runs read-only health checks against the config, the key and both
encrypted collections. Nothing is created or repaired.

Checks:
  Configuration       config file parses and carries an install id
  Encryption key      key file exists and is 32 bytes
  Key permissions     key file is readable only by you
  Tasks collection    tasks decrypt and decode with the key
  Budgets collection  budgets decrypt and decode with the key
  Plaintext exports   no decrypted exports left next to the data

Exit codes:
  0 - All checks passed
  1 - Warnings found (non-critical issues)
  2 - Errors found (critical issues)

Use --json for machine-readable output.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting doctor command")

	spinner, cleanup := startSpinner("Running health checks...")
	defer cleanup()

	env, err := loadEnv()
	if err != nil {
		spinner.FinalMSG = formatStoreError(err, "load configuration")
		return err
	}

	result, err := workflows.Doctor(context.Background(), env, workflows.DoctorOptions{})
	if err != nil {
		spinner.FinalMSG = ui.Error.Sprint("✗") + " Failed to run health checks: " + err.Error()
		return err
	}

	for _, check := range result.Checks {
		Logger.Debugf("Check %s: status=%s, message=%s", check.Name, check.Status, check.Message)
	}

	spinner.FinalMSG = ""
	if doctorJSONOutput {
		if err := printJSON(result); err != nil {
			return err
		}
	} else {
		printDoctorReport(result)
		status := result.Status()
		spinner.FinalMSG = ui.StatusMark(status.String()) + " " + doctorHeadlines[status]
	}

	if code := result.ExitCode(); code != 0 {
		cleanup()
		doctorExitFunc(code)
	}
	return nil
}

func printDoctorReport(result *workflows.DoctorResult) {
	nameWidth := 0
	for _, check := range result.Checks {
		nameWidth = max(nameWidth, utf8.RuneCountInString(check.Name))
	}

	widths := []int{nameWidth}
	for _, check := range result.Checks {
		fmt.Println(ui.StatusMark(check.Status.String()) + " " + ui.Row(widths, check.Name, check.Message))
	}

	fmt.Println()
	fmt.Println(doctorSummaryLine(result.Summary))

	if len(result.Suggestions) > 0 {
		fmt.Println()
		for _, suggestion := range result.Suggestions {
			fmt.Printf("  %s %s\n", ui.Info.Sprint("→"), suggestion)
		}
	}
}

// doctorSummaryLine renders "6 checks: 4 passed, 1 warning, 1 error",
// omitting zero warning and error counts.
func doctorSummaryLine(s workflows.DoctorSummary) string {
	total := s.Passed + s.Warnings + s.Errors
	line := fmt.Sprintf("%s: %d passed", ui.Plural(total, "check", "checks"), s.Passed)
	if s.Warnings > 0 {
		line += ", " + ui.Warning.Sprint(ui.Plural(s.Warnings, "warning", "warnings"))
	}
	if s.Errors > 0 {
		line += ", " + ui.Error.Sprint(ui.Plural(s.Errors, "error", "errors"))
	}
	return line
}

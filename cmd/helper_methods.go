package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/briandowns/spinner"

	"github.com/PolarWolf314/triflow/internal/configs"
	kerrors "github.com/PolarWolf314/triflow/internal/errors"
	"github.com/PolarWolf314/triflow/internal/store"
	"github.com/PolarWolf314/triflow/internal/ui"
	"github.com/PolarWolf314/triflow/internal/utils"
	"github.com/PolarWolf314/triflow/internal/workflows"
)

// settingsFunc resolves the platform directories. Tests replace it.
var settingsFunc = configs.DefaultSettings

// startSpinner creates and starts a spinner with the given message when not in
// verbose or debug mode and stdout is a terminal. Returns the spinner and a
// function that should be deferred to clean up.
//
// spinner.FinalMSG values do not need trailing newlines. The cleanup function
// calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	animate := !verbose && !debug && utils.IsStdoutTerminal()
	if animate {
		s.Start()
	} else {
		Logger.Infof("%s", message)
	}

	cleanup := func() {
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if animate {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// loadEnv resolves the config file and builds the workflow environment.
// --config and --data-dir take precedence over everything else.
func loadEnv() (*workflows.Env, error) {
	settings, err := settingsFunc()
	if err != nil {
		return nil, err
	}

	path := configFlag
	if path == "" {
		path = settings.ConfigPath()
	}
	Logger.Debugf("Loading config from %s", path)

	cfg, err := configs.Load(path, settings)
	if err != nil {
		return nil, err
	}
	if dataDirFlag != "" {
		cfg.Store.DataDir = dataDirFlag
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	Logger.Debugf("Data directory: %s", cfg.DataDir())

	return workflows.NewEnv(cfg, path, settings, Logger), nil
}

// parseID parses a record identifier argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: %q is not a valid id", kerrors.ErrValidation, arg)
	}
	return id, nil
}

// formatStoreError formats an error from any collection workflow for display.
func formatStoreError(err error, action string) string {
	switch {
	case errors.Is(err, kerrors.ErrValidation):
		return ui.Error.Sprint("✗") + " " + err.Error()

	case errors.Is(err, kerrors.ErrRecordNotFound):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Use the list command to see valid ids"

	case errors.Is(err, kerrors.ErrInvalidDateFormat):
		return ui.Error.Sprint("✗") + " " + err.Error()

	case errors.Is(err, kerrors.ErrKeyCorrupt):
		return ui.Error.Sprint("✗") + " The encryption key file is corrupt\n" +
			ui.Info.Sprint("→") + " Restore it from a backup; a new key cannot read existing data"

	case store.IsDecodeError(err):
		msg := " Failed to decrypt your data: wrong key or damaged file"
		if errors.Is(err, kerrors.ErrMalformedPayload) {
			msg = " Your data decrypted but could not be read: " + err.Error()
		}
		return ui.Error.Sprint("✗") + msg + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("triflow doctor") + " for details"

	case configs.IsInvalid(err):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Fix the file or pass another one with " + ui.Flag.Sprint("--config")

	case errors.Is(err, kerrors.ErrStorageUnavailable):
		return ui.Error.Sprint("✗") + " Storage unavailable: " + err.Error()

	default:
		return ui.Error.Sprint("✗") + " Failed to " + action + ": " + err.Error()
	}
}

// isUnexpectedError returns true if the error is unexpected and should cause
// a non-zero exit. Mistakes in user input are reported but exit cleanly.
func isUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, kerrors.ErrValidation),
		errors.Is(err, kerrors.ErrRecordNotFound),
		errors.Is(err, kerrors.ErrInvalidDateFormat):
		return false
	default:
		return true
	}
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

package workflows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/PolarWolf314/triflow/internal/configs"
	kerrors "github.com/PolarWolf314/triflow/internal/errors"
	"github.com/PolarWolf314/triflow/internal/records"
	"github.com/PolarWolf314/triflow/internal/secrets"
	"github.com/PolarWolf314/triflow/internal/store"
)

// CheckStatus represents the result status of a health check.
type CheckStatus int

const (
	// CheckPass means the check passed.
	CheckPass CheckStatus = iota
	// CheckWarning means the check found a non-critical issue.
	CheckWarning
	// CheckError means the check found a critical issue.
	CheckError
)

// String returns a string representation of CheckStatus.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarning:
		return "warning"
	case CheckError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for CheckStatus.
func (s CheckStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// CheckResult holds the result of a single health check.
type CheckResult struct {
	Name       string      `json:"name"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// DoctorResult holds the complete result of the doctor workflow.
type DoctorResult struct {
	Checks      []CheckResult `json:"checks"`
	Summary     DoctorSummary `json:"summary"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

// Status returns the most severe status among the checks.
func (r *DoctorResult) Status() CheckStatus {
	switch {
	case r.Summary.Errors > 0:
		return CheckError
	case r.Summary.Warnings > 0:
		return CheckWarning
	default:
		return CheckPass
	}
}

// ExitCode is the process exit code for the result: 0 when every check
// passed, 1 for warnings and 2 for errors.
func (r *DoctorResult) ExitCode() int {
	switch r.Status() {
	case CheckError:
		return 2
	case CheckWarning:
		return 1
	default:
		return 0
	}
}

// DoctorSummary holds counts of checks by status.
type DoctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// DoctorOptions configures the doctor workflow.
type DoctorOptions struct{}

// Doctor runs health checks on the local installation. It never creates
// or modifies files: a missing key is reported, not generated.
//
// The doctor workflow checks:
//   - Config file validity and install UUID
//   - Key file existence, length and permissions
//   - That both collections decrypt and decode under the key
//   - Plaintext exports left next to the encrypted data
func Doctor(ctx context.Context, env *Env, opts DoctorOptions) (*DoctorResult, error) {
	d := &doctor{env: env}

	checks := []func() CheckResult{
		d.checkConfig,
		d.checkKeyExists,
		d.checkKeyPermissions,
		func() CheckResult {
			return checkCollection[records.Task](d, "Tasks collection", env.Config.TasksPath())
		},
		func() CheckResult {
			return checkCollection[records.Expense](d, "Budgets collection", env.Config.BudgetsPath())
		},
		d.checkPlaintextExports,
	}

	var results []CheckResult
	for _, check := range checks {
		results = append(results, check())
	}

	summary := calculateDoctorSummary(results)

	// Collect suggestions (deduplicated).
	var suggestions []string
	seen := make(map[string]bool)
	for _, result := range results {
		if result.Suggestion != "" && result.Status != CheckPass && !seen[result.Suggestion] {
			suggestions = append(suggestions, result.Suggestion)
			seen[result.Suggestion] = true
		}
	}

	return &DoctorResult{
		Checks:      results,
		Summary:     summary,
		Suggestions: suggestions,
	}, nil
}

type doctor struct {
	env *Env

	key    secrets.Key
	keyErr error
	loaded bool
}

// loadKey reads the key once, without creating it.
func (d *doctor) loadKey() (secrets.Key, error) {
	if !d.loaded {
		d.key, d.keyErr = secrets.NewKeyStore(d.env.Config.KeyPath()).LoadKey()
		d.loaded = true
	}
	return d.key, d.keyErr
}

// checkConfig checks if the config file exists and parses correctly.
func (d *doctor) checkConfig() CheckResult {
	path := d.env.ConfigPath
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return CheckResult{
			Name:       "Configuration",
			Status:     CheckWarning,
			Message:    "config.toml not found, using defaults",
			Suggestion: "Run 'triflow init' to create a configuration",
		}
	}

	var cfg configs.Config
	if err := configs.LoadTOML(path, &cfg); err != nil {
		return CheckResult{
			Name:       "Configuration",
			Status:     CheckError,
			Message:    fmt.Sprintf("Failed to parse config: %v", err),
			Suggestion: fmt.Sprintf("Check %s for syntax errors", path),
		}
	}

	if cfg.Install.UUID == "" {
		return CheckResult{
			Name:       "Configuration",
			Status:     CheckWarning,
			Message:    "Install UUID is missing from config",
			Suggestion: "Run 'triflow init' to generate an install UUID",
		}
	}

	return CheckResult{
		Name:    "Configuration",
		Status:  CheckPass,
		Message: "Configuration valid",
	}
}

// checkKeyExists checks that the key file exists and has the right length.
func (d *doctor) checkKeyExists() CheckResult {
	_, err := d.loadKey()
	switch {
	case err == nil:
		return CheckResult{
			Name:    "Encryption key",
			Status:  CheckPass,
			Message: "Key file present",
		}
	case errors.Is(err, kerrors.ErrKeyNotFound):
		return CheckResult{
			Name:       "Encryption key",
			Status:     CheckWarning,
			Message:    "Key file not found; it will be created on first use",
			Suggestion: "Run 'triflow init' to create the key now",
		}
	case errors.Is(err, kerrors.ErrKeyCorrupt):
		return CheckResult{
			Name:       "Encryption key",
			Status:     CheckError,
			Message:    fmt.Sprintf("Key file is corrupt: %v", err),
			Suggestion: "Restore the key file from a backup",
		}
	default:
		return CheckResult{
			Name:       "Encryption key",
			Status:     CheckError,
			Message:    fmt.Sprintf("Failed to read key file: %v", err),
			Suggestion: "Check that the key file is accessible",
		}
	}
}

// checkKeyPermissions checks that the key file is not readable by others.
func (d *doctor) checkKeyPermissions() CheckResult {
	info, err := os.Stat(d.env.Config.KeyPath())
	if os.IsNotExist(err) {
		return CheckResult{
			Name:    "Key permissions",
			Status:  CheckPass,
			Message: "Key file not found (skipping permissions check)",
		}
	}
	if err != nil {
		return CheckResult{
			Name:       "Key permissions",
			Status:     CheckError,
			Message:    fmt.Sprintf("Failed to stat key file: %v", err),
			Suggestion: "Check that the key file is accessible",
		}
	}

	mode := info.Mode().Perm()
	if mode&0077 != 0 {
		return CheckResult{
			Name:       "Key permissions",
			Status:     CheckWarning,
			Message:    fmt.Sprintf("Key file has permissions %04o, should be 0600", mode),
			Suggestion: fmt.Sprintf("Run 'chmod 600 %s' to restrict key access", d.env.Config.KeyPath()),
		}
	}

	return CheckResult{
		Name:    "Key permissions",
		Status:  CheckPass,
		Message: "Key file has secure permissions (0600)",
	}
}

// checkCollection checks that a collection file decrypts and decodes.
func checkCollection[T records.Record](d *doctor, name, path string) CheckResult {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return CheckResult{
			Name:    name,
			Status:  CheckPass,
			Message: "Not created yet",
		}
	}

	key, err := d.loadKey()
	if err != nil {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    "Cannot check collection: key unavailable",
			Suggestion: "Restore the key file that was used to write the collection",
		}
	}

	c, err := store.Load[T](path, key)
	switch {
	case err == nil:
		return CheckResult{
			Name:    name,
			Status:  CheckPass,
			Message: fmt.Sprintf("%d records, decrypted successfully", c.Len()),
		}
	case errors.Is(err, kerrors.ErrDecryptFailed):
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    "File does not decrypt with the current key (wrong key or damaged file)",
			Suggestion: "Restore the matching key or the collection file from a backup",
		}
	case errors.Is(err, kerrors.ErrMalformedPayload):
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("Decrypted contents are malformed: %v", err),
			Suggestion: "The file may come from an incompatible version; restore it from a backup",
		}
	default:
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("Failed to read collection: %v", err),
			Suggestion: "Check that the data directory is accessible",
		}
	}
}

// checkPlaintextExports warns about unencrypted export files.
func (d *doctor) checkPlaintextExports() CheckResult {
	var found []string
	for _, path := range []string{d.env.Config.TasksExportPath(), d.env.Config.BudgetsExportPath()} {
		if _, err := os.Stat(path); err == nil {
			found = append(found, path)
		}
	}

	if len(found) > 0 {
		return CheckResult{
			Name:       "Plaintext exports",
			Status:     CheckWarning,
			Message:    fmt.Sprintf("Found %d unencrypted export file(s): %v", len(found), found),
			Suggestion: "Delete export files once you no longer need them",
		}
	}

	return CheckResult{
		Name:    "Plaintext exports",
		Status:  CheckPass,
		Message: "No unencrypted export files found",
	}
}

func calculateDoctorSummary(results []CheckResult) DoctorSummary {
	var summary DoctorSummary
	for _, result := range results {
		switch result.Status {
		case CheckPass:
			summary.Passed++
		case CheckWarning:
			summary.Warnings++
		case CheckError:
			summary.Errors++
		}
	}
	return summary
}

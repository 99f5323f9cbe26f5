package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	kerrors "github.com/PolarWolf314/triflow/internal/errors"
)

// TimestampLayout is the format of Entry.Timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// Collection names.
const (
	CollectionTasks   = "tasks"
	CollectionBudgets = "budgets"
)

// Operation names.
const (
	OpInit          = "init"
	OpTaskAdd       = "task.add"
	OpTaskComplete  = "task.complete"
	OpTaskEdit      = "task.edit"
	OpTaskDelete    = "task.delete"
	OpTaskExport    = "task.export"
	OpExpenseAdd    = "expense.add"
	OpExpenseRemove = "expense.remove"
	OpExpenseExport = "expense.export"
)

// Entry represents a single audit log entry. Record contents never appear
// here since the log is not encrypted.
type Entry struct {
	Timestamp string `json:"ts"`      // RFC3339 with microseconds, UTC.
	User      string `json:"user"`    // OS user performing the action.
	Install   string `json:"install"` // Install UUID from config.
	Operation string `json:"op"`

	// Optional fields depending on operation.
	Collection string `json:"collection,omitempty"`
	RecordID   int    `json:"record_id,omitempty"`   // For add/complete/edit/delete/remove.
	Count      int    `json:"count,omitempty"`       // For export.
	OutputPath string `json:"output_path,omitempty"` // For export.
}

// Logger appends entries to one audit log file. A nil Logger discards
// everything.
type Logger struct {
	Path    string
	User    string
	Install string

	// Now is used for timestamps; nil means time.Now.
	Now func() time.Time
}

// NewLogger returns a Logger writing to path.
func NewLogger(path, user, install string) *Logger {
	return &Logger{Path: path, User: user, Install: install}
}

// Log appends an entry to the audit log. Failures are returned so callers
// can warn, but operations must not fail because of them.
func (l *Logger) Log(entry Entry) error {
	if l == nil || l.Path == "" {
		return nil
	}

	if entry.Timestamp == "" {
		now := time.Now
		if l.Now != nil {
			now = l.Now
		}
		entry.Timestamp = now().UTC().Format(TimestampLayout)
	}
	if entry.User == "" {
		entry.User = l.User
	}
	if entry.Install == "" {
		entry.Install = l.Install
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding audit entry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(l.Path), 0700); err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrStorageUnavailable, err)
	}
	f, err := os.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrStorageUnavailable, err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrStorageUnavailable, err)
	}
	return nil
}

// ReadEntries reads all entries from the audit log at path.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrStorageUnavailable, err)
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Skip malformed entries, such as a partial final line.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

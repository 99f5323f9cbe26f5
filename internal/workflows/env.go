package workflows

import (
	"time"

	"github.com/PolarWolf314/triflow/internal/audit"
	"github.com/PolarWolf314/triflow/internal/configs"
	logger "github.com/PolarWolf314/triflow/internal/logging"
	"github.com/PolarWolf314/triflow/internal/records"
	"github.com/PolarWolf314/triflow/internal/secrets"
	"github.com/PolarWolf314/triflow/internal/store"
)

// Env carries everything a workflow needs. The CLI builds one per command
// invocation; tests build one over a temp directory.
type Env struct {
	Config     *configs.Config
	ConfigPath string
	Keys       *secrets.KeyStore
	Audit      *audit.Logger
	Logger     logger.Logger

	// Now is the clock used for timestamps and default dates. Nil means time.Now.
	Now func() time.Time
}

// NewEnv wires an Env from a loaded config.
func NewEnv(cfg *configs.Config, configPath string, settings *configs.Settings, log logger.Logger) *Env {
	return &Env{
		Config:     cfg,
		ConfigPath: configPath,
		Keys:       secrets.NewKeyStore(cfg.KeyPath()),
		Audit:      audit.NewLogger(cfg.AuditLogPath(), settings.Username, cfg.Install.UUID),
		Logger:     log,
	}
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Env) tasksFile() (*store.File[records.Task], error) {
	key, err := e.Keys.GetOrCreateKey()
	if err != nil {
		return nil, err
	}
	e.Logger.Debugf("Using tasks file %s", e.Config.TasksPath())
	return store.NewFile[records.Task](e.Config.TasksPath(), key), nil
}

func (e *Env) budgetsFile() (*store.File[records.Expense], error) {
	key, err := e.Keys.GetOrCreateKey()
	if err != nil {
		return nil, err
	}
	e.Logger.Debugf("Using budgets file %s", e.Config.BudgetsPath())
	return store.NewFile[records.Expense](e.Config.BudgetsPath(), key), nil
}

// record appends to the audit log. The operation already happened, so a
// failure is only worth a warning.
func (e *Env) record(entry audit.Entry) {
	if err := e.Audit.Log(entry); err != nil {
		e.Logger.Warnf("Failed to write audit log: %v", err)
	}
}

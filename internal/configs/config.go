package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	kerrors "github.com/PolarWolf314/triflow/internal/errors"
	"github.com/PolarWolf314/triflow/internal/utils"
)

// Config is the contents of config.toml.
type Config struct {
	Store   StoreConfig   `toml:"store" mapstructure:"store"`
	Install InstallConfig `toml:"install" mapstructure:"install"`
}

// StoreConfig locates the key, the collections and their by-products.
// Relative paths are resolved against DataDir.
type StoreConfig struct {
	DataDir       string `toml:"data_dir,omitempty" mapstructure:"data_dir"`
	KeyFile       string `toml:"key_file,omitempty" mapstructure:"key_file"`
	TasksFile     string `toml:"tasks_file,omitempty" mapstructure:"tasks_file"`
	BudgetsFile   string `toml:"budgets_file,omitempty" mapstructure:"budgets_file"`
	TasksExport   string `toml:"tasks_export,omitempty" mapstructure:"tasks_export"`
	BudgetsExport string `toml:"budgets_export,omitempty" mapstructure:"budgets_export"`
	AuditLog      string `toml:"audit_log,omitempty" mapstructure:"audit_log"`
}

// InstallConfig identifies this installation in the audit log.
type InstallConfig struct {
	UUID      string `toml:"uuid" mapstructure:"uuid"`
	CreatedAt string `toml:"created_at" mapstructure:"created_at"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			KeyFile:       "key.key",
			TasksFile:     "tasks.json.enc",
			BudgetsFile:   "budgets.json.enc",
			TasksExport:   "tasks_export.json",
			BudgetsExport: "budgets_export.json",
			AuditLog:      "audit.jsonl",
		},
	}
}

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"store.data_dir":       "TRIFLOW_DATA_DIR",
	"store.key_file":       "TRIFLOW_KEY_FILE",
	"store.tasks_file":     "TRIFLOW_TASKS_FILE",
	"store.budgets_file":   "TRIFLOW_BUDGETS_FILE",
	"store.tasks_export":   "TRIFLOW_TASKS_EXPORT",
	"store.budgets_export": "TRIFLOW_BUDGETS_EXPORT",
	"store.audit_log":      "TRIFLOW_AUDIT_LOG",
}

// Load reads the config at path. Values come from, highest first: the
// environment, triflow.env next to the config file, the config file itself,
// and the defaults. A missing config file is not an error.
//
// Empty path values fall back to the defaults.
//
// Returns ErrConfigInvalid if either file exists but cannot be parsed, or
// if two store paths resolve to the same file.
func Load(path string, settings *Settings) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	def := Default()
	v.SetDefault("store.data_dir", settings.DataDir)
	v.SetDefault("store.key_file", def.Store.KeyFile)
	v.SetDefault("store.tasks_file", def.Store.TasksFile)
	v.SetDefault("store.budgets_file", def.Store.BudgetsFile)
	v.SetDefault("store.tasks_export", def.Store.TasksExport)
	v.SetDefault("store.budgets_export", def.Store.BudgetsExport)
	v.SetDefault("store.audit_log", def.Store.AuditLog)
	v.SetDefault("install.uuid", "")
	v.SetDefault("install.created_at", "")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	exists, err := utils.FileExists(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrStorageUnavailable, err)
	}
	if exists {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrConfigInvalid, path, err)
		}
	}

	if err := applyEnvFile(v, filepath.Join(filepath.Dir(path), EnvFileName)); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrConfigInvalid, path, err)
	}
	if cfg.Store.DataDir == "" {
		cfg.Store.DataDir = settings.DataDir
	}
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fillDefaults replaces empty file names with the default ones.
func (c *Config) fillDefaults() {
	def := Default().Store
	for _, f := range []struct {
		value *string
		def   string
	}{
		{&c.Store.KeyFile, def.KeyFile},
		{&c.Store.TasksFile, def.TasksFile},
		{&c.Store.BudgetsFile, def.BudgetsFile},
		{&c.Store.TasksExport, def.TasksExport},
		{&c.Store.BudgetsExport, def.BudgetsExport},
		{&c.Store.AuditLog, def.AuditLog},
	} {
		if *f.value == "" {
			*f.value = f.def
		}
	}
}

// Validate checks that every store file resolves to its own path. An export
// or the audit log sharing a path with the key or a collection would
// overwrite it.
//
// Returns ErrConfigInvalid naming both settings on a collision.
func (c *Config) Validate() error {
	paths := []struct {
		name string
		path string
	}{
		{"key_file", c.KeyPath()},
		{"tasks_file", c.TasksPath()},
		{"budgets_file", c.BudgetsPath()},
		{"tasks_export", c.TasksExportPath()},
		{"budgets_export", c.BudgetsExportPath()},
		{"audit_log", c.AuditLogPath()},
	}

	seen := make(map[string]string, len(paths))
	for _, p := range paths {
		if p.path == "" {
			return fmt.Errorf("%w: %s is empty", kerrors.ErrConfigInvalid, p.name)
		}
		clean := filepath.Clean(p.path)
		if other, ok := seen[clean]; ok {
			return fmt.Errorf("%w: %s and %s both point to %s", kerrors.ErrConfigInvalid, other, p.name, clean)
		}
		seen[clean] = p.name
	}
	return nil
}

// applyEnvFile copies TRIFLOW_* values from a dotenv file into v for every
// variable the real environment leaves unset.
func applyEnvFile(v *viper.Viper, path string) error {
	exists, err := utils.FileExists(path)
	if err != nil || !exists {
		return nil
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", kerrors.ErrConfigInvalid, path, err)
	}

	for key, env := range envBindings {
		value, ok := vars[env]
		if !ok {
			continue
		}
		if _, set := os.LookupEnv(env); set {
			continue
		}
		v.Set(key, value)
	}
	return nil
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	if err := SaveTOML(path, cfg); err != nil {
		return fmt.Errorf("%w: saving config %s: %v", kerrors.ErrStorageUnavailable, path, err)
	}
	return nil
}

// GenerateInstallUUID generates a new UUID for this installation.
func GenerateInstallUUID() string {
	return uuid.New().String()
}

// Ensure makes sure a config file exists at path and carries an install
// UUID, writing one if needed. Only the file's own contents are written
// back, never values that came from the environment or the defaults. It
// reports whether the file was changed.
func Ensure(path string, now time.Time) (bool, error) {
	fileCfg := Default()

	exists, err := utils.FileExists(path)
	if err != nil {
		return false, fmt.Errorf("%w: %v", kerrors.ErrStorageUnavailable, err)
	}
	if exists {
		fileCfg = &Config{}
		if err := LoadTOML(path, fileCfg); err != nil {
			return false, fmt.Errorf("%w: %s: %v", kerrors.ErrConfigInvalid, path, err)
		}
		if fileCfg.Install.UUID != "" {
			return false, nil
		}
	}

	fileCfg.Install.UUID = GenerateInstallUUID()
	fileCfg.Install.CreatedAt = now.Format(time.RFC3339)
	if err := Save(path, fileCfg); err != nil {
		return false, err
	}
	return true, nil
}

// IsInvalid reports whether err came from an unparsable config file.
func IsInvalid(err error) bool {
	return errors.Is(err, kerrors.ErrConfigInvalid)
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Store.DataDir, p)
}

// DataDir returns the directory relative store paths are resolved against.
func (c *Config) DataDir() string { return c.Store.DataDir }

// KeyPath returns the location of the symmetric key.
func (c *Config) KeyPath() string { return c.resolve(c.Store.KeyFile) }

// TasksPath returns the location of the encrypted task collection.
func (c *Config) TasksPath() string { return c.resolve(c.Store.TasksFile) }

// BudgetsPath returns the location of the encrypted expense collection.
func (c *Config) BudgetsPath() string { return c.resolve(c.Store.BudgetsFile) }

// TasksExportPath returns where plaintext task exports are written.
func (c *Config) TasksExportPath() string { return c.resolve(c.Store.TasksExport) }

// BudgetsExportPath returns where plaintext expense exports are written.
func (c *Config) BudgetsExportPath() string { return c.resolve(c.Store.BudgetsExport) }

// AuditLogPath returns the location of the audit log.
func (c *Config) AuditLogPath() string { return c.resolve(c.Store.AuditLog) }

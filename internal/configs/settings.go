package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/triflow/internal/utils"
)

// AppName names the per-user config and data directories.
const AppName = "triflow"

// ConfigFileName is the name of the config file inside the config directory.
const ConfigFileName = "config.toml"

// EnvFileName is an optional dotenv file next to the config file. Its
// TRIFLOW_* variables apply when the real environment does not set them.
const EnvFileName = "triflow.env"

// Settings holds the platform locations that do not come from the config file.
type Settings struct {
	ConfigDir string
	DataDir   string
	Username  string
}

// DefaultSettings resolves the platform directories for the current user.
// The data directory follows XDG_DATA_HOME, falling back to ~/.local/share.
func DefaultSettings() (*Settings, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("error getting home directory: %w", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("error getting config directory: %w", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	username, err := utils.GetUsername()
	if err != nil {
		username = "unknown"
	}

	return &Settings{
		ConfigDir: filepath.Join(configDir, AppName),
		DataDir:   filepath.Join(dataDir, AppName),
		Username:  username,
	}, nil
}

// ConfigPath returns the default config file location.
func (s *Settings) ConfigPath() string {
	return filepath.Join(s.ConfigDir, ConfigFileName)
}

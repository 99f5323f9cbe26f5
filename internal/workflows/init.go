package workflows

import (
	"context"
	"errors"
	"fmt"

	"github.com/PolarWolf314/triflow/internal/audit"
	"github.com/PolarWolf314/triflow/internal/configs"
	kerrors "github.com/PolarWolf314/triflow/internal/errors"
)

// InitOptions configures the init workflow.
type InitOptions struct{}

// InitResult contains the outcome of an init operation.
type InitResult struct {
	// ConfigPath is the config file that was checked or written.
	ConfigPath string

	// ConfigCreated is true when the config file or its install UUID was written.
	ConfigCreated bool

	// InstallUUID identifies this installation in the audit log.
	InstallUUID string

	// KeyPath is the location of the symmetric key.
	KeyPath string

	// KeyCreated is true when a new key was generated.
	KeyCreated bool

	// DataDir is where the collections are stored.
	DataDir string
}

// Init makes sure the config file and the encryption key exist. Running it
// again is harmless: an existing key is never replaced.
//
// Returns ErrKeyCorrupt if a key file exists with the wrong length.
// Returns ErrConfigInvalid if the config file cannot be parsed.
func Init(ctx context.Context, env *Env, opts InitOptions) (*InitResult, error) {
	changed, err := configs.Ensure(env.ConfigPath, env.now())
	if err != nil {
		return nil, fmt.Errorf("ensuring config: %w", err)
	}

	var onDisk configs.Config
	if err := configs.LoadTOML(env.ConfigPath, &onDisk); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrConfigInvalid, env.ConfigPath, err)
	}
	env.Config.Install = onDisk.Install
	if env.Audit != nil {
		env.Audit.Install = onDisk.Install.UUID
	}

	keyCreated := false
	_, err = env.Keys.LoadKey()
	if errors.Is(err, kerrors.ErrKeyNotFound) {
		env.Logger.Infof("Generating a new key at %s", env.Keys.Path())
		_, err = env.Keys.CreateKey()
		keyCreated = err == nil
		if errors.Is(err, kerrors.ErrKeyAlreadyExists) {
			_, err = env.Keys.LoadKey()
		}
	}
	if err != nil {
		return nil, err
	}

	env.record(audit.Entry{Operation: audit.OpInit})

	return &InitResult{
		ConfigPath:    env.ConfigPath,
		ConfigCreated: changed,
		InstallUUID:   onDisk.Install.UUID,
		KeyPath:       env.Keys.Path(),
		KeyCreated:    keyCreated,
		DataDir:       env.Config.DataDir(),
	}, nil
}

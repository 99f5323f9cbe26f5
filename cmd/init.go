package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	kerrors "github.com/PolarWolf314/triflow/internal/errors"
	"github.com/PolarWolf314/triflow/internal/ui"
	"github.com/PolarWolf314/triflow/internal/workflows"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the configuration and encryption key",
	Long: `Creates config.toml with an install id and generates the encryption key
if they do not exist yet. Running it again changes nothing.

Other commands create the key on first use, so init is optional. Run it
when you want to know where your key lives before adding data.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting init command")

	spinner, cleanup := startSpinner("Initializing triflow...")
	defer cleanup()

	env, err := loadEnv()
	if err != nil {
		spinner.FinalMSG = formatStoreError(err, "load configuration")
		return err
	}

	result, err := workflows.Init(context.Background(), env, workflows.InitOptions{})
	if err != nil {
		spinner.FinalMSG = formatInitError(err)
		return err
	}

	msg := ""
	if result.ConfigCreated {
		msg += ui.Success.Sprint("✓") + " Wrote config " + ui.Path.Sprint(result.ConfigPath) + "\n"
	} else {
		msg += ui.Info.Sprint("ℹ") + " Config already exists at " + ui.Path.Sprint(result.ConfigPath) + "\n"
	}
	if result.KeyCreated {
		msg += ui.Success.Sprint("✓") + " Generated encryption key " + ui.Path.Sprint(result.KeyPath) + "\n" +
			ui.Warning.Sprint("⚠") + " Back this file up: without it your data cannot be decrypted\n"
	} else {
		msg += ui.Info.Sprint("ℹ") + " Using existing key " + ui.Path.Sprint(result.KeyPath) + "\n"
	}
	msg += ui.Info.Sprint("→") + " Data directory: " + ui.Path.Sprint(result.DataDir)

	spinner.FinalMSG = msg
	return nil
}

// formatInitError formats an init error for display to the user.
func formatInitError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrKeyCorrupt):
		return ui.Error.Sprint("✗") + " The existing key file is corrupt and was left untouched\n" +
			ui.Info.Sprint("→") + " Restore it from a backup, or move it aside to start over without your old data"
	default:
		return formatStoreError(err, "initialize")
	}
}

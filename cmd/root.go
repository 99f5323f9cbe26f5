package cmd

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	logger "github.com/PolarWolf314/triflow/internal/logging"
	"github.com/PolarWolf314/triflow/internal/ui"
)

var (
	verbose     bool
	debug       bool
	configFlag  string
	dataDirFlag string
	Logger      logger.Logger
)

// NewRootCmd builds the triflow command tree with its global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "triflow",
		Short: "triflow - encrypted local tasks and budget tracking",
		Long: `triflow keeps a to-do list and an expense log on your machine, encrypted
with a key that never leaves it.

Usage:
  triflow <command> [flags]

Available Commands:
  tasks      Manage tasks
  budget     Manage expenses
  init       Create the configuration and encryption key
  doctor     Check the installation for problems
  log        View the audit log

Run 'triflow help <command>' for more details on a specific command.
`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing %s with verbose=%t, debug=%t", cmd.CommandPath(), verbose, debug)
		},
		Run: func(cmd *cobra.Command, args []string) {
			printBanner()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configFlag, "config", "", "config file (default <user config dir>/triflow/config.toml)")
	pf.StringVar(&dataDirFlag, "data-dir", "", "directory holding the key and collections")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVarP(&debug, "debug", "d", false, "enable debug output")

	root.AddCommand(TasksCmd)
	root.AddCommand(BudgetCmd)
	root.AddCommand(initCmd)
	root.AddCommand(doctorCmd)
	root.AddCommand(logCmd)

	return root
}

func printBanner() {
	if ui.ColorEnabled() {
		figure.NewColorFigure("triflow", "standard", "green", true).Print()
	} else {
		figure.NewFigure("triflow", "standard", true).Print()
	}
	fmt.Println()
	fmt.Println("Run " + ui.Code.Sprint("triflow --help") + " to see available commands.")
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	configFlag = ""
	dataDirFlag = ""
	Logger = logger.Logger{}
	resetTasksCommandState()
	resetBudgetCommandState()
	resetDoctorCommandState()
	resetLogCommandState()

	for _, c := range []*cobra.Command{TasksCmd, BudgetCmd, initCmd, doctorCmd, logCmd} {
		resetCobraFlagState(c)
	}
}

// resetCobraFlagState clears the Changed marker on a command tree's flags to
// prevent test pollution.
func resetCobraFlagState(c *cobra.Command) {
	c.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	for _, child := range c.Commands() {
		resetCobraFlagState(child)
	}
}

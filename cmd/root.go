// Package cmd provides the root command and CLI setup for remock.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"remock.dev/pkg/remock/internal/adapter"
	"remock.dev/pkg/remock/internal/controller"
	"remock.dev/pkg/remock/internal/mock"
	m "remock.dev/pkg/remock/internal/model"
)

var scriptFS adapter.ScriptFS
var planStore adapter.PlanStore
var ui controller.UI
var workflow mock.Workflow

// planPathFlag is a root-level flag shared by commands that apply mock plans.
var planPathFlag string

// verboseFlag raises the log level to debug when set.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewSimpleUI(rootCmd)
	scriptFS = adapter.NewLocalScriptFS()
	planStore = adapter.NewYAMLPlanStore()
	workflow = mock.NewWorkflow(scriptFS, planStore, ui)
}

const scriptArgsHelp = `Scripts are class source files (one or more paths):
  - remock run counter.cls --call 'Counter.bump()'
  - remock run a.cls b.cls --plan mocks.yaml`

const rootLongDescription = `Remock is a method mocking harness for class scripts. It lets you swap
method implementations statically or under a condition, stacks newer
mocks over older ones, falls back to the real method when nothing
matches, and restores everything on demand.

` + scriptArgsHelp

const runLongDescription = `Compile the given scripts, apply the mock plan, and evaluate calls.

` + scriptArgsHelp

const slotsLongDescription = `List the method slots of the compiled scripts and their mock status.

` + scriptArgsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remock",
		Short: "Method mocking harness for class scripts",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger("", verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&planPathFlag, planFlagName, "p",
			viper.GetString(planConfigKey),
			"path to a YAML mock plan applied before scripts compile",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(planFlagName), planConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "log at debug level")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

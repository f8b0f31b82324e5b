package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"remock.dev/pkg/remock/internal/mock"
	m "remock.dev/pkg/remock/internal/model"
)

var runCallFlags []string

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [scripts...]",
		Short: "Compile scripts, apply mocks, and evaluate calls",
		Long:  runLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Run(cmd.Context(), mock.RunArgs{
				Scripts: parsePaths(args),
				Plan:    m.Path(viper.GetString(planConfigKey)),
				Calls:   runCallFlags,
			})
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&runCallFlags, callFlagName, "c", nil, "call to evaluate, e.g. 'Counter.bump()' (can be repeated)")
}

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"remock.dev/pkg/remock/internal/mock"
	m "remock.dev/pkg/remock/internal/model"
)

// consoleCmd represents the console command.
var consoleCmd = newConsoleCmd()

func newConsoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "console [scripts...]",
		Short: "Open an interactive mocking console",
		Long: `Compile the given scripts and open an interactive console where methods
can be called, mocked, and restored.

` + scriptArgsHelp,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Console(cmd.Context(), mock.ConsoleArgs{
				Scripts: parsePaths(args),
				Plan:    m.Path(viper.GetString(planConfigKey)),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}

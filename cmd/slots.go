package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"remock.dev/pkg/remock/internal/mock"
	m "remock.dev/pkg/remock/internal/model"
)

// slotsCmd represents the slots command.
var slotsCmd = newSlotsCmd()

func newSlotsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slots [scripts...]",
		Short: "List call slots and their mock status",
		Long:  slotsLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Slots(cmd.Context(), mock.SlotsArgs{
				Scripts: parsePaths(args),
				Plan:    m.Path(viper.GetString(planConfigKey)),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(slotsCmd)
}

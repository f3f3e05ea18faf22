package status

import (
	"github.com/spf13/cobra"

	"github.com/ccasp/ccasp/cmd/ccasp/internal/ui"
	"github.com/ccasp/ccasp/internal/version"
	"github.com/ccasp/ccasp/pkg/commands"
)

// NewCommand creates the status command
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "status [project-path]",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectPath := "."
			if len(args) == 1 {
				projectPath = args[0]
			}

			ops, err := commands.New(version.Version)
			if err != nil {
				return err
			}

			status, err := ops.Status(projectPath)
			if err != nil {
				return err
			}

			ui.PrintStatus(status)
			return nil
		},
	}

	return cmd
}

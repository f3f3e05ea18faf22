package enable

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccasp/ccasp/internal/version"
	"github.com/ccasp/ccasp/pkg/commands"
)

// NewCommand creates the enable command
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "enable [project-path]",
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

			state, err := ops.Enable(projectPath)
			if err != nil {
				return err
			}

			fmt.Printf("Sync enabled (method: %s)\n", state.Method)
			return nil
		},
	}

	return cmd
}

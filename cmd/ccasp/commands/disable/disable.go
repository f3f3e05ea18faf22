package disable

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccasp/ccasp/cmd/ccasp/internal/ui"
	"github.com/ccasp/ccasp/internal/version"
	"github.com/ccasp/ccasp/pkg/commands"
)

// NewCommand creates the disable command
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "disable [project-path]",
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

			result, err := ops.Disable(projectPath)
			if err != nil {
				return err
			}

			fmt.Printf("Materialized %d file(s); project is now self-contained\n", len(result.Removed))
			ui.PrintErrors(result.Errors)
			return nil
		},
	}

	return cmd
}

package compile

import (
	"github.com/spf13/cobra"

	"github.com/ccasp/ccasp/cmd/ccasp/internal/ui"
	"github.com/ccasp/ccasp/internal/version"
	"github.com/ccasp/ccasp/pkg/commands"
)

// NewCommand creates the compile command
func NewCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "compile [project-path]",
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

			result, err := ops.Compile(projectPath, force)
			if err != nil {
				return err
			}

			ui.PrintCompile(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Recompile even if the cache is up to date")

	return cmd
}

package sync

import (
	"github.com/spf13/cobra"

	"github.com/ccasp/ccasp/cmd/ccasp/internal/ui"
	"github.com/ccasp/ccasp/internal/version"
	"github.com/ccasp/ccasp/pkg/commands"
)

// NewCommand creates the sync command
func NewCommand() *cobra.Command {
	var (
		force  bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:     "sync [project-path]",
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

			result, err := ops.Sync(projectPath, commands.SyncOptions{Force: force, DryRun: dryRun})
			if err != nil {
				return err
			}

			ui.PrintCompile(result.Compile)
			if result.DryRun {
				ui.PrintPlan(result.Plan)
				return nil
			}
			ui.PrintApply(result.Apply)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Recompile templates even if the cache is up to date")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without executing them")

	return cmd
}

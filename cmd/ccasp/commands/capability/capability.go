package capability

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccasp/ccasp/internal/version"
	"github.com/ccasp/ccasp/pkg/commands"
)

// NewCommand creates the capability command
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "capability",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := commands.New(version.Version)
			if err != nil {
				return err
			}

			result := ops.Capability()
			fmt.Printf("symlinks supported: %v\n", result.SymlinksSupported)
			fmt.Printf("sync method:        %s\n", result.Method)
			return nil
		},
	}

	return cmd
}

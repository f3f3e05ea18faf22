package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ccasp/ccasp/cmd/ccasp/commands/capability"
	"github.com/ccasp/ccasp/cmd/ccasp/commands/compile"
	"github.com/ccasp/ccasp/cmd/ccasp/commands/disable"
	"github.com/ccasp/ccasp/cmd/ccasp/commands/enable"
	"github.com/ccasp/ccasp/cmd/ccasp/commands/repair"
	"github.com/ccasp/ccasp/cmd/ccasp/commands/status"
	"github.com/ccasp/ccasp/cmd/ccasp/commands/sync"
	"github.com/ccasp/ccasp/internal/version"
	"github.com/ccasp/ccasp/pkg/logging"
)

var (
	verbosity int

	rootCmd = &cobra.Command{
		Use:   "ccasp",
		Short: "Keep project Claude configuration in sync with a shared template library",
		Long: `ccasp distributes a shared library of configuration templates (commands,
hooks, skills, docs) into project directories, keeping each project's copy in
sync with the template source while never overwriting files you have edited.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(sync.NewCommand())
	rootCmd.AddCommand(compile.NewCommand())
	rootCmd.AddCommand(status.NewCommand())
	rootCmd.AddCommand(repair.NewCommand())
	rootCmd.AddCommand(enable.NewCommand())
	rootCmd.AddCommand(disable.NewCommand())
	rootCmd.AddCommand(capability.NewCommand())
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print version information for ccasp`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ccasp version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}

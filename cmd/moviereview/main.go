package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd serves when no sub-command is given.
func newRootCmd() *cobra.Command {
	var skipMigrate bool

	root := &cobra.Command{
		Use:           "moviereview",
		Short:         "Movie review API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load() // .env is optional
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, skipMigrate)
		},
	}
	addSkipMigrateFlag(root, &skipMigrate)
	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

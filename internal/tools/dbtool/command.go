package dbtool

import (
	"github.com/spf13/cobra"

	"github.com/FitWiseApp/projeto-monorepo/internal/di"
)

// NewRootCommand builds the database maintenance CLI. It reuses the same
// config loading and connection path as the API server.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "dbtool",
		Short:         "Database maintenance for the FitWise API",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := di.InitializeMigrationRunner()
			if err != nil {
				return err
			}
			return runner.Migrate()
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Promote the bootstrap admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := di.InitializeMigrationRunner()
			if err != nil {
				return err
			}
			return runner.Seed()
		},
	})

	return root
}

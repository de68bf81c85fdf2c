package migratecmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zenGate-Global/tenantgate/apps/cli/cmd/clienv"
	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
)

// Command groups schema migration helpers backed by the embedded migrations.
func Command() *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect database schema migrations",
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection string; defaults to DATABASE_URL")

	withMigrator := func(fn func(cmd *cobra.Command, mg *persistence.Migrator) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			url, err := clienv.DatabaseURL(databaseURL)
			if err != nil {
				return err
			}
			mg, err := persistence.NewMigrator(url)
			if err != nil {
				return err
			}
			defer mg.Close() // nolint:errcheck
			return fn(cmd, mg)
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: withMigrator(func(cmd *cobra.Command, mg *persistence.Migrator) error {
			if err := mg.Up(); err != nil {
				return err
			}
			return printVersion(cmd, mg)
		}),
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		RunE: withMigrator(func(cmd *cobra.Command, mg *persistence.Migrator) error {
			if err := mg.Down(steps); err != nil {
				return err
			}
			return printVersion(cmd, mg)
		}),
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE:  withMigrator(printVersion),
	})

	return cmd
}

func printVersion(cmd *cobra.Command, mg *persistence.Migrator) error {
	version, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	if dirty {
		fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty)\n", version)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
	return nil
}

package root

import (
	"github.com/spf13/cobra"
)

// rootCmd is the base command for the TenantGate admin CLI. Subcommands (auth, migrate, plans, tenants) are
// attached here.
var rootCmd = &cobra.Command{
	Use:           "tenantgate",
	Short:         "TenantGate admin CLI",
	Long:          "Administrative utilities for TenantGate (schema migrations, dev tokens, plan catalogue, tenant subscriptions).",
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// Root returns the mutable root command for wiring from subpackages.
func Root() *cobra.Command {
	return rootCmd
}

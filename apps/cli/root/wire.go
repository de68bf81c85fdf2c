package root

import (
	"github.com/zenGate-Global/tenantgate/apps/cli/cmd/auth"
	migratecmd "github.com/zenGate-Global/tenantgate/apps/cli/cmd/migrate"
	planscmd "github.com/zenGate-Global/tenantgate/apps/cli/cmd/plans"
	tenantcmd "github.com/zenGate-Global/tenantgate/apps/cli/cmd/tenant"
)

func init() {
	Root().AddCommand(auth.Command())
	Root().AddCommand(migratecmd.Command())
	Root().AddCommand(planscmd.Command())
	Root().AddCommand(tenantcmd.Command())
}

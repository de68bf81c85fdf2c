package tenantcmd

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zenGate-Global/tenantgate/apps/cli/cmd/clienv"
	"github.com/zenGate-Global/tenantgate/domains/tenants/be/repo"
	"github.com/zenGate-Global/tenantgate/domains/tenants/be/service"
	"github.com/zenGate-Global/tenantgate/platform/go/access"
	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/identity"
	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
	"github.com/zenGate-Global/tenantgate/platform/go/requesttrace"
)

// Command groups superadmin tenant helpers. They run through the tenants service with a superadmin identity so
// the same checks and audit entries apply as over HTTP.
func Command() *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "tenant",
		Short: "Tenant utilities (list, assign plan)",
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection string; defaults to DATABASE_URL")

	cmd.AddCommand(listCommand(&databaseURL))
	cmd.AddCommand(assignPlanCommand(&databaseURL))
	return cmd
}

func listCommand(databaseURL *string) *cobra.Command {
	var skip, limit int

	c := &cobra.Command{
		Use:   "list",
		Short: "List tenants with their subscription state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), *databaseURL, func(ctx context.Context, svc service.Service, id auth.Identity) error {
				page, err := svc.List(ctx, id, service.ListOptions{Skip: skip, Limit: limit})
				if err != nil {
					return fmt.Errorf("list tenants: %w", err)
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tSLUG\tNAME\tSTATUS\tPLAN\tPERIOD ENDS")
				for _, t := range page.Tenants {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.Slug, t.Name, t.Billing.Status, planOrDash(t.Billing.PlanID), timeOrDash(t.Billing.CurrentPeriodEndsAt))
				}
				fmt.Fprintf(w, "\n%d of %d tenants\n", len(page.Tenants), page.Total)
				return w.Flush()
			})
		},
	}

	c.Flags().IntVar(&skip, "skip", 0, "number of tenants to skip")
	c.Flags().IntVar(&limit, "limit", 100, "maximum number of tenants to list")
	return c
}

func assignPlanCommand(databaseURL *string) *cobra.Command {
	var (
		tenantID string
		planID   string
		status   string
		endsIn   time.Duration
	)

	c := &cobra.Command{
		Use:   "assign-plan",
		Short: "Assign a plan to a tenant, overriding its subscription",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, target, err := assignInput(tenantID, planID, status, endsIn, time.Now().UTC())
			if err != nil {
				return err
			}

			return withService(cmd.Context(), *databaseURL, func(ctx context.Context, svc service.Service, id auth.Identity) error {
				t, err := svc.AssignPlan(ctx, id, target, input)
				if err != nil {
					return fmt.Errorf("assign plan: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Tenant %s (%s) is now %s on plan %s\n", t.Slug, t.ID, t.Billing.Status, planOrDash(t.Billing.PlanID))
				return nil
			})
		},
	}

	c.Flags().StringVar(&tenantID, "tenant-id", "", "tenant to update")
	c.Flags().StringVar(&planID, "plan-id", "", "plan to assign")
	c.Flags().StringVar(&status, "status", persistence.SubscriptionActive, "subscription status (active, trialing, inactive, past_due)")
	c.Flags().DurationVar(&endsIn, "period", 30*24*time.Hour, "length of the assigned period; 0 leaves the end open")

	_ = c.MarkFlagRequired("tenant-id")
	_ = c.MarkFlagRequired("plan-id")

	return c
}

func assignInput(tenantID, planID, status string, endsIn time.Duration, now time.Time) (service.AssignPlanInput, uuid.UUID, error) {
	target, err := uuid.Parse(strings.TrimSpace(tenantID))
	if err != nil {
		return service.AssignPlanInput{}, uuid.Nil, fmt.Errorf("invalid tenant-id: %w", err)
	}
	plan, err := uuid.Parse(strings.TrimSpace(planID))
	if err != nil {
		return service.AssignPlanInput{}, uuid.Nil, fmt.Errorf("invalid plan-id: %w", err)
	}
	if endsIn < 0 {
		return service.AssignPlanInput{}, uuid.Nil, fmt.Errorf("period must not be negative")
	}

	input := service.AssignPlanInput{PlanID: plan, Status: strings.TrimSpace(status), CurrentPeriodStartsAt: &now}
	if endsIn > 0 {
		ends := now.Add(endsIn)
		input.CurrentPeriodEndsAt = &ends
	}
	return input, target, nil
}

// withService wires the tenants service against the database and runs fn as the configured superadmin.
func withService(ctx context.Context, flag string, fn func(ctx context.Context, svc service.Service, id auth.Identity) error) error {
	cfg, err := clienv.Load()
	if err != nil {
		return err
	}
	url, err := clienv.Pick("database url (--database-url or DATABASE_URL)", flag, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	rawSuperadmin, err := clienv.Pick("SUPERADMIN_USER_ID", "", cfg.SuperadminUserID)
	if err != nil {
		return err
	}
	superadminID, err := uuid.Parse(rawSuperadmin)
	if err != nil {
		return fmt.Errorf("invalid SUPERADMIN_USER_ID: %w", err)
	}

	pool, err := persistence.NewPool(ctx, persistence.PoolConfig{ConnString: url})
	if err != nil {
		return fmt.Errorf("init pool: %w", err)
	}
	defer persistence.ClosePool(pool)

	users := persistence.NewUserStore()
	svc := service.New(service.Config{
		Runner: persistence.NewBinder(pool),
		Repo: repo.NewPostgresRepository(repo.Stores{
			Tenants: persistence.NewTenantStore(),
			Roles:   persistence.NewRoleStore(),
			Users:   users,
			Plans:   persistence.NewPlanStore(),
			Audit:   persistence.NewAuditLogStore(),
		}),
		Admins:   access.NewGuard(users),
		Identity: identity.NewLocal(""),
		Logger:   zap.NewNop(),
	})

	ctx = requesttrace.IntoContext(ctx, requesttrace.System("cli"))
	return fn(ctx, svc, auth.Identity{UserID: superadminID, Superadmin: true, TermsAccepted: true})
}

func planOrDash(id *uuid.UUID) string {
	if id == nil {
		return "-"
	}
	return id.String()
}

func timeOrDash(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

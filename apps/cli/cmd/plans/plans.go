package planscmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zenGate-Global/tenantgate/apps/cli/cmd/clienv"
	"github.com/zenGate-Global/tenantgate/platform/go/entitlements"
	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
)

// Command groups plan catalogue helpers. Plans are global, so every command runs in a system session.
func Command() *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Manage subscription plans and their entitlements",
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection string; defaults to DATABASE_URL")

	cmd.AddCommand(createCommand(&databaseURL))
	cmd.AddCommand(listCommand(&databaseURL))
	return cmd
}

func createCommand(databaseURL *string) *cobra.Command {
	var (
		name        string
		description string
		productID   string
		priceID     string
		specs       []string
	)

	c := &cobra.Command{
		Use:   "create",
		Short: "Create a plan",
		Example: `  tenantgate plans create --name Pro --external-price-id price_123 \
    --entitlement max_users=LIMIT:25 --entitlement records=METER:10000 --entitlement reports=FLAG:1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := persistence.CreatePlanParams{
				Name:              strings.TrimSpace(name),
				Description:       strPtrOrNil(description),
				ExternalProductID: strPtrOrNil(productID),
				ExternalPriceID:   strPtrOrNil(priceID),
			}
			for _, spec := range specs {
				e, err := parseEntitlement(spec)
				if err != nil {
					return err
				}
				params.Entitlements = append(params.Entitlements, e)
			}

			var plan persistence.Plan
			err := withSystem(cmd.Context(), *databaseURL, func(ctx context.Context, s *persistence.Session) error {
				var err error
				plan, err = persistence.NewPlanStore().Create(ctx, s, params)
				return err
			})
			if err != nil {
				return fmt.Errorf("create plan: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Plan created: %s (%s)\n", plan.Name, plan.ID)
			return nil
		},
	}

	c.Flags().StringVar(&name, "name", "", "unique plan name")
	c.Flags().StringVar(&description, "description", "", "plan description")
	c.Flags().StringVar(&productID, "external-product-id", "", "payment provider product id")
	c.Flags().StringVar(&priceID, "external-price-id", "", "payment provider price id")
	c.Flags().StringArrayVar(&specs, "entitlement", nil, "feature entitlement as slug=TYPE:value (TYPE is FLAG, LIMIT or METER); repeatable")

	_ = c.MarkFlagRequired("name")

	return c
}

func listCommand(databaseURL *string) *cobra.Command {
	var activeOnly bool

	c := &cobra.Command{
		Use:   "list",
		Short: "List plans with their entitlements",
		RunE: func(cmd *cobra.Command, args []string) error {
			var plans []persistence.Plan
			err := withSystem(cmd.Context(), *databaseURL, func(ctx context.Context, s *persistence.Session) error {
				var err error
				plans, err = persistence.NewPlanStore().List(ctx, s, activeOnly)
				return err
			})
			if err != nil {
				return fmt.Errorf("list plans: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tACTIVE\tPRICE\tENTITLEMENTS")
			for _, p := range plans {
				fmt.Fprintf(w, "%s\t%s\t%t\t%s\t%s\n", p.ID, p.Name, p.IsActive, deref(p.ExternalPriceID), formatEntitlements(p.Entitlements))
			}
			return w.Flush()
		},
	}

	c.Flags().BoolVar(&activeOnly, "active", false, "only list active plans")
	return c
}

func withSystem(ctx context.Context, flag string, fn func(ctx context.Context, s *persistence.Session) error) error {
	url, err := clienv.DatabaseURL(flag)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	pool, err := persistence.NewPool(ctx, persistence.PoolConfig{ConnString: url})
	if err != nil {
		return fmt.Errorf("init pool: %w", err)
	}
	defer persistence.ClosePool(pool)

	return persistence.NewBinder(pool).WithSystem(ctx, func(s *persistence.Session) error {
		return fn(ctx, s)
	})
}

// parseEntitlement reads "slug=TYPE:value". FLAG entitlements default to value 1 when the value is omitted.
func parseEntitlement(raw string) (persistence.Entitlement, error) {
	slug, rest, ok := strings.Cut(strings.TrimSpace(raw), "=")
	if !ok || strings.TrimSpace(slug) == "" {
		return persistence.Entitlement{}, fmt.Errorf("entitlement %q: expected slug=TYPE:value", raw)
	}
	slug = strings.TrimSpace(slug)

	kind, value, hasValue := strings.Cut(rest, ":")
	kind = strings.ToUpper(strings.TrimSpace(kind))
	switch kind {
	case persistence.EntitlementFlag, persistence.EntitlementLimit, persistence.EntitlementMeter:
	default:
		return persistence.Entitlement{}, fmt.Errorf("entitlement %q: type must be FLAG, LIMIT or METER", raw)
	}

	e := persistence.Entitlement{FeatureSlug: slug, Type: kind, Value: 1}
	if !hasValue {
		if kind != persistence.EntitlementFlag {
			return persistence.Entitlement{}, fmt.Errorf("entitlement %q: %s requires a value", raw, kind)
		}
		return e, nil
	}

	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || n < 0 {
		return persistence.Entitlement{}, fmt.Errorf("entitlement %q: value must be a non-negative integer", raw)
	}
	e.Value = n
	if kind == persistence.EntitlementLimit && !knownLimit(slug) {
		return persistence.Entitlement{}, fmt.Errorf("entitlement %q: no counter is registered for LIMIT %s", raw, slug)
	}
	return e, nil
}

func knownLimit(slug string) bool {
	switch slug {
	case entitlements.FeatureMaxUsers, entitlements.FeatureMaxCustomObjects, entitlements.FeatureMaxAPIKeys:
		return true
	}
	return false
}

func formatEntitlements(list []persistence.Entitlement) string {
	parts := make([]string, 0, len(list))
	for _, e := range list {
		parts = append(parts, fmt.Sprintf("%s=%s:%d", e.FeatureSlug, e.Type, e.Value))
	}
	return strings.Join(parts, ",")
}

func strPtrOrNil(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	s = strings.TrimSpace(s)
	return &s
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

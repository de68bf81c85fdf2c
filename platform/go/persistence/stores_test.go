package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/zenGate-Global/tenantgate/platform/go/tenant"
)

type fixtureTenant struct {
	tenant Tenant
	admin  User
	role   Role
}

func seedTenant(t *testing.T, ctx context.Context, binder *Binder, slug string) fixtureTenant {
	t.Helper()

	var out fixtureTenant
	err := binder.WithSystem(ctx, func(s *Session) error {
		tenants, users, roles := NewTenantStore(), NewUserStore(), NewRoleStore()
		adminID := uuid.New()

		tn, err := tenants.Create(ctx, s, CreateTenantParams{ID: uuid.New(), Name: slug, Slug: slug, CreatedBy: adminID})
		if err != nil {
			return err
		}
		role, err := roles.Create(ctx, s, CreateRoleParams{TenantID: tn.ID, Name: "Admin", Permissions: 1<<24 - 1, IsAdminRole: true})
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		admin, err := users.Create(ctx, s, CreateUserParams{
			ID: adminID, Email: slug + "@example.com", TenantID: tn.ID, RoleID: role.ID, TermsAcceptedAt: &now,
		})
		if err != nil {
			return err
		}
		if err := tenants.SetAdminUser(ctx, s, tn.ID, admin.ID); err != nil {
			return err
		}
		out = fixtureTenant{tenant: tn, admin: admin, role: role}
		return nil
	})
	require.NoError(t, err)
	return out
}

func TestStoresIntegration(t *testing.T) {
	t.Parallel()

	binder := startTestDatabase(t)
	ctx := context.Background()

	acme := seedTenant(t, ctx, binder, "acme")
	beta := seedTenant(t, ctx, binder, "beta")
	acmeScope := tenant.ForUser(acme.admin.ID, acme.tenant.ID)

	t.Run("users are filtered to the session tenant", func(t *testing.T) {
		err := binder.WithScope(ctx, acmeScope, func(s *Session) error {
			users, total, err := NewUserStore().List(ctx, s, ListUsersParams{TenantID: acme.tenant.ID})
			require.NoError(t, err)
			require.Equal(t, 1, total)
			require.Equal(t, acme.admin.ID, users[0].ID)

			_, err = NewUserStore().Get(ctx, s, beta.admin.ID)
			require.ErrorIs(t, err, ErrUserNotFound)

			_, err = NewTenantStore().Get(ctx, s, beta.tenant.ID)
			require.ErrorIs(t, err, ErrTenantNotFound)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("own profile is visible before onboarding", func(t *testing.T) {
		loneID := uuid.New()
		require.NoError(t, binder.WithSystem(ctx, func(s *Session) error {
			_, err := NewUserStore().Create(ctx, s, CreateUserParams{ID: loneID, Email: "lone@example.com"})
			return err
		}))

		err := binder.WithScope(ctx, tenant.ForUser(loneID, uuid.Nil), func(s *Session) error {
			user, err := NewUserStore().Get(ctx, s, loneID)
			require.NoError(t, err)
			require.Nil(t, user.TenantID)
			require.False(t, user.TermsAccepted())
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("role with users cannot be deleted and names are unique", func(t *testing.T) {
		err := binder.WithScope(ctx, acmeScope, func(s *Session) error {
			return NewRoleStore().Delete(ctx, s, acme.role.ID)
		})
		require.ErrorIs(t, err, ErrRoleInUse)

		err = binder.WithScope(ctx, acmeScope, func(s *Session) error {
			_, err := NewRoleStore().Create(ctx, s, CreateRoleParams{TenantID: acme.tenant.ID, Name: "Admin"})
			return err
		})
		require.ErrorIs(t, err, ErrRoleConflict)

		err = binder.WithScope(ctx, acmeScope, func(s *Session) error {
			roles, err := NewRoleStore().List(ctx, s, acme.tenant.ID)
			require.NoError(t, err)
			require.Len(t, roles, 1)

			admins, err := NewUserStore().LockAdmins(ctx, s, acme.tenant.ID)
			require.NoError(t, err)
			require.Equal(t, []uuid.UUID{acme.admin.ID}, admins)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("api key lookup needs elevation across tenants", func(t *testing.T) {
		require.NoError(t, binder.WithSystem(ctx, func(s *Session) error {
			_, err := NewAPIKeyStore().Create(ctx, s, CreateAPIKeyParams{
				TenantID: beta.tenant.ID, UserID: beta.admin.ID, KeyPrefix: "sk_live_beta0001", HashedKey: "hash-beta",
			})
			return err
		}))

		err := binder.WithScope(ctx, acmeScope, func(s *Session) error {
			_, err := NewAPIKeyStore().FindByPrefix(ctx, s, "sk_live_beta0001")
			require.ErrorIs(t, err, ErrAPIKeyNotFound)

			return s.Elevate(ctx, func(elevated *Session) error {
				key, err := NewAPIKeyStore().FindByPrefix(ctx, elevated, "sk_live_beta0001")
				require.NoError(t, err)
				require.Equal(t, beta.tenant.ID, key.TenantID)
				return nil
			})
		})
		require.NoError(t, err)
	})

	t.Run("webhook claim is idempotent", func(t *testing.T) {
		err := binder.WithSystem(ctx, func(s *Session) error {
			events := NewWebhookEventStore()
			inserted, err := events.Claim(ctx, s, "stripe", "evt_1", "invoice.payment_failed", []byte(`{"id":"evt_1"}`))
			require.NoError(t, err)
			require.True(t, inserted)

			inserted, err = events.Claim(ctx, s, "stripe", "evt_1", "invoice.payment_failed", []byte(`{"id":"evt_1"}`))
			require.NoError(t, err)
			require.False(t, inserted)

			ev, err := events.Lock(ctx, s, "stripe", "evt_1")
			require.NoError(t, err)
			require.False(t, ev.ProcessedSuccessfully)

			require.NoError(t, events.MarkProcessed(ctx, s, "stripe", "evt_1", time.Now()))
			ev, err = events.Lock(ctx, s, "stripe", "evt_1")
			require.NoError(t, err)
			require.True(t, ev.ProcessedSuccessfully)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("usage sums only the window", func(t *testing.T) {
		end := time.Now().UTC().Truncate(time.Second)
		start := end.AddDate(0, -1, 0)

		err := binder.WithScope(ctx, acmeScope, func(s *Session) error {
			usage := NewUsageStore()
			require.NoError(t, usage.Record(ctx, s, acme.tenant.ID, "records", 50, start.Add(time.Hour)))
			require.NoError(t, usage.Record(ctx, s, acme.tenant.ID, "records", 30, end.Add(-time.Hour)))
			require.NoError(t, usage.Record(ctx, s, acme.tenant.ID, "records", 999, start.Add(-time.Hour)))

			total, err := usage.Sum(ctx, s, acme.tenant.ID, "records", start, end)
			require.NoError(t, err)
			require.EqualValues(t, 80, total)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("records round trip", func(t *testing.T) {
		err := binder.WithScope(ctx, acmeScope, func(s *Session) error {
			objects := NewCustomObjectStore()
			obj, err := objects.CreateObject(ctx, s, CreateObjectParams{TenantID: acme.tenant.ID, Name: "Deals", Slug: "deals", CreatedBy: acme.admin.ID})
			require.NoError(t, err)

			_, err = objects.CreateField(ctx, s, CreateFieldParams{
				ObjectID: obj.ID, TenantID: acme.tenant.ID, Name: "Stage", Slug: "stage", Type: "select",
				Options: []string{"open", "won"}, CreatedBy: acme.admin.ID,
			})
			require.NoError(t, err)

			loaded, err := objects.GetObjectBySlug(ctx, s, acme.tenant.ID, "deals")
			require.NoError(t, err)
			require.Len(t, loaded.Fields, 1)
			require.Equal(t, []string{"open", "won"}, loaded.Fields[0].Options)

			rec, err := objects.CreateRecord(ctx, s, CreateRecordParams{
				ObjectID: obj.ID, TenantID: acme.tenant.ID, Data: map[string]any{"stage": "open"}, CreatedBy: acme.admin.ID,
			})
			require.NoError(t, err)

			updated, err := objects.ReplaceRecordData(ctx, s, obj.ID, rec.ID, map[string]any{"stage": "won"}, acme.admin.ID)
			require.NoError(t, err)
			require.Equal(t, "won", updated.Data["stage"])

			require.NoError(t, objects.DeleteRecord(ctx, s, obj.ID, rec.ID))
			_, err = objects.GetRecord(ctx, s, obj.ID, rec.ID)
			require.ErrorIs(t, err, ErrRecordNotFound)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("items are tenant scoped and partially updated", func(t *testing.T) {
		var itemID uuid.UUID
		require.NoError(t, binder.WithScope(ctx, acmeScope, func(s *Session) error {
			item, err := NewItemStore().Create(ctx, s, CreateItemParams{
				TenantID: acme.tenant.ID, Name: " Widget ", Price: 1250, Quantity: 3, CreatedBy: acme.admin.ID,
			})
			require.NoError(t, err)
			require.Equal(t, "Widget", item.Name)
			require.Nil(t, item.ImagePath)
			itemID = item.ID

			path := "tenants/acme/items/" + item.ID.String() + ".png"
			updated, err := NewItemStore().Update(ctx, s, item.ID, UpdateItemParams{ImagePath: &path, UpdatedBy: acme.admin.ID})
			require.NoError(t, err)
			require.Equal(t, int64(1250), updated.Price)
			require.Equal(t, path, *updated.ImagePath)

			items, total, err := NewItemStore().List(ctx, s, acme.tenant.ID, 0, 0)
			require.NoError(t, err)
			require.Equal(t, 1, total)
			require.Len(t, items, 1)
			return nil
		}))

		betaScope := tenant.ForUser(beta.admin.ID, beta.tenant.ID)
		err := binder.WithScope(ctx, betaScope, func(s *Session) error {
			_, err := NewItemStore().Get(ctx, s, itemID)
			return err
		})
		require.ErrorIs(t, err, ErrItemNotFound)

		err = binder.WithScope(ctx, betaScope, func(s *Session) error {
			return NewItemStore().Delete(ctx, s, itemID)
		})
		require.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("customer emails are unique per tenant", func(t *testing.T) {
		email := "Buyer@Example.com"
		require.NoError(t, binder.WithScope(ctx, acmeScope, func(s *Session) error {
			c, err := NewCustomerStore().Create(ctx, s, CreateCustomerParams{
				TenantID: acme.tenant.ID, Name: "Buyer", Email: &email, Data: map[string]any{"tier": "gold"}, CreatedBy: acme.admin.ID,
			})
			require.NoError(t, err)
			require.Equal(t, "buyer@example.com", *c.Email)
			require.Equal(t, "gold", c.Data["tier"])
			return nil
		}))

		err := binder.WithScope(ctx, acmeScope, func(s *Session) error {
			_, err := NewCustomerStore().Create(ctx, s, CreateCustomerParams{TenantID: acme.tenant.ID, Name: "Again", Email: &email})
			return err
		})
		require.ErrorIs(t, err, ErrCustomerConflict)

		require.NoError(t, binder.WithScope(ctx, tenant.ForUser(beta.admin.ID, beta.tenant.ID), func(s *Session) error {
			_, err := NewCustomerStore().Create(ctx, s, CreateCustomerParams{TenantID: beta.tenant.ID, Name: "Buyer", Email: &email})
			require.NoError(t, err)

			customers, total, err := NewCustomerStore().List(ctx, s, beta.tenant.ID, 0, 10)
			require.NoError(t, err)
			require.Equal(t, 1, total)
			require.Equal(t, beta.tenant.ID, customers[0].TenantID)
			return nil
		}))
	})

	t.Run("failed unit of work rolls back", func(t *testing.T) {
		boom := errors.New("boom")
		err := binder.WithScope(ctx, acmeScope, func(s *Session) error {
			name := "Renamed"
			if _, err := NewTenantStore().Update(ctx, s, acme.tenant.ID, UpdateTenantParams{Name: &name, UpdatedBy: acme.admin.ID}); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		require.NoError(t, binder.WithScope(ctx, acmeScope, func(s *Session) error {
			tn, err := NewTenantStore().Get(ctx, s, acme.tenant.ID)
			require.NoError(t, err)
			require.Equal(t, "acme", tn.Name)
			return nil
		}))
	})
}

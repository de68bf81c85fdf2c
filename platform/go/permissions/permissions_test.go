package permissions

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEditorRoleRoundTrip(t *testing.T) {
	t.Parallel()

	set, err := Encode([]string{"ITEMS_READ", "ITEMS_UPDATE"})
	require.NoError(t, err)
	require.Equal(t, Set(ItemsRead)|Set(ItemsUpdate), set)
	require.Equal(t, []string{"ITEMS_READ", "ITEMS_UPDATE"}, set.Names())
}

func TestEncodeDecodeIsLosslessForEveryPermission(t *testing.T) {
	t.Parallel()

	for _, p := range All() {
		set, err := Encode([]string{p.String()})
		require.NoError(t, err)
		require.Equal(t, []string{p.String()}, set.Names())
	}
}

func TestTenantAdminCoversAllPermissions(t *testing.T) {
	t.Parallel()

	var union Set
	for _, p := range All() {
		require.True(t, TenantAdmin.Has(p), p.String())
		union |= Set(p)
	}
	require.Equal(t, union, TenantAdmin)
	require.Len(t, All(), 24)
}

func TestBitValuesAreStable(t *testing.T) {
	t.Parallel()

	require.EqualValues(t, 1, UsersRead)
	require.EqualValues(t, 1<<8, ItemsRead)
	require.EqualValues(t, 1<<16, RecordsCreate)
	require.EqualValues(t, 1<<23, CustomersDelete)
}

func TestEncodeUnknownPermission(t *testing.T) {
	t.Parallel()

	_, err := Encode([]string{"ITEMS_READ", "LAUNCH_MISSILES"})
	require.Error(t, err)
}

func TestHasRequiresEveryBit(t *testing.T) {
	t.Parallel()

	set := Of(UsersRead, RolesRead)
	require.True(t, set.Has(UsersRead))
	require.False(t, set.Has(UsersDelete))
}

func TestCatalogueGroupsByResource(t *testing.T) {
	t.Parallel()

	groups := Catalogue()
	require.Len(t, groups, 6)
	require.Equal(t, "Users", groups[0].Name)
	require.Equal(t, "Custom Objects", groups[3].Name)
	require.Len(t, groups[3].Permissions, 4)

	total := 0
	for _, g := range groups {
		total += len(g.Permissions)
	}
	require.Equal(t, len(All()), total)
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Can invite users", Describe(UsersInvite))
	require.Equal(t, "Can change the role of users", Describe(UsersUpdateRole))
	require.Equal(t, "Can view custom objects", Describe(CustomObjectsRead))
}

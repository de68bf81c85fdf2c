package permissions

import (
	"fmt"
	"math/bits"
	"sort"
	"strings"
)

// Permission is a single capability bit.
type Permission int64

// Set is a bitmask of permissions as stored in user_roles.permission_set.
type Set int64

// Bit values are part of the stored data format and must never be renumbered.
const (
	UsersRead       Permission = 1 << 0
	UsersInvite     Permission = 1 << 1
	UsersUpdateRole Permission = 1 << 2
	UsersDelete     Permission = 1 << 3

	RolesRead   Permission = 1 << 4
	RolesCreate Permission = 1 << 5
	RolesUpdate Permission = 1 << 6
	RolesDelete Permission = 1 << 7

	ItemsRead   Permission = 1 << 8
	ItemsCreate Permission = 1 << 9
	ItemsUpdate Permission = 1 << 10
	ItemsDelete Permission = 1 << 11

	CustomObjectsCreate Permission = 1 << 12
	CustomObjectsRead   Permission = 1 << 13
	CustomObjectsUpdate Permission = 1 << 14
	CustomObjectsDelete Permission = 1 << 15

	RecordsCreate Permission = 1 << 16
	RecordsRead   Permission = 1 << 17
	RecordsUpdate Permission = 1 << 18
	RecordsDelete Permission = 1 << 19

	CustomersCreate Permission = 1 << 20
	CustomersRead   Permission = 1 << 21
	CustomersUpdate Permission = 1 << 22
	CustomersDelete Permission = 1 << 23
)

// TenantAdmin is granted to the Admin role created during onboarding.
const TenantAdmin Set = 1<<24 - 1

var names = map[Permission]string{
	UsersRead:           "USERS_READ",
	UsersInvite:         "USERS_INVITE",
	UsersUpdateRole:     "USERS_UPDATE_ROLE",
	UsersDelete:         "USERS_DELETE",
	RolesRead:           "ROLES_READ",
	RolesCreate:         "ROLES_CREATE",
	RolesUpdate:         "ROLES_UPDATE",
	RolesDelete:         "ROLES_DELETE",
	ItemsRead:           "ITEMS_READ",
	ItemsCreate:         "ITEMS_CREATE",
	ItemsUpdate:         "ITEMS_UPDATE",
	ItemsDelete:         "ITEMS_DELETE",
	CustomObjectsCreate: "CUSTOM_OBJECTS_CREATE",
	CustomObjectsRead:   "CUSTOM_OBJECTS_READ",
	CustomObjectsUpdate: "CUSTOM_OBJECTS_UPDATE",
	CustomObjectsDelete: "CUSTOM_OBJECTS_DELETE",
	RecordsCreate:       "RECORDS_CREATE",
	RecordsRead:         "RECORDS_READ",
	RecordsUpdate:       "RECORDS_UPDATE",
	RecordsDelete:       "RECORDS_DELETE",
	CustomersCreate:     "CUSTOMERS_CREATE",
	CustomersRead:       "CUSTOMERS_READ",
	CustomersUpdate:     "CUSTOMERS_UPDATE",
	CustomersDelete:     "CUSTOMERS_DELETE",
}

var byName = func() map[string]Permission {
	m := make(map[string]Permission, len(names))
	for p, n := range names {
		m[n] = p
	}
	return m
}()

func (p Permission) String() string {
	if n, ok := names[p]; ok {
		return n
	}
	return fmt.Sprintf("PERMISSION(%d)", int64(p))
}

// Parse resolves a permission by its wire name (case-insensitive).
func Parse(name string) (Permission, error) {
	p, ok := byName[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown permission %q", name)
	}
	return p, nil
}

// All returns every defined permission ordered by bit.
func All() []Permission {
	out := make([]Permission, 0, len(names))
	for p := range names {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Encode folds permission names into a Set.
func Encode(list []string) (Set, error) {
	var s Set
	for _, name := range list {
		p, err := Parse(name)
		if err != nil {
			return 0, err
		}
		s |= Set(p)
	}
	return s, nil
}

// Of builds a Set from permissions.
func Of(ps ...Permission) Set {
	var s Set
	for _, p := range ps {
		s |= Set(p)
	}
	return s
}

// Has reports whether every bit of p is present.
func (s Set) Has(p Permission) bool {
	return Set(p)&s == Set(p)
}

// Names decodes the set into wire names ordered by bit. Unknown bits are ignored.
func (s Set) Names() []string {
	out := make([]string, 0, bits.OnesCount64(uint64(s)))
	for _, p := range All() {
		if s.Has(p) {
			out = append(out, names[p])
		}
	}
	return out
}

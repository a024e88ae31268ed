package navigation_test

import (
	"testing"

	"github.com/veinsight/portal-backend/internal/identity"
	"github.com/veinsight/portal-backend/internal/navigation"
	"github.com/veinsight/portal-backend/internal/routes"
)

// Every sidebar link must point at a route the role is actually allowed to
// enter; a menu item that leads to a denial screen is a bug.
func TestNavigationTargetsAreReachable(t *testing.T) {
	for _, role := range identity.AllRoles() {
		entries := navigation.ForRole(role)
		if len(entries) == 0 {
			t.Fatalf("role %q has no navigation", role)
		}
		for _, e := range entries {
			if _, ok := routes.Lookup(e.Href); !ok {
				t.Errorf("%s: nav entry %q points at unknown route %q", role, e.Label, e.Href)
				continue
			}
			if !routes.Allows(e.Href, role) {
				t.Errorf("%s: nav entry %q points at %q which denies the role", role, e.Label, e.Href)
			}
		}
	}
}

func TestNavigationForUnknownRoleIsEmpty(t *testing.T) {
	if entries := navigation.ForRole(identity.RoleUnknown); entries != nil {
		t.Fatalf("unknown role should have no navigation, got %d entries", len(entries))
	}
}

func TestEveryRoleLinksDiseaseLibrary(t *testing.T) {
	for _, role := range identity.AllRoles() {
		found := false
		for _, e := range navigation.ForRole(role) {
			if e.Href == "/diseases" {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("role %q is missing the disease library link", role)
		}
	}
}

func TestDashboardIsFirstEntry(t *testing.T) {
	for _, role := range identity.AllRoles() {
		entries := navigation.ForRole(role)
		if entries[0].Label != "Dashboard" {
			t.Errorf("role %q: first entry = %q, want Dashboard", role, entries[0].Label)
		}
		if entries[0].Href != "/"+role.String() {
			t.Errorf("role %q: dashboard href = %q", role, entries[0].Href)
		}
	}
}

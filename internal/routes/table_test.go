package routes

import (
	"strings"
	"testing"

	"github.com/veinsight/portal-backend/internal/identity"
)

func TestPublicRoutesAdmitEveryone(t *testing.T) {
	public := []string{"/", "/auth", "/diseases", "/diseases/:id"}
	for _, path := range public {
		for _, role := range identity.AllRoles() {
			if !Allows(path, role) {
				t.Errorf("%s should admit %q", path, role)
			}
		}
		if !Allows(path, identity.RoleUnknown) {
			t.Errorf("%s should admit anonymous visitors", path)
		}
	}
}

func TestAreaRoutesAdmitOnlyTheirRole(t *testing.T) {
	for _, rd := range Table {
		if len(rd.AllowedRoles) == 0 {
			continue
		}
		owner, ok := strings.CutPrefix(rd.Path, "/")
		if !ok {
			t.Fatalf("unexpected path %q", rd.Path)
		}
		if i := strings.Index(owner, "/"); i >= 0 {
			owner = owner[:i]
		}

		for _, role := range identity.AllRoles() {
			got := Allows(rd.Path, role)
			want := role.String() == owner
			if got != want {
				t.Errorf("Allows(%q, %q) = %v, want %v", rd.Path, role, got, want)
			}
		}
		if Allows(rd.Path, identity.RoleUnknown) {
			t.Errorf("%s must not admit the unknown role", rd.Path)
		}
	}
}

func TestLookupUnknownPath(t *testing.T) {
	if _, ok := Lookup("/admin"); ok {
		t.Fatal("there is no admin area")
	}
	if Allows("/nope", identity.RoleDoctor) {
		t.Fatal("unknown paths admit nobody")
	}
}

package dto

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/veinsight/portal-backend/internal/identity"
)

// An authenticated account without a role must serialize role as null, not
// omit it: the SPA distinguishes "no role yet" from "field missing".
func TestSessionResponseRoleNull(t *testing.T) {
	id := identity.Identity{User: &identity.User{ID: uuid.New(), Email: "a@b.c"}}

	raw, err := json.Marshal(NewSessionResponse(id))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"role":null`) {
		t.Fatalf("expected role:null, got %s", raw)
	}
}

func TestSessionResponseWithRole(t *testing.T) {
	id := identity.Identity{
		User: &identity.User{ID: uuid.New(), Email: "a@b.c"},
		Role: identity.RoleNurse,
	}

	resp := NewSessionResponse(id)
	if resp.Role == nil || *resp.Role != "nurse" {
		t.Fatalf("role = %v, want nurse", resp.Role)
	}
	if resp.Loading {
		t.Fatal("loading should default to false")
	}
}

func TestSessionResponseSignedOut(t *testing.T) {
	raw, err := json.Marshal(NewSessionResponse(identity.Identity{}))
	if err != nil {
		t.Fatal(err)
	}
	s := string(raw)
	if !strings.Contains(s, `"user":null`) || !strings.Contains(s, `"role":null`) {
		t.Fatalf("signed-out snapshot should null user and role, got %s", s)
	}
}

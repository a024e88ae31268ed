package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestEvaluate(t *testing.T) {
	user := &User{ID: uuid.New(), Email: "a@b.c"}

	tests := []struct {
		name    string
		id      Identity
		allowed []Role
		want    Decision
	}{
		{
			name:    "loading wins over everything",
			id:      Identity{Loading: true},
			allowed: []Role{RoleDoctor},
			want:    DecisionPending,
		},
		{
			name:    "loading with user still pending",
			id:      Identity{User: user, Role: RoleDoctor, Loading: true},
			allowed: []Role{RoleDoctor},
			want:    DecisionPending,
		},
		{
			name:    "no user",
			id:      Identity{},
			allowed: []Role{RoleDoctor},
			want:    DecisionDeniedUnauth,
		},
		{
			name:    "authenticated without role",
			id:      Identity{User: user},
			allowed: []Role{RoleDoctor},
			want:    DecisionDeniedWrongRole,
		},
		{
			name:    "wrong role",
			id:      Identity{User: user, Role: RolePatient},
			allowed: []Role{RoleDoctor},
			want:    DecisionDeniedWrongRole,
		},
		{
			name:    "matching role",
			id:      Identity{User: user, Role: RoleDoctor},
			allowed: []Role{RoleDoctor},
			want:    DecisionAdmitted,
		},
		{
			name:    "matches one of several",
			id:      Identity{User: user, Role: RoleNurse},
			allowed: []Role{RoleDoctor, RoleNurse},
			want:    DecisionAdmitted,
		},
		{
			name:    "invalid role never admitted",
			id:      Identity{User: user, Role: Role("admin")},
			allowed: []Role{RoleDoctor, RoleNurse, RolePatient},
			want:    DecisionDeniedWrongRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.id, tt.allowed...); got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

// A signed-out user and an unrolled user must be told apart: the first is
// bounced to sign-in, the second to not-authorized.
func TestEvaluateDistinguishesUnauthFromRoleless(t *testing.T) {
	signedOut := Evaluate(Identity{}, RoleDoctor)
	roleless := Evaluate(Identity{User: &User{ID: uuid.New()}}, RoleDoctor)

	if signedOut != DecisionDeniedUnauth {
		t.Fatalf("signed out: got %v, want %v", signedOut, DecisionDeniedUnauth)
	}
	if roleless != DecisionDeniedWrongRole {
		t.Fatalf("roleless: got %v, want %v", roleless, DecisionDeniedWrongRole)
	}
}

func TestDecisionString(t *testing.T) {
	cases := map[Decision]string{
		DecisionPending:         "pending",
		DecisionDeniedUnauth:    "denied_unauth",
		DecisionDeniedWrongRole: "denied_wrong_role",
		DecisionAdmitted:        "admitted",
	}
	for d, want := range cases {
		if got := d.String(); got != want {
			t.Errorf("Decision(%d).String() = %q, want %q", d, got, want)
		}
	}
}

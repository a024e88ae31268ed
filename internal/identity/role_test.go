package identity

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Role
		wantErr bool
	}{
		{"doctor", "doctor", RoleDoctor, false},
		{"patient", "patient", RolePatient, false},
		{"nurse", "nurse", RoleNurse, false},
		{"uppercase", "DOCTOR", RoleDoctor, false},
		{"whitespace", "  nurse \n", RoleNurse, false},
		{"empty", "", RoleUnknown, true},
		{"unknown", "admin", RoleUnknown, true},
		{"garbage", "doct0r", RoleUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRole(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRole(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range AllRoles() {
		if !r.Valid() {
			t.Errorf("%q should be valid", r)
		}
	}
	if RoleUnknown.Valid() {
		t.Error("unknown role must not be valid")
	}
	if Role("admin").Valid() {
		t.Error("arbitrary role string must not be valid")
	}
}

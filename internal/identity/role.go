package identity

import (
	"fmt"
	"strings"
)

// Role is the closed set of portal roles. Every user is assigned exactly one
// role at sign-up and it never changes afterward.
type Role string

const (
	// RoleUnknown is the zero value: the user is authenticated but no role
	// row exists for them (e.g. the role write failed during sign-up).
	RoleUnknown Role = ""

	RoleDoctor  Role = "doctor"
	RoleNurse   Role = "nurse"
	RolePatient Role = "patient"
)

// ParseRole is the single validation boundary for role values leaving the
// role directory or arriving in requests.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleDoctor:
		return RoleDoctor, nil
	case RoleNurse:
		return RoleNurse, nil
	case RolePatient:
		return RolePatient, nil
	}
	return RoleUnknown, fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	return r == RoleDoctor || r == RoleNurse || r == RolePatient
}

func (r Role) String() string { return string(r) }

// AllRoles returns the three portal roles in display order.
func AllRoles() []Role {
	return []Role{RoleDoctor, RoleNurse, RolePatient}
}

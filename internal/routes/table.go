package routes

import "github.com/veinsight/portal-backend/internal/identity"

// RouteDescriptor maps an SPA path to the roles allowed through its guard.
// Empty AllowedRoles means the route is public.
type RouteDescriptor struct {
	Path         string
	AllowedRoles []identity.Role
}

// Table mirrors the SPA's route tree. It is the single source of truth the
// navigation tests check sidebar links against.
var Table = []RouteDescriptor{
	{Path: "/"},
	{Path: "/auth"},
	{Path: "/diseases"},
	{Path: "/diseases/:id"},

	{Path: "/doctor", AllowedRoles: []identity.Role{identity.RoleDoctor}},
	{Path: "/doctor/patients", AllowedRoles: []identity.Role{identity.RoleDoctor}},
	{Path: "/doctor/appointments", AllowedRoles: []identity.Role{identity.RoleDoctor}},
	{Path: "/doctor/reports", AllowedRoles: []identity.Role{identity.RoleDoctor}},
	{Path: "/doctor/vein-analysis", AllowedRoles: []identity.Role{identity.RoleDoctor}},
	{Path: "/doctor/prescriptions", AllowedRoles: []identity.Role{identity.RoleDoctor}},
	{Path: "/doctor/diet-plans", AllowedRoles: []identity.Role{identity.RoleDoctor}},

	{Path: "/nurse", AllowedRoles: []identity.Role{identity.RoleNurse}},
	{Path: "/nurse/queue", AllowedRoles: []identity.Role{identity.RoleNurse}},
	{Path: "/nurse/injection", AllowedRoles: []identity.Role{identity.RoleNurse}},
	{Path: "/nurse/vitals", AllowedRoles: []identity.Role{identity.RoleNurse}},
	{Path: "/nurse/procedures", AllowedRoles: []identity.Role{identity.RoleNurse}},

	{Path: "/patient", AllowedRoles: []identity.Role{identity.RolePatient}},
	{Path: "/patient/appointments", AllowedRoles: []identity.Role{identity.RolePatient}},
	{Path: "/patient/reports", AllowedRoles: []identity.Role{identity.RolePatient}},
	{Path: "/patient/scans", AllowedRoles: []identity.Role{identity.RolePatient}},
	{Path: "/patient/history", AllowedRoles: []identity.Role{identity.RolePatient}},
	{Path: "/patient/wellness", AllowedRoles: []identity.Role{identity.RolePatient}},
}

// Lookup returns the descriptor for an exact path.
func Lookup(path string) (RouteDescriptor, bool) {
	for _, rd := range Table {
		if rd.Path == path {
			return rd, true
		}
	}
	return RouteDescriptor{}, false
}

// Allows reports whether the route at path admits the role. Public routes
// admit every role including the unknown one.
func Allows(path string, role identity.Role) bool {
	rd, ok := Lookup(path)
	if !ok {
		return false
	}
	if len(rd.AllowedRoles) == 0 {
		return true
	}
	for _, r := range rd.AllowedRoles {
		if r == role {
			return true
		}
	}
	return false
}

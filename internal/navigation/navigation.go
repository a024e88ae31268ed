// Package navigation holds the per-role sidebar definitions served to the SPA.
package navigation

import "github.com/veinsight/portal-backend/internal/identity"

// Entry is one sidebar link. Icon names follow the lucide icon set the
// frontend renders with.
type Entry struct {
	Label string `json:"label"`
	Href  string `json:"href"`
	Icon  string `json:"icon"`
}

var doctorNav = []Entry{
	{Label: "Dashboard", Href: "/doctor", Icon: "home"},
	{Label: "My Patients", Href: "/doctor/patients", Icon: "users"},
	{Label: "Appointments", Href: "/doctor/appointments", Icon: "calendar"},
	{Label: "Reports & Images", Href: "/doctor/reports", Icon: "file-text"},
	{Label: "Vein Analysis", Href: "/doctor/vein-analysis", Icon: "scan"},
	{Label: "Prescriptions", Href: "/doctor/prescriptions", Icon: "pill"},
	{Label: "Diet Plans", Href: "/doctor/diet-plans", Icon: "apple"},
	{Label: "Disease Library", Href: "/diseases", Icon: "book-open"},
}

var nurseNav = []Entry{
	{Label: "Dashboard", Href: "/nurse", Icon: "home"},
	{Label: "Appointment Queue", Href: "/nurse/queue", Icon: "clock"},
	{Label: "Injection Assistance", Href: "/nurse/injection", Icon: "syringe"},
	{Label: "Patient Vitals", Href: "/nurse/vitals", Icon: "heart-pulse"},
	{Label: "Procedure History", Href: "/nurse/procedures", Icon: "history"},
	{Label: "Disease Library", Href: "/diseases", Icon: "book-open"},
}

var patientNav = []Entry{
	{Label: "Dashboard", Href: "/patient", Icon: "home"},
	{Label: "My Appointments", Href: "/patient/appointments", Icon: "calendar"},
	{Label: "My Reports", Href: "/patient/reports", Icon: "file-text"},
	{Label: "My Vein Scans", Href: "/patient/scans", Icon: "scan"},
	{Label: "Health History", Href: "/patient/history", Icon: "history"},
	{Label: "Diet & Wellness", Href: "/patient/wellness", Icon: "apple"},
	{Label: "Disease Library", Href: "/diseases", Icon: "book-open"},
}

// ForRole returns the sidebar for a role. Unknown roles get an empty menu.
func ForRole(role identity.Role) []Entry {
	switch role {
	case identity.RoleDoctor:
		return doctorNav
	case identity.RoleNurse:
		return nurseNav
	case identity.RolePatient:
		return patientNav
	default:
		return nil
	}
}

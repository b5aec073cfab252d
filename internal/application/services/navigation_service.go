package services

import "github.com/mediqueue/backend/internal/domain/entities"

var (
	homeLink = entities.NavLink{Href: "/", Label: "Home"}

	anonymousLinks = []entities.NavLink{
		homeLink,
		{Href: "/login", Label: "Login"},
		{Href: "/signup", Label: "Sign Up"},
	}

	roleLinks = map[entities.Role][]entities.NavLink{
		entities.RolePatient: {
			{Href: "/patient/book-appointment", Label: "Book Appointment"},
			{Href: "/patient/appointment-history", Label: "Appointment History"},
			{Href: "/patient/find-hospital", Label: "Find Nearby Hospital"},
			{Href: "/patient/find-pharmacy", Label: "Find Pharmacy"},
			{Href: "/patient/bed-availability", Label: "Bed Availability"},
			{Href: "/patient/symptom-checker", Label: "Symptom Checker"},
		},
		entities.RoleDoctor: {
			{Href: "/doctor/schedule", Label: "My Schedule"},
		},
		entities.RoleAdmin: {
			{Href: "/admin/manage-doctors", Label: "Manage Doctors"},
			{Href: "/admin/manage-departments", Label: "Manage Departments"},
			{Href: "/admin/bed-availability", Label: "Bed Availability"},
			{Href: "/admin/admissions", Label: "Admissions"},
			{Href: "/admin/opd-queue", Label: "OPD Queue"},
			{Href: "/admin/smart-slot-allocation", Label: "Smart Slots"},
			{Href: "/admin/ambulance-services", Label: "Ambulance Services"},
			{Href: "/admin/settings", Label: "System Settings"},
		},
	}
)

// NavigationService builds the menu for a session
type NavigationService struct{}

// NewNavigationService creates a new navigation service
func NewNavigationService() *NavigationService {
	return &NavigationService{}
}

// Links returns the navigation entries available to the session's role
func (s *NavigationService) Links(session entities.Session) []entities.NavLink {
	extra, ok := roleLinks[session.Role]
	if !ok {
		return append([]entities.NavLink(nil), anonymousLinks...)
	}

	links := make([]entities.NavLink, 0, len(extra)+2)
	links = append(links, homeLink, entities.NavLink{Href: "/" + string(session.Role) + "/dashboard", Label: "Dashboard"})
	return append(links, extra...)
}

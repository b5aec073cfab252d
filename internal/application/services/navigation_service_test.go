package services

import (
	"testing"

	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hrefs(links []entities.NavLink) []string {
	out := make([]string, 0, len(links))
	for _, link := range links {
		out = append(out, link.Href)
	}
	return out
}

func TestNavigationService_Links(t *testing.T) {
	svc := NewNavigationService()

	t.Run("anonymous", func(t *testing.T) {
		assert.Equal(t, []string{"/", "/login", "/signup"}, hrefs(svc.Links(entities.AnonymousSession())))
	})

	t.Run("unknown role falls back to anonymous", func(t *testing.T) {
		assert.Equal(t, []string{"/", "/login", "/signup"}, hrefs(svc.Links(entities.Session{Role: "nurse"})))
	})

	t.Run("doctor", func(t *testing.T) {
		links := svc.Links(entities.Session{UserID: "dr_smith_cardio", Role: entities.RoleDoctor})
		assert.Equal(t, []string{"/", "/doctor/dashboard", "/doctor/schedule"}, hrefs(links))
	})

	t.Run("patient", func(t *testing.T) {
		links := svc.Links(entities.Session{UserID: "patient-demo", Role: entities.RolePatient})
		require.Len(t, links, 8)
		assert.Equal(t, "/patient/dashboard", links[1].Href)
		assert.Equal(t, entities.NavLink{Href: "/patient/symptom-checker", Label: "Symptom Checker"}, links[7])
	})

	t.Run("admin", func(t *testing.T) {
		links := svc.Links(entities.Session{UserID: "admin-demo", Role: entities.RoleAdmin})
		require.Len(t, links, 10)
		assert.Equal(t, "/admin/dashboard", links[1].Href)
		assert.Equal(t, "/admin/settings", links[9].Href)
	})

	t.Run("callers cannot mutate the shared menu", func(t *testing.T) {
		links := svc.Links(entities.AnonymousSession())
		links[0].Label = "Changed"
		assert.Equal(t, "Home", svc.Links(entities.AnonymousSession())[0].Label)
	})
}

// internal/app/features/survey/routes.go
package survey

import (
	"github.com/dalemusser/youthportal/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the questionnaire (typically at "/me/survey"). Only accounts
// that may enter the dashboard can read or submit it.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Use(sm.RequireDashboard)
	r.Get("/", h.ServeSurvey)
	r.Post("/", h.HandleSave)
	return r
}

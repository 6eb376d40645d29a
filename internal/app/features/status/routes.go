// internal/app/features/status/routes.go
package status

import (
	"github.com/dalemusser/youthportal/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the account status endpoints (typically at "/account/status").
// Unlike the dashboards, these are open to every signed-in account.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Get("/", h.ServeStatus)
	r.Get("/stream", h.ServeStream)
	return r
}

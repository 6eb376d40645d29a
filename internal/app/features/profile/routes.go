// internal/app/features/profile/routes.go
package profile

import (
	"github.com/dalemusser/youthportal/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the account's own endpoints (typically at "/me").
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Get("/", h.ServeMe)
	r.Put("/profile", h.HandleUpdateProfile)
	return r
}

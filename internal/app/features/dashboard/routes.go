// internal/app/features/dashboard/routes.go
package dashboard

import (
	"github.com/dalemusser/youthportal/internal/app/system/auth"
	"github.com/dalemusser/youthportal/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes wires the dashboard under whatever mount point the top-level
// router chooses (e.g., "/dashboard"). Only sessions approved at sign-in
// and still approved get in.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireDashboard)
		pr.Get("/", h.ServeDashboard)
	})
	return r
}

// AdminRoutes wires the admin figures (typically at "/admin").
func AdminRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.UserTypeAdmin))
		pr.Use(sm.RequireDashboard)
		pr.Get("/dashboard", h.ServeAdmin)
		pr.Get("/stats", h.ServeStats)
	})
	return r
}

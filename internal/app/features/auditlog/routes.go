// internal/app/features/auditlog/routes.go
package auditlog

import (
	"github.com/dalemusser/youthportal/internal/app/system/auth"
	"github.com/dalemusser/youthportal/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all audit log routes under the path where this
// router is mounted (typically "/admin/audit" from bootstrap).
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.UserTypeAdmin))
		pr.Use(sm.RequireDashboard)

		pr.Get("/", h.ServeList)
	})

	return r
}

// internal/app/features/adminaccounts/routes.go
package adminaccounts

import (
	"github.com/dalemusser/youthportal/internal/app/system/auth"
	"github.com/dalemusser/youthportal/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the admin account routes (typically at "/admin/accounts").
// Only approved admins whose session was approved at sign-in get through.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Use(sm.RequireRole(models.UserTypeAdmin))
	r.Use(sm.RequireDashboard)

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeDetail)
	r.Post("/{id}/approve", h.HandleApprove)
	r.Post("/{id}/reject", h.HandleReject)
	r.Delete("/{id}", h.HandleDelete)
	return r
}

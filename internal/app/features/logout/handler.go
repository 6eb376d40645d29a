// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	uierrors "github.com/dalemusser/youthportal/internal/app/features/errors"
	"github.com/dalemusser/youthportal/internal/app/system/access"
	"github.com/dalemusser/youthportal/internal/app/system/approval"
	"github.com/dalemusser/youthportal/internal/app/system/auditlog"
	"github.com/dalemusser/youthportal/internal/app/system/auth"
	"github.com/dalemusser/youthportal/internal/app/system/gateway"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Gateway    *gateway.Gateway
	Cache      *approval.SurveyCache
}

func NewHandler(sessionMgr *auth.SessionManager, gw *gateway.Gateway, cache *approval.SurveyCache, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Gateway:    gw,
		Cache:      cache,
	}
}

type logoutResponse struct {
	Destination access.Destination `json:"destination"`
}

// ServeLogout handles POST /logout.
// Signing out without a session succeeds; failures are logged, never returned.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		h.Gateway.Logout(r.Context(), auditlog.FromRequest(r), u.ID)
		if u.IsAdmin() {
			h.Cache.ForgetAdmin(u.ID)
		}
	}

	if err := h.SessionMgr.Destroy(w, r); err != nil {
		h.Log.Error("logout: save session", zap.Error(err))
	}

	// HTMX handling: use HX-Redirect to force a client-side navigation to login.
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", string(access.Login))
	}
	uierrors.WriteJSON(w, http.StatusOK, logoutResponse{Destination: access.Login})
}

// internal/app/features/login/handler.go
package login

import (
	"net/http"

	uierrors "github.com/dalemusser/youthportal/internal/app/features/errors"
	"github.com/dalemusser/youthportal/internal/app/system/access"
	"github.com/dalemusser/youthportal/internal/app/system/apperr"
	"github.com/dalemusser/youthportal/internal/app/system/auditlog"
	"github.com/dalemusser/youthportal/internal/app/system/auth"
	"github.com/dalemusser/youthportal/internal/app/system/gateway"
	"github.com/dalemusser/youthportal/internal/domain/models"
	"go.uber.org/zap"
)

type Handler struct {
	Gateway    *gateway.Gateway
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(gw *gateway.Gateway, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Gateway:    gw,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Log:        logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse is returned by every endpoint that starts a session.
type SessionResponse struct {
	Account     models.Account     `json:"account"`
	Destination access.Destination `json:"destination"`
}

// HandleLoginPost handles POST /login.
//
// On success the session cookie is set and the body carries the account and
// where it should go next. A valid credential without an account record
// ends any existing session and answers 404.
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := uierrors.DecodeJSON(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "login: decode body", err, "Invalid request body.")
		return
	}

	acct, err := h.Gateway.Login(r.Context(), auditlog.FromRequest(r), req.Email, req.Password)
	if err != nil {
		if apperr.IsNotFound(err) {
			if derr := h.SessionMgr.Destroy(w, r); derr != nil {
				h.Log.Warn("login: clear session", zap.Error(derr))
			}
		}
		h.ErrLog.Write(w, r, "login failed", err)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, acct); err != nil {
		h.ErrLog.LogServerError(w, r, "login: save session", err, "")
		return
	}

	h.Log.Info("user signed in",
		zap.String("user_id", acct.ID),
		zap.String("status", acct.Status))
	uierrors.WriteJSON(w, http.StatusOK, SessionResponse{
		Account:     acct,
		Destination: access.RouteAccount(acct),
	})
}

// internal/app/features/register/handler.go
package register

import (
	"net/http"

	uierrors "github.com/dalemusser/youthportal/internal/app/features/errors"
	"github.com/dalemusser/youthportal/internal/app/features/login"
	"github.com/dalemusser/youthportal/internal/app/system/access"
	"github.com/dalemusser/youthportal/internal/app/system/auditlog"
	"github.com/dalemusser/youthportal/internal/app/system/auth"
	"github.com/dalemusser/youthportal/internal/app/system/gateway"
	"go.uber.org/zap"
)

type Handler struct {
	Gateway    *gateway.Gateway
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(gw *gateway.Gateway, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Gateway: gw, SessionMgr: sessionMgr, ErrLog: errLog, Log: logger}
}

// HandleRegister handles POST /register.
//
// A new account is pending until an admin acts on it. The caller is signed
// in right away so the waiting page can follow its status.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in gateway.RegisterInput
	if err := uierrors.DecodeJSON(r, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "register: decode body", err, "Invalid request body.")
		return
	}

	acct, err := h.Gateway.Register(r.Context(), auditlog.FromRequest(r), in)
	if err != nil {
		h.ErrLog.Write(w, r, "registration failed", err)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, acct); err != nil {
		// the account exists; the user can still sign in by hand
		h.Log.Warn("register: save session", zap.String("user_id", acct.ID), zap.Error(err))
	}

	h.Log.Info("account registered", zap.String("user_id", acct.ID))
	uierrors.WriteJSON(w, http.StatusCreated, login.SessionResponse{
		Account:     acct,
		Destination: access.RouteAccount(acct),
	})
}

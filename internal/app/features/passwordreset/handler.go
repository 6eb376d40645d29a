// internal/app/features/passwordreset/handler.go
package passwordreset

import (
	"net/http"
	"time"

	uierrors "github.com/dalemusser/youthportal/internal/app/features/errors"
	"github.com/dalemusser/youthportal/internal/app/system/apperr"
	"github.com/dalemusser/youthportal/internal/app/system/auditlog"
	"github.com/dalemusser/youthportal/internal/app/system/gateway"
	"github.com/dalemusser/youthportal/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

const (
	MsgResetSent    = "If an account exists for that email, a password reset link has been sent."
	MsgResetDone    = "Your password has been updated. Please sign in."
	requestsPerIP   = 5
	requestInterval = 15 * time.Minute
)

type Handler struct {
	Gateway *gateway.Gateway
	Limiter *ratelimit.Limiter
	ErrLog  *uierrors.ErrorLogger
	Log     *zap.Logger
}

// NewHandler builds the handler with a per-IP limit on reset requests.
// Call Stop when the server shuts down.
func NewHandler(gw *gateway.Gateway, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Gateway: gw,
		Limiter: ratelimit.New(requestsPerIP, requestInterval),
		ErrLog:  errLog,
		Log:     logger,
	}
}

// Stop releases the limiter's cleanup goroutine.
func (h *Handler) Stop() { h.Limiter.Stop() }

type messageResponse struct {
	Message string `json:"message"`
}

type requestBody struct {
	Email string `json:"email"`
}

type confirmBody struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// HandleRequest handles POST /password-reset.
// The answer is the same whether or not the email is registered.
func (h *Handler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	var body requestBody
	if err := uierrors.DecodeJSON(r, &body); err != nil {
		h.ErrLog.LogBadRequest(w, r, "password reset: decode body", err, "Invalid request body.")
		return
	}
	o := auditlog.FromRequest(r)
	if !h.Limiter.Allow(o.IP) {
		h.ErrLog.Write(w, r, "password reset rate limited", apperr.Provider(apperr.CodeTooManyRequests, nil))
		return
	}

	if err := h.Gateway.RequestPasswordReset(r.Context(), o, body.Email); err != nil {
		h.ErrLog.Write(w, r, "password reset request rejected", err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, messageResponse{Message: MsgResetSent})
}

// HandleConfirm handles POST /password-reset/confirm.
func (h *Handler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	var body confirmBody
	if err := uierrors.DecodeJSON(r, &body); err != nil {
		h.ErrLog.LogBadRequest(w, r, "password reset confirm: decode body", err, "Invalid request body.")
		return
	}
	if err := h.Gateway.ConfirmPasswordReset(r.Context(), auditlog.FromRequest(r), body.Token, body.Password); err != nil {
		h.ErrLog.Write(w, r, "password reset failed", err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, messageResponse{Message: MsgResetDone})
}

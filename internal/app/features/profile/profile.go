// internal/app/features/profile/profile.go
package profile

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/youthportal/internal/app/features/errors"
	userstore "github.com/dalemusser/youthportal/internal/app/store/users"
	"github.com/dalemusser/youthportal/internal/app/system/access"
	"github.com/dalemusser/youthportal/internal/app/system/apperr"
	"github.com/dalemusser/youthportal/internal/app/system/auth"
	"github.com/dalemusser/youthportal/internal/app/system/display"
	"github.com/dalemusser/youthportal/internal/app/system/gateway"
	"github.com/dalemusser/youthportal/internal/app/system/timeouts"
	"github.com/dalemusser/youthportal/internal/domain/models"
	"go.uber.org/zap"
)

// meResponse is the signed-in account as the client shell needs it.
type meResponse struct {
	Account           models.Account     `json:"account"`
	FullName          string             `json:"full_name"`
	FullAddress       string             `json:"full_address"`
	Destination       access.Destination `json:"destination"`
	LoginStatus       string             `json:"login_status"`
	CanEnterDashboard bool               `json:"can_enter_dashboard"`
}

func newMeResponse(a models.Account, loginStatus string) meResponse {
	return meResponse{
		Account:           a,
		FullName:          display.Name(a),
		FullAddress:       display.Location(a),
		Destination:       access.RouteAccount(a),
		LoginStatus:       loginStatus,
		CanEnterDashboard: access.CanEnterDashboard(loginStatus, a.Status),
	}
}

// ServeMe handles GET /me.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "load own account")
	defer cancel()

	a, err := h.Users.GetByID(ctx, u.ID)
	if errors.Is(err, userstore.ErrNotFound) {
		h.missingAccount(w, r, u.ID)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load own account failed", err, "")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, newMeResponse(*a, u.LoginStatus))
}

// HandleUpdateProfile handles PUT /me/profile.
// Only profile fields are written; status and user type are not accepted.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	var in gateway.ProfileInput
	if err := uierrors.DecodeJSON(r, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "profile: decode body", err, "Invalid request body.")
		return
	}
	if err := gateway.ValidateProfile(&in); err != nil {
		h.ErrLog.Write(w, r, "profile update rejected", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update profile")
	defer cancel()

	a, err := h.Users.UpdateProfile(ctx, u.ID, in.Profile())
	if errors.Is(err, userstore.ErrNotFound) {
		h.missingAccount(w, r, u.ID)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "profile update failed", err, "Unable to save your profile.")
		return
	}

	h.Log.Info("profile updated", zap.String("user_id", u.ID))
	uierrors.WriteJSON(w, http.StatusOK, newMeResponse(*a, u.LoginStatus))
}

func (h *Handler) missingAccount(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.SessionMgr.Destroy(w, r); err != nil {
		h.Log.Warn("clear session for missing account", zap.Error(err))
	}
	h.ErrLog.Write(w, r, "account record missing", &apperr.NotFoundError{Kind: "account", ID: id, Msg: gateway.MsgNoAccount})
}

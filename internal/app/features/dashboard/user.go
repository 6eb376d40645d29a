// internal/app/features/dashboard/user.go
package dashboard

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/youthportal/internal/app/features/errors"
	userstore "github.com/dalemusser/youthportal/internal/app/store/users"
	"github.com/dalemusser/youthportal/internal/app/system/apperr"
	"github.com/dalemusser/youthportal/internal/app/system/auth"
	"github.com/dalemusser/youthportal/internal/app/system/display"
	"github.com/dalemusser/youthportal/internal/app/system/gateway"
	"github.com/dalemusser/youthportal/internal/domain/models"
	"go.uber.org/zap"
)

type userData struct {
	Account         models.Account `json:"account"`
	FullName        string         `json:"full_name"`
	FullAddress     string         `json:"full_address"`
	SurveyCompleted bool           `json:"survey_completed"`
	NextStep        string         `json:"next_step"`
}

// ServeUser answers GET /dashboard for a regular account.
func (h *Handler) ServeUser(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), dashboardTimeout)
	defer cancel()

	a, err := h.Users.GetByID(ctx, u.ID)
	if errors.Is(err, userstore.ErrNotFound) {
		h.ErrLog.Write(w, r, "dashboard account missing", &apperr.NotFoundError{Kind: "account", ID: u.ID, Msg: gateway.MsgNoAccount})
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "dashboard account load failed", err, "")
		return
	}

	next := "/me/survey"
	if a.SurveyCompleted {
		next = ""
	}

	h.Log.Debug("user dashboard served", zap.String("user_id", u.ID))
	uierrors.WriteJSON(w, http.StatusOK, userData{
		Account:         *a,
		FullName:        display.Name(*a),
		FullAddress:     display.Location(*a),
		SurveyCompleted: a.SurveyCompleted,
		NextStep:        next,
	})
}

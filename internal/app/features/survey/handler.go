// internal/app/features/survey/handler.go
package survey

import (
	"net/http"

	uierrors "github.com/dalemusser/youthportal/internal/app/features/errors"
	"github.com/dalemusser/youthportal/internal/app/system/auth"
	"github.com/dalemusser/youthportal/internal/app/system/surveyform"
	"github.com/dalemusser/youthportal/internal/app/system/timeouts"
	"github.com/dalemusser/youthportal/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves the signed-in account's own questionnaire.
type Handler struct {
	Form   *surveyform.Service
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(form *surveyform.Service, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Form: form, Log: logger, ErrLog: errLog}
}

type saveResponse struct {
	Survey  models.Survey `json:"survey"`
	Created bool          `json:"created"`
	Message string        `json:"message"`
}

// ServeSurvey handles GET /me/survey. 404 means nothing has been submitted.
func (h *Handler) ServeSurvey(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "load survey")
	defer cancel()

	sv, err := h.Form.Load(ctx, u.ID)
	if err != nil {
		h.ErrLog.Write(w, r, "load survey", err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, sv)
}

// HandleSave handles POST /me/survey. The first save creates the survey,
// later saves replace its answers.
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	var ans models.Answers
	if err := uierrors.DecodeJSON(r, &ans); err != nil {
		h.ErrLog.LogBadRequest(w, r, "survey: decode body", err, "Invalid request body.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "save survey")
	defer cancel()

	sv, created, err := h.Form.Save(ctx, u.ID, ans)
	if err != nil {
		h.ErrLog.Write(w, r, "save survey", err)
		return
	}

	status, msg := http.StatusOK, "Survey updated successfully!"
	if created {
		status, msg = http.StatusCreated, "Survey submitted successfully!"
	}
	uierrors.WriteJSON(w, status, saveResponse{Survey: sv, Created: created, Message: msg})
}

// internal/app/features/adminaccounts/actions.go
package adminaccounts

import (
	"net/http"

	uierrors "github.com/dalemusser/youthportal/internal/app/features/errors"
	"github.com/dalemusser/youthportal/internal/app/system/access"
	"github.com/dalemusser/youthportal/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

type actionResponse struct {
	Account     models.Account     `json:"account"`
	Destination access.Destination `json:"destination"`
	Message     string             `json:"message"`
}

type deleteResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Warning string `json:"warning,omitempty"`
}

// ServeDetail handles GET /admin/accounts/{id}.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	d, err := h.Approval.Detail(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Write(w, r, "account detail", err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, d)
}

// HandleApprove handles POST /admin/accounts/{id}/approve.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	a, err := h.Approval.Approve(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Write(w, r, "approve account", err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, actionResponse{
		Account:     *a,
		Destination: access.RouteAccount(*a),
		Message:     "User approved successfully!",
	})
}

// HandleReject handles POST /admin/accounts/{id}/reject.
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	a, err := h.Approval.Reject(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Write(w, r, "reject account", err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, actionResponse{
		Account:     *a,
		Destination: access.RouteAccount(*a),
		Message:     "User rejected.",
	})
}

// HandleDelete handles DELETE /admin/accounts/{id}. A partial cascade is
// still a success; the response carries the warning.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res, err := h.Approval.Delete(r.Context(), actorFrom(r), id)
	if err != nil {
		h.ErrLog.Write(w, r, "delete account", err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, deleteResponse{
		ID:      id,
		Message: "User deleted successfully!",
		Warning: res.Warning,
	})
}

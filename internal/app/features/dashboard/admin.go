// internal/app/features/dashboard/admin.go
package dashboard

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/youthportal/internal/app/features/errors"
	metricsstore "github.com/dalemusser/youthportal/internal/app/store/metrics"
	"github.com/dalemusser/youthportal/internal/app/system/auth"
	"github.com/dalemusser/youthportal/internal/app/system/youthstats"
	"go.uber.org/zap"
)

type adminData struct {
	Counts metricsstore.Counts `json:"counts"`
	Stats  youthstats.Summary  `json:"stats"`
}

// ServeAdmin answers GET /admin/dashboard: account counts plus survey figures.
func (h *Handler) ServeAdmin(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), dashboardTimeout)
	defer cancel()

	counts := metricsstore.FetchDashboardCounts(ctx, h.DB)
	stats, err := h.stats(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "admin dashboard stats failed", err, "Unable to load dashboard figures.")
		return
	}

	h.Log.Debug("admin dashboard served", zap.String("user_id", u.ID))
	uierrors.WriteJSON(w, http.StatusOK, adminData{Counts: counts, Stats: stats})
}

// ServeStats answers GET /admin/stats.
func (h *Handler) ServeStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dashboardTimeout)
	defer cancel()

	stats, err := h.stats(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "survey stats failed", err, "Unable to load survey figures.")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) stats(ctx context.Context) (youthstats.Summary, error) {
	surveys, err := h.Surveys.ListAll(ctx)
	if err != nil {
		return youthstats.Summary{}, err
	}
	return youthstats.Compute(surveys, h.Now()), nil
}

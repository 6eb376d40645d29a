// internal/app/features/adminaccounts/list.go
package adminaccounts

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	uierrors "github.com/dalemusser/youthportal/internal/app/features/errors"
	"github.com/dalemusser/youthportal/internal/app/system/normalize"
	"github.com/dalemusser/youthportal/internal/app/system/paging"
	"github.com/dalemusser/youthportal/internal/app/system/search"
	"github.com/dalemusser/youthportal/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type listResponse struct {
	Rows   []search.Row  `json:"rows"`
	Counts search.Counts `json:"counts"`
	Range  paging.Range  `json:"range"`
	Total  int           `json:"total"`
	View   string        `json:"view"`
	Status string        `json:"status"`
	Query  string        `json:"q"`
}

// ServeList handles GET /admin/accounts?status=&q=&view=&start=.
// Counts cover every non-admin account; the filter only narrows Rows.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	c := search.Criteria{
		View:   query.Get(r, "view"),
		Status: query.Get(r, "status"),
		// untrimmed: surrounding spaces take part in the match
		Query: r.URL.Query().Get("q"),
	}
	start := paging.ParseStart(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list accounts")
	defer cancel()

	accounts, err := h.Users.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list accounts failed", err, "Unable to load accounts.")
		return
	}

	all := search.Rows(accounts)
	matched := search.Filter(all, c)
	page, hasNext := paging.Slice(matched, start)
	if page == nil {
		page = []search.Row{}
	}

	h.Log.Debug("accounts listed",
		zap.Int("total", len(all)), zap.Int("matched", len(matched)), zap.Int("start", start))

	uierrors.WriteJSON(w, http.StatusOK, listResponse{
		Rows:   page,
		Counts: search.CountByStatus(all),
		Range:  paging.ComputeRange(start, len(page), hasNext),
		Total:  len(matched),
		View:   c.View,
		Status: normalize.StatusFilter(c.Status),
		Query:  c.Query,
	})
}

// internal/app/features/auditlog/list.go
package auditlog

import (
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	uierrors "github.com/dalemusser/youthportal/internal/app/features/errors"
	"github.com/dalemusser/youthportal/internal/app/store/audit"
	"github.com/dalemusser/youthportal/internal/app/system/paging"
	"github.com/dalemusser/youthportal/internal/app/system/timeouts"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// ServeList handles GET /admin/audit?category=&event_type=&start_date=&end_date=&start=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "audit log list")
	defer cancel()

	category := query.Get(r, "category")
	eventType := query.Get(r, "event_type")
	startDate := query.Get(r, "start_date")
	endDate := query.Get(r, "end_date")
	start := paging.ParseStart(r)

	filter := audit.QueryFilter{
		Category:  category,
		EventType: eventType,
		Limit:     paging.PageSize,
		Offset:    paging.Offset(start),
	}
	if startDate != "" {
		if t, err := time.Parse(dateLayout, startDate); err == nil {
			filter.StartTime = &t
		}
	}
	if endDate != "" {
		if t, err := time.Parse(dateLayout, endDate); err == nil {
			// end of day
			eod := t.Add(24*time.Hour - time.Second)
			filter.EndTime = &eod
		}
	}

	events, err := h.Events.Query(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "query audit events failed", err, "A database error occurred.")
		return
	}
	total, err := h.Events.Count(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count audit events failed", err, "A database error occurred.")
		return
	}

	emails := h.resolveEmails(r, events)
	items := make([]listItem, 0, len(events))
	for _, e := range events {
		items = append(items, listItem{
			ID:        e.ID.Hex(),
			Timestamp: e.Timestamp,
			Category:  e.Category,
			EventType: e.EventType,
			Actor:     nameOr(emails, e.ActorID),
			Target:    nameOr(emails, e.UserID),
			IP:        e.IP,
			Success:   e.Success,
			Reason:    e.FailureReason,
			Details:   e.Details,
		})
	}

	hasNext := filter.Offset+int64(len(items)) < total
	uierrors.WriteJSON(w, http.StatusOK, listResponse{
		Items:      items,
		Category:   category,
		EventType:  eventType,
		StartDate:  startDate,
		EndDate:    endDate,
		Categories: allCategories(),
		EventTypes: eventTypesForCategory(category),
		Total:      total,
		Range:      paging.ComputeRange(start, len(items), hasNext),
	})
}

// resolveEmails maps the account ids referenced by events to emails.
// Deleted accounts stay unresolved.
func (h *Handler) resolveEmails(r *http.Request, events []audit.Event) map[string]string {
	seen := map[string]struct{}{}
	var ids []string
	for _, e := range events {
		for _, id := range []string{e.ActorID, e.UserID} {
			if _, ok := seen[id]; id == "" || ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	out := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return out
	}
	accounts, err := h.Users.GetByIDs(r.Context(), ids)
	if err != nil {
		h.Log.Warn("failed to resolve accounts for audit log", zap.Error(err))
		return out
	}
	for _, a := range accounts {
		out[a.ID] = a.Email
	}
	return out
}

func nameOr(names map[string]string, id string) string {
	if n, ok := names[id]; ok {
		return n
	}
	return id
}

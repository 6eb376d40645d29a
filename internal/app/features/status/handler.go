// internal/app/features/status/handler.go
package status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/youthportal/internal/app/features/errors"
	userstore "github.com/dalemusser/youthportal/internal/app/store/users"
	"github.com/dalemusser/youthportal/internal/app/system/auth"
	"github.com/dalemusser/youthportal/internal/app/system/statuswatch"
	"github.com/dalemusser/youthportal/internal/app/system/timeouts"
	"github.com/dalemusser/youthportal/internal/domain/models"
	"go.uber.org/zap"
)

// DefaultPingInterval keeps idle streams open through proxies.
const DefaultPingInterval = 25 * time.Second

// Accounts loads the current stored account.
type Accounts interface {
	GetByID(ctx context.Context, id string) (*models.Account, error)
}

// Handler serves the signed-in account's status, once or as a live stream.
type Handler struct {
	Users  Accounts
	Hub    statuswatch.Hub
	Ping   time.Duration
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(users Accounts, hub statuswatch.Hub, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  users,
		Hub:    hub,
		Ping:   DefaultPingInterval,
		Log:    logger,
		ErrLog: errLog,
	}
}

// snapshot reads the stored account. A missing account yields the deleted
// snapshot, which routes to the login page.
func (h *Handler) snapshot(ctx context.Context, id string) (statuswatch.Snapshot, error) {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Short(), h.Log, "load status")
	defer cancel()

	a, err := h.Users.GetByID(ctx, id)
	if errors.Is(err, userstore.ErrNotFound) {
		return statuswatch.SnapshotOf(id, nil), nil
	}
	if err != nil {
		return statuswatch.Snapshot{}, err
	}
	return statuswatch.SnapshotOf(id, a), nil
}

// ServeStatus handles GET /account/status.
func (h *Handler) ServeStatus(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	snap, err := h.snapshot(r.Context(), u.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load status failed", err, "")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, snap)
}

// ServeStream handles GET /account/status/stream as Server-Sent Events.
// The current snapshot is sent first, then every published snapshot until
// the client goes away. The stream only reports; navigation is left to the
// client.
func (h *Handler) ServeStream(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	ctx := r.Context()

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.ErrLog.LogServerError(w, r, "status stream: response cannot flush", errors.New("no http.Flusher"), "")
		return
	}

	// subscribe before reading so a change between the two is not lost
	sub, err := h.Hub.Subscribe(ctx, u.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "status stream: subscribe failed", err, "")
		return
	}
	defer sub.Close()

	snap, err := h.snapshot(ctx, u.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "status stream: load failed", err, "")
		return
	}

	hdr := w.Header()
	hdr.Set("Content-Type", "text/event-stream")
	hdr.Set("Cache-Control", "no-cache")
	hdr.Set("Connection", "keep-alive")
	hdr.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if err := writeEvent(w, snap); err != nil {
		return
	}
	flusher.Flush()
	h.Log.Debug("status stream opened", zap.String("user_id", u.ID))

	every := h.Ping
	if every <= 0 {
		every = DefaultPingInterval
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.Log.Debug("status stream closed", zap.String("user_id", u.ID))
			return
		case s, ok := <-sub.C:
			if !ok {
				return
			}
			if err := writeEvent(w, s); err != nil {
				return
			}
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
		}
		flusher.Flush()
	}
}

func writeEvent(w http.ResponseWriter, snap statuswatch.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: status\ndata: %s\n\n", b)
	return err
}

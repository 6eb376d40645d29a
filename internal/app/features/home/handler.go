package home

import (
	"net/http"

	uierrors "github.com/dalemusser/youthportal/internal/app/features/errors"
	"github.com/dalemusser/youthportal/internal/app/system/access"
	"github.com/dalemusser/youthportal/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler holds dependencies needed to serve the landing endpoint.
type Handler struct {
	SiteName string
	Log      *zap.Logger
}

func NewHandler(siteName string, logger *zap.Logger) *Handler {
	return &Handler{
		SiteName: siteName,
		Log:      logger,
	}
}

type rootResponse struct {
	Site        string             `json:"site"`
	SignedIn    bool               `json:"signed_in"`
	Destination access.Destination `json:"destination"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeRoot tells the client shell where to go. Anonymous visitors go to
// the login page; signed-in accounts go to their current destination.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	resp := rootResponse{Site: h.SiteName, Destination: access.Login}
	if u, ok := auth.CurrentUser(r); ok {
		resp.SignedIn = true
		resp.Destination = u.Destination()
		if resp.Destination.IsDashboard() && !access.CanEnterDashboard(u.LoginStatus, u.Status) {
			resp.Destination = access.Login
		}
	}
	uierrors.WriteJSON(w, http.StatusOK, resp)
}

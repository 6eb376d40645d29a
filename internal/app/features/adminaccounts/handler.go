// internal/app/features/adminaccounts/handler.go
package adminaccounts

import (
	"net/http"

	uierrors "github.com/dalemusser/youthportal/internal/app/features/errors"
	userstore "github.com/dalemusser/youthportal/internal/app/store/users"
	"github.com/dalemusser/youthportal/internal/app/system/approval"
	"github.com/dalemusser/youthportal/internal/app/system/auditlog"
	"github.com/dalemusser/youthportal/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler serves the admin account list and the approval actions.
type Handler struct {
	Users    *userstore.Store
	Approval *approval.Service
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
}

func NewHandler(users *userstore.Store, svc *approval.Service, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:    users,
		Approval: svc,
		Log:      logger,
		ErrLog:   errLog,
	}
}

func actorFrom(r *http.Request) approval.Actor {
	u, _ := auth.CurrentUser(r)
	return approval.Actor{ID: u.ID, UserType: u.Role, Origin: auditlog.FromRequest(r)}
}

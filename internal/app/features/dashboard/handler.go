// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"
	"time"

	uierrors "github.com/dalemusser/youthportal/internal/app/features/errors"
	surveystore "github.com/dalemusser/youthportal/internal/app/store/surveys"
	userstore "github.com/dalemusser/youthportal/internal/app/store/users"
	"github.com/dalemusser/youthportal/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const dashboardTimeout = 10 * time.Second

type Handler struct {
	DB      *mongo.Database
	Users   *userstore.Store
	Surveys *surveystore.Store
	Log     *zap.Logger
	ErrLog  *uierrors.ErrorLogger

	// Now is the clock behind the monthly histogram.
	Now func() time.Time
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Users:   userstore.New(db),
		Surveys: surveystore.New(db),
		Log:     logger,
		ErrLog:  errLog,
		Now:     time.Now,
	}
}

// ServeDashboard dispatches GET /dashboard by user type. Admins get the
// admin view; everyone else gets their own.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	if u.IsAdmin() {
		h.ServeAdmin(w, r)
		return
	}
	h.ServeUser(w, r)
}

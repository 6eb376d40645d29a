// Package approval is the admin side of the account lifecycle: approve,
// reject, delete and the per-account detail view.
//
// Every operation requires an admin actor. Status changes are pushed to the
// account's open status streams after they are stored.
package approval

import (
	"context"
	"errors"

	surveystore "github.com/dalemusser/youthportal/internal/app/store/surveys"
	userstore "github.com/dalemusser/youthportal/internal/app/store/users"
	"github.com/dalemusser/youthportal/internal/app/system/access"
	"github.com/dalemusser/youthportal/internal/app/system/apperr"
	"github.com/dalemusser/youthportal/internal/app/system/auditlog"
	"github.com/dalemusser/youthportal/internal/app/system/display"
	"github.com/dalemusser/youthportal/internal/app/system/metrics"
	"github.com/dalemusser/youthportal/internal/app/system/statuswatch"
	"github.com/dalemusser/youthportal/internal/app/system/timeouts"
	"github.com/dalemusser/youthportal/internal/domain/models"
	"go.uber.org/zap"
)

// MsgSurveysNotRemoved is returned as the delete warning when the account
// was removed but its surveys were not.
const MsgSurveysNotRemoved = "Account deleted, but some survey data could not be removed."

// Accounts is the part of the account store the workflow needs.
type Accounts interface {
	GetByID(ctx context.Context, id string) (*models.Account, error)
	SetStatus(ctx context.Context, id, status string) (*models.Account, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// Surveys is the part of the survey store the workflow needs.
type Surveys interface {
	GetFirstByUser(ctx context.Context, userID string) (*models.Survey, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

// Actor is the signed-in admin performing an operation.
type Actor struct {
	ID       string
	UserType string
	Origin   auditlog.Origin
}

// Service runs the workflow. Hub, Cache, Audit and Metrics may be nil.
type Service struct {
	Accounts Accounts
	Surveys  Surveys
	Hub      statuswatch.Hub
	Cache    *SurveyCache
	Audit    *auditlog.Logger
	Metrics  *metrics.Metrics
	Log      *zap.Logger
}

// Approve moves account id to approved. Approving an approved account succeeds.
func (s *Service) Approve(ctx context.Context, actor Actor, id string) (*models.Account, error) {
	return s.transition(ctx, actor, id, models.StatusApproved)
}

// Reject moves account id to rejected. Rejecting a rejected account succeeds.
func (s *Service) Reject(ctx context.Context, actor Actor, id string) (*models.Account, error) {
	return s.transition(ctx, actor, id, models.StatusRejected)
}

func (s *Service) transition(ctx context.Context, actor Actor, id, status string) (*models.Account, error) {
	if !access.CanTransition(actor.UserType, status) {
		return nil, apperr.ErrForbidden
	}
	if actor.ID == id {
		return nil, apperr.Invalid("You cannot change the status of your own account")
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()
	a, err := s.Accounts.SetStatus(ctx, id, status)
	if errors.Is(err, userstore.ErrNotFound) {
		return nil, apperr.NotFound("account", id)
	}
	if err != nil {
		s.Log.Error("status update failed", zap.String("user_id", id), zap.String("status", status), zap.Error(err))
		return nil, err
	}

	s.publish(ctx, statuswatch.SnapshotOf(id, a))
	if status == models.StatusApproved {
		s.Audit.AccountApproved(ctx, actor.Origin, actor.ID, id)
	} else {
		s.Audit.AccountRejected(ctx, actor.Origin, actor.ID, id)
	}
	s.Metrics.Transition(status)
	return a, nil
}

// DeleteResult reports a completed delete. Warning is set when the account
// is gone but a secondary step failed.
type DeleteResult struct {
	Account models.Account
	Warning string
}

// Delete removes the account's surveys and then the account. A survey
// failure does not stop the account delete; it is logged and reported as
// a warning. The identity is kept, so a later sign-in with it reports a
// missing account.
func (s *Service) Delete(ctx context.Context, actor Actor, id string) (DeleteResult, error) {
	if actor.UserType != models.UserTypeAdmin {
		return DeleteResult{}, apperr.ErrForbidden
	}
	if actor.ID == id {
		return DeleteResult{}, apperr.Invalid("You cannot delete your own account")
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Long())
	defer cancel()

	a, err := s.Accounts.GetByID(ctx, id)
	if errors.Is(err, userstore.ErrNotFound) {
		return DeleteResult{}, apperr.NotFound("account", id)
	}
	if err != nil {
		return DeleteResult{}, err
	}

	var res DeleteResult
	res.Account = *a
	if n, err := s.Surveys.DeleteByUser(ctx, id); err != nil {
		pf := &apperr.PartialFailure{Op: "delete account", Step: "delete surveys", Err: err}
		s.Log.Warn("account delete continuing without survey cleanup",
			zap.String("user_id", id), zap.Error(pf))
		res.Warning = MsgSurveysNotRemoved
	} else {
		s.Log.Debug("surveys deleted", zap.String("user_id", id), zap.Int64("count", n))
	}

	n, err := s.Accounts.Delete(ctx, id)
	if err != nil {
		s.Log.Error("account delete failed", zap.String("user_id", id), zap.Error(err))
		return DeleteResult{}, err
	}
	if n == 0 {
		return DeleteResult{}, apperr.NotFound("account", id)
	}

	s.Cache.InvalidateAccount(id)
	s.publish(ctx, statuswatch.SnapshotOf(id, nil))
	s.Audit.AccountDeleted(ctx, actor.Origin, actor.ID, id, a.Email, res.Warning)
	s.Metrics.AccountDeleted(res.Warning != "")
	return res, nil
}

// Detail is one account as the admin detail page shows it.
type Detail struct {
	Account     models.Account     `json:"account"`
	FullName    string             `json:"full_name"`
	FullAddress string             `json:"full_address"`
	Destination access.Destination `json:"destination"`
	Survey      *models.Survey     `json:"survey"`
}

// Detail loads account id and its survey. The survey is served from the
// admin's cache when present.
func (s *Service) Detail(ctx context.Context, actor Actor, id string) (Detail, error) {
	if actor.UserType != models.UserTypeAdmin {
		return Detail{}, apperr.ErrForbidden
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	a, err := s.Accounts.GetByID(ctx, id)
	if errors.Is(err, userstore.ErrNotFound) {
		return Detail{}, apperr.NotFound("account", id)
	}
	if err != nil {
		return Detail{}, err
	}

	d := Detail{
		Account:     *a,
		FullName:    display.Name(*a),
		FullAddress: display.Location(*a),
		Destination: access.RouteAccount(*a),
	}

	sv, ok := s.Cache.Get(actor.ID, id)
	if !ok {
		sv, err = s.Surveys.GetFirstByUser(ctx, id)
		switch {
		case errors.Is(err, surveystore.ErrNotFound):
			sv = nil
		case err != nil:
			return Detail{}, err
		}
		s.Cache.Put(actor.ID, id, sv)
	}
	d.Survey = sv
	return d, nil
}

func (s *Service) publish(ctx context.Context, snap statuswatch.Snapshot) {
	if s.Hub == nil {
		return
	}
	if err := s.Hub.Publish(ctx, snap); err != nil {
		s.Log.Warn("status publish failed", zap.String("user_id", snap.UserID), zap.Error(err))
	}
}

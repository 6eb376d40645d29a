// Package gateway is the authentication front door: registration, sign-in,
// sign-out and password reset.
//
// Every operation talks to the identity provider first and the account
// store second. Input problems are reported before either is called.
package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/youthportal/internal/app/store/audit"
	userstore "github.com/dalemusser/youthportal/internal/app/store/users"
	"github.com/dalemusser/youthportal/internal/app/system/apperr"
	"github.com/dalemusser/youthportal/internal/app/system/auditlog"
	"github.com/dalemusser/youthportal/internal/app/system/display"
	"github.com/dalemusser/youthportal/internal/app/system/identity"
	"github.com/dalemusser/youthportal/internal/app/system/mailer"
	"github.com/dalemusser/youthportal/internal/app/system/metrics"
	"github.com/dalemusser/youthportal/internal/app/system/normalize"
	"github.com/dalemusser/youthportal/internal/app/system/ratelimit"
	"github.com/dalemusser/youthportal/internal/app/system/timeouts"
	"github.com/dalemusser/youthportal/internal/domain/models"
	"go.uber.org/zap"
)

// MsgNoAccount is shown when credentials are valid but no account record exists.
const MsgNoAccount = "User data not found. Please contact support."

// Accounts is the part of the account store the gateway needs.
type Accounts interface {
	Create(ctx context.Context, a models.Account) (models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
}

// Gateway wires the provider, the account store and the side channels
// (audit, metrics, mail). Audit, Metrics, Limiter and Mailer may be nil.
type Gateway struct {
	Provider identity.Provider
	Accounts Accounts
	Limiter  *ratelimit.LoginLimiter
	Mailer   mailer.Sender
	Audit    *auditlog.Logger
	Metrics  *metrics.Metrics
	Log      *zap.Logger

	BaseURL     string // used to build reset links
	SiteName    string
	ResetExpiry time.Duration
}

/*─────────────────────────────────────────────────────────────────────────────*
| Register                                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

// Register validates in, creates the identity and writes a pending account.
// If the account write fails the identity is removed again.
func (g *Gateway) Register(ctx context.Context, o auditlog.Origin, in RegisterInput) (models.Account, error) {
	if err := ValidateRegistration(&in); err != nil {
		g.Audit.RegisterFailed(ctx, o, in.Email, "validation")
		g.Metrics.Registration("invalid")
		return models.Account{}, err
	}
	p := in.Profile()

	pctx, cancel := context.WithTimeout(ctx, timeouts.Auth())
	id, err := g.Provider.Create(pctx, in.Email, in.Password, display.FullName(p.FirstName, p.MiddleInitial, p.LastName))
	cancel()
	if err != nil {
		reason := apperr.ProviderCode(err)
		if reason == "" {
			reason = "error"
			g.Log.Error("identity create failed", zap.String("email", in.Email), zap.Error(err))
		}
		g.Audit.RegisterFailed(ctx, o, in.Email, reason)
		g.Metrics.Registration(reason)
		return models.Account{}, err
	}

	sctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()
	acct, err := g.Accounts.Create(sctx, models.Account{
		ID:               id,
		Email:            in.Email,
		FirstName:        p.FirstName,
		LastName:         p.LastName,
		MiddleInitial:    p.MiddleInitial,
		Username:         p.Username,
		Age:              p.Age,
		BirthDate:        p.BirthDate,
		ContactNumber:    p.ContactNumber,
		HouseNumber:      p.HouseNumber,
		Street:           p.Street,
		Barangay:         p.Barangay,
		CityMunicipality: p.CityMunicipality,
		Province:         p.Province,
		UserType:         models.UserTypeUser,
		Status:           models.StatusPending,
	})
	if err != nil {
		g.rollback(ctx, id, in.Email)
		g.Audit.RegisterFailed(ctx, o, in.Email, "account-write")
		g.Metrics.Registration("error")
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			return models.Account{}, apperr.Provider(apperr.CodeEmailInUse, err)
		}
		g.Log.Error("account create failed", zap.String("user_id", id), zap.Error(err))
		return models.Account{}, err
	}

	g.Audit.Registered(ctx, o, acct.ID, acct.Email)
	g.Metrics.Registration("ok")
	return acct, nil
}

func (g *Gateway) rollback(ctx context.Context, id, email string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.Auth())
	defer cancel()
	if err := g.Provider.Delete(ctx, id); err != nil {
		g.Log.Error("orphaned identity after failed registration",
			zap.String("identity_id", id), zap.String("email", email), zap.Error(err))
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Login / Logout                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// Login verifies the credential and loads the account. A credential with
// no account record yields an *apperr.NotFoundError; the caller must end
// any session it holds.
func (g *Gateway) Login(ctx context.Context, o auditlog.Origin, email, password string) (models.Account, error) {
	email = normalize.Email(email)
	fe := apperr.FieldErrors{}
	if email == "" {
		fe.Add("email", "Email is required")
	}
	if password == "" {
		fe.Add("password", "Password is required")
	}
	if err := fe.Err(""); err != nil {
		return models.Account{}, err
	}

	if g.Limiter != nil && !g.Limiter.Allow(o.IP, email) {
		g.Audit.LoginFailed(ctx, o, audit.EventLoginFailedRateLimit, email, apperr.CodeTooManyRequests)
		g.Metrics.Login(apperr.CodeTooManyRequests)
		return models.Account{}, apperr.Provider(apperr.CodeTooManyRequests, nil)
	}

	pctx, cancel := context.WithTimeout(ctx, timeouts.Auth())
	id, err := g.Provider.Verify(pctx, email, password)
	cancel()
	if err != nil {
		code := apperr.ProviderCode(err)
		if code == "" {
			g.Log.Error("identity verify failed", zap.Error(err))
			g.Metrics.Login("error")
			return models.Account{}, err
		}
		g.Metrics.Login(code)
		if code == apperr.CodeUnavailable {
			g.Log.Warn("identity provider unavailable", zap.Error(err))
			return models.Account{}, err
		}
		g.Audit.LoginFailed(ctx, o, failureEvent(code), email, code)
		return models.Account{}, err
	}

	sctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()
	acct, err := g.Accounts.GetByID(sctx, id)
	if errors.Is(err, userstore.ErrNotFound) {
		g.Audit.LoginFailed(ctx, o, audit.EventLoginFailedNoAccount, email, "no account record")
		g.Metrics.Login("no-account")
		return models.Account{}, &apperr.NotFoundError{Kind: "account", ID: id, Msg: MsgNoAccount}
	}
	if err != nil {
		g.Log.Error("account load failed", zap.String("user_id", id), zap.Error(err))
		g.Metrics.Login("error")
		return models.Account{}, err
	}

	if g.Limiter != nil {
		g.Limiter.ResetEmail(email)
	}
	g.Audit.LoginSuccess(ctx, o, acct.ID, acct.Email)
	g.Metrics.Login("ok")
	return *acct, nil
}

func failureEvent(code string) string {
	switch code {
	case apperr.CodeUserNotFound:
		return audit.EventLoginFailedUserNotFound
	case apperr.CodeUserDisabled:
		return audit.EventLoginFailedUserDisabled
	case apperr.CodeTooManyRequests:
		return audit.EventLoginFailedRateLimit
	default:
		return audit.EventLoginFailedWrongPassword
	}
}

// Logout records the sign-out. The session itself lives in the cookie and
// is cleared by the caller; nothing here can fail the request.
func (g *Gateway) Logout(ctx context.Context, o auditlog.Origin, userID string) {
	if userID == "" {
		return
	}
	g.Audit.Logout(ctx, o, userID)
}

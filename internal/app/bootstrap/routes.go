// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/config"
	adminaccountsfeature "github.com/dalemusser/youthportal/internal/app/features/adminaccounts"
	auditlogfeature "github.com/dalemusser/youthportal/internal/app/features/auditlog"
	dashboardfeature "github.com/dalemusser/youthportal/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/youthportal/internal/app/features/errors"
	healthfeature "github.com/dalemusser/youthportal/internal/app/features/health"
	homefeature "github.com/dalemusser/youthportal/internal/app/features/home"
	loginfeature "github.com/dalemusser/youthportal/internal/app/features/login"
	logoutfeature "github.com/dalemusser/youthportal/internal/app/features/logout"
	passwordresetfeature "github.com/dalemusser/youthportal/internal/app/features/passwordreset"
	profilefeature "github.com/dalemusser/youthportal/internal/app/features/profile"
	registerfeature "github.com/dalemusser/youthportal/internal/app/features/register"
	statusfeature "github.com/dalemusser/youthportal/internal/app/features/status"
	surveyfeature "github.com/dalemusser/youthportal/internal/app/features/survey"
	metricsstore "github.com/dalemusser/youthportal/internal/app/store/metrics"
	surveystore "github.com/dalemusser/youthportal/internal/app/store/surveys"
	userstore "github.com/dalemusser/youthportal/internal/app/store/users"
	"github.com/dalemusser/youthportal/internal/app/system/approval"
	"github.com/dalemusser/youthportal/internal/app/system/auth"
	"github.com/dalemusser/youthportal/internal/app/system/gateway"
	"github.com/dalemusser/youthportal/internal/app/system/identity"
	"github.com/dalemusser/youthportal/internal/app/system/metrics"
	"github.com/dalemusser/youthportal/internal/app/system/ratelimit"
	"github.com/dalemusser/youthportal/internal/app/system/statuswatch"
	"github.com/dalemusser/youthportal/internal/app/system/surveyform"
	"github.com/dalemusser/youthportal/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. It builds the shared services once
// (identity provider behind its breaker, audit logger, mailer, status hub,
// survey cache, metrics) and mounts every feature router.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// LoadSessionUser fetches the stored account on every request, so status
	// changes and deletes take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(db))

	errLog := errorsfeature.NewErrorLogger(logger)

	// Shared services
	users := userstore.New(db)
	surveys := surveystore.New(db)

	idStore, err := newIdentityStore(appCfg, db)
	if err != nil {
		logger.Error("identity provider init failed", zap.Error(err))
		return nil, err
	}
	idp := identity.NewBreaker(idStore, appCfg.BreakerTimeout, logger)

	m := metrics.New()
	m.WatchAccounts(func(ctx context.Context) metricsstore.Counts {
		return metricsstore.FetchDashboardCounts(ctx, db)
	}, timeouts.Short())

	audit := newAuditLogger(appCfg, db, logger)

	limiter := ratelimit.NewLoginLimiter()
	deps.stoppers.add(limiter.Stop)

	gw := &gateway.Gateway{
		Provider:    idp,
		Accounts:    users,
		Limiter:     limiter,
		Mailer:      newMailer(appCfg, logger),
		Audit:       audit,
		Metrics:     m,
		Log:         logger,
		BaseURL:     appCfg.BaseURL,
		SiteName:    appCfg.SiteName,
		ResetExpiry: appCfg.ResetTokenExpiry,
	}

	cache := approval.NewSurveyCache(appCfg.SurveyCacheTTL)
	approvals := &approval.Service{
		Accounts: users,
		Surveys:  surveys,
		Hub:      deps.Hub,
		Cache:    cache,
		Audit:    audit,
		Metrics:  m,
		Log:      logger,
	}
	form := &surveyform.Service{
		Surveys:  surveys,
		Accounts: users,
		Metrics:  m,
		Log:      logger,
		OnSaved:  cache.InvalidateAccount,
	}

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	var redisPing healthfeature.Pinger
	if rh, ok := deps.Hub.(*statuswatch.RedisHub); ok {
		redisPing = rh
	}
	healthHandler := healthfeature.NewHandler(deps.MongoClient, redisPing, func() string { return idp.State().String() }, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Handle("/metrics", m.Handler())

	homeHandler := homefeature.NewHandler(appCfg.SiteName, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication
	registerHandler := registerfeature.NewHandler(gw, sessionMgr, errLog, logger)
	r.Mount("/register", registerfeature.Routes(registerHandler))

	loginHandler := loginfeature.NewHandler(gw, sessionMgr, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, gw, cache, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	resetHandler := passwordresetfeature.NewHandler(gw, errLog, logger)
	deps.stoppers.add(resetHandler.Stop)
	r.Mount("/password-reset", passwordresetfeature.Routes(resetHandler))

	// Error endpoints
	r.Get("/forbidden", errorsfeature.Forbidden)
	r.Get("/unauthorized", errorsfeature.Unauthorized)

	// The signed-in account
	profileHandler := profilefeature.NewHandler(users, sessionMgr, errLog, logger)
	r.Mount("/me", profilefeature.Routes(profileHandler, sessionMgr))

	surveyHandler := surveyfeature.NewHandler(form, errLog, logger)
	r.Mount("/me/survey", surveyfeature.Routes(surveyHandler, sessionMgr))

	statusHandler := statusfeature.NewHandler(users, deps.Hub, errLog, logger)
	r.Mount("/account/status", statusfeature.Routes(statusHandler, sessionMgr))

	// Dashboards
	dashboardHandler := dashboardfeature.NewHandler(db, errLog, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))
	r.Mount("/admin", dashboardfeature.AdminRoutes(dashboardHandler, sessionMgr))

	// Administration
	accountsHandler := adminaccountsfeature.NewHandler(users, approvals, errLog, logger)
	r.Mount("/admin/accounts", adminaccountsfeature.Routes(accountsHandler, sessionMgr))

	auditHandler := auditlogfeature.NewHandler(db, errLog, logger)
	r.Mount("/admin/audit", auditlogfeature.Routes(auditHandler, sessionMgr))

	return r, nil
}

// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/waffle/config"
	userstore "github.com/dalemusser/youthportal/internal/app/store/users"
	"github.com/dalemusser/youthportal/internal/app/system/apperr"
	"github.com/dalemusser/youthportal/internal/app/system/auditlog"
	"github.com/dalemusser/youthportal/internal/app/system/identity"
	"github.com/dalemusser/youthportal/internal/app/system/normalize"
	"github.com/dalemusser/youthportal/internal/app/system/timeouts"
	"github.com/dalemusser/youthportal/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(appCfg.Timeouts)

	if appCfg.AdminEmail == "" {
		logger.Info("admin bootstrap skipped: admin_email not set")
		return nil
	}
	idp, err := newIdentityStore(appCfg, deps.MongoDatabase)
	if err != nil {
		return err
	}
	audit := newAuditLogger(appCfg, deps.MongoDatabase, logger)
	return ensureAdmin(ctx, deps.MongoDatabase, idp, audit, appCfg.AdminEmail, appCfg.AdminPassword, logger)
}

// ensureAdmin makes sure email belongs to an approved admin account.
// An existing account is promoted. Otherwise the identity is created (or
// reused when the password matches) and an admin account is written for it.
func ensureAdmin(ctx context.Context, db *mongo.Database, idp identity.Provider, audit *auditlog.Logger, email, password string, logger *zap.Logger) error {
	users := userstore.New(db)
	email = normalize.Email(email)

	a, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if a.IsAdmin() && a.Status == models.StatusApproved {
			logger.Info("admin account present", zap.String("email", email))
			return nil
		}
		if _, err := users.Promote(ctx, a.ID); err != nil {
			return fmt.Errorf("promote admin %s: %w", email, err)
		}
		audit.AdminBootstrapped(ctx, a.ID, email, "promoted")
		logger.Info("promoted existing account to admin", zap.String("email", email))
		return nil
	case !errors.Is(err, userstore.ErrNotFound):
		return fmt.Errorf("look up admin %s: %w", email, err)
	}

	if password == "" {
		return fmt.Errorf("admin %s has no account; admin_password is required to create it", email)
	}

	id, err := idp.Create(ctx, email, password, "Administrator")
	if apperr.ProviderCode(err) == apperr.CodeEmailInUse {
		id, err = idp.Verify(ctx, email, password)
	}
	if err != nil {
		return fmt.Errorf("admin identity %s: %w", email, err)
	}

	created, err := users.Create(ctx, models.Account{
		ID:        id,
		Email:     email,
		FirstName: "System",
		LastName:  "Administrator",
		Username:  "admin",
		UserType:  models.UserTypeAdmin,
		Status:    models.StatusApproved,
	})
	if err != nil {
		return fmt.Errorf("create admin %s: %w", email, err)
	}
	audit.AdminBootstrapped(ctx, created.ID, email, "created")
	logger.Info("created admin account", zap.String("email", email))
	return nil
}

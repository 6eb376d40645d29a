// internal/app/bootstrap/services.go
package bootstrap

import (
	"sync"

	"github.com/dalemusser/youthportal/internal/app/store/audit"
	"github.com/dalemusser/youthportal/internal/app/system/auditlog"
	"github.com/dalemusser/youthportal/internal/app/system/identity"
	"github.com/dalemusser/youthportal/internal/app/system/mailer"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const tokenIssuer = "youthportal"

func newIdentityStore(appCfg AppConfig, db *mongo.Database) (*identity.Store, error) {
	tokens, err := identity.NewTokens(appCfg.ResetTokenSecret, appCfg.ResetTokenExpiry, tokenIssuer)
	if err != nil {
		return nil, err
	}
	return identity.New(db, tokens), nil
}

func newAuditLogger(appCfg AppConfig, db *mongo.Database, logger *zap.Logger) *auditlog.Logger {
	return auditlog.New(audit.New(db), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})
}

func newMailer(appCfg AppConfig, logger *zap.Logger) *mailer.Mailer {
	return mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		User:     appCfg.MailSMTPUser,
		Pass:     appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
	}, logger)
}

// stoppers collects the Stop funcs of background workers.
type stoppers struct {
	mu  sync.Mutex
	fns []func()
}

func (s *stoppers) add(fn func()) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fns = append(s.fns, fn)
}

// stopAll runs every Stop func once, newest first.
func (s *stoppers) stopAll() {
	if s == nil {
		return
	}
	s.mu.Lock()
	fns := s.fns
	s.fns = nil
	s.mu.Unlock()
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}

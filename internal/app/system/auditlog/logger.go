// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"

	"github.com/dalemusser/youthportal/internal/app/store/audit"
	"github.com/dalemusser/youthportal/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// Config holds audit logging configuration per category.
// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
type Config struct {
	Auth  string
	Admin string
}

// Origin identifies where a request came from.
type Origin struct {
	IP        string
	UserAgent string
}

// FromRequest captures the origin of r.
func FromRequest(r *http.Request) Origin {
	return Origin{IP: ratelimit.ClientIP(r), UserAgent: r.UserAgent()}
}

// Logger writes audit events to MongoDB (via audit.Store) and zap.
// A nil *Logger is a valid no-op logger.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{store: store, zapLog: zapLog, config: config}
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.UserID != "" {
		fields = append(fields, zap.String("user_id", event.UserID))
	}
	if event.ActorID != "" {
		fields = append(fields, zap.String("actor_id", event.ActorID))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

func (l *Logger) setting(category string) string {
	switch category {
	case audit.CategoryAuth:
		return l.config.Auth
	case audit.CategoryAdmin:
		return l.config.Admin
	default:
		return "all"
	}
}

// Log records event according to the category's setting.
// Storage failures are logged and never returned.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}
	setting := l.setting(event.Category)
	if setting == "" {
		setting = "all"
	}
	if setting == "off" {
		return
	}
	if setting == "all" || setting == "log" {
		l.logToZap(event)
	}
	if (setting == "all" || setting == "db") && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

func (l *Logger) auth(ctx context.Context, o Origin, eventType, userID string, ok bool, reason string, details map[string]string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     eventType,
		UserID:        userID,
		IP:            o.IP,
		UserAgent:     o.UserAgent,
		Success:       ok,
		FailureReason: reason,
		Details:       details,
	})
}

func (l *Logger) admin(ctx context.Context, o Origin, eventType, actorID, userID string, details map[string]string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		UserID:    userID,
		ActorID:   actorID,
		IP:        o.IP,
		UserAgent: o.UserAgent,
		Success:   true,
		Details:   details,
	})
}

/*────────────────────────────*| Authentication |*────────────────────────────*/

func (l *Logger) Registered(ctx context.Context, o Origin, userID, email string) {
	l.auth(ctx, o, audit.EventRegistered, userID, true, "", map[string]string{"email": email})
}

func (l *Logger) RegisterFailed(ctx context.Context, o Origin, email, reason string) {
	l.auth(ctx, o, audit.EventRegisterFailed, "", false, reason, map[string]string{"email": email})
}

func (l *Logger) LoginSuccess(ctx context.Context, o Origin, userID, email string) {
	l.auth(ctx, o, audit.EventLoginSuccess, userID, true, "", map[string]string{"email": email})
}

// LoginFailed records a refused sign-in. eventType is one of the
// audit.EventLoginFailed* constants.
func (l *Logger) LoginFailed(ctx context.Context, o Origin, eventType, email, reason string) {
	l.auth(ctx, o, eventType, "", false, reason, map[string]string{"attempted_email": email})
}

func (l *Logger) Logout(ctx context.Context, o Origin, userID string) {
	l.auth(ctx, o, audit.EventLogout, userID, true, "", nil)
}

func (l *Logger) PasswordResetRequested(ctx context.Context, o Origin, email string) {
	l.auth(ctx, o, audit.EventPasswordResetRequested, "", true, "", map[string]string{"email": email})
}

func (l *Logger) PasswordChanged(ctx context.Context, o Origin, ok bool, reason string) {
	l.auth(ctx, o, audit.EventPasswordChanged, "", ok, reason, nil)
}

/*────────────────────────────*| Admin actions |*────────────────────────────*/

func (l *Logger) AccountApproved(ctx context.Context, o Origin, actorID, userID string) {
	l.admin(ctx, o, audit.EventAccountApproved, actorID, userID, nil)
}

func (l *Logger) AccountRejected(ctx context.Context, o Origin, actorID, userID string) {
	l.admin(ctx, o, audit.EventAccountRejected, actorID, userID, nil)
}

// AccountDeleted records a delete; warning is set when the survey cleanup failed.
func (l *Logger) AccountDeleted(ctx context.Context, o Origin, actorID, userID, email, warning string) {
	details := map[string]string{"email": email}
	if warning != "" {
		details["warning"] = warning
	}
	l.admin(ctx, o, audit.EventAccountDeleted, actorID, userID, details)
}

func (l *Logger) AdminBootstrapped(ctx context.Context, userID, email, action string) {
	l.admin(ctx, Origin{IP: "startup"}, audit.EventAdminBootstrap, "", userID, map[string]string{
		"email":  email,
		"action": action,
	})
}

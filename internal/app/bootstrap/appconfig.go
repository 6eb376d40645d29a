// internal/app/bootstrap/appconfig.go
package bootstrap

import (
	"time"

	"github.com/dalemusser/youthportal/internal/app/system/timeouts"
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like ports, TLS,
// logging, CORS and request body limits. AppConfig is where the portal's
// own settings live. The struct is passed to most lifecycle hooks.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: youthportal-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Cookie lifetime

	// Redis is optional. When RedisAddr is set, status changes fan out
	// through Redis pub/sub so every instance's streams see them.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Admin bootstrap: the account is created or promoted at startup.
	AdminEmail    string
	AdminPassword string

	// Password reset tokens
	ResetTokenSecret string        // HMAC secret for reset tokens
	ResetTokenExpiry time.Duration // e.g. 1h

	// Email/SMTP configuration
	MailSMTPHost string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string // SMTP username (empty for Mailpit)
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address
	MailFromName string // From display name

	// Base URL for email links (password reset)
	BaseURL  string // e.g., "https://youth.example.org" or "http://localhost:3000"
	SiteName string

	// Audit logging: "all" (db+log), "db", "log", or "off"
	AuditLogAuth  string
	AuditLogAdmin string

	// Identity provider circuit breaker: how long it stays open.
	BreakerTimeout time.Duration

	// Deadlines for store and provider calls. Zero keeps the default.
	Timeouts timeouts.Config

	// How long an admin's cached survey for an account stays fresh.
	SurveyCacheTTL time.Duration
}

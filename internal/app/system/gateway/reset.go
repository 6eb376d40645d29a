package gateway

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/youthportal/internal/app/system/apperr"
	"github.com/dalemusser/youthportal/internal/app/system/auditlog"
	"github.com/dalemusser/youthportal/internal/app/system/identity"
	"github.com/dalemusser/youthportal/internal/app/system/inputval"
	"github.com/dalemusser/youthportal/internal/app/system/mailer"
	"github.com/dalemusser/youthportal/internal/app/system/normalize"
	"github.com/dalemusser/youthportal/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// MinPasswordLength applies to registration and to password resets.
const MinPasswordLength = 6

// RequestPasswordReset e-mails a reset link when an identity exists for
// email. It reports success whether or not one does, so the response never
// reveals which addresses are registered. Only malformed input is an error.
func (g *Gateway) RequestPasswordReset(ctx context.Context, o auditlog.Origin, email string) error {
	email = normalize.Email(email)
	if email == "" {
		return apperr.FieldErrors{"email": "Email is required"}.Err("")
	}
	if !inputval.IsValidEmail(email) {
		return apperr.FieldErrors{"email": "Please enter a valid email format"}.Err("")
	}
	g.Audit.PasswordResetRequested(ctx, o, email)

	pctx, cancel := context.WithTimeout(ctx, timeouts.Auth())
	token, err := g.Provider.ResetToken(pctx, email)
	cancel()
	if err != nil {
		if code := apperr.ProviderCode(err); code != "" {
			g.Log.Debug("password reset not sent", zap.String("email", email), zap.String("code", code))
		} else {
			g.Log.Error("password reset token failed", zap.String("email", email), zap.Error(err))
		}
		return nil
	}

	if g.Mailer == nil {
		g.Log.Warn("password reset requested but no mailer is configured", zap.String("email", email))
		return nil
	}
	msg := mailer.BuildResetEmail(mailer.ResetEmailData{
		SiteName:  g.SiteName,
		ResetLink: g.resetLink(token),
		ExpiresIn: expiresIn(g.ResetExpiry),
	})
	msg.To = email
	if err := g.Mailer.Send(msg); err != nil {
		g.Log.Error("password reset email failed", zap.String("email", email), zap.Error(err))
	}
	return nil
}

// ConfirmPasswordReset consumes token and sets newPassword.
func (g *Gateway) ConfirmPasswordReset(ctx context.Context, o auditlog.Origin, token, newPassword string) error {
	fe := apperr.FieldErrors{}
	if strings.TrimSpace(token) == "" {
		fe.Add("token", apperr.ProviderMessage(apperr.CodeInvalidResetToken))
	}
	switch {
	case newPassword == "":
		fe.Add("password", "Password is required")
	case len(newPassword) < MinPasswordLength:
		fe.Add("password", "Password must be at least 6 characters")
	}
	if err := fe.Err(""); err != nil {
		return err
	}

	pctx, cancel := context.WithTimeout(ctx, timeouts.Auth())
	defer cancel()
	if err := g.Provider.ResetPassword(pctx, token, newPassword); err != nil {
		reason := apperr.ProviderCode(err)
		if reason == "" {
			reason = "error"
			g.Log.Error("password reset failed", zap.Error(err))
		}
		g.Audit.PasswordChanged(ctx, o, false, reason)
		return err
	}
	g.Audit.PasswordChanged(ctx, o, true, "")
	return nil
}

func (g *Gateway) resetLink(token string) string {
	base := strings.TrimRight(g.BaseURL, "/")
	return base + "/reset-password?token=" + url.QueryEscape(token)
}

func expiresIn(d time.Duration) string {
	if d <= 0 {
		d = identity.DefaultResetExpiry
	}
	switch {
	case d == time.Hour:
		return "1 hour"
	case d%time.Hour == 0:
		return strconv.Itoa(int(d/time.Hour)) + " hours"
	default:
		return strconv.Itoa(int(d/time.Minute)) + " minutes"
	}
}

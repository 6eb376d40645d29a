// internal/app/features/errors/errors.go
package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/dalemusser/youthportal/internal/app/system/apperr"
	"github.com/dalemusser/youthportal/internal/app/system/auth"
	"go.uber.org/zap"
)

// MsgInternal is shown for every failure that is not an application error.
const MsgInternal = "Something went wrong. Please try again."

// ErrorLogger logs a failure once and answers with the matching JSON error.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// Response is the error body every endpoint returns.
type Response struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Status maps an application error to its HTTP status.
func Status(err error) int {
	var (
		ve *apperr.ValidationError
		pe *apperr.ProviderAuthError
		nf *apperr.NotFoundError
	)
	switch {
	case stderrors.As(err, &ve):
		return http.StatusBadRequest
	case stderrors.As(err, &pe):
		switch pe.Code {
		case apperr.CodeTooManyRequests:
			return http.StatusTooManyRequests
		case apperr.CodeUserDisabled:
			return http.StatusForbidden
		case apperr.CodeEmailInUse:
			return http.StatusConflict
		case apperr.CodeInvalidResetToken:
			return http.StatusBadRequest
		case apperr.CodeUnavailable:
			return http.StatusServiceUnavailable
		default:
			return http.StatusUnauthorized
		}
	case stderrors.As(err, &nf):
		return http.StatusNotFound
	case stderrors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Body builds the response body for err. Internal errors never leak
// their text.
func Body(err error) Response {
	var (
		ve *apperr.ValidationError
		pe *apperr.ProviderAuthError
		nf *apperr.NotFoundError
	)
	switch {
	case stderrors.As(err, &ve):
		return Response{Error: ve.Message, Fields: ve.Fields}
	case stderrors.As(err, &pe):
		return Response{Error: pe.Message(), Code: pe.Code}
	case stderrors.As(err, &nf):
		return Response{Error: nf.Message()}
	case stderrors.Is(err, apperr.ErrForbidden):
		return Response{Error: apperr.ErrForbidden.Error()}
	default:
		return Response{Error: MsgInternal}
	}
}

// Write logs err at a level fitting its class and writes the JSON error.
func (e *ErrorLogger) Write(w http.ResponseWriter, r *http.Request, msg string, err error) {
	status := Status(err)
	fields := []zap.Field{
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
	}
	if u, ok := auth.CurrentUser(r); ok {
		fields = append(fields, zap.String("user_id", u.ID))
	}
	if status >= http.StatusInternalServerError {
		e.log.Error(msg, fields...)
	} else {
		e.log.Info(msg, fields...)
	}
	WriteJSON(w, status, Body(err))
}

// LogServerError logs an unexpected failure and answers 500 with userMsg.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	e.log.Error(msg, zap.Error(err), zap.String("path", r.URL.Path))
	if userMsg == "" {
		userMsg = MsgInternal
	}
	WriteJSON(w, http.StatusInternalServerError, Response{Error: userMsg})
}

// LogBadRequest logs a malformed request and answers 400 with userMsg.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	e.log.Info(msg, zap.Error(err), zap.String("path", r.URL.Path))
	WriteJSON(w, http.StatusBadRequest, Response{Error: userMsg})
}

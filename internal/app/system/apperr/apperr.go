// Package apperr defines the error taxonomy shared by the auth gateway,
// the approval workflow and the survey form.
//
// Every failure a handler can report is one of:
//   - *ValidationError: bad input, caught before any provider or store call
//   - *ProviderAuthError: the identity provider refused the request
//   - *NotFoundError: a record that should exist does not
//   - *PartialFailure: a secondary step failed after the primary one succeeded
//
// Anything else is treated as an internal error by the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// MsgRequiredFields is the aggregate message for a form with missing answers.
const MsgRequiredFields = "Please fill in all required fields"

// Messages for requests the session gates turn away.
const (
	MsgSignIn       = "Please sign in to continue."
	MsgNoPermission = "You don't have permission to view this page."
	MsgSignInAgain  = "Your account was approved. Please sign in again."
)

// ErrForbidden reports an actor acting outside its role.
var ErrForbidden = errors.New("you do not have permission to do that")

// ValidationError reports rejected input. Fields maps a field name to its
// inline message; Message is the single summary shown above the form.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(keys, ", "))
}

// Invalid builds a ValidationError with a single message and no field errors.
func Invalid(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// FieldErrors collects per-field messages while a form is checked.
type FieldErrors map[string]string

// Add records msg for field unless the field already has a message.
func (fe FieldErrors) Add(field, msg string) {
	if _, ok := fe[field]; !ok {
		fe[field] = msg
	}
}

// Err returns nil when no field failed, otherwise a ValidationError
// carrying summary as its message.
func (fe FieldErrors) Err(summary string) error {
	if len(fe) == 0 {
		return nil
	}
	if summary == "" {
		for _, k := range sortedKeys(fe) {
			summary = fe[k]
			break
		}
	}
	return &ValidationError{Message: summary, Fields: map[string]string(fe)}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Provider error codes. The provider reports one of these; everything the
// user sees is derived from the code, never from the underlying error.
const (
	CodeInvalidCredential = "invalid-credential"
	CodeWrongPassword     = "wrong-password"
	CodeUserNotFound      = "user-not-found"
	CodeTooManyRequests   = "too-many-requests"
	CodeUserDisabled      = "user-disabled"
	CodeEmailInUse        = "email-already-in-use"
	CodeInvalidResetToken = "invalid-action-code"
	CodeUnavailable       = "unavailable"
)

// ProviderAuthError wraps a refusal from the identity provider.
type ProviderAuthError struct {
	Code string
	Err  error
}

func (e *ProviderAuthError) Error() string {
	if e.Err != nil {
		return "auth/" + e.Code + ": " + e.Err.Error()
	}
	return "auth/" + e.Code
}

func (e *ProviderAuthError) Unwrap() error { return e.Err }

// Message is the user-facing text for the error code.
func (e *ProviderAuthError) Message() string {
	return ProviderMessage(e.Code)
}

// ProviderMessage maps a provider error code to the text shown to the user.
func ProviderMessage(code string) string {
	switch code {
	case CodeInvalidCredential, CodeWrongPassword, CodeUserNotFound:
		return "Invalid email or password"
	case CodeTooManyRequests:
		return "Too many failed attempts. Please try again later."
	case CodeUserDisabled:
		return "This account has been disabled. Please contact support."
	case CodeEmailInUse:
		return "Email is already registered"
	case CodeInvalidResetToken:
		return "This password reset link is invalid or has expired."
	case CodeUnavailable:
		return "Sign-in is temporarily unavailable. Please try again later."
	default:
		return "Login failed. Please try again."
	}
}

// Provider builds a ProviderAuthError for code.
func Provider(code string, err error) *ProviderAuthError {
	return &ProviderAuthError{Code: code, Err: err}
}

// NotFoundError reports a missing record of the given kind. Msg, when set,
// is the text shown to the user instead of the generic one.
type NotFoundError struct {
	Kind string
	ID   string
	Msg  string
}

// Message is the user-facing text for the error.
func (e *NotFoundError) Message() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Kind == "" {
		return "Not found"
	}
	return strings.ToUpper(e.Kind[:1]) + e.Kind[1:] + " not found"
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Kind + " not found"
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// NotFound builds a NotFoundError.
func NotFound(kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// PartialFailure reports that Op completed but Step did not.
// It is logged and never surfaced as a failed request.
type PartialFailure struct {
	Op   string
	Step string
	Err  error
}

func (e *PartialFailure) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Op, e.Step, e.Err)
}

func (e *PartialFailure) Unwrap() error { return e.Err }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ProviderCode returns the provider error code carried by err, or "".
func ProviderCode(err error) string {
	var pe *ProviderAuthError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

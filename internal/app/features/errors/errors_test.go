package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/youthportal/internal/app/system/apperr"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperr.Invalid("bad"), http.StatusBadRequest},
		{"wrong password", apperr.Provider(apperr.CodeWrongPassword, nil), http.StatusUnauthorized},
		{"invalid credential", apperr.Provider(apperr.CodeInvalidCredential, nil), http.StatusUnauthorized},
		{"rate limited", apperr.Provider(apperr.CodeTooManyRequests, nil), http.StatusTooManyRequests},
		{"disabled", apperr.Provider(apperr.CodeUserDisabled, nil), http.StatusForbidden},
		{"email in use", apperr.Provider(apperr.CodeEmailInUse, nil), http.StatusConflict},
		{"unavailable", apperr.Provider(apperr.CodeUnavailable, nil), http.StatusServiceUnavailable},
		{"not found", fmt.Errorf("wrapped: %w", apperr.NotFound("account", "x")), http.StatusNotFound},
		{"forbidden", apperr.ErrForbidden, http.StatusForbidden},
		{"internal", stderrors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Status(tt.err); got != tt.want {
				t.Errorf("Status() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWrite_BodiesAndLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	el := NewErrorLogger(zap.New(core))

	rec := httptest.NewRecorder()
	el.Write(rec, httptest.NewRequest("POST", "/login", nil), "login failed", apperr.Provider(apperr.CodeWrongPassword, nil))

	var body Response
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "Invalid email or password" || body.Code != apperr.CodeWrongPassword {
		t.Errorf("body: %+v", body)
	}

	rec = httptest.NewRecorder()
	el.Write(rec, httptest.NewRequest("GET", "/me", nil), "load failed", stderrors.New("connection reset by peer"))
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != MsgInternal {
		t.Errorf("internal error text leaked: %q", body.Error)
	}

	if got := logs.FilterLevelExact(zap.ErrorLevel).Len(); got != 1 {
		t.Errorf("error-level entries: got %d, want 1", got)
	}
	if got := logs.FilterLevelExact(zap.InfoLevel).Len(); got != 1 {
		t.Errorf("info-level entries: got %d, want 1", got)
	}
}

func TestWrite_ValidationFields(t *testing.T) {
	el := NewErrorLogger(zap.NewNop())
	err := apperr.FieldErrors{"sex": "Sex is required"}.Err(apperr.MsgRequiredFields)

	rec := httptest.NewRecorder()
	el.Write(rec, httptest.NewRequest("POST", "/me/survey", nil), "survey rejected", err)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", rec.Code)
	}
	var body Response
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Error != apperr.MsgRequiredFields || body.Fields["sex"] != "Sex is required" {
		t.Errorf("body: %+v", body)
	}
}

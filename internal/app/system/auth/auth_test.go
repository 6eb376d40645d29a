package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/youthportal/internal/app/system/apperr"
	"github.com/dalemusser/youthportal/internal/app/system/auth"
	"github.com/dalemusser/youthportal/internal/domain/models"
	"go.uber.org/zap"
)

func newTestSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager(
		"test-session-key-must-be-32-chars-long",
		"test-session",
		"",
		24*time.Hour,
		false,
		logger,
	)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}
	return sm
}

func TestRequireSignedIn_NoUser_RedirectsToLogin(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("protected content"))
	}))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}

	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, "/login") {
		t.Errorf("expected redirect to /login, got %q", location)
	}
}

func TestRequireSignedIn_NoUser_API_Returns401(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/data", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRequireSignedIn_NoUser_HTMX_ReturnsHXRedirect(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}

	hxRedirect := rec.Header().Get("HX-Redirect")
	if !strings.HasPrefix(hxRedirect, "/login") {
		t.Errorf("expected HX-Redirect to /login, got %q", hxRedirect)
	}
}

func TestRequireRole_NoUser_RedirectsToLogin(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}

	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, "/login") {
		t.Errorf("expected redirect to /login, got %q", location)
	}
}

func TestRequireRole_WrongRole_RedirectsToForbidden(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Create a request with a regular user in context
	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Accept", "text/html")

	// Inject a user with "user" type into context
	req = withTestUser(req, "user")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}

	location := rec.Header().Get("Location")
	if location != "/forbidden" {
		t.Errorf("expected redirect to /forbidden, got %q", location)
	}
}

func TestRequireRole_WrongRole_API_Returns403(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/admin", nil)
	req.Header.Set("Accept", "application/json")
	req = withTestUser(req, "user")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestRequireRole_CorrectRole_Proceeds(t *testing.T) {
	sm := newTestSessionManager(t)

	called := false
	handler := sm.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/admin", nil)
	req = withTestUser(req, "admin")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Error("expected handler to be called")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestRequireRole_MultipleRoles(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireRole("admin", "user")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		role     string
		expected int
	}{
		{"admin", http.StatusOK},
		{"user", http.StatusOK},
		{"guest", http.StatusSeeOther}, // redirect to forbidden
		{"", http.StatusSeeOther},      // redirect to forbidden
	}

	for _, tc := range tests {
		t.Run(tc.role, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin/accounts", nil)
			req.Header.Set("Accept", "text/html")
			req = withTestUser(req, tc.role)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.expected {
				t.Errorf("role %q: expected status %d, got %d", tc.role, tc.expected, rec.Code)
			}
		})
	}
}

func TestRequireRole_CaseInsensitive(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Test with uppercase role
	req := httptest.NewRequest("GET", "/admin", nil)
	req = withTestUser(req, "ADMIN")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d for uppercase role, got %d", http.StatusOK, rec.Code)
	}
}

func TestCurrentUser_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	user, ok := auth.CurrentUser(req)

	if ok {
		t.Error("expected ok to be false when no user in context")
	}
	if user != nil {
		t.Error("expected user to be nil when no user in context")
	}
}

func TestCurrentUser_WithUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req = withTestUser(req, "admin")

	user, ok := auth.CurrentUser(req)

	if !ok {
		t.Error("expected ok to be true when user in context")
	}
	if user == nil {
		t.Fatal("expected user to not be nil")
	}
	if user.Role != "admin" {
		t.Errorf("expected role 'admin', got %q", user.Role)
	}
}

// withTestUser injects a SessionUser into the request context for testing.
// This simulates what LoadSessionUser middleware does.
func withTestUser(r *http.Request, role string) *http.Request {
	user := &auth.SessionUser{
		ID:          "uid-507f1f77bcf86cd799439011",
		Name:        "Test User",
		Email:       "test@example.com",
		Role:        role,
		Status:      "approved",
		LoginStatus: "approved",
	}
	return auth.WithTestUser(r, user)
}

type stubFetcher struct {
	users map[string]*auth.SessionUser
}

func (f stubFetcher) FetchUser(_ context.Context, id string) *auth.SessionUser {
	u, ok := f.users[id]
	if !ok {
		return nil
	}
	cp := *u
	return &cp
}

// signIn runs SignIn against a recorder and returns the resulting cookies.
func signIn(t *testing.T, sm *auth.SessionManager, a models.Account) []*http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", nil)
	if err := sm.SignIn(rec, req, a); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}
	return cookies
}

func serveWithCookies(sm *auth.SessionManager, h http.Handler, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	sm.LoadSessionUser(h).ServeHTTP(rec, req)
	return rec
}

func TestSignIn_LoadSessionUser_RoundTrip(t *testing.T) {
	sm := newTestSessionManager(t)
	cookies := signIn(t, sm, models.Account{
		ID: "uid-1", Email: "juan@example.com", FirstName: "Juan", LastName: "Cruz",
		UserType: models.UserTypeUser, Status: models.StatusApproved,
	})

	var got *auth.SessionUser
	serveWithCookies(sm, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	}), "/me", cookies)

	if got == nil {
		t.Fatal("expected a user in context")
	}
	if got.ID != "uid-1" || got.Name != "Juan Cruz" || got.Email != "juan@example.com" {
		t.Errorf("unexpected session user: %+v", got)
	}
	if got.LoginStatus != models.StatusApproved || got.Status != models.StatusApproved {
		t.Errorf("statuses: login=%q current=%q", got.LoginStatus, got.Status)
	}
}

func TestLoadSessionUser_FetcherSuppliesCurrentStatus(t *testing.T) {
	sm := newTestSessionManager(t)
	sm.SetUserFetcher(stubFetcher{users: map[string]*auth.SessionUser{
		"uid-2": {ID: "uid-2", Role: models.UserTypeUser, Status: models.StatusApproved},
	}})
	cookies := signIn(t, sm, models.Account{
		ID: "uid-2", UserType: models.UserTypeUser, Status: models.StatusPending,
	})

	var got *auth.SessionUser
	serveWithCookies(sm, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	}), "/me", cookies)

	if got == nil {
		t.Fatal("expected a user in context")
	}
	if got.Status != models.StatusApproved {
		t.Errorf("Status: got %q, want current status %q", got.Status, models.StatusApproved)
	}
	if got.LoginStatus != models.StatusPending {
		t.Errorf("LoginStatus: got %q, want status at sign-in %q", got.LoginStatus, models.StatusPending)
	}
}

func TestLoadSessionUser_DeletedAccountIsSignedOut(t *testing.T) {
	sm := newTestSessionManager(t)
	sm.SetUserFetcher(stubFetcher{users: map[string]*auth.SessionUser{}})
	cookies := signIn(t, sm, models.Account{ID: "gone", Status: models.StatusApproved})

	signedIn := true
	serveWithCookies(sm, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, signedIn = auth.CurrentUser(r)
	}), "/me", cookies)

	if signedIn {
		t.Error("a deleted account should not be signed in")
	}
}

func TestRequireDashboard(t *testing.T) {
	sm := newTestSessionManager(t)
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name        string
		loginStatus string
		status      string
		wantCode    int
		wantDest    string
	}{
		{"approved both", "approved", "approved", http.StatusOK, ""},
		{"still pending", "pending", "pending", http.StatusSeeOther, "/pending-approval"},
		{"rejected", "pending", "rejected", http.StatusSeeOther, "/rejected-user"},
		{"approved since sign-in", "pending", "approved", http.StatusSeeOther, "/login"},
		{"rejected since sign-in", "approved", "rejected", http.StatusSeeOther, "/rejected-user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/dashboard", nil)
			req.Header.Set("Accept", "text/html")
			req = auth.WithTestUser(req, &auth.SessionUser{
				ID: "uid", Role: "user", Status: tt.status, LoginStatus: tt.loginStatus,
			})
			rec := httptest.NewRecorder()
			sm.RequireDashboard(ok).ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("code: got %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantDest != "" {
				if loc := rec.Header().Get("Location"); loc != tt.wantDest {
					t.Errorf("Location: got %q, want %q", loc, tt.wantDest)
				}
			}
		})
	}
}

func TestRequireDashboard_API_Returns403(t *testing.T) {
	sm := newTestSessionManager(t)
	req := httptest.NewRequest("GET", "/dashboard", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "uid", Role: "user", Status: "pending", LoginStatus: "pending"})
	rec := httptest.NewRecorder()

	sm.RequireDashboard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestGates_API_AnswerJSON(t *testing.T) {
	sm := newTestSessionManager(t)
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	})

	tests := []struct {
		name     string
		handler  http.Handler
		user     *auth.SessionUser
		wantCode int
		wantMsg  string
		wantDest string
	}{
		{"anonymous", sm.RequireSignedIn(ok), nil, http.StatusUnauthorized, apperr.MsgSignIn, ""},
		{"wrong role", sm.RequireRole("admin")(ok),
			&auth.SessionUser{ID: "uid", Role: "user", Status: "approved", LoginStatus: "approved"},
			http.StatusForbidden, apperr.MsgNoPermission, ""},
		{"pending", sm.RequireDashboard(ok),
			&auth.SessionUser{ID: "uid", Role: "user", Status: "pending", LoginStatus: "pending"},
			http.StatusForbidden, apperr.MsgNoPermission, "/pending-approval"},
		{"rejected", sm.RequireDashboard(ok),
			&auth.SessionUser{ID: "uid", Role: "user", Status: "rejected", LoginStatus: "pending"},
			http.StatusForbidden, apperr.MsgNoPermission, "/rejected-user"},
		{"approved since sign-in", sm.RequireDashboard(ok),
			&auth.SessionUser{ID: "uid", Role: "user", Status: "approved", LoginStatus: "pending"},
			http.StatusForbidden, apperr.MsgSignInAgain, "/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/dashboard", nil)
			if tt.user != nil {
				req = auth.WithTestUser(req, tt.user)
			}
			rec := httptest.NewRecorder()
			tt.handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("code: got %d, want %d", rec.Code, tt.wantCode)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
				t.Errorf("Content-Type: got %q", ct)
			}
			var body struct {
				Error       string `json:"error"`
				Destination string `json:"destination"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Error != tt.wantMsg {
				t.Errorf("error: got %q, want %q", body.Error, tt.wantMsg)
			}
			if body.Destination != tt.wantDest {
				t.Errorf("destination: got %q, want %q", body.Destination, tt.wantDest)
			}
		})
	}
}

func TestDestroy_ExpiresCookie(t *testing.T) {
	sm := newTestSessionManager(t)
	rec := httptest.NewRecorder()
	if err := sm.Destroy(rec, httptest.NewRequest("POST", "/logout", nil)); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}
	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" {
			found = true
			if c.MaxAge != -1 {
				t.Errorf("MaxAge: got %d, want -1", c.MaxAge)
			}
		}
	}
	if !found {
		t.Error("expected a deletion cookie")
	}
}

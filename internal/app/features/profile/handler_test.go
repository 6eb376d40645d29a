package profile_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	uierrors "github.com/dalemusser/youthportal/internal/app/features/errors"
	"github.com/dalemusser/youthportal/internal/app/features/profile"
	userstore "github.com/dalemusser/youthportal/internal/app/store/users"
	"github.com/dalemusser/youthportal/internal/app/system/access"
	"github.com/dalemusser/youthportal/internal/domain/models"
	"github.com/dalemusser/youthportal/internal/testutil"
	"go.uber.org/zap"
)

type meBody struct {
	Account           models.Account     `json:"account"`
	FullName          string             `json:"full_name"`
	Destination       access.Destination `json:"destination"`
	CanEnterDashboard bool               `json:"can_enter_dashboard"`
}

func setup(t *testing.T) (*profile.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := profile.NewHandler(userstore.New(db), testutil.NewSessionManager(t), uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	return h, testutil.NewFixtures(t, db)
}

func asUser(a models.Account, loginStatus string) testutil.TestUser {
	return testutil.TestUser{ID: a.ID, Email: a.Email, Role: a.UserType, Status: a.Status, LoginStatus: loginStatus}
}

func TestServeMe_ApprovedSinceLogin(t *testing.T) {
	h, fx := setup(t)
	ctx := context.Background()
	a := fx.CreateAccount(ctx, "juan@example.com", models.StatusApproved, models.UserTypeUser)

	rec := testutil.NewRecorder()
	h.ServeMe(rec, testutil.NewAuthenticatedRequest("GET", "/me", asUser(a, models.StatusPending)))
	rec.AssertStatus(t, http.StatusOK)

	var body meBody
	rec.DecodeJSON(t, &body)
	if body.Destination != access.UserDashboard {
		t.Errorf("destination: got %q", body.Destination)
	}
	if body.CanEnterDashboard {
		t.Error("a session created while pending must not enter the dashboard")
	}
	if body.FullName != "Test Youth" {
		t.Errorf("full name: got %q", body.FullName)
	}
}

func TestServeMe_MissingAccount(t *testing.T) {
	h, _ := setup(t)
	rec := testutil.NewRecorder()
	h.ServeMe(rec, testutil.NewAuthenticatedRequest("GET", "/me", testutil.RegularUser(models.StatusApproved)))
	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "User data not found")
}

func TestHandleUpdateProfile(t *testing.T) {
	h, fx := setup(t)
	ctx := context.Background()
	a := fx.CreatePending(ctx, "juan@example.com")

	body := map[string]any{
		"last_name": "Dela Cruz", "first_name": "Juan", "middle_initial": "P",
		"username": "juandc", "age": 18, "house_number": "5", "street": "Rizal St",
		"barangay": "Poblacion", "city_municipality": "Lipa", "province": "Batangas",
		"status": models.StatusApproved, "user_type": models.UserTypeAdmin,
	}
	req := testutil.WithUser(testutil.NewJSONRequest("PUT", "/me/profile", body), asUser(a, a.Status))
	rec := testutil.NewRecorder()
	h.HandleUpdateProfile(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var got meBody
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Account.FirstName != "Juan" || got.Account.Age != 18 {
		t.Errorf("profile not applied: %+v", got.Account)
	}
	if got.Account.Status != models.StatusPending || got.Account.UserType != models.UserTypeUser {
		t.Error("status and user type must not be writable through the profile")
	}
}

func TestHandleUpdateProfile_Validation(t *testing.T) {
	h, fx := setup(t)
	a := fx.CreatePending(context.Background(), "juan@example.com")

	req := testutil.WithUser(testutil.NewJSONRequest("PUT", "/me/profile", map[string]any{
		"first_name": "Juan", "age": 40,
	}), asUser(a, a.Status))
	rec := testutil.NewRecorder()
	h.HandleUpdateProfile(rec, req)
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Age must be between 15 and 30")
}

package dashboard_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/youthportal/internal/app/features/dashboard"
	uierrors "github.com/dalemusser/youthportal/internal/app/features/errors"
	"github.com/dalemusser/youthportal/internal/app/system/youthstats"
	"github.com/dalemusser/youthportal/internal/domain/models"
	"github.com/dalemusser/youthportal/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*dashboard.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := dashboard.NewHandler(db, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	h.Now = func() time.Time { return time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC) }
	return h, testutil.NewFixtures(t, db)
}

func TestServeDashboard_User(t *testing.T) {
	h, fx := newTestHandler(t)
	a := fx.CreateAccount(context.Background(), "juan@example.com", models.StatusApproved, models.UserTypeUser)

	rec := testutil.NewRecorder()
	h.ServeDashboard(rec, testutil.NewAuthenticatedRequest("GET", "/dashboard", testutil.TestUser{
		ID: a.ID, Role: models.UserTypeUser, Status: models.StatusApproved, LoginStatus: models.StatusApproved,
	}))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"next_step":"/me/survey"`)
	rec.AssertContains(t, `"full_name":"Test Youth"`)
}

func TestServeDashboard_AdminGetsFigures(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx := context.Background()
	fx.CreatePending(ctx, "a@example.com")
	b := fx.CreateAccount(ctx, "b@example.com", models.StatusApproved, models.UserTypeUser)
	fx.CreateSurvey(ctx, b.ID, testutil.CompleteAnswers(), time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC))

	rec := testutil.NewRecorder()
	h.ServeDashboard(rec, testutil.NewAuthenticatedRequest("GET", "/dashboard", testutil.AdminUser()))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"pending":1`)
	rec.AssertContains(t, `"total_surveys":1`)
}

func TestServeStats(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx := context.Background()
	ans := testutil.CompleteAnswers()
	fx.CreateSurvey(ctx, "u1", ans, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))
	ans.WorkStatus = ""
	fx.CreateSurvey(ctx, "u2", ans, time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC))
	fx.CreateSurvey(ctx, "u3", ans, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))

	rec := testutil.NewRecorder()
	h.ServeStats(rec, testutil.NewAuthenticatedRequest("GET", "/admin/stats", testutil.AdminUser()))
	rec.AssertStatus(t, http.StatusOK)

	var s youthstats.Summary
	rec.DecodeJSON(t, &s)
	if s.TotalSurveys != 3 {
		t.Errorf("total: got %d", s.TotalSurveys)
	}
	if s.WorkStatuses[youthstats.NotSpecified] != 2 || s.WorkStatuses["Unemployed"] != 1 {
		t.Errorf("work statuses: got %v", s.WorkStatuses)
	}
	if len(s.Monthly) != youthstats.HistogramMonths {
		t.Fatalf("histogram length: got %d", len(s.Monthly))
	}
	if s.Monthly[0].Month != "Oct 2025" || s.Monthly[0].Surveys != 1 {
		t.Errorf("oldest bucket: got %+v", s.Monthly[0])
	}
	if last := s.Monthly[5]; last.Month != "Mar 2026" || last.Surveys != 1 {
		t.Errorf("current bucket: got %+v", last)
	}
}

func TestAdminRoutes_RequireAdmin(t *testing.T) {
	h, _ := newTestHandler(t)
	router := dashboard.AdminRoutes(h, testutil.NewSessionManager(t))

	req := testutil.NewAuthenticatedRequest("GET", "/stats", testutil.RegularUser(models.StatusApproved))
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusForbidden)
}

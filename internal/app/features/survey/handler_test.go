package survey_test

import (
	"context"
	"net/http"
	"testing"

	uierrors "github.com/dalemusser/youthportal/internal/app/features/errors"
	"github.com/dalemusser/youthportal/internal/app/features/survey"
	surveystore "github.com/dalemusser/youthportal/internal/app/store/surveys"
	userstore "github.com/dalemusser/youthportal/internal/app/store/users"
	"github.com/dalemusser/youthportal/internal/app/system/surveyform"
	"github.com/dalemusser/youthportal/internal/domain/models"
	"github.com/dalemusser/youthportal/internal/testutil"
	"go.uber.org/zap"
)

func setup(t *testing.T) (*survey.Handler, *userstore.Store, testutil.TestUser) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	users := userstore.New(db)
	form := &surveyform.Service{Surveys: surveystore.New(db), Accounts: users, Log: zap.NewNop()}
	h := survey.NewHandler(form, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())

	a := testutil.NewFixtures(t, db).CreateAccount(context.Background(), "juan@example.com", models.StatusApproved, models.UserTypeUser)
	u := testutil.TestUser{ID: a.ID, Email: a.Email, Role: a.UserType, Status: a.Status, LoginStatus: a.Status}
	return h, users, u
}

func TestServeSurvey_NoneYet(t *testing.T) {
	h, _, u := setup(t)
	rec := testutil.NewRecorder()
	h.ServeSurvey(rec, testutil.NewAuthenticatedRequest("GET", "/me/survey", u))
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestHandleSave_CreateThenUpdate(t *testing.T) {
	h, users, u := setup(t)

	ans := testutil.CompleteAnswers()
	rec := testutil.NewRecorder()
	h.HandleSave(rec, testutil.WithUser(testutil.NewJSONRequest("POST", "/me/survey", ans), u))
	rec.AssertStatus(t, http.StatusCreated)
	rec.AssertContains(t, "Survey submitted successfully!")

	a, err := users.GetByID(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !a.SurveyCompleted {
		t.Error("survey_completed should be set after the first save")
	}

	ans.PreferredSports = "Basketball"
	rec = testutil.NewRecorder()
	h.HandleSave(rec, testutil.WithUser(testutil.NewJSONRequest("POST", "/me/survey", ans), u))
	rec.AssertStatus(t, http.StatusOK)

	rec = testutil.NewRecorder()
	h.ServeSurvey(rec, testutil.NewAuthenticatedRequest("GET", "/me/survey", u))
	rec.AssertStatus(t, http.StatusOK)
	var got models.Survey
	rec.DecodeJSON(t, &got)
	if got.PreferredSports != "Basketball" {
		t.Errorf("preferred sports: got %q", got.PreferredSports)
	}
}

func TestHandleSave_MissingFields(t *testing.T) {
	h, _, u := setup(t)
	rec := testutil.NewRecorder()
	h.HandleSave(rec, testutil.WithUser(testutil.NewJSONRequest("POST", "/me/survey", models.Answers{FirstName: "Juan"}), u))
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "last_name")
}

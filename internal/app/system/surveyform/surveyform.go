// Package surveyform checks and saves the youth demographics survey.
//
// A survey is saved only when every required answer is present. The first
// save creates the document; later saves edit that same document in place.
package surveyform

import (
	"context"
	"errors"
	"strings"

	surveystore "github.com/dalemusser/youthportal/internal/app/store/surveys"
	"github.com/dalemusser/youthportal/internal/app/system/apperr"
	"github.com/dalemusser/youthportal/internal/app/system/htmlsanitize"
	"github.com/dalemusser/youthportal/internal/app/system/metrics"
	"github.com/dalemusser/youthportal/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Answer values for the KK assembly question.
const (
	AttendedYes = "Yes"
	AttendedNo  = "No"
)

type requirement struct {
	field string
	msg   string
	get   func(*models.Answers) string
}

// required lists the mandatory answers in form order.
var required = []requirement{
	{"last_name", "Last name is required", func(a *models.Answers) string { return a.LastName }},
	{"first_name", "First name is required", func(a *models.Answers) string { return a.FirstName }},
	{"sex", "Sex is required", func(a *models.Answers) string { return a.Sex }},
	{"age", "Age is required", func(a *models.Answers) string { return a.Age }},
	{"birthday", "Birthday is required", func(a *models.Answers) string { return a.Birthday }},
	{"email_address", "Email is required", func(a *models.Answers) string { return a.EmailAddress }},
	{"street", "Street is required", func(a *models.Answers) string { return a.Street }},
	{"barangay", "Barangay is required", func(a *models.Answers) string { return a.Barangay }},
	{"province", "Province is required", func(a *models.Answers) string { return a.Province }},
	{"city_municipality", "City/Municipality is required", func(a *models.Answers) string { return a.CityMunicipality }},
	{"civil_status", "Civil status is required", func(a *models.Answers) string { return a.CivilStatus }},
	{"youth_classification", "Youth classification is required", func(a *models.Answers) string { return a.YouthClassification }},
	{"youth_age_group", "Youth age group is required", func(a *models.Answers) string { return a.YouthAgeGroup }},
	{"educational_background", "Educational background is required", func(a *models.Answers) string { return a.EducationalBackground }},
	{"work_status", "Work status is required", func(a *models.Answers) string { return a.WorkStatus }},
	{"gender", "Gender is required", func(a *models.Answers) string { return a.Gender }},
}

// Clean strips markup from every answer and drops the follow-up answer that
// does not apply: why_not_attended is kept only when attended is No, and
// times_attended only when it is Yes.
func Clean(ans models.Answers) models.Answers {
	htmlsanitize.Fields(
		&ans.LastName, &ans.FirstName, &ans.MiddleName, &ans.Suffix,
		&ans.Street, &ans.Barangay, &ans.Province, &ans.CityMunicipality,
		&ans.Sex, &ans.Age, &ans.Birthday, &ans.EmailAddress,
		&ans.ContactNumber, &ans.FacebookAccount,
		&ans.CivilStatus, &ans.YouthClassification, &ans.YouthAgeGroup,
		&ans.EducationalBackground, &ans.WorkStatus, &ans.Gender,
		&ans.RegisteredSKVoter, &ans.RegisteredNationalVoter,
		&ans.AttendedKKAssembly, &ans.TimesAttendedKKAssembly, &ans.WhyNotAttended,
		&ans.VotedLastElection, &ans.PreferredSports,
	)
	switch {
	case strings.EqualFold(ans.AttendedKKAssembly, AttendedYes):
		ans.WhyNotAttended = ""
	case strings.EqualFold(ans.AttendedKKAssembly, AttendedNo):
		ans.TimesAttendedKKAssembly = ""
	default:
		ans.WhyNotAttended = ""
		ans.TimesAttendedKKAssembly = ""
	}
	return ans
}

// Validate returns a *apperr.ValidationError naming every missing required
// answer, or nil.
func Validate(ans models.Answers) error {
	fe := apperr.FieldErrors{}
	for _, r := range required {
		if strings.TrimSpace(r.get(&ans)) == "" {
			fe.Add(r.field, r.msg)
		}
	}
	return fe.Err(apperr.MsgRequiredFields)
}

// SurveyStore is the part of the survey store the form needs.
type SurveyStore interface {
	GetFirstByUser(ctx context.Context, userID string) (*models.Survey, error)
	Create(ctx context.Context, userID string, ans models.Answers) (models.Survey, error)
	UpdateAnswers(ctx context.Context, id primitive.ObjectID, ans models.Answers) (*models.Survey, error)
}

// AccountStore records survey completion on the owning account.
type AccountStore interface {
	SetSurveyCompleted(ctx context.Context, id string, done bool) error
}

// Service saves surveys for signed-in accounts.
type Service struct {
	Surveys  SurveyStore
	Accounts AccountStore
	Metrics  *metrics.Metrics
	Log      *zap.Logger

	// OnSaved, when set, runs after every successful save.
	OnSaved func(accountID string)
}

// Save validates ans and stores it for accountID. It returns the stored
// survey and whether this save created it.
func (s *Service) Save(ctx context.Context, accountID string, ans models.Answers) (models.Survey, bool, error) {
	ans = Clean(ans)
	if err := Validate(ans); err != nil {
		return models.Survey{}, false, err
	}

	var (
		saved   models.Survey
		created bool
	)
	existing, err := s.Surveys.GetFirstByUser(ctx, accountID)
	switch {
	case errors.Is(err, surveystore.ErrNotFound):
		saved, err = s.Surveys.Create(ctx, accountID, ans)
		if err != nil {
			return models.Survey{}, false, err
		}
		created = true
	case err != nil:
		return models.Survey{}, false, err
	default:
		upd, err := s.Surveys.UpdateAnswers(ctx, existing.ID, ans)
		if err != nil {
			return models.Survey{}, false, err
		}
		saved = *upd
	}

	if err := s.Accounts.SetSurveyCompleted(ctx, accountID, true); err != nil {
		// the survey is stored; the flag only drives the dashboard prompt
		s.Log.Warn("survey saved but completion flag not set",
			zap.String("user_id", accountID), zap.Error(err))
	}

	action := "updated"
	if created {
		action = "created"
	}
	s.Metrics.SurveySaved(action)
	if s.OnSaved != nil {
		s.OnSaved(accountID)
	}
	s.Log.Info("survey saved", zap.String("user_id", accountID), zap.String("action", action))
	return saved, created, nil
}

// Load returns the caller's survey or an *apperr.NotFoundError.
func (s *Service) Load(ctx context.Context, accountID string) (*models.Survey, error) {
	sv, err := s.Surveys.GetFirstByUser(ctx, accountID)
	if errors.Is(err, surveystore.ErrNotFound) {
		return nil, apperr.NotFound("survey", accountID)
	}
	return sv, err
}

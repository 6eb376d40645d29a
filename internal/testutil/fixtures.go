package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/youthportal/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateAccount inserts an account with the given email, status and user type.
// The remaining profile fields get plausible values.
func (f *Fixtures) CreateAccount(ctx context.Context, email, status, userType string) models.Account {
	f.t.Helper()

	now := time.Now().UTC()
	a := models.Account{
		ID:               uuid.NewString(),
		Email:            email,
		FirstName:        "Test",
		LastName:         "Youth",
		Username:         "testyouth",
		Age:              20,
		HouseNumber:      "1",
		Street:           "Rizal St",
		Barangay:         "Poblacion",
		CityMunicipality: "Lipa",
		Province:         "Batangas",
		UserType:         userType,
		Status:           status,
		CreatedAt:        now,
		UpdatedAt:        &now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test account: %v", err)
	}
	return a
}

// CreatePending creates a pending regular account.
func (f *Fixtures) CreatePending(ctx context.Context, email string) models.Account {
	f.t.Helper()
	return f.CreateAccount(ctx, email, models.StatusPending, models.UserTypeUser)
}

// CreateAdmin creates an approved admin account.
func (f *Fixtures) CreateAdmin(ctx context.Context, email string) models.Account {
	f.t.Helper()
	return f.CreateAccount(ctx, email, models.StatusApproved, models.UserTypeAdmin)
}

// CreateSurvey inserts a survey for userID with the given answers and creation time.
func (f *Fixtures) CreateSurvey(ctx context.Context, userID string, ans models.Answers, createdAt time.Time) models.Survey {
	f.t.Helper()

	sv := models.Survey{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Answers:   ans,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if _, err := f.db.Collection("surveys").InsertOne(ctx, sv); err != nil {
		f.t.Fatalf("failed to create test survey: %v", err)
	}
	return sv
}

// CompleteAnswers returns answers that pass survey validation.
func CompleteAnswers() models.Answers {
	return models.Answers{
		LastName:              "Dela Cruz",
		FirstName:             "Juan",
		Street:                "Rizal St",
		Barangay:              "Poblacion",
		Province:              "Batangas",
		CityMunicipality:      "Lipa",
		Sex:                   "Male",
		Age:                   "20",
		Birthday:              "2006-01-15",
		EmailAddress:          "juan@example.com",
		CivilStatus:           "Single",
		YouthClassification:   "In School Youth",
		YouthAgeGroup:         "Core Youth (18-24 yrs.old)",
		EducationalBackground: "College Level",
		WorkStatus:            "Unemployed",
		Gender:                "Male",
		AttendedKKAssembly:    "No",
		WhyNotAttended:        "There was no KK Assembly Meeting",
	}
}

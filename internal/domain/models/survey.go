// internal/domain/models/survey.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Survey is one youth-demographics questionnaire response.
// Every answer is stored as a string, including age and the Yes/No fields.
type Survey struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID string             `bson:"user_id" json:"user_id"`

	Answers `bson:",inline"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Answers is the questionnaire payload as submitted by the account owner.
type Answers struct {
	LastName         string `bson:"last_name" json:"last_name"`
	FirstName        string `bson:"first_name" json:"first_name"`
	MiddleName       string `bson:"middle_name" json:"middle_name"`
	Suffix           string `bson:"suffix" json:"suffix"`
	Street           string `bson:"street" json:"street"`
	Barangay         string `bson:"barangay" json:"barangay"`
	Province         string `bson:"province" json:"province"`
	CityMunicipality string `bson:"city_municipality" json:"city_municipality"`
	Sex              string `bson:"sex" json:"sex"`
	Age              string `bson:"age" json:"age"`
	Birthday         string `bson:"birthday" json:"birthday"`
	EmailAddress     string `bson:"email_address" json:"email_address"`
	ContactNumber    string `bson:"contact_number" json:"contact_number"`
	FacebookAccount  string `bson:"facebook_account" json:"facebook_account"`

	CivilStatus           string `bson:"civil_status" json:"civil_status"`
	YouthClassification   string `bson:"youth_classification" json:"youth_classification"`
	YouthAgeGroup         string `bson:"youth_age_group" json:"youth_age_group"`
	EducationalBackground string `bson:"educational_background" json:"educational_background"`
	WorkStatus            string `bson:"work_status" json:"work_status"`
	Gender                string `bson:"gender" json:"gender"`

	RegisteredSKVoter       string `bson:"registered_sk_voter" json:"registered_sk_voter"`
	RegisteredNationalVoter string `bson:"registered_national_voter" json:"registered_national_voter"`
	AttendedKKAssembly      string `bson:"attended_kk_assembly" json:"attended_kk_assembly"`
	TimesAttendedKKAssembly string `bson:"times_attended_kk_assembly" json:"times_attended_kk_assembly"`
	WhyNotAttended          string `bson:"why_not_attended" json:"why_not_attended"`
	VotedLastElection       string `bson:"voted_last_election" json:"voted_last_election"`
	PreferredSports         string `bson:"preferred_sports" json:"preferred_sports"`
}

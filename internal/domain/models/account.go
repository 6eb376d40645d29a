// internal/domain/models/account.go
package models

import (
	"time"
)

// Account status values.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Account user types.
const (
	UserTypeAdmin = "admin"
	UserTypeUser  = "user"
)

// Account is a registrant's profile, role and approval status.
//
// NOTE:
//   - ID is the identity id issued at registration, not a generated ObjectID.
//   - Surveys reference an account by ID through surveys.user_id; nothing in
//     the store enforces that link.
type Account struct {
	ID            string `bson:"_id" json:"id"`
	Email         string `bson:"email" json:"email"` // lowercase
	FirstName     string `bson:"first_name" json:"first_name"`
	LastName      string `bson:"last_name" json:"last_name"`
	MiddleInitial string `bson:"middle_initial,omitempty" json:"middle_initial,omitempty"`
	Username      string `bson:"username" json:"username"`
	Age           int    `bson:"age" json:"age"`
	BirthDate     string `bson:"birth_date,omitempty" json:"birth_date,omitempty"`
	ContactNumber string `bson:"contact_number,omitempty" json:"contact_number,omitempty"`

	HouseNumber      string `bson:"house_number" json:"house_number"`
	Street           string `bson:"street" json:"street"`
	Barangay         string `bson:"barangay" json:"barangay"`
	CityMunicipality string `bson:"city_municipality" json:"city_municipality"`
	Province         string `bson:"province" json:"province"`

	UserType        string `bson:"user_type" json:"user_type"` // admin | user
	Status          string `bson:"status" json:"status"`       // pending | approved | rejected
	SurveyCompleted bool   `bson:"survey_completed" json:"survey_completed"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// IsAdmin reports whether the account carries the admin user type.
func (a Account) IsAdmin() bool {
	return a.UserType == UserTypeAdmin
}

// Profile holds the registrant-supplied fields used at registration and
// on profile edits. Status and user type are never part of it.
type Profile struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	MiddleInitial    string `json:"middle_initial"`
	Username         string `json:"username"`
	Age              int    `json:"age"`
	BirthDate        string `json:"birth_date"`
	ContactNumber    string `json:"contact_number"`
	HouseNumber      string `json:"house_number"`
	Street           string `json:"street"`
	Barangay         string `json:"barangay"`
	CityMunicipality string `json:"city_municipality"`
	Province         string `json:"province"`
}

// ValidStatus reports whether s is one of the account status values.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

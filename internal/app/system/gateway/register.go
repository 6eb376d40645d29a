package gateway

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/dalemusser/youthportal/internal/app/system/apperr"
	"github.com/dalemusser/youthportal/internal/app/system/htmlsanitize"
	"github.com/dalemusser/youthportal/internal/app/system/inputval"
	"github.com/dalemusser/youthportal/internal/app/system/normalize"
	"github.com/dalemusser/youthportal/internal/domain/models"
)

// Registration age limits, inclusive.
const (
	MinAge = 15
	MaxAge = 30
)

// MsgAgeRange is the summary shown when the age is outside the limits.
const MsgAgeRange = "Age must be between 15 and 30 years old for user registration"

// Age accepts a JSON number or a numeric string, since forms post strings.
type Age string

func (a *Age) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*a = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Age(strings.TrimSpace(s))
		return nil
	}
	*a = Age(b)
	return nil
}

// ProfileInput is the owner-editable part of an account as posted by the
// registration and profile forms.
type ProfileInput struct {
	LastName         string `json:"last_name" validate:"required" label:"Last name"`
	FirstName        string `json:"first_name" validate:"required" label:"First name"`
	MiddleInitial    string `json:"middle_initial" validate:"omitempty,max=1" label:"Middle initial"`
	Username         string `json:"username" validate:"required,min=3" label:"Username"`
	Age              Age    `json:"age" label:"Age"`
	BirthDate        string `json:"birth_date"`
	ContactNumber    string `json:"contact_number"`
	HouseNumber      string `json:"house_number" validate:"required" label:"House number"`
	Street           string `json:"street" validate:"required" label:"Street"`
	Barangay         string `json:"barangay" validate:"required" label:"Barangay"`
	CityMunicipality string `json:"city_municipality" validate:"required" label:"City/Municipality"`
	Province         string `json:"province" validate:"required" label:"Province"`
}

// RegisterInput is the registration form.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,emailaddr" label:"Email"`
	Password string `json:"password" validate:"required,min=6" label:"Password"`
	ProfileInput
}

func (p *ProfileInput) clean() {
	htmlsanitize.Fields(
		&p.LastName, &p.FirstName, &p.MiddleInitial, &p.Username,
		&p.BirthDate, &p.ContactNumber,
		&p.HouseNumber, &p.Street, &p.Barangay, &p.CityMunicipality, &p.Province,
	)
}

// Profile converts the cleaned input. Age must already have been checked.
func (p ProfileInput) Profile() models.Profile {
	age, _ := strconv.Atoi(string(p.Age))
	return models.Profile{
		FirstName:        p.FirstName,
		LastName:         p.LastName,
		MiddleInitial:    p.MiddleInitial,
		Username:         p.Username,
		Age:              age,
		BirthDate:        p.BirthDate,
		ContactNumber:    p.ContactNumber,
		HouseNumber:      p.HouseNumber,
		Street:           p.Street,
		Barangay:         p.Barangay,
		CityMunicipality: p.CityMunicipality,
		Province:         p.Province,
	}
}

// CheckAge records an age problem in fe and reports whether the age is
// acceptable for an account.
func CheckAge(raw Age, fe apperr.FieldErrors) bool {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		fe.Add("age", "Age is required")
		return false
	}
	age, err := strconv.Atoi(s)
	if err != nil {
		fe.Add("age", "Age must be a number")
		return false
	}
	switch {
	case age < MinAge:
		fe.Add("age", "Age must be at least 15 years old")
		return false
	case age > MaxAge:
		fe.Add("age", "Age must be 30 years old or younger")
		return false
	}
	return true
}

// ValidateProfile cleans p in place and checks it.
func ValidateProfile(p *ProfileInput) error {
	p.clean()
	fe := apperr.FieldErrors{}
	summary := collect(inputval.Validate(p), fe)
	if !CheckAge(p.Age, fe) && isRange(fe["age"]) {
		summary = MsgAgeRange
	}
	return fe.Err(summary)
}

// ValidateRegistration cleans in and checks every field. The age range is
// checked here so an out-of-range registration never reaches the provider.
func ValidateRegistration(in *RegisterInput) error {
	in.Email = normalize.Email(in.Email)
	in.clean()
	fe := apperr.FieldErrors{}
	summary := collect(inputval.Validate(in), fe)
	if !CheckAge(in.Age, fe) && isRange(fe["age"]) {
		summary = MsgAgeRange
	}
	return fe.Err(summary)
}

func collect(res *inputval.Result, fe apperr.FieldErrors) string {
	for _, e := range res.Errors {
		fe.Add(e.Field, e.Message)
	}
	return res.First()
}

func isRange(msg string) bool {
	return strings.HasPrefix(msg, "Age must be at least") || strings.HasPrefix(msg, "Age must be 30")
}

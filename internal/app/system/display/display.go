// Package display derives the human-readable fields shown for an account.
// Every function here is pure: same record in, same string out.
package display

import (
	"strings"

	"github.com/dalemusser/youthportal/internal/app/system/normalize"
	"github.com/dalemusser/youthportal/internal/domain/models"
)

const (
	UnknownName     = "Unknown User"
	UnknownLocation = "Unknown Location"
)

// FullName joins first name, middle initial and last name. A non-empty
// middle initial is followed by a period. Whitespace is collapsed.
func FullName(first, middleInitial, last string) string {
	parts := []string{first}
	if mi := strings.TrimSpace(middleInitial); mi != "" {
		parts = append(parts, strings.TrimSuffix(mi, ".")+".")
	}
	parts = append(parts, last)
	return normalize.Spaces(strings.Join(parts, " "))
}

// FullAddress renders "house street, barangay, city, province". Blank
// segments are dropped so the result never holds empty or doubled commas.
func FullAddress(houseNumber, street, barangay, city, province string) string {
	segments := []string{
		normalize.Spaces(houseNumber + " " + street),
		normalize.Spaces(barangay),
		normalize.Spaces(city),
		normalize.Spaces(province),
	}

	out := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.Trim(s, ", ")
		if s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, ", ")
}

// Name is FullName for an account, falling back to UnknownName.
func Name(a models.Account) string {
	if n := FullName(a.FirstName, a.MiddleInitial, a.LastName); n != "" {
		return n
	}
	return UnknownName
}

// Location is FullAddress for an account, falling back to UnknownLocation.
func Location(a models.Account) string {
	if l := FullAddress(a.HouseNumber, a.Street, a.Barangay, a.CityMunicipality, a.Province); l != "" {
		return l
	}
	return UnknownLocation
}

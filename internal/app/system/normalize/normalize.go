// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email trims and lowercases an address. Stored emails are always in this form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a person or place name and collapses inner runs of whitespace.
// Case is preserved.
func Name(s string) string {
	return Spaces(s)
}

// Spaces collapses every run of whitespace to a single space and trims the ends.
func Spaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Status lowercases and trims an account status value.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// UserType lowercases and trims an account user type.
func UserType(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam trims a free-text query parameter. Case is preserved.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// StatusFilter normalizes a list status filter. "all" (any case) and blank
// both mean no filter and return "".
func StatusFilter(s string) string {
	s = Status(s)
	if s == "all" {
		return ""
	}
	return s
}

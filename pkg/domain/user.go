package domain

import "regexp"

// User is the authenticated identity as issued by the API.
type User struct {
	ID    string `json:"id"`
	Phone string `json:"phone"`
}

var phoneRe = regexp.MustCompile(`^\d{10}$`)

// ValidPhone reports whether s is a well-formed contact number
// (exactly 10 digits, no separators).
func ValidPhone(s string) bool {
	return phoneRe.MatchString(s)
}

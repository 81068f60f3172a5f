package model

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// User is returned by the login endpoint alongside the token.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Profile is the signed-in user's public details.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Initials returns the upper-cased first letters of the first and last word
// of the profile name, or a single letter for one-word names.
func (p Profile) Initials() string {
	return Initials(p.Name)
}

// Initials derives display initials from a full name.
func Initials(fullName string) string {
	parts := strings.Fields(fullName)
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return firstUpper(parts[0])
	default:
		return firstUpper(parts[0]) + firstUpper(parts[len(parts)-1])
	}
}

func firstUpper(word string) string {
	r, _ := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}

package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// Validation rule patterns
var (
	// EmailPattern accepts lower-cased addresses; callers normalise first.
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`

	// CourseCodePattern matches catalog codes such as CSC101 or ENG203.
	CourseCodePattern = `^[A-Z]{2,4}\d{3}[A-Z]?$`

	PasswordMinLength = 8
	NameMaxLength     = 100
)

// Levels lists the ordinal study levels a student can be enrolled at.
var Levels = []string{"100", "200", "300", "400", "500"}

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email      *regexp.Regexp
	CourseCode *regexp.Regexp
}{
	Email:      regexp.MustCompile(EmailPattern),
	CourseCode: regexp.MustCompile(CourseCodePattern),
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeCourseCode trims and upper-cases a course code.
func NormalizeCourseCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsEmail reports whether a normalised address is well formed.
func IsEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// IsCourseCode reports whether a normalised code is well formed.
func IsCourseCode(code string) bool {
	return CompiledPatterns.CourseCode.MatchString(code)
}

// IsLevel reports whether level is one of Levels.
func IsLevel(level string) bool {
	for _, l := range Levels {
		if l == level {
			return true
		}
	}
	return false
}

// PasswordProblem returns a human readable reason the password is rejected,
// or "" when it is acceptable.
func PasswordProblem(password string) string {
	if len(password) < PasswordMinLength {
		return "password must be at least 8 characters long"
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter {
		return "password must contain at least one letter"
	}
	if !hasDigit {
		return "password must contain at least one digit"
	}
	return ""
}

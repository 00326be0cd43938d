package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail(NormalizeEmail("  Ada.Obi@Uni.edu.ng ")))
	assert.False(t, IsEmail("not-an-email"))
	assert.False(t, IsEmail("a@b"))
}

func TestCourseCodes(t *testing.T) {
	assert.Equal(t, "CSC101", NormalizeCourseCode(" csc101 "))
	assert.True(t, IsCourseCode("CSC101"))
	assert.True(t, IsCourseCode("GST111A"))
	assert.False(t, IsCourseCode("101CSC"))
}

func TestIsLevel(t *testing.T) {
	assert.True(t, IsLevel("300"))
	assert.False(t, IsLevel("600"))
	assert.False(t, IsLevel(""))
}

func TestPasswordProblem(t *testing.T) {
	assert.Empty(t, PasswordProblem("secret123"))
	assert.Equal(t, "password must be at least 8 characters long", PasswordProblem("abc1"))
	assert.Equal(t, "password must contain at least one letter", PasswordProblem("12345678"))
	assert.Equal(t, "password must contain at least one digit", PasswordProblem("abcdefgh"))
}

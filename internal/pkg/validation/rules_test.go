package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidSubject(t *testing.T) {
	tests := []struct {
		subject string
		want    bool
	}{
		{"COMP", true},
		{"CS", true},
		{"MATHS", true},
		{"C", false},
		{"TOOLONG", false},
		{"comp", false},
		{"COMP1", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidSubject(tt.subject), "subject %q", tt.subject)
	}
}

func TestIsValidCourseNumber(t *testing.T) {
	tests := []struct {
		number string
		want   bool
	}{
		{"246", true},
		{"12", true},
		{"1234", true},
		{"101A", true},
		{"H246", true},
		{"1", false},
		{"12345", false},
		{"", false},
		{"ABC", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidCourseNumber(tt.number), "number %q", tt.number)
	}
}

func TestIsValidCatalogNumber(t *testing.T) {
	assert.True(t, IsValidCatalogNumber("246"))
	assert.False(t, IsValidCatalogNumber("246A"))
	assert.False(t, IsValidCatalogNumber("1"))
}

func TestIsValidYear(t *testing.T) {
	assert.True(t, IsValidYear(1900))
	assert.True(t, IsValidYear(2025))
	assert.True(t, IsValidYear(2100))
	assert.False(t, IsValidYear(1899))
	assert.False(t, IsValidYear(2101))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("jane.doe@my.centennialcollege.ca"))
	assert.True(t, IsValidEmail("a+b@example.org"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("@example.org"))
}

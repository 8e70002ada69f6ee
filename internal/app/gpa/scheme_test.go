package gpa

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deniz/courseloop/internal/app/models"
)

func TestSchemeForKnownSchemes(t *testing.T) {
	centennial := SchemeFor("centennial")
	assert.Equal(t, 4.5, centennial.ScaleMax)
	assert.Equal(t, 4.5, centennial.Points[models.GradeAPlus])

	us := SchemeFor("us")
	assert.Equal(t, 4.0, us.ScaleMax)
	assert.Equal(t, 4.0, us.Points[models.GradeAPlus])

	ects := SchemeFor("ects")
	assert.Equal(t, 4.0, ects.ScaleMax)
	assert.Equal(t, us.Points, ects.Points)
}

func TestSchemeForUnknownFallsBack(t *testing.T) {
	fallback := SchemeFor("not-a-scheme")
	assert.Equal(t, DefaultSchemeKey, fallback.Key)
}

func TestKnownScheme(t *testing.T) {
	assert.True(t, KnownScheme("centennial"))
	assert.True(t, KnownScheme("us"))
	assert.True(t, KnownScheme("ects"))
	assert.False(t, KnownScheme(""))
	assert.False(t, KnownScheme("Centennial"))
}

func TestNoSchemeMapsAdministrativeGrades(t *testing.T) {
	excluded := []models.Grade{
		models.GradePass, models.GradeIncomplete,
		models.GradeWithdrawn, models.GradeInProgress,
	}
	for key := range schemes {
		for _, grade := range excluded {
			_, mapped := schemes[key].Points[grade]
			assert.False(t, mapped, "scheme %s maps grade %s", key, grade)
		}
	}
}

func TestAvailableSchemesDefaultFirst(t *testing.T) {
	infos := AvailableSchemes()
	assert.Len(t, infos, 3)
	assert.Equal(t, DefaultSchemeKey, infos[0].Key)
	assert.Equal(t, "ects", infos[1].Key)
	assert.Equal(t, "us", infos[2].Key)
}

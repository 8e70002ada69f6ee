package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/deniz/courseloop/internal/app/gpa"
	"github.com/deniz/courseloop/internal/app/models"
	"github.com/deniz/courseloop/internal/app/models/dto"
	"github.com/deniz/courseloop/internal/pkg/apperrors"
)

func validRecordRequest() *dto.AddAcademicRecordRequest {
	return &dto.AddAcademicRecordRequest{
		Subject:      "COMP",
		CourseNumber: "246",
		Grade:        models.GradeAMinus,
		CreditHours:  3,
		Term:         models.TermFall,
		Year:         2025,
	}
}

func TestAddRecord(t *testing.T) {
	userRepo := new(MockUserStore)
	userRepo.On("AddAcademicRecord", mock.Anything, mock.AnythingOfType("*models.AcademicRecord")).Return(int64(7), nil)

	svc := NewTranscriptService(userRepo)

	record, err := svc.AddRecord(context.Background(), testUserID, validRecordRequest())
	require.NoError(t, err)
	assert.Equal(t, testUserID, record.UserID)
	assert.Equal(t, models.GradeAMinus, record.Grade)
}

func TestAddRecordInvalid(t *testing.T) {
	svc := NewTranscriptService(new(MockUserStore))

	tests := []struct {
		name   string
		mutate func(*dto.AddAcademicRecordRequest)
	}{
		{"bad grade", func(r *dto.AddAcademicRecordRequest) { r.Grade = "Z" }},
		{"bad term", func(r *dto.AddAcademicRecordRequest) { r.Term = "Trimester" }},
		{"negative credits", func(r *dto.AddAcademicRecordRequest) { r.CreditHours = -1 }},
		{"bad year", func(r *dto.AddAcademicRecordRequest) { r.Year = 1850 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRecordRequest()
			tt.mutate(req)
			_, err := svc.AddRecord(context.Background(), testUserID, req)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}

func TestGPAResolvesScheme(t *testing.T) {
	records := []models.AcademicRecord{
		{Subject: "COMP", CourseNumber: "246", Grade: models.GradeA, CreditHours: 3, Term: models.TermFall, Year: 2025},
	}
	userRepo := new(MockUserStore)
	userRepo.On("ListAcademicRecords", mock.Anything, testUserID).Return(records, nil)

	svc := NewTranscriptService(userRepo)

	tests := []struct {
		requested string
		resolved  string
	}{
		{"", gpa.DefaultSchemeKey},
		{"us", "us"},
		{"ects", "ects"},
		{"klingon", gpa.DefaultSchemeKey},
	}
	for _, tt := range tests {
		value, resolved, err := svc.GPA(context.Background(), testUserID, tt.requested)
		require.NoError(t, err)
		assert.Equal(t, tt.resolved, resolved, "requested %q", tt.requested)
		require.NotNil(t, value)
	}
}

func TestGPAEmptyTranscript(t *testing.T) {
	userRepo := new(MockUserStore)
	userRepo.On("ListAcademicRecords", mock.Anything, testUserID).Return([]models.AcademicRecord{}, nil)

	svc := NewTranscriptService(userRepo)

	value, resolved, err := svc.GPA(context.Background(), testUserID, "")
	require.NoError(t, err)
	assert.Nil(t, value)
	assert.Equal(t, gpa.DefaultSchemeKey, resolved)
}

func TestGPADetailed(t *testing.T) {
	records := []models.AcademicRecord{
		{Subject: "COMP", CourseNumber: "246", Grade: models.GradeA, CreditHours: 3, Term: models.TermFall, Year: 2025},
		{Subject: "MATH", CourseNumber: "175", Grade: models.GradePass, CreditHours: 3, Term: models.TermFall, Year: 2025},
	}
	userRepo := new(MockUserStore)
	userRepo.On("ListAcademicRecords", mock.Anything, testUserID).Return(records, nil)

	svc := NewTranscriptService(userRepo)

	breakdown, err := svc.GPADetailed(context.Background(), testUserID, "")
	require.NoError(t, err)
	assert.Equal(t, 1, breakdown.RecordsIncluded)
	assert.Equal(t, 1, breakdown.RecordsExcluded)
}

func TestGPAByTerm(t *testing.T) {
	records := []models.AcademicRecord{
		{Subject: "COMP", CourseNumber: "246", Grade: models.GradeA, CreditHours: 3, Term: models.TermFall, Year: 2025},
		{Subject: "COMP", CourseNumber: "301", Grade: models.GradeB, CreditHours: 3, Term: models.TermWinter, Year: 2026},
	}
	userRepo := new(MockUserStore)
	userRepo.On("ListAcademicRecords", mock.Anything, testUserID).Return(records, nil)

	svc := NewTranscriptService(userRepo)

	breakdowns, err := svc.GPAByTerm(context.Background(), testUserID, "")
	require.NoError(t, err)
	require.Len(t, breakdowns, 2)
	assert.Contains(t, breakdowns, "Fall-2025")
	assert.Contains(t, breakdowns, "Winter-2026")
}

func TestGPAForTerm(t *testing.T) {
	records := []models.AcademicRecord{
		{Subject: "COMP", CourseNumber: "246", Grade: models.GradeA, CreditHours: 3, Term: models.TermFall, Year: 2025},
		{Subject: "COMP", CourseNumber: "301", Grade: models.GradeB, CreditHours: 3, Term: models.TermWinter, Year: 2026},
	}
	userRepo := new(MockUserStore)
	userRepo.On("ListAcademicRecords", mock.Anything, testUserID).Return(records, nil)

	svc := NewTranscriptService(userRepo)

	breakdown, err := svc.GPAForTerm(context.Background(), testUserID, models.TermFall, 2025, "")
	require.NoError(t, err)
	assert.Equal(t, models.TermFall, breakdown.Term)
	assert.Equal(t, 2025, breakdown.Year)
	assert.Equal(t, 1, breakdown.RecordsIncluded)
}

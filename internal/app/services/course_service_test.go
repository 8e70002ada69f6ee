package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/deniz/courseloop/internal/app/models"
	"github.com/deniz/courseloop/internal/app/models/dto"
	"github.com/deniz/courseloop/internal/pkg/apperrors"
)

func TestCreateCourseNormalizesIdentity(t *testing.T) {
	courseRepo := new(MockCourseStore)
	courseRepo.On("CreateCourse", mock.Anything, mock.AnythingOfType("*models.Course")).Return(int64(1), nil)

	svc := NewCourseService(courseRepo, new(MockAggregateService))

	course, err := svc.CreateCourse(context.Background(), &dto.CreateCourseRequest{
		Institution: "  Centennial College ",
		Subject:     " comp ",
		Number:      "246w",
		Title:       " Web Interface Design ",
		Credits:     4,
	})
	require.NoError(t, err)
	assert.Equal(t, "Centennial College", course.Institution)
	assert.Equal(t, "COMP", course.Subject)
	assert.Equal(t, "246W", course.Number)
	assert.Equal(t, "Web Interface Design", course.Title)
}

func TestCreateCourseRejectsBadIdentity(t *testing.T) {
	svc := NewCourseService(new(MockCourseStore), new(MockAggregateService))

	tests := []struct {
		name string
		req  dto.CreateCourseRequest
	}{
		{"bad subject", dto.CreateCourseRequest{Institution: "Centennial College", Subject: "C0MP", Number: "246", Title: "X"}},
		{"bad number", dto.CreateCourseRequest{Institution: "Centennial College", Subject: "COMP", Number: "2", Title: "X"}},
		{"missing institution", dto.CreateCourseRequest{Institution: "  ", Subject: "COMP", Number: "246", Title: "X"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCourse(context.Background(), &tt.req)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}

func TestGetCourseWithoutSyllabusFilter(t *testing.T) {
	courseRepo := new(MockCourseStore)
	aggregates := new(MockAggregateService)
	courseRepo.On("GetCourseByID", mock.Anything, testCourseID).Return(testCourse(), nil)

	svc := NewCourseService(courseRepo, aggregates)

	_, filtered, err := svc.GetCourse(context.Background(), testCourseID, false)
	require.NoError(t, err)
	assert.False(t, filtered)
	aggregates.AssertNotCalled(t, "Preview", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetCourseSyllabusFilterReplacesAggregates(t *testing.T) {
	cutoff := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	course := testCourse()
	course.SyllabusRevisionDate = &cutoff
	course.Aggregates = models.AggregateBlock{NumReviews: 10}

	avg := 4.5
	filteredBlock := models.AggregateBlock{NumReviews: 3, AvgDifficulty: &avg}

	courseRepo := new(MockCourseStore)
	aggregates := new(MockAggregateService)
	courseRepo.On("GetCourseByID", mock.Anything, testCourseID).Return(course, nil)
	aggregates.On("Preview", mock.Anything, testCourseID, &cutoff).Return(filteredBlock, nil)

	svc := NewCourseService(courseRepo, aggregates)

	got, filtered, err := svc.GetCourse(context.Background(), testCourseID, true)
	require.NoError(t, err)
	assert.True(t, filtered)
	assert.Equal(t, filteredBlock, got.Aggregates)
}

func TestGetCourseSyllabusFilterWithoutRevisionDate(t *testing.T) {
	courseRepo := new(MockCourseStore)
	aggregates := new(MockAggregateService)
	courseRepo.On("GetCourseByID", mock.Anything, testCourseID).Return(testCourse(), nil)

	svc := NewCourseService(courseRepo, aggregates)

	_, filtered, err := svc.GetCourse(context.Background(), testCourseID, true)
	require.NoError(t, err)
	assert.False(t, filtered)
	aggregates.AssertNotCalled(t, "Preview", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateCoursePartialFields(t *testing.T) {
	courseRepo := new(MockCourseStore)
	courseRepo.On("GetCourseByID", mock.Anything, testCourseID).Return(testCourse(), nil)
	courseRepo.On("UpdateCourseMetadata", mock.Anything, mock.AnythingOfType("*models.Course")).Return(nil)

	svc := NewCourseService(courseRepo, new(MockAggregateService))

	title := "  Advanced Web Interface Design "
	got, err := svc.UpdateCourse(context.Background(), testCourseID, &dto.UpdateCourseRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Advanced Web Interface Design", got.Title)
	assert.Equal(t, "COMP", got.Subject)
}

func TestRefreshAggregatesPersists(t *testing.T) {
	courseRepo := new(MockCourseStore)
	aggregates := new(MockAggregateService)
	courseRepo.On("GetCourseByID", mock.Anything, testCourseID).Return(testCourse(), nil)
	aggregates.On("Recompute", mock.Anything, testCourseID).Return(models.AggregateBlock{NumReviews: 5}, nil)

	svc := NewCourseService(courseRepo, aggregates)

	block, err := svc.RefreshAggregates(context.Background(), testCourseID, false)
	require.NoError(t, err)
	assert.Equal(t, 5, block.NumReviews)
}

func TestRefreshAggregatesSyllabusFilterDoesNotPersist(t *testing.T) {
	cutoff := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	course := testCourse()
	course.SyllabusRevisionDate = &cutoff

	courseRepo := new(MockCourseStore)
	aggregates := new(MockAggregateService)
	courseRepo.On("GetCourseByID", mock.Anything, testCourseID).Return(course, nil)
	aggregates.On("Preview", mock.Anything, testCourseID, &cutoff).Return(models.AggregateBlock{NumReviews: 2}, nil)

	svc := NewCourseService(courseRepo, aggregates)

	block, err := svc.RefreshAggregates(context.Background(), testCourseID, true)
	require.NoError(t, err)
	assert.Equal(t, 2, block.NumReviews)
	aggregates.AssertNotCalled(t, "Recompute", mock.Anything, mock.Anything)
}

func TestRefreshAggregatesCourseNotFound(t *testing.T) {
	courseRepo := new(MockCourseStore)
	courseRepo.On("GetCourseByID", mock.Anything, testCourseID).Return(nil, apperrors.ErrCourseNotFound)

	svc := NewCourseService(courseRepo, new(MockAggregateService))

	_, err := svc.RefreshAggregates(context.Background(), testCourseID, false)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

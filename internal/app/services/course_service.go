package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/deniz/courseloop/internal/app/models"
	"github.com/deniz/courseloop/internal/app/models/dto"
	"github.com/deniz/courseloop/internal/pkg/apperrors"
	"github.com/deniz/courseloop/internal/pkg/helpers"
	"github.com/deniz/courseloop/internal/pkg/validation"
)

// CourseService manages the course catalog. Aggregate columns are owned by
// the recalculator; nothing here writes them directly.
type CourseService interface {
	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error)

	// GetCourse returns the course. With filterBySyllabus set and a syllabus
	// revision date on record, the aggregate block is replaced at read time
	// by one computed over reviews created at or after that date; the second
	// return value reports whether the filter was applied.
	GetCourse(ctx context.Context, id int64, filterBySyllabus bool) (*models.Course, bool, error)

	ListCourses(ctx context.Context, institution, subject, search string, page, size int) ([]models.Course, int64, error)
	UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error)

	// RefreshAggregates forces a recalculation. With filterBySyllabus it
	// returns the filtered block without persisting it, since the stored
	// aggregates always reflect the full active review set.
	RefreshAggregates(ctx context.Context, courseID int64, filterBySyllabus bool) (models.AggregateBlock, error)
}

type courseService struct {
	courseRepo CourseStore
	aggregates AggregateService
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo CourseStore, aggregates AggregateService) CourseService {
	return &courseService{
		courseRepo: courseRepo,
		aggregates: aggregates,
	}
}

func (s *courseService) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	subject := strings.ToUpper(strings.TrimSpace(req.Subject))
	number := strings.ToUpper(strings.TrimSpace(req.Number))

	if !validation.IsValidSubject(subject) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid subject code: %s", req.Subject))
	}
	if !validation.IsValidCourseNumber(number) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid course number: %s", req.Number))
	}
	if strings.TrimSpace(req.Institution) == "" {
		return nil, apperrors.NewValidationError("institution is required")
	}

	course := &models.Course{
		Institution:          strings.TrimSpace(req.Institution),
		Subject:              subject,
		Number:               number,
		Title:                strings.TrimSpace(req.Title),
		Description:          req.Description,
		Credits:              req.Credits,
		SyllabusRevisionDate: req.SyllabusRevisionDate,
		Prerequisites:        toCourseRefs(req.Prerequisites),
		Corequisites:         toCourseRefs(req.Corequisites),
	}

	if _, err := s.courseRepo.CreateCourse(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *courseService) GetCourse(ctx context.Context, id int64, filterBySyllabus bool) (*models.Course, bool, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, id)
	if err != nil {
		return nil, false, err
	}

	if !filterBySyllabus || course.SyllabusRevisionDate == nil {
		return course, false, nil
	}

	block, err := s.aggregates.Preview(ctx, id, course.SyllabusRevisionDate)
	if err != nil {
		return nil, false, err
	}
	course.Aggregates = block
	return course, true, nil
}

func (s *courseService) ListCourses(ctx context.Context, institution, subject, search string, page, size int) ([]models.Course, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	return s.courseRepo.ListCourses(ctx, institution, strings.ToUpper(strings.TrimSpace(subject)), search, limit, offset)
}

func (s *courseService) UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Credits != nil {
		course.Credits = *req.Credits
	}
	if req.SyllabusRevisionDate != nil {
		course.SyllabusRevisionDate = req.SyllabusRevisionDate
	}
	if req.Prerequisites != nil {
		course.Prerequisites = toCourseRefs(req.Prerequisites)
	}
	if req.Corequisites != nil {
		course.Corequisites = toCourseRefs(req.Corequisites)
	}

	if err := s.courseRepo.UpdateCourseMetadata(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *courseService) RefreshAggregates(ctx context.Context, courseID int64, filterBySyllabus bool) (models.AggregateBlock, error) {
	if filterBySyllabus {
		course, err := s.courseRepo.GetCourseByID(ctx, courseID)
		if err != nil {
			return models.AggregateBlock{}, err
		}
		if course.SyllabusRevisionDate == nil {
			return s.aggregates.Recompute(ctx, courseID)
		}
		return s.aggregates.Preview(ctx, courseID, course.SyllabusRevisionDate)
	}

	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return models.AggregateBlock{}, err
	}
	return s.aggregates.Recompute(ctx, courseID)
}

func toCourseRefs(reqs []dto.CourseRefRequest) []models.CourseRef {
	refs := make([]models.CourseRef, 0, len(reqs))
	for _, r := range reqs {
		refs = append(refs, models.CourseRef{
			Subject: strings.ToUpper(strings.TrimSpace(r.Subject)),
			Number:  strings.ToUpper(strings.TrimSpace(r.Number)),
		})
	}
	return refs
}

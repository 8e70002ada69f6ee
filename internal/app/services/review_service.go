package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/deniz/courseloop/internal/app/models"
	"github.com/deniz/courseloop/internal/app/models/dto"
	"github.com/deniz/courseloop/internal/pkg/apperrors"
	"github.com/deniz/courseloop/internal/pkg/helpers"
	"github.com/deniz/courseloop/internal/pkg/logger"
)

// ReviewService manages the review lifecycle: eligibility-gated creation,
// author-scoped updates, and soft deletion, each followed by a synchronous
// aggregate recalculation on the affected course.
type ReviewService interface {
	CheckEligibility(ctx context.Context, userID, courseID int64, term models.Term, year int) (*models.AcademicRecord, error)
	CreateReview(ctx context.Context, authorID int64, req *dto.CreateReviewRequest) (*models.Review, error)
	GetReview(ctx context.Context, id int64) (*models.Review, error)
	ListCourseReviews(ctx context.Context, courseID int64, term *models.Term, year *int, page, size int) ([]models.Review, *models.Course, int64, error)
	UpdateReview(ctx context.Context, id, actorID int64, actorIsAdmin bool, req *dto.UpdateReviewRequest) (*models.Review, error)
	DeleteReview(ctx context.Context, id, actorID int64, actorIsAdmin bool) error
}

type reviewService struct {
	reviewRepo ReviewStore
	courseRepo CourseStore
	userRepo   UserStore
	aggregates AggregateService
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewRepo ReviewStore, courseRepo CourseStore, userRepo UserStore, aggregates AggregateService) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		courseRepo: courseRepo,
		userRepo:   userRepo,
		aggregates: aggregates,
	}
}

// CheckEligibility walks the eligibility chain in a fixed order and returns
// the first failure, so a caller failing several checks always sees the same
// error. On success it returns the transcript entry that matched the
// offering.
func (s *reviewService) CheckEligibility(ctx context.Context, userID, courseID int64, term models.Term, year int) (*models.AcademicRecord, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Institution != course.Institution {
		return nil, apperrors.ErrInstitutionMismatch
	}

	records, err := s.userRepo.ListAcademicRecords(ctx, userID)
	if err != nil {
		return nil, err
	}

	var entry *models.AcademicRecord
	for i := range records {
		record := &records[i]
		if record.Subject == course.Subject && record.CourseNumber == course.Number &&
			record.Term == term && record.Year == year {
			entry = record
			break
		}
	}
	if entry == nil {
		return nil, apperrors.ErrNoTranscriptEntry
	}

	if !entry.Grade.IsReviewable() {
		return nil, apperrors.NewCustomError(apperrors.ErrGradeNotReviewable,
			fmt.Sprintf("grade %q does not allow reviewing this course", entry.Grade))
	}

	_, err = s.reviewRepo.FindActiveReview(ctx, courseID, userID, term, year)
	if err == nil {
		return nil, apperrors.ErrAlreadyReviewed
	}
	if !errors.Is(err, apperrors.ErrReviewNotFound) {
		return nil, err
	}

	return entry, nil
}

func (s *reviewService) CreateReview(ctx context.Context, authorID int64, req *dto.CreateReviewRequest) (*models.Review, error) {
	if !req.Term.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid term: %s", req.Term))
	}
	if err := validateMetrics(req.Difficulty, req.Usefulness, req.Workload, req.GradingFairness); err != nil {
		return nil, err
	}
	if err := validateTags(req.Tags); err != nil {
		return nil, err
	}
	if len(req.Comment) > models.MaxCommentLength {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("comment exceeds %d characters", models.MaxCommentLength))
	}

	if _, err := s.CheckEligibility(ctx, authorID, req.CourseID, req.Term, req.Year); err != nil {
		return nil, err
	}

	review := &models.Review{
		CourseID:        req.CourseID,
		AuthorID:        authorID,
		Term:            req.Term,
		Year:            req.Year,
		Difficulty:      req.Difficulty,
		Usefulness:      req.Usefulness,
		Workload:        req.Workload,
		GradingFairness: req.GradingFairness,
		Tags:            req.Tags,
		Comment:         req.Comment,
		IsAnonymous:     req.IsAnonymous,
	}

	if _, err := s.reviewRepo.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	s.recompute(ctx, review.CourseID)
	return review, nil
}

func (s *reviewService) GetReview(ctx context.Context, id int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetReviewByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !review.IsActive() {
		return nil, apperrors.ErrReviewNotFound
	}
	return review, nil
}

func (s *reviewService) ListCourseReviews(ctx context.Context, courseID int64, term *models.Term, year *int, page, size int) ([]models.Review, *models.Course, int64, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, nil, 0, err
	}

	if term != nil && !term.IsValid() {
		return nil, nil, 0, apperrors.NewValidationError(fmt.Sprintf("invalid term: %s", *term))
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	reviews, totalItems, err := s.reviewRepo.ListReviewsByCourse(ctx, courseID, term, year, limit, offset)
	if err != nil {
		return nil, nil, 0, err
	}

	return reviews, course, totalItems, nil
}

// UpdateReview applies the mutable fields. A deleted review is terminal and
// reads as not found; only the author or an administrator may edit.
func (s *reviewService) UpdateReview(ctx context.Context, id, actorID int64, actorIsAdmin bool, req *dto.UpdateReviewRequest) (*models.Review, error) {
	review, err := s.reviewRepo.GetReviewByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !review.IsActive() {
		return nil, apperrors.ErrReviewNotFound
	}
	if review.AuthorID != actorID && !actorIsAdmin {
		return nil, apperrors.NewForbiddenError("only the author can modify this review")
	}

	if req.Difficulty != nil {
		review.Difficulty = *req.Difficulty
	}
	if req.Usefulness != nil {
		review.Usefulness = *req.Usefulness
	}
	if req.Workload != nil {
		review.Workload = *req.Workload
	}
	if req.GradingFairness != nil {
		review.GradingFairness = *req.GradingFairness
	}
	if req.Tags != nil {
		review.Tags = *req.Tags
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}
	if req.IsAnonymous != nil {
		review.IsAnonymous = *req.IsAnonymous
	}

	if err := validateMetrics(review.Difficulty, review.Usefulness, review.Workload, review.GradingFairness); err != nil {
		return nil, err
	}
	if err := validateTags(review.Tags); err != nil {
		return nil, err
	}
	if len(review.Comment) > models.MaxCommentLength {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("comment exceeds %d characters", models.MaxCommentLength))
	}

	if err := s.reviewRepo.UpdateReview(ctx, review); err != nil {
		return nil, err
	}

	s.recompute(ctx, review.CourseID)
	return review, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, id, actorID int64, actorIsAdmin bool) error {
	review, err := s.reviewRepo.GetReviewByID(ctx, id)
	if err != nil {
		return err
	}
	if !review.IsActive() {
		return apperrors.ErrReviewNotFound
	}
	if review.AuthorID != actorID && !actorIsAdmin {
		return apperrors.NewForbiddenError("only the author can delete this review")
	}

	if err := s.reviewRepo.SoftDeleteReview(ctx, id); err != nil {
		return err
	}

	s.recompute(ctx, review.CourseID)
	return nil
}

// recompute refreshes the course aggregates after a lifecycle change. The
// review write has already committed, so a failed recalculation is logged and
// left for the administrative refresh rather than failing the request.
func (s *reviewService) recompute(ctx context.Context, courseID int64) {
	if _, err := s.aggregates.Recompute(ctx, courseID); err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Failed to recalculate course aggregates")
	}
}

func validateMetrics(difficulty, usefulness, workload, gradingFairness int) error {
	for name, value := range map[string]int{
		"difficulty":      difficulty,
		"usefulness":      usefulness,
		"workload":        workload,
		"gradingFairness": gradingFairness,
	} {
		if value < models.MetricMin || value > models.MetricMax {
			return apperrors.NewValidationError(
				fmt.Sprintf("%s must be between %d and %d", name, models.MetricMin, models.MetricMax))
		}
	}
	return nil
}

func validateTags(tags []models.Tag) error {
	if invalid := models.InvalidTags(tags); len(invalid) > 0 {
		return apperrors.NewValidationError(fmt.Sprintf("invalid tags: %v", invalid))
	}
	return nil
}

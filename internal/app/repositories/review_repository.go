package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deniz/courseloop/internal/app/models"
	"github.com/deniz/courseloop/internal/pkg/apperrors"
	"github.com/deniz/courseloop/internal/pkg/dberrors"
	"github.com/deniz/courseloop/internal/pkg/logger"
)

// ActiveReviewConstraint names the partial unique index enforcing one active
// review per (course, author, term, year).
const ActiveReviewConstraint = "reviews_one_active_per_offering"

var reviewColumns = []string{
	"id", "course_id", "author_id", "term", "year",
	"difficulty", "usefulness", "workload", "grading_fairness",
	"tags", "comment", "is_anonymous", "status", "created_at", "updated_at",
}

// ReviewRepository handles review database operations
type ReviewRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateReview inserts a review. A violation of the partial unique index is
// mapped to ErrAlreadyReviewed: the storage layer is the race-safety net
// behind the application-level duplicate check.
func (r *ReviewRepository) CreateReview(ctx context.Context, review *models.Review) (int64, error) {
	sqlQuery, args, err := r.sb.Insert("reviews").
		Columns("course_id", "author_id", "term", "year",
			"difficulty", "usefulness", "workload", "grading_fairness",
			"tags", "comment", "is_anonymous").
		Values(review.CourseID, review.AuthorID, review.Term, review.Year,
			review.Difficulty, review.Usefulness, review.Workload, review.GradingFairness,
			tagsToStrings(review.Tags), review.Comment, review.IsAnonymous).
		Suffix("RETURNING id, status, created_at, updated_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create review query: %w", err)
	}

	err = r.db.QueryRow(ctx, sqlQuery, args...).
		Scan(&review.ID, &review.Status, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, ActiveReviewConstraint) {
			return 0, apperrors.ErrAlreadyReviewed
		}
		logger.Error().Err(err).Int64("courseID", review.CourseID).Msg("Error executing create review query")
		return 0, fmt.Errorf("error inserting review: %w", err)
	}

	logger.Info().Int64("reviewID", review.ID).Int64("courseID", review.CourseID).Msg("Review created")
	return review.ID, nil
}

// GetReviewByID retrieves a review regardless of status. Callers decide
// whether a deleted review is visible.
func (r *ReviewRepository) GetReviewByID(ctx context.Context, id int64) (*models.Review, error) {
	sqlQuery, args, err := r.sb.Select(reviewColumns...).
		From("reviews").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get review query: %w", err)
	}

	review, err := scanReview(r.db.QueryRow(ctx, sqlQuery, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReviewNotFound
		}
		logger.Error().Err(err).Int64("reviewID", id).Msg("Error scanning review row")
		return nil, fmt.Errorf("error querying review ID=%d: %w", id, err)
	}
	return review, nil
}

// FindActiveReview returns the active review for the exact compound key, or
// ErrReviewNotFound when none exists.
func (r *ReviewRepository) FindActiveReview(ctx context.Context, courseID, authorID int64, term models.Term, year int) (*models.Review, error) {
	sqlQuery, args, err := r.sb.Select(reviewColumns...).
		From("reviews").
		Where(squirrel.Eq{
			"course_id": courseID,
			"author_id": authorID,
			"term":      term,
			"year":      year,
			"status":    models.ReviewStatusActive,
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find active review query: %w", err)
	}

	review, err := scanReview(r.db.QueryRow(ctx, sqlQuery, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, fmt.Errorf("error querying active review: %w", err)
	}
	return review, nil
}

// ListReviewsByCourse returns active reviews for a course, newest first, with
// optional term/year filters and pagination.
func (r *ReviewRepository) ListReviewsByCourse(ctx context.Context, courseID int64, term *models.Term, year *int, limit int, offset uint64) ([]models.Review, int64, error) {
	whereCondition := squirrel.And{
		squirrel.Eq{"course_id": courseID},
		squirrel.Eq{"status": models.ReviewStatusActive},
	}
	if term != nil {
		whereCondition = append(whereCondition, squirrel.Eq{"term": *term})
	}
	if year != nil {
		whereCondition = append(whereCondition, squirrel.Eq{"year": *year})
	}

	countQuery, countArgs, err := r.sb.Select("COUNT(*)").From("reviews").Where(whereCondition).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count reviews query: %w", err)
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&totalItems); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	if totalItems == 0 {
		return []models.Review{}, 0, nil
	}

	sqlQuery, args, err := r.sb.Select(reviewColumns...).
		From("reviews").
		Where(whereCondition).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list reviews query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error executing list reviews query")
		return nil, 0, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan review row: %w", err)
		}
		reviews = append(reviews, *review)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating review rows: %w", err)
	}

	return reviews, totalItems, nil
}

// ListActiveReviews returns every active review for a course, optionally
// restricted to those created at or after cutoff. Runs on the given DBTX so
// the aggregate recalculation can read inside its own transaction.
func (r *ReviewRepository) ListActiveReviews(ctx context.Context, q DBTX, courseID int64, cutoff *time.Time) ([]models.Review, error) {
	whereCondition := squirrel.And{
		squirrel.Eq{"course_id": courseID},
		squirrel.Eq{"status": models.ReviewStatusActive},
	}
	if cutoff != nil {
		whereCondition = append(whereCondition, squirrel.GtOrEq{"created_at": *cutoff})
	}

	sqlQuery, args, err := r.sb.Select(reviewColumns...).
		From("reviews").
		Where(whereCondition).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list active reviews query: %w", err)
	}

	rows, err := q.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query active reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan active review row: %w", err)
		}
		reviews = append(reviews, *review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating active review rows: %w", err)
	}

	return reviews, nil
}

// UpdateReview persists the mutable review fields and bumps updated_at. The
// creation timestamp and identity fields are never touched.
func (r *ReviewRepository) UpdateReview(ctx context.Context, review *models.Review) error {
	sqlQuery, args, err := r.sb.Update("reviews").
		SetMap(map[string]interface{}{
			"difficulty":       review.Difficulty,
			"usefulness":       review.Usefulness,
			"workload":         review.Workload,
			"grading_fairness": review.GradingFairness,
			"tags":             tagsToStrings(review.Tags),
			"comment":          review.Comment,
			"is_anonymous":     review.IsAnonymous,
			"updated_at":       time.Now(),
		}).
		Where(squirrel.Eq{"id": review.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update review query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Int64("reviewID", review.ID).Msg("Error executing update review query")
		return fmt.Errorf("error updating review ID=%d: %w", review.ID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrReviewNotFound
	}

	logger.Info().Int64("reviewID", review.ID).Msg("Review updated")
	return nil
}

// SoftDeleteReview flips the review status to deleted. The row is retained
// for audit; it simply stops participating in aggregates.
func (r *ReviewRepository) SoftDeleteReview(ctx context.Context, id int64) error {
	sqlQuery, args, err := r.sb.Update("reviews").
		SetMap(map[string]interface{}{
			"status":     models.ReviewStatusDeleted,
			"updated_at": time.Now(),
		}).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build soft delete review query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Int64("reviewID", id).Msg("Error executing soft delete review query")
		return fmt.Errorf("error soft deleting review ID=%d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrReviewNotFound
	}

	logger.Info().Int64("reviewID", id).Msg("Review soft deleted")
	return nil
}

// scanReview reads one review row from either a pgx.Row or pgx.Rows.
func scanReview(row pgx.Row) (*models.Review, error) {
	var review models.Review
	var tags []string

	err := row.Scan(
		&review.ID, &review.CourseID, &review.AuthorID, &review.Term, &review.Year,
		&review.Difficulty, &review.Usefulness, &review.Workload, &review.GradingFairness,
		&tags, &review.Comment, &review.IsAnonymous, &review.Status,
		&review.CreatedAt, &review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	review.Tags = stringsToTags(tags)
	return &review, nil
}

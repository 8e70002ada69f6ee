package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deniz/courseloop/internal/app/models"
	"github.com/deniz/courseloop/internal/pkg/apperrors"
	"github.com/deniz/courseloop/internal/pkg/dberrors"
	"github.com/deniz/courseloop/internal/pkg/logger"
)

// Constraint names from migrations, used to map unique violations.
const (
	courseKeyConstraint = "courses_institution_subject_number_key"
)

var courseColumns = []string{
	"id", "institution", "subject", "number", "title", "description", "credits",
	"syllabus_revision_date", "prerequisites", "corequisites",
	"avg_difficulty", "avg_usefulness", "avg_workload", "avg_grading_fairness",
	"num_reviews", "top_tags", "last_review_at",
	"created_at", "updated_at",
}

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateCourse inserts a new catalog entry. The compound key is first-writer
// wins; a duplicate maps to ErrCourseAlreadyExists.
func (r *CourseRepository) CreateCourse(ctx context.Context, course *models.Course) (int64, error) {
	prereqs, err := json.Marshal(refsOrEmpty(course.Prerequisites))
	if err != nil {
		return 0, fmt.Errorf("failed to marshal prerequisites: %w", err)
	}
	coreqs, err := json.Marshal(refsOrEmpty(course.Corequisites))
	if err != nil {
		return 0, fmt.Errorf("failed to marshal corequisites: %w", err)
	}

	sqlQuery, args, err := r.sb.Insert("courses").
		Columns("institution", "subject", "number", "title", "description", "credits",
			"syllabus_revision_date", "prerequisites", "corequisites").
		Values(course.Institution, course.Subject, course.Number, course.Title,
			course.Description, course.Credits, course.SyllabusRevisionDate, prereqs, coreqs).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create course query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sqlQuery, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, courseKeyConstraint) {
			return 0, apperrors.ErrCourseAlreadyExists
		}
		logger.Error().Err(err).Str("courseCode", course.Code()).Msg("Error executing create course query")
		return 0, fmt.Errorf("error inserting course: %w", err)
	}

	logger.Info().Int64("courseID", id).Str("courseCode", course.Code()).Msg("Course created")
	return id, nil
}

// GetCourseByID retrieves a course with its aggregate block.
func (r *CourseRepository) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	sqlQuery, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sqlQuery, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error querying course ID=%d: %w", id, err)
	}
	return course, nil
}

// ListCourses returns a paginated slice of catalog entries with optional
// institution/subject filters and a title search.
func (r *CourseRepository) ListCourses(ctx context.Context, institution, subject, search string, limit int, offset uint64) ([]models.Course, int64, error) {
	whereCondition := squirrel.And{}
	if institution != "" {
		whereCondition = append(whereCondition, squirrel.Eq{"institution": institution})
	}
	if subject != "" {
		whereCondition = append(whereCondition, squirrel.Eq{"subject": subject})
	}
	if search != "" {
		whereCondition = append(whereCondition, squirrel.ILike{"title": "%" + strings.TrimSpace(search) + "%"})
	}

	countQuery, countArgs, err := r.sb.Select("COUNT(*)").From("courses").Where(whereCondition).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count courses query: %w", err)
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&totalItems); err != nil {
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}

	if totalItems == 0 {
		return []models.Course{}, 0, nil
	}

	sqlQuery, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(whereCondition).
		OrderBy("subject ASC", "number ASC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, 0, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan course row: %w", err)
		}
		courses = append(courses, *course)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, totalItems, nil
}

// UpdateCourseMetadata updates the editable catalog fields. The aggregate
// columns are deliberately absent from the column list; only the aggregate
// recalculation writes them.
func (r *CourseRepository) UpdateCourseMetadata(ctx context.Context, course *models.Course) error {
	prereqs, err := json.Marshal(refsOrEmpty(course.Prerequisites))
	if err != nil {
		return fmt.Errorf("failed to marshal prerequisites: %w", err)
	}
	coreqs, err := json.Marshal(refsOrEmpty(course.Corequisites))
	if err != nil {
		return fmt.Errorf("failed to marshal corequisites: %w", err)
	}

	sqlQuery, args, err := r.sb.Update("courses").
		SetMap(map[string]interface{}{
			"title":                  course.Title,
			"description":            course.Description,
			"credits":                course.Credits,
			"syllabus_revision_date": course.SyllabusRevisionDate,
			"prerequisites":          prereqs,
			"corequisites":           coreqs,
			"updated_at":             time.Now(),
		}).
		Where(squirrel.Eq{"id": course.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", course.ID).Msg("Error executing update course query")
		return fmt.Errorf("error updating course ID=%d: %w", course.ID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// LockCourse acquires a row lock on the course within the given transaction,
// serializing concurrent aggregate recalculations for the same course.
func (r *CourseRepository) LockCourse(ctx context.Context, q DBTX, id int64) error {
	var lockedID int64
	err := q.QueryRow(ctx, `SELECT id FROM courses WHERE id = $1 FOR UPDATE`, id).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error locking course ID=%d: %w", id, err)
	}
	return nil
}

// UpdateAggregates writes a freshly computed aggregate block onto the course
// row. Callers run this inside the same transaction that read the review set.
func (r *CourseRepository) UpdateAggregates(ctx context.Context, q DBTX, courseID int64, block models.AggregateBlock) error {
	sqlQuery, args, err := r.sb.Update("courses").
		SetMap(map[string]interface{}{
			"avg_difficulty":       block.AvgDifficulty,
			"avg_usefulness":       block.AvgUsefulness,
			"avg_workload":         block.AvgWorkload,
			"avg_grading_fairness": block.AvgGradingFairness,
			"num_reviews":          block.NumReviews,
			"top_tags":             tagsToStrings(block.TopTags),
			"last_review_at":       block.LastReviewAt,
			"updated_at":           time.Now(),
		}).
		Where(squirrel.Eq{"id": courseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update aggregates query: %w", err)
	}

	cmdTag, err := q.Exec(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error executing update aggregates query")
		return fmt.Errorf("error updating aggregates for course ID=%d: %w", courseID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	logger.Debug().Int64("courseID", courseID).Int("numReviews", block.NumReviews).Msg("Course aggregates updated")
	return nil
}

// scanCourse reads one course row from either a pgx.Row or pgx.Rows.
func scanCourse(row pgx.Row) (*models.Course, error) {
	var course models.Course
	var syllabusDate, lastReviewAt sql.NullTime
	var avgDifficulty, avgUsefulness, avgWorkload, avgGradingFairness sql.NullFloat64
	var prereqs, coreqs []byte
	var topTags []string

	err := row.Scan(
		&course.ID, &course.Institution, &course.Subject, &course.Number,
		&course.Title, &course.Description, &course.Credits,
		&syllabusDate, &prereqs, &coreqs,
		&avgDifficulty, &avgUsefulness, &avgWorkload, &avgGradingFairness,
		&course.Aggregates.NumReviews, &topTags, &lastReviewAt,
		&course.CreatedAt, &course.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if syllabusDate.Valid {
		course.SyllabusRevisionDate = &syllabusDate.Time
	}
	if err := json.Unmarshal(prereqs, &course.Prerequisites); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prerequisites: %w", err)
	}
	if err := json.Unmarshal(coreqs, &course.Corequisites); err != nil {
		return nil, fmt.Errorf("failed to unmarshal corequisites: %w", err)
	}

	course.Aggregates.AvgDifficulty = nullToPtr(avgDifficulty)
	course.Aggregates.AvgUsefulness = nullToPtr(avgUsefulness)
	course.Aggregates.AvgWorkload = nullToPtr(avgWorkload)
	course.Aggregates.AvgGradingFairness = nullToPtr(avgGradingFairness)
	course.Aggregates.TopTags = stringsToTags(topTags)
	if lastReviewAt.Valid {
		course.Aggregates.LastReviewAt = &lastReviewAt.Time
	}

	return &course, nil
}

func nullToPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func refsOrEmpty(refs []models.CourseRef) []models.CourseRef {
	if refs == nil {
		return []models.CourseRef{}
	}
	return refs
}

func tagsToStrings(tags []models.Tag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}

func stringsToTags(raw []string) []models.Tag {
	tags := make([]models.Tag, len(raw))
	for i, s := range raw {
		tags[i] = models.Tag(s)
	}
	return tags
}

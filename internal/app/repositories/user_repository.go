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

// UserRepository handles user and academic record database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateUser inserts a new user and returns its id.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	sql, args, err := r.sb.Insert("users").
		Columns("email", "password_hash", "first_name", "last_name", "role", "institution", "program").
		Values(user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Role, user.Institution, user.Program).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create user query")
		return 0, fmt.Errorf("error inserting user: %w", err)
	}

	logger.Info().Int64("userID", id).Msg("User created")
	return id, nil
}

// GetUserByID retrieves a user by id.
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	sql, args, err := r.sb.Select(
		"id", "email", "password_hash", "first_name", "last_name",
		"role", "institution", "program", "created_at", "updated_at",
	).
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := r.scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", id).Msg("Error scanning user row")
		return nil, fmt.Errorf("error querying user ID=%d: %w", id, err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	sql, args, err := r.sb.Select(
		"id", "email", "password_hash", "first_name", "last_name",
		"role", "institution", "program", "created_at", "updated_at",
	).
		From("users").
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user by email query: %w", err)
	}

	user, err := r.scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning user row by email")
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}
	return user, nil
}

func (r *UserRepository) scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName,
		&user.Role, &user.Institution, &user.Program, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// AddAcademicRecord inserts a transcript entry for a user. Entries are
// immutable once recorded, so there is no corresponding update.
func (r *UserRepository) AddAcademicRecord(ctx context.Context, record *models.AcademicRecord) (int64, error) {
	sql, args, err := r.sb.Insert("academic_records").
		Columns("user_id", "subject", "course_number", "grade", "credit_hours", "term", "year").
		Values(record.UserID, record.Subject, record.CourseNumber, record.Grade, record.CreditHours, record.Term, record.Year).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build add academic record query: %w", err)
	}

	var id int64
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id, &createdAt); err != nil {
		logger.Error().Err(err).Int64("userID", record.UserID).Msg("Error inserting academic record")
		return 0, fmt.Errorf("error inserting academic record: %w", err)
	}

	record.ID = id
	record.CreatedAt = createdAt
	return id, nil
}

// ListAcademicRecords returns every transcript entry for a user, oldest first.
func (r *UserRepository) ListAcademicRecords(ctx context.Context, userID int64) ([]models.AcademicRecord, error) {
	sql, args, err := r.sb.Select(
		"id", "user_id", "subject", "course_number", "grade", "credit_hours", "term", "year", "created_at",
	).
		From("academic_records").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("year ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list academic records query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error querying academic records")
		return nil, fmt.Errorf("error querying academic records: %w", err)
	}
	defer rows.Close()

	var records []models.AcademicRecord
	for rows.Next() {
		var record models.AcademicRecord
		err := rows.Scan(
			&record.ID, &record.UserID, &record.Subject, &record.CourseNumber,
			&record.Grade, &record.CreditHours, &record.Term, &record.Year, &record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan academic record row: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating academic record rows: %w", err)
	}

	return records, nil
}

package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the querying surface shared by *pgxpool.Pool and pgx.Tx. Repository
// methods that must run inside a caller-owned transaction (the aggregate
// recalculation) take a DBTX instead of using the pool directly.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories bundles all data access objects.
type Repositories struct {
	User   *UserRepository
	Course *CourseRepository
	Review *ReviewRepository
}

// NewRepositories creates the repository container from a shared pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:   NewUserRepository(db),
		Course: NewCourseRepository(db),
		Review: NewReviewRepository(db),
	}
}

package services

import (
	"context"
	"time"

	"github.com/deniz/courseloop/internal/app/models"
	"github.com/deniz/courseloop/internal/app/repositories"
	"github.com/deniz/courseloop/internal/db"
	"github.com/deniz/courseloop/internal/pkg/auth"
)

// UserStore is the slice of the user repository the services consume.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	AddAcademicRecord(ctx context.Context, record *models.AcademicRecord) (int64, error)
	ListAcademicRecords(ctx context.Context, userID int64) ([]models.AcademicRecord, error)
}

// CourseStore is the slice of the course repository the services consume.
type CourseStore interface {
	CreateCourse(ctx context.Context, course *models.Course) (int64, error)
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	ListCourses(ctx context.Context, institution, subject, search string, limit int, offset uint64) ([]models.Course, int64, error)
	UpdateCourseMetadata(ctx context.Context, course *models.Course) error
	LockCourse(ctx context.Context, q repositories.DBTX, id int64) error
	UpdateAggregates(ctx context.Context, q repositories.DBTX, courseID int64, block models.AggregateBlock) error
}

// ReviewStore is the slice of the review repository the services consume.
type ReviewStore interface {
	CreateReview(ctx context.Context, review *models.Review) (int64, error)
	GetReviewByID(ctx context.Context, id int64) (*models.Review, error)
	FindActiveReview(ctx context.Context, courseID, authorID int64, term models.Term, year int) (*models.Review, error)
	ListReviewsByCourse(ctx context.Context, courseID int64, term *models.Term, year *int, limit int, offset uint64) ([]models.Review, int64, error)
	ListActiveReviews(ctx context.Context, q repositories.DBTX, courseID int64, cutoff *time.Time) ([]models.Review, error)
	UpdateReview(ctx context.Context, review *models.Review) error
	SoftDeleteReview(ctx context.Context, id int64) error
}

// TxRunner runs a function inside a database transaction.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// Services holds all service instances
type Services struct {
	Auth       AuthService
	Course     CourseService
	Review     ReviewService
	Transcript TranscriptService
	Aggregate  AggregateService
}

// NewServices wires the service layer from the repositories and database.
func NewServices(repos *repositories.Repositories, database *db.PostgresDB, jwtService *auth.JWTService) *Services {
	aggregateService := NewAggregateService(repos.Course, repos.Review, database, database.Pool)
	reviewService := NewReviewService(repos.Review, repos.Course, repos.User, aggregateService)
	courseService := NewCourseService(repos.Course, aggregateService)

	return &Services{
		Auth:       NewAuthService(repos.User, jwtService),
		Course:     courseService,
		Review:     reviewService,
		Transcript: NewTranscriptService(repos.User),
		Aggregate:  aggregateService,
	}
}

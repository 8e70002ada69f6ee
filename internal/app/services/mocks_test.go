package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/deniz/courseloop/internal/app/models"
	"github.com/deniz/courseloop/internal/app/repositories"
	"github.com/deniz/courseloop/internal/db"
)

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) AddAcademicRecord(ctx context.Context, record *models.AcademicRecord) (int64, error) {
	args := m.Called(ctx, record)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserStore) ListAcademicRecords(ctx context.Context, userID int64) ([]models.AcademicRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AcademicRecord), args.Error(1)
}

type MockCourseStore struct {
	mock.Mock
}

func (m *MockCourseStore) CreateCourse(ctx context.Context, course *models.Course) (int64, error) {
	args := m.Called(ctx, course)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCourseStore) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *MockCourseStore) ListCourses(ctx context.Context, institution, subject, search string, limit int, offset uint64) ([]models.Course, int64, error) {
	args := m.Called(ctx, institution, subject, search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Course), args.Get(1).(int64), args.Error(2)
}

func (m *MockCourseStore) UpdateCourseMetadata(ctx context.Context, course *models.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseStore) LockCourse(ctx context.Context, q repositories.DBTX, id int64) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

func (m *MockCourseStore) UpdateAggregates(ctx context.Context, q repositories.DBTX, courseID int64, block models.AggregateBlock) error {
	args := m.Called(ctx, q, courseID, block)
	return args.Error(0)
}

type MockReviewStore struct {
	mock.Mock
}

func (m *MockReviewStore) CreateReview(ctx context.Context, review *models.Review) (int64, error) {
	args := m.Called(ctx, review)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewStore) GetReviewByID(ctx context.Context, id int64) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewStore) FindActiveReview(ctx context.Context, courseID, authorID int64, term models.Term, year int) (*models.Review, error) {
	args := m.Called(ctx, courseID, authorID, term, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewStore) ListReviewsByCourse(ctx context.Context, courseID int64, term *models.Term, year *int, limit int, offset uint64) ([]models.Review, int64, error) {
	args := m.Called(ctx, courseID, term, year, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewStore) ListActiveReviews(ctx context.Context, q repositories.DBTX, courseID int64, cutoff *time.Time) ([]models.Review, error) {
	args := m.Called(ctx, q, courseID, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewStore) UpdateReview(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewStore) SoftDeleteReview(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// fakeTxRunner invokes the callback with a nil transaction so repository
// mocks can run without a database.
type fakeTxRunner struct {
	err error
}

func (f *fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx, nil)
}

type MockAggregateService struct {
	mock.Mock
}

func (m *MockAggregateService) Recompute(ctx context.Context, courseID int64) (models.AggregateBlock, error) {
	args := m.Called(ctx, courseID)
	return args.Get(0).(models.AggregateBlock), args.Error(1)
}

func (m *MockAggregateService) Preview(ctx context.Context, courseID int64, cutoff *time.Time) (models.AggregateBlock, error) {
	args := m.Called(ctx, courseID, cutoff)
	return args.Get(0).(models.AggregateBlock), args.Error(1)
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/deniz/courseloop/internal/app/models"
)

func reviewAt(created time.Time, difficulty, usefulness, workload, fairness int, tags ...models.Tag) models.Review {
	return models.Review{
		Difficulty:      difficulty,
		Usefulness:      usefulness,
		Workload:        workload,
		GradingFairness: fairness,
		Tags:            tags,
		Status:          models.ReviewStatusActive,
		CreatedAt:       created,
	}
}

func TestComputeAggregatesEmpty(t *testing.T) {
	block := computeAggregates(nil)

	assert.Equal(t, 0, block.NumReviews)
	assert.Nil(t, block.AvgDifficulty)
	assert.Nil(t, block.AvgUsefulness)
	assert.Nil(t, block.AvgWorkload)
	assert.Nil(t, block.AvgGradingFairness)
	assert.Empty(t, block.TopTags)
	assert.Nil(t, block.LastReviewAt)
}

func TestComputeAggregatesBelowMinimum(t *testing.T) {
	first := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	second := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)
	reviews := []models.Review{
		reviewAt(first, 5, 5, 5, 5, models.TagHeavyWorkload),
		reviewAt(second, 3, 3, 3, 3),
	}

	block := computeAggregates(reviews)

	assert.Equal(t, 2, block.NumReviews)
	assert.Nil(t, block.AvgDifficulty)
	assert.Nil(t, block.AvgUsefulness)
	assert.Nil(t, block.AvgWorkload)
	assert.Nil(t, block.AvgGradingFairness)
	assert.Empty(t, block.TopTags)
	require.NotNil(t, block.LastReviewAt)
	assert.Equal(t, second, *block.LastReviewAt)
}

func TestComputeAggregatesCrossesThreshold(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	reviews := []models.Review{
		reviewAt(base, 4, 2, 3, 5),
		reviewAt(base.AddDate(0, 1, 0), 4, 3, 3, 4),
		reviewAt(base.AddDate(0, 2, 0), 4, 4, 4, 4),
	}

	block := computeAggregates(reviews)

	assert.Equal(t, 3, block.NumReviews)
	require.NotNil(t, block.AvgDifficulty)
	assert.Equal(t, 4.0, *block.AvgDifficulty)
	require.NotNil(t, block.AvgUsefulness)
	assert.Equal(t, 3.0, *block.AvgUsefulness)
	require.NotNil(t, block.AvgWorkload)
	assert.Equal(t, 3.33, *block.AvgWorkload)
	require.NotNil(t, block.AvgGradingFairness)
	assert.Equal(t, 4.33, *block.AvgGradingFairness)
	require.NotNil(t, block.LastReviewAt)
	assert.Equal(t, base.AddDate(0, 2, 0), *block.LastReviewAt)
}

func TestComputeAggregatesAverageRounding(t *testing.T) {
	base := time.Now()
	// 1+2+2 = 5, 5/3 = 1.666... rounds half up to 1.67
	reviews := []models.Review{
		reviewAt(base, 1, 1, 1, 1),
		reviewAt(base, 2, 2, 2, 2),
		reviewAt(base, 2, 2, 2, 2),
	}

	block := computeAggregates(reviews)

	require.NotNil(t, block.AvgDifficulty)
	assert.Equal(t, 1.67, *block.AvgDifficulty)
}

func TestComputeAggregatesTopTags(t *testing.T) {
	base := time.Now()
	reviews := []models.Review{
		reviewAt(base, 3, 3, 3, 3, models.TagHeavyWorkload, models.TagGroupProjects),
		reviewAt(base, 3, 3, 3, 3, models.TagHeavyWorkload, models.TagExamHeavy),
		reviewAt(base, 3, 3, 3, 3, models.TagHeavyWorkload, models.TagGroupProjects,
			models.TagClearGrading, models.TagFlexibleDeadlines, models.TagFastPaced),
	}

	block := computeAggregates(reviews)

	require.Len(t, block.TopTags, 5)
	assert.Equal(t, models.TagHeavyWorkload, block.TopTags[0])
	assert.Equal(t, models.TagGroupProjects, block.TopTags[1])
	// Remaining tags all have count 1; ties resolve lexically
	assert.Equal(t, []models.Tag{
		models.TagClearGrading,
		models.TagExamHeavy,
		models.TagFastPaced,
	}, block.TopTags[2:])
}

func TestComputeAggregatesTagTiesAreLexical(t *testing.T) {
	base := time.Now()
	reviews := []models.Review{
		reviewAt(base, 3, 3, 3, 3, models.TagProjectBased),
		reviewAt(base, 3, 3, 3, 3, models.TagExamHeavy),
		reviewAt(base, 3, 3, 3, 3, models.TagFastPaced),
	}

	first := computeAggregates(reviews)
	second := computeAggregates(reviews)

	assert.Equal(t, first.TopTags, second.TopTags)
	assert.Equal(t, []models.Tag{
		models.TagExamHeavy,
		models.TagFastPaced,
		models.TagProjectBased,
	}, first.TopTags)
}

func TestRecomputePersistsInsideTransaction(t *testing.T) {
	courseRepo := new(MockCourseStore)
	reviewRepo := new(MockReviewStore)
	base := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	reviews := []models.Review{
		reviewAt(base, 4, 4, 4, 4),
		reviewAt(base, 4, 4, 4, 4),
		reviewAt(base, 4, 4, 4, 4),
	}

	courseRepo.On("LockCourse", mock.Anything, mock.Anything, int64(7)).Return(nil)
	reviewRepo.On("ListActiveReviews", mock.Anything, mock.Anything, int64(7), (*time.Time)(nil)).Return(reviews, nil)
	courseRepo.On("UpdateAggregates", mock.Anything, mock.Anything, int64(7), mock.MatchedBy(func(block models.AggregateBlock) bool {
		return block.NumReviews == 3 && block.AvgDifficulty != nil && *block.AvgDifficulty == 4.0
	})).Return(nil)

	svc := NewAggregateService(courseRepo, reviewRepo, &fakeTxRunner{}, nil)

	block, err := svc.Recompute(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 3, block.NumReviews)

	courseRepo.AssertExpectations(t)
	reviewRepo.AssertExpectations(t)
}

func TestRecomputeLockFailureAborts(t *testing.T) {
	courseRepo := new(MockCourseStore)
	reviewRepo := new(MockReviewStore)

	lockErr := errors.New("lock timeout")
	courseRepo.On("LockCourse", mock.Anything, mock.Anything, int64(7)).Return(lockErr)

	svc := NewAggregateService(courseRepo, reviewRepo, &fakeTxRunner{}, nil)

	_, err := svc.Recompute(context.Background(), 7)
	assert.ErrorIs(t, err, lockErr)
	courseRepo.AssertNotCalled(t, "UpdateAggregates", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPreviewDoesNotPersist(t *testing.T) {
	courseRepo := new(MockCourseStore)
	reviewRepo := new(MockReviewStore)
	cutoff := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	courseRepo.On("GetCourseByID", mock.Anything, int64(7)).Return(&models.Course{ID: 7}, nil)
	reviewRepo.On("ListActiveReviews", mock.Anything, mock.Anything, int64(7), &cutoff).Return([]models.Review{}, nil)

	svc := NewAggregateService(courseRepo, reviewRepo, &fakeTxRunner{}, nil)

	block, err := svc.Preview(context.Background(), 7, &cutoff)
	require.NoError(t, err)
	assert.Equal(t, 0, block.NumReviews)

	courseRepo.AssertNotCalled(t, "UpdateAggregates", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	courseRepo.AssertNotCalled(t, "LockCourse", mock.Anything, mock.Anything, mock.Anything)
}

package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/deniz/courseloop/internal/app/models"
	"github.com/deniz/courseloop/internal/app/repositories"
	"github.com/deniz/courseloop/internal/pkg/logger"
)

// MinReviewsForAggregates is the threshold below which a course exposes no
// averages and no top tags.
const MinReviewsForAggregates = 3

// topTagLimit caps how many tags the aggregate block carries.
const topTagLimit = 5

// AggregateService keeps the derived review statistics on a course row in
// step with its active reviews.
type AggregateService interface {
	// Recompute recalculates the aggregate block from the course's active
	// reviews and persists it. The read-compute-write sequence runs in one
	// transaction with the course row locked, so concurrent recalculations
	// serialize instead of overwriting each other.
	Recompute(ctx context.Context, courseID int64) (models.AggregateBlock, error)

	// Preview computes the block over active reviews created at or after
	// cutoff without touching the persisted aggregates.
	Preview(ctx context.Context, courseID int64, cutoff *time.Time) (models.AggregateBlock, error)
}

type aggregateService struct {
	courseRepo CourseStore
	reviewRepo ReviewStore
	txRunner   TxRunner
	db         repositories.DBTX
}

// NewAggregateService creates a new AggregateService. The DBTX argument is
// the pool used for reads outside a transaction.
func NewAggregateService(courseRepo CourseStore, reviewRepo ReviewStore, txRunner TxRunner, db repositories.DBTX) AggregateService {
	return &aggregateService{
		courseRepo: courseRepo,
		reviewRepo: reviewRepo,
		txRunner:   txRunner,
		db:         db,
	}
}

func (s *aggregateService) Recompute(ctx context.Context, courseID int64) (models.AggregateBlock, error) {
	var block models.AggregateBlock

	err := s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.courseRepo.LockCourse(ctx, tx, courseID); err != nil {
			return err
		}

		reviews, err := s.reviewRepo.ListActiveReviews(ctx, tx, courseID, nil)
		if err != nil {
			return err
		}

		block = computeAggregates(reviews)
		return s.courseRepo.UpdateAggregates(ctx, tx, courseID, block)
	})
	if err != nil {
		return models.AggregateBlock{}, err
	}

	logger.Info().
		Int64("courseID", courseID).
		Int("numReviews", block.NumReviews).
		Msg("Course aggregates recalculated")
	return block, nil
}

func (s *aggregateService) Preview(ctx context.Context, courseID int64, cutoff *time.Time) (models.AggregateBlock, error) {
	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return models.AggregateBlock{}, err
	}

	reviews, err := s.reviewRepo.ListActiveReviews(ctx, s.db, courseID, cutoff)
	if err != nil {
		return models.AggregateBlock{}, err
	}

	return computeAggregates(reviews), nil
}

// computeAggregates derives the aggregate block from a slice of active
// reviews. Below the minimum review count all four averages stay nil and no
// tags are reported, but the count and last review timestamp are always
// filled from whatever reviews exist.
func computeAggregates(reviews []models.Review) models.AggregateBlock {
	block := models.AggregateBlock{
		NumReviews: len(reviews),
		TopTags:    []models.Tag{},
	}

	if len(reviews) == 0 {
		return block
	}

	last := reviews[0].CreatedAt
	for _, review := range reviews[1:] {
		if review.CreatedAt.After(last) {
			last = review.CreatedAt
		}
	}
	block.LastReviewAt = &last

	if len(reviews) < MinReviewsForAggregates {
		return block
	}

	var sumDifficulty, sumUsefulness, sumWorkload, sumFairness int
	tagCounts := make(map[models.Tag]int)
	for _, review := range reviews {
		sumDifficulty += review.Difficulty
		sumUsefulness += review.Usefulness
		sumWorkload += review.Workload
		sumFairness += review.GradingFairness
		for _, tag := range review.Tags {
			tagCounts[tag]++
		}
	}

	n := float64(len(reviews))
	block.AvgDifficulty = averageOf(sumDifficulty, n)
	block.AvgUsefulness = averageOf(sumUsefulness, n)
	block.AvgWorkload = averageOf(sumWorkload, n)
	block.AvgGradingFairness = averageOf(sumFairness, n)
	block.TopTags = topTags(tagCounts, topTagLimit)

	return block
}

func averageOf(sum int, n float64) *float64 {
	avg := roundTo(float64(sum)/n, 2)
	return &avg
}

// topTags ranks tags by frequency, breaking ties lexically so the result is
// stable across recalculations.
func topTags(counts map[models.Tag]int, limit int) []models.Tag {
	ranked := make([]models.Tag, 0, len(counts))
	for tag := range counts {
		ranked = append(ranked, tag)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func roundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

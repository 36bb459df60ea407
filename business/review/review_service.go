package review

import (
	"context"
	"errors"
	"fmt"

	"swisstination/domain"
	"swisstination/pkg/logger"
)

// ReviewRepository contract interface
type ReviewRepository interface {
	FindByUserAndDestination(ctx context.Context, userID string, destinationID uint64) (domain.Review, error)
	Create(ctx context.Context, review *domain.Review) error
	Update(ctx context.Context, review *domain.Review) error
	FindByUser(ctx context.Context, userID string) ([]domain.Review, error)
}

// DestinationChecker verifies that a destination exists before a review is
// accepted for it.
type DestinationChecker interface {
	Exists(ctx context.Context, destinationID uint64) (bool, error)
}

type reviewService struct {
	reviewRepo ReviewRepository
	destCheck  DestinationChecker
}

func NewReviewService(reviewRepo ReviewRepository, destCheck DestinationChecker) *reviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		destCheck:  destCheck,
	}
}

// SubmitReview inserts a new review or updates the user's existing one for
// the destination. Returns the stored review and whether it was an update.
func (s *reviewService) SubmitReview(ctx context.Context, review *domain.Review) (domain.Review, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Review{}, false, fmt.Errorf("context error: %w", err)
	}

	if review.Rating < 1 || review.Rating > 5 {
		logger.Error("Invalid rating value", "rating", review.Rating)
		return domain.Review{}, false, errors.New("rating must be between 1 and 5 stars")
	}

	exists, err := s.destCheck.Exists(ctx, review.DestinationID)
	if err != nil {
		logger.Error("Failed to check destination", "error", err)
		return domain.Review{}, false, fmt.Errorf("failed to check destination: %w", err)
	}
	if !exists {
		return domain.Review{}, false, errors.New("destination not found")
	}

	existing, err := s.reviewRepo.FindByUserAndDestination(ctx, review.UserID, review.DestinationID)
	if err == nil && existing.ID > 0 {
		existing.Rating = review.Rating
		existing.Review = review.Review

		if err := s.reviewRepo.Update(ctx, &existing); err != nil {
			logger.Error("Failed to update review", "error", err)
			return domain.Review{}, false, fmt.Errorf("failed to update review: %w", err)
		}

		return existing, true, nil
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		logger.Error("Failed to create review", "error", err)
		return domain.Review{}, false, fmt.Errorf("failed to submit review: %w", err)
	}

	return *review, false, nil
}

func (s *reviewService) GetUserReviews(ctx context.Context, userID string) ([]domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	reviews, err := s.reviewRepo.FindByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to find user reviews", "error", err)
		return nil, err
	}

	return reviews, nil
}

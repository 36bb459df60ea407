package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"swisstination/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{
		DB: db,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

func (r *ReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).
		Model(&domain.Review{}).
		Where("id = ?", review.ID).
		Updates(map[string]interface{}{
			"rating": review.Rating,
			"review": review.Review,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("review not found")
	}

	return nil
}

func (r *ReviewRepository) FindByUserAndDestination(ctx context.Context, userID string, destinationID uint64) (domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return domain.Review{}, fmt.Errorf("context error: %w", err)
	}

	var review domain.Review

	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND destination_id = ?", userID, destinationID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Review{}, errors.New("review not found")
		}
		return domain.Review{}, fmt.Errorf("failed to find review: %w", err)
	}

	return review, nil
}

func (r *ReviewRepository) FindByUser(ctx context.Context, userID string) ([]domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var reviews []domain.Review
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}

	return reviews, nil
}

// RatedDestinationIDs is part of the engine's interaction source: the set of
// destination ids the user has already rated, stringified to match the
// model artifact's raw item ids.
func (r *ReviewRepository) RatedDestinationIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ids []uint64
	err := r.DB.WithContext(ctx).
		Model(&domain.Review{}).
		Where("user_id = ?", userID).
		Pluck("destination_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list rated destinations: %w", err)
	}

	rated := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		rated[strconv.FormatUint(id, 10)] = struct{}{}
	}

	return rated, nil
}

// CountByUser is the engine's interaction-volume lookup.
func (r *ReviewRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var count int64
	err := r.DB.WithContext(ctx).
		Model(&domain.Review{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	return count, nil
}

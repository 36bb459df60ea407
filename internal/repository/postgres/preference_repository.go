package postgres

import (
	"context"
	"fmt"

	"swisstination/domain"

	"gorm.io/gorm"
)

type PreferenceRepository struct {
	DB *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{
		DB: db,
	}
}

// ReplaceForUser deletes the user's existing preference rows and inserts the
// new set in one transaction.
func (r *PreferenceRepository) ReplaceForUser(ctx context.Context, userID string, preferences []domain.Preference) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&domain.Preference{}).Error; err != nil {
			return fmt.Errorf("failed to delete existing preferences: %w", err)
		}

		if len(preferences) == 0 {
			return nil
		}

		if err := tx.Create(&preferences).Error; err != nil {
			return fmt.Errorf("failed to insert preferences: %w", err)
		}

		return nil
	})
}

func (r *PreferenceRepository) FindByUser(ctx context.Context, userID string) ([]domain.Preference, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var preferences []domain.Preference
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("category_id").
		Find(&preferences).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find preferences: %w", err)
	}

	return preferences, nil
}

func (r *PreferenceRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var count int64
	err := r.DB.WithContext(ctx).
		Model(&domain.Preference{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count preferences: %w", err)
	}

	return count, nil
}

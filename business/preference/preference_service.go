package preference

import (
	"context"
	"errors"
	"fmt"

	"swisstination/domain"
	"swisstination/pkg/logger"
)

// PreferenceRepository contract interface
type PreferenceRepository interface {
	ReplaceForUser(ctx context.Context, userID string, preferences []domain.Preference) error
	FindByUser(ctx context.Context, userID string) ([]domain.Preference, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type preferenceService struct {
	preferenceRepo PreferenceRepository
}

func NewPreferenceService(preferenceRepo PreferenceRepository) *preferenceService {
	return &preferenceService{
		preferenceRepo: preferenceRepo,
	}
}

// SavePreferences replaces the user's declared category preferences with the
// given set.
func (s *preferenceService) SavePreferences(ctx context.Context, userID string, preferences []domain.Preference) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	if len(preferences) == 0 {
		return 0, errors.New("no preferences provided")
	}

	for i := range preferences {
		if preferences[i].CategoryID <= 0 {
			logger.Error("Invalid category id in preferences", "category_id", preferences[i].CategoryID)
			return 0, fmt.Errorf("invalid category id: %d", preferences[i].CategoryID)
		}
		if preferences[i].Weight <= 0 {
			preferences[i].Weight = 1.0
		}
		preferences[i].UserID = userID
	}

	if err := s.preferenceRepo.ReplaceForUser(ctx, userID, preferences); err != nil {
		logger.Error("Failed to save preferences", "error", err)
		return 0, fmt.Errorf("failed to save preferences: %w", err)
	}

	logger.Info("preferences saved", "user_id", userID, "count", len(preferences))

	return len(preferences), nil
}

func (s *preferenceService) GetPreferences(ctx context.Context, userID string) ([]domain.Preference, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	preferences, err := s.preferenceRepo.FindByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to find preferences", "error", err)
		return nil, err
	}

	return preferences, nil
}

// PreferenceStatus reports whether the user has any preferences set, used by
// clients for onboarding redirects.
func (s *preferenceService) PreferenceStatus(ctx context.Context, userID string) (bool, int64, error) {
	if err := ctx.Err(); err != nil {
		return false, 0, fmt.Errorf("context error: %w", err)
	}

	count, err := s.preferenceRepo.CountByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to count preferences", "error", err)
		return false, 0, err
	}

	return count > 0, count, nil
}

// CategoryIDs flattens the user's preferences into the category-id set fed
// to the recommendation engine. A missing preference row set yields nil.
func (s *preferenceService) CategoryIDs(ctx context.Context, userID string) ([]int64, error) {
	preferences, err := s.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(preferences) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(preferences))
	for _, pref := range preferences {
		ids = append(ids, pref.CategoryID)
	}

	return ids, nil
}

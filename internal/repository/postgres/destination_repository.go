package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"swisstination/domain"

	"gorm.io/gorm"
)

type DestinationRepository struct {
	DB *gorm.DB
}

func NewDestinationRepository(db *gorm.DB) *DestinationRepository {
	return &DestinationRepository{
		DB: db,
	}
}

func (r *DestinationRepository) FindAll(ctx context.Context) ([]domain.Destination, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var destinations []domain.Destination
	err := r.DB.WithContext(ctx).Order("destination_id").Find(&destinations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find destinations: %w", err)
	}

	return destinations, nil
}

func (r *DestinationRepository) FindByID(ctx context.Context, id uint64) (domain.DestinationDetails, error) {
	if err := ctx.Err(); err != nil {
		return domain.DestinationDetails{}, fmt.Errorf("context error: %w", err)
	}

	var details domain.DestinationDetails

	err := r.DB.WithContext(ctx).
		Table("destinations").
		Select("destinations.*, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.category_id = destinations.category_id").
		Where("destinations.destination_id = ?", id).
		First(&details).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.DestinationDetails{}, errors.New("destination not found")
		}
		return domain.DestinationDetails{}, fmt.Errorf("failed to find destination: %w", err)
	}

	return details, nil
}

func (r *DestinationRepository) FindByIDs(ctx context.Context, ids []uint64) ([]domain.Destination, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var destinations []domain.Destination
	err := r.DB.WithContext(ctx).
		Where("destination_id IN ?", ids).
		Order("destination_id").
		Find(&destinations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find destinations: %w", err)
	}

	return destinations, nil
}

func (r *DestinationRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	var count int64
	err := r.DB.WithContext(ctx).
		Model(&domain.Destination{}).
		Where("destination_id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check destination: %w", err)
	}

	return count > 0, nil
}

// FindRefs is the live catalog source for the recommendation engine:
// (id, category) pairs in primary-key order, optionally restricted to a
// category set. Ids are stringified to match the model artifact's raw ids.
func (r *DestinationRepository) FindRefs(ctx context.Context, categoryIDs []int64) ([]domain.DestinationRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).
		Model(&domain.Destination{}).
		Select("destination_id", "category_id").
		Order("destination_id")

	if len(categoryIDs) > 0 {
		query = query.Where("category_id IN ?", categoryIDs)
	}

	var rows []struct {
		DestinationID uint64
		CategoryID    int64
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list candidate destinations: %w", err)
	}

	refs := make([]domain.DestinationRef, 0, len(rows))
	for _, row := range rows {
		refs = append(refs, domain.DestinationRef{
			ID:         strconv.FormatUint(row.DestinationID, 10),
			CategoryID: row.CategoryID,
		})
	}

	return refs, nil
}

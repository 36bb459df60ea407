package category

import (
	"context"
	"errors"
	"fmt"

	"swisstination/domain"
	"swisstination/pkg/logger"
)

// CategoryRepository contract interface
type CategoryRepository interface {
	FindByID(ctx context.Context, id int64) (domain.Category, error)
	FindAll(ctx context.Context) ([]domain.Category, error)
	Count(ctx context.Context) (int64, error)
}

type categoryService struct {
	categoryRepo CategoryRepository
}

func NewCategoryService(categoryRepo CategoryRepository) *categoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
	}
}

func (s *categoryService) GetAllCategories(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all categories")
		return nil, fmt.Errorf("context error: %w", err)
	}

	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all categories", "error", err)
		return nil, err
	}

	return categories, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id int64) (domain.Category, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get category by id")
		return domain.Category{}, fmt.Errorf("context error: %w", err)
	}

	if id <= 0 {
		logger.Error("Invalid category id", "category_id", id)
		return domain.Category{}, errors.New("invalid category id")
	}

	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find category", "error", err)
		return domain.Category{}, err
	}

	return category, nil
}

func (s *categoryService) CountCategories(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	return s.categoryRepo.Count(ctx)
}

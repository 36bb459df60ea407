package destination

import (
	"context"
	"errors"
	"fmt"

	"swisstination/domain"
	"swisstination/pkg/logger"
)

// DestinationRepository contract interface
type DestinationRepository interface {
	FindAll(ctx context.Context) ([]domain.Destination, error)
	FindByID(ctx context.Context, id uint64) (domain.DestinationDetails, error)
	FindByIDs(ctx context.Context, ids []uint64) ([]domain.Destination, error)
}

type destinationService struct {
	destinationRepo DestinationRepository
}

func NewDestinationService(destinationRepo DestinationRepository) *destinationService {
	return &destinationService{
		destinationRepo: destinationRepo,
	}
}

func (s *destinationService) GetAllDestinations(ctx context.Context) ([]domain.Destination, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all destinations")
		return nil, fmt.Errorf("context error: %w", err)
	}

	destinations, err := s.destinationRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all destinations", "error", err)
		return nil, err
	}

	return destinations, nil
}

func (s *destinationService) GetDestinationByID(ctx context.Context, id uint64) (domain.DestinationDetails, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get destination by id")
		return domain.DestinationDetails{}, fmt.Errorf("context error: %w", err)
	}

	if id == 0 {
		logger.Error("Invalid destination id")
		return domain.DestinationDetails{}, errors.New("invalid destination id")
	}

	details, err := s.destinationRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find destination", "error", err)
		return domain.DestinationDetails{}, err
	}

	return details, nil
}

// GetDestinationsByIDs hydrates a list of ids (typically recommendation
// results) into full destination records. Unknown ids are skipped.
func (s *destinationService) GetDestinationsByIDs(ctx context.Context, ids []uint64) ([]domain.Destination, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get destinations by ids")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if len(ids) == 0 {
		return []domain.Destination{}, nil
	}

	destinations, err := s.destinationRepo.FindByIDs(ctx, ids)
	if err != nil {
		logger.Error("Failed to find destinations by ids", "error", err)
		return nil, err
	}

	return destinations, nil
}

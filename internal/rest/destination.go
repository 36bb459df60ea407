package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"swisstination/domain"
	"swisstination/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type DestinationService interface {
	GetAllDestinations(ctx context.Context) ([]domain.Destination, error)
	GetDestinationByID(ctx context.Context, id uint64) (domain.DestinationDetails, error)
	GetDestinationsByIDs(ctx context.Context, ids []uint64) ([]domain.Destination, error)
}

type DestinationHandler struct {
	destinationService DestinationService
	validator          *validator.Validate
	timeout            time.Duration
}

func NewDestinationHandler(destinationService DestinationService) *DestinationHandler {
	return &DestinationHandler{
		destinationService: destinationService,
		validator:          validator.New(),
		timeout:            10 * time.Second,
	}
}

type BatchDestinationsRequest struct {
	DestinationIDs []string `json:"destination_ids" validate:"required"`
}

func (h *DestinationHandler) GetAllDestinations(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	destinations, err := h.destinationService.GetAllDestinations(ctx)
	if err != nil {
		logger.Error("Failed to find all destinations", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"destinations": destinations,
	})
}

func (h *DestinationHandler) GetDestinationByID(c echo.Context) error {
	destinationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid destination id", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid destination id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	details, err := h.destinationService.GetDestinationByID(ctx, destinationID)
	if err != nil {
		logger.Error("Failed to find destination", "error", err)
		if err.Error() == "destination not found" || err.Error() == "invalid destination id" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, details)
}

// GetDestinationsByIDs hydrates a batch of ids, typically recommendation
// output. Ids arrive as strings (the engine's raw-id format); malformed ones
// are rejected.
func (h *DestinationHandler) GetDestinationsByIDs(c echo.Context) error {
	var req BatchDestinationsRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate batch request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ids := make([]uint64, 0, len(req.DestinationIDs))
	for _, raw := range req.DestinationIDs {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			logger.Error("Invalid destination id in batch", "value", raw)
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid destination id: " + raw})
		}
		ids = append(ids, id)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	destinations, err := h.destinationService.GetDestinationsByIDs(ctx, ids)
	if err != nil {
		logger.Error("Failed to find destinations by ids", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, destinations)
}

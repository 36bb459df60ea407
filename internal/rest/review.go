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

type ReviewService interface {
	SubmitReview(ctx context.Context, review *domain.Review) (domain.Review, bool, error)
	GetUserReviews(ctx context.Context, userID string) ([]domain.Review, error)
}

type ReviewHandler struct {
	reviewService ReviewService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewReviewHandler(reviewService ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
		timeout:       10 * time.Second,
	}
}

type SubmitReviewRequest struct {
	DestinationID string `json:"destination_id" validate:"required"`
	Rating        int    `json:"rating" validate:"required,min=1,max=5"`
	Review        string `json:"review"`
}

// SubmitReview creates or replaces the authenticated user's review for a
// destination. One review per user per destination.
func (h *ReviewHandler) SubmitReview(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req SubmitReviewRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate review request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	destinationID, err := strconv.ParseUint(req.DestinationID, 10, 64)
	if err != nil {
		logger.Error("Invalid destination id", "value", req.DestinationID)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid destination id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	review, wasUpdate, err := h.reviewService.SubmitReview(ctx, &domain.Review{
		UserID:        userID,
		DestinationID: destinationID,
		Rating:        req.Rating,
		Review:        req.Review,
	})
	if err != nil {
		logger.Error("Failed to submit review", "error", err)
		switch err.Error() {
		case "rating must be between 1 and 5 stars":
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		case "destination not found":
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	message := "Review submitted successfully"
	status := http.StatusCreated
	if wasUpdate {
		message = "Review updated successfully"
		status = http.StatusOK
	}

	return c.JSON(status, map[string]interface{}{
		"message": message,
		"review":  review,
	})
}

func (h *ReviewHandler) GetUserReviews(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	reviews, err := h.reviewService.GetUserReviews(ctx, userID)
	if err != nil {
		logger.Error("Failed to find user reviews", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"reviews": reviews,
		"total":   len(reviews),
	})
}

package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"swisstination/business/recommender"
	"swisstination/domain"
	"swisstination/pkg/logger"
	"swisstination/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type RecommenderService interface {
	Recommend(ctx context.Context, userID string, categoryIDs []int64, limit int) (recommender.Strategy, []domain.ScoredDestination, error)
	ModelAvailable() bool
}

// PreferenceReader is the slice of the preference service the recommendation
// handler needs: the user's declared categories, flattened for the engine.
type PreferenceReader interface {
	CategoryIDs(ctx context.Context, userID string) ([]int64, error)
}

type RecommendationHandler struct {
	recommenderService RecommenderService
	preferences        PreferenceReader
	validator          *validator.Validate
	timeout            time.Duration
}

func NewRecommendationHandler(recommenderService RecommenderService, preferences PreferenceReader) *RecommendationHandler {
	return &RecommendationHandler{
		recommenderService: recommenderService,
		preferences:        preferences,
		validator:          validator.New(),
		timeout:            10 * time.Second,
	}
}

type ColdStartRequest struct {
	CategoryIDs []int64 `json:"category_ids" validate:"required,min=1"`
	N           int     `json:"n"`
}

type RecommendationResponse struct {
	Strategy          string                     `json:"strategy"`
	Recommendations   []domain.ScoredDestination `json:"recommendations"`
	Total             int                        `json:"total"`
	BasedOnCategories []int64                    `json:"based_on_categories,omitempty"`
}

// GetRecommendations serves personalized recommendations for the
// authenticated user, seeded with their saved category preferences. The
// engine picks the strategy (known-user, cold-start or fallback) itself.
func (h *RecommendationHandler) GetRecommendations(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	limit, err := parseLimit(c.QueryParam("n"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	timer := time.Now()
	defer func() {
		metrics.RecommendDuration.Observe(time.Since(timer).Seconds())
	}()
	metrics.RecommendTotal.Inc()

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	categoryIDs, err := h.preferences.CategoryIDs(ctx, userID)
	if err != nil {
		// Preferences being unreadable should not block recommendations,
		// the engine can still fall back.
		logger.Warn("Failed to load preference categories", "user_id", userID, "error", err)
		categoryIDs = nil
	}

	strategy, scored, err := h.recommenderService.Recommend(ctx, userID, categoryIDs, limit)
	if err != nil {
		logger.Error("Failed to build recommendations", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, RecommendationResponse{
		Strategy:          string(strategy),
		Recommendations:   scored,
		Total:             len(scored),
		BasedOnCategories: categoryIDs,
	})
}

// GetRecommendationsByCategory serves recommendations restricted to a single
// category, ignoring the user's saved preferences.
func (h *RecommendationHandler) GetRecommendationsByCategory(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	categoryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || categoryID <= 0 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid category id"})
	}

	limit, err := parseLimit(c.QueryParam("n"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	timer := time.Now()
	defer func() {
		metrics.RecommendDuration.Observe(time.Since(timer).Seconds())
	}()
	metrics.RecommendTotal.Inc()

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	strategy, scored, err := h.recommenderService.Recommend(ctx, userID, []int64{categoryID}, limit)
	if err != nil {
		logger.Error("Failed to build category recommendations", "category_id", categoryID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, RecommendationResponse{
		Strategy:          string(strategy),
		Recommendations:   scored,
		Total:             len(scored),
		BasedOnCategories: []int64{categoryID},
	})
}

// ColdStart serves recommendations from explicit category picks without any
// user identity, for onboarding screens shown before the first rating.
func (h *RecommendationHandler) ColdStart(c echo.Context) error {
	var req ColdStartRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate cold-start request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if req.N < 0 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "n must not be negative"})
	}

	limit := req.N
	if limit == 0 {
		limit = recommender.ReturnAllThreshold
	}

	timer := time.Now()
	defer func() {
		metrics.RecommendDuration.Observe(time.Since(timer).Seconds())
	}()
	metrics.RecommendTotal.Inc()

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	strategy, scored, err := h.recommenderService.Recommend(ctx, "", req.CategoryIDs, limit)
	if err != nil {
		logger.Error("Failed to build cold-start recommendations", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, RecommendationResponse{
		Strategy:          string(strategy),
		Recommendations:   scored,
		Total:             len(scored),
		BasedOnCategories: req.CategoryIDs,
	})
}

// ModelStatus reports whether the trained artifact is loaded, for health
// dashboards.
func (h *RecommendationHandler) ModelStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"model_loaded": h.recommenderService.ModelAvailable(),
	})
}

// parseLimit reads the n query parameter. Omitted means "all available",
// expressed through the engine's return-all threshold.
func parseLimit(raw string) (int, error) {
	if raw == "" {
		return recommender.ReturnAllThreshold, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("n must be an integer")
	}
	if limit < 0 {
		return 0, errors.New("n must not be negative")
	}

	return limit, nil
}

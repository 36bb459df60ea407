package rest

import (
	"context"
	"net/http"
	"time"

	"swisstination/domain"
	"swisstination/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type PreferenceService interface {
	SavePreferences(ctx context.Context, userID string, preferences []domain.Preference) (int, error)
	GetPreferences(ctx context.Context, userID string) ([]domain.Preference, error)
	PreferenceStatus(ctx context.Context, userID string) (bool, int64, error)
}

type PreferenceHandler struct {
	preferenceService PreferenceService
	validator         *validator.Validate
	timeout           time.Duration
}

func NewPreferenceHandler(preferenceService PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{
		preferenceService: preferenceService,
		validator:         validator.New(),
		timeout:           10 * time.Second,
	}
}

type PreferenceItem struct {
	CategoryID int64   `json:"category_id" validate:"required,gt=0"`
	Weight     float64 `json:"weight"`
}

type SavePreferencesRequest struct {
	Preferences []PreferenceItem `json:"preferences" validate:"required,min=1,dive"`
}

// SavePreferences replaces the user's declared category preferences.
func (h *PreferenceHandler) SavePreferences(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req SavePreferencesRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate preferences request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	preferences := make([]domain.Preference, 0, len(req.Preferences))
	for _, item := range req.Preferences {
		preferences = append(preferences, domain.Preference{
			CategoryID: item.CategoryID,
			Weight:     item.Weight,
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	saved, err := h.preferenceService.SavePreferences(ctx, userID, preferences)
	if err != nil {
		logger.Error("Failed to save preferences", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Preferences saved successfully",
		"saved":   saved,
	})
}

func (h *PreferenceHandler) GetPreferences(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	preferences, err := h.preferenceService.GetPreferences(ctx, userID)
	if err != nil {
		logger.Error("Failed to find preferences", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(preferences))
}

// PreferenceStatus tells clients whether onboarding (picking categories) is
// still pending for this user.
func (h *PreferenceHandler) PreferenceStatus(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	hasPreferences, count, err := h.preferenceService.PreferenceStatus(ctx, userID)
	if err != nil {
		logger.Error("Failed to check preference status", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"has_preferences": hasPreferences,
		"count":           count,
	})
}

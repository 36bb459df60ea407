package rest

import (
	"context"
	"net/http"
	"time"

	"swisstination/domain"
	"swisstination/pkg/logger"
	"swisstination/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type AuthService interface {
	Signup(ctx context.Context, user *domain.User) (string, domain.User, error)
	Login(ctx context.Context, email, password string) (string, domain.User, error)
	Logout(ctx context.Context, userID, token string) error
	ValidateTokenFromRedis(ctx context.Context, token string) (string, error)
	GetProfile(ctx context.Context, userID string) (domain.User, error)
}

type UserHandler struct {
	authService AuthService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewUserHandler(authService AuthService) *UserHandler {
	return &UserHandler{
		authService: authService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type UserSignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type UserLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

func (h *UserHandler) Signup(c echo.Context) error {
	var req UserSignupRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate signup request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	token, user, err := h.authService.Signup(ctx, &domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		logger.Error("Failed to sign up user", "error", err)
		metrics.SignupAttemptsTotal.WithLabelValues("failure").Inc()
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	metrics.SignupAttemptsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":      "Signup successful!",
		"user":         user,
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (h *UserHandler) Login(c echo.Context) error {
	var req UserLoginRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate login request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	token, user, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		logger.Error("Failed to login user", "error", err)
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":      "Login successful!",
		"user":         user,
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (h *UserHandler) Logout(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	token, ok := c.Get("token").(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.authService.Logout(ctx, userID, token); err != nil {
		logger.Error("Failed to logout user", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Logout successful",
	})
}

// GetProfile returns the authenticated user's profile.
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.authService.GetProfile(ctx, userID)
	if err != nil {
		logger.Error("Failed to get user profile", "error", err)
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "could not validate credentials"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "User authenticated successfully",
		"user":    user,
	})
}

// VerifyToken confirms the bearer token is valid and returns its user.
func (h *UserHandler) VerifyToken(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.authService.GetProfile(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "could not validate credentials"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"valid": true,
		"user":  user,
	})
}

package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"swisstination/pkg/logger"
	"swisstination/pkg/utils"

	jsonres "swisstination/pkg/response"

	"github.com/labstack/echo/v4"
)

// TokenValidator checks a token against the session store so revoked tokens
// are rejected before expiry.
type TokenValidator interface {
	ValidateTokenFromRedis(ctx context.Context, token string) (string, error)
}

// AuthMiddleware basic JWT authentication without the session store.
func AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, tokenString, ok, err := parseBearer(c)
			if !ok {
				return err
			}

			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)
			c.Set("token", tokenString)

			return next(c)
		}
	}
}

// AuthMiddlewareWithRedis JWT authentication with session-store validation.
func AuthMiddlewareWithRedis(tokenValidator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, tokenString, ok, err := parseBearer(c)
			if !ok {
				return err
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			userID, err := tokenValidator.ValidateTokenFromRedis(ctx, tokenString)
			if err != nil {
				logger.Error("Token not found in session store", "error", err)
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Token expired or invalid", nil,
				))
			}

			if userID != claims.UserID {
				logger.Error("UserID mismatch between JWT and session store")
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid token", nil,
				))
			}

			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)
			c.Set("token", tokenString)

			return next(c)
		}
	}
}

// parseBearer extracts and validates the bearer token. When ok is false the
// error response has already been written and should be returned as-is.
func parseBearer(c echo.Context) (*utils.Claims, string, bool, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, "", false, c.JSON(http.StatusUnauthorized, jsonres.Error(
			"UNAUTHORIZED", "Missing authorization header", nil,
		))
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return nil, "", false, c.JSON(http.StatusUnauthorized, jsonres.Error(
			"UNAUTHORIZED", "Invalid authorization format", nil,
		))
	}

	tokenString := tokenParts[1]

	claims, err := utils.ParseJWT(tokenString)
	if err != nil {
		return nil, "", false, c.JSON(http.StatusUnauthorized, jsonres.Error(
			"UNAUTHORIZED", "Invalid token", nil,
		))
	}

	expAt, err := claims.GetExpirationTime()
	if err != nil || expAt == nil {
		return nil, "", false, c.JSON(http.StatusForbidden, jsonres.Error(
			"FORBIDDEN", "Status Forbidden", nil,
		))
	}

	if time.Now().After(expAt.Time) {
		return nil, "", false, c.JSON(http.StatusForbidden, jsonres.Error(
			"FORBIDDEN", "Token expired", nil,
		))
	}

	return claims, tokenString, true, nil
}

package middleware

import (
	"net/http"

	"swisstination/pkg/logger"

	jsonres "swisstination/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the echo HTTPErrorHandler: echo.HTTPError passes through
// with its status, anything else becomes an opaque 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	if he, ok := err.(*echo.HTTPError); ok {
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		_ = c.JSON(he.Code, jsonres.Error(http.StatusText(he.Code), msg, nil))
		return
	}

	logger.Error("Unhandled error", "error", err, "path", c.Path())
	_ = c.JSON(http.StatusInternalServerError, jsonres.Error(
		"INTERNAL_SERVER_ERROR", "internal server error", nil,
	))
}

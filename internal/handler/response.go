package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/octobees/peoplefinder/internal/dto"
	middlewarepkg "github.com/octobees/peoplefinder/internal/middleware"
	"github.com/octobees/peoplefinder/internal/service"
)

// DataResponse wraps successful payloads.
type DataResponse struct {
	Data any `json:"data"`
}

// Success sends data wrapped in the shared {"data": ...} envelope.
func Success(c echo.Context, status int, data any) error {
	if status == 0 {
		status = http.StatusOK
	}
	return c.JSON(status, DataResponse{Data: data})
}

// Error sends the shared {"error": "..."} envelope.
func Error(c echo.Context, status int, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, dto.ErrorResponse{Error: message})
}

// HTTPErrorHandler renders framework errors (unknown routes, recovered panics)
// in the same envelope as handler errors without leaking internals.
func HTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := service.MsgInternal

		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
			status = he.Code
			if msg, ok := he.Message.(string); ok && msg != "" {
				message = msg
			} else {
				message = http.StatusText(status)
			}
		} else {
			logger.Error("unhandled request error",
				zap.String("request_id", middlewarepkg.RequestIDFromContext(c)),
				zap.String("path", c.Request().URL.Path),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = Error(c, status, message)
	}
}

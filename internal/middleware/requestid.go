package middleware

import (
	"github.com/Meenakshi-1306/Tutedude/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestIDMiddleware tags each request with an id. An incoming
// X-Request-ID header is reused so ids follow a request across services.
func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(echo.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Response().Header().Set(echo.HeaderXRequestID, requestID)

		logger.Attach(c, logger.FromContext(c).With(zap.String("request_id", requestID)))

		return next(c)
	}
}

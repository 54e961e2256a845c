package handler

import (
	"net/http"

	"github.com/Meenakshi-1306/Tutedude/pkg/config"

	"github.com/labstack/echo/v4"
)

// Hello returns a welcome message
// Used for health check and root endpoints
func Hello(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Bhojanyaan marketplace API is running",
		"service": config.ServiceName,
		"version": "1.0.0",
	})
}

package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext_FallsBackToGlobal(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.NotNil(t, FromContext(c))
}

func TestAttach_VisibleFromBothContexts(t *testing.T) {
	core, _ := observer.New(zap.InfoLevel)
	l := zap.New(core)

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	Attach(c, l)

	assert.Same(t, l, FromContext(c))
	assert.Same(t, l, FromGoContext(c.Request().Context()))
}

func TestMiddleware_LogsRequest(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			Attach(c, zap.New(core))
			return next(c)
		}
	})
	e.Use(Middleware())
	e.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	entries := logs.FilterMessage("HTTP Request").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "/ping", entries[0].ContextMap()["path"])
		assert.EqualValues(t, http.StatusNoContent, entries[0].ContextMap()["status"])
	}
}

package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raceboard/backend/internal/config"
	"github.com/raceboard/backend/internal/errs"
	"github.com/raceboard/backend/internal/server"
	"github.com/raceboard/backend/internal/sqlerr"
)

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"http error", errs.NewForbiddenError("nope", true), http.StatusForbidden, "FORBIDDEN"},
		{"wrapped http error", fmt.Errorf("svc: %w", errs.NewBadRequestError("bad", true, nil, nil, nil)), http.StatusBadRequest, "BAD_REQUEST"},
		{"no rows", sqlerr.WithTable("driver_documents", pgx.ErrNoRows), http.StatusNotFound, ""},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "method"), http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			e.GET("/", func(c echo.Context) error { return tt.err })

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.status, body.Status)
			if tt.code != "" {
				assert.Equal(t, tt.code, body.Code)
			}
		})
	}
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	e := newTestEcho()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decodeError(t, rec).Message)
}

func TestRequestLoggerOnlyErrors(t *testing.T) {
	var buf strings.Builder
	logger := zerolog.New(&buf)

	e := newTestEcho()
	global := NewGlobalMiddlewares(&server.Server{Logger: &logger})
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(LoggerKey, &logger)
			return next(c)
		}
	})
	e.Use(global.RequestLogger())

	quiet := e.Group("/quiet", WithLogConfig(LogConfig{OnlyErrors: true}))
	quiet.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	quiet.GET("/fail", func(c echo.Context) error { return errs.NewBadRequestError("bad", true, nil, nil, nil) })
	e.GET("/loud", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	serve := func(path string) {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	serve("/quiet/ok")
	assert.NotContains(t, buf.String(), `"uri":"/quiet/ok"`)

	serve("/quiet/fail")
	assert.Contains(t, buf.String(), `"uri":"/quiet/fail"`)
	assert.Contains(t, buf.String(), `"status":400`)

	serve("/loud")
	assert.Contains(t, buf.String(), `"uri":"/loud"`)
}

func TestMetricsCollect(t *testing.T) {
	m := NewMetricsMiddleware()
	e := newTestEcho()
	e.Use(m.Collect())
	e.GET("/v2/classifiers/types", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/v1/fail", func(c echo.Context) error { return errs.NewForbiddenError("no", false) })
	e.GET("/metrics", m.Handler())

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v2/classifiers/types", nil))
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/fail", nil))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/v2/classifiers/types", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/v1/fail", "403")))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "raceboard_http_requests_total")
}

func TestRateLimit(t *testing.T) {
	logger := zerolog.Nop()
	s := &server.Server{Logger: &logger, Config: &config.Config{}}
	limiter := NewRateLimitMiddleware(s)

	e := newTestEcho()
	e.GET("/limited", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, limiter.Limit(1))
	e.GET("/open", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, limiter.Limit(0))

	statuses := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/limited", nil))
		statuses = append(statuses, rec.Code)
	}
	assert.Contains(t, statuses, http.StatusTooManyRequests)
	assert.Equal(t, http.StatusOK, statuses[0])

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/open", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

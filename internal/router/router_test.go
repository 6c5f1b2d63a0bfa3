package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raceboard/backend/internal/config"
	"github.com/raceboard/backend/internal/handler"
	"github.com/raceboard/backend/internal/lib/i18n"
	"github.com/raceboard/backend/internal/lib/token"
	"github.com/raceboard/backend/internal/middleware"
	"github.com/raceboard/backend/internal/model"
	"github.com/raceboard/backend/internal/repository"
	"github.com/raceboard/backend/internal/server"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// openSessions maps an open session id to its current pair id.
type openSessions map[string]string

func (s openSessions) Get(_ context.Context, id string) (*model.Session, error) {
	pairID, ok := s[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	return &model.Session{ID: id, UserID: 7, PairID: pairID}, nil
}

// Unimplemented methods panic; each test only hits the ones it overrides.
type authStub struct {
	handler.AuthService
	refreshed model.ProfileData
}

func (a *authStub) Refresh(_ context.Context, profile model.ProfileData, _, _ string) (*model.AuthTokens, error) {
	a.refreshed = profile
	return &model.AuthTokens{AccessToken: "a", RefreshToken: "r", ExpiresIn: time.Minute, Role: profile.Role}, nil
}

type documentsStub struct {
	handler.DriverDocumentService
	calls int
}

func (d *documentsStub) Add(_ context.Context, _ model.ProfileData, doc model.DriverDocument) (*model.DriverDocument, error) {
	d.calls++
	return &doc, nil
}

type catalogStub struct {
	handler.CatalogService
	calls int
}

func (c *catalogStub) DriverRecords(context.Context, int64, model.DriverRecordFilter) ([]model.DriverRecord, error) {
	c.calls++
	return nil, nil
}

type fixture struct {
	e         *echo.Echo
	sessions  openSessions
	tokens    *token.Manager
	auth      *authStub
	documents *documentsStub
	catalog   *catalogStub
}

func newFixture(t *testing.T, accessTTL time.Duration) *fixture {
	t.Helper()

	logger := zerolog.Nop()
	s := &server.Server{
		Logger: &logger,
		Config: &config.Config{Primary: config.Primary{Env: "test"}},
		Tokens: token.NewManager(testSecret, accessTTL, time.Hour),
		I18n:   i18n.NewResolver("en", []string{"en", "ru"}),
	}

	f := &fixture{
		sessions:  openSessions{},
		tokens:    s.Tokens,
		auth:      &authStub{},
		documents: &documentsStub{},
		catalog:   &catalogStub{},
	}

	h := &handler.Handlers{
		Health:          &handler.HealthHandler{},
		OpenAPI:         handler.NewOpenAPIHandler(s),
		Auth:            handler.NewAuthHandler(s, f.auth),
		DriverDocuments: handler.NewDriverDocumentHandler(s, f.documents),
		Catalog:         handler.NewCatalogHandler(s, f.catalog),
	}

	m := middleware.NewMiddlewares(s)
	m.Auth = middleware.NewAuthMiddlewareWithSessions(s, f.sessions)

	e, err := newRouter(s, h, m)
	require.NoError(t, err)
	f.e = e
	return f
}

func (f *fixture) bearer(t *testing.T, role model.AppRole) string {
	t.Helper()
	pair, err := f.tokens.Issue(model.ProfileData{UserID: 7, Login: "racer", Role: role, SessionID: "s-1"})
	require.NoError(t, err)
	f.sessions["s-1"] = pair.PairID
	return "Bearer " + pair.AccessToken
}

func (f *fixture) do(method, target, body, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func TestRoleGateRunsBeforeValidation(t *testing.T) {
	f := newFixture(t, time.Minute)
	const invalid = `{"c_document_type": 9}`

	tests := []struct {
		name          string
		authorization func() string
		want          int
	}{
		{"no token", func() string { return "" }, http.StatusUnauthorized},
		{"garbage token", func() string { return "Bearer nope" }, http.StatusUnauthorized},
		{"wrong role", func() string { return f.bearer(t, model.AppRoleUser) }, http.StatusForbidden},
		{"driver reaches validation", func() string { return f.bearer(t, model.AppRoleDriver) }, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(http.MethodPost, "/v1/drivers/7/documents", invalid, tt.authorization())
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
	assert.Zero(t, f.documents.calls)
}

func TestRefreshAcceptsExpiredAccessToken(t *testing.T) {
	f := newFixture(t, -time.Minute)

	rec := f.do(http.MethodPut, "/v3/auth/refresh", `{"refresh_token":"r"}`, f.bearer(t, model.AppRoleDriver))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, int64(7), f.auth.refreshed.UserID)

	// Other gated routes still reject it.
	rec = f.do(http.MethodGet, "/v3/organizer/events/years", "", f.bearer(t, model.AppRoleOrganizer))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPublicRouteRejectsUnknownEnum(t *testing.T) {
	f := newFixture(t, time.Minute)

	rec := f.do(http.MethodGet, "/v3/drivers/7/records?year=2024&c_race_type=5", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, f.catalog.calls)

	rec = f.do(http.MethodGet, "/v3/drivers/7/records?year=2024&c_race_type=2", "", "")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestOpenAPIDocumentListsRoutes(t *testing.T) {
	f := newFixture(t, time.Minute)

	rec := f.do(http.MethodGet, "/openapi.json", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		Paths map[string]map[string]struct {
			Security  []map[string][]string `json:"security"`
			Responses map[string]any        `json:"responses"`
		} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))

	for _, path := range []string{
		"/v3/auth/signup",
		"/v3/auth/refresh",
		"/v1/drivers/{driver_id}/documents/{document_id}",
		"/v2/location-configs",
		"/v2/classifiers/types",
		"/v3/drivers/{driver_id}/records",
		"/v3/organizer/events/years",
	} {
		assert.Contains(t, doc.Paths, path)
	}

	add := doc.Paths["/v1/drivers/{driver_id}/documents"]["post"]
	assert.NotEmpty(t, add.Security)
	assert.Contains(t, add.Responses, "403")

	signup := doc.Paths["/v3/auth/signup"]["post"]
	assert.Empty(t, signup.Security)
	assert.NotContains(t, signup.Responses, "403")
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t, time.Minute)

	f.do(http.MethodGet, "/v3/drivers/7/records?year=2024", "", "")
	rec := f.do(http.MethodGet, "/metrics", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "raceboard_http_requests_total")
}

func TestReplacedAccessTokenOnlyReachesRefresh(t *testing.T) {
	f := newFixture(t, time.Minute)
	old := f.bearer(t, model.AppRoleOrganizer)
	f.bearer(t, model.AppRoleOrganizer)

	rec := f.do(http.MethodGet, "/v3/organizer/events/years", "", old)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(http.MethodPut, "/v3/auth/refresh", `{"refresh_token":"r"}`, old)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

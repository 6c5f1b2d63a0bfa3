// Package router builds the echo instance: the global middleware stack,
// the versioned API groups and the system routes. Every API route is
// declared once and both registered on echo and recorded in the OpenAPI
// document.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/raceboard/backend/internal/apidoc"
	"github.com/raceboard/backend/internal/handler"
	"github.com/raceboard/backend/internal/middleware"
	"github.com/raceboard/backend/internal/model"
	"github.com/raceboard/backend/internal/server"
)

// Version is reported in the OpenAPI document.
const Version = "3.0.0"

// authenticated is the USER gate: every signed-in account passes it.
var authenticated = []model.AppRole{
	model.AppRoleUser,
	model.AppRoleDriver,
	model.AppRoleOrganizer,
	model.AppRoleAdmin,
}

var (
	basic    = []int{http.StatusBadRequest, http.StatusInternalServerError}
	withAuth = []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusInternalServerError}
)

// endpoint is one API route: its documentation, handler and gate options.
type endpoint struct {
	apidoc.Route
	Handler echo.HandlerFunc
	Gate    middleware.RoleOptions
}

type routes struct {
	auth *middleware.AuthMiddleware
	docs *apidoc.Registry
	err  error
}

// add registers ep on g. prefix is the group prefix, used for the document.
// Gated routes get the role gate as their first route middleware, so it
// runs before the handler binds the request.
func (r *routes) add(g *echo.Group, prefix string, ep endpoint) {
	var mw []echo.MiddlewareFunc
	doc := ep.Route
	doc.Path = prefix + ep.Path

	if len(ep.Roles) > 0 {
		mw = append(mw, r.auth.RequireRoles(ep.Gate, ep.Roles...))
		doc.Statuses = appendMissing(doc.Statuses, http.StatusUnauthorized, http.StatusForbidden)
	}

	g.Add(ep.Method, ep.Path, ep.Handler, mw...)

	if err := r.docs.Add(doc); err != nil && r.err == nil {
		r.err = err
	}
}

func appendMissing(statuses []int, extra ...int) []int {
	out := append([]int(nil), statuses...)
	for _, s := range extra {
		found := false
		for _, have := range out {
			if have == s {
				found = true
				break
			}
		}
		if !found {
			out = append(out, s)
		}
	}
	return out
}

func NewRouter(s *server.Server, h *handler.Handlers) (*echo.Echo, error) {
	middlewares := middleware.NewMiddlewares(s)
	return newRouter(s, h, middlewares)
}

func newRouter(s *server.Server, h *handler.Handlers, middlewares *middleware.Middlewares) (*echo.Echo, error) {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Metrics.Collect(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	docs := apidoc.New("Raceboard API", Version)
	r := &routes{auth: middlewares.Auth, docs: docs}

	registerAuthRoutes(router, r, h, middlewares, s.Config.Server.AuthRateLimit)
	registerDriverRoutes(router, r, h)
	registerCatalogRoutes(router, r, h)
	if r.err != nil {
		return nil, r.err
	}

	registerSystemRoutes(router, h, middlewares, docs)

	return router, nil
}

package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/raceboard/backend/internal/apidoc"
	"github.com/raceboard/backend/internal/dto"
	"github.com/raceboard/backend/internal/handler"
	"github.com/raceboard/backend/internal/middleware"
	"github.com/raceboard/backend/internal/model"
)

func registerAuthRoutes(e *echo.Echo, r *routes, h *handler.Handlers, m *middleware.Middlewares, rateLimit float64) {
	const prefix = "/v3/auth"
	g := e.Group(prefix,
		middleware.WithLogConfig(middleware.LogConfig{OnlyErrors: true}),
		m.RateLimit.Limit(rateLimit),
	)
	tag := "Auth"

	r.add(g, prefix, endpoint{
		Route: apidoc.Route{
			Method: http.MethodPost, Path: "/signup", Tag: tag,
			Summary:  "Register an account and email a confirmation code",
			Request:  &dto.SignupRequest{},
			Response: dto.SignupResponse{},
			Statuses: basic,
		},
		Handler: handler.Handle(h.Auth.Signup, http.StatusOK),
	})
	r.add(g, prefix, endpoint{
		Route: apidoc.Route{
			Method: http.MethodPost, Path: "/signup/confirm", Tag: tag,
			Summary:  "Confirm the signup code and sign in",
			Request:  &dto.ConfirmSignupRequest{},
			Response: dto.SigninResponse{},
			Statuses: basic,
		},
		Handler: handler.Handle(h.Auth.ConfirmSignup, http.StatusOK),
	})
	r.add(g, prefix, endpoint{
		Route: apidoc.Route{
			Method: http.MethodPost, Path: "/signin", Tag: tag,
			Summary:  "Sign in by login or email",
			Request:  &dto.SigninRequest{},
			Response: dto.SigninResponse{},
			Statuses: withAuth,
		},
		Handler: handler.Handle(h.Auth.Signin, http.StatusOK),
	})
	r.add(g, prefix, endpoint{
		Route: apidoc.Route{
			Method: http.MethodPut, Path: "/refresh", Tag: tag,
			Summary:  "Rotate the token pair; the access token may be expired",
			Request:  &dto.RefreshTokenRequest{},
			Response: dto.SigninResponse{},
			Statuses: basic,
			Roles:    authenticated,
		},
		Handler: handler.Handle(h.Auth.Refresh, http.StatusOK),
		// Stale pairs reach the service, which revokes the session on replay.
		Gate: middleware.RoleOptions{IgnoreExpiration: true, AllowReplacedPair: true},
	})
	r.add(g, prefix, endpoint{
		Route: apidoc.Route{
			Method: http.MethodDelete, Path: "/signout", Tag: tag,
			Summary:  "Close the current session",
			Request:  &dto.EmptyRequest{},
			Response: dto.CommonMessageResponse{},
			Statuses: basic,
			Roles:    authenticated,
		},
		Handler: handler.Handle(h.Auth.Signout, http.StatusOK),
	})
	r.add(g, prefix, endpoint{
		Route: apidoc.Route{
			Method: http.MethodPost, Path: "/reset", Tag: tag,
			Summary:  "Email a password reset code",
			Request:  &dto.ResetPasswordRequest{},
			Response: dto.ResetPasswordResponse{},
			Statuses: basic,
		},
		Handler: handler.Handle(h.Auth.ResetPassword, http.StatusOK),
	})
	r.add(g, prefix, endpoint{
		Route: apidoc.Route{
			Method: http.MethodPost, Path: "/reset/code/confirm", Tag: tag,
			Summary:  "Exchange a reset code for a reset token",
			Request:  &dto.ConfirmResetPasswordCodeRequest{},
			Response: dto.ConfirmResetPasswordCodeResponse{},
			Statuses: basic,
		},
		Handler: handler.Handle(h.Auth.ConfirmResetPasswordCode, http.StatusOK),
	})
	r.add(g, prefix, endpoint{
		Route: apidoc.Route{
			Method: http.MethodPost, Path: "/reset/confirm", Tag: tag,
			Summary:  "Set a new password with a reset token",
			Request:  &dto.ConfirmResetPasswordRequest{},
			Response: dto.CommonMessageResponse{},
			Statuses: basic,
		},
		Handler: handler.Handle(h.Auth.ConfirmResetPassword, http.StatusOK),
	})
	r.add(g, prefix, endpoint{
		Route: apidoc.Route{
			Method: http.MethodGet, Path: "/login/check", Tag: tag,
			Summary:  "Check whether a login is free",
			Request:  &dto.CheckLoginRequest{},
			Response: dto.AvailabilityResponse{},
			Statuses: basic,
		},
		Handler: handler.Handle(h.Auth.CheckLogin, http.StatusOK),
	})
	r.add(g, prefix, endpoint{
		Route: apidoc.Route{
			Method: http.MethodGet, Path: "/email/check", Tag: tag,
			Summary:  "Check whether an email is free",
			Request:  &dto.CheckEmailRequest{},
			Response: dto.AvailabilityResponse{},
			Statuses: basic,
		},
		Handler: handler.Handle(h.Auth.CheckEmail, http.StatusOK),
	})
}

func registerDriverRoutes(e *echo.Echo, r *routes, h *handler.Handlers) {
	driverOnly := []model.AppRole{model.AppRoleDriver}

	const v1 = "/v1/drivers"
	docs := e.Group(v1, middleware.WithLogConfig(middleware.LogConfig{OnlyErrors: true}))
	tag := "Driver documents"

	r.add(docs, v1, endpoint{
		Route: apidoc.Route{
			Method: http.MethodPost, Path: "/:driver_id/documents", Tag: tag,
			Summary:  "Add a document to the caller's driver profile",
			Request:  &dto.AddDriverDocumentRequest{},
			Response: dto.DriverDocumentResponse{},
			Statuses: basic,
			Roles:    driverOnly,
		},
		Handler: handler.Handle(h.DriverDocuments.Add, http.StatusOK),
	})
	r.add(docs, v1, endpoint{
		Route: apidoc.Route{
			Method: http.MethodGet, Path: "/:driver_id/documents", Tag: tag,
			Summary:  "List the documents of the caller's driver profile",
			Request:  &dto.GetDriverDocumentsRequest{},
			Response: []dto.DriverDocumentResponse{},
			Statuses: basic,
			Roles:    driverOnly,
		},
		Handler: handler.Handle(h.DriverDocuments.List, http.StatusOK),
	})
	r.add(docs, v1, endpoint{
		Route: apidoc.Route{
			Method: http.MethodGet, Path: "/:driver_id/documents/:document_id", Tag: tag,
			Summary:  "Get one document",
			Request:  &dto.DriverDocumentPath{},
			Response: dto.DriverDocumentResponse{},
			Statuses: basic,
			Roles:    driverOnly,
		},
		Handler: handler.Handle(h.DriverDocuments.Get, http.StatusOK),
	})
	r.add(docs, v1, endpoint{
		Route: apidoc.Route{
			Method: http.MethodPatch, Path: "/:driver_id/documents/:document_id", Tag: tag,
			Summary:  "Update a document",
			Request:  &dto.UpdateDriverDocumentRequest{},
			Response: dto.DriverDocumentResponse{},
			Statuses: basic,
			Roles:    driverOnly,
		},
		Handler: handler.Handle(h.DriverDocuments.Update, http.StatusOK),
	})
	r.add(docs, v1, endpoint{
		Route: apidoc.Route{
			Method: http.MethodDelete, Path: "/:driver_id/documents/:document_id", Tag: tag,
			Summary:  "Delete a document",
			Request:  &dto.DriverDocumentPath{},
			Response: dto.CommonMessageResponse{},
			Statuses: basic,
			Roles:    driverOnly,
		},
		Handler: handler.Handle(h.DriverDocuments.Delete, http.StatusOK),
	})

	const v3 = "/v3/drivers"
	records := e.Group(v3)
	r.add(records, v3, endpoint{
		Route: apidoc.Route{
			Method: http.MethodGet, Path: "/:driver_id/records", Tag: "Drivers",
			Summary:  "Best laps of a driver for a year",
			Request:  &dto.GetDriverRecordsRequest{},
			Response: []dto.DriverRecordResponse{},
			Statuses: basic,
		},
		Handler: handler.Handle(h.Catalog.DriverRecords, http.StatusOK),
	})
}

func registerCatalogRoutes(e *echo.Echo, r *routes, h *handler.Handlers) {
	v2 := e.Group("/v2")
	r.add(v2, "/v2", endpoint{
		Route: apidoc.Route{
			Method: http.MethodGet, Path: "/location-configs", Tag: "Locations",
			Summary:  "Location configs, optionally of one race type",
			Request:  &dto.GetLocationConfigsRequest{},
			Response: []dto.LocationConfigResponse{},
			Statuses: basic,
		},
		Handler: handler.Handle(h.Catalog.LocationConfigs, http.StatusOK),
	})
	r.add(v2, "/v2", endpoint{
		Route: apidoc.Route{
			Method: http.MethodGet, Path: "/classifiers/types", Tag: "Classifiers",
			Summary:  "Classifier types",
			Request:  &dto.EmptyRequest{},
			Response: []dto.ClassifierTypeResponse{},
			Statuses: basic,
		},
		Handler: handler.Handle(h.Catalog.ClassifierTypes, http.StatusOK),
	})

	const organizer = "/v3/organizer"
	g := e.Group(organizer)
	r.add(g, organizer, endpoint{
		Route: apidoc.Route{
			Method: http.MethodGet, Path: "/events/years", Tag: "Organizer",
			Summary:  "Years in which the caller held events, per race type",
			Request:  &dto.EmptyRequest{},
			Response: []dto.OrganizerEventYearsResponse{},
			Statuses: basic,
			Roles:    []model.AppRole{model.AppRoleOrganizer},
		},
		Handler: handler.Handle(h.Catalog.OrganizerEventYears, http.StatusOK),
	})
}

package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/raceboard/backend/internal/errs"
	"github.com/raceboard/backend/internal/lib/token"
	"github.com/raceboard/backend/internal/model"
	"github.com/raceboard/backend/internal/repository"
	"github.com/raceboard/backend/internal/server"
)

// SessionChecker loads an open session. It returns
// repository.ErrSessionNotFound once the session is closed.
type SessionChecker interface {
	Get(ctx context.Context, id string) (*model.Session, error)
}

// RoleOptions tunes a role gate.
type RoleOptions struct {
	// IgnoreExpiration accepts an expired access token. Only the refresh
	// route sets it.
	IgnoreExpiration bool

	// AllowReplacedPair lets an access token of a superseded pair through.
	// The refresh route sets it so the auth service can detect the replay
	// and revoke the session.
	AllowReplacedPair bool
}

var (
	errMissingToken   = errs.NewUnauthorizedError("Missing bearer token", false)
	errInvalidToken   = errs.NewUnauthorizedError("Invalid token", false)
	errExpiredToken   = errs.NewUnauthorizedError("Token has expired", true)
	errSessionRevoked = errs.NewUnauthorizedError("Session is no longer valid", true).WithAction(&errs.Action{
		Type:    errs.ActionTypeReauthenticate,
		Message: "Sign in again",
	})
	errReplacedToken  = errs.NewUnauthorizedError("Token has been replaced", true)
	errRoleNotAllowed = errs.NewForbiddenError("Your role does not allow this action", true)
)

// AuthMiddleware is the role gate. It verifies the bearer token against the
// token manager and the session store.
type AuthMiddleware struct {
	tokens   *token.Manager
	sessions SessionChecker
	logger   *zerolog.Logger
}

func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return NewAuthMiddlewareWithSessions(s, repository.NewSessionStore(s.Redis))
}

// NewAuthMiddlewareWithSessions builds the gate over a custom session store.
func NewAuthMiddlewareWithSessions(s *server.Server, sessions SessionChecker) *AuthMiddleware {
	return newAuthMiddleware(s.Tokens, sessions, s.Logger)
}

func newAuthMiddleware(tokens *token.Manager, sessions SessionChecker, logger *zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:   tokens,
		sessions: sessions,
		logger:   logger,
	}
}

// RequireRoles lets the request through only when it carries a valid access
// token of an open session whose role is one of roles. It must run before
// the handler binds the request so that a bad caller never sees
// validation errors.
func (auth *AuthMiddleware) RequireRoles(opts RoleOptions, roles ...model.AppRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c)
			if !ok {
				return errMissingToken
			}

			claims, err := auth.tokens.Parse(raw, token.KindAccess, opts.IgnoreExpiration)
			switch {
			case errors.Is(err, token.ErrTokenExpired):
				return errExpiredToken
			case err != nil:
				GetLogger(c).Debug().Err(err).Msg("rejected access token")
				return errInvalidToken
			}

			session, err := auth.sessions.Get(c.Request().Context(), claims.SessionID)
			if errors.Is(err, repository.ErrSessionNotFound) {
				return errSessionRevoked
			}
			if err != nil {
				return err
			}
			if session.PairID != claims.PairID && !opts.AllowReplacedPair {
				return errReplacedToken
			}

			profile := claims.Profile()
			if !profile.HasRole(roles...) {
				GetLogger(c).Warn().
					Int64("user_id", profile.UserID).
					Str("user_role", string(profile.Role)).
					Str("function", "RequireRoles").
					Msg("role not allowed")
				return errRoleNotAllowed
			}

			c.Set(ProfileKey, profile)
			c.Set(AccessTokenKey, raw)

			contextLogger := GetLogger(c).With().
				Int64("user_id", profile.UserID).
				Str("user_role", string(profile.Role)).
				Logger()
			c.Set(LoggerKey, &contextLogger)

			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, raw, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

// Package token issues and verifies the HS256 JWTs used for API sessions.
//
// Every sign-in produces a pair: a short-lived access token presented on
// role-gated routes, and a long-lived refresh token exchanged on
// PUT /v3/auth/refresh. Both carry the session id, so revoking the
// session invalidates the pair.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/raceboard/backend/internal/model"
)

const issuer = "raceboard"

// Kind distinguishes access tokens from refresh tokens.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims is the JWT payload.
type Claims struct {
	UserID    int64         `json:"uid"`
	Login     string        `json:"login"`
	Role      model.AppRole `json:"role"`
	SessionID string        `json:"sid"`
	PairID    string        `json:"pid"`
	Kind      Kind          `json:"kind"`
	jwt.RegisteredClaims
}

// Profile converts verified claims into the request profile.
func (c *Claims) Profile() model.ProfileData {
	return model.ProfileData{
		UserID:    c.UserID,
		Login:     c.Login,
		Role:      c.Role,
		SessionID: c.SessionID,
	}
}

// Pair is a freshly issued access/refresh token pair. Both tokens carry
// PairID, so a refresh token is only accepted next to its own access token.
type Pair struct {
	PairID       string
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}

// Manager signs and parses tokens with a shared secret.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// RefreshTTL is the lifetime of refresh tokens, which is also the session lifetime.
func (m *Manager) RefreshTTL() time.Duration {
	return m.refreshTTL
}

// Issue signs a new pair for profile.
func (m *Manager) Issue(profile model.ProfileData) (*Pair, error) {
	pairID := uuid.NewString()

	access, err := m.sign(profile, pairID, KindAccess, m.accessTTL)
	if err != nil {
		return nil, err
	}

	refresh, err := m.sign(profile, pairID, KindRefresh, m.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &Pair{
		PairID:       pairID,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    m.accessTTL,
	}, nil
}

func (m *Manager) sign(profile model.ProfileData, pairID string, kind Kind, ttl time.Duration) (string, error) {
	now := m.now()
	claims := &Claims{
		UserID:    profile.UserID,
		Login:     profile.Login,
		Role:      profile.Role,
		SessionID: profile.SessionID,
		PairID:    pairID,
		Kind:      kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   fmt.Sprint(profile.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", kind, err)
	}
	return signed, nil
}

// Parse verifies the signature of raw and checks that it is a token of the
// given kind. With ignoreExpiration an expired but otherwise valid token
// is accepted.
func (m *Manager) Parse(raw string, kind Kind, ignoreExpiration bool) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if ignoreExpiration {
		opts = append(opts, jwt.WithoutClaimsValidation())
	} else {
		opts = append(opts, jwt.WithIssuer(issuer), jwt.WithExpirationRequired(), jwt.WithTimeFunc(m.now))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if claims.Kind != kind || claims.Issuer != issuer || !claims.Role.Valid() || claims.SessionID == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

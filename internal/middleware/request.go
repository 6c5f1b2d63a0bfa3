package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/mssola/useragent"

	"github.com/raceboard/backend/internal/lib/i18n"
	"github.com/raceboard/backend/internal/model"
)

const (
	ProfileKey     = "profile"
	AccessTokenKey = "access_token"
	LocaleKey      = "locale"
)

// GetProfile returns the caller set by RequireRoles. ok is false on routes
// without a role gate.
func GetProfile(c echo.Context) (model.ProfileData, bool) {
	profile, ok := c.Get(ProfileKey).(model.ProfileData)
	return profile, ok
}

// GetAccessToken returns the raw bearer token accepted by RequireRoles.
func GetAccessToken(c echo.Context) string {
	raw, _ := c.Get(AccessTokenKey).(string)
	return raw
}

// GetUserID returns the caller's id, or 0 when unauthenticated.
func GetUserID(c echo.Context) int64 {
	profile, _ := GetProfile(c)
	return profile.UserID
}

// GetLocale returns the language resolved from Accept-Language.
func GetLocale(c echo.Context) i18n.Locale {
	locale, _ := c.Get(LocaleKey).(i18n.Locale)
	return locale
}

// GetClientInfo returns the client IP and the parsed User-Agent header.
func GetClientInfo(c echo.Context) model.ClientInfo {
	return model.ClientInfo{
		IP:        c.RealIP(),
		UserAgent: ParseUserAgent(c.Request().UserAgent()),
	}
}

func ParseUserAgent(raw string) model.UserAgent {
	if raw == "" {
		return model.UserAgent{}
	}

	ua := useragent.New(raw)
	browser, version := ua.Browser()

	return model.UserAgent{
		Raw:            raw,
		Browser:        browser,
		BrowserVersion: version,
		OS:             ua.OS(),
		Platform:       ua.Platform(),
		Mobile:         ua.Mobile(),
		Bot:            ua.Bot(),
	}
}

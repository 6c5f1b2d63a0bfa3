package model

import "time"

// ProfileData is the authenticated actor attached to a role-gated request.
// The auth middleware builds it from verified token claims; everything
// downstream only reads it.
type ProfileData struct {
	UserID    int64
	Login     string
	Role      AppRole
	SessionID string
}

// HasRole reports whether the profile's role is one of roles.
func (p ProfileData) HasRole(roles ...AppRole) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// UserAgent is the parsed form of the User-Agent header.
type UserAgent struct {
	Raw            string `json:"raw"`
	Browser        string `json:"browser"`
	BrowserVersion string `json:"browser_version"`
	OS             string `json:"os"`
	Platform       string `json:"platform"`
	Mobile         bool   `json:"mobile"`
	Bot            bool   `json:"bot"`
}

// Session is the server-side record of a signed-in device.
// PairID names the only token pair currently valid for the session.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	PairID    string    `json:"pair_id"`
	IP        string    `json:"ip"`
	UserAgent UserAgent `json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}

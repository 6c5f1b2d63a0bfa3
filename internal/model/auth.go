package model

import "time"

// SignupInput is a validated registration request.
type SignupInput struct {
	Login     string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// SignupResult tells the client where the confirmation code went.
type SignupResult struct {
	UserID        int64
	Email         string
	CodeExpiresIn time.Duration
}

// ClientInfo describes the device a session is opened from.
type ClientInfo struct {
	IP        string
	UserAgent UserAgent
}

// AuthTokens is the outcome of every flow that opens or renews a session.
type AuthTokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
	Role         AppRole
}

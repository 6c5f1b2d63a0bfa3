package dto

import (
	"github.com/raceboard/backend/internal/model"
	"github.com/raceboard/backend/internal/validation"
)

// TokenType is the scheme clients must use with the access token.
const TokenType = "Bearer"

// ------------------------------------------------------------
// Signup
// ------------------------------------------------------------

type SignupRequest struct {
	Login     string `json:"login" validate:"required,min=3,max=32,alphanum" doc:"Unique login"`
	Email     string `json:"email" validate:"required,email,max=255" doc:"Email the confirmation code is sent to"`
	Password  string `json:"password" validate:"required,min=8,max_bytes=72" doc:"Password"`
	FirstName string `json:"first_name" validate:"required,max=64" doc:"First name"`
	LastName  string `json:"last_name" validate:"required,max=64" doc:"Last name"`
}

func (r *SignupRequest) Validate() error {
	return validation.Validate(r)
}

func (r *SignupRequest) ToModel() model.SignupInput {
	return model.SignupInput{
		Login:     r.Login,
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

type SignupResponse struct {
	UserID        int64  `json:"user_id" doc:"Created user id"`
	Email         string `json:"email" doc:"Email the confirmation code was sent to"`
	CodeExpiresIn int    `json:"code_expires_in" doc:"Confirmation code lifetime in seconds"`
}

func NewSignupResponse(r *model.SignupResult) SignupResponse {
	return SignupResponse{
		UserID:        r.UserID,
		Email:         r.Email,
		CodeExpiresIn: seconds(r.CodeExpiresIn),
	}
}

type ConfirmSignupRequest struct {
	Email string `json:"email" validate:"required,email" doc:"Email used at signup"`
	Code  string `json:"code" validate:"required,len=6,numeric" doc:"6-digit confirmation code"`
}

func (r *ConfirmSignupRequest) Validate() error {
	return validation.Validate(r)
}

// ------------------------------------------------------------
// Signin / refresh / signout
// ------------------------------------------------------------

type SigninRequest struct {
	Login    string `json:"login" validate:"required,max=255" doc:"Login or email"`
	Password string `json:"password" validate:"required,max=72" doc:"Password"`
}

func (r *SigninRequest) Validate() error {
	return validation.Validate(r)
}

// SigninResponse is returned by every flow that opens or renews a session.
type SigninResponse struct {
	AccessToken  string        `json:"access_token" doc:"Bearer token for role-gated routes"`
	RefreshToken string        `json:"refresh_token" doc:"Token for PUT /v3/auth/refresh"`
	TokenType    string        `json:"token_type" doc:"Always Bearer"`
	ExpiresIn    int           `json:"expires_in" doc:"Access token lifetime in seconds"`
	Role         model.AppRole `json:"role" doc:"Role of the signed-in user"`
}

func NewSigninResponse(t *model.AuthTokens) SigninResponse {
	return SigninResponse{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    TokenType,
		ExpiresIn:    seconds(t.ExpiresIn),
		Role:         t.Role,
	}
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required" doc:"Refresh token issued with the current access token"`
}

func (r *RefreshTokenRequest) Validate() error {
	return validation.Validate(r)
}

// ------------------------------------------------------------
// Password reset
// ------------------------------------------------------------

type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email" doc:"Account email"`
}

func (r *ResetPasswordRequest) Validate() error {
	return validation.Validate(r)
}

type ResetPasswordResponse struct {
	CodeExpiresIn int `json:"code_expires_in" doc:"Reset code lifetime in seconds"`
}

type ConfirmResetPasswordCodeRequest struct {
	Email string `json:"email" validate:"required,email" doc:"Account email"`
	Code  string `json:"code" validate:"required,len=6,numeric" doc:"6-digit reset code"`
}

func (r *ConfirmResetPasswordCodeRequest) Validate() error {
	return validation.Validate(r)
}

type ConfirmResetPasswordCodeResponse struct {
	ResetToken string `json:"reset_token" doc:"One-time token for POST /v3/auth/reset/confirm"`
}

type ConfirmResetPasswordRequest struct {
	ResetToken string `json:"reset_token" validate:"required,uuid" doc:"Token from the code confirmation step"`
	Password   string `json:"password" validate:"required,min=8,max_bytes=72" doc:"New password"`
}

func (r *ConfirmResetPasswordRequest) Validate() error {
	return validation.Validate(r)
}

// ------------------------------------------------------------
// Availability checks
// ------------------------------------------------------------

type CheckLoginRequest struct {
	Login string `query:"login" json:"-" validate:"required,max=32" doc:"Login to check"`
}

func (r *CheckLoginRequest) Validate() error {
	return validation.Validate(r)
}

type CheckEmailRequest struct {
	Email string `query:"email" json:"-" validate:"required,email" doc:"Email to check"`
}

func (r *CheckEmailRequest) Validate() error {
	return validation.Validate(r)
}

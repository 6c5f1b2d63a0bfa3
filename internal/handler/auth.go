package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/raceboard/backend/internal/dto"
	"github.com/raceboard/backend/internal/middleware"
	"github.com/raceboard/backend/internal/model"
	"github.com/raceboard/backend/internal/server"
)

// AuthService is implemented by *service.AuthService.
type AuthService interface {
	Signup(ctx context.Context, in model.SignupInput) (*model.SignupResult, error)
	ConfirmSignup(ctx context.Context, email, code string, client model.ClientInfo) (*model.AuthTokens, error)
	Signin(ctx context.Context, identifier, password string, client model.ClientInfo) (*model.AuthTokens, error)
	Refresh(ctx context.Context, profile model.ProfileData, accessToken, refreshToken string) (*model.AuthTokens, error)
	Signout(ctx context.Context, profile model.ProfileData) error
	ResetPassword(ctx context.Context, email string) (time.Duration, error)
	ConfirmResetCode(ctx context.Context, email, code string) (string, error)
	ConfirmResetPassword(ctx context.Context, resetToken, password string) error
	LoginAvailable(ctx context.Context, login string) (bool, error)
	EmailAvailable(ctx context.Context, email string) (bool, error)
}

type AuthHandler struct {
	Handler
	auth AuthService
}

func NewAuthHandler(s *server.Server, auth AuthService) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auth:    auth,
	}
}

func (h *AuthHandler) Signup(c echo.Context, req *dto.SignupRequest) (dto.SignupResponse, error) {
	res, err := h.auth.Signup(c.Request().Context(), req.ToModel())
	if err != nil {
		return dto.SignupResponse{}, err
	}
	return dto.NewSignupResponse(res), nil
}

func (h *AuthHandler) ConfirmSignup(c echo.Context, req *dto.ConfirmSignupRequest) (dto.SigninResponse, error) {
	tokens, err := h.auth.ConfirmSignup(c.Request().Context(), req.Email, req.Code, middleware.GetClientInfo(c))
	if err != nil {
		return dto.SigninResponse{}, err
	}
	return dto.NewSigninResponse(tokens), nil
}

func (h *AuthHandler) Signin(c echo.Context, req *dto.SigninRequest) (dto.SigninResponse, error) {
	tokens, err := h.auth.Signin(c.Request().Context(), req.Login, req.Password, middleware.GetClientInfo(c))
	if err != nil {
		return dto.SigninResponse{}, err
	}
	return dto.NewSigninResponse(tokens), nil
}

// Refresh rotates the caller's token pair. The route accepts an expired
// access token.
func (h *AuthHandler) Refresh(c echo.Context, req *dto.RefreshTokenRequest) (dto.SigninResponse, error) {
	profile, err := requireProfile(c)
	if err != nil {
		return dto.SigninResponse{}, err
	}

	tokens, err := h.auth.Refresh(c.Request().Context(), profile, middleware.GetAccessToken(c), req.RefreshToken)
	if err != nil {
		return dto.SigninResponse{}, err
	}
	return dto.NewSigninResponse(tokens), nil
}

func (h *AuthHandler) Signout(c echo.Context, _ *dto.EmptyRequest) (dto.CommonMessageResponse, error) {
	profile, err := requireProfile(c)
	if err != nil {
		return dto.CommonMessageResponse{}, err
	}

	if err := h.auth.Signout(c.Request().Context(), profile); err != nil {
		return dto.CommonMessageResponse{}, err
	}
	return dto.CommonMessageResponse{Message: "Signed out"}, nil
}

func (h *AuthHandler) ResetPassword(c echo.Context, req *dto.ResetPasswordRequest) (dto.ResetPasswordResponse, error) {
	ttl, err := h.auth.ResetPassword(c.Request().Context(), req.Email)
	if err != nil {
		return dto.ResetPasswordResponse{}, err
	}
	return dto.ResetPasswordResponse{CodeExpiresIn: int(ttl.Seconds())}, nil
}

func (h *AuthHandler) ConfirmResetPasswordCode(c echo.Context, req *dto.ConfirmResetPasswordCodeRequest) (dto.ConfirmResetPasswordCodeResponse, error) {
	resetToken, err := h.auth.ConfirmResetCode(c.Request().Context(), req.Email, req.Code)
	if err != nil {
		return dto.ConfirmResetPasswordCodeResponse{}, err
	}
	return dto.ConfirmResetPasswordCodeResponse{ResetToken: resetToken}, nil
}

func (h *AuthHandler) ConfirmResetPassword(c echo.Context, req *dto.ConfirmResetPasswordRequest) (dto.CommonMessageResponse, error) {
	if err := h.auth.ConfirmResetPassword(c.Request().Context(), req.ResetToken, req.Password); err != nil {
		return dto.CommonMessageResponse{}, err
	}
	return dto.CommonMessageResponse{Message: "Password changed"}, nil
}

func (h *AuthHandler) CheckLogin(c echo.Context, req *dto.CheckLoginRequest) (dto.AvailabilityResponse, error) {
	available, err := h.auth.LoginAvailable(c.Request().Context(), req.Login)
	if err != nil {
		return dto.AvailabilityResponse{}, err
	}
	return dto.AvailabilityResponse{Available: available}, nil
}

func (h *AuthHandler) CheckEmail(c echo.Context, req *dto.CheckEmailRequest) (dto.AvailabilityResponse, error) {
	available, err := h.auth.EmailAvailable(c.Request().Context(), req.Email)
	if err != nil {
		return dto.AvailabilityResponse{}, err
	}
	return dto.AvailabilityResponse{Available: available}, nil
}

package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/raceboard/backend/internal/config"
	"github.com/raceboard/backend/internal/errs"
	"github.com/raceboard/backend/internal/lib/token"
	"github.com/raceboard/backend/internal/model"
	"github.com/raceboard/backend/internal/repository"
)

// UserStore is the subset of repository.UserRepository used by AuthService.
type UserStore interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByLoginOrEmail(ctx context.Context, identifier string) (*model.User, error)
	LoginExists(ctx context.Context, login string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	SetStatus(ctx context.Context, id int64, status model.UserStatus) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type SessionStore interface {
	Save(ctx context.Context, session model.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, userID int64, id string) error
	DeleteAllForUser(ctx context.Context, userID int64) error
}

type CodeStore interface {
	SaveCode(ctx context.Context, purpose repository.CodePurpose, email, code string, ttl time.Duration) error
	VerifyCode(ctx context.Context, purpose repository.CodePurpose, email, code string) error
	SaveResetToken(ctx context.Context, token string, userID int64, ttl time.Duration) error
	ConsumeResetToken(ctx context.Context, token string) (int64, error)
}

// Mailer queues the code emails. *job.JobService implements it.
type Mailer interface {
	EnqueueSignupConfirmation(ctx context.Context, to, firstName, code string, expiresIn time.Duration) error
	EnqueuePasswordReset(ctx context.Context, to, firstName, code string, expiresIn time.Duration) error
}

var (
	errInvalidCredentials = errs.NewUnauthorizedError("Invalid login or password", true)
	errInvalidCode        = errs.NewBadRequestError("Invalid or expired code", true, errs.Code("INVALID_CODE"), nil, nil)
	errInvalidResetToken  = errs.NewBadRequestError("Invalid or expired reset token", true, errs.Code("INVALID_RESET_TOKEN"), nil, nil)
	errInvalidRefresh     = errs.NewUnauthorizedError("Invalid refresh token", true)
)

var errInvalidSession = errs.NewUnauthorizedError("Session is no longer valid", true).WithAction(&errs.Action{
	Type:    errs.ActionTypeReauthenticate,
	Message: "Sign in again",
})

type AuthService struct {
	users    UserStore
	sessions SessionStore
	codes    CodeStore
	mailer   Mailer
	tokens   *token.Manager
	cfg      config.AuthConfig
	logger   *zerolog.Logger
}

func NewAuthService(
	users UserStore,
	sessions SessionStore,
	codes CodeStore,
	mailer Mailer,
	tokens *token.Manager,
	cfg config.AuthConfig,
	logger *zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		codes:    codes,
		mailer:   mailer,
		tokens:   tokens,
		cfg:      cfg,
		logger:   logger,
	}
}

// Signup registers a pending user and emails a confirmation code.
func (s *AuthService) Signup(ctx context.Context, in model.SignupInput) (*model.SignupResult, error) {
	if taken, err := s.users.LoginExists(ctx, in.Login); err != nil {
		return nil, err
	} else if taken {
		return nil, errs.NewBadRequestError("Login is already taken", true, errs.Code("LOGIN_TAKEN"), nil, nil)
	}

	if taken, err := s.users.EmailExists(ctx, in.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, errs.NewBadRequestError("Email is already registered", true, errs.Code("EMAIL_TAKEN"), nil, nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := s.users.Create(ctx, &model.User{
		Login:        in.Login,
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         model.AppRoleUser,
		Status:       model.UserStatusPending,
	})
	if err != nil {
		return nil, err
	}

	if err := s.sendCode(ctx, repository.CodePurposeSignup, user); err != nil {
		return nil, err
	}

	return &model.SignupResult{
		UserID:        user.ID,
		Email:         user.Email,
		CodeExpiresIn: s.cfg.ConfirmationCodeTTL,
	}, nil
}

// ConfirmSignup activates the account behind email and opens its first session.
func (s *AuthService) ConfirmSignup(ctx context.Context, email, code string, client model.ClientInfo) (*model.AuthTokens, error) {
	if err := s.verifyCode(ctx, repository.CodePurposeSignup, email, code); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errInvalidCode
	}
	if err != nil {
		return nil, err
	}

	if user.Status == model.UserStatusPending {
		if err := s.users.SetStatus(ctx, user.ID, model.UserStatusActive); err != nil {
			return nil, err
		}
		user.Status = model.UserStatusActive
	}

	return s.openSession(ctx, user, client)
}

// Signin authenticates by login or email.
func (s *AuthService) Signin(ctx context.Context, identifier, password string, client model.ClientInfo) (*model.AuthTokens, error) {
	user, err := s.users.GetByLoginOrEmail(ctx, identifier)
	if errors.Is(err, pgx.ErrNoRows) {
		// Spend the same time as a real comparison.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}

	switch user.Status {
	case model.UserStatusPending:
		return nil, errs.NewUnauthorizedError("Account email is not confirmed", true)
	case model.UserStatusBlocked:
		return nil, errs.NewUnauthorizedError("Account is blocked", true)
	}

	return s.openSession(ctx, user, client)
}

// Refresh rotates the token pair of the caller's session. The refresh
// token must belong to the same pair as accessToken, and that pair must be
// the session's current one.
func (s *AuthService) Refresh(ctx context.Context, profile model.ProfileData, accessToken, refreshToken string) (*model.AuthTokens, error) {
	access, err := s.tokens.Parse(accessToken, token.KindAccess, true)
	if err != nil {
		return nil, errInvalidSession
	}

	refresh, err := s.tokens.Parse(refreshToken, token.KindRefresh, false)
	if err != nil {
		return nil, errInvalidRefresh
	}

	if refresh.SessionID != profile.SessionID || refresh.UserID != profile.UserID || refresh.PairID != access.PairID {
		return nil, errInvalidRefresh
	}

	session, err := s.sessions.Get(ctx, profile.SessionID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, errInvalidSession
	}
	if err != nil {
		return nil, err
	}

	if session.PairID != refresh.PairID {
		// An older pair is being replayed; drop the session entirely.
		s.logger.Warn().
			Int64("user_id", profile.UserID).
			Str("session_id", session.ID).
			Msg("refresh token reuse detected, revoking session")
		if err := s.sessions.Delete(ctx, session.UserID, session.ID); err != nil {
			return nil, err
		}
		return nil, errInvalidSession
	}

	user, err := s.users.GetByID(ctx, profile.UserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errInvalidSession
	}
	if err != nil {
		return nil, err
	}
	if user.Status != model.UserStatusActive {
		if err := s.sessions.Delete(ctx, session.UserID, session.ID); err != nil {
			return nil, err
		}
		return nil, errInvalidSession
	}

	return s.issue(ctx, user, *session)
}

// Signout revokes the caller's session.
func (s *AuthService) Signout(ctx context.Context, profile model.ProfileData) error {
	return s.sessions.Delete(ctx, profile.UserID, profile.SessionID)
}

// ResetPassword emails a reset code when email belongs to an account. The
// answer is the same either way so accounts cannot be enumerated.
func (s *AuthService) ResetPassword(ctx context.Context, email string) (time.Duration, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return s.cfg.ConfirmationCodeTTL, nil
	}
	if err != nil {
		return 0, err
	}

	if err := s.sendCode(ctx, repository.CodePurposeReset, user); err != nil {
		return 0, err
	}
	return s.cfg.ConfirmationCodeTTL, nil
}

// ConfirmResetCode exchanges a valid reset code for a one-time reset token.
func (s *AuthService) ConfirmResetCode(ctx context.Context, email, code string) (string, error) {
	if err := s.verifyCode(ctx, repository.CodePurposeReset, email, code); err != nil {
		return "", err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", errInvalidCode
	}
	if err != nil {
		return "", err
	}

	resetToken := uuid.NewString()
	if err := s.codes.SaveResetToken(ctx, resetToken, user.ID, s.cfg.ResetTokenTTL); err != nil {
		return "", err
	}
	return resetToken, nil
}

// ConfirmResetPassword sets a new password and signs the user out everywhere.
func (s *AuthService) ConfirmResetPassword(ctx context.Context, resetToken, password string) error {
	userID, err := s.codes.ConsumeResetToken(ctx, resetToken)
	if errors.Is(err, repository.ErrCodeNotFound) {
		return errInvalidResetToken
	}
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	return s.sessions.DeleteAllForUser(ctx, userID)
}

// LoginAvailable reports whether login is free.
func (s *AuthService) LoginAvailable(ctx context.Context, login string) (bool, error) {
	taken, err := s.users.LoginExists(ctx, login)
	return !taken, err
}

// EmailAvailable reports whether email is free.
func (s *AuthService) EmailAvailable(ctx context.Context, email string) (bool, error) {
	taken, err := s.users.EmailExists(ctx, email)
	return !taken, err
}

func (s *AuthService) openSession(ctx context.Context, user *model.User, client model.ClientInfo) (*model.AuthTokens, error) {
	session := model.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		IP:        client.IP,
		UserAgent: client.UserAgent,
		CreatedAt: time.Now().UTC(),
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("session_id", session.ID).
		Str("ip", client.IP).
		Str("browser", client.UserAgent.Browser).
		Str("os", client.UserAgent.OS).
		Msg("session opened")

	return s.issue(ctx, user, session)
}

// issue signs a new pair for session and makes it the session's current pair.
func (s *AuthService) issue(ctx context.Context, user *model.User, session model.Session) (*model.AuthTokens, error) {
	pair, err := s.tokens.Issue(model.ProfileData{
		UserID:    user.ID,
		Login:     user.Login,
		Role:      user.Role,
		SessionID: session.ID,
	})
	if err != nil {
		return nil, err
	}

	session.PairID = pair.PairID
	if err := s.sessions.Save(ctx, session, s.tokens.RefreshTTL()); err != nil {
		return nil, err
	}

	return &model.AuthTokens{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		Role:         user.Role,
	}, nil
}

func (s *AuthService) sendCode(ctx context.Context, purpose repository.CodePurpose, user *model.User) error {
	code, err := generateCode()
	if err != nil {
		return err
	}

	if err := s.codes.SaveCode(ctx, purpose, user.Email, code, s.cfg.ConfirmationCodeTTL); err != nil {
		return err
	}

	switch purpose {
	case repository.CodePurposeSignup:
		return s.mailer.EnqueueSignupConfirmation(ctx, user.Email, user.FirstName, code, s.cfg.ConfirmationCodeTTL)
	default:
		return s.mailer.EnqueuePasswordReset(ctx, user.Email, user.FirstName, code, s.cfg.ConfirmationCodeTTL)
	}
}

func (s *AuthService) verifyCode(ctx context.Context, purpose repository.CodePurpose, email, code string) error {
	err := s.codes.VerifyCode(ctx, purpose, email, code)
	if errors.Is(err, repository.ErrCodeNotFound) || errors.Is(err, repository.ErrCodeMismatch) {
		return errInvalidCode
	}
	return err
}

// codeLength is the number of digits in confirmation and reset codes.
const codeLength = 6

var codeMax = big.NewInt(1_000_000)

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeMax)
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%0*d", codeLength, n.Int64()), nil
}

// dummyHash is compared against when the user does not exist.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("raceboard-timing-guard"), bcrypt.DefaultCost)

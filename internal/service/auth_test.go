package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/raceboard/backend/internal/config"
	"github.com/raceboard/backend/internal/errs"
	"github.com/raceboard/backend/internal/lib/token"
	"github.com/raceboard/backend/internal/model"
	"github.com/raceboard/backend/internal/repository"
	"github.com/raceboard/backend/internal/sqlerr"
)

var ctx = context.Background()

type authFixture struct {
	users    *mockUsers
	sessions *mockSessions
	codes    *mockCodes
	mailer   *mockMailer
	tokens   *token.Manager
	svc      *AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:    &mockUsers{},
		sessions: &mockSessions{},
		codes:    &mockCodes{},
		mailer:   &mockMailer{},
		tokens:   token.NewManager("0123456789abcdef0123456789abcdef", 15*time.Minute, time.Hour),
	}
	logger := zerolog.Nop()
	f.svc = NewAuthService(f.users, f.sessions, f.codes, f.mailer, f.tokens, config.AuthConfig{
		ConfirmationCodeTTL: 15 * time.Minute,
		ResetTokenTTL:       30 * time.Minute,
	}, &logger)
	return f
}

func (f *authFixture) assertExpectations(t *testing.T) {
	f.users.AssertExpectations(t)
	f.sessions.AssertExpectations(t)
	f.codes.AssertExpectations(t)
	f.mailer.AssertExpectations(t)
}

func requireHTTPError(t *testing.T, err error, status int) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, status, httpErr.Status)
	return httpErr
}

func activeUser(t *testing.T, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &model.User{
		ID:           7,
		Login:        "racer",
		Email:        "racer@example.com",
		FirstName:    "Anna",
		PasswordHash: string(hash),
		Role:         model.AppRoleDriver,
		Status:       model.UserStatusActive,
	}
}

var noRows = sqlerr.WithTable("users", pgx.ErrNoRows)

func TestSignup(t *testing.T) {
	f := newAuthFixture()
	in := model.SignupInput{Login: "racer", Email: "racer@example.com", Password: "secret123", FirstName: "Anna", LastName: "K"}

	f.users.On("LoginExists", ctx, "racer").Return(false, nil)
	f.users.On("EmailExists", ctx, "racer@example.com").Return(false, nil)
	f.users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.Status == model.UserStatusPending &&
			u.Role == model.AppRoleUser &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")) == nil
	})).Return(&model.User{ID: 11, Email: "racer@example.com", FirstName: "Anna"}, nil)

	var savedCode string
	f.codes.On("SaveCode", ctx, repository.CodePurposeSignup, "racer@example.com", mock.AnythingOfType("string"), 15*time.Minute).
		Run(func(args mock.Arguments) { savedCode = args.String(3) }).
		Return(nil)
	f.mailer.On("EnqueueSignupConfirmation", ctx, "racer@example.com", "Anna", mock.AnythingOfType("string"), 15*time.Minute).
		Return(nil)

	res, err := f.svc.Signup(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, &model.SignupResult{UserID: 11, Email: "racer@example.com", CodeExpiresIn: 15 * time.Minute}, res)

	assert.Len(t, savedCode, 6)
	f.mailer.AssertCalled(t, "EnqueueSignupConfirmation", ctx, "racer@example.com", "Anna", savedCode, 15*time.Minute)
	f.assertExpectations(t)
}

func TestSignup_LoginTaken(t *testing.T) {
	f := newAuthFixture()
	f.users.On("LoginExists", ctx, "racer").Return(true, nil)

	_, err := f.svc.Signup(ctx, model.SignupInput{Login: "racer", Email: "racer@example.com", Password: "secret123"})
	httpErr := requireHTTPError(t, err, http.StatusBadRequest)
	assert.Equal(t, "LOGIN_TAKEN", httpErr.Code)
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignin(t *testing.T) {
	f := newAuthFixture()
	user := activeUser(t, "secret123")
	client := model.ClientInfo{IP: "10.0.0.1", UserAgent: model.UserAgent{Browser: "Firefox"}}

	f.users.On("GetByLoginOrEmail", ctx, "racer").Return(user, nil)
	f.sessions.On("Save", ctx, mock.MatchedBy(func(s model.Session) bool {
		return s.UserID == 7 && s.IP == "10.0.0.1" && s.PairID != "" && s.UserAgent.Browser == "Firefox"
	}), time.Hour).Return(nil)

	tokens, err := f.svc.Signin(ctx, "racer", "secret123", client)
	require.NoError(t, err)
	assert.Equal(t, model.AppRoleDriver, tokens.Role)
	assert.Equal(t, 15*time.Minute, tokens.ExpiresIn)

	claims, err := f.tokens.Parse(tokens.AccessToken, token.KindAccess, false)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	f.assertExpectations(t)
}

func TestSignin_Failures(t *testing.T) {
	tests := []struct {
		name     string
		user     func(t *testing.T) *model.User
		lookup   error
		password string
		message  string
	}{
		{"unknown user", nil, noRows, "secret123", "Invalid login or password"},
		{"wrong password", func(t *testing.T) *model.User { return activeUser(t, "secret123") }, nil, "nope", "Invalid login or password"},
		{"pending user", func(t *testing.T) *model.User {
			u := activeUser(t, "secret123")
			u.Status = model.UserStatusPending
			return u
		}, nil, "secret123", "Account email is not confirmed"},
		{"blocked user", func(t *testing.T) *model.User {
			u := activeUser(t, "secret123")
			u.Status = model.UserStatusBlocked
			return u
		}, nil, "secret123", "Account is blocked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture()
			var user *model.User
			if tt.user != nil {
				user = tt.user(t)
			}
			f.users.On("GetByLoginOrEmail", ctx, "racer").Return(user, tt.lookup)

			_, err := f.svc.Signin(ctx, "racer", tt.password, model.ClientInfo{})
			httpErr := requireHTTPError(t, err, http.StatusUnauthorized)
			assert.Equal(t, tt.message, httpErr.Message)
			f.sessions.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func signedInPair(t *testing.T, f *authFixture, sessionID string) (*token.Pair, model.ProfileData) {
	t.Helper()
	profile := model.ProfileData{UserID: 7, Login: "racer", Role: model.AppRoleDriver, SessionID: sessionID}
	pair, err := f.tokens.Issue(profile)
	require.NoError(t, err)
	return pair, profile
}

func TestRefresh(t *testing.T) {
	f := newAuthFixture()
	pair, profile := signedInPair(t, f, "s-1")

	f.sessions.On("Get", ctx, "s-1").Return(&model.Session{ID: "s-1", UserID: 7, PairID: pair.PairID}, nil)
	f.users.On("GetByID", ctx, int64(7)).Return(activeUser(t, "x"), nil)
	f.sessions.On("Save", ctx, mock.MatchedBy(func(s model.Session) bool {
		return s.ID == "s-1" && s.PairID != pair.PairID
	}), time.Hour).Return(nil)

	tokens, err := f.svc.Refresh(ctx, profile, pair.AccessToken, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, tokens.RefreshToken)
	f.assertExpectations(t)
}

func TestRefresh_MismatchedPair(t *testing.T) {
	f := newAuthFixture()
	first, profile := signedInPair(t, f, "s-1")
	second, _ := signedInPair(t, f, "s-1")

	_, err := f.svc.Refresh(ctx, profile, first.AccessToken, second.RefreshToken)
	requireHTTPError(t, err, http.StatusUnauthorized)
	f.sessions.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestRefresh_ReplayedPairRevokesSession(t *testing.T) {
	f := newAuthFixture()
	old, profile := signedInPair(t, f, "s-1")

	f.sessions.On("Get", ctx, "s-1").Return(&model.Session{ID: "s-1", UserID: 7, PairID: "newer"}, nil)
	f.sessions.On("Delete", ctx, int64(7), "s-1").Return(nil)

	_, err := f.svc.Refresh(ctx, profile, old.AccessToken, old.RefreshToken)
	httpErr := requireHTTPError(t, err, http.StatusUnauthorized)
	require.NotNil(t, httpErr.Action)
	assert.Equal(t, errs.ActionTypeReauthenticate, httpErr.Action.Type)
	f.assertExpectations(t)
}

func TestRefresh_RevokedSession(t *testing.T) {
	f := newAuthFixture()
	pair, profile := signedInPair(t, f, "s-1")
	f.sessions.On("Get", ctx, "s-1").Return(nil, repository.ErrSessionNotFound)

	_, err := f.svc.Refresh(ctx, profile, pair.AccessToken, pair.RefreshToken)
	requireHTTPError(t, err, http.StatusUnauthorized)
}

func TestSignout(t *testing.T) {
	f := newAuthFixture()
	f.sessions.On("Delete", ctx, int64(7), "s-1").Return(nil)

	require.NoError(t, f.svc.Signout(ctx, model.ProfileData{UserID: 7, SessionID: "s-1"}))
	f.assertExpectations(t)
}

func TestResetPassword_UnknownEmailLooksTheSame(t *testing.T) {
	f := newAuthFixture()
	f.users.On("GetByEmail", ctx, "ghost@example.com").Return(nil, noRows)

	ttl, err := f.svc.ResetPassword(ctx, "ghost@example.com")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, ttl)
	f.mailer.AssertNotCalled(t, "EnqueuePasswordReset", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResetPassword_SendsCode(t *testing.T) {
	f := newAuthFixture()
	user := activeUser(t, "x")
	f.users.On("GetByEmail", ctx, user.Email).Return(user, nil)
	f.codes.On("SaveCode", ctx, repository.CodePurposeReset, user.Email, mock.AnythingOfType("string"), 15*time.Minute).Return(nil)
	f.mailer.On("EnqueuePasswordReset", ctx, user.Email, "Anna", mock.AnythingOfType("string"), 15*time.Minute).Return(nil)

	_, err := f.svc.ResetPassword(ctx, user.Email)
	require.NoError(t, err)
	f.assertExpectations(t)
}

func TestConfirmResetCode(t *testing.T) {
	f := newAuthFixture()
	user := activeUser(t, "x")
	f.codes.On("VerifyCode", ctx, repository.CodePurposeReset, user.Email, "123456").Return(nil)
	f.users.On("GetByEmail", ctx, user.Email).Return(user, nil)
	f.codes.On("SaveResetToken", ctx, mock.AnythingOfType("string"), int64(7), 30*time.Minute).Return(nil)

	resetToken, err := f.svc.ConfirmResetCode(ctx, user.Email, "123456")
	require.NoError(t, err)
	assert.Len(t, resetToken, 36)
	f.assertExpectations(t)
}

func TestConfirmResetCode_WrongCode(t *testing.T) {
	f := newAuthFixture()
	f.codes.On("VerifyCode", ctx, repository.CodePurposeReset, "racer@example.com", "000000").Return(repository.ErrCodeMismatch)

	_, err := f.svc.ConfirmResetCode(ctx, "racer@example.com", "000000")
	httpErr := requireHTTPError(t, err, http.StatusBadRequest)
	assert.Equal(t, "INVALID_CODE", httpErr.Code)
}

func TestConfirmResetPassword(t *testing.T) {
	f := newAuthFixture()
	f.codes.On("ConsumeResetToken", ctx, "tok").Return(int64(7), nil)
	f.users.On("UpdatePassword", ctx, int64(7), mock.MatchedBy(func(hash string) bool {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte("newsecret1")) == nil
	})).Return(nil)
	f.sessions.On("DeleteAllForUser", ctx, int64(7)).Return(nil)

	require.NoError(t, f.svc.ConfirmResetPassword(ctx, "tok", "newsecret1"))
	f.assertExpectations(t)
}

func TestConfirmResetPassword_UnknownToken(t *testing.T) {
	f := newAuthFixture()
	f.codes.On("ConsumeResetToken", ctx, "tok").Return(int64(0), repository.ErrCodeNotFound)

	err := f.svc.ConfirmResetPassword(ctx, "tok", "newsecret1")
	httpErr := requireHTTPError(t, err, http.StatusBadRequest)
	assert.Equal(t, "INVALID_RESET_TOKEN", httpErr.Code)
}

func TestConfirmSignup(t *testing.T) {
	f := newAuthFixture()
	user := activeUser(t, "x")
	user.Status = model.UserStatusPending

	f.codes.On("VerifyCode", ctx, repository.CodePurposeSignup, user.Email, "123456").Return(nil)
	f.users.On("GetByEmail", ctx, user.Email).Return(user, nil)
	f.users.On("SetStatus", ctx, int64(7), model.UserStatusActive).Return(nil)
	f.sessions.On("Save", ctx, mock.AnythingOfType("model.Session"), time.Hour).Return(nil)

	tokens, err := f.svc.ConfirmSignup(ctx, user.Email, "123456", model.ClientInfo{IP: "1.2.3.4"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	f.assertExpectations(t)
}

func TestAvailability(t *testing.T) {
	f := newAuthFixture()
	f.users.On("LoginExists", ctx, "racer").Return(true, nil)
	f.users.On("EmailExists", ctx, "free@example.com").Return(false, nil)

	available, err := f.svc.LoginAvailable(ctx, "racer")
	require.NoError(t, err)
	assert.False(t, available)

	available, err = f.svc.EmailAvailable(ctx, "free@example.com")
	require.NoError(t, err)
	assert.True(t, available)
}

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		assert.Regexp(t, `^\d{6}$`, code)
	}
}

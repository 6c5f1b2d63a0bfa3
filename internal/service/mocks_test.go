package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/raceboard/backend/internal/model"
	"github.com/raceboard/backend/internal/repository"
)

type mockUsers struct{ mock.Mock }

func (m *mockUsers) Create(ctx context.Context, u *model.User) (*model.User, error) {
	args := m.Called(ctx, u)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUsers) GetByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUsers) GetByLoginOrEmail(ctx context.Context, identifier string) (*model.User, error) {
	args := m.Called(ctx, identifier)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUsers) LoginExists(ctx context.Context, login string) (bool, error) {
	args := m.Called(ctx, login)
	return args.Bool(0), args.Error(1)
}

func (m *mockUsers) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUsers) SetStatus(ctx context.Context, id int64, status model.UserStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockUsers) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

type mockSessions struct{ mock.Mock }

func (m *mockSessions) Save(ctx context.Context, session model.Session, ttl time.Duration) error {
	return m.Called(ctx, session, ttl).Error(0)
}

func (m *mockSessions) Get(ctx context.Context, id string) (*model.Session, error) {
	args := m.Called(ctx, id)
	session, _ := args.Get(0).(*model.Session)
	return session, args.Error(1)
}

func (m *mockSessions) Delete(ctx context.Context, userID int64, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockSessions) DeleteAllForUser(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

type mockCodes struct{ mock.Mock }

func (m *mockCodes) SaveCode(ctx context.Context, purpose repository.CodePurpose, email, code string, ttl time.Duration) error {
	return m.Called(ctx, purpose, email, code, ttl).Error(0)
}

func (m *mockCodes) VerifyCode(ctx context.Context, purpose repository.CodePurpose, email, code string) error {
	return m.Called(ctx, purpose, email, code).Error(0)
}

func (m *mockCodes) SaveResetToken(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	return m.Called(ctx, token, userID, ttl).Error(0)
}

func (m *mockCodes) ConsumeResetToken(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) EnqueueSignupConfirmation(ctx context.Context, to, firstName, code string, expiresIn time.Duration) error {
	return m.Called(ctx, to, firstName, code, expiresIn).Error(0)
}

func (m *mockMailer) EnqueuePasswordReset(ctx context.Context, to, firstName, code string, expiresIn time.Duration) error {
	return m.Called(ctx, to, firstName, code, expiresIn).Error(0)
}

type mockDocuments struct{ mock.Mock }

func (m *mockDocuments) GetDriverOwner(ctx context.Context, driverID int64) (int64, error) {
	args := m.Called(ctx, driverID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockDocuments) Create(ctx context.Context, doc *model.DriverDocument) (*model.DriverDocument, error) {
	args := m.Called(ctx, doc)
	d, _ := args.Get(0).(*model.DriverDocument)
	return d, args.Error(1)
}

func (m *mockDocuments) Get(ctx context.Context, driverID int64, documentID string) (*model.DriverDocument, error) {
	args := m.Called(ctx, driverID, documentID)
	d, _ := args.Get(0).(*model.DriverDocument)
	return d, args.Error(1)
}

func (m *mockDocuments) List(ctx context.Context, driverID int64, filter model.DriverDocumentFilter) ([]model.DriverDocument, error) {
	args := m.Called(ctx, driverID, filter)
	docs, _ := args.Get(0).([]model.DriverDocument)
	return docs, args.Error(1)
}

func (m *mockDocuments) Update(ctx context.Context, driverID int64, documentID string, patch model.DriverDocumentPatch) (*model.DriverDocument, error) {
	args := m.Called(ctx, driverID, documentID, patch)
	d, _ := args.Get(0).(*model.DriverDocument)
	return d, args.Error(1)
}

func (m *mockDocuments) Delete(ctx context.Context, driverID int64, documentID string) error {
	return m.Called(ctx, driverID, documentID).Error(0)
}

package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/diepdx123/be-xuongWorkshop/internal/domain/entity"
	"github.com/diepdx123/be-xuongWorkshop/internal/platform/logger"
	"github.com/diepdx123/be-xuongWorkshop/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, userID primitive.ObjectID) (*entity.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) SetResetToken(ctx context.Context, userID primitive.ObjectID, token string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, token, expiresAt)
	return args.Error(0)
}

func (m *MockUserRepository) GetByResetToken(ctx context.Context, token string, now time.Time) (*entity.User, error) {
	args := m.Called(ctx, token, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) ResetPassword(ctx context.Context, userID primitive.ObjectID, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendPasswordReset(toEmail, toName, resetLink string) error {
	args := m.Called(toEmail, toName, resetLink)
	return args.Error(0)
}

func newTestAuthService(userRepo repository.UserRepository, mail *MockMailer) AuthService {
	return NewAuthService(userRepo, mail, &logger.NoOpLogger{}, "test-secret", time.Hour, "http://localhost:8080/reset")
}

func hashedUser(t *testing.T, password string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{
		ID:       primitive.NewObjectID(),
		Username: "alice",
		Email:    "alice@example.com",
		Password: string(hash),
		Role:     entity.RoleUser,
	}
}

func TestSignup_StoresHashedPassword(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	userRepo.On("Create", ctx, mock.MatchedBy(func(user *entity.User) bool {
		if user.Password == "secret123" {
			return false
		}
		return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")) == nil
	})).Return(primitive.NewObjectID(), nil)

	svc := newTestAuthService(userRepo, new(MockMailer))

	err := svc.Signup(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestSignup_DuplicateEmailPassesThrough(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	userRepo.On("Create", ctx, mock.Anything).Return(primitive.NilObjectID, repository.ErrDuplicateEmail)

	svc := newTestAuthService(userRepo, new(MockMailer))

	err := svc.Signup(ctx, "alice", "alice@example.com", "secret123")
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestSignin_ReturnsTokenAndSanitizedUser(t *testing.T) {
	ctx := context.Background()
	user := hashedUser(t, "secret123")

	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil)

	svc := newTestAuthService(userRepo, new(MockMailer))

	token, sanitized, err := svc.Signin(ctx, user.Email, "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID.Hex(), sanitized.ID)
	assert.Equal(t, user.Username, sanitized.Username)
	assert.Equal(t, user.Role, sanitized.Role)
}

func TestSignin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	user := hashedUser(t, "secret123")

	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil)

	svc := newTestAuthService(userRepo, new(MockMailer))

	_, _, err := svc.Signin(ctx, user.Email, "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignin_UnknownEmail(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, repository.ErrNotFound)

	svc := newTestAuthService(userRepo, new(MockMailer))

	_, _, err := svc.Signin(ctx, "nobody@example.com", "whatever1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRequestPasswordReset_StoresTokenAndEmailsLink(t *testing.T) {
	ctx := context.Background()
	user := hashedUser(t, "secret123")

	var storedToken string
	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil)
	userRepo.On("SetResetToken", ctx, user.ID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			storedToken = args.String(2)
		}).Return(nil)

	mail := new(MockMailer)
	mail.On("SendPasswordReset", user.Email, user.Username, mock.MatchedBy(func(link string) bool {
		return strings.HasPrefix(link, "http://localhost:8080/reset/")
	})).Return(nil)

	svc := newTestAuthService(userRepo, mail)

	err := svc.RequestPasswordReset(ctx, user.Email)
	require.NoError(t, err)

	// The emailed link must carry the persisted token.
	assert.Len(t, storedToken, 40)
	mailedLink := mail.Calls[0].Arguments.String(2)
	assert.Equal(t, "http://localhost:8080/reset/"+storedToken, mailedLink)
}

func TestRequestPasswordReset_UnknownEmail(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, repository.ErrNotFound)

	mail := new(MockMailer)
	svc := newTestAuthService(userRepo, mail)

	err := svc.RequestPasswordReset(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	mail.AssertNotCalled(t, "SendPasswordReset", mock.Anything, mock.Anything, mock.Anything)
}

func TestResetPassword_InvalidOrExpiredToken(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	userRepo.On("GetByResetToken", ctx, "stale-token", mock.AnythingOfType("time.Time")).
		Return(nil, repository.ErrNotFound)

	svc := newTestAuthService(userRepo, new(MockMailer))

	err := svc.ResetPassword(ctx, "stale-token", "newpassword")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestResetPassword_HashesNewPasswordAndClearsToken(t *testing.T) {
	ctx := context.Background()
	user := hashedUser(t, "oldpassword")

	userRepo := new(MockUserRepository)
	userRepo.On("GetByResetToken", ctx, "valid-token", mock.AnythingOfType("time.Time")).Return(user, nil)
	userRepo.On("ResetPassword", ctx, user.ID, mock.MatchedBy(func(hash string) bool {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte("newpassword")) == nil
	})).Return(nil)

	svc := newTestAuthService(userRepo, new(MockMailer))

	err := svc.ResetPassword(ctx, "valid-token", "newpassword")
	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestGetCurrentUser_NotFound(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()

	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", ctx, userID).Return(nil, repository.ErrNotFound)

	svc := newTestAuthService(userRepo, new(MockMailer))

	_, err := svc.GetCurrentUser(ctx, userID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/diepdx123/be-xuongWorkshop/internal/domain/entity"
	"github.com/diepdx123/be-xuongWorkshop/internal/mailer"
	"github.com/diepdx123/be-xuongWorkshop/internal/platform/logger"
	"github.com/diepdx123/be-xuongWorkshop/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = 10 * time.Minute

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrResetTokenInvalid  = errors.New("password reset token is invalid or has expired")
)

type AuthService interface {
	Signup(ctx context.Context, username, email, password string) error
	Signin(ctx context.Context, email, password string) (string, *entity.SanitizedUser, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	GetCurrentUser(ctx context.Context, userID primitive.ObjectID) (*entity.User, error)
}

type authService struct {
	userRepo  repository.UserRepository
	mail      mailer.Mailer
	log       logger.Logger
	jwtSecret []byte
	jwtTTL    time.Duration
	resetURL  string
}

func NewAuthService(
	userRepo repository.UserRepository,
	mail mailer.Mailer,
	log logger.Logger,
	jwtSecret string,
	jwtTTL time.Duration,
	resetURL string,
) AuthService {
	if jwtTTL <= 0 {
		jwtTTL = time.Hour
	}
	return &authService{
		userRepo:  userRepo,
		mail:      mail,
		log:       log,
		jwtSecret: []byte(jwtSecret),
		jwtTTL:    jwtTTL,
		resetURL:  resetURL,
	}
}

func (s *authService) Signup(ctx context.Context, username, email, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Errorf("Failed to hash password during signup: %v", err)
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		Role:     entity.RoleUser,
	}

	if _, err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}
	s.log.Infof("User signed up: %s", email)
	return nil
}

func (s *authService) Signin(ctx context.Context, email, password string) (string, *entity.SanitizedUser, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"_id":  user.ID.Hex(),
		"role": user.Role,
		"exp":  now.Add(s.jwtTTL).Unix(),
		"iat":  now.Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		s.log.Errorf("Failed to sign session token: %v", err)
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, user.Sanitize(), nil
}

func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	tokenBytes := make([]byte, 20)
	if _, err := rand.Read(tokenBytes); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := hex.EncodeToString(tokenBytes)
	expiresAt := time.Now().Add(resetTokenTTL)

	if err := s.userRepo.SetResetToken(ctx, user.ID, token, expiresAt); err != nil {
		return fmt.Errorf("could not save reset token: %w", err)
	}

	resetLink := s.resetURL + "/" + token
	if err := s.mail.SendPasswordReset(user.Email, user.Username, resetLink); err != nil {
		return fmt.Errorf("could not send password reset email: %w", err)
	}
	s.log.Infof("Password reset email sent to %s", user.Email)
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.userRepo.GetByResetToken(ctx, token, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrResetTokenInvalid
		}
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		s.log.Errorf("Failed to hash new password during reset: %v", err)
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.ResetPassword(ctx, user.ID, string(hashedPassword)); err != nil {
		return err
	}
	s.log.Infof("Password reset completed for user %s", user.ID.Hex())
	return nil
}

func (s *authService) GetCurrentUser(ctx context.Context, userID primitive.ObjectID) (*entity.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

package repository

import (
	"context"
	"time"

	"github.com/diepdx123/be-xuongWorkshop/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, userID primitive.ObjectID) (*entity.User, error)

	// SetResetToken stores the password-reset token and its expiry on the user.
	SetResetToken(ctx context.Context, userID primitive.ObjectID, token string, expiresAt time.Time) error
	// GetByResetToken resolves the user holding token with an expiry after now.
	GetByResetToken(ctx context.Context, token string, now time.Time) (*entity.User, error)
	// ResetPassword sets the new password hash and clears both reset fields.
	ResetPassword(ctx context.Context, userID primitive.ObjectID, passwordHash string) error
}

package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/diepdx123/be-xuongWorkshop/internal/app/config"
	"github.com/diepdx123/be-xuongWorkshop/internal/domain/entity"
	"github.com/diepdx123/be-xuongWorkshop/internal/platform/logger"
	"github.com/diepdx123/be-xuongWorkshop/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const userCollectionName = "users"

type mongoUser struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty"`
	Username             string             `bson:"username"`
	Email                string             `bson:"email"`
	Password             string             `bson:"password"`
	Role                 string             `bson:"role"`
	ResetPasswordToken   string             `bson:"reset_password_token,omitempty"`
	ResetPasswordExpires *time.Time         `bson:"reset_password_expires,omitempty"`
	CreatedAt            time.Time          `bson:"created_at"`
	UpdatedAt            time.Time          `bson:"updated_at"`
}

func (m *mongoUser) toEntity() *entity.User {
	return &entity.User{
		ID:                   m.ID,
		Username:             m.Username,
		Email:                m.Email,
		Password:             m.Password,
		Role:                 m.Role,
		ResetPasswordToken:   m.ResetPasswordToken,
		ResetPasswordExpires: m.ResetPasswordExpires,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

func userFromEntity(e *entity.User) *mongoUser {
	return &mongoUser{
		ID:                   e.ID,
		Username:             e.Username,
		Email:                e.Email,
		Password:             e.Password,
		Role:                 e.Role,
		ResetPasswordToken:   e.ResetPasswordToken,
		ResetPasswordExpires: e.ResetPasswordExpires,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
}

type userRepository struct {
	collection *mongo.Collection
	logger     logger.Logger
}

func NewUserRepository(client *mongo.Client, cfg config.MongoDBConfig, log logger.Logger) repository.UserRepository {
	collection := client.Database(cfg.Database).Collection(userCollectionName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ensure indexes (idempotent operation)
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Warnf("Failed to create indexes for users collection (may already exist): %v", err)
	}

	return &userRepository{
		collection: collection,
		logger:     log.With("repository", "user"),
	}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) (primitive.ObjectID, error) {
	dbUser := userFromEntity(user)
	if dbUser.ID.IsZero() {
		dbUser.ID = primitive.NewObjectID()
	}
	now := time.Now()
	dbUser.CreatedAt = now
	dbUser.UpdatedAt = now
	if dbUser.Role == "" {
		dbUser.Role = entity.RoleUser
	}

	_, err := r.collection.InsertOne(ctx, dbUser)
	if err != nil {
		var writeException mongo.WriteException
		if errors.As(err, &writeException) {
			for _, writeError := range writeException.WriteErrors {
				if writeError.Code == 11000 {
					if strings.Contains(writeError.Message, "email_1") {
						r.logger.Warnf("Duplicate email during user creation: %s", user.Email)
						return primitive.NilObjectID, repository.ErrDuplicateEmail
					}
					if strings.Contains(writeError.Message, "username_1") {
						r.logger.Warnf("Duplicate username during user creation: %s", user.Username)
						return primitive.NilObjectID, repository.ErrDuplicateUsername
					}
				}
			}
		}
		r.logger.Errorf("Database error during user creation: %v", err)
		return primitive.NilObjectID, err
	}
	return dbUser.ID, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var dbUser mongoUser
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&dbUser)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		r.logger.Errorf("Database error fetching user by email: %v", err)
		return nil, err
	}
	return dbUser.toEntity(), nil
}

func (r *userRepository) GetByID(ctx context.Context, userID primitive.ObjectID) (*entity.User, error) {
	var dbUser mongoUser
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&dbUser)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		r.logger.Errorf("Database error fetching user by ID: %v", err)
		return nil, err
	}
	return dbUser.toEntity(), nil
}

func (r *userRepository) SetResetToken(ctx context.Context, userID primitive.ObjectID, token string, expiresAt time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"reset_password_token":   token,
			"reset_password_expires": expiresAt,
			"updated_at":             time.Now(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		r.logger.Errorf("DB error saving reset token: %v", err)
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *userRepository) GetByResetToken(ctx context.Context, token string, now time.Time) (*entity.User, error) {
	filter := bson.M{
		"reset_password_token":   token,
		"reset_password_expires": bson.M{"$gt": now},
	}
	var dbUser mongoUser
	err := r.collection.FindOne(ctx, filter).Decode(&dbUser)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		r.logger.Errorf("Database error fetching user by reset token: %v", err)
		return nil, err
	}
	return dbUser.toEntity(), nil
}

func (r *userRepository) ResetPassword(ctx context.Context, userID primitive.ObjectID, passwordHash string) error {
	update := bson.M{
		"$set": bson.M{
			"password":   passwordHash,
			"updated_at": time.Now(),
		},
		"$unset": bson.M{
			"reset_password_token":   "",
			"reset_password_expires": "",
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		r.logger.Errorf("DB error resetting password: %v", err)
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

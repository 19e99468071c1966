package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/diepdx123/be-xuongWorkshop/internal/app/config"
	"github.com/diepdx123/be-xuongWorkshop/internal/domain/entity"
	"github.com/diepdx123/be-xuongWorkshop/internal/platform/logger"
	"github.com/diepdx123/be-xuongWorkshop/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const categoryCollectionName = "categories"

type mongoCategory struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (m *mongoCategory) toEntity() *entity.Category {
	return &entity.Category{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type categoryRepository struct {
	collection *mongo.Collection
	logger     logger.Logger
}

func NewCategoryRepository(client *mongo.Client, cfg config.MongoDBConfig, log logger.Logger) repository.CategoryRepository {
	return &categoryRepository{
		collection: client.Database(cfg.Database).Collection(categoryCollectionName),
		logger:     log.With("repository", "category"),
	}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) (primitive.ObjectID, error) {
	dbCategory := &mongoCategory{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
	}
	if dbCategory.ID.IsZero() {
		dbCategory.ID = primitive.NewObjectID()
	}
	now := time.Now()
	dbCategory.CreatedAt = now
	dbCategory.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, dbCategory); err != nil {
		r.logger.Errorf("Database error creating category: %v", err)
		return primitive.NilObjectID, err
	}
	category.ID = dbCategory.ID
	category.CreatedAt = dbCategory.CreatedAt
	category.UpdatedAt = dbCategory.UpdatedAt
	return dbCategory.ID, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		r.logger.Errorf("Database error listing categories: %v", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var dbCategories []*mongoCategory
	if err = cursor.All(ctx, &dbCategories); err != nil {
		r.logger.Errorf("Error decoding listed categories: %v", err)
		return nil, err
	}

	categories := make([]*entity.Category, 0, len(dbCategories))
	for _, dbCategory := range dbCategories {
		categories = append(categories, dbCategory.toEntity())
	}
	return categories, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error) {
	var dbCategory mongoCategory
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&dbCategory)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		r.logger.Errorf("Database error fetching category by ID: %v", err)
		return nil, err
	}
	return dbCategory.toEntity(), nil
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"name":        category.Name,
			"description": category.Description,
			"updated_at":  now,
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": category.ID}, update)
	if err != nil {
		r.logger.Errorf("Database error updating category: %v", err)
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	category.UpdatedAt = now
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Errorf("Database error deleting category: %v", err)
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

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

const productCollectionName = "products"

type mongoProduct struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Price       float64            `bson:"price"`
	Description string             `bson:"description,omitempty"`
	Image       string             `bson:"image,omitempty"`
	CategoryID  primitive.ObjectID `bson:"category_id,omitempty"`
	Stock       int                `bson:"stock"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (m *mongoProduct) toEntity() *entity.Product {
	return &entity.Product{
		ID:          m.ID,
		Name:        m.Name,
		Price:       m.Price,
		Description: m.Description,
		Image:       m.Image,
		CategoryID:  m.CategoryID,
		Stock:       m.Stock,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func productFromEntity(e *entity.Product) *mongoProduct {
	return &mongoProduct{
		ID:          e.ID,
		Name:        e.Name,
		Price:       e.Price,
		Description: e.Description,
		Image:       e.Image,
		CategoryID:  e.CategoryID,
		Stock:       e.Stock,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

type productRepository struct {
	collection *mongo.Collection
	logger     logger.Logger
}

func NewProductRepository(client *mongo.Client, cfg config.MongoDBConfig, log logger.Logger) repository.ProductRepository {
	return &productRepository{
		collection: client.Database(cfg.Database).Collection(productCollectionName),
		logger:     log.With("repository", "product"),
	}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) (primitive.ObjectID, error) {
	dbProduct := productFromEntity(product)
	if dbProduct.ID.IsZero() {
		dbProduct.ID = primitive.NewObjectID()
	}
	now := time.Now()
	dbProduct.CreatedAt = now
	dbProduct.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, dbProduct); err != nil {
		r.logger.Errorf("Database error creating product: %v", err)
		return primitive.NilObjectID, err
	}
	product.ID = dbProduct.ID
	product.CreatedAt = dbProduct.CreatedAt
	product.UpdatedAt = dbProduct.UpdatedAt
	return dbProduct.ID, nil
}

func (r *productRepository) List(ctx context.Context) ([]*entity.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		r.logger.Errorf("Database error listing products: %v", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var dbProducts []*mongoProduct
	if err = cursor.All(ctx, &dbProducts); err != nil {
		r.logger.Errorf("Error decoding listed products: %v", err)
		return nil, err
	}

	products := make([]*entity.Product, 0, len(dbProducts))
	for _, dbProduct := range dbProducts {
		products = append(products, dbProduct.toEntity())
	}
	return products, nil
}

func (r *productRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	var dbProduct mongoProduct
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&dbProduct)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		r.logger.Errorf("Database error fetching product by ID: %v", err)
		return nil, err
	}
	return dbProduct.toEntity(), nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	dbProduct := productFromEntity(product)
	dbProduct.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"name":        dbProduct.Name,
			"price":       dbProduct.Price,
			"description": dbProduct.Description,
			"image":       dbProduct.Image,
			"category_id": dbProduct.CategoryID,
			"stock":       dbProduct.Stock,
			"updated_at":  dbProduct.UpdatedAt,
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": dbProduct.ID}, update)
	if err != nil {
		r.logger.Errorf("Database error updating product: %v", err)
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	product.UpdatedAt = dbProduct.UpdatedAt
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Errorf("Database error deleting product: %v", err)
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

package repository

import (
	"context"

	"github.com/diepdx123/be-xuongWorkshop/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) (primitive.ObjectID, error)
	List(ctx context.Context) ([]*entity.Product, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) (primitive.ObjectID, error)
	List(ctx context.Context) ([]*entity.Category, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

package repository

import (
	"context"

	"github.com/diepdx123/be-xuongWorkshop/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartRepository interface {
	// GetByUserID returns ErrNotFound when the user has no cart yet.
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*entity.Cart, error)
	// Save upserts the cart document keyed by its owning user.
	Save(ctx context.Context, cart *entity.Cart) error

	// IncreaseItemQuantity atomically increments the matching line item by one
	// and returns the updated cart. ErrNotFound when no cart holds the product.
	IncreaseItemQuantity(ctx context.Context, userID, productID primitive.ObjectID) (*entity.Cart, error)
	// DecreaseItemQuantity atomically decrements the matching line item by one,
	// but only while its quantity is above one. ErrNotFound covers both a
	// missing cart/item and an item already at the floor.
	DecreaseItemQuantity(ctx context.Context, userID, productID primitive.ObjectID) (*entity.Cart, error)
}

package repository

import (
	"context"
	"time"

	"github.com/diepdx123/be-xuongWorkshop/internal/domain/entity"
)

// ProductDetailCache keeps recently resolved product documents so that
// expanding a cart does not hit the database once per line item.
type ProductDetailCache interface {
	Get(ctx context.Context, productID string) (*entity.Product, error)
	Set(ctx context.Context, productID string, product *entity.Product, ttl time.Duration) error
	Delete(ctx context.Context, productID string) error
}

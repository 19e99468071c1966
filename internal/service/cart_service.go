package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diepdx123/be-xuongWorkshop/internal/domain/entity"
	"github.com/diepdx123/be-xuongWorkshop/internal/platform/logger"
	"github.com/diepdx123/be-xuongWorkshop/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultProductCacheTTL = 5 * time.Minute

// CartItemView is a line item with its product reference expanded into the
// full product document. Product stays nil when the reference no longer
// resolves; the item is still listed.
type CartItemView struct {
	ProductID primitive.ObjectID `json:"productId"`
	Product   *entity.Product    `json:"product"`
	Quantity  int                `json:"quantity"`
}

type CartView struct {
	ID        primitive.ObjectID `json:"_id"`
	UserID    primitive.ObjectID `json:"userId"`
	Products  []CartItemView     `json:"products"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

type CartService interface {
	GetCart(ctx context.Context, userID primitive.ObjectID) (*CartView, error)
	AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*entity.Cart, error)
	IncreaseQuantity(ctx context.Context, userID, productID primitive.ObjectID) (*entity.Cart, error)
	DecreaseQuantity(ctx context.Context, userID, productID primitive.ObjectID) (*entity.Cart, error)
	RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*entity.Cart, error)
}

type cartService struct {
	cartRepo        repository.CartRepository
	productRepo     repository.ProductRepository
	productCache    repository.ProductDetailCache
	log             logger.Logger
	productCacheTTL time.Duration
}

type CartServiceConfig struct {
	ProductCacheTTL time.Duration
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	productCache repository.ProductDetailCache,
	log logger.Logger,
	cfg CartServiceConfig,
) CartService {
	productCacheTTL := cfg.ProductCacheTTL
	if productCacheTTL <= 0 {
		productCacheTTL = defaultProductCacheTTL
	}

	return &cartService{
		cartRepo:        cartRepo,
		productRepo:     productRepo,
		productCache:    productCache,
		log:             log,
		productCacheTTL: productCacheTTL,
	}
}

// resolveProduct looks the product up in the cache first and falls back to
// the database. A product that no longer exists resolves to nil, not an
// error: a cart must stay readable after one of its products is deleted.
func (s *cartService) resolveProduct(ctx context.Context, productID primitive.ObjectID) (*entity.Product, error) {
	cached, cacheErr := s.productCache.Get(ctx, productID.Hex())
	if cacheErr == nil && cached != nil {
		return cached, nil
	}
	if cacheErr != nil && !errors.Is(cacheErr, repository.ErrNotFound) {
		s.log.Warnf("Error getting product %s from cache: %v. Fetching from database.", productID.Hex(), cacheErr)
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if errSetCache := s.productCache.Set(ctx, productID.Hex(), product, s.productCacheTTL); errSetCache != nil {
		s.log.Warnf("Failed to set product %s to cache: %v", productID.Hex(), errSetCache)
	}
	return product, nil
}

func (s *cartService) expandCart(ctx context.Context, cart *entity.Cart) (*CartView, error) {
	view := &CartView{
		ID:        cart.ID,
		UserID:    cart.UserID,
		Products:  make([]CartItemView, 0, len(cart.Products)),
		UpdatedAt: cart.UpdatedAt,
	}

	for _, item := range cart.Products {
		product, err := s.resolveProduct(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("could not resolve product %s: %w", item.ProductID.Hex(), err)
		}
		view.Products = append(view.Products, CartItemView{
			ProductID: item.ProductID,
			Product:   product,
			Quantity:  item.Quantity,
		})
	}
	return view, nil
}

func (s *cartService) GetCart(ctx context.Context, userID primitive.ObjectID) (*CartView, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		s.log.Errorf("Error getting cart for user %s: %v", userID.Hex(), err)
		return nil, fmt.Errorf("could not retrieve cart: %w", err)
	}
	return s.expandCart(ctx, cart)
}

// AddItem is merge-or-insert: an existing line item for the product absorbs
// the requested quantity additively, otherwise a new item is appended. The
// read-then-write shape is kept as-is, so two concurrent adds for the same
// (user, product) pair can still lose one merge.
func (s *cartService) AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*entity.Cart, error) {
	s.log.Infof("Adding item to cart: UserID=%s, ProductID=%s, Quantity=%d", userID.Hex(), productID.Hex(), quantity)

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Errorf("Error getting cart for user %s: %v", userID.Hex(), err)
			return nil, fmt.Errorf("could not retrieve cart: %w", err)
		}
		cart = entity.NewCart(userID)
	}

	if err := cart.AddItem(productID, quantity); err != nil {
		return nil, fmt.Errorf("could not add item to cart: %w", err)
	}
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		s.log.Errorf("Error saving cart for user %s: %v", userID.Hex(), err)
		return nil, fmt.Errorf("could not save cart: %w", err)
	}
	return cart, nil
}

func (s *cartService) IncreaseQuantity(ctx context.Context, userID, productID primitive.ObjectID) (*entity.Cart, error) {
	cart, err := s.cartRepo.IncreaseItemQuantity(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		s.log.Errorf("Error increasing item quantity for user %s: %v", userID.Hex(), err)
		return nil, fmt.Errorf("could not increase item quantity: %w", err)
	}
	return cart, nil
}

func (s *cartService) DecreaseQuantity(ctx context.Context, userID, productID primitive.ObjectID) (*entity.Cart, error) {
	cart, err := s.cartRepo.DecreaseItemQuantity(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		s.log.Errorf("Error decreasing item quantity for user %s: %v", userID.Hex(), err)
		return nil, fmt.Errorf("could not decrease item quantity: %w", err)
	}
	return cart, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*entity.Cart, error) {
	s.log.Infof("Removing item from cart: UserID=%s, ProductID=%s", userID.Hex(), productID.Hex())

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		s.log.Errorf("Error getting cart for user %s: %v", userID.Hex(), err)
		return nil, fmt.Errorf("could not retrieve cart: %w", err)
	}

	// Removing a product the cart never held is not an error; the cart is
	// persisted and returned unchanged.
	cart.RemoveItem(productID)

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		s.log.Errorf("Error saving cart for user %s: %v", userID.Hex(), err)
		return nil, fmt.Errorf("could not save cart: %w", err)
	}
	return cart, nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/diepdx123/be-xuongWorkshop/internal/domain/entity"
	"github.com/diepdx123/be-xuongWorkshop/internal/platform/logger"
	"github.com/diepdx123/be-xuongWorkshop/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductService interface {
	Create(ctx context.Context, product *entity.Product) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) (*entity.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type productService struct {
	productRepo  repository.ProductRepository
	productCache repository.ProductDetailCache
	log          logger.Logger
}

func NewProductService(productRepo repository.ProductRepository, productCache repository.ProductDetailCache, log logger.Logger) ProductService {
	return &productService{
		productRepo:  productRepo,
		productCache: productCache,
		log:          log,
	}
}

func (s *productService) Create(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	if _, err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("could not create product: %w", err)
	}
	s.log.Infof("Product created: %s", product.ID.Hex())
	return product, nil
}

func (s *productService) List(ctx context.Context) ([]*entity.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list products: %w", err)
	}
	return products, nil
}

func (s *productService) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *productService) Update(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	// A stale cached copy must not outlive the update.
	if err := s.productCache.Delete(ctx, product.ID.Hex()); err != nil {
		s.log.Warnf("Failed to invalidate cached product %s: %v", product.ID.Hex(), err)
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.productCache.Delete(ctx, id.Hex()); err != nil {
		s.log.Warnf("Failed to invalidate cached product %s: %v", id.Hex(), err)
	}
	return nil
}

type CategoryService interface {
	Create(ctx context.Context, category *entity.Category) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) (*entity.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	log          logger.Logger
}

func NewCategoryService(categoryRepo repository.CategoryRepository, log logger.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		log:          log,
	}
}

func (s *categoryService) Create(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	if _, err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("could not create category: %w", err)
	}
	s.log.Infof("Category created: %s", category.ID.Hex())
	return category, nil
}

func (s *categoryService) List(ctx context.Context) ([]*entity.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

func (s *categoryService) Update(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.categoryRepo.Delete(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.log.Errorf("Error deleting category %s: %v", id.Hex(), err)
	}
	return err
}

package service

import (
	"context"
	"testing"

	"github.com/diepdx123/be-xuongWorkshop/internal/domain/entity"
	"github.com/diepdx123/be-xuongWorkshop/internal/platform/logger"
	"github.com/diepdx123/be-xuongWorkshop/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProductService_Update_InvalidatesCache(t *testing.T) {
	productRepo := new(MockProductRepository)
	cache := new(MockProductDetailCache)
	svc := NewProductService(productRepo, cache, &logger.NoOpLogger{})

	product := &entity.Product{ID: primitive.NewObjectID(), Name: "mountain bike", Price: 499}
	productRepo.On("Update", mock.Anything, product).Return(nil)
	cache.On("Delete", mock.Anything, product.ID.Hex()).Return(nil)

	updated, err := svc.Update(context.Background(), product)

	require.NoError(t, err)
	assert.Equal(t, product, updated)
	cache.AssertExpectations(t)
}

func TestProductService_Update_NotFound(t *testing.T) {
	productRepo := new(MockProductRepository)
	cache := new(MockProductDetailCache)
	svc := NewProductService(productRepo, cache, &logger.NoOpLogger{})

	product := &entity.Product{ID: primitive.NewObjectID()}
	productRepo.On("Update", mock.Anything, product).Return(repository.ErrNotFound)

	_, err := svc.Update(context.Background(), product)

	assert.ErrorIs(t, err, repository.ErrNotFound)
	cache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestProductService_Delete_InvalidatesCache(t *testing.T) {
	productRepo := new(MockProductRepository)
	cache := new(MockProductDetailCache)
	svc := NewProductService(productRepo, cache, &logger.NoOpLogger{})

	id := primitive.NewObjectID()
	productRepo.On("Delete", mock.Anything, id).Return(nil)
	cache.On("Delete", mock.Anything, id.Hex()).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), id))
	cache.AssertExpectations(t)
}

func TestProductService_Delete_CacheFailureIsNotFatal(t *testing.T) {
	productRepo := new(MockProductRepository)
	cache := new(MockProductDetailCache)
	svc := NewProductService(productRepo, cache, &logger.NoOpLogger{})

	id := primitive.NewObjectID()
	productRepo.On("Delete", mock.Anything, id).Return(nil)
	cache.On("Delete", mock.Anything, id.Hex()).Return(assert.AnError)

	assert.NoError(t, svc.Delete(context.Background(), id))
}

func TestCategoryService_Delete_NotFound(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	svc := NewCategoryService(categoryRepo, &logger.NoOpLogger{})

	id := primitive.NewObjectID()
	categoryRepo.On("Delete", mock.Anything, id).Return(repository.ErrNotFound)

	err := svc.Delete(context.Background(), id)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *entity.Category) (primitive.ObjectID, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

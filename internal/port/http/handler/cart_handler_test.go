package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diepdx123/be-xuongWorkshop/internal/domain/entity"
	"github.com/diepdx123/be-xuongWorkshop/internal/platform/logger"
	"github.com/diepdx123/be-xuongWorkshop/internal/port/http/handler"
	"github.com/diepdx123/be-xuongWorkshop/internal/port/http/router"
	"github.com/diepdx123/be-xuongWorkshop/internal/repository"
	"github.com/diepdx123/be-xuongWorkshop/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) GetCart(ctx context.Context, userID primitive.ObjectID) (*service.CartView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CartView), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*entity.Cart, error) {
	args := m.Called(ctx, userID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Cart), args.Error(1)
}

func (m *MockCartService) IncreaseQuantity(ctx context.Context, userID, productID primitive.ObjectID) (*entity.Cart, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Cart), args.Error(1)
}

func (m *MockCartService) DecreaseQuantity(ctx context.Context, userID, productID primitive.ObjectID) (*entity.Cart, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Cart), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*entity.Cart, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Cart), args.Error(1)
}

func newCartRouter(svc service.CartService) *chi.Mux {
	r := chi.NewRouter()
	router.SetupCartRoutes(r, handler.NewCartHandler(svc, &logger.NoOpLogger{}))
	return r
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["message"]
}

func TestGetCartByUserID_InvalidID(t *testing.T) {
	r := newCartRouter(new(MockCartService))

	req := httptest.NewRequest(http.MethodGet, "/api/cart/not-an-id", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCartByUserID_NotFound(t *testing.T) {
	svc := new(MockCartService)
	svc.On("GetCart", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
	r := newCartRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/cart/"+primitive.NewObjectID().Hex(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Cart not found", decodeMessage(t, rec))
}

func TestGetCartByUserID_OK(t *testing.T) {
	userID := primitive.NewObjectID()
	view := &service.CartView{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Products: []service.CartItemView{
			{ProductID: primitive.NewObjectID(), Product: &entity.Product{Name: "bike"}, Quantity: 2},
		},
	}
	svc := new(MockCartService)
	svc.On("GetCart", mock.Anything, userID).Return(view, nil)
	r := newCartRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/cart/"+userID.Hex(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body service.CartView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Products, 1)
	assert.Equal(t, "bike", body.Products[0].Product.Name)
}

func TestAddItemToCart_ValidationFailure(t *testing.T) {
	r := newCartRouter(new(MockCartService))

	payload := map[string]interface{}{
		"userId":    primitive.NewObjectID().Hex(),
		"productId": primitive.NewObjectID().Hex(),
		"quantity":  0,
	}
	data, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/api/cart", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddItemToCart_OK(t *testing.T) {
	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()

	cart := entity.NewCart(userID)
	require.NoError(t, cart.AddItem(productID, 2))

	svc := new(MockCartService)
	svc.On("AddItem", mock.Anything, userID, productID, 2).Return(cart, nil)
	r := newCartRouter(svc)

	payload := map[string]interface{}{
		"userId":    userID.Hex(),
		"productId": productID.Hex(),
		"quantity":  2,
	}
	data, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/api/cart", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestIncreaseProductQuantity_NotFound(t *testing.T) {
	svc := new(MockCartService)
	svc.On("IncreaseQuantity", mock.Anything, mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
	r := newCartRouter(svc)

	payload := map[string]string{
		"userId":    primitive.NewObjectID().Hex(),
		"productId": primitive.NewObjectID().Hex(),
	}
	data, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPut, "/api/cart/increase", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Cart or product not found", decodeMessage(t, rec))
}

func TestDecreaseProductQuantity_NotFoundAtFloor(t *testing.T) {
	svc := new(MockCartService)
	svc.On("DecreaseQuantity", mock.Anything, mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
	r := newCartRouter(svc)

	payload := map[string]string{
		"userId":    primitive.NewObjectID().Hex(),
		"productId": primitive.NewObjectID().Hex(),
	}
	data, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPut, "/api/cart/decrease", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Cart or product not found or quantity is already 1", decodeMessage(t, rec))
}

func TestRemoveItemFromCart_OK(t *testing.T) {
	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()

	cart := entity.NewCart(userID)

	svc := new(MockCartService)
	svc.On("RemoveItem", mock.Anything, userID, productID).Return(cart, nil)
	r := newCartRouter(svc)

	payload := map[string]string{
		"userId":    userID.Hex(),
		"productId": productID.Hex(),
	}
	data, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]entity.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	_, hasCart := body["cart"]
	assert.True(t, hasCart)
}

func TestRemoveItemFromCart_CartMissing(t *testing.T) {
	svc := new(MockCartService)
	svc.On("RemoveItem", mock.Anything, mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
	r := newCartRouter(svc)

	payload := map[string]string{
		"userId":    primitive.NewObjectID().Hex(),
		"productId": primitive.NewObjectID().Hex(),
	}
	data, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Cart not found", decodeMessage(t, rec))
}

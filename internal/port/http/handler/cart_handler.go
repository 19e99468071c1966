package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/diepdx123/be-xuongWorkshop/internal/platform/logger"
	"github.com/diepdx123/be-xuongWorkshop/internal/repository"
	"github.com/diepdx123/be-xuongWorkshop/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartHandler struct {
	cartService service.CartService
	validate    *validator.Validate
	logger      logger.Logger
}

func NewCartHandler(cartService service.CartService, log logger.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validate:    newValidator(),
		logger:      log.With("handler", "cart"),
	}
}

// GetCartByUserID handles GET /api/cart/{userId}. Line items come back with
// their product reference expanded into the full product document.
func (h *CartHandler) GetCartByUserID(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userId"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "userId must be a valid id")
		return
	}

	cart, err := h.cartService.GetCart(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Cart not found")
			return
		}
		h.logger.Errorf("Failed to get cart: %v", err)
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// AddItemToCart handles POST /api/cart.
func (h *CartHandler) AddItemToCart(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	userID, _ := primitive.ObjectIDFromHex(req.UserID)
	productID, _ := primitive.ObjectIDFromHex(req.ProductID)

	cart, err := h.cartService.AddItem(r.Context(), userID, productID, req.Quantity)
	if err != nil {
		h.logger.Errorf("Failed to add item to cart: %v", err)
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// IncreaseProductQuantity handles PUT /api/cart/increase.
func (h *CartHandler) IncreaseProductQuantity(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCartItemRequest(w, r)
	if !ok {
		return
	}

	cart, err := h.cartService.IncreaseQuantity(r.Context(), req.userID, req.productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Cart or product not found")
			return
		}
		h.logger.Errorf("Failed to increase quantity: %v", err)
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// DecreaseProductQuantity handles PUT /api/cart/decrease. An item already at
// quantity 1 is reported the same way as a missing cart or item.
func (h *CartHandler) DecreaseProductQuantity(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCartItemRequest(w, r)
	if !ok {
		return
	}

	cart, err := h.cartService.DecreaseQuantity(r.Context(), req.userID, req.productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Cart or product not found or quantity is already 1")
			return
		}
		h.logger.Errorf("Failed to decrease quantity: %v", err)
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// RemoveItemFromCart handles DELETE /api/cart. Removing a product the cart
// does not hold still succeeds with the unchanged cart.
func (h *CartHandler) RemoveItemFromCart(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCartItemRequest(w, r)
	if !ok {
		return
	}

	cart, err := h.cartService.RemoveItem(r.Context(), req.userID, req.productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Cart not found")
			return
		}
		h.logger.Errorf("Failed to remove item from cart: %v", err)
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"cart": cart})
}

type cartItemIDs struct {
	userID    primitive.ObjectID
	productID primitive.ObjectID
}

func (h *CartHandler) decodeCartItemRequest(w http.ResponseWriter, r *http.Request) (cartItemIDs, bool) {
	var req CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return cartItemIDs{}, false
	}
	if err := h.validate.Struct(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, validationMessage(err))
		return cartItemIDs{}, false
	}

	userID, _ := primitive.ObjectIDFromHex(req.UserID)
	productID, _ := primitive.ObjectIDFromHex(req.ProductID)
	return cartItemIDs{userID: userID, productID: productID}, true
}

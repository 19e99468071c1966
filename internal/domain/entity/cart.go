package entity

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartItem struct {
	ProductID primitive.ObjectID `json:"productId"`
	Quantity  int                `json:"quantity"`
}

func NewCartItem(productID primitive.ObjectID, quantity int) (*CartItem, error) {
	if productID.IsZero() {
		return nil, errors.New("product ID cannot be empty for cart item")
	}
	if quantity <= 0 {
		return nil, errors.New("cart item quantity must be positive")
	}
	return &CartItem{ProductID: productID, Quantity: quantity}, nil
}

type Cart struct {
	ID        primitive.ObjectID `json:"_id"`
	UserID    primitive.ObjectID `json:"userId"`
	Products  []CartItem         `json:"products"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

func NewCart(userID primitive.ObjectID) *Cart {
	return &Cart{
		UserID:    userID,
		Products:  make([]CartItem, 0),
		UpdatedAt: time.Now().UTC(),
	}
}

func (c *Cart) GetItem(productID primitive.ObjectID) (*CartItem, int) {
	for i, item := range c.Products {
		if item.ProductID == productID {
			return &c.Products[i], i
		}
	}
	return nil, -1
}

// AddItem merges the quantity into an existing line item for the same product,
// or appends a new one. A cart never holds two line items for one product.
func (c *Cart) AddItem(productID primitive.ObjectID, quantity int) error {
	if quantity <= 0 {
		return errors.New("quantity to add must be positive")
	}

	item, _ := c.GetItem(productID)
	if item != nil {
		item.Quantity += quantity
	} else {
		newItem, err := NewCartItem(productID, quantity)
		if err != nil {
			return err
		}
		c.Products = append(c.Products, *newItem)
	}
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// RemoveItem drops every line item matching productID, plus any item whose
// product reference is unset. Removing an absent product is not an error.
func (c *Cart) RemoveItem(productID primitive.ObjectID) {
	kept := c.Products[:0]
	for _, item := range c.Products {
		if !item.ProductID.IsZero() && item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	c.Products = kept
	c.UpdatedAt = time.Now().UTC()
}

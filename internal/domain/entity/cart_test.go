package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCartAddItem_MergeKeepsSingleLineItemPerProduct(t *testing.T) {
	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()
	cart := NewCart(userID)

	require.NoError(t, cart.AddItem(productID, 2))
	require.NoError(t, cart.AddItem(productID, 3))

	require.Len(t, cart.Products, 1)
	assert.Equal(t, 5, cart.Products[0].Quantity)
}

func TestCartAddItem_RejectsNonPositiveQuantity(t *testing.T) {
	cart := NewCart(primitive.NewObjectID())

	assert.Error(t, cart.AddItem(primitive.NewObjectID(), 0))
	assert.Error(t, cart.AddItem(primitive.NewObjectID(), -1))
	assert.Empty(t, cart.Products)
}

func TestCartRemoveItem_AbsentProductLeavesCartUnchanged(t *testing.T) {
	cart := NewCart(primitive.NewObjectID())
	kept := primitive.NewObjectID()
	require.NoError(t, cart.AddItem(kept, 2))

	cart.RemoveItem(primitive.NewObjectID())

	require.Len(t, cart.Products, 1)
	assert.Equal(t, kept, cart.Products[0].ProductID)
}

func TestCartRemoveItem_DropsUnsetProductReferences(t *testing.T) {
	cart := NewCart(primitive.NewObjectID())
	kept := primitive.NewObjectID()
	removed := primitive.NewObjectID()
	require.NoError(t, cart.AddItem(removed, 1))
	require.NoError(t, cart.AddItem(kept, 1))
	// Simulate a line item whose product reference was lost.
	cart.Products = append(cart.Products, CartItem{Quantity: 1})

	cart.RemoveItem(removed)

	require.Len(t, cart.Products, 1)
	assert.Equal(t, kept, cart.Products[0].ProductID)
}

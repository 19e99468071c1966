package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The decrease filter must tie the product match and the floor condition to
// one array element. With independent dotted conditions a two-item cart like
// [{p1, qty 1}, {p2, qty 5}] would match a decrease of p1: p1 satisfies the
// product clause, p2 satisfies the quantity clause, and the update fires on
// an item that is already at one.
func TestDecreaseItemFilter_BindsFloorToTargetItem(t *testing.T) {
	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()

	filter := decreaseItemFilter(userID, productID)

	assert.Equal(t, userID, filter["user_id"])

	products, ok := filter["products"].(bson.M)
	require.True(t, ok, "products condition must be a single $elemMatch, not dotted paths")
	elem, ok := products["$elemMatch"].(bson.M)
	require.True(t, ok)

	assert.Equal(t, productID, elem["product_id"])
	assert.Equal(t, bson.M{"$gt": 1}, elem["quantity"])

	_, dotted := filter["products.quantity"]
	assert.False(t, dotted, "floor condition must not be a document-level dotted path")
}

func TestIncreaseItemFilter_MatchesTargetItem(t *testing.T) {
	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()

	filter := increaseItemFilter(userID, productID)

	assert.Equal(t, userID, filter["user_id"])

	products, ok := filter["products"].(bson.M)
	require.True(t, ok)
	elem, ok := products["$elemMatch"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, productID, elem["product_id"])
}

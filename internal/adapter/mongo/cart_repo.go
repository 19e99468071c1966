package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/diepdx123/be-xuongWorkshop/internal/app/config"
	"github.com/diepdx123/be-xuongWorkshop/internal/domain/entity"
	"github.com/diepdx123/be-xuongWorkshop/internal/platform/logger"
	"github.com/diepdx123/be-xuongWorkshop/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const cartCollectionName = "carts"

type mongoCartItem struct {
	ProductID primitive.ObjectID `bson:"product_id"`
	Quantity  int                `bson:"quantity"`
}

type mongoCart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	Products  []mongoCartItem    `bson:"products"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (m *mongoCart) toEntity() *entity.Cart {
	items := make([]entity.CartItem, 0, len(m.Products))
	for _, item := range m.Products {
		items = append(items, entity.CartItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return &entity.Cart{
		ID:        m.ID,
		UserID:    m.UserID,
		Products:  items,
		UpdatedAt: m.UpdatedAt,
	}
}

func cartFromEntity(e *entity.Cart) *mongoCart {
	items := make([]mongoCartItem, 0, len(e.Products))
	for _, item := range e.Products {
		items = append(items, mongoCartItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return &mongoCart{
		ID:        e.ID,
		UserID:    e.UserID,
		Products:  items,
		UpdatedAt: e.UpdatedAt,
	}
}

type cartRepository struct {
	collection *mongo.Collection
	logger     logger.Logger
}

func NewCartRepository(client *mongo.Client, cfg config.MongoDBConfig, log logger.Logger) repository.CartRepository {
	collection := client.Database(cfg.Database).Collection(cartCollectionName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// One cart per user. The access pattern assumes it everywhere, so the
	// collection enforces it instead of relying on convention.
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, index); err != nil {
		log.Warnf("Failed to create index for carts collection (may already exist): %v", err)
	}

	return &cartRepository{
		collection: collection,
		logger:     log.With("repository", "cart"),
	}
}

func (r *cartRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*entity.Cart, error) {
	var dbCart mongoCart
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&dbCart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		r.logger.Errorf("Database error fetching cart for user %s: %v", userID.Hex(), err)
		return nil, err
	}
	return dbCart.toEntity(), nil
}

func (r *cartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	dbCart := cartFromEntity(cart)
	if dbCart.ID.IsZero() {
		dbCart.ID = primitive.NewObjectID()
	}
	dbCart.UpdatedAt = time.Now().UTC()

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"user_id": dbCart.UserID}, dbCart, opts)
	if err != nil {
		var writeException mongo.WriteException
		if errors.As(err, &writeException) {
			for _, writeError := range writeException.WriteErrors {
				if writeError.Code == 11000 {
					return repository.ErrDuplicateCart
				}
			}
		}
		r.logger.Errorf("Database error saving cart for user %s: %v", cart.UserID.Hex(), err)
		return err
	}
	cart.ID = dbCart.ID
	cart.UpdatedAt = dbCart.UpdatedAt
	return nil
}

// IncreaseItemQuantity is a single conditional find-and-mutate so that
// concurrent increments on the same line item never lose an update.
func (r *cartRepository) IncreaseItemQuantity(ctx context.Context, userID, productID primitive.ObjectID) (*entity.Cart, error) {
	return r.incItemQuantity(ctx, increaseItemFilter(userID, productID), 1)
}

// DecreaseItemQuantity matches only while the item sits above the floor of
// one, so a decrement can never push the quantity below it. A cart or item
// that does not exist and an item already at one both come back ErrNotFound.
func (r *cartRepository) DecreaseItemQuantity(ctx context.Context, userID, productID primitive.ObjectID) (*entity.Cart, error) {
	return r.incItemQuantity(ctx, decreaseItemFilter(userID, productID), -1)
}

func increaseItemFilter(userID, productID primitive.ObjectID) bson.M {
	return bson.M{
		"user_id": userID,
		"products": bson.M{"$elemMatch": bson.M{
			"product_id": productID,
		}},
	}
}

// decreaseItemFilter binds the product match and the floor condition to the
// same array element via $elemMatch. Two dotted conditions would each be
// satisfiable by a different element, letting a multi-item cart match even
// when the addressed item already sits at one.
func decreaseItemFilter(userID, productID primitive.ObjectID) bson.M {
	return bson.M{
		"user_id": userID,
		"products": bson.M{"$elemMatch": bson.M{
			"product_id": productID,
			"quantity":   bson.M{"$gt": 1},
		}},
	}
}

func (r *cartRepository) incItemQuantity(ctx context.Context, filter bson.M, delta int) (*entity.Cart, error) {
	update := bson.M{
		"$inc": bson.M{"products.$.quantity": delta},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var dbCart mongoCart
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&dbCart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		r.logger.Errorf("Database error updating cart item quantity: %v", err)
		return nil, err
	}
	return dbCart.toEntity(), nil
}

package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yashd04xyz/LC-web/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the catalog's data operations. Consumers
// define this interface, not the MongoDB implementation.
type ProductRepository interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	GetMany(ctx context.Context, ids []string) ([]domain.Product, error)
	Seed(ctx context.Context, products []domain.Product) (int, error)
}

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) ProductRepository {
	return &mongoRepository{collection: db.Collection("products")}
}

func (m *mongoRepository) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	filter := bson.M{}
	addEq := func(field, value string) {
		if value != "" && value != "all" {
			filter[field] = value
		}
	}
	addEq("category", f.Category)
	addEq("color", f.Color)
	addEq("occasion", f.Occasion)
	if f.Size != "" && f.Size != "all" {
		// Products sized "all" (one-size accessories) match any size filter.
		filter["size"] = bson.M{"$in": []string{f.Size, "all", "NA"}}
	}
	if f.MaxPrice > 0 {
		filter["price"] = bson.M{"$lte": f.MaxPrice}
	}
	if f.Search != "" {
		re := bson.M{"$regex": f.Search, "$options": "i"}
		filter["$or"] = []bson.M{{"name": re}, {"desc": re}}
	}

	cursor, err := m.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (m *mongoRepository) Get(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (m *mongoRepository) GetMany(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := m.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to query products by id: %w", err)
	}
	defer cursor.Close(ctx)

	var products []domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// Seed inserts the given products only when the catalog is empty, so a
// restart never duplicates or clobbers a live catalog.
func (m *mongoRepository) Seed(ctx context.Context, products []domain.Product) (int, error) {
	count, err := m.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	docs := make([]interface{}, len(products))
	for i, p := range products {
		docs[i] = p
	}
	if _, err := m.collection.InsertMany(ctx, docs); err != nil {
		return 0, fmt.Errorf("failed to seed products: %w", err)
	}
	return len(products), nil
}

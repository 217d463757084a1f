package marketing

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoRepository struct {
	newsletter *mongo.Collection
	contacts   *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		newsletter: db.Collection("newsletter"),
		contacts:   db.Collection("contacts"),
	}
}

func (m *mongoRepository) AddSubscription(ctx context.Context, sub Subscription) error {
	if _, err := m.newsletter.InsertOne(ctx, sub); err != nil {
		return fmt.Errorf("failed to insert subscription: %w", err)
	}
	return nil
}

func (m *mongoRepository) HasSubscription(ctx context.Context, email string) (bool, error) {
	count, err := m.newsletter.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, fmt.Errorf("failed to count subscriptions: %w", err)
	}
	return count > 0, nil
}

func (m *mongoRepository) AddContactMessage(ctx context.Context, msg ContactMessage) error {
	if _, err := m.contacts.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("failed to insert contact message: %w", err)
	}
	return nil
}
